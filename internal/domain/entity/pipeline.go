package entity

// Stage names one model call of the assessment pipeline.
type Stage string

const (
	StagePrediction Stage = "prediction"
	StageDiet       Stage = "diet"
	StageNextSteps  Stage = "next_steps"
	StageGuidance   Stage = "guidance"
)

// PipelinePhase is the state of one assessment run.
type PipelinePhase string

const (
	PhaseCreated        PipelinePhase = "created"
	PhasePredictionDone PipelinePhase = "prediction_done"
	PhaseDietDone       PipelinePhase = "diet_done"
	PhaseComplete       PipelinePhase = "complete"
	PhaseFailed         PipelinePhase = "failed"
)

// PipelineState is Created -> PredictionDone -> DietDone -> Complete, or
// Failed(stage, cause) from any non-terminal phase.
type PipelineState struct {
	Phase       PipelinePhase
	FailedStage Stage
	Cause       error
}

// NewPipelineState returns the initial state.
func NewPipelineState() PipelineState {
	return PipelineState{Phase: PhaseCreated}
}

func (s PipelineState) Terminal() bool {
	return s.Phase == PhaseComplete || s.Phase == PhaseFailed
}

// NextStage returns the stage that runs from the current phase.
func (s PipelineState) NextStage() (Stage, bool) {
	switch s.Phase {
	case PhaseCreated:
		return StagePrediction, true
	case PhasePredictionDone:
		return StageDiet, true
	case PhaseDietDone:
		return StageNextSteps, true
	default:
		return "", false
	}
}

// Advance applies the outcome of the current stage. A nil stageErr moves to
// the next phase; a non-nil one moves to Failed. Terminal states are returned
// unchanged.
func Advance(s PipelineState, stageErr error) PipelineState {
	stage, ok := s.NextStage()
	if !ok {
		return s
	}
	if stageErr != nil {
		return PipelineState{Phase: PhaseFailed, FailedStage: stage, Cause: stageErr}
	}
	switch stage {
	case StagePrediction:
		return PipelineState{Phase: PhasePredictionDone}
	case StageDiet:
		return PipelineState{Phase: PhaseDietDone}
	default:
		return PipelineState{Phase: PhaseComplete}
	}
}
