package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ayursathi-api/internal/converter"
	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/domain/entity"
	"ayursathi-api/internal/domain/repository"
	"ayursathi-api/internal/infrastructure/llm"
	"ayursathi-api/internal/infrastructure/metrics"
	"ayursathi-api/internal/prompt"
	"ayursathi-api/internal/service"
	"ayursathi-api/pkg/llmjson"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSymptomsRequired        = errors.New("at least one symptom is required")
	ErrAssessmentQuotaExceeded = errors.New("daily assessment limit reached")
	ErrPersistence             = errors.New("failed to persist diagnosis")
	ErrDiagnosisNotFound       = errors.New("diagnosis not found")
	ErrDiagnosisNotOwned       = errors.New("not authorized to access this diagnosis")
	ErrResultsOutOfOrder       = errors.New("result blocks must follow pipeline order")
)

// StageError reports which pipeline stage failed. DiagnosisID is set when a
// partial record was already stored; RawResponse carries an excerpt of the
// model output when it could not be parsed.
type StageError struct {
	Stage       entity.Stage
	DiagnosisID uuid.UUID
	RawResponse string
	Err         error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type DiagnosisUsecase interface {
	Diagnose(ctx context.Context, userID uuid.UUID, req *dto.DiagnoseRequest) (*dto.DiagnosisResponse, error)
	GetDiagnosis(ctx context.Context, userID, id uuid.UUID) (*dto.DiagnosisResponse, error)
	ListDiagnoses(ctx context.Context, userID uuid.UUID) ([]*dto.DiagnosisResponse, error)
	UpdateDiagnosisResults(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateDiagnosisRequest) (*dto.DiagnosisResponse, error)
	DeleteDiagnosis(ctx context.Context, userID, id uuid.UUID) error
}

type diagnosisUsecase struct {
	log           *logrus.Logger
	userRepo      repository.UserRepository
	diagnosisRepo repository.DiagnosisRepository
	gateways      map[entity.Stage]llm.Gateway
	quota         service.QuotaGuard
	audit         service.AuditService
}

func NewDiagnosisUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	diagnosisRepo repository.DiagnosisRepository,
	gateway llm.Gateway,
	quota service.QuotaGuard,
	audit service.AuditService,
) DiagnosisUsecase {
	if quota == nil {
		quota = service.NoQuota{}
	}
	return &diagnosisUsecase{
		log:           log,
		userRepo:      userRepo,
		diagnosisRepo: diagnosisRepo,
		gateways: map[entity.Stage]llm.Gateway{
			entity.StagePrediction: llm.Instrumented(gateway, string(entity.StagePrediction)),
			entity.StageDiet:       llm.Instrumented(gateway, string(entity.StageDiet)),
			entity.StageNextSteps:  llm.Instrumented(gateway, string(entity.StageNextSteps)),
		},
		quota: quota,
		audit: audit,
	}
}

// pipelineRun carries one submission through the stages.
type pipelineRun struct {
	diagnosis  *entity.Diagnosis
	input      prompt.AssessmentInput
	prediction *entity.PredictionResult
	stored     bool
}

// Diagnose runs prediction, diet and next steps in order, persisting the
// record after each stage. A failed stage returns a *StageError and leaves
// any earlier stages stored.
func (u *diagnosisUsecase) Diagnose(ctx context.Context, userID uuid.UUID, req *dto.DiagnoseRequest) (*dto.DiagnosisResponse, error) {
	symptoms := cleanList(req.Symptoms)
	if len(symptoms) == 0 {
		return nil, ErrSymptomsRequired
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.quota.Acquire(ctx, userID); err != nil {
		if errors.Is(err, service.ErrQuotaExceeded) {
			return nil, ErrAssessmentQuotaExceeded
		}
		u.log.Warnf("Failed to check assessment quota: %+v", err)
		return nil, err
	}

	diagnosis := snapshot(user, symptoms, req)
	run := &pipelineRun{
		diagnosis: diagnosis,
		input:     prompt.InputFromDiagnosis(diagnosis),
	}

	state := entity.NewPipelineState()
	for !state.Terminal() {
		stage, _ := state.NextStage()
		stageErr := u.runStage(ctx, run, stage)
		metrics.RecordStage(string(stage), stageErr)
		state = entity.Advance(state, stageErr)
	}

	if state.Phase == entity.PhaseFailed {
		if !run.stored {
			u.releaseQuota(ctx, userID)
		}
		return nil, state.Cause
	}
	return converter.DiagnosisToResponse(diagnosis), nil
}

// releaseQuota gives back the slot of an assessment that stored nothing.
func (u *diagnosisUsecase) releaseQuota(ctx context.Context, userID uuid.UUID) {
	if err := u.quota.Release(context.WithoutCancel(ctx), userID); err != nil {
		u.log.Warnf("Failed to release assessment quota: %+v", err)
	}
}

// snapshot copies the request, filling absent attributes from the profile.
func snapshot(user *entity.User, symptoms []string, req *dto.DiagnoseRequest) *entity.Diagnosis {
	d := &entity.Diagnosis{
		UserID:         user.ID,
		Symptoms:       symptoms,
		Age:            req.Age,
		Gender:         strings.TrimSpace(req.Gender),
		History:        cleanList(req.History),
		AdditionalInfo: strings.TrimSpace(req.AdditionalInfo),
	}
	if d.Age == nil {
		d.Age = user.Age
	}
	if d.Gender == "" {
		d.Gender = user.Gender
	}
	if len(d.History) == 0 {
		d.History = cleanList(user.MedicalHistory)
	}
	return d
}

func (u *diagnosisUsecase) runStage(ctx context.Context, run *pipelineRun, stage entity.Stage) error {
	log := u.log.WithFields(logrus.Fields{
		"user_id": run.diagnosis.UserID,
		"stage":   stage,
	})

	var err error
	switch stage {
	case entity.StagePrediction:
		err = u.predict(ctx, run)
	case entity.StageDiet:
		err = u.planDiet(ctx, run)
	case entity.StageNextSteps:
		err = u.planNextSteps(ctx, run)
	default:
		err = &StageError{Stage: stage, Err: fmt.Errorf("unknown stage %q", stage)}
	}

	if run.stored {
		log = log.WithField("diagnosis_id", run.diagnosis.ID)
	}
	if err != nil {
		log.Warnf("Failed to run assessment stage: %+v", err)
		return err
	}
	log.Info("Assessment stage completed")
	return nil
}

func (u *diagnosisUsecase) predict(ctx context.Context, run *pipelineRun) error {
	stage := entity.StagePrediction
	prediction, object, err := generate[entity.PredictionResult](ctx, u.gateways[stage], stage, prompt.Prediction(run.input))
	if err != nil {
		return err
	}
	run.diagnosis.SetResultsJSON(object)

	if err := u.diagnosisRepo.Create(ctx, run.diagnosis); err != nil {
		return run.persistenceError(stage, err)
	}
	run.stored = true
	run.prediction = prediction

	// Audit failures are logged by the service and never fail the stage
	_ = u.audit.LogCreate(ctx, run.diagnosis.UserID, entity.AuditActionDiagnosisCreate,
		run.diagnosis.TableName(), run.diagnosis.ID.String(), object)
	return nil
}

func (u *diagnosisUsecase) planDiet(ctx context.Context, run *pipelineRun) error {
	stage := entity.StageDiet
	_, object, err := generate[entity.DietPlan](ctx, u.gateways[stage], stage, prompt.DietPlan(run.input, run.prediction))
	if err != nil {
		return run.tag(err)
	}
	run.diagnosis.SetDietPlanJSON(object)

	if err := u.diagnosisRepo.UpdateResults(ctx, run.diagnosis); err != nil {
		return run.persistenceError(stage, err)
	}
	return nil
}

func (u *diagnosisUsecase) planNextSteps(ctx context.Context, run *pipelineRun) error {
	stage := entity.StageNextSteps
	_, object, err := generate[entity.NextSteps](ctx, u.gateways[stage], stage, prompt.NextSteps(run.input, run.prediction))
	if err != nil {
		return run.tag(err)
	}
	run.diagnosis.SetNextStepsJSON(object)

	if err := u.diagnosisRepo.UpdateResults(ctx, run.diagnosis); err != nil {
		return run.persistenceError(stage, err)
	}
	return nil
}

func (r *pipelineRun) persistenceError(stage entity.Stage, err error) error {
	return r.tag(&StageError{Stage: stage, Err: fmt.Errorf("%w: %w", ErrPersistence, err)})
}

// tag attaches the stored record id to a stage error.
func (r *pipelineRun) tag(err error) error {
	var stageErr *StageError
	if r.stored && errors.As(err, &stageErr) {
		stageErr.DiagnosisID = r.diagnosis.ID
	}
	return err
}

// generate makes one model call and decodes its output into T. The extracted
// object is returned alongside, unchanged, for storage.
func generate[T any](ctx context.Context, gw llm.Gateway, stage entity.Stage, promptText string) (*T, json.RawMessage, error) {
	raw, err := gw.Invoke(ctx, promptText)
	if err != nil {
		return nil, nil, &StageError{Stage: stage, Err: err}
	}

	out, object, err := llmjson.DecodeObject[T](raw)
	if err != nil {
		excerpt, ok := llmjson.Snippet(err)
		if !ok {
			excerpt = llmjson.Excerpt(raw)
		}
		return nil, nil, &StageError{Stage: stage, RawResponse: excerpt, Err: err}
	}
	return out, object, nil
}

func (u *diagnosisUsecase) GetDiagnosis(ctx context.Context, userID, id uuid.UUID) (*dto.DiagnosisResponse, error) {
	diagnosis, err := u.ownedDiagnosis(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return converter.DiagnosisToResponse(diagnosis), nil
}

func (u *diagnosisUsecase) ListDiagnoses(ctx context.Context, userID uuid.UUID) ([]*dto.DiagnosisResponse, error) {
	diagnoses, err := u.diagnosisRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to list diagnoses: %+v", err)
		return nil, err
	}
	return converter.DiagnosesToResponse(diagnoses), nil
}

func (u *diagnosisUsecase) UpdateDiagnosisResults(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateDiagnosisRequest) (*dto.DiagnosisResponse, error) {
	diagnosis, err := u.ownedDiagnosis(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	before := converter.DiagnosisToResponse(diagnosis)

	if req.Results != nil {
		if err := diagnosis.SetPrediction(req.Results); err != nil {
			return nil, err
		}
	}
	if req.DietPlan != nil {
		if err := diagnosis.SetDietPlan(req.DietPlan); err != nil {
			return nil, err
		}
	}
	if req.DetailedSteps != nil {
		if err := diagnosis.SetNextSteps(req.DetailedSteps); err != nil {
			return nil, err
		}
	}

	if (diagnosis.HasDietPlan() && !diagnosis.HasPrediction()) ||
		(diagnosis.HasNextSteps() && !diagnosis.HasDietPlan()) {
		return nil, ErrResultsOutOfOrder
	}

	if err := u.diagnosisRepo.UpdateResults(ctx, diagnosis); err != nil {
		u.log.Warnf("Failed to update diagnosis results: %+v", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	after := converter.DiagnosisToResponse(diagnosis)
	_ = u.audit.LogUpdate(ctx, userID, entity.AuditActionDiagnosisUpdate,
		diagnosis.TableName(), id.String(), before, after)
	return after, nil
}

func (u *diagnosisUsecase) DeleteDiagnosis(ctx context.Context, userID, id uuid.UUID) error {
	diagnosis, err := u.ownedDiagnosis(ctx, userID, id)
	if err != nil {
		return err
	}

	rows, err := u.diagnosisRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete diagnosis: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrDiagnosisNotFound
	}

	_ = u.audit.LogDelete(ctx, userID, entity.AuditActionDiagnosisDelete,
		diagnosis.TableName(), id.String(), converter.DiagnosisToResponse(diagnosis))
	return nil
}

// ownedDiagnosis loads a record and checks that userID owns it.
func (u *diagnosisUsecase) ownedDiagnosis(ctx context.Context, userID, id uuid.UUID) (*entity.Diagnosis, error) {
	diagnosis, err := u.diagnosisRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find diagnosis by ID: %+v", err)
		return nil, err
	}
	if diagnosis == nil {
		return nil, ErrDiagnosisNotFound
	}
	if !diagnosis.IsOwnedBy(userID) {
		return nil, ErrDiagnosisNotOwned
	}
	return diagnosis, nil
}
