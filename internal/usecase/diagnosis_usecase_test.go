package usecase

import (
	"context"
	"errors"
	"testing"

	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/domain/entity"
	"ayursathi-api/internal/infrastructure/llm"
	"ayursathi-api/internal/service"
	"ayursathi-api/pkg/llmjson"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnscripted = errors.New("unscripted gateway call")

const (
	predictionReply = `Sure! {"possibleConditions":[{"condition":"Viral Fever","probability":0.8,"severity":"moderate","description":"..."}],"nextSteps":{"urgencyLevel":"soon","doctorVisitRecommended":true},"disclaimer":"..."}`
	dietReply       = "```json\n{\"summary\":\"Light meals\",\"foods\":{\"recommended\":[\"khichdi\"],\"avoid\":[\"fried food\"]}}\n```"
	nextStepsReply  = `Here you go: {"homeCare":["rest","fluids"],"monitoring":{"vitals":["temperature"]},"disclaimer":"..."} Hope this helps.`
)

type diagnosisFixture struct {
	owner     entity.User
	users     *fakeUserRepo
	diagnoses *fakeDiagnosisRepo
	gateway   *scriptedGateway
	quota     *fakeQuota
	audit     *fakeAudit
	usecase   DiagnosisUsecase
}

func newDiagnosisFixture(replies ...reply) *diagnosisFixture {
	owner := entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com"}
	f := &diagnosisFixture{
		owner:     owner,
		users:     newFakeUserRepo(owner),
		diagnoses: newFakeDiagnosisRepo(),
		gateway:   &scriptedGateway{replies: replies},
		quota:     &fakeQuota{},
		audit:     &fakeAudit{},
	}
	f.usecase = NewDiagnosisUsecase(testLogger(), f.users, f.diagnoses, f.gateway, f.quota, f.audit)
	return f
}

func feverRequest() *dto.DiagnoseRequest {
	return &dto.DiagnoseRequest{
		Symptoms: []string{"fever", "headache"},
		Age:      intPtr(30),
		Gender:   "male",
	}
}

func TestDiagnose_CompletesAllStages(t *testing.T) {
	f := newDiagnosisFixture(reply{text: predictionReply}, reply{text: dietReply}, reply{text: nextStepsReply})

	got, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, f.gateway.calls())
	assert.Equal(t, string(entity.DiagnosisStatusComplete), got.Status)
	assert.NotEmpty(t, got.Results)
	assert.NotEmpty(t, got.DietPlan)
	assert.NotEmpty(t, got.DetailedSteps)

	require.Equal(t, 1, f.diagnoses.count())
	stored := f.diagnoses.only()
	assert.Equal(t, got.ID, stored.ID)
	assert.Equal(t, entity.DiagnosisStatusComplete, stored.Status)

	prediction, err := stored.Prediction()
	require.NoError(t, err)
	require.NotEmpty(t, prediction.PossibleConditions)
	assert.Equal(t, "Viral Fever", prediction.PossibleConditions[0].Condition)

	diet, err := stored.Diet()
	require.NoError(t, err)
	assert.Equal(t, "Light meals", diet.Summary)

	steps, err := stored.Steps()
	require.NoError(t, err)
	assert.Equal(t, []string{"rest", "fluids"}, steps.HomeCare)

	// later stages are prompted with the earlier prediction
	assert.Contains(t, f.gateway.prompts[1], "Viral Fever")
	assert.Contains(t, f.gateway.prompts[2], "Viral Fever")
	assert.Contains(t, f.gateway.prompts[2], "headache")
}

func TestDiagnose_NoJSONInPredictionCreatesNothing(t *testing.T) {
	f := newDiagnosisFixture(reply{text: "I am unable to help with that."})

	_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StagePrediction, stageErr.Stage)
	assert.Equal(t, uuid.Nil, stageErr.DiagnosisID)
	assert.Equal(t, "I am unable to help with that.", stageErr.RawResponse)
	assert.ErrorIs(t, err, llmjson.ErrNoJSONObject)

	assert.Equal(t, 1, f.gateway.calls())
	assert.Zero(t, f.diagnoses.count())
}

func TestDiagnose_DietFailureKeepsPrediction(t *testing.T) {
	f := newDiagnosisFixture(
		reply{text: predictionReply},
		reply{err: llm.ErrModelUnavailable},
	)

	_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StageDiet, stageErr.Stage)
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
	assert.Equal(t, 2, f.gateway.calls())

	require.Equal(t, 1, f.diagnoses.count())
	stored := f.diagnoses.only()
	assert.Equal(t, stored.ID, stageErr.DiagnosisID)
	assert.True(t, stored.HasPrediction())
	assert.False(t, stored.HasDietPlan())
	assert.False(t, stored.HasNextSteps())
	assert.Equal(t, entity.DiagnosisStatusPredictionDone, stored.Status)
}

func TestDiagnose_MalformedNextStepsCarriesSnippet(t *testing.T) {
	f := newDiagnosisFixture(
		reply{text: predictionReply},
		reply{text: dietReply},
		reply{text: `{"homeCare": ["rest", }`},
	)

	_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StageNextSteps, stageErr.Stage)
	assert.ErrorIs(t, err, llmjson.ErrMalformedJSON)
	assert.Equal(t, `{"homeCare": ["rest", }`, stageErr.RawResponse)

	stored := f.diagnoses.only()
	assert.True(t, stored.HasDietPlan())
	assert.False(t, stored.HasNextSteps())
	assert.Equal(t, entity.DiagnosisStatusDietDone, stored.Status)
}

func TestDiagnose_BlocksMatchStagesThatSucceeded(t *testing.T) {
	replies := []reply{{text: predictionReply}, {text: dietReply}, {text: nextStepsReply}}
	stages := []entity.Stage{entity.StagePrediction, entity.StageDiet, entity.StageNextSteps}

	for failAt, stage := range stages {
		t.Run(string(stage), func(t *testing.T) {
			script := append([]reply{}, replies[:failAt]...)
			script = append(script, reply{err: llm.ErrModelEmptyResponse})
			f := newDiagnosisFixture(script...)

			_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())

			var stageErr *StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, stage, stageErr.Stage)

			assert.Equal(t, 1, f.quota.acquired)
			if failAt == 0 {
				assert.Zero(t, f.diagnoses.count())
				assert.Equal(t, 1, f.quota.released)
				return
			}
			// a stored partial record keeps its slot
			assert.Zero(t, f.quota.released)
			stored := f.diagnoses.only()
			assert.True(t, stored.HasPrediction())
			assert.Equal(t, failAt > 1, stored.HasDietPlan())
			assert.False(t, stored.HasNextSteps())
		})
	}
}

func TestDiagnose_FieldTypeMismatchStillCompletes(t *testing.T) {
	steps := `{"homeCare":"rest","medicalConsultation":{"recommended":true,"specialistType":"X"},"followUp":"call in 3 days"}`
	f := newDiagnosisFixture(
		reply{text: `{"possibleConditions":[{"condition":"Viral Fever","probability":"0.8"}]}`},
		reply{text: dietReply},
		reply{text: "Plan:\n" + steps},
	)

	got, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())
	require.NoError(t, err)
	assert.Equal(t, string(entity.DiagnosisStatusComplete), got.Status)

	stored := f.diagnoses.only()
	assert.Equal(t, entity.DiagnosisStatusComplete, stored.Status)
	assert.JSONEq(t, steps, string(stored.DetailedSteps))
	assert.JSONEq(t, steps, string(got.DetailedSteps))

	prediction, err := stored.Prediction()
	require.NoError(t, err)
	require.Len(t, prediction.PossibleConditions, 1)
	assert.Nil(t, prediction.PossibleConditions[0].Probability)

	// the typed prediction still reaches the later prompts
	assert.Contains(t, f.gateway.prompts[2], "Viral Fever")
}

func TestDiagnose_EnumViolationFailsStage(t *testing.T) {
	f := newDiagnosisFixture(reply{text: `{"possibleConditions":[{"condition":"Flu","severity":"catastrophic"}]}`})

	_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StagePrediction, stageErr.Stage)
	assert.ErrorIs(t, err, entity.ErrEnumViolation)
	assert.Zero(t, f.diagnoses.count())
}

func TestDiagnose_EmptySymptomsMakesNoCall(t *testing.T) {
	for name, symptoms := range map[string][]string{
		"nil":   nil,
		"empty": {},
		"blank": {"", "   "},
	} {
		t.Run(name, func(t *testing.T) {
			f := newDiagnosisFixture(reply{text: predictionReply})

			_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, &dto.DiagnoseRequest{Symptoms: symptoms})
			assert.ErrorIs(t, err, ErrSymptomsRequired)
			assert.Zero(t, f.gateway.calls())
			assert.Zero(t, f.diagnoses.count())
			assert.Zero(t, f.quota.acquired)
		})
	}
}

func TestDiagnose_QuotaExceededMakesNoCall(t *testing.T) {
	f := newDiagnosisFixture(reply{text: predictionReply})
	f.quota.err = service.ErrQuotaExceeded

	_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())
	assert.ErrorIs(t, err, ErrAssessmentQuotaExceeded)
	assert.Zero(t, f.gateway.calls())
	assert.Zero(t, f.diagnoses.count())
}

func TestDiagnose_UnknownUser(t *testing.T) {
	f := newDiagnosisFixture(reply{text: predictionReply})

	_, err := f.usecase.Diagnose(context.Background(), uuid.New(), feverRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, f.gateway.calls())
}

func TestDiagnose_FillsSnapshotFromProfile(t *testing.T) {
	f := newDiagnosisFixture(reply{text: predictionReply}, reply{text: dietReply}, reply{text: nextStepsReply})
	profile := f.owner
	profile.Age = intPtr(52)
	profile.Gender = entity.GenderFemale
	profile.MedicalHistory = []string{"asthma"}
	require.NoError(t, f.users.UpdateProfile(context.Background(), &profile))

	_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, &dto.DiagnoseRequest{Symptoms: []string{" cough "}})
	require.NoError(t, err)

	stored := f.diagnoses.only()
	require.NotNil(t, stored.Age)
	assert.Equal(t, 52, *stored.Age)
	assert.Equal(t, entity.GenderFemale, stored.Gender)
	assert.Equal(t, []string{"asthma"}, []string(stored.History))
	assert.Equal(t, []string{"cough"}, []string(stored.Symptoms))
	assert.Contains(t, f.gateway.prompts[0], "asthma")
}

func TestDiagnose_ProfileEditLeavesRecordAlone(t *testing.T) {
	f := newDiagnosisFixture(reply{text: predictionReply}, reply{text: dietReply}, reply{text: nextStepsReply})
	users := NewUserUsecase(testLogger(), f.users, &fakeAudit{})

	created, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())
	require.NoError(t, err)

	age := 31
	_, err = users.UpdateProfile(context.Background(), f.owner.ID, &dto.UpdateProfileRequest{Age: &age})
	require.NoError(t, err)
	_, err = users.UpdateMedicalHistory(context.Background(), f.owner.ID, []string{"diabetes"})
	require.NoError(t, err)

	got, err := f.usecase.GetDiagnosis(context.Background(), f.owner.ID, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Age)
	assert.Equal(t, 30, *got.Age)
	assert.Empty(t, got.History)
}

func TestDiagnose_PersistenceFailureIsTagged(t *testing.T) {
	f := newDiagnosisFixture(reply{text: predictionReply})
	f.diagnoses.createErr = errors.New("connection refused")

	_, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StagePrediction, stageErr.Stage)
	assert.Equal(t, uuid.Nil, stageErr.DiagnosisID)
	assert.ErrorIs(t, err, ErrPersistence)
}

func seedDiagnosis(t *testing.T, repo *fakeDiagnosisRepo, owner uuid.UUID) *entity.Diagnosis {
	t.Helper()
	d := &entity.Diagnosis{UserID: owner, Symptoms: []string{"fever"}}
	require.NoError(t, d.SetPrediction(&entity.PredictionResult{Disclaimer: "seed"}))
	require.NoError(t, repo.Create(context.Background(), d))
	return d
}

func TestDiagnosisOwnership(t *testing.T) {
	f := newDiagnosisFixture()
	other := uuid.New()
	record := seedDiagnosis(t, f.diagnoses, f.owner.ID)
	ctx := context.Background()

	_, err := f.usecase.GetDiagnosis(ctx, other, record.ID)
	assert.ErrorIs(t, err, ErrDiagnosisNotOwned)

	_, err = f.usecase.UpdateDiagnosisResults(ctx, other, record.ID, &dto.UpdateDiagnosisRequest{DietPlan: &entity.DietPlan{Summary: "x"}})
	assert.ErrorIs(t, err, ErrDiagnosisNotOwned)

	err = f.usecase.DeleteDiagnosis(ctx, other, record.ID)
	assert.ErrorIs(t, err, ErrDiagnosisNotOwned)
	assert.Equal(t, 1, f.diagnoses.count())

	got, err := f.usecase.GetDiagnosis(ctx, f.owner.ID, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)

	updated, err := f.usecase.UpdateDiagnosisResults(ctx, f.owner.ID, record.ID, &dto.UpdateDiagnosisRequest{DietPlan: &entity.DietPlan{Summary: "x"}})
	require.NoError(t, err)
	assert.Equal(t, string(entity.DiagnosisStatusDietDone), updated.Status)

	require.NoError(t, f.usecase.DeleteDiagnosis(ctx, f.owner.ID, record.ID))
	assert.Zero(t, f.diagnoses.count())

	assert.Equal(t, []string{entity.AuditActionDiagnosisUpdate, entity.AuditActionDiagnosisDelete}, f.audit.recorded())
}

func TestDiagnose_AuditsCreation(t *testing.T) {
	f := newDiagnosisFixture(reply{text: predictionReply}, reply{text: dietReply}, reply{text: nextStepsReply})

	got, err := f.usecase.Diagnose(context.Background(), f.owner.ID, feverRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{entity.AuditActionDiagnosisCreate}, f.audit.recorded())
	assert.Equal(t, []string{got.ID.String()}, f.audit.ids)
}

func TestGetDiagnosis_NotFound(t *testing.T) {
	f := newDiagnosisFixture()

	_, err := f.usecase.GetDiagnosis(context.Background(), f.owner.ID, uuid.New())
	assert.ErrorIs(t, err, ErrDiagnosisNotFound)
}

func TestDeleteDiagnosis_Twice(t *testing.T) {
	f := newDiagnosisFixture()
	record := seedDiagnosis(t, f.diagnoses, f.owner.ID)

	require.NoError(t, f.usecase.DeleteDiagnosis(context.Background(), f.owner.ID, record.ID))
	assert.ErrorIs(t, f.usecase.DeleteDiagnosis(context.Background(), f.owner.ID, record.ID), ErrDiagnosisNotFound)
}

func TestListDiagnoses_NewestFirstAndScoped(t *testing.T) {
	f := newDiagnosisFixture()
	other := uuid.New()

	first := seedDiagnosis(t, f.diagnoses, f.owner.ID)
	seedDiagnosis(t, f.diagnoses, other)
	second := seedDiagnosis(t, f.diagnoses, f.owner.ID)

	got, err := f.usecase.ListDiagnoses(context.Background(), f.owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)

	empty, err := f.usecase.ListDiagnoses(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUpdateDiagnosisResults_RejectsOutOfOrderBlocks(t *testing.T) {
	f := newDiagnosisFixture()
	record := seedDiagnosis(t, f.diagnoses, f.owner.ID)

	_, err := f.usecase.UpdateDiagnosisResults(context.Background(), f.owner.ID, record.ID, &dto.UpdateDiagnosisRequest{
		DetailedSteps: &entity.NextSteps{HomeCare: []string{"rest"}},
	})
	assert.ErrorIs(t, err, ErrResultsOutOfOrder)

	stored, err := f.diagnoses.FindByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasNextSteps())
}
