package converter

import (
	"encoding/json"
	"testing"

	"ayursathi-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosisToResponse_OmitsMissingBlocks(t *testing.T) {
	d := &entity.Diagnosis{ID: uuid.New(), UserID: uuid.New(), Symptoms: []string{"fever"}}
	require.NoError(t, d.SetPrediction(&entity.PredictionResult{Disclaimer: "info only"}))

	raw, err := json.Marshal(DiagnosisToResponse(d))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, map[string]any{"disclaimer": "info only"}, body["results"])
	assert.NotContains(t, body, "dietPlan")
	assert.NotContains(t, body, "detailedSteps")
	assert.Equal(t, []any{}, body["history"])
	assert.Equal(t, "prediction_done", body["status"])
}

func TestDiagnosesToResponse_KeepsOrder(t *testing.T) {
	a, b := entity.Diagnosis{ID: uuid.New()}, entity.Diagnosis{ID: uuid.New()}

	got := DiagnosesToResponse([]entity.Diagnosis{a, b})
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
	assert.NotNil(t, DiagnosesToResponse(nil))
}

func TestUserToResponse(t *testing.T) {
	assert.Nil(t, UserToResponse(nil))

	got := UserToResponse(&entity.User{ID: uuid.New(), Name: "Ravi", Email: "r@example.com", Password: "hash"})
	assert.Equal(t, "Ravi", got.Name)
	assert.Equal(t, []string{}, got.MedicalHistory)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
}
