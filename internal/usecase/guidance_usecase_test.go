package usecase

import (
	"context"
	"testing"

	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/domain/entity"
	"ayursathi-api/internal/prompt"
	"ayursathi-api/internal/service"
	"ayursathi-api/pkg/llmjson"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifestyleGuidance_DefaultsAndProfile(t *testing.T) {
	user := entity.User{ID: uuid.New(), Age: intPtr(45), Gender: entity.GenderFemale}
	gw := &scriptedGateway{replies: []reply{{text: `Namaste! {"doshaAnalysis":{"dominantDosha":"Vata"},"disclaimer":"..."}`}}}
	uc := NewGuidanceUsecase(testLogger(), newFakeUserRepo(user), gw)

	got, err := uc.LifestyleGuidance(context.Background(), user.ID, &dto.GuidanceRequest{})
	require.NoError(t, err)

	assert.True(t, got.Success)
	require.NotNil(t, got.Guidance.DoshaAnalysis)
	assert.Equal(t, "Vata", got.Guidance.DoshaAnalysis.DominantDosha)
	require.NotNil(t, got.UserProfile.Age)
	assert.Equal(t, 45, *got.UserProfile.Age)
	assert.Equal(t, entity.GenderFemale, got.UserProfile.Gender)

	require.Len(t, gw.prompts, 1)
	assert.Contains(t, gw.prompts[0], prompt.DefaultHealthConcerns)
	assert.Contains(t, gw.prompts[0], prompt.DefaultLifestyle)
	assert.Contains(t, gw.prompts[0], prompt.DefaultSeason)
}

func TestLifestyleGuidance_FailureIsStageError(t *testing.T) {
	user := entity.User{ID: uuid.New()}
	gw := &scriptedGateway{replies: []reply{{text: "no structured answer"}}}
	uc := NewGuidanceUsecase(testLogger(), newFakeUserRepo(user), gw)

	_, err := uc.LifestyleGuidance(context.Background(), user.ID, &dto.GuidanceRequest{Season: "Monsoon"})

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StageGuidance, stageErr.Stage)
	assert.ErrorIs(t, err, llmjson.ErrNoJSONObject)
	assert.Contains(t, gw.prompts[0], "Monsoon")
}

func TestLifestyleGuidance_UnknownUser(t *testing.T) {
	gw := &scriptedGateway{}
	uc := NewGuidanceUsecase(testLogger(), newFakeUserRepo(), gw)

	_, err := uc.LifestyleGuidance(context.Background(), uuid.New(), &dto.GuidanceRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, gw.calls())
}

func TestTraditionalRemedies(t *testing.T) {
	uc := NewGuidanceUsecase(testLogger(), newFakeUserRepo(), &scriptedGateway{})

	fever := uc.TraditionalRemedies("Fever")
	assert.True(t, fever.Success)
	assert.Equal(t, service.LookupRemedies(service.CategoryFever), fever.Remedies)
	assert.Equal(t, service.RemediesDisclaimer, fever.Disclaimer)

	unknown := uc.TraditionalRemedies("hiccups")
	assert.Equal(t, service.LookupRemedies("anything-else"), unknown.Remedies)
}
