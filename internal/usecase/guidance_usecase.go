package usecase

import (
	"context"

	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/domain/entity"
	"ayursathi-api/internal/domain/repository"
	"ayursathi-api/internal/infrastructure/llm"
	"ayursathi-api/internal/infrastructure/metrics"
	"ayursathi-api/internal/prompt"
	"ayursathi-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GuidanceUsecase serves the side features that never create a record.
type GuidanceUsecase interface {
	LifestyleGuidance(ctx context.Context, userID uuid.UUID, req *dto.GuidanceRequest) (*dto.GuidanceResponse, error)
	TraditionalRemedies(category string) *dto.RemediesResponse
}

type guidanceUsecase struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
	gateway  llm.Gateway
}

func NewGuidanceUsecase(log *logrus.Logger, userRepo repository.UserRepository, gateway llm.Gateway) GuidanceUsecase {
	return &guidanceUsecase{
		log:      log,
		userRepo: userRepo,
		gateway:  llm.Instrumented(gateway, string(entity.StageGuidance)),
	}
}

func (u *guidanceUsecase) LifestyleGuidance(ctx context.Context, userID uuid.UUID, req *dto.GuidanceRequest) (*dto.GuidanceResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	in := prompt.GuidanceInput{
		Age:            user.Age,
		Gender:         user.Gender,
		HealthConcerns: req.HealthConcerns,
		Lifestyle:      req.Lifestyle,
		Season:         req.Season,
	}.WithDefaults()

	guidance, _, err := generate[entity.LifestyleGuidance](ctx, u.gateway, entity.StageGuidance, prompt.LifestyleGuidance(in))
	metrics.RecordStage(string(entity.StageGuidance), err)
	if err != nil {
		u.log.WithField("user_id", userID).Warnf("Failed to generate lifestyle guidance: %+v", err)
		return nil, err
	}

	return &dto.GuidanceResponse{
		Success:  true,
		Guidance: guidance,
		UserProfile: dto.GuidanceProfile{
			Age:    user.Age,
			Gender: user.Gender,
		},
	}, nil
}

func (u *guidanceUsecase) TraditionalRemedies(category string) *dto.RemediesResponse {
	return &dto.RemediesResponse{
		Success:    true,
		Remedies:   service.LookupRemedies(category),
		Disclaimer: service.RemediesDisclaimer,
	}
}
