package usecase

import (
	"context"
	"strings"

	"ayursathi-api/internal/converter"
	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/domain/entity"
	"ayursathi-api/internal/domain/repository"
	"ayursathi-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UserUsecase manages the caller's own profile. Profile changes never touch
// stored diagnoses, which keep the snapshot taken when they were created.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateMedicalHistory(ctx context.Context, userID uuid.UUID, history []string) (*dto.UserResponse, error)
}

type userUsecase struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
	audit    service.AuditService
}

func NewUserUsecase(log *logrus.Logger, userRepo repository.UserRepository, audit service.AuditService) UserUsecase {
	return &userUsecase{
		log:      log,
		userRepo: userRepo,
		audit:    audit,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	before := converter.UserToResponse(user)

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		u.log.Warnf("Failed to update profile: %+v", err)
		return nil, err
	}

	after := converter.UserToResponse(user)
	_ = u.audit.LogUpdate(ctx, userID, entity.AuditActionProfileUpdate,
		user.TableName(), userID.String(), before, after)
	return after, nil
}

func (u *userUsecase) UpdateMedicalHistory(ctx context.Context, userID uuid.UUID, history []string) (*dto.UserResponse, error) {
	current, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	history = cleanList(history)

	rows, err := u.userRepo.UpdateMedicalHistory(ctx, userID, history)
	if err != nil {
		u.log.Warnf("Failed to update medical history: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUserNotFound
	}

	_ = u.audit.LogUpdate(ctx, userID, entity.AuditActionMedicalHistoryUpdate,
		entity.User{}.TableName(), userID.String(), current.MedicalHistory, history)
	return u.GetProfile(ctx, userID)
}
