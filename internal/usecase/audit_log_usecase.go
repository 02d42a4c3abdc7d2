package usecase

import (
	"context"

	"ayursathi-api/internal/converter"
	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// activityLimit caps the entries returned by GetActivity.
const activityLimit = 100

type AuditLogUsecase interface {
	GetActivity(ctx context.Context, userID uuid.UUID) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// GetActivity lists the caller's own trail, newest first.
func (u *auditLogUsecase) GetActivity(ctx context.Context, userID uuid.UUID) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindByUserID(ctx, userID, activityLimit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
