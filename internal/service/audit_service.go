package service

import (
	"context"

	"ayursathi-api/internal/domain/entity"
	"ayursathi-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// AuditService appends entries to a user's activity trail.
type AuditService interface {
	LogCreate(ctx context.Context, userID uuid.UUID, action, entityName, entityID string, newValue any) error
	LogUpdate(ctx context.Context, userID uuid.UUID, action, entityName, entityID string, oldValue, newValue any) error
	LogDelete(ctx context.Context, userID uuid.UUID, action, entityName, entityID string, oldValue any) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, userID uuid.UUID, action, entityName, entityID string, newValue any) error {
	return s.record(ctx, userID, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, userID uuid.UUID, action, entityName, entityID string, oldValue, newValue any) error {
	return s.record(ctx, userID, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, userID uuid.UUID, action, entityName, entityID string, oldValue any) error {
	return s.record(ctx, userID, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) record(ctx context.Context, userID uuid.UUID, action, entityName, entityID string, oldValue, newValue any) error {
	auditLog := &entity.AuditLog{
		UserID: userID,
		Action: action,
		Metadata: datatypes.JSONMap{
			"entity":   entityName,
			"entityId": entityID,
			"oldValue": oldValue,
			"newValue": newValue,
		},
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
