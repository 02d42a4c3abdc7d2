package repository

import (
	"context"

	"ayursathi-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// FindByUserID returns at most limit entries, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.AuditLog, error)
}
