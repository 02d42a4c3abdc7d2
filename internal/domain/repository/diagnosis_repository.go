package repository

import (
	"context"

	"ayursathi-api/internal/domain/entity"

	"github.com/google/uuid"
)

// DiagnosisRepository persists assessment records. It does not check
// ownership; callers compare Diagnosis.UserID with the requesting user.
type DiagnosisRepository interface {
	Create(ctx context.Context, diagnosis *entity.Diagnosis) error
	// FindByID returns (nil, nil) when the record does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Diagnosis, error)
	// FindByUserID lists a user's records, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Diagnosis, error)
	// UpdateResults writes the result blocks and status only.
	UpdateResults(ctx context.Context, diagnosis *entity.Diagnosis) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
