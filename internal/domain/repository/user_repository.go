package repository

import (
	"context"

	"ayursathi-api/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository lookups return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
	UpdateMedicalHistory(ctx context.Context, id uuid.UUID, history []string) (int64, error)
}
