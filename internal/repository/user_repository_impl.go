package repository

import (
	"context"
	"errors"

	"ayursathi-api/internal/domain/entity"
	domainRepo "ayursathi-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile writes name, age and gender.
func (r *userRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select("name", "age", "gender", "updated_at").
		Updates(user).Error
}

func (r *userRepository) UpdateMedicalHistory(ctx context.Context, id uuid.UUID, history []string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("medical_history", datatypes.NewJSONSlice(history))
	return result.RowsAffected, result.Error
}
