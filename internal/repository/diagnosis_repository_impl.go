package repository

import (
	"context"
	"errors"

	"ayursathi-api/internal/domain/entity"
	domainRepo "ayursathi-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type diagnosisRepository struct {
	db *gorm.DB
}

func NewDiagnosisRepository(db *gorm.DB) domainRepo.DiagnosisRepository {
	return &diagnosisRepository{db: db}
}

func (r *diagnosisRepository) Create(ctx context.Context, diagnosis *entity.Diagnosis) error {
	if diagnosis.ID == uuid.Nil {
		diagnosis.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(diagnosis).Error
}

func (r *diagnosisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Diagnosis, error) {
	var diagnosis entity.Diagnosis
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&diagnosis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diagnosis, nil
}

func (r *diagnosisRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Diagnosis, error) {
	var diagnoses []entity.Diagnosis
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&diagnoses).Error
	if err != nil {
		return nil, err
	}
	return diagnoses, nil
}

// UpdateResults leaves the owner, the input snapshot and created_at alone.
func (r *diagnosisRepository) UpdateResults(ctx context.Context, diagnosis *entity.Diagnosis) error {
	result := r.db.WithContext(ctx).
		Model(diagnosis).
		Select("results", "diet_plan", "detailed_steps", "status", "updated_at").
		Updates(diagnosis)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *diagnosisRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Diagnosis{})
	return result.RowsAffected, result.Error
}
