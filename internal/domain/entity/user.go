package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User is the account that owns diagnoses. Age, gender and medical history
// act as defaults for assessments that omit them.
type User struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string                      `gorm:"type:varchar(255);not null" json:"name"`
	Email          string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string                      `gorm:"type:text;not null" json:"-"`
	Age            *int                        `json:"age,omitempty"`
	Gender         string                      `gorm:"type:varchar(32)" json:"gender,omitempty"`
	MedicalHistory datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"medicalHistory"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// Gender values accepted on profiles and assessments.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)
