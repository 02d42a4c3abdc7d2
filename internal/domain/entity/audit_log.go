package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is one entry of a user's activity trail. Metadata holds the
// affected entity and its old and new values.
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"userId"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionUserRegister         = "user.register"
	AuditActionUserLogin            = "user.login"
	AuditActionUserLogout           = "user.logout"
	AuditActionProfileUpdate        = "profile.update"
	AuditActionMedicalHistoryUpdate = "medical_history.update"
	AuditActionDiagnosisCreate      = "diagnosis.create"
	AuditActionDiagnosisUpdate      = "diagnosis.update"
	AuditActionDiagnosisDelete      = "diagnosis.delete"
)
