package entity

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DiagnosisStatus records the last pipeline stage that was persisted.
type DiagnosisStatus string

const (
	DiagnosisStatusPredictionDone DiagnosisStatus = "prediction_done"
	DiagnosisStatusDietDone       DiagnosisStatus = "diet_done"
	DiagnosisStatusComplete       DiagnosisStatus = "complete"
)

// Diagnosis is one assessment: the input snapshot copied at creation time
// plus up to three result blocks filled in pipeline order.
//
// UserID, the input snapshot and CreatedAt never change after Create.
type Diagnosis struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                   `gorm:"type:uuid;not null;index:idx_diagnoses_user_created,priority:1" json:"userId"`
	Symptoms       datatypes.JSONSlice[string] `gorm:"type:jsonb;not null" json:"symptoms"`
	Age            *int                        `json:"age,omitempty"`
	Gender         string                      `gorm:"type:varchar(32)" json:"gender,omitempty"`
	History        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"history"`
	AdditionalInfo string                      `gorm:"type:text" json:"additionalInfo,omitempty"`
	Results        datatypes.JSON              `gorm:"type:jsonb" json:"results,omitempty"`
	DietPlan       datatypes.JSON              `gorm:"type:jsonb" json:"dietPlan,omitempty"`
	DetailedSteps  datatypes.JSON              `gorm:"type:jsonb" json:"detailedSteps,omitempty"`
	Status         DiagnosisStatus             `gorm:"type:varchar(32);not null;index" json:"status"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime;index:idx_diagnoses_user_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Diagnosis) TableName() string {
	return "diagnoses"
}

// IsOwnedBy reports whether userID owns the record.
func (d *Diagnosis) IsOwnedBy(userID uuid.UUID) bool {
	return d.UserID == userID
}

func (d *Diagnosis) HasPrediction() bool {
	return len(d.Results) > 0
}

func (d *Diagnosis) HasDietPlan() bool {
	return len(d.DietPlan) > 0
}

func (d *Diagnosis) HasNextSteps() bool {
	return len(d.DetailedSteps) > 0
}

// Prediction decodes the prediction block; nil when absent.
func (d *Diagnosis) Prediction() (*PredictionResult, error) {
	return decodeBlock[PredictionResult](d.Results)
}

// Diet decodes the diet block; nil when absent.
func (d *Diagnosis) Diet() (*DietPlan, error) {
	return decodeBlock[DietPlan](d.DietPlan)
}

// Steps decodes the next-steps block; nil when absent.
func (d *Diagnosis) Steps() (*NextSteps, error) {
	return decodeBlock[NextSteps](d.DetailedSteps)
}

func (d *Diagnosis) SetPrediction(p *PredictionResult) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	d.SetResultsJSON(raw)
	return nil
}

func (d *Diagnosis) SetDietPlan(p *DietPlan) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	d.SetDietPlanJSON(raw)
	return nil
}

func (d *Diagnosis) SetNextSteps(s *NextSteps) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	d.SetNextStepsJSON(raw)
	return nil
}

// SetResultsJSON stores a prediction object exactly as given.
func (d *Diagnosis) SetResultsJSON(raw []byte) {
	d.Results = datatypes.JSON(raw)
	d.syncStatus()
}

// SetDietPlanJSON stores a diet plan object exactly as given.
func (d *Diagnosis) SetDietPlanJSON(raw []byte) {
	d.DietPlan = datatypes.JSON(raw)
	d.syncStatus()
}

// SetNextStepsJSON stores a next-steps object exactly as given.
func (d *Diagnosis) SetNextStepsJSON(raw []byte) {
	d.DetailedSteps = datatypes.JSON(raw)
	d.syncStatus()
}

// syncStatus derives the status from the furthest populated block.
func (d *Diagnosis) syncStatus() {
	switch {
	case d.HasNextSteps():
		d.Status = DiagnosisStatusComplete
	case d.HasDietPlan():
		d.Status = DiagnosisStatusDietDone
	case d.HasPrediction():
		d.Status = DiagnosisStatusPredictionDone
	}
}

func decodeBlock[T any](raw datatypes.JSON) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	// Stored blocks are the model's objects; fields of another type stay zero
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, err
		}
	}
	return &out, nil
}
