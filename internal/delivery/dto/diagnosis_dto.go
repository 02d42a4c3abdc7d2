package dto

import (
	"encoding/json"
	"time"

	"ayursathi-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type DiagnoseRequest struct {
	Symptoms       []string `json:"symptoms"`
	Age            *int     `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	Gender         string   `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	History        []string `json:"history,omitempty"`
	AdditionalInfo string   `json:"additionalInfo,omitempty" validate:"max=4000"`
}

type GuidanceRequest struct {
	HealthConcerns string `json:"healthConcerns,omitempty" validate:"max=1000"`
	Lifestyle      string `json:"lifestyle,omitempty" validate:"max=1000"`
	Season         string `json:"season,omitempty" validate:"max=100"`
}

// UpdateDiagnosisRequest replaces the result blocks that are present. Blocks
// must stay in pipeline order: no diet plan without a prediction, no next
// steps without a diet plan.
type UpdateDiagnosisRequest struct {
	Results       *entity.PredictionResult `json:"results,omitempty"`
	DietPlan      *entity.DietPlan         `json:"dietPlan,omitempty"`
	DetailedSteps *entity.NextSteps        `json:"detailedSteps,omitempty"`
}

// Response DTOs

// DiagnosisResponse is a stored record. Result blocks are omitted until their
// stage has completed.
type DiagnosisResponse struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Symptoms       []string        `json:"symptoms"`
	Age            *int            `json:"age,omitempty"`
	Gender         string          `json:"gender,omitempty"`
	History        []string        `json:"history"`
	AdditionalInfo string          `json:"additionalInfo,omitempty"`
	Results        json.RawMessage `json:"results,omitempty"`
	DietPlan       json.RawMessage `json:"dietPlan,omitempty"`
	DetailedSteps  json.RawMessage `json:"detailedSteps,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type DiagnoseResponse struct {
	Success   bool               `json:"success"`
	Diagnosis *DiagnosisResponse `json:"diagnosis"`
}

type GuidanceProfile struct {
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
}

type GuidanceResponse struct {
	Success     bool                      `json:"success"`
	Guidance    *entity.LifestyleGuidance `json:"guidance"`
	UserProfile GuidanceProfile           `json:"userProfile"`
}

type RemediesResponse struct {
	Success    bool             `json:"success"`
	Remedies   entity.RemedySet `json:"remedies"`
	Disclaimer string           `json:"disclaimer"`
}

// StageFailure is the error body of a failed pipeline stage.
type StageFailure struct {
	Stage       string `json:"stage"`
	Details     string `json:"details"`
	RawResponse string `json:"rawResponse,omitempty"`
	DiagnosisID string `json:"diagnosisId,omitempty"`
}
