package dto

import "encoding/json"

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Age    *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	Gender *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
}

// MedicalHistoryRequest keeps the raw payload so a non-array value can be
// told apart from a missing one.
type MedicalHistoryRequest struct {
	MedicalHistory json.RawMessage `json:"medicalHistory"`
}
