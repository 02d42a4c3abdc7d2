package converter

import (
	"encoding/json"

	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/domain/entity"
)

// DiagnosisToResponse converts a Diagnosis entity to DiagnosisResponse DTO
func DiagnosisToResponse(d *entity.Diagnosis) *dto.DiagnosisResponse {
	if d == nil {
		return nil
	}

	return &dto.DiagnosisResponse{
		ID:             d.ID,
		UserID:         d.UserID,
		Symptoms:       nonNil(d.Symptoms),
		Age:            d.Age,
		Gender:         d.Gender,
		History:        nonNil(d.History),
		AdditionalInfo: d.AdditionalInfo,
		Results:        block(d.Results),
		DietPlan:       block(d.DietPlan),
		DetailedSteps:  block(d.DetailedSteps),
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// DiagnosesToResponse keeps the input order.
func DiagnosesToResponse(ds []entity.Diagnosis) []*dto.DiagnosisResponse {
	out := make([]*dto.DiagnosisResponse, 0, len(ds))
	for i := range ds {
		out = append(out, DiagnosisToResponse(&ds[i]))
	}
	return out
}

func block(raw []byte) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.RawMessage(raw)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
