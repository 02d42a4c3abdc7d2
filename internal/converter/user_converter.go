package converter

import (
	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	history := []string(user.MedicalHistory)
	if history == nil {
		history = []string{}
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Age:            user.Age,
		Gender:         user.Gender,
		MedicalHistory: history,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
