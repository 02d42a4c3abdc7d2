package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/delivery/http/middleware"
	"ayursathi-api/internal/usecase"
	"ayursathi-api/pkg/response"
	"ayursathi-api/pkg/validator"
)

const msgMedicalHistoryArray = "Medical history must be an array of conditions"

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

// GetProfile returns the caller's profile.
// @Summary Get profile
// @Tags User
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.userUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", user)
}

// UpdateProfile changes only the fields present in the body.
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", user)
}

// UpdateMedicalHistory replaces the caller's list of conditions.
// @Summary Replace medical history
// @Tags User
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MedicalHistoryRequest true "Conditions"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /user/medical-history [put]
func (h *UserHandler) UpdateMedicalHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.MedicalHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	history, ok := conditionList(req.MedicalHistory)
	if !ok {
		response.BadRequest(w, msgMedicalHistoryArray)
		return
	}

	user, err := h.userUsecase.UpdateMedicalHistory(r.Context(), userID, history)
	if err != nil {
		h.writeError(w, err, "Failed to update medical history")
		return
	}

	response.Success(w, http.StatusOK, "Medical history updated successfully", user)
}

// conditionList accepts only a JSON array of strings.
func conditionList(raw json.RawMessage) ([]string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var history []string
	if err := json.Unmarshal(trimmed, &history); err != nil {
		return nil, false
	}
	return history, true
}

func (h *UserHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, "User not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
