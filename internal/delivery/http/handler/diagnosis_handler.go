package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ayursathi-api/internal/delivery/dto"
	"ayursathi-api/internal/delivery/http/middleware"
	"ayursathi-api/internal/usecase"
	"ayursathi-api/pkg/response"
	"ayursathi-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DiagnosisHandler struct {
	diagnosisUsecase usecase.DiagnosisUsecase
	guidanceUsecase  usecase.GuidanceUsecase
	validator        *validator.CustomValidator
}

func NewDiagnosisHandler(
	diagnosisUsecase usecase.DiagnosisUsecase,
	guidanceUsecase usecase.GuidanceUsecase,
	validator *validator.CustomValidator,
) *DiagnosisHandler {
	return &DiagnosisHandler{
		diagnosisUsecase: diagnosisUsecase,
		guidanceUsecase:  guidanceUsecase,
		validator:        validator,
	}
}

// Diagnose runs a full assessment for the caller.
// @Summary Submit symptoms
// @Tags Diagnose
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DiagnoseRequest true "Assessment"
// @Success 200 {object} dto.DiagnoseResponse
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /diagnose [post]
func (h *DiagnosisHandler) Diagnose(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.DiagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	diagnosis, err := h.diagnosisUsecase.Diagnose(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to run assessment")
		return
	}

	response.JSON(w, http.StatusOK, dto.DiagnoseResponse{Success: true, Diagnosis: diagnosis})
}

// ListDiagnoses returns the caller's records, newest first.
// @Summary List assessments
// @Tags Diagnose
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.DiagnosisResponse
// @Failure 401 {object} response.Response
// @Router /diagnose [get]
func (h *DiagnosisHandler) ListDiagnoses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	diagnoses, err := h.diagnosisUsecase.ListDiagnoses(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "Failed to get diagnoses")
		return
	}

	response.JSON(w, http.StatusOK, diagnoses)
}

// GetDiagnosis returns one of the caller's records.
// @Summary Get assessment
// @Tags Diagnose
// @Security BearerAuth
// @Produce json
// @Param id path string true "Diagnosis ID"
// @Success 200 {object} dto.DiagnosisResponse
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /diagnose/{id} [get]
func (h *DiagnosisHandler) GetDiagnosis(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid diagnosis ID")
		return
	}

	diagnosis, err := h.diagnosisUsecase.GetDiagnosis(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err, "Failed to get diagnosis")
		return
	}

	response.JSON(w, http.StatusOK, diagnosis)
}

// UpdateDiagnosis replaces the result blocks present in the body.
// @Summary Correct assessment results
// @Tags Diagnose
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Diagnosis ID"
// @Param request body dto.UpdateDiagnosisRequest true "Result blocks"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /diagnose/{id} [patch]
func (h *DiagnosisHandler) UpdateDiagnosis(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid diagnosis ID")
		return
	}

	var req dto.UpdateDiagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	diagnosis, err := h.diagnosisUsecase.UpdateDiagnosisResults(r.Context(), userID, id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis updated successfully", diagnosis)
}

// DeleteDiagnosis removes one of the caller's records.
// @Summary Delete assessment
// @Tags Diagnose
// @Security BearerAuth
// @Produce json
// @Param id path string true "Diagnosis ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /diagnose/{id} [delete]
func (h *DiagnosisHandler) DeleteDiagnosis(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid diagnosis ID")
		return
	}

	if err := h.diagnosisUsecase.DeleteDiagnosis(r.Context(), userID, id); err != nil {
		h.writeError(w, err, "Failed to delete diagnosis")
		return
	}

	response.Success(w, http.StatusOK, "Diagnosis deleted successfully", nil)
}

// AyurvedicGuidance generates lifestyle guidance from the caller's profile.
// @Summary Lifestyle guidance
// @Tags Diagnose
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GuidanceRequest false "Guidance Request"
// @Success 200 {object} dto.GuidanceResponse
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /diagnose/ayurvedic-guidance [post]
func (h *DiagnosisHandler) AyurvedicGuidance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	// An empty body asks for the defaults
	var req dto.GuidanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	guidance, err := h.guidanceUsecase.LifestyleGuidance(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to generate guidance")
		return
	}

	response.JSON(w, http.StatusOK, guidance)
}

// TraditionalRemedies is public and never fails; unknown categories get the
// general set.
// @Summary Traditional remedies by category
// @Tags Diagnose
// @Produce json
// @Param category path string true "Remedy category"
// @Success 200 {object} dto.RemediesResponse
// @Router /diagnose/traditional-remedies/{category} [get]
func (h *DiagnosisHandler) TraditionalRemedies(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.guidanceUsecase.TraditionalRemedies(mux.Vars(r)["category"]))
}

func (h *DiagnosisHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	var stageErr *usecase.StageError
	switch {
	case errors.As(err, &stageErr):
		failure := dto.StageFailure{
			Stage:       string(stageErr.Stage),
			Details:     stageErr.Err.Error(),
			RawResponse: stageErr.RawResponse,
		}
		if stageErr.DiagnosisID != uuid.Nil {
			failure.DiagnosisID = stageErr.DiagnosisID.String()
		}
		response.Error(w, http.StatusInternalServerError, fmt.Sprintf("Assessment failed at step %s", stageErr.Stage), failure)
	case errors.Is(err, usecase.ErrSymptomsRequired):
		response.BadRequest(w, "Symptoms are required")
	case errors.Is(err, usecase.ErrAssessmentQuotaExceeded):
		response.TooManyRequests(w, "Daily assessment limit reached, try again tomorrow")
	case errors.Is(err, usecase.ErrResultsOutOfOrder):
		response.BadRequest(w, "Result blocks must follow pipeline order")
	case errors.Is(err, usecase.ErrDiagnosisNotFound):
		response.NotFound(w, "Diagnosis not found")
	case errors.Is(err, usecase.ErrDiagnosisNotOwned):
		response.Unauthorized(w, "Not authorized to access this diagnosis")
	case errors.Is(err, usecase.ErrUserNotFound):
		response.NotFound(w, "User not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
