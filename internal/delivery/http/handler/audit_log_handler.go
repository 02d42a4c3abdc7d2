package handler

import (
	"net/http"

	"ayursathi-api/internal/delivery/http/middleware"
	"ayursathi-api/internal/usecase"
	"ayursathi-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// GetActivity returns the caller's activity trail.
// @Router /user/activity [get]
func (h *AuditLogHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	activity, err := h.auditLogUsecase.GetActivity(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get activity")
		return
	}

	response.Success(w, http.StatusOK, "Activity retrieved successfully", activity)
}
