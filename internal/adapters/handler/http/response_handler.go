package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type ResponseHandler struct {
	service ports.ResponseService
}

func NewResponseHandler(service ports.ResponseService) *ResponseHandler {
	return &ResponseHandler{
		service: service,
	}
}

type submitResponseRequest struct {
	Responses   []domain.QuestionResponse `json:"responses" validate:"required,min=1"`
	CompletedAt *time.Time                `json:"completedAt"`
	TimeSpent   *float64                  `json:"timeSpent" validate:"omitempty,min=0"`
}

type submitResponseResponse struct {
	ResponseID string `json:"responseId"`
}

func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req submitResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"), domain.ResponseSubmission{
		Responses:   req.Responses,
		CompletedAt: req.CompletedAt,
		TimeSpent:   req.TimeSpent,
	}, clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponseResponse{ResponseID: id})
}
