package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type SurveyHandler struct {
	service   ports.SurveyService
	responses ports.ResponseService
}

func NewSurveyHandler(service ports.SurveyService, responses ports.ResponseService) *SurveyHandler {
	return &SurveyHandler{
		service:   service,
		responses: responses,
	}
}

type createSurveyRequest struct {
	Title         string                 `json:"title" validate:"required"`
	Description   string                 `json:"description"`
	Questions     []domain.Question      `json:"questions" validate:"required,min=1"`
	EstimatedTime string                 `json:"estimatedTime"`
	Settings      *domain.SurveySettings `json:"settings"`
}

func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, r, domain.ErrMissingToken)
		return
	}

	var req createSurveyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.service.Create(r.Context(), userID, domain.SurveyCreateRequest{
		Title:         req.Title,
		Description:   req.Description,
		Questions:     req.Questions,
		EstimatedTime: req.EstimatedTime,
		Settings:      req.Settings,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

type surveyListResponse struct {
	Surveys []domain.SurveySummary `json:"surveys"`
}

func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, r, domain.ErrMissingToken)
		return
	}

	surveys, err := h.service.ListForCreator(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if surveys == nil {
		surveys = []domain.SurveySummary{}
	}

	writeJSON(w, http.StatusOK, surveyListResponse{Surveys: surveys})
}

func (h *SurveyHandler) GetPublicSurvey(w http.ResponseWriter, r *http.Request) {
	survey, err := h.service.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

type responseListResponse struct {
	Responses []*domain.SurveyResponse `json:"responses"`
}

// ListResponses returns the responses of one of the caller's surveys.
func (h *SurveyHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, r, domain.ErrMissingToken)
		return
	}

	responses, err := h.responses.ListForSurvey(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if responses == nil {
		responses = []*domain.SurveyResponse{}
	}

	writeJSON(w, http.StatusOK, responseListResponse{Responses: responses})
}
