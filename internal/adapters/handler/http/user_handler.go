package http

import (
	"net/http"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, r, domain.ErrMissingToken)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type onboardingRequest struct {
	Name         string `json:"name" validate:"required"`
	SocialHandle string `json:"socialHandle" validate:"required"`
	Gender       string `json:"gender"`
	Age          *int   `json:"age" validate:"omitempty,min=1,max=150"`
	Location     string `json:"location"`
}

func (h *UserHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, r, domain.ErrMissingToken)
		return
	}

	var req onboardingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.CompleteOnboarding(r.Context(), userID, domain.OnboardingProfile{
		Name:         req.Name,
		SocialHandle: req.SocialHandle,
		Gender:       req.Gender,
		Age:          req.Age,
		Location:     req.Location,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type profileRequest struct {
	Interests []string `json:"interests" validate:"required,min=1"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		writeError(w, r, domain.ErrMissingToken)
		return
	}

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req.Interests)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
