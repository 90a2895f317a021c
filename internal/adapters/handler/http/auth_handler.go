package http

import (
	"net/http"

	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type googleLoginRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirectUri"`
}

// GoogleLogin exchanges an authorization code for a session token.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.authService.LoginWithGoogle(r.Context(), req.Code, req.RedirectURI)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
