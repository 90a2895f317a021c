package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/justask/internal/core/ports"
)

type Handlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Surveys   *SurveyHandler
	Responses *ResponseHandler
	Templates *TemplateHandler
}

func NewHandler(h Handlers, authService ports.AuthService, logger *zap.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	requireAuth := Authenticate(authService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/google", h.Auth.GoogleLogin)

		r.Get("/templates", h.Templates.ListTemplates)
		r.Get("/templates/{id}", h.Templates.GetTemplate)

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", h.Users.GetMe)
			r.Patch("/onboarding", h.Users.CompleteOnboarding)
			r.Patch("/profile", h.Users.UpdateProfile)
		})

		r.Route("/surveys", func(r chi.Router) {
			r.Get("/{id}/public", h.Surveys.GetPublicSurvey)
			r.Post("/{id}/responses", h.Responses.SubmitResponse)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", h.Surveys.CreateSurvey)
				r.Get("/", h.Surveys.ListSurveys)
				r.Get("/{id}/responses", h.Surveys.ListResponses)
			})
		})
	})

	return r
}
