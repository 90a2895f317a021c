package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/justask/internal/core/domain"
	"github.com/vncsmyrnk/justask/internal/core/templates"
)

type TemplateHandler struct {
	catalog *templates.Catalog
}

func NewTemplateHandler(catalog *templates.Catalog) *TemplateHandler {
	return &TemplateHandler{
		catalog: catalog,
	}
}

type templateListResponse struct {
	Templates []templates.Template `json:"templates"`
}

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, templateListResponse{Templates: h.catalog.All()})
}

func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := h.catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, r, domain.NewNotFoundError("template %q", chi.URLParam(r, "id")))
		return
	}
	writeJSON(w, http.StatusOK, t)
}
