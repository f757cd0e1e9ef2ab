package part

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/stocktree-app/stocktree/internal/category"
	"github.com/stocktree-app/stocktree/internal/modal"
	"github.com/stocktree-app/stocktree/internal/view"
)

// Handler wires the part modal CRUD endpoints.
type Handler struct {
	logger *slog.Logger

	create *modal.CreateHandler
	update *modal.UpdateHandler
	remove *modal.DeleteHandler
}

// NewHandler constructs a part Handler.
func NewHandler(logger *slog.Logger, service *Service, categories *category.Service, templates *view.Engine) *Handler {
	builder := formBuilder{service: service, categories: categories, validate: modal.NewValidator()}

	return &Handler{
		logger: logger,
		create: &modal.CreateHandler{
			Responder: modal.Responder{
				Templates:    templates,
				Logger:       logger,
				Title:        "Create new part",
				Action:       "Create",
				TemplateName: "partials/modal_form.html",
			},
			Strategy: createStrategy{builder},
		},
		update: &modal.UpdateHandler{
			Responder: modal.Responder{
				Templates:    templates,
				Logger:       logger,
				Title:        "Edit part details",
				Action:       "Save",
				TemplateName: "partials/modal_form.html",
			},
			Strategy: updateStrategy{builder},
		},
		remove: &modal.DeleteHandler{
			Responder: modal.Responder{
				Templates:    templates,
				Logger:       logger,
				Title:        "Delete part",
				Action:       "Delete",
				TemplateName: "partials/part_delete.html",
			},
			Strategy: deleteStrategy{service: service},
		},
	}
}

// MountRoutes registers part routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.create.Mount(r, "/create")
	h.update.Mount(r, "/{id}/edit")
	h.remove.Mount(r, "/{id}/delete")
}
