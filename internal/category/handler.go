package category

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocktree-app/stocktree/internal/modal"
	"github.com/stocktree-app/stocktree/internal/platform/httpx"
	"github.com/stocktree-app/stocktree/internal/tree"
	"github.com/stocktree-app/stocktree/internal/view"
)

// Handler wires the category tree endpoint and the modal CRUD endpoints.
type Handler struct {
	logger     *slog.Logger
	serializer *tree.Serializer

	create *modal.CreateHandler
	update *modal.UpdateHandler
	remove *modal.DeleteHandler
}

// NewHandler constructs a category Handler.
func NewHandler(logger *slog.Logger, service *Service, repo Repository, templates *view.Engine) *Handler {
	builder := formBuilder{service: service, validate: modal.NewValidator()}

	return &Handler{
		logger:     logger,
		serializer: NewTreeSerializer(repo),
		create: &modal.CreateHandler{
			Responder: modal.Responder{
				Templates:    templates,
				Logger:       logger,
				Title:        "Create new part category",
				Action:       "Create",
				TemplateName: "partials/modal_form.html",
			},
			Strategy: createStrategy{builder},
		},
		update: &modal.UpdateHandler{
			Responder: modal.Responder{
				Templates:    templates,
				Logger:       logger,
				Title:        "Edit part category",
				Action:       "Save",
				TemplateName: "partials/modal_form.html",
			},
			Strategy: updateStrategy{builder},
		},
		remove: &modal.DeleteHandler{
			Responder: modal.Responder{
				Templates:    templates,
				Logger:       logger,
				Title:        "Delete part category",
				Action:       "Delete",
				TemplateName: "partials/category_delete.html",
			},
			Strategy: deleteStrategy{service: service},
		},
	}
}

// MountRoutes registers category routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/tree/", h.Tree)
	h.create.Mount(r, "/create")
	h.update.Mount(r, "/{id}/edit")
	h.remove.Mount(r, "/{id}/delete")
}

// Tree serves the bootstrap-treeview payload for the category hierarchy.
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	root, err := h.serializer.Serialize(r.Context())
	if err != nil {
		h.logger.Error("serialize category tree", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "could not build category tree")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"tree": []*tree.Node{root}})
}
