// Package dashboard serves the HTML landing pages: the index with its
// restock/build worklists and the search results page.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocktree-app/stocktree/internal/part"
	"github.com/stocktree-app/stocktree/internal/shared"
	"github.com/stocktree-app/stocktree/internal/view"
)

// Handler renders the dashboard pages.
type Handler struct {
	logger    *slog.Logger
	parts     *part.Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a dashboard Handler.
func NewHandler(logger *slog.Logger, parts *part.Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, parts: parts, templates: templates, csrf: csrf}
}

// MountRoutes registers the page routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/search", h.Search)
}

type indexPageData struct {
	Starred []part.Part
	ToOrder []part.WithStock
	ToBuild []part.WithStock
}

// Index renders the dashboard: the session user's starred parts plus the
// purchaseable and buildable parts currently below their minimum stock.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)

	var data indexPageData

	if sess != nil {
		starred, err := h.parts.Starred(ctx, sess.User())
		if err != nil {
			h.logger.Error("load starred parts", slog.Any("error", err))
		} else {
			data.Starred = starred
		}
	}

	toOrder, err := h.parts.ToOrder(ctx)
	if err != nil {
		h.logger.Error("load parts to order", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data.ToOrder = toOrder

	toBuild, err := h.parts.ToBuild(ctx)
	if err != nil {
		h.logger.Error("load parts to build", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data.ToBuild = toBuild

	h.render(w, r, "pages/index.html", "StockTree", data)
}

type searchPageData struct {
	Query string
}

// Search echoes the submitted query into the results page; the actual
// search execution happens client-side against the JSON endpoints.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	query := r.PostFormValue("search")

	h.render(w, r, "pages/search.html", "Search Results", searchPageData{Query: query})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template, title string, data any) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render page", slog.Any("error", err), slog.String("template", template))
	}
}
