package stock

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/stocktree-app/stocktree/internal/modal"
	"github.com/stocktree-app/stocktree/internal/view"
)

// Handler wires stock item endpoints.
type Handler struct {
	logger *slog.Logger
	qr     *modal.QRHandler
}

// NewHandler constructs a stock Handler.
func NewHandler(logger *slog.Logger, repo Repository, templates *view.Engine) *Handler {
	return &Handler{
		logger: logger,
		qr: &modal.QRHandler{
			Responder: modal.Responder{
				Templates:    templates,
				Logger:       logger,
				Title:        "Stock item QR code",
				TemplateName: "partials/qr_code.html",
			},
			QRData: func(ctx context.Context, id int64) (string, error) {
				return QRPayload(ctx, repo, id)
			},
		},
	}
}

// MountRoutes registers stock routes.
func (h *Handler) MountRoutes(r chi.Router) {
	h.qr.Mount(r, "/item/{id}/qr_code")
}
