package modal

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stocktree-app/stocktree/internal/platform/httpx"
)

// qrErrorMessage is shown by the template when no payload could be produced.
const qrErrorMessage = "Error generating QR code"

// QRHandler renders an opaque payload string into the QR fragment template.
// The template (or the client) is responsible for turning the payload into
// an actual QR image; the handler only decides between the "qr_data" and
// "error_msg" context keys and never fails outright.
type QRHandler struct {
	Responder

	// QRData resolves the payload for the record addressed by {id}.
	// An empty payload or an error selects the error branch.
	QRData func(ctx context.Context, id int64) (string, error)
}

// Mount registers the QR route.
func (h *QRHandler) Mount(r chi.Router, pattern string) {
	r.Get(pattern, h.Get)
}

// Get renders the QR fragment for the addressed record.
func (h *QRHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid record ID")
		return
	}

	tplCtx := map[string]any{}
	payload, err := h.QRData(r.Context(), id)
	if err == nil && payload != "" {
		tplCtx["qr_data"] = payload
	} else {
		tplCtx["error_msg"] = qrErrorMessage
	}

	h.Render(w, r, nil, nil, tplCtx)
}
