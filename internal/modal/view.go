package modal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocktree-app/stocktree/internal/platform/httpx"
)

// View is the plain modal endpoint: GET returns a form-less envelope, POST
// returns an empty JSON string. It exists as scaffolding for fragments that
// carry no form, such as the QR dialog.
type View struct {
	Responder
}

// Mount registers the view on the router.
func (v *View) Mount(r chi.Router, pattern string) {
	r.Get(pattern, v.Get)
	r.Post(pattern, v.Post)
}

// Get renders the fragment with an empty template context.
func (v *View) Get(w http.ResponseWriter, r *http.Request) {
	v.Render(w, r, nil, nil, nil)
}

// Post responds with an empty JSON string literal.
func (v *View) Post(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, "")
}
