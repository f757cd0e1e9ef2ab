package modal

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stocktree-app/stocktree/internal/platform/httpx"
	"github.com/stocktree-app/stocktree/internal/shared"
)

// Saved reports the outcome of persisting a valid form.
type Saved struct {
	PK int64
	// URL is the record's canonical URL. Empty when the record type has
	// none; the corresponding envelope key is then omitted.
	URL string
}

// CreateStrategy supplies the form lifecycle for a create endpoint.
type CreateStrategy interface {
	// NewForm builds the unbound form shown on GET.
	NewForm(ctx context.Context) (*Form, error)
	// Bind binds and validates submitted data on POST.
	Bind(ctx context.Context, r *http.Request) (*Form, error)
	// Save persists the record. Called only when the form is valid.
	Save(ctx context.Context, form *Form) (Saved, error)
}

// UpdateStrategy supplies the form lifecycle for an update endpoint. All
// methods report shared.ErrNotFound when the addressed record is missing.
type UpdateStrategy interface {
	// FormForObject builds a form pre-populated with the record's values.
	FormForObject(ctx context.Context, id int64) (*Form, error)
	// Bind binds and validates submitted data against the record.
	Bind(ctx context.Context, id int64, r *http.Request) (*Form, error)
	// Save applies the form to the record. Called only when valid.
	Save(ctx context.Context, id int64, form *Form) (Saved, error)
}

// DeleteStrategy supplies lookup and removal for a delete endpoint.
type DeleteStrategy interface {
	// Object returns template context describing the record (for the
	// confirmation fragment), or shared.ErrNotFound.
	Object(ctx context.Context, id int64) (map[string]any, error)
	// Delete removes the record unconditionally.
	Delete(ctx context.Context, id int64) error
}

// CreateHandler serves a GET-returns-form / POST-validates-and-saves cycle.
type CreateHandler struct {
	Responder
	Strategy CreateStrategy
}

// Mount registers the create routes.
func (h *CreateHandler) Mount(r chi.Router, pattern string) {
	r.Get(pattern, h.Get)
	r.Post(pattern, h.Post)
}

// Get renders the unbound form.
func (h *CreateHandler) Get(w http.ResponseWriter, r *http.Request) {
	form, err := h.Strategy.NewForm(r.Context())
	if err != nil {
		h.Fail(w, err)
		return
	}
	h.Render(w, r, form, nil, nil)
}

// Post validates the submission; on success the envelope carries the new
// record's pk and, when resolvable, its canonical url. Validation failures
// are ordinary responses with form_valid:false, never error statuses.
func (h *CreateHandler) Post(w http.ResponseWriter, r *http.Request) {
	form, err := h.Strategy.Bind(r.Context(), r)
	if err != nil {
		h.Fail(w, err)
		return
	}

	data := map[string]any{}

	if form.Valid() {
		saved, err := h.Strategy.Save(r.Context(), form)
		if err != nil {
			applySaveError(form, err)
		} else {
			data["pk"] = saved.PK
			if saved.URL != "" {
				data["url"] = saved.URL
			}
		}
	}
	data["form_valid"] = form.Valid()

	h.Render(w, r, form, data, nil)
}

// UpdateHandler mirrors CreateHandler against an existing record.
type UpdateHandler struct {
	Responder
	Strategy UpdateStrategy
}

// Mount registers the update routes.
func (h *UpdateHandler) Mount(r chi.Router, pattern string) {
	r.Get(pattern, h.Get)
	r.Post(pattern, h.Post)
}

// Get renders the form pre-populated with the record's current values.
func (h *UpdateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	form, err := h.Strategy.FormForObject(r.Context(), id)
	if err != nil {
		h.Fail(w, err)
		return
	}
	h.Render(w, r, form, nil, nil)
}

// Post validates the submission and saves it onto the record.
func (h *UpdateHandler) Post(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	form, err := h.Strategy.Bind(r.Context(), id, r)
	if err != nil {
		h.Fail(w, err)
		return
	}

	data := map[string]any{}

	if form.Valid() {
		saved, err := h.Strategy.Save(r.Context(), id, form)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				h.Fail(w, err)
				return
			}
			applySaveError(form, err)
		} else {
			data["pk"] = saved.PK
			if saved.URL != "" {
				data["url"] = saved.URL
			}
		}
	}
	data["form_valid"] = form.Valid()

	h.Render(w, r, form, data, nil)
}

// DeleteHandler serves a confirmation fragment on GET and deletes on POST.
// The POST is not gated on the confirmation having been fetched; any POST
// against an existing record deletes it.
type DeleteHandler struct {
	Responder
	Strategy DeleteStrategy
}

// Mount registers the delete routes.
func (h *DeleteHandler) Mount(r chi.Router, pattern string) {
	r.Get(pattern, h.Get)
	r.Post(pattern, h.Post)
}

// Get returns the confirmation fragment. Unlike form envelopes the HTML is
// carried under "html_data" alongside an explicit delete:false flag.
func (h *DeleteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	tplCtx, err := h.Strategy.Object(r.Context(), id)
	if err != nil {
		h.Fail(w, err)
		return
	}

	html, err := h.Templates.RenderString(h.TemplateName, tplCtx)
	if err != nil {
		h.logError("render delete confirmation", err, h.TemplateName)
		httpx.Problem(w, http.StatusInternalServerError, "Render Failed", "could not render confirmation")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"id":        id,
		"delete":    false,
		"title":     h.Title,
		"html_data": html,
	})
}

// Post deletes the record. A repeat POST against the same id yields 404.
func (h *DeleteHandler) Post(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if _, err := h.Strategy.Object(r.Context(), id); err != nil {
		h.Fail(w, err)
		return
	}
	if err := h.Strategy.Delete(r.Context(), id); err != nil {
		h.Fail(w, err)
		return
	}

	h.Render(w, r, nil, map[string]any{
		"id":     id,
		"delete": true,
	}, nil)
}

// applySaveError folds persistence failures into the form as a form-level
// validation error so the client re-renders instead of seeing a 5xx.
func applySaveError(form *Form, err error) {
	form.SetError("", shared.UserSafeMessage(err))
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid record ID")
		return 0, false
	}
	return id, true
}
