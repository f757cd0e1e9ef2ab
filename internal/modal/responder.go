package modal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stocktree-app/stocktree/internal/platform/httpx"
	"github.com/stocktree-app/stocktree/internal/shared"
	"github.com/stocktree-app/stocktree/internal/view"
)

// Responder renders a form (or bare fragment) into the JSON envelope the
// modal frontend consumes. Every envelope carries at least "title" and
// "html_form".
type Responder struct {
	Templates *view.Engine
	Logger    *slog.Logger

	// Title is placed into the envelope under "title".
	Title string
	// Action is a display label for the modal submit button. It is carried
	// for the frontend but not interpreted server-side.
	Action string
	// TemplateName selects the fragment template rendered into "html_form".
	TemplateName string

	// DataFunc, when set, contributes extra envelope fields per request.
	// Its values are applied last and overwrite colliding keys; per-view
	// hooks rely on this to replace envelope fields deliberately.
	DataFunc func(r *http.Request) map[string]any
}

// Param reads a single named request parameter from either the query string
// (method GET) or the submitted form body (method POST). Absent parameters
// yield the empty string, not an error.
func Param(r *http.Request, name, method string) string {
	if method == http.MethodPost {
		return r.PostFormValue(name)
	}
	return r.URL.Query().Get(name)
}

// Render writes the JSON envelope. The form, when present, is exposed to the
// fragment template under the "form" context key.
func (rs *Responder) Render(w http.ResponseWriter, r *http.Request, form *Form, data map[string]any, tplCtx map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if tplCtx == nil {
		tplCtx = map[string]any{}
	}
	if form != nil {
		tplCtx["form"] = form
	}

	data["title"] = rs.Title

	html, err := rs.Templates.RenderString(rs.TemplateName, tplCtx)
	if err != nil {
		rs.logError("render modal fragment", err, rs.TemplateName)
		httpx.Problem(w, http.StatusInternalServerError, "Render Failed", "could not render form")
		return
	}
	data["html_form"] = html

	if rs.DataFunc != nil {
		for key, value := range rs.DataFunc(r) {
			data[key] = value
		}
	}

	httpx.JSON(w, http.StatusOK, data)
}

// Fail translates service errors into problem responses. Lookup misses map
// to 404, everything else to 500.
func (rs *Responder) Fail(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
		return
	}
	rs.logError("modal handler", err, rs.TemplateName)
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", shared.UserSafeMessage(err))
}

func (rs *Responder) logError(msg string, err error, template string) {
	if rs.Logger == nil {
		return
	}
	rs.Logger.Error(msg, slog.Any("error", err), slog.String("template", template))
}
