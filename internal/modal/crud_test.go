package modal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktree-app/stocktree/internal/modal"
	"github.com/stocktree-app/stocktree/internal/shared"
	"github.com/stocktree-app/stocktree/internal/view"
	_ "github.com/stocktree-app/stocktree/testing"
)

func newTemplates(t *testing.T) *view.Engine {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)
	return templates
}

func newResponder(t *testing.T, title string) modal.Responder {
	t.Helper()
	return modal.Responder{
		Templates:    newTemplates(t),
		Title:        title,
		TemplateName: "partials/modal_form.html",
	}
}

func decodeEnvelope(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusOK, res.Code, "body: %s", res.Body.String())
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	return envelope
}

type createStub struct {
	saved   modal.Saved
	saveErr error
	calls   int
}

func (s *createStub) NewForm(ctx context.Context) (*modal.Form, error) {
	return modal.NewForm(
		modal.Field{Name: "name", Label: "Name", Widget: "text", Required: true},
	), nil
}

func (s *createStub) Bind(ctx context.Context, r *http.Request) (*modal.Form, error) {
	form, _ := s.NewForm(ctx)
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	form.Bind(r.PostForm)
	if form.Value("name") == "" {
		form.SetError("name", "This field is required")
	}
	return form, nil
}

func (s *createStub) Save(ctx context.Context, form *modal.Form) (modal.Saved, error) {
	s.calls++
	return s.saved, s.saveErr
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCreateGetRendersForm(t *testing.T) {
	handler := &modal.CreateHandler{
		Responder: newResponder(t, "Create new part"),
		Strategy:  &createStub{},
	}

	res := httptest.NewRecorder()
	handler.Get(res, httptest.NewRequest(http.MethodGet, "/part/create", nil))

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, "Create new part", envelope["title"])
	html, _ := envelope["html_form"].(string)
	assert.Contains(t, html, `name="name"`)
	_, hasValid := envelope["form_valid"]
	assert.False(t, hasValid, "GET envelope carries no form_valid")
}

func TestCreatePostValid(t *testing.T) {
	stub := &createStub{saved: modal.Saved{PK: 7, URL: "/part/7/"}}
	handler := &modal.CreateHandler{Responder: newResponder(t, "Create new part"), Strategy: stub}

	res := httptest.NewRecorder()
	handler.Post(res, postForm("/part/create", url.Values{"name": {"Resistor"}}))

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, true, envelope["form_valid"])
	assert.Equal(t, float64(7), envelope["pk"])
	assert.Equal(t, "/part/7/", envelope["url"])
	assert.Equal(t, 1, stub.calls)
}

func TestCreatePostInvalid(t *testing.T) {
	stub := &createStub{}
	handler := &modal.CreateHandler{Responder: newResponder(t, "Create new part"), Strategy: stub}

	res := httptest.NewRecorder()
	handler.Post(res, postForm("/part/create", url.Values{}))

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, false, envelope["form_valid"])
	_, hasPK := envelope["pk"]
	assert.False(t, hasPK, "invalid form must not report a pk")
	_, hasURL := envelope["url"]
	assert.False(t, hasURL)
	assert.Zero(t, stub.calls, "save must not run for an invalid form")
}

func TestCreatePostURLOmittedWhenEmpty(t *testing.T) {
	stub := &createStub{saved: modal.Saved{PK: 3}}
	handler := &modal.CreateHandler{Responder: newResponder(t, "Create"), Strategy: stub}

	res := httptest.NewRecorder()
	handler.Post(res, postForm("/create", url.Values{"name": {"Widget"}}))

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, true, envelope["form_valid"])
	_, hasURL := envelope["url"]
	assert.False(t, hasURL, "records without a canonical URL omit the key")
}

func TestCreatePostSaveErrorBecomesFormError(t *testing.T) {
	stub := &createStub{saveErr: shared.ErrDuplicate}
	handler := &modal.CreateHandler{Responder: newResponder(t, "Create"), Strategy: stub}

	res := httptest.NewRecorder()
	handler.Post(res, postForm("/create", url.Values{"name": {"Resistor"}}))

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, false, envelope["form_valid"])
	html, _ := envelope["html_form"].(string)
	assert.Contains(t, html, "form-error")
}

type updateStub struct {
	missing bool
	saved   modal.Saved
}

func (s *updateStub) form() *modal.Form {
	return modal.NewForm(modal.Field{Name: "name", Label: "Name", Widget: "text", Required: true})
}

func (s *updateStub) FormForObject(ctx context.Context, id int64) (*modal.Form, error) {
	if s.missing {
		return nil, shared.ErrNotFound
	}
	form := s.form()
	form.SetValues(map[string]string{"name": "Existing"})
	return form, nil
}

func (s *updateStub) Bind(ctx context.Context, id int64, r *http.Request) (*modal.Form, error) {
	if s.missing {
		return nil, shared.ErrNotFound
	}
	form := s.form()
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	form.Bind(r.PostForm)
	if form.Value("name") == "" {
		form.SetError("name", "This field is required")
	}
	return form, nil
}

func (s *updateStub) Save(ctx context.Context, id int64, form *modal.Form) (modal.Saved, error) {
	return s.saved, nil
}

func routeRequest(handler http.HandlerFunc, req *http.Request, params map[string]string) *httptest.ResponseRecorder {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	res := httptest.NewRecorder()
	handler(res, req)
	return res
}

func TestUpdateGetPrepopulates(t *testing.T) {
	handler := &modal.UpdateHandler{Responder: newResponder(t, "Edit part details"), Strategy: &updateStub{}}

	res := routeRequest(handler.Get, httptest.NewRequest(http.MethodGet, "/part/5/edit", nil), map[string]string{"id": "5"})

	envelope := decodeEnvelope(t, res)
	html, _ := envelope["html_form"].(string)
	assert.Contains(t, html, "Existing")
}

func TestUpdateGetMissingRecord(t *testing.T) {
	handler := &modal.UpdateHandler{Responder: newResponder(t, "Edit"), Strategy: &updateStub{missing: true}}

	res := routeRequest(handler.Get, httptest.NewRequest(http.MethodGet, "/part/5/edit", nil), map[string]string{"id": "5"})
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestUpdateGetBadID(t *testing.T) {
	handler := &modal.UpdateHandler{Responder: newResponder(t, "Edit"), Strategy: &updateStub{}}

	res := routeRequest(handler.Get, httptest.NewRequest(http.MethodGet, "/part/abc/edit", nil), map[string]string{"id": "abc"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUpdatePostValid(t *testing.T) {
	handler := &modal.UpdateHandler{
		Responder: newResponder(t, "Edit part details"),
		Strategy:  &updateStub{saved: modal.Saved{PK: 5, URL: "/part/5/"}},
	}

	res := routeRequest(handler.Post, postForm("/part/5/edit", url.Values{"name": {"Renamed"}}), map[string]string{"id": "5"})

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, true, envelope["form_valid"])
	assert.Equal(t, float64(5), envelope["pk"])
	assert.Equal(t, "/part/5/", envelope["url"])
}

type deleteStub struct {
	exists  bool
	deleted int
}

func (s *deleteStub) Object(ctx context.Context, id int64) (map[string]any, error) {
	if !s.exists {
		return nil, shared.ErrNotFound
	}
	return map[string]any{"part": map[string]any{"Name": "Resistor"}}, nil
}

func (s *deleteStub) Delete(ctx context.Context, id int64) error {
	s.deleted++
	s.exists = false
	return nil
}

func newDeleteHandler(t *testing.T, stub *deleteStub) *modal.DeleteHandler {
	t.Helper()
	responder := newResponder(t, "Delete part")
	responder.TemplateName = "partials/part_delete.html"
	return &modal.DeleteHandler{Responder: responder, Strategy: stub}
}

func TestDeleteGetConfirmation(t *testing.T) {
	handler := newDeleteHandler(t, &deleteStub{exists: true})

	res := routeRequest(handler.Get, httptest.NewRequest(http.MethodGet, "/part/5/delete", nil), map[string]string{"id": "5"})

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, false, envelope["delete"])
	assert.Equal(t, float64(5), envelope["id"])
	assert.Equal(t, "Delete part", envelope["title"])
	html, _ := envelope["html_data"].(string)
	assert.Contains(t, html, "Resistor")
	_, hasForm := envelope["html_form"]
	assert.False(t, hasForm, "confirmation uses html_data, not html_form")
}

func TestDeletePost(t *testing.T) {
	stub := &deleteStub{exists: true}
	handler := newDeleteHandler(t, stub)

	res := routeRequest(handler.Post, postForm("/part/5/delete", url.Values{}), map[string]string{"id": "5"})

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, true, envelope["delete"])
	assert.Equal(t, float64(5), envelope["id"])
	assert.Equal(t, 1, stub.deleted)
}

func TestDeletePostRepeatIs404(t *testing.T) {
	stub := &deleteStub{exists: true}
	handler := newDeleteHandler(t, stub)

	first := routeRequest(handler.Post, postForm("/part/5/delete", url.Values{}), map[string]string{"id": "5"})
	require.Equal(t, http.StatusOK, first.Code)

	second := routeRequest(handler.Post, postForm("/part/5/delete", url.Values{}), map[string]string{"id": "5"})
	assert.Equal(t, http.StatusNotFound, second.Code)
	assert.Equal(t, 1, stub.deleted)
}
