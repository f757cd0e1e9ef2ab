package modal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stocktree-app/stocktree/internal/modal"
	_ "github.com/stocktree-app/stocktree/testing"
)

func newQRHandler(t *testing.T, data func(ctx context.Context, id int64) (string, error)) *modal.QRHandler {
	t.Helper()
	responder := newResponder(t, "Stock item QR code")
	responder.TemplateName = "partials/qr_code.html"
	return &modal.QRHandler{Responder: responder, QRData: data}
}

func TestQRGetRendersPayload(t *testing.T) {
	handler := newQRHandler(t, func(ctx context.Context, id int64) (string, error) {
		return `{"tool":"stocktree","type":"stockitem"}`, nil
	})

	res := routeRequest(handler.Get, httptest.NewRequest(http.MethodGet, "/stock/item/4/qr_code", nil), map[string]string{"id": "4"})

	envelope := decodeEnvelope(t, res)
	assert.Equal(t, "Stock item QR code", envelope["title"])
	html, _ := envelope["html_form"].(string)
	assert.Contains(t, html, "qr-container")
	assert.Contains(t, html, "stockitem")
}

func TestQRGetErrorRendersMessage(t *testing.T) {
	handler := newQRHandler(t, func(ctx context.Context, id int64) (string, error) {
		return "", errors.New("boom")
	})

	res := routeRequest(handler.Get, httptest.NewRequest(http.MethodGet, "/stock/item/4/qr_code", nil), map[string]string{"id": "4"})

	envelope := decodeEnvelope(t, res)
	html, _ := envelope["html_form"].(string)
	assert.Contains(t, html, "Error generating QR code")
	assert.NotContains(t, html, "qr-container")
}

func TestQRGetEmptyPayloadIsError(t *testing.T) {
	handler := newQRHandler(t, func(ctx context.Context, id int64) (string, error) {
		return "", nil
	})

	res := routeRequest(handler.Get, httptest.NewRequest(http.MethodGet, "/stock/item/4/qr_code", nil), map[string]string{"id": "4"})

	envelope := decodeEnvelope(t, res)
	html, _ := envelope["html_form"].(string)
	assert.Contains(t, html, "Error generating QR code")
}

func TestQRGetBadID(t *testing.T) {
	handler := newQRHandler(t, func(ctx context.Context, id int64) (string, error) {
		t.Fatal("resolver must not run for a bad id")
		return "", nil
	})

	res := routeRequest(handler.Get, httptest.NewRequest(http.MethodGet, "/stock/item/abc/qr_code", nil), map[string]string{"id": "abc"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestViewGetAndPost(t *testing.T) {
	view := &modal.View{Responder: newResponder(t, "Plain dialog")}

	getRes := httptest.NewRecorder()
	view.Get(getRes, httptest.NewRequest(http.MethodGet, "/dialog", nil))
	envelope := decodeEnvelope(t, getRes)
	assert.Equal(t, "Plain dialog", envelope["title"])
	_, hasHTML := envelope["html_form"]
	assert.True(t, hasHTML)

	postRes := httptest.NewRecorder()
	view.Post(postRes, httptest.NewRequest(http.MethodPost, "/dialog", nil))
	assert.Equal(t, http.StatusOK, postRes.Code)
	assert.JSONEq(t, `""`, postRes.Body.String())
}

func TestResponderDataFuncOverrides(t *testing.T) {
	responder := newResponder(t, "Hooked")
	responder.DataFunc = func(r *http.Request) map[string]any {
		return map[string]any{"title": "Replaced", "extra": "value"}
	}
	view := &modal.View{Responder: responder}

	res := httptest.NewRecorder()
	view.Get(res, httptest.NewRequest(http.MethodGet, "/dialog", nil))

	envelope := decodeEnvelope(t, res)
	// Per-view hook values win over envelope defaults.
	assert.Equal(t, "Replaced", envelope["title"])
	assert.Equal(t, "value", envelope["extra"])
}

func TestParamReadsByMethod(t *testing.T) {
	get := httptest.NewRequest(http.MethodGet, "/part/create?category=7", nil)
	assert.Equal(t, "7", modal.Param(get, "category", http.MethodGet))

	body := strings.NewReader(url.Values{"category": {"9"}}.Encode())
	post := httptest.NewRequest(http.MethodPost, "/part/create", body)
	post.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Equal(t, "9", modal.Param(post, "category", http.MethodPost))

	// The method argument selects the source; a POST body is not consulted
	// for a GET lookup.
	assert.Equal(t, "", modal.Param(get, "category", http.MethodPost))
}

func TestParamAbsentDefaultsToEmpty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/part/create", nil)
	assert.Equal(t, "", modal.Param(r, "category", http.MethodGet))
	assert.Equal(t, "", modal.Param(r, "category", http.MethodPost))
}
