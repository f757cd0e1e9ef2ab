package category_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktree-app/stocktree/internal/category"
	"github.com/stocktree-app/stocktree/internal/view"
	_ "github.com/stocktree-app/stocktree/testing"
)

func newCategoryRouter(t *testing.T, repo *fakeRepo) chi.Router {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)

	service := category.NewService(repo)
	handler := category.NewHandler(nil, service, repo, templates)

	r := chi.NewRouter()
	r.Route("/part/category", handler.MountRoutes)
	return r
}

func TestCategoryTreeEndpoint(t *testing.T) {
	one := int64(1)
	repo := &fakeRepo{
		categories: map[int64]category.Category{},
		topLevel: []category.CountedCategory{
			counted(1, "Actives", nil, 3),
			counted(2, "Passives", nil, 4),
		},
		byParent: map[int64][]category.CountedCategory{
			1: {counted(10, "Diodes", &one, 5)},
		},
	}
	router := newCategoryRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/part/category/tree/", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Tree []json.RawMessage `json:"tree"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	require.Len(t, payload.Tree, 1, "the payload wraps a single synthetic root")

	root := string(payload.Tree[0])
	assert.Contains(t, root, `"pk":null`)
	assert.Contains(t, root, `"text":"Parts"`)
	assert.Contains(t, root, `"tags":[7]`)
	assert.Contains(t, root, `"Diodes"`)
}

func TestCategoryTreeEmpty(t *testing.T) {
	router := newCategoryRouter(t, &fakeRepo{categories: map[int64]category.Category{}})

	req := httptest.NewRequest(http.MethodGet, "/part/category/tree/", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"nodes":[]`)
}

func TestCategoryCreateFlow(t *testing.T) {
	repo := &fakeRepo{categories: map[int64]category.Category{}}
	router := newCategoryRouter(t, repo)

	getRes := httptest.NewRecorder()
	router.ServeHTTP(getRes, httptest.NewRequest(http.MethodGet, "/part/category/create", nil))
	require.Equal(t, http.StatusOK, getRes.Code)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(getRes.Body.Bytes(), &envelope))
	assert.Equal(t, "Create new part category", envelope["title"])

	values := url.Values{"name": {"Passives"}}
	postReq := httptest.NewRequest(http.MethodPost, "/part/category/create", strings.NewReader(values.Encode()))
	postReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	postRes := httptest.NewRecorder()
	router.ServeHTTP(postRes, postReq)

	require.Equal(t, http.StatusOK, postRes.Code)
	envelope = map[string]any{}
	require.NoError(t, json.Unmarshal(postRes.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope["form_valid"])
	assert.Equal(t, float64(99), envelope["pk"])
	assert.Equal(t, "/part/category/99/", envelope["url"])
}

func TestCategoryDeleteConfirmation(t *testing.T) {
	repo := &fakeRepo{categories: map[int64]category.Category{
		3: {ID: 3, Name: "Obsolete"},
	}}
	router := newCategoryRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/part/category/3/delete", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope["delete"])
	assert.Equal(t, "Delete part category", envelope["title"])
	html, _ := envelope["html_data"].(string)
	assert.Contains(t, html, "Obsolete")
}
