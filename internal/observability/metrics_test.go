package observability_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktree-app/stocktree/internal/observability"
	_ "github.com/stocktree-app/stocktree/testing"
)

func TestMiddlewareRecordsRequests(t *testing.T) {
	metrics := observability.NewMetrics()

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/part/{id}/edit", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, id := range []string{"1", "2", "3"} {
		req := httptest.NewRequest(http.MethodGet, "/part/"+id+"/edit", nil)
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		require.Equal(t, http.StatusOK, res.Code)
	}

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRes := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRes, metricsReq)

	body := metricsRes.Body.String()
	// The chi route pattern keeps cardinality bounded.
	assert.Contains(t, body, `route="/part/{id}/edit"`)
	assert.True(t, strings.Contains(body, `stocktree_http_requests_total`), "counter must be exported")
	assert.NotContains(t, body, `route="/part/1/edit"`)
}

func TestNilMetricsHandler(t *testing.T) {
	var metrics *observability.Metrics

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	res := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(res, req)

	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestNilMetricsMiddlewarePassthrough(t *testing.T) {
	var metrics *observability.Metrics

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	res := httptest.NewRecorder()
	metrics.Middleware(inner).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, res.Code)
}
