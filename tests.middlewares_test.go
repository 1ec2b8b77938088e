package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestMiddlewaresStacks ensures we get both public and ops middlewares
// stacks with exact number of elements in those stacks.
func TestMiddlewaresStacks(t *testing.T) {
	clock := NewMockClocker()
	api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), nil, nil)
	pub, ops := api.MiddlewaresStacks()
	assert.Equal(t, 7, len(*pub))
	assert.Equal(t, 6, len(*ops))

	api = NewAPIHandler(zap.NewNop(), nil, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), NewMetrics(), nil)
	pub, ops = api.MiddlewaresStacks()
	assert.Equal(t, 8, len(*pub))
	assert.Equal(t, 7, len(*ops))
}

// TestMiddlewaresStacks_MetricsCoverage ensures requests rejected by the
// maintenance mode and ops requests are both recorded in metrics.
func TestMiddlewaresStacks_MetricsCoverage(t *testing.T) {
	clock := NewMockClocker()
	metrics := NewMetrics()
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), metrics, nil)
	pub, ops := api.MiddlewaresStacks()
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}

	api.mode.enabled.Store(true)
	w := httptest.NewRecorder()
	pub.Chain(handler)(w, httptest.NewRequest("GET", "/v1/adverts", nil), nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	ops.Chain(handler)(w, httptest.NewRequest("GET", "/ops/stats", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/ops/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `adverts_http_requests_total{method="GET",path="/v1/adverts",status="503"} 1`)
	assert.Contains(t, body, `adverts_http_requests_total{method="GET",path="/ops/stats",status="200"} 1`)
}

// TestChain ensures each middleware in the stack is called as well the handler.
func TestChain(t *testing.T) {
	var ca, cb, cc, ch bool
	queue := make(chan int, 4)

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 1
			ca = true
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 2
			cb = true
			next(w, r, ps)
		}
	}
	middlewareC := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 3
			cc = true
			next(w, r, ps)
		}
	}
	middlewares := Middlewares{
		middlewareA,
		middlewareB,
		middlewareC,
	}

	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		queue <- 4
		ch = true
	}

	chained := (&middlewares).Chain(handler)
	req := httptest.NewRequest("GET", "/v1/adverts", nil)
	w := httptest.NewRecorder()
	chained(w, req, nil)

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, ch)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})
}

// TestRequestsCounterMiddleware ensures the request counter increment.
func TestRequestsCounterMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil)
	req := httptest.NewRequest("GET", "/v1/adverts", nil)
	w := httptest.NewRecorder()
	var num uint64
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		num = GetRequestNumberFromContext(req.Context())
	}
	wrapped := api.RequestsCounterMiddleware(handler)
	wrapped(w, req, nil)
	wrapped(w, req, nil)
	assert.Equal(t, uint64(2), num)
	assert.Equal(t, uint64(2), api.stats.called)
}

// TestRequestIDMiddleware ensures the request id is set in context and echoed in headers.
func TestRequestIDMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil)
	req := httptest.NewRequest("GET", "/v1/adverts", nil)
	w := httptest.NewRecorder()
	var requestID string
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		requestID = GetValueFromContext(req.Context(), RequestIDContextKey)
	}
	api.RequestIDMiddleware(handler)(w, req, nil)
	assert.Equal(t, "r:abc", requestID)
	assert.Equal(t, "r:abc", w.Header().Get("X-Request-ID"))
}

// TestStatsMiddleware ensures responses are counted per status code.
func TestStatsMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil)
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	}
	wrapped := api.StatsMiddleware(handler)
	for i := 0; i < 3; i++ {
		wrapped(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/v1/adverts/123456", nil), nil)
	}
	assert.Equal(t, uint64(3), api.stats.status[http.StatusNoContent])
}

// TestMaintenanceModeMiddleware ensures requests are rejected while maintenance mode is on.
func TestMaintenanceModeMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil)
	var called bool
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		called = true
	}
	wrapped := api.MaintenanceModeMiddleware(handler)

	w := httptest.NewRecorder()
	api.Maintenance(w, httptest.NewRequest("GET", "/ops/maintenance?status=enable&msg=upgrade", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	wrapped(w, httptest.NewRequest("GET", "/v1/adverts", nil), nil)
	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "upgrade")

	w = httptest.NewRecorder()
	api.Maintenance(w, httptest.NewRequest("GET", "/ops/maintenance?status=disable", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	wrapped(w, httptest.NewRequest("GET", "/v1/adverts", nil), nil)
	assert.True(t, called)

	w = httptest.NewRecorder()
	api.Maintenance(w, httptest.NewRequest("GET", "/ops/maintenance?status=unknown", nil), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestPanicRecoveryMiddleware ensures a panicking handler produces a 500 response.
func TestPanicRecoveryMiddleware(t *testing.T) {
	api := newTestAPIHandler(nil)
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		panic("unexpected")
	}
	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		api.PanicRecoveryMiddleware(handler)(w, httptest.NewRequest("GET", "/v1/adverts", nil), nil)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestMetricsMiddleware ensures requests are recorded under their normalized path.
func TestMetricsMiddleware(t *testing.T) {
	metrics := NewMetrics()
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		w.WriteHeader(http.StatusNoContent)
	}
	wrapped := metrics.MetricsMiddleware(handler)
	wrapped(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/v1/adverts/123456", nil), nil)

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/ops/metrics", nil))
	assert.Contains(t, w.Body.String(), `adverts_http_requests_total{method="DELETE",path="/v1/adverts/:id",status="204"} 1`)
}

func TestNormalizePath(t *testing.T) {
	testCases := map[string]string{
		"/":                          "/",
		"/v1/adverts":                "/v1/adverts",
		"/v1/adverts/":               "/v1/adverts",
		"/v1/adverts/123456":         "/v1/adverts/:id",
		"/v1/adverts/category/books": "/v1/adverts/category/:category",
		"/v1/adverts/category/2024":  "/v1/adverts/category/:category",
		"/v1/adverts/price":          "/v1/adverts/price",
	}
	for path, expected := range testCases {
		assert.Equal(t, expected, normalizePath(path), path)
	}
}
