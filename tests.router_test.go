package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type routeTestCase struct {
	name        string
	request     *http.Request
	implemented bool
}

func runRouteTestCases(t *testing.T, router http.Handler, testCases []routeTestCase) {
	t.Helper()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupAdvertRoutes ensures all expected advert endpoints are implemented.
func TestSetupAdvertRoutes(t *testing.T) {
	testCases := []routeTestCase{
		{"index endpoint", httptest.NewRequest(http.MethodGet, "/", nil), true},
		{"status endpoint", httptest.NewRequest(http.MethodGet, "/status", nil), true},
		{"create advert endpoint", httptest.NewRequest(http.MethodPost, "/v1/adverts", nil), true},
		{"create adverts batch endpoint", httptest.NewRequest(http.MethodPost, "/v1/adverts/batch", nil), true},
		{"fetch all adverts endpoint", httptest.NewRequest(http.MethodGet, "/v1/adverts", nil), true},
		{"fetch all adverts endpoint with slash", httptest.NewRequest(http.MethodGet, "/v1/adverts/", nil), true},
		{"fetch adverts by category endpoint", httptest.NewRequest(http.MethodGet, "/v1/adverts/category/books", nil), true},
		{"fetch adverts by price endpoint", httptest.NewRequest(http.MethodGet, "/v1/adverts/price?maxPrice=10", nil), true},
		{"update advert endpoint", httptest.NewRequest(http.MethodPut, "/v1/adverts/123456", nil), true},
		{"delete advert endpoint", httptest.NewRequest(http.MethodDelete, "/v1/adverts/123456", nil), true},
		{"invalid api endpoint", httptest.NewRequest(http.MethodGet, "/v1", nil), false},
		{"invalid adverts endpoint", httptest.NewRequest(http.MethodGet, "/adverts", nil), false},
	}

	api := newTestAPIHandler(newTestAdvertService())
	router := httprouter.New()
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	api.SetupAdvertRoutes(router, m)
	runRouteTestCases(t, router, testCases)
}

// TestSetupOpsRoutes ensures all expected operations endpoints are implemented.
func TestSetupOpsRoutes(t *testing.T) {
	testCases := []routeTestCase{
		{"fetch configs endpoint", httptest.NewRequest(http.MethodGet, "/ops/configs", nil), true},
		{"fetch stats endpoint", httptest.NewRequest(http.MethodGet, "/ops/stats", nil), true},
		{"maintenance mode endpoint", httptest.NewRequest(http.MethodGet, "/ops/maintenance", nil), true},
		{"metrics endpoint", httptest.NewRequest(http.MethodGet, "/ops/metrics", nil), true},
		{"invalid ops endpoint", httptest.NewRequest(http.MethodGet, "/ops", nil), false},
		{"unknown ops endpoint", httptest.NewRequest(http.MethodGet, "/ops/unknown", nil), false},
		{"disabled profiler endpoint", httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/", nil), false},
	}

	clock := NewMockClocker()
	config := &Config{ProfilerEnable: false}
	api := NewAPIHandler(zap.NewNop(), config, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), NewMetrics(), newTestAdvertService())
	router := httprouter.New()
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	api.SetupOpsRoutes(router, m)
	runRouteTestCases(t, router, testCases)
}

// TestSetupRoutes ensures ops endpoints are only exposed when enabled.
func TestSetupRoutes(t *testing.T) {
	testCases := []struct {
		name               string
		OpsEndpointsEnable bool
		request            *http.Request
		implemented        bool
	}{
		{"ops disable:fetch configs endpoint", false, httptest.NewRequest(http.MethodGet, "/ops/configs", nil), false},
		{"ops enable:fetch configs endpoint", true, httptest.NewRequest(http.MethodGet, "/ops/configs", nil), true},
		{"ops enable:disabled profiler endpoint", true, httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/", nil), false},
		{"ops disable:create advert endpoint", false, httptest.NewRequest(http.MethodPost, "/v1/adverts", nil), true},
		{"ops enable:create advert endpoint", true, httptest.NewRequest(http.MethodPost, "/v1/adverts", nil), true},
		{"swagger endpoint", false, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil), true},
		{"invalid ops endpoint", false, httptest.NewRequest(http.MethodGet, "/ops/", nil), false},
		{"invalid advert endpoint", false, httptest.NewRequest(http.MethodGet, "/adverts/", nil), false},
	}

	config := &Config{}
	clock := NewMockClocker()
	api := NewAPIHandler(zap.NewNop(), config, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), nil, newTestAdvertService())
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config.OpsEndpointsEnable = tc.OpsEndpointsEnable
			router := api.SetupRoutes(httprouter.New(), m)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, tc.request)
			if tc.implemented {
				assert.NotEqual(t, 404, w.Code)
			} else {
				assert.Equal(t, 404, w.Code)
			}
		})
	}
}

// TestSetupRoutes_NotFound ensures exact status code and json response body when a user requests an inexistant route.
func TestSetupRoutes_NotFound(t *testing.T) {
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	api := newTestAPIHandler(nil)
	router := api.SetupRoutes(httprouter.New(), m)
	r := httptest.NewRequest(http.MethodGet, "/x/adverts/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	expected := `{"requestid":"", "status":404, "message":"resource not found", "data":{}}`
	assert.JSONEq(t, expected, string(data))
}

// TestSetupOpsRoutes_Profiler ensures profiling endpoints are exposed once enabled.
func TestSetupOpsRoutes_Profiler(t *testing.T) {
	testCases := []routeTestCase{
		{"pprof index endpoint", httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/", nil), true},
		{"pprof heap endpoint", httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/heap", nil), true},
		{"pprof cmdline endpoint", httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/cmdline", nil), true},
		{"pprof unknown profile endpoint", httptest.NewRequest(http.MethodGet, "/ops/debug/pprof/unknown", nil), false},
	}

	clock := NewMockClocker()
	api := NewAPIHandler(zap.NewNop(), &Config{ProfilerEnable: true}, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("abc"), nil, nil)
	router := httprouter.New()
	m := &MiddlewareMap{public: (&Middlewares{}).Chain, ops: (&Middlewares{}).Chain}
	api.SetupOpsRoutes(router, m)
	runRouteTestCases(t, router, testCases)
}
