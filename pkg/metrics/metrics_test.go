package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsRequests(t *testing.T) {
	m := New("test")
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/suppliers/:id", func(c echo.Context) error {
		if c.Param("id") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/api/suppliers/1", "/api/suppliers/2", "/api/suppliers/missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/suppliers/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/suppliers/:id", "404")))
}

func TestObserveOp(t *testing.T) {
	m := New("test")

	m.ObserveOp("addSupplier", time.Now(), nil)
	m.ObserveOp("addSupplier", time.Now(), errors.New("boom"))
	m.SetCacheSize("suppliers", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("addSupplier", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("addSupplier", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.cacheSize.WithLabelValues("suppliers")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New("test")
	m.SetCacheSize("suppliers", 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_store_cached_records")
}
