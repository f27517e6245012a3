package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) *PrometheusMiddleware {
	t.Helper()
	// fresh registry per test, the default one rejects duplicate collectors
	m, err := NewPrometheusMiddleware(prometheus.NewRegistry())
	require.NoError(t, err)
	return m
}

func TestPrometheusMiddleware(t *testing.T) {
	m := newTestMiddleware(t)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Delete("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/error", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "bad request")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/test", "200")))

	_, err = app.Test(httptest.NewRequest("DELETE", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues("DELETE", "/test", "200")))

	// a handler error is counted under its mapped status
	_, err = app.Test(httptest.NewRequest("GET", "/error", nil))
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/error", "400")))
}

func TestPrometheusMiddleware_ExcludesMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "http_requests_total" {
			assert.Empty(t, mf.GetMetric(), "scrapes of /metrics must not count themselves")
		}
	}
}

func TestPrometheusMiddleware_UsesRoutePattern(t *testing.T) {
	m := newTestMiddleware(t)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/api/pdf/:id/view", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// two different IDs must land on the same label value
	for _, id := range []string{"123", "456"} {
		_, err := app.Test(httptest.NewRequest("GET", "/api/pdf/"+id+"/view", nil))
		require.NoError(t, err)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestCount.WithLabelValues("GET", "/api/pdf/:id/view", "200")))
	assert.NotZero(t, testutil.CollectAndCount(m.requestDuration))
}
