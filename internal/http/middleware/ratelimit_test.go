package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// Without a Redis client the limiter must be a transparent no-op so dev
// setups work with just MySQL.
func TestRateLimitNoRedisPassesThrough(t *testing.T) {
	e := echo.New()
	mw := RateLimitMiddleware(RateLimitConfig{Redis: nil, RPS: 1})
	e.POST("/reservations", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, mw)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitZeroRPSPassesThrough(t *testing.T) {
	e := echo.New()
	mw := RateLimitMiddleware(RateLimitConfig{Redis: nil, RPS: 0})
	e.POST("/reservations", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, mw)

	req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
