package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/communityhours/hours-dashboard/internal/system/config"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
)

type stubHealth struct {
	err error
}

func (s stubHealth) HealthCheck(ctx context.Context) error {
	return s.err
}

func testOptions(db HealthChecker) Options {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return Options{
		Logger:   logger,
		CORS:     config.CORSConfig{Enabled: true, AllowedOrigins: []string{"http://app.local"}, AllowedMethods: []string{"GET"}},
		Identity: middleware.IdentityOptions{Secret: []byte("s"), Verify: true},
		Database: db,
	}
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, _ := SetupRouter(testOptions(nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))

	r, _ = SetupRouter(testOptions(stubHealth{err: errors.New("down")}))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAPIRequiresBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, v1 := SetupRouter(testOptions(nil))
	v1.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, _ := SetupRouter(testOptions(nil))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/dashboard/board", nil)
	req.Header.Set("Origin", "http://app.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.local", w.Header().Get("Access-Control-Allow-Origin"))
}
