package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubCheck struct {
	name string
	err  error
}

func (s stubCheck) IsReady(ctx context.Context) error { return s.err }
func (s stubCheck) Name() string                      { return s.name }

func serve(h *HealthHandler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterHealthRoutes(h, r)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestLive(t *testing.T) {
	w := serve(NewHealthHandler(stubCheck{name: "s3", err: errors.New("down")}), "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReady_AllHealthy(t *testing.T) {
	w := serve(NewHealthHandler(stubCheck{name: "s3"}, stubCheck{name: "dynamo"}), "/health/ready")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dynamo":"ok"`)
}

func TestReady_OneFailing(t *testing.T) {
	w := serve(NewHealthHandler(stubCheck{name: "s3"}, stubCheck{name: "dynamo", err: errors.New("table missing")}), "/health/ready")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"dynamo":"unavailable"`)
	assert.Contains(t, w.Body.String(), `"s3":"ok"`)
	assert.NotContains(t, w.Body.String(), "table missing")
}
