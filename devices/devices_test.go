package devices_test

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/Yulian302/findit-gateway/common/test"
	"github.com/Yulian302/findit-gateway/devices"
	"github.com/Yulian302/findit-gateway/routers"
	"github.com/Yulian302/findit-gateway/services"
	"github.com/Yulian302/findit-gateway/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

var (
	tokens *store.RedisDeviceTokenStore
	r      *gin.Engine
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	s, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	tokens = store.NewRedisDeviceTokenStore(redis.NewClient(&redis.Options{Addr: s.Addr()}))

	r = gin.New()
	routers.RegisterDeviceRoutes(devices.NewDeviceHandler(services.NewDeviceServiceImpl(tokens)), secret, r)

	code := m.Run()
	s.Close()
	os.Exit(code)
}

func TestSaveToken_Success(t *testing.T) {
	w := test.PerformRequest(r, t, "POST", "/devices/token", strings.NewReader(`{"token":"fcm:abc"}`), []string{"Content-Type: application/json"}, true, secret, "user-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token saved")

	got, err := tokens.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "fcm:abc", got)
}

func TestSaveToken_Replaces(t *testing.T) {
	for _, tok := range []string{"first", "second"} {
		w := test.PerformRequest(r, t, "POST", "/devices/token", strings.NewReader(`{"token":"`+tok+`"}`), []string{"Content-Type: application/json"}, true, secret, "user-2")
		require.Equal(t, http.StatusOK, w.Code)
	}

	got, err := tokens.Get(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestSaveToken_BadRequest(t *testing.T) {
	w := test.PerformRequest(r, t, "POST", "/devices/token", strings.NewReader(`{}`), []string{"Content-Type: application/json"}, true, secret, "user-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = test.PerformRequest(r, t, "POST", "/devices/token", strings.NewReader(`{"token":"   "}`), []string{"Content-Type: application/json"}, true, secret, "user-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveToken_Unauthenticated(t *testing.T) {
	w := test.PerformRequest(r, t, "POST", "/devices/token", strings.NewReader(`{"token":"x"}`), []string{"Content-Type: application/json"}, false, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
