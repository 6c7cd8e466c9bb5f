package test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwttypes "github.com/Yulian302/findit-gateway/common/jwt"
	"github.com/gin-gonic/gin"
)

// PerformRequest runs one request through r. Headers are "Name: value"
// strings. With withAuth set, an access token for userID signed with secret
// is sent as the jwt cookie.
func PerformRequest(
	r *gin.Engine,
	t *testing.T,
	method, url string,
	body io.Reader,
	headers []string,
	withAuth bool,
	secret, userID string,
) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.RequestURI = url

	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			t.Fatalf("malformed header %q", h)
		}
		req.Header.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if withAuth {
		token, err := jwttypes.NewAccessToken(secret, userID, userID+"@example.com", time.Minute)
		if err != nil {
			t.Fatalf("Failed to sign token: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: jwttypes.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
