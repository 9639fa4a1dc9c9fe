package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-board-api/internal/middleware"
)

const loginBody = `{"email":"ghost@x.com","password":"secret1"}`

func loginFrom(t *testing.T, env testEnv, forwardedFor string) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(loginBody))
	req.RemoteAddr = "192.0.2.1:40000"
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w.Code
}

func TestRouter_LoginLimitIgnoresForwardedFor(t *testing.T) {
	l, err := middleware.NewLimiter("1-M")
	require.NoError(t, err)
	env := setupTestEnv(t, withLoginLimiter(l))

	codes := []int{
		loginFrom(t, env, "203.0.113.10"),
		loginFrom(t, env, "203.0.113.11"),
		loginFrom(t, env, "203.0.113.12"),
	}
	require.Equal(t, []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRouter_LoginLimitTrustsConfiguredProxy(t *testing.T) {
	l, err := middleware.NewLimiter("1-M")
	require.NoError(t, err)
	env := setupTestEnv(t, withLoginLimiter(l), withTrustedProxies("192.0.2.1"))

	require.Equal(t, http.StatusUnauthorized, loginFrom(t, env, "203.0.113.10"))
	require.Equal(t, http.StatusUnauthorized, loginFrom(t, env, "203.0.113.11"))
	require.Equal(t, http.StatusTooManyRequests, loginFrom(t, env, "203.0.113.10"))
}

func TestNewRouter_InvalidTrustedProxy(t *testing.T) {
	_, err := NewRouter(RouterConfig{TrustedProxies: []string{"not-an-ip"}}, Services{})
	require.Error(t, err)
}
