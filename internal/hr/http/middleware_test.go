package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/easyhrhq/easyhr/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Rejections(t *testing.T) {
	ts := newTestServer(t)

	// Missing header.
	code, env := ts.do(t, http.MethodGet, "/v1/company", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Authentication required", env.Message)

	// Wrong scheme.
	req := httptest.NewRequest(http.MethodGet, "/v1/company", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	req.Header.Set("X-Forwarded-For", "10.9.0.1")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	code, env = ts.do(t, http.MethodGet, "/v1/company", "not.a.jwt", nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Invalid token", env.Message)

	// Token signed with a different secret.
	forger, err := jwtx.NewHS256("wrong-secret", "easyhr-test")
	require.NoError(t, err)
	forged, err := forger.Sign(jwtx.NewSessionClaims("user", "x@y.com", "admin", "", time.Hour, time.Now().UTC()))
	require.NoError(t, err)
	code, env = ts.do(t, http.MethodGet, "/v1/company", forged, nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Invalid token", env.Message)

	// Well-signed token naming a user that doesn't exist.
	signer, err := jwtx.NewHS256("test-secret", "easyhr-test")
	require.NoError(t, err)
	ghost, err := signer.Sign(jwtx.NewSessionClaims("no-such-user", "x@y.com", "admin", "", time.Hour, time.Now().UTC()))
	require.NoError(t, err)
	code, env = ts.do(t, http.MethodGet, "/v1/company", ghost, nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "User not found", env.Message)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	ts := newTestServer(t)

	signer, err := jwtx.NewHS256("test-secret", "easyhr-test")
	require.NoError(t, err)
	stale, err := signer.Sign(jwtx.NewSessionClaims("user", "x@y.com", "admin", "",
		time.Hour, time.Now().UTC().Add(-2*time.Hour)))
	require.NoError(t, err)

	code, env := ts.do(t, http.MethodGet, "/v1/company", stale, nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Invalid token", env.Message)
}

func TestRateLimit_StrictAuthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	// All requests from one IP so they share a bucket. Strict profile
	// allows a burst of 5 per minute.
	var last int
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "10.8.0.1")
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		last = rec.Code
		if i < 5 {
			require.NotEqual(t, http.StatusTooManyRequests, last, "request %d", i)
		}
	}
	require.Equal(t, http.StatusTooManyRequests, last)

	// A different IP still gets through.
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "10.8.0.2")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.NotEqual(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_RetryAfterHeader(t *testing.T) {
	ts := newTestServer(t)

	// Moderate profile allows 20/min; hammer until it trips.
	var rec *httptest.ResponseRecorder
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/verify-email", strings.NewReader(`{"token":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "10.8.1.1")
		rec = httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			break
		}
	}
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
}
