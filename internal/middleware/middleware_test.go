package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/money_transfer_engine/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "middleware-test-secret"
	testIssuer = "middleware-test"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()), AuthMiddleware(testSecret, testIssuer))
	r.GET("/whoami", func(c *gin.Context) {
		username, _ := GetUsernameFromContext(c)
		c.String(http.StatusOK, username)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := utils.GenerateAccessToken("alice", testSecret, testIssuer, time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateAccessToken("alice", testSecret, testIssuer, -time.Minute)
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateAccessToken("alice", testSecret, "someone-else", time.Hour)
	require.NoError(t, err)
	otherSecret, err := utils.GenerateAccessToken("alice", "wrong-secret", testIssuer, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "lower case scheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantBody: "alice"},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantBody: "Authorization header required"},
		{name: "wrong scheme", header: "Token " + valid, wantStatus: http.StatusUnauthorized, wantBody: "Bearer {token}"},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantBody: "Token has expired"},
		{name: "wrong issuer", header: "Bearer " + otherIssuer, wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
		{name: "wrong secret", header: "Bearer " + otherSecret, wantStatus: http.StatusUnauthorized, wantBody: "Invalid token"},
	}

	r := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), ErrorCodeUnauthorized)
			}
		})
	}
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.LessOrEqual(t, len(generated), 128)
}

func TestRateLimit_PerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, err := NewRateLimiter("2-M", nil)
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(testSecret, testIssuer), RateLimit(limiter))
	r.GET("/limited", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(user string) int {
		token, err := utils.GenerateAccessToken(user, testSecret, testIssuer, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
	assert.Equal(t, http.StatusOK, send("bob"))
}

func TestRateLimit_SharedRedisStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)

	newInstance := func() *gin.Engine {
		store, err := NewRateLimitStore("redis://" + mr.Addr())
		require.NoError(t, err)
		limiter, err := NewRateLimiter("2-M", store)
		require.NoError(t, err)

		r := gin.New()
		r.Use(RateLimit(limiter))
		r.GET("/limited", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}
	first, second := newInstance(), newInstance()

	send := func(r *gin.Engine) int {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(first))
	assert.Equal(t, http.StatusOK, send(second))
	assert.Equal(t, http.StatusTooManyRequests, send(first), "instances share one budget")
	assert.NotEmpty(t, mr.Keys())
}

func TestNewRateLimitStore_InvalidURL(t *testing.T) {
	_, err := NewRateLimitStore("not a url://")
	assert.Error(t, err)
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	_, err := NewRateLimiter("lots", nil)
	assert.Error(t, err)
}

func TestPrometheusMiddleware_LabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}
