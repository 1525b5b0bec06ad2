package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/BruksfildServices01/ink-agenda/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type brokenResolver struct{}

func (brokenResolver) Resolve(context.Context, string) (auth.Caller, error) {
	return auth.Caller{}, auth.ErrMisconfigured
}

func protectedRouter(resolver auth.TokenResolver) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", AuthMiddleware(resolver), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c), "email": c.GetString(ContextUserEmail)})
	})
	return r
}

func call(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	jwtm := auth.NewJWTManager("secret", time.Hour)
	token, err := jwtm.Issue(9, "ana@studio.dev")
	require.NoError(t, err)

	r := protectedRouter(jwtm)

	rec := call(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), gjson.Get(rec.Body.String(), "id").Int())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	assert.Equal(t, http.StatusUnauthorized, call(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "Bearer ").Code)

	rec = call(r, "Bearer garbage")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid_token", gjson.Get(rec.Body.String(), "error_code").String())
}

func TestAuthMiddleware_ProviderMisconfigured(t *testing.T) {
	rec := call(protectedRouter(brokenResolver{}), "Bearer abc")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware_AllowList(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
