package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cointemper/internal/config"
	"cointemper/internal/http-api/models"
	"cointemper/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) service.AuthService {
	t.Helper()
	return service.NewAuthService(&config.Config{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		JWTExpiry: time.Hour,
	})
}

func echoUserID(c *gin.Context) {
	if uid, ok := CurrentUserID(c); ok {
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": nil})
}

func serve(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := newTestAuthService(t)

	router := gin.New()
	router.GET("/protected", RequireAuth(authService), echoUserID)

	token, err := authService.GenerateToken(&models.User{ID: 42, Nickname: "n"})
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(router, "").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(router, "Token "+token).Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(router, "Bearer not-a-jwt").Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := serve(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "42")
	})
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := newTestAuthService(t)

	router := gin.New()
	router.GET("/protected", OptionalAuth(authService), echoUserID)

	token, err := authService.GenerateToken(&models.User{ID: 42, Nickname: "n"})
	require.NoError(t, err)

	t.Run("no header passes as anonymous", func(t *testing.T) {
		w := serve(router, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("valid token resolves", func(t *testing.T) {
		w := serve(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "42")
	})

	t.Run("invalid token is not downgraded", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(router, "Bearer not-a-jwt").Code)
	})
}
