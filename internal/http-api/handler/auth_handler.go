package handler

import (
	"errors"
	"net/http"
	"strings"

	"cointemper/internal/http-api/dto"
	"cointemper/internal/http-api/middleware"
	"cointemper/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	loginService service.LoginService
}

func NewAuthHandler(loginService service.LoginService) *AuthHandler {
	return &AuthHandler{loginService: loginService}
}

// RegisterRoutes registers the /auth surface.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, authService service.AuthService) {
	kakao := router.Group("/kakao")
	{
		kakao.GET("/login-url", h.LoginURL)
		kakao.POST("/login", h.Login)
		kakao.POST("/logout", middleware.RequireAuth(authService), h.Logout)
	}
	router.GET("/me", middleware.RequireAuth(authService), h.Me)
}

// LoginURL hands the client the Kakao authorization URL plus the state token
// to round-trip.
// GET /auth/kakao/login-url
func (h *AuthHandler) LoginURL(c *gin.Context) {
	url, state := h.loginService.LoginURL()
	c.JSON(http.StatusOK, dto.LoginURLResponse{URL: url, State: state})
}

// Login exchanges a Kakao credential for a local session token, provisioning
// the account on first login.
// POST /auth/kakao/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.KakaoLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch {
	case req.AccessToken != "":
		token, user, err := h.loginService.LoginWithAccessToken(c.Request.Context(), req.AccessToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "kakao login failed"})
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.FromModelToUserResponse(user)})
	case req.Code != "":
		token, user, err := h.loginService.LoginWithCode(c.Request.Context(), req.Code)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "kakao login failed"})
			return
		}
		c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.FromModelToUserResponse(user)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrLoginRequest.Error()})
	}
}

// Me returns the nickname bound to the current session. A valid token whose
// account has since vanished resolves to 404 rather than a stale identity.
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	nickname, err := h.loginService.UserNickname(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nickname": nickname})
}

// Logout forwards the session invalidation to Kakao. The Kakao access token
// travels in a dedicated header since Authorization carries the local JWT.
// POST /auth/kakao/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken := strings.TrimSpace(c.GetHeader("X-Kakao-Access-Token"))
	if accessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing kakao access token"})
		return
	}

	if err := h.loginService.Logout(c.Request.Context(), accessToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "kakao logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": true})
}
