package httpHandler

import (
	"net/http"

	"realestate-server/apperr"
	"realestate-server/auth"
	"realestate-server/confs"
	"realestate-server/dtos"
	"realestate-server/handlers/middleware"
	"realestate-server/logger"
	"realestate-server/usecases"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	useCase *usecases.UserUseCase
	tokens  *auth.TokenManager
	session confs.SessionConfig
}

func NewAuthHandler(useCase *usecases.UserUseCase, tokens *auth.TokenManager, session confs.SessionConfig) *AuthHandler {
	return &AuthHandler{
		useCase: useCase,
		tokens:  tokens,
		session: session,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.useCase.Authenticate(req.Email, req.Password)
	if err != nil {
		if apperr.StatusOf(err) == http.StatusUnauthorized {
			logger.Log.WithField("client_ip", c.ClientIP()).Warn("failed login attempt")
		}
		respondError(c, err)
		return
	}

	token, expires, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, apperr.Internal("failed to start session", err))
		return
	}
	h.setCookie(c, token, int(h.tokens.TTL().Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"message":    "Logged in successfully",
		"data":       user,
		"expires_at": expires,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperr.Unauthorized("authentication required"))
		return
	}
	user, err := h.useCase.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": user,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, value, maxAge, "/", "", h.session.CookieSecure, true)
}
