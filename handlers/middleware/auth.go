package middleware

import (
	"net/http"
	"strings"

	"realestate-server/apperr"
	"realestate-server/auth"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
	ContextEmail  = "user_email"
)

// RequireAuth accepts the session cookie or an Authorization bearer token.
// It trusts the signed claims and does not hit the database.
func RequireAuth(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, cookieName)
		if token == "" {
			abort(c, apperr.Unauthorized("authentication required"))
			return
		}
		if !authenticate(c, tokens, token) {
			abort(c, apperr.Unauthorized("invalid or expired session"))
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the user on the context when a valid session is
// present and lets anonymous requests through.
func OptionalAuth(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := sessionToken(c, cookieName); token != "" {
			authenticate(c, tokens, token)
		}
		c.Next()
	}
}

// Authenticated reports whether RequireAuth or OptionalAuth accepted a session.
func Authenticated(c *gin.Context) bool {
	_, ok := UserID(c)
	return ok
}

func sessionToken(c *gin.Context, cookieName string) string {
	if token := bearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

func authenticate(c *gin.Context, tokens *auth.TokenManager, token string) bool {
	claims, err := tokens.Verify(token)
	if err != nil {
		return false
	}
	userID, _ := claims.UserID()
	c.Set(ContextUserID, userID)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextEmail, claims.Email)
	return true
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abort(c, apperr.Forbidden("insufficient permissions"))
	}
}

// UserID returns the authenticated user's id set by RequireAuth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abort(c *gin.Context, err *apperr.AppError) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Message,
		"code":  err.Code,
	})
}
