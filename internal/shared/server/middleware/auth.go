package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/shared/auth"
	"filing-backend/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	usernameKey = "userName"
	isAdminKey  = "isAdmin"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "filing_session"

// Auth validates session tokens and stores identity in context. Every route
// requires a session except the health check and the external-login bridge.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		path := c.Request.URL.Path
		if path == "/health" || strings.HasPrefix(path, "/auth/") {
			c.Next()
			return
		}

		token := sessionToken(c)
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}

		claims, err := auth.VerifySession(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid session", nil)
			return
		}

		c.Set(userIDKey, claims.Subject)
		if claims.Username != "" {
			c.Set(usernameKey, claims.Username)
		}
		c.Set(isAdminKey, claims.Admin)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UsernameFromContext fetches the username set by the auth middleware.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(usernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// IsAdminFromContext reports whether the auth middleware marked the caller as admin.
func IsAdminFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, _ := c.Get(isAdminKey)
	if admin, ok := val.(bool); ok {
		return admin
	}
	return false
}
