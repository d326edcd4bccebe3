package identity

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/shared/auth"
	"filing-backend/internal/shared/server/middleware"
	"filing-backend/internal/shared/server/respond"
	"filing-backend/internal/shared/telemetry"
	"filing-backend/internal/users"
)

const sessionCookieMaxAge = 24 * 60 * 60

// Handler bridges the external trust provider to local sessions.
type Handler struct {
	Provider Provider
	Users    *users.Service
}

// NewHandler constructs a Handler.
func NewHandler(provider Provider, usersSvc *users.Service) *Handler {
	return &Handler{Provider: provider, Users: usersSvc}
}

// RegisterRoutes attaches the login bridge.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/login", h.login)
}

// login asks the trust provider about the caller and, when it vouches for a
// resolvable user, establishes a session. Provider failures leave the caller
// anonymous; they are never fatal.
func (h *Handler) login(c *gin.Context) {
	ctx := c.Request.Context()

	identity, ok, err := h.Provider.Verify(ctx, c.Request)
	if err != nil {
		telemetry.Error("identity.check_failed", map[string]any{
			"err":        err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	if !ok || identity.UserID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}

	user, err := h.Users.GetByID(ctx, identity.UserID)
	if errors.Is(err, users.ErrNotFound) {
		// First login: provision the account if the provider supplied a
		// full identity; a bare user id must resolve to an existing row.
		if identity.Username == "" || identity.Email == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}
		user = users.User{
			ID:       identity.UserID,
			Username: identity.Username,
			Email:    identity.Email,
		}
		if err := h.Users.Provision(ctx, user); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create account", nil)
			return
		}
	} else if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}

	token, err := auth.SignSession(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue session", nil)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, sessionCookieMaxAge, "/", "", false, true)
	respond.JSON(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"isAdmin":  user.IsAdmin,
		},
	})
}
