package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/filings"
	"filing-backend/internal/identity"
	"filing-backend/internal/payments"
	"filing-backend/internal/shared/config"
	"filing-backend/internal/shared/server/middleware"
	"filing-backend/internal/shared/server/respond"
	"filing-backend/internal/transcripts"
	"filing-backend/internal/users"
)

// Handlers collects the feature handlers the router mounts.
type Handlers struct {
	Identity    *identity.Handler
	Users       *users.Handler
	Filings     *filings.Handler
	Payments    *payments.Handler
	Transcripts *transcripts.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(),
	)

	root := r.Group("/")
	root.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	h.Identity.RegisterRoutes(root)
	h.Users.RegisterRoutes(root)
	h.Filings.RegisterRoutes(root)
	h.Payments.RegisterRoutes(root)
	h.Transcripts.RegisterRoutes(root)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
