package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/filings"
	"filing-backend/internal/shared/server/middleware"
	"filing-backend/internal/shared/server/respond"
)

// Handler wires payment routes to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches payment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/pay", h.pay)
	rg.GET("/review", h.review)
	rg.POST("/review", h.pay)
}

func (h *Handler) review(c *gin.Context) {
	respond.JSON(c, http.StatusOK, h.Svc.Review())
}

// pay charges the flat fee and redirects to the filing view on success.
func (h *Handler) pay(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	filingID := c.PostForm("filing_id")
	token := c.PostForm("payment_token")
	if token == "" {
		// Stripe's checkout form posts the token under this name.
		token = c.PostForm("stripeToken")
	}

	filing, err := h.Svc.Pay(c.Request.Context(), userID, filingID, token)
	if err != nil {
		var gatewayErr *GatewayError
		switch {
		case errors.Is(err, filings.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, filings.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "filing not found", nil)
		case errors.Is(err, filings.ErrInvalidTransition):
			respond.Error(c, http.StatusConflict, "conflict", "filing is already paid", nil)
		case errors.As(err, &gatewayErr):
			respond.Error(c, http.StatusPaymentRequired, "gateway_error", gatewayErr.Message, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "payment failed", nil)
		}
		return
	}

	c.Set("filingId", filing.ID)
	c.Set("statusTransition", string(filings.StatusPending)+"->"+string(filings.StatusPaid))
	c.Redirect(http.StatusFound, "/file")
}
