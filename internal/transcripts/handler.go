package transcripts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/filings"
	"filing-backend/internal/shared/server/middleware"
	"filing-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches transcript routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/transcript/:filingId", h.get)
	rg.POST("/transcript/:filingId", h.generate)
}

// get returns the filing's status and the transcript key, empty when no
// transcript has been generated yet.
func (h *Handler) get(c *gin.Context) {
	filing, ok := h.authorize(c)
	if !ok {
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"filingId":   filing.ID,
		"status":     filing.Status,
		"transcript": filing.TranscriptKey,
	})
}

func (h *Handler) generate(c *gin.Context) {
	if _, ok := h.authorize(c); !ok {
		return
	}

	filing, err := h.Svc.Generate(c.Request.Context(), c.Param("filingId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Set("filingId", filing.ID)
	c.Set("statusTransition", "Paid->Completed")
	respond.JSON(c, http.StatusOK, gin.H{
		"filingId":   filing.ID,
		"status":     filing.Status,
		"transcript": filing.TranscriptKey,
	})
}

// authorize loads the filing and enforces owner-or-admin access. Filings
// the caller may not see are reported as not found, not forbidden.
func (h *Handler) authorize(c *gin.Context) (filings.Filing, bool) {
	filing, err := h.Svc.Get(c.Request.Context(), c.Param("filingId"))
	if err != nil {
		h.writeError(c, err)
		return filings.Filing{}, false
	}

	if filing.UserID != middleware.UserIDFromContext(c) && !middleware.IsAdminFromContext(c) {
		respond.Error(c, http.StatusNotFound, "not_found", "filing not found", nil)
		return filings.Filing{}, false
	}
	return filing, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, filings.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "filing not found", nil)
	case errors.Is(err, filings.ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "conflict", "filing is not paid", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate transcript", nil)
	}
}
