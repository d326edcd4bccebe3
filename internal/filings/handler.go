package filings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"filing-backend/internal/shared/server/middleware"
	"filing-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches filing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.dashboard)
	rg.GET("/admin-dashboard", h.adminDashboard)
	rg.GET("/file", h.fileForm)
	rg.POST("/file", h.file)
	rg.GET("/new-filing", h.newFilingForm)
	rg.POST("/new-filing", h.newFiling)
}

// dashboard lists the caller's filings and nobody else's.
func (h *Handler) dashboard(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	list, err := h.Svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list filings", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(list))
}

// adminDashboard lists all filings for admins. Non-admins are sent back to
// their own dashboard rather than receiving an authorization error.
func (h *Handler) adminDashboard(c *gin.Context) {
	if !middleware.IsAdminFromContext(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	list, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list filings", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(list))
}

func (h *Handler) fileForm(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"fields": []string{"company_name"},
	})
}

func (h *Handler) file(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	companyName := c.PostForm("company_name")

	filing, err := h.Svc.Create(c.Request.Context(), userID, companyName)
	if err != nil {
		h.writeError(c, err, "failed to create filing")
		return
	}

	c.Set("filingId", filing.ID)
	respond.JSON(c, http.StatusCreated, toResponse(filing))
}

func (h *Handler) newFilingForm(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"fields": []string{"company_name", "id_upload"},
	})
}

func (h *Handler) newFiling(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	companyName := c.PostForm("company_name")

	fileHeader, err := c.FormFile("id_upload")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id_upload is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read id_upload", nil)
		return
	}
	defer file.Close()

	filing, err := h.Svc.CreateWithDocument(c.Request.Context(), userID, companyName, fileHeader.Filename, file)
	if err != nil {
		h.writeError(c, err, "failed to create filing")
		return
	}

	c.Set("filingId", filing.ID)
	respond.JSON(c, http.StatusCreated, toResponse(filing))
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "filing not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
