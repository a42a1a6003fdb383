// File: internal/admin/handler.go
package admin

import (
	"fixitnow_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles the admin dashboard endpoint.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new admin handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("AdminHandler"),
	}
}

// RegisterRoutes sets up the dashboard under the admin group.
func (h *Handler) RegisterRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/dashboard", h.GetDashboard)
}

// GetDashboard handles GET /admin/dashboard.
func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Dashboard retrieved successfully.", dashboard)
}
