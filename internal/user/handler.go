// File: internal/user/handler.go
package user

import (
	"fixitnow_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles admin-facing user management requests. Own-account
// routes live under /auth.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("UserHandler"),
	}
}

// RegisterAdminRoutes sets up user management under the admin group.
func (h *Handler) RegisterAdminRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/users", h.AdminListUsers)
	adminGroup.PUT("/users/:id/status", h.AdminSetUserStatus)
}

// AdminListUsers handles GET /admin/users.
func (h *Handler) AdminListUsers(c *gin.Context) {
	var query AdminUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	users, err := h.service.AdminListUsers(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	common.RespondOK(c, "Users retrieved successfully.", responses)
}

// AdminSetUserStatus handles PUT /admin/users/:id/status. Suspending a
// user locks them out on their next request; tokens are not revoked.
func (h *Handler) AdminSetUserStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}

	var req AdminSetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	u, err := h.service.AdminSetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User status updated successfully.", ToUserResponse(u))
}
