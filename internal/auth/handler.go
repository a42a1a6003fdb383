// File: internal/auth/handler.go
package auth

import (
	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/middleware"
	"fixitnow_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles authentication and own-account HTTP requests.
type Handler struct {
	service     Service
	userService user.Service
	logger      *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service Service, userService user.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
		logger:      logger.Named("AuthHandler"),
	}
}

// RegisterRoutes sets up the auth routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMW, h.GetMe)
		authGroup.PUT("/profile", authMW, h.UpdateProfile)
	}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Registration successful.", resp)
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Login successful.", resp)
}

// GetMe handles GET /auth/me.
func (h *Handler) GetMe(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User retrieved successfully.", user.ToUserResponse(u))
}

// UpdateProfile handles PUT /auth/profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	u, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", user.ToUserResponse(u))
}
