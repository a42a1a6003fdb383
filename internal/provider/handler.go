// File: internal/provider/handler.go
package provider

import (
	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/middleware"
	"fixitnow_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the provider directory.
type Handler struct {
	service Service
	reviews shared.ReviewFeed
	logger  *zap.Logger
}

// NewHandler creates a new provider handler.
func NewHandler(service Service, reviews shared.ReviewFeed, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		reviews: reviews,
		logger:  logger.Named("ProviderHandler"),
	}
}

// detailReviewLimit is how many recent reviews ride along on the public
// provider detail view.
const detailReviewLimit = 10

// RegisterRoutes sets up the public and provider-owned routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	providerGroup := router.Group("/providers")
	{
		providerGroup.GET("", h.SearchProviders)

		// Registered before ":id" so Gin does not treat "me" as an ID.
		meGroup := providerGroup.Group("/me")
		meGroup.Use(authMW, middleware.RoleAuthMiddleware(common.RoleProvider))
		{
			meGroup.GET("/profile", h.GetMyProfile)
			meGroup.PUT("/profile", h.UpdateMyProfile)
			meGroup.GET("/stats", h.GetMyStats)
		}

		providerGroup.GET("/:id", h.GetProviderByID)
	}
}

// RegisterAdminRoutes sets up provider moderation under the admin group.
// The group is expected to already carry auth and admin-role middleware.
func (h *Handler) RegisterAdminRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/providers", h.AdminListProviders)
	adminGroup.PUT("/providers/:id/status", h.AdminSetProviderStatus)
}

// SearchProviders handles GET /providers.
// Only approved providers are returned, capped at SearchPageSize.
func (h *Handler) SearchProviders(c *gin.Context) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	providers, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ProviderResponse, 0, len(providers))
	for i := range providers {
		responses = append(responses, ToProviderResponse(&providers[i]))
	}
	common.RespondOK(c, "Providers retrieved successfully.", responses)
}

// GetProviderByID handles GET /providers/:id.
// The response pairs the profile with its latest reviews.
func (h *Handler) GetProviderByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider ID format."))
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	reviews, err := h.reviews.LatestForProvider(c.Request.Context(), p.ID, detailReviewLimit)
	if err != nil {
		h.logger.Warn("Failed to load reviews for provider detail", zap.String("providerID", id.String()), zap.Error(err))
		reviews = []shared.ProviderReview{}
	}

	common.RespondOK(c, "Provider retrieved successfully.", ProviderDetailResponse{
		Provider: ToProviderResponse(p),
		Reviews:  reviews,
	})
}

// GetMyProfile handles GET /providers/me/profile.
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	p, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Provider profile retrieved successfully.", ToProviderResponse(p))
}

// UpdateMyProfile handles PUT /providers/me/profile.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Provider profile updated successfully.", ToProviderResponse(p))
}

// GetMyStats handles GET /providers/me/stats.
func (h *Handler) GetMyStats(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Provider stats retrieved successfully.", stats)
}

// AdminListProviders handles GET /admin/providers.
func (h *Handler) AdminListProviders(c *gin.Context) {
	var query AdminProvidersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}
	page, pageSize := common.GetPaginationParams(c)

	providers, total, err := h.service.AdminList(c.Request.Context(), query, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ProviderResponse, 0, len(providers))
	for i := range providers {
		responses = append(responses, ToProviderResponse(&providers[i]))
	}
	common.RespondPaginated(c, "Providers retrieved successfully.", responses, common.NewPagination(total, page, pageSize))
}

// AdminSetProviderStatus handles PUT /admin/providers/:id/status.
func (h *Handler) AdminSetProviderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider ID format."))
		return
	}

	var req AdminSetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	p, err := h.service.AdminSetStatus(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Provider status updated successfully.", ToProviderResponse(p))
}
