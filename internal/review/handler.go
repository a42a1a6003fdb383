// File: internal/review/handler.go
package review

import (
	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reviews.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new review handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("ReviewHandler"),
	}
}

// listLimit caps the public per-provider review listing.
const listLimit = 50

// RegisterRoutes sets up the review routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	reviewGroup := router.Group("/reviews")
	{
		reviewGroup.GET("/provider/:providerId", h.ListProviderReviews)
		reviewGroup.POST("", authMW, middleware.RoleAuthMiddleware(common.RoleCustomer), h.CreateReview)
		reviewGroup.PUT("/:id/respond", authMW, middleware.RoleAuthMiddleware(common.RoleProvider), h.RespondToReview)
	}
}

// RegisterAdminRoutes sets up review moderation under the admin group.
func (h *Handler) RegisterAdminRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.DELETE("/reviews/:id", h.AdminDeleteReview)
}

// CreateReview handles POST /reviews.
func (h *Handler) CreateReview(c *gin.Context) {
	customerID := middleware.GetUserIDFromContext(c)
	if customerID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	r, err := h.service.CreateReview(c.Request.Context(), customerID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Review submitted successfully.", ToReviewResponse(r))
}

// ListProviderReviews handles GET /reviews/provider/:providerId.
func (h *Handler) ListProviderReviews(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid provider ID format."))
		return
	}

	reviews, err := h.service.ListForProvider(c.Request.Context(), providerID, listLimit)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	common.RespondOK(c, "Reviews retrieved successfully.", responses)
}

// RespondToReview handles PUT /reviews/:id/respond.
func (h *Handler) RespondToReview(c *gin.Context) {
	providerUserID := middleware.GetUserIDFromContext(c)
	if providerUserID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid review ID format."))
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	r, err := h.service.RespondToReview(c.Request.Context(), providerUserID, id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Response saved successfully.", ToReviewResponse(r))
}

// AdminDeleteReview handles DELETE /admin/reviews/:id.
func (h *Handler) AdminDeleteReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid review ID format."))
		return
	}

	if err := h.service.AdminDeleteReview(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Review deleted successfully.", nil)
}
