// File: internal/booking/handler.go
package booking

import (
	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the booking lifecycle.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new booking handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.Named("BookingHandler"),
	}
}

// RegisterRoutes sets up the booking routes. All of them require auth.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	bookingGroup := router.Group("/bookings")
	bookingGroup.Use(authMW)
	{
		bookingGroup.POST("", middleware.RoleAuthMiddleware(common.RoleCustomer), h.CreateBooking)
		bookingGroup.GET("/my-bookings", middleware.RoleAuthMiddleware(common.RoleCustomer), h.ListMyBookings)
		bookingGroup.GET("/:id", h.GetBookingByID)
		bookingGroup.PUT("/:id/cancel", middleware.RoleAuthMiddleware(common.RoleCustomer), h.CancelBooking)
	}

	providerGroup := router.Group("/provider/bookings")
	providerGroup.Use(authMW, middleware.RoleAuthMiddleware(common.RoleProvider))
	{
		providerGroup.GET("", h.ListProviderBookings)
		providerGroup.PUT("/:id/status", h.UpdateBookingStatus)
	}
}

// RegisterAdminRoutes sets up booking oversight under the admin group.
func (h *Handler) RegisterAdminRoutes(adminGroup *gin.RouterGroup) {
	adminGroup.GET("/bookings", h.AdminListBookings)
}

// CreateBooking handles POST /bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	customerID := middleware.GetUserIDFromContext(c)
	if customerID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), customerID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Booking created successfully.", ToBookingResponse(b))
}

// ListMyBookings handles GET /bookings/my-bookings.
func (h *Handler) ListMyBookings(c *gin.Context) {
	customerID := middleware.GetUserIDFromContext(c)
	if customerID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	bookings, err := h.service.ListMyBookings(c.Request.Context(), customerID, query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Bookings retrieved successfully.", toBookingResponses(bookings))
}

// GetBookingByID handles GET /bookings/:id.
func (h *Handler) GetBookingByID(c *gin.Context) {
	callerID := middleware.GetUserIDFromContext(c)
	if callerID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid booking ID format."))
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), callerID, middleware.GetUserRoleFromContext(c), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking retrieved successfully.", ToBookingResponse(b))
}

// CancelBooking handles PUT /bookings/:id/cancel.
func (h *Handler) CancelBooking(c *gin.Context) {
	customerID := middleware.GetUserIDFromContext(c)
	if customerID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid booking ID format."))
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), customerID, id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking cancelled successfully.", ToBookingResponse(b))
}

// ListProviderBookings handles GET /provider/bookings.
func (h *Handler) ListProviderBookings(c *gin.Context) {
	providerUserID := middleware.GetUserIDFromContext(c)
	if providerUserID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	bookings, err := h.service.ListProviderBookings(c.Request.Context(), providerUserID, query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Bookings retrieved successfully.", toBookingResponses(bookings))
}

// UpdateBookingStatus handles PUT /provider/bookings/:id/status.
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	providerUserID := middleware.GetUserIDFromContext(c)
	if providerUserID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid booking ID format."))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), providerUserID, id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Booking status updated successfully.", ToBookingResponse(b))
}

// AdminListBookings handles GET /admin/bookings.
func (h *Handler) AdminListBookings(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		common.RespondWithError(c, common.NewBindingAPIError(err))
		return
	}
	page, pageSize := common.GetPaginationParams(c)

	bookings, total, err := h.service.AdminList(c.Request.Context(), query, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Bookings retrieved successfully.", toBookingResponses(bookings), common.NewPagination(total, page, pageSize))
}

func toBookingResponses(bookings []Booking) []BookingResponse {
	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, ToBookingResponse(&bookings[i]))
	}
	return responses
}
