// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"fixitnow_backend/internal/common"
	"fixitnow_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey is the context key for storing the authenticated user's ID
	UserIDKey = "userID"
	// UserEmailKey is the context key for storing the authenticated user's email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for storing the authenticated user's role
	UserRoleKey = "userRole"
)

// AuthMiddleware creates a Gin middleware that validates the bearer token,
// resolves its subject to a live user record and rejects suspended
// accounts. The active flag is re-checked on every request, so an admin
// suspension takes effect immediately regardless of token expiry.
func AuthMiddleware(tokenService shared.TokenService, users shared.UserResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		claims, err := tokenService.ValidateToken(parts[1])
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Token is invalid or has expired."))
			return
		}

		authUser, err := users.ResolveAuthUser(c.Request.Context(), claims.UserID)
		if err != nil {
			logger.Warn("Token subject could not be resolved", zap.String("userID", claims.UserID.String()), zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Token subject no longer exists."))
			return
		}
		if !authUser.IsActive {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("Your account has been suspended."))
			return
		}

		c.Set(UserIDKey, authUser.ID)
		c.Set(UserEmailKey, authUser.Email)
		c.Set(UserRoleKey, authUser.Role)

		c.Next()
	}
}

// GetUserIDFromContext retrieves the user ID from the Gin context.
// Returns uuid.Nil if not found or not a UUID.
func GetUserIDFromContext(c *gin.Context) uuid.UUID {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetUserRoleFromContext retrieves the user role from the Gin context.
func GetUserRoleFromContext(c *gin.Context) string {
	val, exists := c.Get(UserRoleKey)
	if !exists {
		return ""
	}
	role, ok := val.(string)
	if !ok {
		return ""
	}
	return role
}

// RoleAuthMiddleware creates a middleware to check if the authenticated
// user has one of the required roles. Admins pass every role gate.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetUserRoleFromContext(c)
		if userRole == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User role not found in context."))
			return
		}
		if userRole == common.RoleAdmin {
			c.Next()
			return
		}

		isAllowed := false
		for _, role := range allowedRoles {
			if userRole == role {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
			return
		}
		c.Next()
	}
}
