// File: internal/common/roles.go
package common

// Role values stored on a user record. They gate which operations a
// caller may invoke; see middleware.RoleAuthMiddleware.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// ValidRole reports whether the given string is a known role.
func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}
