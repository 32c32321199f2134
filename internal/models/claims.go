package models

import "github.com/golang-jwt/jwt/v5"

// Roles carried in admin tokens
const (
	RoleAdmin = "admin"
)

// AdminClaims are the JWT claims required on admin-gated endpoints
// (suspend, resume, close, risk application).
type AdminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IsAdmin reports whether the claims grant admin access.
func (c *AdminClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
