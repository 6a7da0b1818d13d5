package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims this service issues and accepts. UserID rides in
// the registered subject claim; RoleID is a custom claim.
type Claims struct {
	RoleID string `json:"role_id"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.Subject
}
