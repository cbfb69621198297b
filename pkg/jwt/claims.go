package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the claims of a Supabase access token
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the authenticated user, carried in the subject claim
func (c *Claims) UserID() string {
	return c.Subject
}
