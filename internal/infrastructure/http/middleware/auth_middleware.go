package middleware

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

const (
	// UserIDKey is the echo context key for the authenticated user ID
	UserIDKey = "user_id"
	// ClaimsKey is the echo context key for the verified token claims
	ClaimsKey = "claims"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets "user_id" and "claims" into the Echo context. A nil validator lets
// every request through anonymously.
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if validator == nil {
				return next(c)
			}

			token := bearerToken(c.Request())
			if token == "" {
				return respondError(c, errors.ErrUnauthenticated())
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				if stdErrors.Is(err, jwt.ErrTokenExpired) {
					return respondError(c, errors.ErrTokenExpired())
				}
				return respondError(c, errors.ErrInvalidToken())
			}

			c.Set(UserIDKey, claims.UserID())
			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// GetUserID returns the authenticated user ID, or "" for anonymous requests
func GetUserID(c echo.Context) string {
	userID, _ := c.Get(UserIDKey).(string)
	return userID
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func respondError(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, map[string]interface{}{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
