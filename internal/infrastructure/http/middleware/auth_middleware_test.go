package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

func serve(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	var seenUser string
	e.GET("/", func(c echo.Context) error {
		seenUser = GetUserID(c)
		return c.NoContent(http.StatusNoContent)
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seenUser
}

func TestEchoAuth_NoValidatorAllowsAnonymous(t *testing.T) {
	rec, user := serve(t, EchoAuth(nil), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, user)
}

func TestEchoAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", "authenticated", time.Hour)
	token, err := manager.GenerateAccessToken("user-123", "a@b.test", "authenticated")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantUser string
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent, "user-123"},
		{"lowercase scheme", "bearer " + token, http.StatusNoContent, "user-123"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, user := serve(t, EchoAuth(manager), tt.header)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}
