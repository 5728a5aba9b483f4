package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"viva/pkg/errors"
	"viva/pkg/logger"
	"viva/pkg/response"
)

// TokenVerifier validates an ID token and returns the caller's uid.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Authenticate verifies the bearer token on every request and stores the uid
// under "uid" in the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), strings.TrimSpace(parts[1]))
		if err != nil || uid == "" {
			logger.Debug("Token verification failed: %v", err)
			return response.Error(c, errors.Unauthorized("Invalid token", err))
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// UID returns the authenticated caller set by Authenticate, or "".
func UID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
