package auth

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nkp491/surehelp/internal/shared"
)

type contextKey string

const claimsKey contextKey = "jwt_claims"

type UserSyncer interface {
	SyncFromJWT(ctx context.Context, userID, email, name, avatar string) error
}

type Middleware struct {
	validator  *JWTValidator
	userSyncer UserSyncer
}

func NewMiddleware(validator *JWTValidator, userSyncer UserSyncer) *Middleware {
	return &Middleware{
		validator:  validator,
		userSyncer: userSyncer,
	}
}

func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := tokenFromRequest(c)
		if err != nil {
			return err
		}

		claims, err := m.validator.Validate(token)
		if err != nil {
			if err == ErrExpiredToken {
				return shared.Unauthorized("token_expired", "token has expired")
			}
			return shared.Unauthorized("invalid_token", "invalid or malformed token")
		}

		ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		if m.userSyncer != nil {
			_ = m.userSyncer.SyncFromJWT(ctx, claims.UserID, claims.Email, claims.UserMetadata.FullName, claims.UserMetadata.AvatarURL)
		}

		return next(c)
	}
}

// tokenFromRequest reads the bearer header, falling back to the access_token
// query parameter for WebSocket upgrades where browsers cannot set headers.
func tokenFromRequest(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if token := c.QueryParam("access_token"); token != "" {
			return token, nil
		}
		return "", shared.Unauthorized("missing_token", "authorization header required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", shared.Unauthorized("invalid_token", "bearer token required")
	}

	return authHeader, nil
}

func GetClaims(c echo.Context) *Claims {
	claims, ok := c.Request().Context().Value(claimsKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

func RequireAuth(c echo.Context) (string, error) {
	claims := GetClaims(c)
	if claims == nil {
		return "", shared.Unauthorized("auth_required", "authentication required")
	}
	return claims.UserID, nil
}

func SetClaimsForTest(c echo.Context, claims *Claims) {
	ctx := context.WithValue(c.Request().Context(), claimsKey, claims)
	c.SetRequest(c.Request().WithContext(ctx))
}
