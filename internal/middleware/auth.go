package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mmahmood233/buy-01/internal/domain"
	"github.com/mmahmood233/buy-01/internal/identity"
	"github.com/mmahmood233/buy-01/pkg/errs"
	"github.com/mmahmood233/buy-01/pkg/response"
)

const (
	PrincipalContextKey = "principal"
	TokenContextKey     = "token"
)

// JWTAuth verifies the bearer token and stores the principal plus the
// raw token on the request context.
func JWTAuth(jwtSecretKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			principal, err := identity.FromToken(token, jwtSecretKey)
			if err != nil {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			c.Set(PrincipalContextKey, principal)
			c.Set(TokenContextKey, token)

			return next(c)
		}
	}
}

// RequireSeller redirects non-sellers away before any dashboard logic
// runs.
func RequireSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := c.Get(PrincipalContextKey).(domain.Principal)
		if !ok || !principal.IsSeller() {
			return response.WriteErrorResponse(c, errs.ErrNoSellerRole, nil)
		}

		return next(c)
	}
}
