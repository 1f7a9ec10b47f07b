package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sawa-travel/marketplace/internal/models"
)

const userContextKey = "currentUser"

type Claims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	HostType string `json:"host_type,omitempty"`
	jwt.RegisteredClaims
}

// RequireAuth validates the bearer token and stores the authenticated user
// on the request context. Handlers get it back via CurrentUser and pass it
// explicitly into services; nothing below the handler layer reaches for
// ambient auth state.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(
				strings.TrimPrefix(header, "Bearer "),
				claims,
				func(t *jwt.Token) (any, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, jwt.ErrSignatureInvalid
					}
					return []byte(secret), nil
				},
			)
			if err != nil || !token.Valid || claims.Email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			SetCurrentUser(c, &models.User{
				Email:    claims.Email,
				Name:     claims.Name,
				Role:     models.UserRole(claims.Role),
				HostType: models.HostType(claims.HostType),
			})
			return next(c)
		}
	}
}

// SetCurrentUser stores the user on the request context.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}
