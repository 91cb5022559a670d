package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/crewhub/user-directory/internal/core/ports"
)

// Auth validates the bearer token, rejects revoked tokens, and injects the
// claims into the request context. Every failure is a uniform 401 so clients
// can treat any unauthorized response as "session over".
func Auth(jwtSecret string, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			raw := parts[1]

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			revoked, err := denylist.IsRevoked(c.Request().Context(), raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "authorization check unavailable")
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}

			c.Set("user_id", claims["sub"])
			c.Set("name", claims["name"])
			c.Set("email", claims["email"])

			// Logout needs the raw token and its expiry to size the denylist entry.
			c.Set("token", raw)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set("token_expires_at", exp.Time)
			}

			return next(c)
		}
	}
}
