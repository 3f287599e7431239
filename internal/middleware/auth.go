package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pranayharishchandra/RevaMedia/internal/auth"
)

// RequireAuth verifies the session cookie and puts the resolved user ID into
// the request context under "user_id".
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: No Token Provided"})
			}

			userID, err := auth.ParseToken(cookie.Value, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
