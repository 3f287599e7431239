package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// POST /api/auth/logout
func (h *Handler) Logout(c echo.Context) error {
	clearTokenCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}
