package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

// GET /api/auth/me
// Requires the session middleware to have resolved the user ID.
func (h *Handler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	u, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		// The record can vanish between session verification and this lookup.
		if errors.Is(err, user.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Printf("Error in getMe controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, u.Public())
}
