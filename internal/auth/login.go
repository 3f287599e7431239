package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	u, err := h.users.GetByUsername(c.Request().Context(), req.Username)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		log.Printf("Error in login controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	// Compare against an empty placeholder when the user is unknown so the
	// response shape is the same for "no such user" and "wrong password".
	storedHash := ""
	if u != nil {
		storedHash = u.Password
	}
	passwordErr := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password))

	if u == nil || passwordErr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid username or password"})
	}

	if err := setTokenCookie(c, u.ID, h.secret, h.ttl); err != nil {
		log.Printf("Error in login controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, u.Public())
}
