package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type UpdateUserRequest struct {
	FullName        string `json:"fullName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}

// POST /api/users/update
func (h *Handler) UpdateUser(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()

	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Printf("Error in updateUser: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if (req.NewPassword == "") != (req.CurrentPassword == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please provide both current password and new password"})
	}
	if req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Current password is incorrect"})
		}
		if len(req.NewPassword) < 6 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 6 characters long"})
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 10)
		if err != nil {
			log.Printf("Error in updateUser: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
		}
		u.Password = string(hashed)
	}

	if req.FullName != "" {
		u.FullName = req.FullName
	}
	if req.Username != "" {
		u.Username = req.Username
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Bio != "" {
		u.Bio = req.Bio
	}
	if req.Link != "" {
		u.Link = req.Link
	}
	if req.ProfileImg != "" {
		u.ProfileImg = req.ProfileImg
	}
	if req.CoverImg != "" {
		u.CoverImg = req.CoverImg
	}

	if err := h.users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username is already taken"})
		case errors.Is(err, ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is already taken"})
		default:
			log.Printf("Error in updateUser: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusOK, u.Public())
}
