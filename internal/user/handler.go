package user

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserStore is what the handlers need from the data layer.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	Suggested(ctx context.Context, userID string, limit int) ([]*User, error)
}

// Notifier records an in-app notification for a user.
type Notifier interface {
	Notify(ctx context.Context, fromUserID, toUserID, kind string) error
}

type Handler struct {
	users  UserStore
	notify Notifier
}

func NewHandler(users UserStore, notify Notifier) *Handler {
	return &Handler{users: users, notify: notify}
}

// GET /api/users/profile/:username
func (h *Handler) GetUserProfile(c echo.Context) error {
	username := c.Param("username")

	u, err := h.users.GetByUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Printf("Error in getUserProfile: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, u.Public())
}

// GET /api/users/suggested
func (h *Handler) GetSuggestedUsers(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	users, err := h.users.Suggested(c.Request().Context(), userID, 4)
	if err != nil {
		log.Printf("Error in getSuggestedUsers: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	suggested := []PublicUser{}
	for _, u := range users {
		suggested = append(suggested, u.Public())
	}
	return c.JSON(http.StatusOK, suggested)
}
