package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pranayharishchandra/RevaMedia/internal/alerts"
)

// POST /api/users/follow/:id
// Toggles the follow relation between the requester and the target user.
func (h *Handler) FollowUnfollowUser(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}
	targetID := c.Param("id")

	if targetID == userID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "You can't follow/unfollow yourself"})
	}

	ctx := c.Request().Context()

	target, err := h.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Printf("Error in followUnfollowUser: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	following, err := h.users.IsFollowing(ctx, userID, targetID)
	if err != nil {
		log.Printf("Error in followUnfollowUser: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if following {
		if err := h.users.Unfollow(ctx, userID, targetID); err != nil {
			log.Printf("Error in followUnfollowUser: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "User unfollowed successfully"})
	}

	if err := h.users.Follow(ctx, userID, targetID); err != nil {
		log.Printf("Error in followUnfollowUser: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	if err := h.notify.Notify(ctx, userID, targetID, "follow"); err != nil {
		log.Printf("follow notification failed: %v", err)
	}
	_ = alerts.EnqueueNewFollower(target.ID, target.Email, userID)

	return c.JSON(http.StatusOK, echo.Map{"message": "User followed successfully"})
}
