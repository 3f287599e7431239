package post

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// POST /api/posts/like/:id
// Toggles the requester's like on a post and returns the updated likes list.
func (h *Handler) LikeUnlikePost(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	ctx := c.Request().Context()
	postID := c.Param("id")

	p, err := h.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Post not found"})
		}
		log.Printf("Error in likeUnlikePost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	liked, err := h.posts.HasLiked(ctx, postID, userID)
	if err != nil {
		log.Printf("Error in likeUnlikePost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if liked {
		err = h.posts.Unlike(ctx, postID, userID)
	} else {
		err = h.posts.Like(ctx, postID, userID)
	}
	if err != nil {
		log.Printf("Error in likeUnlikePost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if !liked && p.User.ID != userID {
		if err := h.notify.Notify(ctx, userID, p.User.ID, "like"); err != nil {
			log.Printf("like notification failed: %v", err)
		}
	}

	likes, err := h.posts.Likes(ctx, postID)
	if err != nil {
		log.Printf("Error in likeUnlikePost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, likes)
}
