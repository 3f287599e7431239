package post

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

// GET /api/posts/all
func (h *Handler) GetAllPosts(c echo.Context) error {
	posts, err := h.posts.All(c.Request().Context())
	if err != nil {
		log.Printf("Error in getAllPosts controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, posts)
}

// GET /api/posts/following
func (h *Handler) GetFollowingPosts(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	posts, err := h.posts.FromFollowing(c.Request().Context(), userID)
	if err != nil {
		log.Printf("Error in getFollowingPosts controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, posts)
}

// GET /api/posts/likes/:id
func (h *Handler) GetLikedPosts(c echo.Context) error {
	posts, err := h.posts.LikedBy(c.Request().Context(), c.Param("id"))
	if err != nil {
		log.Printf("Error in getLikedPosts controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, posts)
}

// GET /api/posts/user/:username
func (h *Handler) GetUserPosts(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.Param("username")

	if _, err := h.users.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Printf("Error in getUserPosts controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	posts, err := h.posts.ByUsername(ctx, username)
	if err != nil {
		log.Printf("Error in getUserPosts controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, posts)
}
