package post

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

type CommentRequest struct {
	Text string `json:"text"`
}

// POST /api/posts/comment/:id
func (h *Handler) CommentOnPost(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Text field is required"})
	}

	ctx := c.Request().Context()
	postID := c.Param("id")

	if _, err := h.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Post not found"})
		}
		log.Printf("Error in commentOnPost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if err := h.posts.AddComment(ctx, postID, userID, req.Text); err != nil {
		log.Printf("Error in commentOnPost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	p, err := h.posts.GetByID(ctx, postID)
	if err != nil {
		log.Printf("Error in commentOnPost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, p)
}
