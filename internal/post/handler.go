package post

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

// PostStore is what the handlers need from the data layer.
type PostStore interface {
	Create(ctx context.Context, userID, text, img string) (*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	Likes(ctx context.Context, postID string) ([]string, error)
	AddComment(ctx context.Context, postID, userID, text string) error
	All(ctx context.Context) ([]*Post, error)
	ByUsername(ctx context.Context, username string) ([]*Post, error)
	LikedBy(ctx context.Context, userID string) ([]*Post, error)
	FromFollowing(ctx context.Context, userID string) ([]*Post, error)
}

// UserGetter resolves usernames for the per-user feed.
type UserGetter interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// Notifier records an in-app notification for a user.
type Notifier interface {
	Notify(ctx context.Context, fromUserID, toUserID, kind string) error
}

type Handler struct {
	posts  PostStore
	users  UserGetter
	notify Notifier
}

func NewHandler(posts PostStore, users UserGetter, notify Notifier) *Handler {
	return &Handler{posts: posts, users: users, notify: notify}
}

type CreatePostRequest struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

// POST /api/posts/create
func (h *Handler) CreatePost(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Text == "" && req.Img == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Post must have text or image"})
	}

	p, err := h.posts.Create(c.Request().Context(), userID, req.Text, req.Img)
	if err != nil {
		log.Printf("Error in createPost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusCreated, p)
}

// DELETE /api/posts/:id
func (h *Handler) DeletePost(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	ctx := c.Request().Context()

	p, err := h.posts.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Post not found"})
		}
		log.Printf("Error in deletePost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if p.User.ID != userID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "You are not authorized to delete this post"})
	}

	if err := h.posts.Delete(ctx, p.ID); err != nil {
		log.Printf("Error in deletePost controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}
