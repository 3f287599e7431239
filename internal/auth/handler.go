package auth

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/pranayharishchandra/RevaMedia/internal/alerts"
	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

// UserStore is what the auth handlers need from the data layer.
type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id string) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Handler struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
}

func NewHandler(users UserStore, secret []byte, ttl time.Duration) *Handler {
	return &Handler{users: users, secret: secret, ttl: ttl}
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type SignupRequest struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/signup
func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()

	if !emailRegex.MatchString(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid email format"})
	}

	// Fast-path duplicate checks. The unique indexes on users are the real
	// guard; a race past these reads is caught on insert below.
	taken, err := h.users.UsernameExists(ctx, req.Username)
	if err != nil {
		log.Printf("Error in signup controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username is already taken"})
	}

	taken, err = h.users.EmailExists(ctx, req.Email)
	if err != nil {
		log.Printf("Error in signup controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	if taken {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is already taken"})
	}

	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 6 characters long"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		log.Printf("Error in signup controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	newUser := &user.User{
		ID:       uuid.New().String(),
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}

	// The cookie is issued before the record is persisted, matching the
	// original flow. A persistence failure below leaves a cookie bound to a
	// record that never existed; the token simply resolves to nothing.
	if err := setTokenCookie(c, newUser.ID, h.secret, h.ttl); err != nil {
		log.Printf("Error in signup controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if err := h.users.Create(ctx, newUser); err != nil {
		switch err {
		case user.ErrUsernameTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username is already taken"})
		case user.ErrEmailTaken:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email is already taken"})
		}
		log.Printf("Error in signup controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	_ = alerts.EnqueueWelcomeEmail(newUser.ID, newUser.Email, newUser.FullName)

	return c.JSON(http.StatusCreated, newUser.Public())
}
