package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pranayharishchandra/RevaMedia/internal/alerts"
	"github.com/pranayharishchandra/RevaMedia/internal/auth"
	"github.com/pranayharishchandra/RevaMedia/internal/config"
	"github.com/pranayharishchandra/RevaMedia/internal/db"
	mware "github.com/pranayharishchandra/RevaMedia/internal/middleware"
	"github.com/pranayharishchandra/RevaMedia/internal/notification"
	"github.com/pranayharishchandra/RevaMedia/internal/post"
	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Init(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer pool.Close()

	alerts.Init(cfg.RedisAddr)
	defer alerts.Close()

	// Stores and handlers
	users := user.NewStore(pool)
	posts := post.NewStore(pool)
	notifications := notification.NewStore(pool)

	hub := notification.NewHub()
	notificationHandler := notification.NewHandler(notifications, hub)
	authHandler := auth.NewHandler(users, []byte(cfg.JWTSecret), cfg.TokenTTL)
	userHandler := user.NewHandler(users, notificationHandler)
	postHandler := post.NewHandler(posts, users, notificationHandler)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Health and readiness
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Auth routes with per-IP rate limiting to protect signup/login from abuse
	authGroup := e.Group("/api/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)

	requireAuth := mware.RequireAuth([]byte(cfg.JWTSecret))
	authGroup.GET("/me", authHandler.Me, requireAuth)

	userGroup := e.Group("/api/users", requireAuth)
	userGroup.GET("/profile/:username", userHandler.GetUserProfile)
	userGroup.GET("/suggested", userHandler.GetSuggestedUsers)
	userGroup.POST("/follow/:id", userHandler.FollowUnfollowUser)
	userGroup.POST("/update", userHandler.UpdateUser)

	postGroup := e.Group("/api/posts", requireAuth)
	postGroup.GET("/all", postHandler.GetAllPosts)
	postGroup.GET("/following", postHandler.GetFollowingPosts)
	postGroup.GET("/likes/:id", postHandler.GetLikedPosts)
	postGroup.GET("/user/:username", postHandler.GetUserPosts)
	postGroup.POST("/create", postHandler.CreatePost)
	postGroup.POST("/like/:id", postHandler.LikeUnlikePost)
	postGroup.POST("/comment/:id", postHandler.CommentOnPost)
	postGroup.DELETE("/:id", postHandler.DeletePost)

	notificationGroup := e.Group("/api/notifications", requireAuth)
	notificationGroup.GET("", notificationHandler.GetNotifications)
	notificationGroup.DELETE("", notificationHandler.DeleteNotifications)
	notificationGroup.GET("/ws", notificationHandler.Stream)

	// Serve the built single-page frontend when configured
	if cfg.FrontendDir != "" {
		e.Static("/", cfg.FrontendDir)
	}

	log.Printf("API server listening on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
