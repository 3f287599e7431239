package notification

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// NotificationStore is what the handlers need from the data layer.
type NotificationStore interface {
	Create(ctx context.Context, fromUserID, toUserID, kind string) (*Notification, error)
	ListForUser(ctx context.Context, userID string) ([]*Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteAll(ctx context.Context, userID string) error
}

type Handler struct {
	store NotificationStore
	hub   *Hub
}

func NewHandler(store NotificationStore, hub *Hub) *Handler {
	return &Handler{store: store, hub: hub}
}

// Notify persists a notification and pushes it to the target user's open
// websocket connections. Satisfies the Notifier interfaces of the user and
// post packages.
func (h *Handler) Notify(ctx context.Context, fromUserID, toUserID, kind string) error {
	n, err := h.store.Create(ctx, fromUserID, toUserID, kind)
	if err != nil {
		return err
	}
	h.hub.Publish(toUserID, n)
	return nil
}

// GET /api/notifications
// Returns the requester's notifications and marks them read.
func (h *Handler) GetNotifications(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	ctx := c.Request().Context()

	notifications, err := h.store.ListForUser(ctx, userID)
	if err != nil {
		log.Printf("Error in getNotifications controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	if err := h.store.MarkAllRead(ctx, userID); err != nil {
		log.Printf("Error in getNotifications controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, notifications)
}

// DELETE /api/notifications
func (h *Handler) DeleteNotifications(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized: Invalid Token"})
	}

	if err := h.store.DeleteAll(c.Request().Context(), userID); err != nil {
		log.Printf("Error in deleteNotifications controller: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications deleted successfully"})
}
