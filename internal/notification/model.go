package notification

import "time"

// Actor is the slim user view embedded in a notification.
type Actor struct {
	ID         string `json:"_id"`
	Username   string `json:"username"`
	ProfileImg string `json:"profileImg"`
}

type Notification struct {
	ID        string    `json:"_id"`
	From      Actor     `json:"from"`
	To        string    `json:"to"`
	Type      string    `json:"type"` // "follow" or "like"
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
