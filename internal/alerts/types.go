package alerts

import "time"

// Task type constants
const (
	TaskWelcomeEmail = "email:welcome"
	TaskNewFollower  = "email:new_follower"
)

// Common envelope for email-like notifications
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Welcome email payload
type WelcomeEmailPayload struct {
	UserID   string        `json:"user_id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Envelope EmailEnvelope `json:"envelope"`
	SentAt   time.Time     `json:"sent_at"`
}

// New follower payload (sent to the followed user)
type NewFollowerPayload struct {
	UserID     string        `json:"user_id"`
	Email      string        `json:"email"`
	FollowerID string        `json:"follower_id"`
	Envelope   EmailEnvelope `json:"envelope"`
	SentAt     time.Time     `json:"sent_at"`
}
