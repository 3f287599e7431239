package alerts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// ensureClient returns a usable client instance. Unlike Init it does not
// start the worker server; enqueue-only callers get just the client.
func ensureClient() *asynq.Client {
	if client == nil {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "127.0.0.1:6379"
		}
		client = asynq.NewClient(asynq.RedisClientOpt{Addr: addr})
	}
	return client
}

// EnqueueWelcomeEmail schedules a welcome email to a freshly signed-up user.
func EnqueueWelcomeEmail(userID, email, name string) error {
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	base = strings.TrimRight(base, "/")

	subject := fmt.Sprintf("Welcome to RevaMedia, %s!", name)
	body := fmt.Sprintf("Hi %s, thanks for joining RevaMedia.\n\nOpen RevaMedia: %s", name, base)

	env := EmailEnvelope{To: email, Subject: subject, Body: body}
	payload := WelcomeEmailPayload{UserID: userID, Name: name, Email: email, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskWelcomeEmail, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueNewFollower notifies a user that someone started following them.
func EnqueueNewFollower(userID, email, followerID string) error {
	env := EmailEnvelope{
		To:      email,
		Subject: "You have a new follower",
		Body:    "Someone just followed you on RevaMedia. Open the app to see who.",
	}
	payload := NewFollowerPayload{UserID: userID, Email: email, FollowerID: followerID, Envelope: env, SentAt: time.Now()}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskNewFollower, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}
