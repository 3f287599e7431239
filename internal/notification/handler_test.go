package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

type fakeStore struct {
	mu     sync.Mutex
	nextID int
	byUser map[string][]*Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{byUser: make(map[string][]*Notification)}
}

func (s *fakeStore) Create(_ context.Context, fromUserID, toUserID, kind string) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	n := &Notification{
		ID:   fmt.Sprintf("n%d", s.nextID),
		From: Actor{ID: fromUserID},
		To:   toUserID,
		Type: kind,
	}
	s.byUser[toUserID] = append(s.byUser[toUserID], n)
	return n, nil
}

func (s *fakeStore) ListForUser(_ context.Context, userID string) ([]*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*Notification{}
	for _, n := range s.byUser[userID] {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeStore) MarkAllRead(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.byUser[userID] {
		n.Read = true
	}
	return nil
}

func (s *fakeStore) DeleteAll(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
	return nil
}

func TestNotifyPersists(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, NewHub())

	if err := h.Notify(context.Background(), "u1", "u2", "follow"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	got, _ := store.ListForUser(context.Background(), "u2")
	if len(got) != 1 {
		t.Fatalf("notifications: got %d, want 1", len(got))
	}
	if got[0].From.ID != "u1" || got[0].Type != "follow" || got[0].Read {
		t.Errorf("unexpected notification: %+v", got[0])
	}
}

func TestGetNotificationsMarksRead(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, NewHub())
	e := echo.New()

	h.Notify(context.Background(), "u1", "u2", "like")
	h.Notify(context.Background(), "u3", "u2", "follow")

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set("user_id", "u2")
	if err := h.GetNotifications(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var listed []Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed: got %d, want 2", len(listed))
	}

	after, _ := store.ListForUser(context.Background(), "u2")
	for _, n := range after {
		if !n.Read {
			t.Errorf("notification %s not marked read", n.ID)
		}
	}
}

func TestDeleteNotifications(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, NewHub())
	e := echo.New()

	h.Notify(context.Background(), "u1", "u2", "like")

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.Set("user_id", "u2")
	if err := h.DeleteNotifications(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if left, _ := store.ListForUser(context.Background(), "u2"); len(left) != 0 {
		t.Errorf("notifications left after delete: %d", len(left))
	}
}
