package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

// memStore is an in-memory UserStore that enforces username/email uniqueness
// the way the database unique indexes do.
type memStore struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*user.User)}
}

func (s *memStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrNotFound
}

func (s *memStore) GetByUsername(_ context.Context, username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *memStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetByUsername(ctx, username)
	return err == nil, nil
}

func (s *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

var testSecret = []byte("test-secret")

func newTestHandler() (*Handler, *memStore) {
	store := newMemStore()
	return NewHandler(store, testSecret, 15*24*time.Hour), store
}

func doSignup(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("signup handler error: %v", err)
	}
	return rec
}

func doLogin(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return out.Error
}

func TestSignupInvalidEmail(t *testing.T) {
	h, store := newTestHandler()

	rec := doSignup(t, h, `{"fullName":"A B","username":"ab1","email":"not-an-email","password":"secret1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Invalid email format" {
		t.Errorf("error: got %q", msg)
	}
	if store.count() != 0 {
		t.Errorf("no record should be persisted, got %d", store.count())
	}
}

func TestSignupShortPassword(t *testing.T) {
	h, store := newTestHandler()

	rec := doSignup(t, h, `{"fullName":"A B","username":"ab1","email":"a@b.com","password":"abc"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Password must be at least 6 characters long" {
		t.Errorf("error: got %q", msg)
	}
	if store.count() != 0 {
		t.Errorf("no record should be persisted, got %d", store.count())
	}
}

func TestSignupDuplicateUsernameAndEmail(t *testing.T) {
	h, store := newTestHandler()

	rec := doSignup(t, h, `{"fullName":"A B","username":"ab1","email":"a@b.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first signup status: got %d, want 201", rec.Code)
	}

	rec = doSignup(t, h, `{"fullName":"C D","username":"ab1","email":"c@d.com","password":"secret1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate username status: got %d, want 400", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Username is already taken" {
		t.Errorf("error: got %q", msg)
	}

	rec = doSignup(t, h, `{"fullName":"C D","username":"cd1","email":"a@b.com","password":"secret1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email status: got %d, want 400", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Email is already taken" {
		t.Errorf("error: got %q", msg)
	}

	if store.count() != 1 {
		t.Errorf("only the first record should exist, got %d", store.count())
	}
}

func TestSignupResponseOmitsPassword(t *testing.T) {
	h, _ := newTestHandler()

	rec := doSignup(t, h, `{"fullName":"A B","username":"ab1","email":"a@b.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["username"] != "ab1" {
		t.Errorf("username: got %v", body["username"])
	}
	if _, ok := body["password"]; ok {
		t.Error("response must not contain a password field")
	}
	if _, ok := body["_id"]; !ok {
		t.Error("response should contain _id")
	}

	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, CookieName+"=") {
		t.Errorf("session cookie not set: %q", cookie)
	}
}

func TestSignupThenLoginReturnsSamePublicFields(t *testing.T) {
	h, _ := newTestHandler()

	signupRec := doSignup(t, h, `{"fullName":"A B","username":"ab1","email":"a@b.com","password":"secret1"}`)
	if signupRec.Code != http.StatusCreated {
		t.Fatalf("signup status: got %d, want 201", signupRec.Code)
	}

	loginRec := doLogin(t, h, `{"username":"ab1","password":"secret1"}`)
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login status: got %d, want 200", loginRec.Code)
	}

	var fromSignup, fromLogin user.PublicUser
	if err := json.Unmarshal(signupRec.Body.Bytes(), &fromSignup); err != nil {
		t.Fatalf("decode signup body: %v", err)
	}
	if err := json.Unmarshal(loginRec.Body.Bytes(), &fromLogin); err != nil {
		t.Fatalf("decode login body: %v", err)
	}
	if fromSignup.ID != fromLogin.ID || fromSignup.Username != fromLogin.Username ||
		fromSignup.Email != fromLogin.Email || fromSignup.FullName != fromLogin.FullName {
		t.Errorf("signup and login public fields differ: %+v vs %+v", fromSignup, fromLogin)
	}
}

func TestLoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	h, _ := newTestHandler()

	doSignup(t, h, `{"fullName":"A B","username":"ab1","email":"a@b.com","password":"secret1"}`)

	wrongPassword := doLogin(t, h, `{"username":"ab1","password":"wrong-pass"}`)
	unknownUser := doLogin(t, h, `{"username":"nobody","password":"whatever"}`)

	if wrongPassword.Code != http.StatusBadRequest || unknownUser.Code != http.StatusBadRequest {
		t.Fatalf("statuses: got %d and %d, want 400 for both", wrongPassword.Code, unknownUser.Code)
	}
	msgA := errorMessage(t, wrongPassword)
	msgB := errorMessage(t, unknownUser)
	if msgA != msgB {
		t.Errorf("messages differ: %q vs %q", msgA, msgB)
	}
	if msgA != "Invalid username or password" {
		t.Errorf("message: got %q", msgA)
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	h, _ := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("logout handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	resp := rec.Result()
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("logout did not set the session cookie")
	}
	if sessionCookie.Value != "" {
		t.Errorf("cookie value: got %q, want empty", sessionCookie.Value)
	}
	// Max-Age=0 on the wire parses to MaxAge -1.
	if sessionCookie.MaxAge >= 0 && sessionCookie.Expires.After(time.Now()) {
		t.Errorf("cookie not expired: MaxAge=%d Expires=%v", sessionCookie.MaxAge, sessionCookie.Expires)
	}
}

func TestMe(t *testing.T) {
	h, store := newTestHandler()

	rec := doSignup(t, h, `{"fullName":"A B","username":"ab1","email":"a@b.com","password":"secret1"}`)
	var created user.PublicUser
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode signup body: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	meRec := httptest.NewRecorder()
	c := e.NewContext(req, meRec)
	c.Set("user_id", created.ID)
	if err := h.Me(c); err != nil {
		t.Fatalf("me handler error: %v", err)
	}
	if meRec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", meRec.Code)
	}
	var me user.PublicUser
	if err := json.Unmarshal(meRec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me body: %v", err)
	}
	if me.ID != created.ID || me.Username != "ab1" {
		t.Errorf("unexpected user: %+v", me)
	}

	// Record deleted between session verification and lookup.
	store.delete(created.ID)
	goneRec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), goneRec)
	c.Set("user_id", created.ID)
	if err := h.Me(c); err != nil {
		t.Fatalf("me handler error: %v", err)
	}
	if goneRec.Code != http.StatusNotFound {
		t.Errorf("status after deletion: got %d, want 404", goneRec.Code)
	}
}
