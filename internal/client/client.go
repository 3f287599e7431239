package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/pranayharishchandra/RevaMedia/internal/notification"
	"github.com/pranayharishchandra/RevaMedia/internal/post"
	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

// Query keys shared by every consumer of the cache.
const (
	KeyAuthUser = "authUser"
	KeyAllPosts = "posts:all"
)

// Client is a typed API client for the RevaMedia backend. The session cookie
// lives in the client's jar; reads go through the shared QueryCache.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *QueryCache
}

// New builds a client against baseURL using the given cache. The cache is
// constructed once at process start and injected here, never held as a
// package global.
func New(baseURL string, cache *QueryCache) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		cache:   cache,
	}, nil
}

func (c *Client) Signup(ctx context.Context, fullName, username, email, password string) (*user.PublicUser, error) {
	var u user.PublicUser
	err := c.post(ctx, "/api/auth/signup", map[string]string{
		"fullName": fullName,
		"username": username,
		"email":    email,
		"password": password,
	}, &u)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyAuthUser)
	return &u, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*user.PublicUser, error) {
	var u user.PublicUser
	err := c.post(ctx, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &u)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyAuthUser)
	return &u, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}

// Me returns the authenticated user, served from the cache when fresh.
func (c *Client) Me(ctx context.Context) (*user.PublicUser, error) {
	var u user.PublicUser
	if err := c.cachedGet(ctx, KeyAuthUser, "/api/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AllPosts returns the global feed, served from the cache when fresh.
func (c *Client) AllPosts(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := c.cachedGet(ctx, KeyAllPosts, "/api/posts/all", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) Notifications(ctx context.Context) ([]*notification.Notification, error) {
	var notifications []*notification.Notification
	if err := c.get(ctx, "/api/notifications", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) cachedGet(ctx context.Context, key, path string, out any) error {
	data, err := c.cache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		return c.do(ctx, http.MethodGet, path, nil)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(b)
	}
	data, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return nil, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	return data, nil
}
