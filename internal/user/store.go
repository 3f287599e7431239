package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
)

// Store implements user data access on Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const userColumns = `id, full_name, username, email, password, profile_img, cover_img, bio, link, created_at, updated_at`

// Create inserts a new user. Duplicate username/email surfaces as
// ErrUsernameTaken/ErrEmailTaken via the unique indexes, which are the
// authoritative guard against concurrent signups racing past the pre-checks.
func (s *Store) Create(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, full_name, username, email, password, profile_img, cover_img, bio, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, u.ID, u.FullName, u.Username, u.Email, u.Password, u.ProfileImg, u.CoverImg, u.Bio, u.Link)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// Update persists the mutable profile fields of u.
func (s *Store) Update(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users
		SET full_name = $1, username = $2, email = $3, password = $4,
		    profile_img = $5, cover_img = $6, bio = $7, link = $8, updated_at = NOW()
		WHERE id = $9
	`, u.FullName, u.Username, u.Email, u.Password, u.ProfileImg, u.CoverImg, u.Bio, u.Link, u.ID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (s *Store) Follow(ctx context.Context, followerID, followeeID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to follow user: %w", err)
	}
	return nil
}

func (s *Store) Unfollow(ctx context.Context, followerID, followeeID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2
	`, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	return nil
}

func (s *Store) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)
	`, followerID, followeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return exists, nil
}

// Suggested returns up to limit users the given user does not follow yet.
func (s *Store) Suggested(ctx context.Context, userID string, limit int) ([]*User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE id <> $1
		  AND id NOT IN (SELECT followee_id FROM follows WHERE follower_id = $1)
		ORDER BY random()
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggested users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get suggested users: %w", err)
	}
	for _, u := range users {
		if err := s.loadFollowLists(ctx, u); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.loadFollowLists(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) loadFollowLists(ctx context.Context, u *User) error {
	followers, err := s.collectIDs(ctx, `SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY created_at`, u.ID)
	if err != nil {
		return fmt.Errorf("failed to load followers: %w", err)
	}
	following, err := s.collectIDs(ctx, `SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY created_at`, u.ID)
	if err != nil {
		return fmt.Errorf("failed to load following: %w", err)
	}
	u.Followers = followers
	u.Following = following
	return nil
}

func (s *Store) collectIDs(ctx context.Context, query, id string) ([]string, error) {
	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		ids = append(ids, v)
	}
	return ids, rows.Err()
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Username, &u.Email, &u.Password,
		&u.ProfileImg, &u.CoverImg, &u.Bio, &u.Link,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// mapUniqueViolation turns a Postgres unique violation into the matching
// sentinel error, keyed on the index name.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameTaken
		case "users_email_key":
			return ErrEmailTaken
		}
	}
	return fmt.Errorf("failed to write user: %w", err)
}
