package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pranayharishchandra/RevaMedia/internal/user"
)

var ErrNotFound = errors.New("post not found")

// Store implements post data access on Postgres. Reads return posts with the
// author and comment authors already populated.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const postSelect = `
	SELECT p.id, p.text, p.img, p.created_at,
	       u.id, u.full_name, u.username, u.email, u.profile_img, u.cover_img, u.bio, u.link, u.created_at
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

func (s *Store) Create(ctx context.Context, userID, text, img string) (*Post, error) {
	var id string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO posts (id, user_id, text, img)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id
	`, userID, text, img).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) GetByID(ctx context.Context, id string) (*Post, error) {
	p, err := scanPost(s.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if err := s.populate(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Like(ctx context.Context, postID, userID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

func (s *Store) Unlike(ctx context.Context, postID, userID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2
	`, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

func (s *Store) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)
	`, postID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

func (s *Store) Likes(ctx context.Context, postID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY created_at
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		likes = append(likes, id)
	}
	return likes, rows.Err()
}

func (s *Store) AddComment(ctx context.Context, postID, userID, text string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO comments (id, post_id, user_id, text)
		VALUES (gen_random_uuid(), $1, $2, $3)
	`, postID, userID, text)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

func (s *Store) All(ctx context.Context) ([]*Post, error) {
	return s.list(ctx, postSelect+` ORDER BY p.created_at DESC`)
}

func (s *Store) ByUsername(ctx context.Context, username string) ([]*Post, error) {
	return s.list(ctx, postSelect+` WHERE u.username = $1 ORDER BY p.created_at DESC`, username)
}

func (s *Store) LikedBy(ctx context.Context, userID string) ([]*Post, error) {
	return s.list(ctx, postSelect+`
		WHERE p.id IN (SELECT post_id FROM post_likes WHERE user_id = $1)
		ORDER BY p.created_at DESC`, userID)
}

func (s *Store) FromFollowing(ctx context.Context, userID string) ([]*Post, error) {
	return s.list(ctx, postSelect+`
		WHERE p.user_id IN (SELECT followee_id FROM follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC`, userID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*Post, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	for _, p := range posts {
		if err := s.populate(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// populate fills the likes and comments of a scanned post.
func (s *Store) populate(ctx context.Context, p *Post) error {
	likes, err := s.Likes(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Likes = likes

	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.text, c.created_at,
		       u.id, u.full_name, u.username, u.email, u.profile_img, u.cover_img, u.bio, u.link, u.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var cm Comment
		var created time.Time
		err := rows.Scan(
			&cm.ID, &cm.Text, &created,
			&cm.User.ID, &cm.User.FullName, &cm.User.Username, &cm.User.Email,
			&cm.User.ProfileImg, &cm.User.CoverImg, &cm.User.Bio, &cm.User.Link,
			&cm.User.CreatedAt,
		)
		if err != nil {
			return err
		}
		cm.CreatedAt = created
		cm.User.Followers = []string{}
		cm.User.Following = []string{}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	p.Comments = comments
	return nil
}

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	var author user.PublicUser
	err := row.Scan(
		&p.ID, &p.Text, &p.Img, &p.CreatedAt,
		&author.ID, &author.FullName, &author.Username, &author.Email,
		&author.ProfileImg, &author.CoverImg, &author.Bio, &author.Link,
		&author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	author.Followers = []string{}
	author.Following = []string{}
	p.User = author
	return &p, nil
}
