package notification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements notification data access on Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Create(ctx context.Context, fromUserID, toUserID, kind string) (*Notification, error) {
	var n Notification
	err := s.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO notifications (id, from_user_id, to_user_id, type)
			VALUES (gen_random_uuid(), $1, $2, $3)
			RETURNING id, from_user_id, to_user_id, type, read, created_at
		)
		SELECT i.id, i.to_user_id, i.type, i.read, i.created_at,
		       u.id, u.username, u.profile_img
		FROM inserted i
		JOIN users u ON u.id = i.from_user_id
	`, fromUserID, toUserID, kind).Scan(
		&n.ID, &n.To, &n.Type, &n.Read, &n.CreatedAt,
		&n.From.ID, &n.From.Username, &n.From.ProfileImg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

func (s *Store) ListForUser(ctx context.Context, userID string) ([]*Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT n.id, n.to_user_id, n.type, n.read, n.created_at,
		       u.id, u.username, u.profile_img
		FROM notifications n
		JOIN users u ON u.id = n.from_user_id
		WHERE n.to_user_id = $1
		ORDER BY n.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []*Notification{}
	for rows.Next() {
		var n Notification
		err := rows.Scan(
			&n.ID, &n.To, &n.Type, &n.Read, &n.CreatedAt,
			&n.From.ID, &n.From.Username, &n.From.ProfileImg,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE to_user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM notifications WHERE to_user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}
