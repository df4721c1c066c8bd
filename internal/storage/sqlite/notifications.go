package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/models"
	"github.com/mmynk/familytable/internal/storage"
)

// InsertNotifications persists one row per notification in a single transaction.
func (s *SQLiteStore) InsertNotifications(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	return s.WithTx(ctx, func(st storage.Store) error {
		tx := st.(*SQLiteStore)
		for _, n := range notifications {
			if n.ID == "" {
				n.ID = uuid.New().String()
			}
			if n.CreatedAt == "" {
				n.CreatedAt = models.Now()
			}
			_, err := tx.q.ExecContext(ctx,
				`INSERT INTO notifications (id, user_id, type, message, recipe_id, from_user_name, is_read, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				n.ID, n.UserID, string(n.Type), n.Message, nullable(n.RecipeID), n.FromUserName, n.IsRead, n.CreatedAt,
			)
			if err != nil {
				return wrap("failed to insert notification", err)
			}
		}
		return nil
	})
}

// ListNotifications returns the notifications of a user, newest first.
func (s *SQLiteStore) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, user_id, type, message, recipe_id, from_user_name, is_read, created_at
		 FROM notifications WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		var typ string
		var recipeID sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Message, &recipeID, &n.FromUserName, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = models.NotificationType(typ)
		n.RecipeID = fromNull(recipeID)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications of a user.
func (s *SQLiteStore) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *SQLiteStore) MarkRead(ctx context.Context, id, userID string) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return wrap("failed to mark notification read", err)
	}
	return requireOne(res, fmt.Errorf("notification %s: %w", id, apperr.ErrNotFound))
}

// MarkAllRead flags every unread notification of the user as read.
func (s *SQLiteStore) MarkAllRead(ctx context.Context, userID string) error {
	if _, err := s.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID,
	); err != nil {
		return wrap("failed to mark notifications read", err)
	}
	return nil
}
