package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillgateway/backend/internal/models"
)

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) *notificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create inserts an unread notification for the user
func (r *notificationRepository) Create(ctx context.Context, userID int, message string) error {
	query := "INSERT INTO notifications (user_id, message, is_read) VALUES (?, ?, 0)"

	if _, err := r.db.ExecContext(ctx, query, userID, message); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser retrieves the user's notifications, newest first
func (r *notificationRepository) ListByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	query := `
		SELECT id, message, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Time = n.CreatedAt.Format(models.ActivityTimeLayout)
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notifications, nil
}

// MarkAllRead flags every notification of the user as read
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	query := "UPDATE notifications SET is_read = 1 WHERE user_id = ?"

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}
