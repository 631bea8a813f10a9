package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillgateway/backend/internal/models"
)

type activityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new user activity repository
func NewActivityRepository(db *sql.DB) *activityRepository {
	return &activityRepository{
		db: db,
	}
}

// Log records one activity line for the user
func (r *activityRepository) Log(ctx context.Context, userID int, action string) error {
	query := "INSERT INTO user_activity (user_id, action) VALUES (?, ?)"

	if _, err := r.db.ExecContext(ctx, query, userID, action); err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}

	return nil
}

// ListByUser retrieves the user's most recent activity entries
func (r *activityRepository) ListByUser(ctx context.Context, userID, limit int) ([]models.ActivityEntry, error) {
	query := `
		SELECT action, created_at
		FROM user_activity
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		var createdAt sql.NullTime
		if err := rows.Scan(&entry.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if createdAt.Valid {
			entry.Time = createdAt.Time.Format(models.ActivityTimeLayout)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// ListAll retrieves recent activity across all users joined with usernames
// (admin view)
func (r *activityRepository) ListAll(ctx context.Context, limit int) ([]models.AdminActivityEntry, error) {
	query := `
		SELECT
			ua.id,
			ua.user_id,
			u.username,
			u.email,
			ua.action,
			ua.created_at
		FROM user_activity ua
		LEFT JOIN users u ON ua.user_id = u.id
		ORDER BY ua.created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var entries []models.AdminActivityEntry
	for rows.Next() {
		var entry models.AdminActivityEntry
		var username, email sql.NullString
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&username,
			&email,
			&entry.Action,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entry.Username = username.String
		entry.Email = email.String
		entry.Time = entry.CreatedAt.Format(models.ActivityTimeLayout)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}
