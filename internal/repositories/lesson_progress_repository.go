package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type lessonProgressRepository struct {
	db *sql.DB
}

// NewLessonProgressRepository creates a new lesson progress repository
func NewLessonProgressRepository(db *sql.DB) *lessonProgressRepository {
	return &lessonProgressRepository{
		db: db,
	}
}

// Upsert merges the reported watch state into the (user, lesson) row.
// GREATEST keeps both fields monotonic: a lower watched-seconds or a reset
// completed flag never regresses the stored values.
func (r *lessonProgressRepository) Upsert(ctx context.Context, userID, lessonID, watchedSeconds int, isCompleted bool) error {
	query := `
		INSERT INTO lesson_progress (user_id, lesson_id, watched_seconds, is_completed)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			watched_seconds = GREATEST(watched_seconds, VALUES(watched_seconds)),
			is_completed = GREATEST(is_completed, VALUES(is_completed))
	`

	completed := 0
	if isCompleted {
		completed = 1
	}

	if _, err := r.db.ExecContext(ctx, query, userID, lessonID, watchedSeconds, completed); err != nil {
		return fmt.Errorf("failed to upsert lesson progress: %w", err)
	}

	return nil
}

// CountCompleted counts the user's completed lessons within a course
func (r *lessonProgressRepository) CountCompleted(ctx context.Context, userID, courseID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		WHERE lp.user_id = ? AND lp.is_completed = 1 AND l.course_id = ?
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return count, nil
}

// GetCompletedSet retrieves the ids of the user's completed lessons in a course
func (r *lessonProgressRepository) GetCompletedSet(ctx context.Context, userID, courseID int) (map[int]bool, error) {
	query := `
		SELECT lp.lesson_id
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		WHERE lp.user_id = ? AND lp.is_completed = 1 AND l.course_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed lessons: %w", err)
	}
	defer rows.Close()

	completed := make(map[int]bool)
	for rows.Next() {
		var lessonID int
		if err := rows.Scan(&lessonID); err != nil {
			return nil, fmt.Errorf("failed to scan lesson id: %w", err)
		}
		completed[lessonID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return completed, nil
}
