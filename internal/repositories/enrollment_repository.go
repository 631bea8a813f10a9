package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillgateway/backend/internal/models"
)

type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Exists checks whether the user holds an enrollment for the course
func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND course_id = ?)"

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return exists, nil
}

// GetID retrieves the enrollment id for a (user, course) pair
func (r *enrollmentRepository) GetID(ctx context.Context, userID, courseID int) (int, error) {
	query := "SELECT id FROM enrollments WHERE user_id = ? AND course_id = ? LIMIT 1"

	var id int
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("enrollment not found: %w", models.ErrForbidden)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get enrollment: %w", err)
	}

	return id, nil
}

// ListByUser retrieves the user's enrollments joined with their courses,
// most recent first
func (r *enrollmentRepository) ListByUser(ctx context.Context, userID int) ([]models.EnrolledCourse, error) {
	query := `
		SELECT
			e.id AS enrollment_id,
			c.id AS course_id,
			c.title,
			c.description,
			c.level,
			e.progress,
			e.last_lesson_id,
			e.status,
			e.enrolled_at
		FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var courses []models.EnrolledCourse
	for rows.Next() {
		var course models.EnrolledCourse
		var lastLesson sql.NullInt64
		err := rows.Scan(
			&course.EnrollmentID,
			&course.CourseID,
			&course.Title,
			&course.Description,
			&course.Level,
			&course.Progress,
			&lastLesson,
			&course.Status,
			&course.EnrolledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		if lastLesson.Valid {
			id := int(lastLesson.Int64)
			course.LastLessonID = &id
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// UpdateProgress writes the recomputed course percentage and last-viewed
// lesson, flipping the status to completed at 100 percent
func (r *enrollmentRepository) UpdateProgress(ctx context.Context, enrollmentID, progress, lastLessonID int) error {
	query := `
		UPDATE enrollments
		SET progress = ?,
		    last_lesson_id = ?,
		    status = CASE WHEN ? >= 100 THEN 'completed' ELSE 'active' END
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, progress, lastLessonID, progress, enrollmentID); err != nil {
		return fmt.Errorf("failed to update enrollment progress: %w", err)
	}

	return nil
}

// CountByUser counts the user's distinct enrolled courses
func (r *enrollmentRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	query := "SELECT COUNT(DISTINCT course_id) FROM enrollments WHERE user_id = ?"

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	return count, nil
}
