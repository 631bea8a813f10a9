package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillgateway/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, title, description, level
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Level,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// FindIDByTitle resolves a course id by exact title, returning 0 when no
// course matches
func (r *courseRepository) FindIDByTitle(ctx context.Context, title string) (int, error) {
	query := "SELECT id FROM courses WHERE title = ? LIMIT 1"

	var id int
	err := r.db.QueryRowContext(ctx, query, title).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find course by title: %w", err)
	}

	return id, nil
}

// OutlineRow is one flattened section/lesson row of a course outline query.
// Lesson columns are null for a section without lessons.
type OutlineRow struct {
	SectionID       int
	SectionTitle    string
	SectionOrder    int
	LessonID        sql.NullInt64
	LessonTitle     sql.NullString
	DurationSeconds sql.NullInt64
	LessonOrder     sql.NullInt64
}

// GetOutlineRows retrieves the course's sections joined with their lessons,
// ordered by section then lesson sort order. Section id breaks sort_order
// ties so a section's rows always stay contiguous.
func (r *courseRepository) GetOutlineRows(ctx context.Context, courseID int) ([]OutlineRow, error) {
	query := `
		SELECT
			s.id AS section_id,
			s.title AS section_title,
			s.sort_order AS section_order,
			l.id AS lesson_id,
			l.title AS lesson_title,
			l.duration_seconds,
			l.sort_order AS lesson_order
		FROM course_sections s
		LEFT JOIN lessons l ON l.section_id = s.id
		WHERE s.course_id = ?
		ORDER BY s.sort_order ASC, s.id ASC, l.sort_order ASC
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outline: %w", err)
	}
	defer rows.Close()

	var outline []OutlineRow
	for rows.Next() {
		var row OutlineRow
		err := rows.Scan(
			&row.SectionID,
			&row.SectionTitle,
			&row.SectionOrder,
			&row.LessonID,
			&row.LessonTitle,
			&row.DurationSeconds,
			&row.LessonOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outline row: %w", err)
		}
		outline = append(outline, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return outline, nil
}

// GetLessonByID retrieves a lesson with its course context
func (r *courseRepository) GetLessonByID(ctx context.Context, lessonID int) (*models.LessonDetail, error) {
	query := `
		SELECT
			l.id,
			l.title,
			l.video_url,
			l.duration_seconds,
			l.course_id,
			c.title AS course_title
		FROM lessons l
		JOIN courses c ON c.id = l.course_id
		WHERE l.id = ?
		LIMIT 1
	`

	var lesson models.LessonDetail
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(
		&lesson.ID,
		&lesson.Title,
		&lesson.VideoURL,
		&lesson.DurationSeconds,
		&lesson.CourseID,
		&lesson.CourseTitle,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// CountLessons counts all lessons in a course
func (r *courseRepository) CountLessons(ctx context.Context, courseID int) (int, error) {
	query := "SELECT COUNT(*) FROM lessons WHERE course_id = ?"

	var count int
	if err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}
