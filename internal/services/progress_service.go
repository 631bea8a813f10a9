package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
	"github.com/skillgateway/backend/internal/repositories"
)

// CourseRepository is the interface that wraps methods for course, section
// and lesson data access
type CourseRepository interface {
	// Method GetByID retrieves a course. ErrNotFound is wrapped when no
	// such course exists.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// Method GetOutlineRows retrieves the flattened section/lesson rows of
	// the course in sort order.
	GetOutlineRows(ctx context.Context, courseID int) ([]repositories.OutlineRow, error)
	// Method GetLessonByID retrieves a lesson with its course context.
	GetLessonByID(ctx context.Context, lessonID int) (*models.LessonDetail, error)
	// Method CountLessons returns the number of lessons in the course.
	CountLessons(ctx context.Context, courseID int) (int, error)
}

// EnrollmentRepository is the interface that wraps methods for enrollment
// data access
type EnrollmentRepository interface {
	// Method Exists reports whether the user is enrolled in the course.
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// Method GetID returns the enrollment id; ErrForbidden is wrapped when
	// the user is not enrolled.
	GetID(ctx context.Context, userID, courseID int) (int, error)
	// Method UpdateProgress writes the rolled-up percent and last lesson,
	// flipping the status to completed at 100.
	UpdateProgress(ctx context.Context, enrollmentID, progress, lastLessonID int) error
}

// LessonProgressRepository is the interface that wraps methods for per-lesson
// watch state
type LessonProgressRepository interface {
	// Method Upsert merges the report into the stored row; stored values
	// never decrease.
	Upsert(ctx context.Context, userID, lessonID, watchedSeconds int, isCompleted bool) error
	// Method CountCompleted counts the user's completed lessons in the course.
	CountCompleted(ctx context.Context, userID, courseID int) (int, error)
	// Method GetCompletedSet returns the user's completed lesson ids for
	// the course.
	GetCompletedSet(ctx context.Context, userID, courseID int) (map[int]bool, error)
}

// progressService implements the course player: lesson progress reporting
// with enrollment rollup, the course outline, and purchase checks
type progressService struct {
	courseRepo     CourseRepository
	enrollmentRepo EnrollmentRepository
	progressRepo   LessonProgressRepository
	logger         *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	courseRepo CourseRepository,
	enrollmentRepo EnrollmentRepository,
	progressRepo LessonProgressRepository,
	logger *zap.Logger,
) *progressService {
	return &progressService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		logger:         logger,
	}
}

// rollupPercent computes the course completion percent from completed and
// total lesson counts. A course without lessons rolls up to 0.
func rollupPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// UpdateLessonProgress merges a watch report into the lesson state and
// recomputes the enrollment's completion percent. Returns the new percent.
func (s *progressService) UpdateLessonProgress(ctx context.Context, userID, lessonID int, req *models.ProgressUpdateRequest) (int, error) {
	if req.WatchedSeconds < 0 {
		return 0, fmt.Errorf("%w: watchedSeconds must not be negative", models.ErrValidation)
	}

	lesson, err := s.courseRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return 0, err
	}

	enrollmentID, err := s.enrollmentRepo.GetID(ctx, userID, lesson.CourseID)
	if err != nil {
		return 0, err
	}

	if err := s.progressRepo.Upsert(ctx, userID, lessonID, req.WatchedSeconds, req.IsCompleted); err != nil {
		return 0, err
	}

	completed, err := s.progressRepo.CountCompleted(ctx, userID, lesson.CourseID)
	if err != nil {
		return 0, err
	}
	total, err := s.courseRepo.CountLessons(ctx, lesson.CourseID)
	if err != nil {
		return 0, err
	}

	percent := rollupPercent(completed, total)
	if err := s.enrollmentRepo.UpdateProgress(ctx, enrollmentID, percent, lessonID); err != nil {
		return 0, err
	}

	return percent, nil
}

// GetOutline assembles the section/lesson tree for an enrolled user,
// overlaying per-lesson completion
func (s *progressService) GetOutline(ctx context.Context, userID, courseID int) (*models.CourseOutline, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollmentRepo.GetID(ctx, userID, courseID); err != nil {
		return nil, err
	}

	rows, err := s.courseRepo.GetOutlineRows(ctx, courseID)
	if err != nil {
		return nil, err
	}

	completed, err := s.progressRepo.GetCompletedSet(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	outline := &models.CourseOutline{
		Course:   *course,
		Sections: []models.OutlineSection{},
	}

	for _, row := range rows {
		n := len(outline.Sections)
		if n == 0 || outline.Sections[n-1].ID != row.SectionID {
			outline.Sections = append(outline.Sections, models.OutlineSection{
				ID:        row.SectionID,
				Title:     row.SectionTitle,
				SortOrder: row.SectionOrder,
				Lessons:   []models.OutlineLesson{},
			})
			n++
		}
		if !row.LessonID.Valid {
			continue
		}
		lessonID := int(row.LessonID.Int64)
		outline.Sections[n-1].Lessons = append(outline.Sections[n-1].Lessons, models.OutlineLesson{
			ID:              lessonID,
			Title:           row.LessonTitle.String,
			DurationSeconds: int(row.DurationSeconds.Int64),
			SortOrder:       int(row.LessonOrder.Int64),
			IsCompleted:     completed[lessonID],
		})
		if outline.FirstLessonID == nil {
			outline.FirstLessonID = &lessonID
		}
	}

	return outline, nil
}

// GetLesson retrieves a single lesson for the player, checking enrollment
func (s *progressService) GetLesson(ctx context.Context, userID, lessonID int) (*models.LessonDetail, error) {
	lesson, err := s.courseRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if _, err := s.enrollmentRepo.GetID(ctx, userID, lesson.CourseID); err != nil {
		return nil, err
	}

	return lesson, nil
}

// CheckPurchase reports whether the user owns the course. An unknown course
// or missing user answers false rather than an error.
func (s *progressService) CheckPurchase(ctx context.Context, userID, courseID int) (bool, error) {
	if userID == 0 {
		return false, nil
	}

	purchased, err := s.enrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return purchased, nil
}
