package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
	"github.com/skillgateway/backend/internal/repositories"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course      *models.Course
	courseErr   error
	rows        []repositories.OutlineRow
	rowsErr     error
	lesson      *models.LessonDetail
	lessonErr   error
	lessonCount int
	countErr    error
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.courseErr != nil {
		return nil, m.courseErr
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetOutlineRows(ctx context.Context, courseID int) ([]repositories.OutlineRow, error) {
	if m.rowsErr != nil {
		return nil, m.rowsErr
	}
	return m.rows, nil
}

func (m *mockCourseRepository) GetLessonByID(ctx context.Context, lessonID int) (*models.LessonDetail, error) {
	if m.lessonErr != nil {
		return nil, m.lessonErr
	}
	return m.lesson, nil
}

func (m *mockCourseRepository) CountLessons(ctx context.Context, courseID int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.lessonCount, nil
}

// mockEnrollmentRepository is a mock implementation of EnrollmentRepository
type mockEnrollmentRepository struct {
	exists          bool
	existsErr       error
	enrollmentID    int
	idErr           error
	updatedPercent  int
	updatedLessonID int
	updateErr       error
}

func (m *mockEnrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockEnrollmentRepository) GetID(ctx context.Context, userID, courseID int) (int, error) {
	if m.idErr != nil {
		return 0, m.idErr
	}
	return m.enrollmentID, nil
}

func (m *mockEnrollmentRepository) UpdateProgress(ctx context.Context, enrollmentID, progress, lastLessonID int) error {
	m.updatedPercent = progress
	m.updatedLessonID = lastLessonID
	return m.updateErr
}

// mockLessonProgressRepository is a mock implementation of LessonProgressRepository
type mockLessonProgressRepository struct {
	upsertErr    error
	upserted     bool
	completed    int
	completedSet map[int]bool
}

func (m *mockLessonProgressRepository) Upsert(ctx context.Context, userID, lessonID, watchedSeconds int, isCompleted bool) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = true
	return nil
}

func (m *mockLessonProgressRepository) CountCompleted(ctx context.Context, userID, courseID int) (int, error) {
	return m.completed, nil
}

func (m *mockLessonProgressRepository) GetCompletedSet(ctx context.Context, userID, courseID int) (map[int]bool, error) {
	return m.completedSet, nil
}

func TestRollupPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		expected  int
	}{
		{name: "empty course", completed: 0, total: 0, expected: 0},
		{name: "nothing watched", completed: 0, total: 9, expected: 0},
		{name: "one of three", completed: 1, total: 3, expected: 33},
		{name: "two of three rounds up", completed: 2, total: 3, expected: 67},
		{name: "all done", completed: 9, total: 9, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rollupPercent(tt.completed, tt.total))
		})
	}
}

func TestProgressService_UpdateLessonProgress(t *testing.T) {
	lesson := &models.LessonDetail{ID: 42, CourseID: 3, Title: "Intro"}

	tests := []struct {
		name            string
		req             *models.ProgressUpdateRequest
		courses         *mockCourseRepository
		enrollments     *mockEnrollmentRepository
		progress        *mockLessonProgressRepository
		expectedErr     error
		expectedPercent int
	}{
		{
			name:            "completion rolls up to the enrollment",
			req:             &models.ProgressUpdateRequest{WatchedSeconds: 600, IsCompleted: true},
			courses:         &mockCourseRepository{lesson: lesson, lessonCount: 9},
			enrollments:     &mockEnrollmentRepository{enrollmentID: 5},
			progress:        &mockLessonProgressRepository{completed: 3},
			expectedPercent: 33,
		},
		{
			name:        "negative watched seconds",
			req:         &models.ProgressUpdateRequest{WatchedSeconds: -1},
			courses:     &mockCourseRepository{lesson: lesson},
			enrollments: &mockEnrollmentRepository{enrollmentID: 5},
			progress:    &mockLessonProgressRepository{},
			expectedErr: models.ErrValidation,
		},
		{
			name:        "unknown lesson",
			req:         &models.ProgressUpdateRequest{WatchedSeconds: 10},
			courses:     &mockCourseRepository{lessonErr: fmt.Errorf("lesson not found: %w", models.ErrNotFound)},
			enrollments: &mockEnrollmentRepository{},
			progress:    &mockLessonProgressRepository{},
			expectedErr: models.ErrNotFound,
		},
		{
			name:        "not enrolled",
			req:         &models.ProgressUpdateRequest{WatchedSeconds: 10},
			courses:     &mockCourseRepository{lesson: lesson},
			enrollments: &mockEnrollmentRepository{idErr: fmt.Errorf("enrollment not found: %w", models.ErrForbidden)},
			progress:    &mockLessonProgressRepository{},
			expectedErr: models.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewProgressService(tt.courses, tt.enrollments, tt.progress, zap.NewNop())

			percent, err := service.UpdateLessonProgress(context.Background(), 7, 42, tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.False(t, tt.progress.upserted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPercent, percent)
			assert.True(t, tt.progress.upserted)
			assert.Equal(t, tt.expectedPercent, tt.enrollments.updatedPercent)
			assert.Equal(t, 42, tt.enrollments.updatedLessonID)
		})
	}
}

func outlineRow(sectionID int, sectionTitle string, sectionOrder, lessonID int, lessonTitle string, lessonOrder int) repositories.OutlineRow {
	return repositories.OutlineRow{
		SectionID:       sectionID,
		SectionTitle:    sectionTitle,
		SectionOrder:    sectionOrder,
		LessonID:        sql.NullInt64{Int64: int64(lessonID), Valid: true},
		LessonTitle:     sql.NullString{String: lessonTitle, Valid: true},
		DurationSeconds: sql.NullInt64{Int64: 300, Valid: true},
		LessonOrder:     sql.NullInt64{Int64: int64(lessonOrder), Valid: true},
	}
}

func TestProgressService_GetOutline(t *testing.T) {
	course := &models.Course{ID: 3, Title: "Full Stack Web Development"}

	t.Run("assembles sections with completion overlay", func(t *testing.T) {
		courses := &mockCourseRepository{
			course: course,
			rows: []repositories.OutlineRow{
				outlineRow(1, "Getting Started", 1, 41, "Welcome", 1),
				outlineRow(1, "Getting Started", 1, 42, "Setup", 2),
				outlineRow(2, "HTML & CSS", 2, 43, "Tags", 1),
			},
		}
		progress := &mockLessonProgressRepository{completedSet: map[int]bool{41: true}}
		service := NewProgressService(courses, &mockEnrollmentRepository{enrollmentID: 5}, progress, zap.NewNop())

		outline, err := service.GetOutline(context.Background(), 7, 3)

		require.NoError(t, err)
		require.Len(t, outline.Sections, 2)
		assert.Equal(t, "Getting Started", outline.Sections[0].Title)
		require.Len(t, outline.Sections[0].Lessons, 2)
		assert.True(t, outline.Sections[0].Lessons[0].IsCompleted)
		assert.False(t, outline.Sections[0].Lessons[1].IsCompleted)
		require.NotNil(t, outline.FirstLessonID)
		assert.Equal(t, 41, *outline.FirstLessonID)
	})

	t.Run("section without lessons keeps a nil first lesson", func(t *testing.T) {
		courses := &mockCourseRepository{
			course: course,
			rows: []repositories.OutlineRow{
				{SectionID: 1, SectionTitle: "Coming Soon", SectionOrder: 1},
			},
		}
		service := NewProgressService(courses, &mockEnrollmentRepository{enrollmentID: 5},
			&mockLessonProgressRepository{completedSet: map[int]bool{}}, zap.NewNop())

		outline, err := service.GetOutline(context.Background(), 7, 3)

		require.NoError(t, err)
		require.Len(t, outline.Sections, 1)
		assert.Empty(t, outline.Sections[0].Lessons)
		assert.Nil(t, outline.FirstLessonID)
	})

	t.Run("not enrolled", func(t *testing.T) {
		courses := &mockCourseRepository{course: course}
		enrollments := &mockEnrollmentRepository{idErr: fmt.Errorf("enrollment not found: %w", models.ErrForbidden)}
		service := NewProgressService(courses, enrollments, &mockLessonProgressRepository{}, zap.NewNop())

		outline, err := service.GetOutline(context.Background(), 7, 3)

		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.Nil(t, outline)
	})
}

func TestProgressService_CheckPurchase(t *testing.T) {
	tests := []struct {
		name        string
		userID      int
		enrollments *mockEnrollmentRepository
		expected    bool
	}{
		{
			name:        "anonymous caller",
			userID:      0,
			enrollments: &mockEnrollmentRepository{exists: true},
			expected:    false,
		},
		{
			name:        "enrolled",
			userID:      7,
			enrollments: &mockEnrollmentRepository{exists: true},
			expected:    true,
		},
		{
			name:        "not enrolled",
			userID:      7,
			enrollments: &mockEnrollmentRepository{exists: false},
			expected:    false,
		},
		{
			name:        "unknown course answers false",
			userID:      7,
			enrollments: &mockEnrollmentRepository{existsErr: fmt.Errorf("course not found: %w", models.ErrNotFound)},
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewProgressService(&mockCourseRepository{}, tt.enrollments,
				&mockLessonProgressRepository{}, zap.NewNop())

			purchased, err := service.CheckPurchase(context.Background(), tt.userID, 3)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, purchased)
		})
	}
}
