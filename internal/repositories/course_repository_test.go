package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgateway/backend/internal/models"
)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestCourseRepository_GetOutlineRows(t *testing.T) {
	columns := []string{"section_id", "section_title", "section_order", "lesson_id", "lesson_title", "duration_seconds", "lesson_order"}

	t.Run("orders by section sort then section id then lesson sort", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		// Sections 1 and 2 share sort_order 1; the id tiebreaker keeps each
		// section's rows contiguous.
		mock.ExpectQuery(`ORDER BY s.sort_order ASC, s.id ASC, l.sort_order ASC`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "Getting Started", 1, 41, "Welcome", 300, 1).
				AddRow(1, "Getting Started", 1, 42, "Setup", 420, 2).
				AddRow(2, "HTML & CSS", 1, 43, "Tags", 360, 1))

		rows, err := repo.GetOutlineRows(context.Background(), 3)

		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []int{1, 1, 2}, []int{rows[0].SectionID, rows[1].SectionID, rows[2].SectionID})
		assert.Equal(t, int64(42), rows[1].LessonID.Int64)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("section without lessons yields null lesson columns", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`ORDER BY s.sort_order ASC, s.id ASC, l.sort_order ASC`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "Coming Soon", 1, nil, nil, nil, nil))

		rows, err := repo.GetOutlineRows(context.Background(), 3)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.False(t, rows[0].LessonID.Valid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCourseRepository_GetByID(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM courses WHERE id = \?`).
					WithArgs(3).
					WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "level"}).
						AddRow(3, "Full Stack Web Development", "Build for the web", "Beginner"))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM courses WHERE id = \?`).
					WithArgs(3).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			course, err := repo.GetByID(context.Background(), 3)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, course)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Full Stack Web Development", course.Title)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
