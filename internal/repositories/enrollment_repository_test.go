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

// setupEnrollmentTestRepository creates an enrollment repository with a mock database
func setupEnrollmentTestRepository(t *testing.T) (*enrollmentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewEnrollmentRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestEnrollmentRepository_Exists(t *testing.T) {
	tests := []struct {
		name     string
		exists   bool
		expected bool
	}{
		{
			name:     "enrolled",
			exists:   true,
			expected: true,
		},
		{
			name:     "not enrolled",
			exists:   false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupEnrollmentTestRepository(t)
			defer cleanup()

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(7, 3).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			exists, err := repo.Exists(context.Background(), 7, 3)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEnrollmentRepository_GetID(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
		expectedID  int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM enrollments WHERE user_id = \? AND course_id = \?`).
					WithArgs(7, 3).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
			},
			expectedID: 5,
		},
		{
			name: "missing enrollment is forbidden",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM enrollments WHERE user_id = \? AND course_id = \?`).
					WithArgs(7, 3).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: models.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupEnrollmentTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			id, err := repo.GetID(context.Background(), 7, 3)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEnrollmentRepository_UpdateProgress(t *testing.T) {
	repo, mock, cleanup := setupEnrollmentTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE enrollments`).
		WithArgs(44, 42, 44, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProgress(context.Background(), 5, 44, 42)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
