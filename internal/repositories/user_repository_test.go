package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgateway/backend/internal/models"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewUserRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name        string
		user        *models.User
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
		expectedID  int
	}{
		{
			name: "success",
			user: &models.User{
				Username:     "asha",
				Email:        "asha@example.com",
				PasswordHash: "hashedpassword",
				Provider:     models.ProviderPassword,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("asha", "asha@example.com", "", "hashedpassword", "password").
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedID: 7,
		},
		{
			name: "phone-only user",
			user: &models.User{
				Username: "PhoneUser_4321",
				Phone:    "9876504321",
				Provider: models.ProviderPhone,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("PhoneUser_4321", "", "9876504321", "", "phone").
					WillReturnResult(sqlmock.NewResult(8, 1))
			},
			expectedID: 8,
		},
		{
			name: "duplicate email",
			user: &models.User{
				Username: "asha",
				Email:    "asha@example.com",
				Provider: models.ProviderPassword,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("asha", "asha@example.com", "", "", "password").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
			},
			expectedErr: models.ErrConflict,
		},
		{
			name: "database error",
			user: &models.User{
				Username: "asha",
				Email:    "asha@example.com",
				Provider: models.ProviderPassword,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("asha", "asha@example.com", "", "", "password").
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("failed to create user"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedErr != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedErr, models.ErrConflict) {
					assert.ErrorIs(t, err, models.ErrConflict)
				} else {
					assert.Contains(t, err.Error(), tt.expectedErr.Error())
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	now := time.Now()
	columns := []string{"id", "username", "email", "phone", "password_hash", "provider", "avatar", "created_at"}

	tests := []struct {
		name        string
		email       string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
		check       func(*testing.T, *models.User)
	}{
		{
			name:  "success",
			email: "asha@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \?`).
					WithArgs("asha@example.com").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow(7, "asha", "asha@example.com", nil, "hash", "password", nil, now))
			},
			check: func(t *testing.T, user *models.User) {
				assert.Equal(t, 7, user.ID)
				assert.Equal(t, "asha", user.Username)
				assert.Equal(t, "asha@example.com", user.Email)
				assert.Empty(t, user.Phone)
				assert.Equal(t, models.ProviderPassword, user.Provider)
			},
		},
		{
			name:  "not found",
			email: "missing@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \?`).
					WithArgs("missing@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				tt.check(t, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_FindIDByEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		setupMock  func(sqlmock.Sqlmock)
		expectedID int
	}{
		{
			name:  "found",
			email: "asha@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
					WithArgs("asha@example.com").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			},
			expectedID: 7,
		},
		{
			name:  "absent resolves to zero without error",
			email: "missing@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id FROM users WHERE email = \?`).
					WithArgs("missing@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			expectedID: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			id, err := repo.FindIDByEmail(context.Background(), tt.email)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs("newname", "9876500000", 7).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unknown user",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users`).
					WithArgs("newname", "9876500000", 7).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateProfile(context.Background(), 7, "newname", "9876500000")

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
