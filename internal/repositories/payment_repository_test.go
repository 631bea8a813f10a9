package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillgateway/backend/internal/models"
)

// setupPaymentTestRepository creates a payment repository with a mock database
func setupPaymentTestRepository(t *testing.T) (*paymentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPaymentRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestPaymentRepository_CreateRequest(t *testing.T) {
	courseID := 3
	req := &models.CreatePaymentRequest{
		FullName:    "Asha Rao",
		Phone:       "9876543210",
		Email:       "asha@example.com",
		CourseTitle: "Full Stack Web Development",
		CourseID:    &courseID,
		Amount:      4999,
		UTR:         "UTR123456789",
	}

	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
		expectedID  int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payment_requests WHERE user_id = \? AND status = 'PENDING' FOR UPDATE`).
					WithArgs(7).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectExec(`INSERT INTO payment_requests`).
					WithArgs("ORD-1-1000", 7, "Asha Rao", "9876543210", "asha@example.com",
						"Full Stack Web Development", courseID, 4999.0, "UTR123456789").
					WillReturnResult(sqlmock.NewResult(11, 1))
				mock.ExpectCommit()
			},
			expectedID: 11,
		},
		{
			name: "pending request already exists",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payment_requests WHERE user_id = \? AND status = 'PENDING' FOR UPDATE`).
					WithArgs(7).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectRollback()
			},
			expectedErr: models.ErrPaymentPending,
		},
		{
			name: "insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payment_requests WHERE user_id = \? AND status = 'PENDING' FOR UPDATE`).
					WithArgs(7).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectExec(`INSERT INTO payment_requests`).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedErr: errors.New("failed to create payment request"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPaymentTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			id, err := repo.CreateRequest(context.Background(), 7, "ORD-1-1000", req)

			if tt.expectedErr != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedErr, models.ErrPaymentPending) {
					assert.ErrorIs(t, err, models.ErrPaymentPending)
				} else {
					assert.Contains(t, err.Error(), tt.expectedErr.Error())
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, id)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPaymentRepository_Approve(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "success runs full transaction",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE payment_requests SET status = 'APPROVED' WHERE id = \?`).
					WithArgs(11).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO payments`).
					WithArgs(11, 7, 3, 4999.0, "UTR123456789").
					WillReturnResult(sqlmock.NewResult(21, 1))
				mock.ExpectExec(`INSERT INTO enrollments`).
					WithArgs(7, 3, 7, 3).
					WillReturnResult(sqlmock.NewResult(31, 1))
				mock.ExpectExec(`INSERT INTO notifications`).
					WithArgs(7, "Course is now unlocked").
					WillReturnResult(sqlmock.NewResult(41, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "replayed approval skips duplicate rows",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE payment_requests SET status = 'APPROVED' WHERE id = \?`).
					WithArgs(11).
					WillReturnResult(sqlmock.NewResult(0, 1))
				// ON DUPLICATE KEY UPDATE and the existence guard report
				// zero affected rows on the second run
				mock.ExpectExec(`INSERT INTO payments`).
					WithArgs(11, 7, 3, 4999.0, "UTR123456789").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO enrollments`).
					WithArgs(7, 3, 7, 3).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO notifications`).
					WithArgs(7, "Course is now unlocked").
					WillReturnResult(sqlmock.NewResult(42, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "payment insert failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE payment_requests SET status = 'APPROVED' WHERE id = \?`).
					WithArgs(11).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO payments`).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedErr: errors.New("failed to insert payment"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPaymentTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Approve(context.Background(), 11, 7, 3, 4999, "UTR123456789", "Course is now unlocked")

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPaymentRepository_UpdateRequestStatus(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE payment_requests SET status = \? WHERE id = \?`).
					WithArgs("REJECTED", 11).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unknown request",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE payment_requests SET status = \? WHERE id = \?`).
					WithArgs("REJECTED", 11).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPaymentTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateRequestStatus(context.Background(), 11, models.PaymentRejected)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPaymentRepository_GetInvoice(t *testing.T) {
	now := time.Now()
	columns := []string{"id", "username", "email", "course_title", "amount", "utr", "created_at"}

	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expectedErr error
		check       func(*testing.T, *models.Invoice)
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM payment_requests pr`).
					WithArgs(11, 7).
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow(11, "asha", "asha@example.com", "Full Stack Web Development", 4999.0, "UTR123456789", now))
			},
			check: func(t *testing.T, invoice *models.Invoice) {
				assert.Equal(t, 11, invoice.RequestID)
				assert.Equal(t, "asha", invoice.Username)
				assert.Equal(t, "asha@example.com", invoice.Email)
				assert.Equal(t, 4999.0, invoice.Amount)
			},
		},
		{
			name: "not owned or not approved",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM payment_requests pr`).
					WithArgs(11, 7).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPaymentTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			invoice, err := repo.GetInvoice(context.Background(), 11, 7)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, invoice)
			} else {
				require.NoError(t, err)
				tt.check(t, invoice)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPaymentRepository_CountPendingByUser(t *testing.T) {
	repo, mock, cleanup := setupPaymentTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM payment_requests WHERE user_id = \? AND status = 'PENDING'`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountPendingByUser(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
