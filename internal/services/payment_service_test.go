package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
)

// mockPaymentRepository is a mock implementation of PaymentRepository
type mockPaymentRepository struct {
	request      *models.PaymentRequest
	requests     []models.PaymentRequest
	invoice      *models.Invoice
	createErr    error
	getErr       error
	updateErr    error
	approveErr   error
	invoiceErr   error
	createCalled bool
	updateCalled bool
	updateStatus models.PaymentStatus
	approveArgs  []int // [requestID, userID, courseID]
	notification string
}

func (m *mockPaymentRepository) CreateRequest(ctx context.Context, userID int, orderID string, req *models.CreatePaymentRequest) (int, error) {
	m.createCalled = true
	if m.createErr != nil {
		return 0, m.createErr
	}
	return 11, nil
}

func (m *mockPaymentRepository) GetRequestByID(ctx context.Context, id int) (*models.PaymentRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.request, nil
}

func (m *mockPaymentRepository) UpdateRequestStatus(ctx context.Context, id int, status models.PaymentStatus) error {
	m.updateCalled = true
	m.updateStatus = status
	return m.updateErr
}

func (m *mockPaymentRepository) Approve(ctx context.Context, requestID, userID, courseID int, amount float64, utr, notification string) error {
	m.approveArgs = []int{requestID, userID, courseID}
	m.notification = notification
	return m.approveErr
}

func (m *mockPaymentRepository) ListRequests(ctx context.Context) ([]models.PaymentRequest, error) {
	return m.requests, nil
}

func (m *mockPaymentRepository) GetInvoice(ctx context.Context, requestID, userID int) (*models.Invoice, error) {
	if m.invoiceErr != nil {
		return nil, m.invoiceErr
	}
	return m.invoice, nil
}

// mockUserResolver is a mock implementation of UserResolver
type mockUserResolver struct {
	id  int
	err error
}

func (m *mockUserResolver) FindIDByEmail(ctx context.Context, email string) (int, error) {
	return m.id, m.err
}

// mockCourseResolver is a mock implementation of CourseResolver
type mockCourseResolver struct {
	id  int
	err error
}

func (m *mockCourseResolver) FindIDByTitle(ctx context.Context, title string) (int, error) {
	return m.id, m.err
}

// mockNotificationRepository is a mock implementation of NotificationRepository
type mockNotificationRepository struct {
	err      error
	messages []string
	userIDs  []int
}

func (m *mockNotificationRepository) Create(ctx context.Context, userID int, message string) error {
	if m.err != nil {
		return m.err
	}
	m.userIDs = append(m.userIDs, userID)
	m.messages = append(m.messages, message)
	return nil
}

// mockActivityRepository is a mock implementation of ActivityRepository
type mockActivityRepository struct {
	err     error
	actions []string
}

func (m *mockActivityRepository) Log(ctx context.Context, userID int, action string) error {
	if m.err != nil {
		return m.err
	}
	m.actions = append(m.actions, action)
	return nil
}

func validCreateRequest() *models.CreatePaymentRequest {
	courseID := 3
	return &models.CreatePaymentRequest{
		FullName:    "Asha Rao",
		Phone:       "9876543210",
		Email:       "asha@example.com",
		CourseTitle: "Full Stack Web Development",
		CourseID:    &courseID,
		Amount:      4999,
		UTR:         "UTR123456789",
	}
}

func TestPaymentService_Submit(t *testing.T) {
	tests := []struct {
		name        string
		req         *models.CreatePaymentRequest
		repo        *mockPaymentRepository
		expectedErr error
	}{
		{
			name: "success",
			req:  validCreateRequest(),
			repo: &mockPaymentRepository{},
		},
		{
			name: "missing utr",
			req: func() *models.CreatePaymentRequest {
				req := validCreateRequest()
				req.UTR = ""
				return req
			}(),
			repo:        &mockPaymentRepository{},
			expectedErr: models.ErrValidation,
		},
		{
			name: "zero amount",
			req: func() *models.CreatePaymentRequest {
				req := validCreateRequest()
				req.Amount = 0
				return req
			}(),
			repo:        &mockPaymentRepository{},
			expectedErr: models.ErrValidation,
		},
		{
			name:        "pending request already open",
			req:         validCreateRequest(),
			repo:        &mockPaymentRepository{createErr: fmt.Errorf("pending: %w", models.ErrPaymentPending)},
			expectedErr: models.ErrPaymentPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity := &mockActivityRepository{}
			service := NewPaymentService(tt.repo, &mockUserResolver{}, &mockCourseResolver{},
				&mockNotificationRepository{}, activity, zap.NewNop())

			orderID, err := service.Submit(context.Background(), 7, tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, orderID)
			} else {
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(orderID, "ORD-"))
				require.Len(t, activity.actions, 1)
				assert.Contains(t, activity.actions[0], orderID)
			}
		})
	}
}

func TestPaymentService_Submit_ValidationSkipsRepository(t *testing.T) {
	repo := &mockPaymentRepository{}
	service := NewPaymentService(repo, &mockUserResolver{}, &mockCourseResolver{},
		&mockNotificationRepository{}, &mockActivityRepository{}, zap.NewNop())

	req := validCreateRequest()
	req.Email = "  "
	_, err := service.Submit(context.Background(), 7, req)

	assert.ErrorIs(t, err, models.ErrValidation)
	assert.False(t, repo.createCalled)
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	courseID := 3
	mappedRequest := &models.PaymentRequest{
		ID:          11,
		UserID:      7,
		Email:       "asha@example.com",
		CourseTitle: "Full Stack Web Development",
		CourseID:    &courseID,
		Amount:      4999,
		UTR:         "UTR123456789",
	}
	unmappedRequest := &models.PaymentRequest{
		ID:          12,
		Email:       "ghost@example.com",
		CourseTitle: "No Such Course",
		Amount:      999,
		UTR:         "UTR000",
	}

	tests := []struct {
		name          string
		req           *models.UpdatePaymentStatusRequest
		repo          *mockPaymentRepository
		users         *mockUserResolver
		courses       *mockCourseResolver
		expectedMsg   string
		expectedErr   error
		checkApproved bool
	}{
		{
			name:          "approve mapped request unlocks course",
			req:           &models.UpdatePaymentStatusRequest{ID: 11, Status: models.PaymentApproved},
			repo:          &mockPaymentRepository{request: mappedRequest},
			users:         &mockUserResolver{},
			courses:       &mockCourseResolver{},
			expectedMsg:   "Payment approved and course unlocked",
			checkApproved: true,
		},
		{
			name:        "approve unmapped request is advisory only",
			req:         &models.UpdatePaymentStatusRequest{ID: 12, Status: models.PaymentApproved},
			repo:        &mockPaymentRepository{request: unmappedRequest},
			users:       &mockUserResolver{},
			courses:     &mockCourseResolver{},
			expectedMsg: "Payment approved but course unmapped; enrollment not created",
		},
		{
			name:        "reject notifies the user",
			req:         &models.UpdatePaymentStatusRequest{ID: 11, Status: models.PaymentRejected},
			repo:        &mockPaymentRepository{request: mappedRequest},
			users:       &mockUserResolver{},
			courses:     &mockCourseResolver{},
			expectedMsg: "Payment request rejected",
		},
		{
			name:        "unknown status",
			req:         &models.UpdatePaymentStatusRequest{ID: 11, Status: "SHIPPED"},
			repo:        &mockPaymentRepository{request: mappedRequest},
			users:       &mockUserResolver{},
			courses:     &mockCourseResolver{},
			expectedErr: models.ErrValidation,
		},
		{
			name:        "request not found",
			req:         &models.UpdatePaymentStatusRequest{ID: 99, Status: models.PaymentApproved},
			repo:        &mockPaymentRepository{getErr: fmt.Errorf("not found: %w", models.ErrNotFound)},
			users:       &mockUserResolver{},
			courses:     &mockCourseResolver{},
			expectedErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifications := &mockNotificationRepository{}
			service := NewPaymentService(tt.repo, tt.users, tt.courses, notifications,
				&mockActivityRepository{}, zap.NewNop())

			msg, err := service.UpdateStatus(context.Background(), tt.req)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedMsg, msg)

			if tt.checkApproved {
				assert.Equal(t, []int{11, 7, 3}, tt.repo.approveArgs)
				assert.Contains(t, tt.repo.notification, "has been approved")
			}
			if tt.req.Status == models.PaymentRejected {
				assert.Equal(t, models.PaymentRejected, tt.repo.updateStatus)
				require.Len(t, notifications.messages, 1)
				assert.Contains(t, notifications.messages[0], "was rejected")
				assert.Equal(t, []int{7}, notifications.userIDs)
			}
		})
	}
}

func TestPaymentService_UpdateStatus_ResolvesByEmailAndTitle(t *testing.T) {
	// Request submitted before the user registered carries no stored ids.
	repo := &mockPaymentRepository{request: &models.PaymentRequest{
		ID:          13,
		Email:       "asha@example.com",
		CourseTitle: "Full Stack Web Development",
		Amount:      4999,
		UTR:         "UTR123456789",
	}}
	service := NewPaymentService(repo, &mockUserResolver{id: 7}, &mockCourseResolver{id: 3},
		&mockNotificationRepository{}, &mockActivityRepository{}, zap.NewNop())

	msg, err := service.UpdateStatus(context.Background(),
		&models.UpdatePaymentStatusRequest{ID: 13, Status: models.PaymentApproved})

	require.NoError(t, err)
	assert.Equal(t, "Payment approved and course unlocked", msg)
	assert.Equal(t, []int{13, 7, 3}, repo.approveArgs)
}

func TestPaymentService_GetInvoice(t *testing.T) {
	tests := []struct {
		name        string
		repo        *mockPaymentRepository
		expectedErr error
	}{
		{
			name: "success",
			repo: &mockPaymentRepository{invoice: &models.Invoice{RequestID: 11, Username: "asha"}},
		},
		{
			name:        "not found",
			repo:        &mockPaymentRepository{invoiceErr: fmt.Errorf("invoice not found: %w", models.ErrNotFound)},
			expectedErr: models.ErrNotFound,
		},
		{
			name:        "database error",
			repo:        &mockPaymentRepository{invoiceErr: errors.New("database error")},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewPaymentService(tt.repo, &mockUserResolver{}, &mockCourseResolver{},
				&mockNotificationRepository{}, &mockActivityRepository{}, zap.NewNop())

			invoice, err := service.GetInvoice(context.Background(), 11, 7)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Nil(t, invoice)
				if errors.Is(tt.expectedErr, models.ErrNotFound) {
					assert.ErrorIs(t, err, models.ErrNotFound)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, 11, invoice.RequestID)
			}
		})
	}
}
