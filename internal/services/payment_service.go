package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
)

// PaymentRepository is the interface that wraps methods for payment request
// and payment ledger data access
type PaymentRepository interface {
	// Method CreateRequest inserts a PENDING request, refusing with a
	// wrapped ErrPaymentPending when the user already has one.
	CreateRequest(ctx context.Context, userID int, orderID string, req *models.CreatePaymentRequest) (int, error)
	// Method GetRequestByID retrieves a request. ErrNotFound is wrapped
	// when no such request exists.
	GetRequestByID(ctx context.Context, id int) (*models.PaymentRequest, error)
	// Method UpdateRequestStatus sets the request status only.
	UpdateRequestStatus(ctx context.Context, id int, status models.PaymentStatus) error
	// Method Approve performs the full approval in one transaction: status
	// update, ledger insert, enrollment insert if absent, notification.
	// Re-approval of the same request is a no-op on the ledger.
	Approve(ctx context.Context, requestID, userID, courseID int, amount float64, utr, notification string) error
	// Method ListRequests retrieves every request, newest first.
	ListRequests(ctx context.Context) ([]models.PaymentRequest, error)
	// Method GetInvoice retrieves an APPROVED request owned by the user.
	GetInvoice(ctx context.Context, requestID, userID int) (*models.Invoice, error)
}

// UserResolver is the interface that wraps user lookups needed to map a
// payment request back to an account
type UserResolver interface {
	// Method FindIDByEmail returns the user id for an email, 0 when absent.
	FindIDByEmail(ctx context.Context, email string) (int, error)
}

// CourseResolver is the interface that wraps course lookups needed to map a
// payment request to a course
type CourseResolver interface {
	// Method FindIDByTitle returns the course id for a title, 0 when absent.
	FindIDByTitle(ctx context.Context, title string) (int, error)
}

// NotificationRepository is the interface that wraps notification writes
type NotificationRepository interface {
	// Method Create inserts an unread notification for the user.
	Create(ctx context.Context, userID int, message string) error
}

// paymentService implements payment request submission and the
// administrative approval workflow
type paymentService struct {
	paymentRepo      PaymentRepository
	userResolver     UserResolver
	courseResolver   CourseResolver
	notificationRepo NotificationRepository
	activityRepo     ActivityRepository
	logger           *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo PaymentRepository,
	userResolver UserResolver,
	courseResolver CourseResolver,
	notificationRepo NotificationRepository,
	activityRepo ActivityRepository,
	logger *zap.Logger,
) *paymentService {
	return &paymentService{
		paymentRepo:      paymentRepo,
		userResolver:     userResolver,
		courseResolver:   courseResolver,
		notificationRepo: notificationRepo,
		activityRepo:     activityRepo,
		logger:           logger,
	}
}

// newOrderID builds the user-facing order reference
func newOrderID() string {
	return fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), 1000+rand.Intn(9000))
}

// Submit records a new payment request for review and returns its order id
func (s *paymentService) Submit(ctx context.Context, userID int, req *models.CreatePaymentRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	orderID := newOrderID()
	if _, err := s.paymentRepo.CreateRequest(ctx, userID, orderID, req); err != nil {
		return "", err
	}

	if err := s.activityRepo.Log(ctx, userID,
		fmt.Sprintf("Started payment request for %q (Order %s)", req.CourseTitle, orderID)); err != nil {
		s.logger.Warn("failed to log activity", zap.Int("userId", userID), zap.Error(err))
	}

	return orderID, nil
}

// UpdateStatus applies an administrative status transition. On approval it
// resolves the request back to a user and course and unlocks the course; a
// request that cannot be mapped is approved with an advisory message and no
// further side effects.
func (s *paymentService) UpdateStatus(ctx context.Context, req *models.UpdatePaymentStatusRequest) (string, error) {
	if !req.Status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", models.ErrValidation, req.Status)
	}

	request, err := s.paymentRepo.GetRequestByID(ctx, req.ID)
	if err != nil {
		return "", err
	}

	switch req.Status {
	case models.PaymentApproved:
		return s.approve(ctx, request)
	case models.PaymentRejected:
		if err := s.paymentRepo.UpdateRequestStatus(ctx, request.ID, models.PaymentRejected); err != nil {
			return "", err
		}
		userID, err := s.resolveUser(ctx, request)
		if err != nil {
			return "", err
		}
		if userID > 0 {
			message := fmt.Sprintf("Your payment for \"%s\" was rejected. Please re-check the UTR / transaction ID or contact support.", request.CourseTitle)
			if err := s.notificationRepo.Create(ctx, userID, message); err != nil {
				s.logger.Warn("failed to create notification", zap.Int("userId", userID), zap.Error(err))
			}
		}
		return "Payment request rejected", nil
	default:
		if err := s.paymentRepo.UpdateRequestStatus(ctx, request.ID, req.Status); err != nil {
			return "", err
		}
		return "Payment request updated", nil
	}
}

func (s *paymentService) approve(ctx context.Context, request *models.PaymentRequest) (string, error) {
	userID, err := s.resolveUser(ctx, request)
	if err != nil {
		return "", err
	}
	courseID, err := s.resolveCourse(ctx, request)
	if err != nil {
		return "", err
	}

	if userID == 0 || courseID == 0 {
		if err := s.paymentRepo.UpdateRequestStatus(ctx, request.ID, models.PaymentApproved); err != nil {
			return "", err
		}
		s.logger.Warn("approved payment request could not be mapped",
			zap.Int("requestId", request.ID),
			zap.Int("userId", userID),
			zap.Int("courseId", courseID))
		return "Payment approved but course unmapped; enrollment not created", nil
	}

	notification := fmt.Sprintf("Your payment for \"%s\" has been approved. Course is now unlocked in your dashboard.", request.CourseTitle)
	if err := s.paymentRepo.Approve(ctx, request.ID, userID, courseID, request.Amount, request.UTR, notification); err != nil {
		return "", err
	}

	return "Payment approved and course unlocked", nil
}

// resolveUser prefers the user id stored at submission time and falls back
// to the submitted email
func (s *paymentService) resolveUser(ctx context.Context, request *models.PaymentRequest) (int, error) {
	if request.UserID > 0 {
		return request.UserID, nil
	}
	return s.userResolver.FindIDByEmail(ctx, request.Email)
}

// resolveCourse prefers the course id stored at submission time and falls
// back to the submitted title
func (s *paymentService) resolveCourse(ctx context.Context, request *models.PaymentRequest) (int, error) {
	if request.CourseID != nil && *request.CourseID > 0 {
		return *request.CourseID, nil
	}
	return s.courseResolver.FindIDByTitle(ctx, request.CourseTitle)
}

// ListRequests retrieves every payment request for the admin panel
func (s *paymentService) ListRequests(ctx context.Context) ([]models.PaymentRequest, error) {
	return s.paymentRepo.ListRequests(ctx)
}

// GetInvoice retrieves the invoice fields for an approved request owned by
// the caller
func (s *paymentService) GetInvoice(ctx context.Context, requestID, userID int) (*models.Invoice, error) {
	invoice, err := s.paymentRepo.GetInvoice(ctx, requestID, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("invoice not available: %w", models.ErrNotFound)
		}
		return nil, err
	}
	return invoice, nil
}
