package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
	"github.com/skillgateway/backend/internal/storage"
)

// ProfileRepository is the interface that wraps user profile data access
type ProfileRepository interface {
	// Method GetByID retrieves a user. ErrNotFound is wrapped when no such
	// user exists.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Method UpdateProfile updates the username and/or phone; blank fields
	// keep their stored values.
	UpdateProfile(ctx context.Context, id int, username, phone string) error
	// Method UpdateAvatar stores the user's avatar path.
	UpdateAvatar(ctx context.Context, id int, avatarPath string) error
}

// EnrollmentReader is the interface that wraps the dashboard's enrollment reads
type EnrollmentReader interface {
	// Method ListByUser retrieves the user's enrollments joined with courses.
	ListByUser(ctx context.Context, userID int) ([]models.EnrolledCourse, error)
	// Method CountByUser counts the user's distinct enrolled courses.
	CountByUser(ctx context.Context, userID int) (int, error)
}

// PaymentReader is the interface that wraps the dashboard's payment reads
type PaymentReader interface {
	// Method ListPaymentsByUser retrieves the user's ledger rows with course titles.
	ListPaymentsByUser(ctx context.Context, userID int) ([]models.PaymentHistoryItem, error)
	// Method CountPendingByUser counts the user's PENDING payment requests.
	CountPendingByUser(ctx context.Context, userID int) (int, error)
}

// ActivityReader is the interface that wraps the dashboard's activity reads
type ActivityReader interface {
	// Method ListByUser retrieves the user's most recent activity lines.
	ListByUser(ctx context.Context, userID, limit int) ([]models.ActivityEntry, error)
}

// NotificationReader is the interface that wraps notification reads and the
// read-marking write
type NotificationReader interface {
	// Method ListByUser retrieves the user's notifications, newest first.
	ListByUser(ctx context.Context, userID int) ([]models.Notification, error)
	// Method MarkAllRead flags every notification of the user as read.
	MarkAllRead(ctx context.Context, userID int) error
}

// TicketRepository is the interface that wraps support ticket data access
type TicketRepository interface {
	// Method CreateTicket inserts an open ticket for the user.
	CreateTicket(ctx context.Context, userID int, subject, message string) error
	// Method ListTicketsByUser retrieves the user's tickets, newest first.
	ListTicketsByUser(ctx context.Context, userID int) ([]models.SupportTicket, error)
}

// UploadStorage is the interface that wraps stored upload writes
type UploadStorage interface {
	// Method Save writes the content under the kind's directory and returns
	// the generated file name and its public path.
	Save(kind, extension string, r io.Reader) (string, string, error)
}

// activityLimit caps the dashboard activity feed
const activityLimit = 50

// avatarExtensions lists the accepted avatar upload types
var avatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// dashboardService implements the logged-in dashboard reads and the small
// writes hanging off them
type dashboardService struct {
	profileRepo      ProfileRepository
	enrollmentRepo   EnrollmentReader
	paymentRepo      PaymentReader
	activityRepo     ActivityReader
	notificationRepo NotificationReader
	ticketRepo       TicketRepository
	uploads          UploadStorage
	logger           *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	profileRepo ProfileRepository,
	enrollmentRepo EnrollmentReader,
	paymentRepo PaymentReader,
	activityRepo ActivityReader,
	notificationRepo NotificationReader,
	ticketRepo TicketRepository,
	uploads UploadStorage,
	logger *zap.Logger,
) *dashboardService {
	return &dashboardService{
		profileRepo:      profileRepo,
		enrollmentRepo:   enrollmentRepo,
		paymentRepo:      paymentRepo,
		activityRepo:     activityRepo,
		notificationRepo: notificationRepo,
		ticketRepo:       ticketRepo,
		uploads:          uploads,
		logger:           logger,
	}
}

// GetProfile retrieves the caller's profile view
func (s *dashboardService) GetProfile(ctx context.Context, userID int) (*models.Profile, error) {
	user, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Avatar:    user.AvatarPath,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateProfile updates the caller's username and/or phone
func (s *dashboardService) UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.Profile, error) {
	username := strings.TrimSpace(req.Username)
	phone := strings.TrimSpace(req.Phone)
	if username == "" && phone == "" {
		return nil, fmt.Errorf("%w: nothing to update", models.ErrValidation)
	}

	if err := s.profileRepo.UpdateProfile(ctx, userID, username, phone); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// UpdateAvatar stores an uploaded avatar image and records its path
func (s *dashboardService) UpdateAvatar(ctx context.Context, userID int, filename string, file io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !avatarExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported image type %s", models.ErrValidation, ext)
	}

	_, path, err := s.uploads.Save(storage.KindAvatar, ext, file)
	if err != nil {
		return "", err
	}

	if err := s.profileRepo.UpdateAvatar(ctx, userID, path); err != nil {
		return "", err
	}

	return path, nil
}

// Overview assembles the dashboard counter cards. Hours learned and
// certificates are not tracked yet and report zero.
func (s *dashboardService) Overview(ctx context.Context, userID int) (*models.Overview, error) {
	courses, err := s.enrollmentRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := s.paymentRepo.CountPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.Overview{
		TotalCourses:    courses,
		PendingPayments: pending,
	}, nil
}

// Courses retrieves the caller's enrolled courses
func (s *dashboardService) Courses(ctx context.Context, userID int) ([]models.EnrolledCourse, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}

// Payments retrieves the caller's payment history
func (s *dashboardService) Payments(ctx context.Context, userID int) ([]models.PaymentHistoryItem, error) {
	return s.paymentRepo.ListPaymentsByUser(ctx, userID)
}

// Activity retrieves the caller's recent activity feed
func (s *dashboardService) Activity(ctx context.Context, userID int) ([]models.ActivityEntry, error) {
	return s.activityRepo.ListByUser(ctx, userID, activityLimit)
}

// Notifications retrieves the caller's notifications
func (s *dashboardService) Notifications(ctx context.Context, userID int) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

// MarkNotificationsRead flags all of the caller's notifications as read
func (s *dashboardService) MarkNotificationsRead(ctx context.Context, userID int) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Tickets retrieves the caller's support tickets
func (s *dashboardService) Tickets(ctx context.Context, userID int) ([]models.SupportTicket, error) {
	return s.ticketRepo.ListTicketsByUser(ctx, userID)
}

// CreateTicket opens a support ticket for the caller
func (s *dashboardService) CreateTicket(ctx context.Context, userID int, req *models.CreateTicketRequest) error {
	subject := strings.TrimSpace(req.Subject)
	message := strings.TrimSpace(req.Message)
	if subject == "" || message == "" {
		return fmt.Errorf("%w: subject and message are required", models.ErrValidation)
	}

	return s.ticketRepo.CreateTicket(ctx, userID, subject, message)
}
