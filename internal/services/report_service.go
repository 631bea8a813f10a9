package services

import (
	"context"

	"github.com/skillgateway/backend/internal/models"
)

// UserLister is the interface that wraps the report's user read
type UserLister interface {
	// Method ListAll retrieves every user, newest first.
	ListAll(ctx context.Context) ([]models.User, error)
}

// RequestLister is the interface that wraps the report's payment request read
type RequestLister interface {
	// Method ListRequests retrieves every payment request, newest first.
	ListRequests(ctx context.Context) ([]models.PaymentRequest, error)
}

// ProjectLister is the interface that wraps the report's project read
type ProjectLister interface {
	// Method ListAll retrieves every project submission, newest first.
	ListAll(ctx context.Context) ([]models.Project, error)
}

// InvoiceReader is the interface that wraps the invoice lookup
type InvoiceReader interface {
	// Method GetInvoice retrieves an APPROVED request owned by the user.
	GetInvoice(ctx context.Context, requestID, userID int) (*models.Invoice, error)
}

// ReportRenderer is the interface that wraps PDF rendering
type ReportRenderer interface {
	UsersReport(users []models.User) ([]byte, error)
	PaymentsReport(requests []models.PaymentRequest) ([]byte, error)
	ProjectsReport(projects []models.Project) ([]byte, error)
	Invoice(inv *models.Invoice) ([]byte, error)
}

// reportService implements the administrative PDF reports and the per-payment
// invoice download
type reportService struct {
	users    UserLister
	requests RequestLister
	projects ProjectLister
	invoices InvoiceReader
	renderer ReportRenderer
}

// NewReportService creates a new report service
func NewReportService(
	users UserLister,
	requests RequestLister,
	projects ProjectLister,
	invoices InvoiceReader,
	renderer ReportRenderer,
) *reportService {
	return &reportService{
		users:    users,
		requests: requests,
		projects: projects,
		invoices: invoices,
		renderer: renderer,
	}
}

// UsersReport renders the registered-users report
func (s *reportService) UsersReport(ctx context.Context) ([]byte, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.UsersReport(users)
}

// PaymentsReport renders the payment-requests report
func (s *reportService) PaymentsReport(ctx context.Context) ([]byte, error) {
	requests, err := s.requests.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.PaymentsReport(requests)
}

// ProjectsReport renders the project-submissions report
func (s *reportService) ProjectsReport(ctx context.Context) ([]byte, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.ProjectsReport(projects)
}

// Invoice renders the invoice for an approved payment owned by the caller
func (s *reportService) Invoice(ctx context.Context, requestID, userID int) ([]byte, error) {
	invoice, err := s.invoices.GetInvoice(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Invoice(invoice)
}
