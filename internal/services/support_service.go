package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillgateway/backend/internal/models"
)

// helpCenterSource tags help-center submissions in support_messages
const helpCenterSource = "support_help_center"

// SupportRepository is the interface that wraps marketing and help-center
// submission data access
type SupportRepository interface {
	// Method CreateSupportMessage inserts an anonymous help-center message.
	CreateSupportMessage(ctx context.Context, name, email, message, sourcePage string) (int, error)
	// Method ListSupportMessages retrieves all help-center messages.
	ListSupportMessages(ctx context.Context) ([]models.SupportMessage, error)
	// Method CreateContact inserts a contact form submission.
	CreateContact(ctx context.Context, contact *models.Contact) error
	// Method ListContacts retrieves all contact submissions.
	ListContacts(ctx context.Context) ([]models.Contact, error)
	// Method CreateHireRequest inserts a hire form submission.
	CreateHireRequest(ctx context.Context, req *models.HireRequest) (int, error)
	// Method ListHireRequests retrieves all hire submissions.
	ListHireRequests(ctx context.Context) ([]models.HireRequest, error)
}

// supportService implements the public contact, help-center and hire forms
// and their admin listings
type supportService struct {
	supportRepo SupportRepository
}

// NewSupportService creates a new support service
func NewSupportService(supportRepo SupportRepository) *supportService {
	return &supportService{
		supportRepo: supportRepo,
	}
}

// SubmitContact records a contact form submission
func (s *supportService) SubmitContact(ctx context.Context, contact *models.Contact) error {
	if err := requireFields(map[string]string{
		"name":    contact.Name,
		"email":   contact.Email,
		"message": contact.Message,
	}); err != nil {
		return err
	}

	return s.supportRepo.CreateContact(ctx, contact)
}

// SubmitSupportMessage records an anonymous help-center message
func (s *supportService) SubmitSupportMessage(ctx context.Context, name, email, message string) (int, error) {
	if err := requireFields(map[string]string{
		"name":    name,
		"email":   email,
		"message": message,
	}); err != nil {
		return 0, err
	}

	return s.supportRepo.CreateSupportMessage(ctx, name, email, message, helpCenterSource)
}

// SubmitHireRequest records a hire form submission
func (s *supportService) SubmitHireRequest(ctx context.Context, req *models.HireRequest) (int, error) {
	if err := requireFields(map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"message": req.Message,
	}); err != nil {
		return 0, err
	}

	return s.supportRepo.CreateHireRequest(ctx, req)
}

// ListContacts retrieves all contact submissions for the admin panel
func (s *supportService) ListContacts(ctx context.Context) ([]models.Contact, error) {
	return s.supportRepo.ListContacts(ctx)
}

// ListSupportMessages retrieves all help-center messages for the admin panel
func (s *supportService) ListSupportMessages(ctx context.Context) ([]models.SupportMessage, error) {
	return s.supportRepo.ListSupportMessages(ctx)
}

// ListHireRequests retrieves all hire submissions for the admin panel
func (s *supportService) ListHireRequests(ctx context.Context) ([]models.HireRequest, error) {
	return s.supportRepo.ListHireRequests(ctx)
}

// requireFields validates that every named field is non-blank
func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", models.ErrValidation, name)
		}
	}
	return nil
}
