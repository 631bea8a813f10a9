package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillgateway/backend/internal/models"
)

type supportRepository struct {
	db *sql.DB
}

// NewSupportRepository creates a new support repository covering support
// tickets, help-center messages, contact forms, and hire requests
func NewSupportRepository(db *sql.DB) *supportRepository {
	return &supportRepository{
		db: db,
	}
}

// CreateTicket inserts a dashboard support ticket for the user
func (r *supportRepository) CreateTicket(ctx context.Context, userID int, subject, message string) error {
	query := "INSERT INTO support_tickets (user_id, subject, message, status) VALUES (?, ?, ?, 'open')"

	if _, err := r.db.ExecContext(ctx, query, userID, subject, message); err != nil {
		return fmt.Errorf("failed to create support ticket: %w", err)
	}

	return nil
}

// ListTicketsByUser retrieves the user's support tickets, newest first
func (r *supportRepository) ListTicketsByUser(ctx context.Context, userID int) ([]models.SupportTicket, error) {
	query := `
		SELECT id, subject, message, status, created_at, updated_at
		FROM support_tickets
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query support tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.SupportTicket
	for rows.Next() {
		var ticket models.SupportTicket
		err := rows.Scan(
			&ticket.ID,
			&ticket.Subject,
			&ticket.Message,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan support ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tickets, nil
}

// CreateSupportMessage inserts an anonymous help-center message
func (r *supportRepository) CreateSupportMessage(ctx context.Context, name, email, message, sourcePage string) (int, error) {
	query := "INSERT INTO support_messages (name, email, message, source_page) VALUES (?, ?, ?, ?)"

	result, err := r.db.ExecContext(ctx, query, name, email, message, sourcePage)
	if err != nil {
		return 0, fmt.Errorf("failed to create support message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return int(id), nil
}

// ListSupportMessages retrieves all help-center messages, newest first (admin view)
func (r *supportRepository) ListSupportMessages(ctx context.Context) ([]models.SupportMessage, error) {
	query := `
		SELECT id, name, email, message, source_page, created_at
		FROM support_messages
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query support messages: %w", err)
	}
	defer rows.Close()

	var messages []models.SupportMessage
	for rows.Next() {
		var msg models.SupportMessage
		err := rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.SourcePage, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan support message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return messages, nil
}

// CreateContact inserts a contact form submission
func (r *supportRepository) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := "INSERT INTO contacts (name, email, phone, subject, message) VALUES (?, ?, ?, ?, ?)"

	if _, err := r.db.ExecContext(ctx, query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Subject,
		contact.Message,
	); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// ListContacts retrieves all contact submissions, newest first (admin view)
func (r *supportRepository) ListContacts(ctx context.Context) ([]models.Contact, error) {
	query := `
		SELECT id, name, email, phone, subject, message, created_at
		FROM contacts
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		var contact models.Contact
		var phone, subject sql.NullString
		err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&phone,
			&subject,
			&contact.Message,
			&contact.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contact.Phone = phone.String
		contact.Subject = subject.String
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return contacts, nil
}

// CreateHireRequest inserts a hire form submission
func (r *supportRepository) CreateHireRequest(ctx context.Context, req *models.HireRequest) (int, error) {
	query := "INSERT INTO hire_requests (name, email, phone, org, subject, message) VALUES (?, ?, ?, ?, ?, ?)"

	result, err := r.db.ExecContext(ctx, query,
		req.Name,
		req.Email,
		req.Phone,
		req.Org,
		req.Subject,
		req.Message,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create hire request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return int(id), nil
}

// ListHireRequests retrieves all hire submissions, newest first (admin view)
func (r *supportRepository) ListHireRequests(ctx context.Context) ([]models.HireRequest, error) {
	query := `
		SELECT id, name, email, phone, org, subject, message, created_at
		FROM hire_requests
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query hire requests: %w", err)
	}
	defer rows.Close()

	var requests []models.HireRequest
	for rows.Next() {
		var req models.HireRequest
		var phone, org, subject sql.NullString
		err := rows.Scan(
			&req.ID,
			&req.Name,
			&req.Email,
			&phone,
			&org,
			&subject,
			&req.Message,
			&req.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hire request: %w", err)
		}
		req.Phone = phone.String
		req.Org = org.String
		req.Subject = subject.String
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return requests, nil
}
