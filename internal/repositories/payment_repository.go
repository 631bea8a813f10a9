package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillgateway/backend/internal/models"
)

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) *paymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// CreateRequest inserts a new PENDING payment request. The pending check and
// the insert run in one transaction so two concurrent submissions from the
// same user cannot both pass the check.
func (r *paymentRepository) CreateRequest(ctx context.Context, userID int, orderID string, req *models.CreatePaymentRequest) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pending int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payment_requests WHERE user_id = ? AND status = 'PENDING' FOR UPDATE",
		userID,
	).Scan(&pending)
	if err != nil {
		return 0, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending > 0 {
		return 0, fmt.Errorf("a payment request is already pending: %w", models.ErrPaymentPending)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO payment_requests
			(order_id, user_id, full_name, phone, email, course_title, course_id, amount, utr, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'PENDING')
	`,
		orderID,
		userID,
		req.FullName,
		req.Phone,
		req.Email,
		req.CourseTitle,
		req.CourseID,
		req.Amount,
		req.UTR,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create payment request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(id), nil
}

const paymentRequestColumns = `id, order_id, user_id, full_name, phone, email,
	course_title, course_id, amount, utr, status, created_at`

// scanRequest reads one payment request row
func scanRequest(scan func(...any) error) (*models.PaymentRequest, error) {
	var req models.PaymentRequest
	var courseID sql.NullInt64

	err := scan(
		&req.ID,
		&req.OrderID,
		&req.UserID,
		&req.FullName,
		&req.Phone,
		&req.Email,
		&req.CourseTitle,
		&courseID,
		&req.Amount,
		&req.UTR,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if courseID.Valid {
		id := int(courseID.Int64)
		req.CourseID = &id
	}
	return &req, nil
}

// GetRequestByID retrieves a payment request by ID
func (r *paymentRepository) GetRequestByID(ctx context.Context, id int) (*models.PaymentRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM payment_requests WHERE id = ? LIMIT 1", paymentRequestColumns)

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment request not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}

	return req, nil
}

// UpdateRequestStatus sets the review status of a payment request
func (r *paymentRepository) UpdateRequestStatus(ctx context.Context, id int, status models.PaymentStatus) error {
	query := "UPDATE payment_requests SET status = ? WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update payment request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("payment request not found: %w", models.ErrNotFound)
	}

	return nil
}

// Approve finalizes an approved payment request in one transaction: the
// status update, the ledger insert, the enrollment insert, and the unlock
// notification either all land or none do.
//
// The ledger carries a unique key on payment_request_id and the enrollment
// insert is guarded by an existence check, so replaying the approval cannot
// create duplicate rows.
func (r *paymentRepository) Approve(ctx context.Context, requestID, userID, courseID int, amount float64, utr, notification string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE payment_requests SET status = 'APPROVED' WHERE id = ?",
		requestID,
	); err != nil {
		return fmt.Errorf("failed to update payment request status: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO payments
			(payment_request_id, user_id, course_id, amount, status, payment_method, transaction_id, payment_date)
		VALUES (?, ?, ?, ?, 'SUCCESS', 'UPI', ?, NOW())
		ON DUPLICATE KEY UPDATE payment_date = payment_date
	`, requestID, userID, courseID, amount, utr); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO enrollments (user_id, course_id, progress, status, enrolled_at)
		SELECT ?, ?, 0, 'active', NOW()
		FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM enrollments
			WHERE user_id = ? AND course_id = ?
		)
	`, userID, courseID, userID, courseID); err != nil {
		return fmt.Errorf("failed to insert enrollment: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO notifications (user_id, message, is_read) VALUES (?, ?, 0)",
		userID, notification,
	); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListRequests retrieves all payment requests, newest first (admin view)
func (r *paymentRepository) ListRequests(ctx context.Context) ([]models.PaymentRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM payment_requests ORDER BY created_at DESC", paymentRequestColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment requests: %w", err)
	}
	defer rows.Close()

	var requests []models.PaymentRequest
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment request: %w", err)
		}
		requests = append(requests, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return requests, nil
}

// ListPaymentsByUser retrieves the user's ledger entries joined with course
// titles, newest first
func (r *paymentRepository) ListPaymentsByUser(ctx context.Context, userID int) ([]models.PaymentHistoryItem, error) {
	query := `
		SELECT
			p.id,
			p.amount,
			p.payment_method,
			p.status,
			p.transaction_id,
			p.payment_date,
			c.title AS course_title
		FROM payments p
		JOIN courses c ON p.course_id = c.id
		WHERE p.user_id = ?
		ORDER BY p.payment_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []models.PaymentHistoryItem
	for rows.Next() {
		var payment models.PaymentHistoryItem
		err := rows.Scan(
			&payment.ID,
			&payment.Amount,
			&payment.PaymentMethod,
			&payment.Status,
			&payment.TransactionID,
			&payment.PaymentDate,
			&payment.CourseTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payments, nil
}

// CountPendingByUser counts the user's pending payment requests
func (r *paymentRepository) CountPendingByUser(ctx context.Context, userID int) (int, error) {
	query := "SELECT COUNT(*) FROM payment_requests WHERE user_id = ? AND status = 'PENDING'"

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}

	return count, nil
}

// GetInvoice retrieves the invoice fields for an approved payment request
// owned by the user
func (r *paymentRepository) GetInvoice(ctx context.Context, requestID, userID int) (*models.Invoice, error) {
	query := `
		SELECT
			pr.id,
			u.username,
			u.email,
			pr.course_title,
			pr.amount,
			pr.utr,
			pr.created_at
		FROM payment_requests pr
		JOIN users u ON u.id = pr.user_id
		WHERE pr.id = ? AND pr.user_id = ? AND pr.status = 'APPROVED'
		LIMIT 1
	`

	var invoice models.Invoice
	var email sql.NullString
	err := r.db.QueryRowContext(ctx, query, requestID, userID).Scan(
		&invoice.RequestID,
		&invoice.Username,
		&email,
		&invoice.CourseTitle,
		&invoice.Amount,
		&invoice.UTR,
		&invoice.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invoice not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	invoice.Email = email.String
	return &invoice, nil
}
