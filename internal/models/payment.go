package models

import (
	"fmt"
	"strings"
	"time"
)

// PaymentStatus represents the review state of a payment request
type PaymentStatus string

// Payment request status constants
const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// Valid reports whether the status is one of the three recognized values
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentApproved, PaymentRejected:
		return true
	}
	return false
}

// PaymentRequest is a user's unverified claim of having paid for a course
type PaymentRequest struct {
	ID          int           `json:"id"`
	OrderID     string        `json:"order_id"`
	UserID      int           `json:"user_id"`
	FullName    string        `json:"full_name"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	CourseTitle string        `json:"course_title"`
	CourseID    *int          `json:"course_id,omitempty"`
	Amount      float64       `json:"amount"`
	UTR         string        `json:"utr"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CreatePaymentRequest is the user-facing payment submission payload
type CreatePaymentRequest struct {
	FullName    string  `json:"fullName"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	CourseTitle string  `json:"courseTitle"`
	CourseID    *int    `json:"courseId,omitempty"`
	Amount      float64 `json:"amount"`
	UTR         string  `json:"utr"`
}

// Validate checks that every required submission field is present
func (r *CreatePaymentRequest) Validate() error {
	fields := map[string]string{
		"fullName":    r.FullName,
		"phone":       r.Phone,
		"email":       r.Email,
		"courseTitle": r.CourseTitle,
		"utr":         r.UTR,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return nil
}

// UpdatePaymentStatusRequest is the administrative status transition payload
type UpdatePaymentStatusRequest struct {
	ID     int           `json:"id"`
	Status PaymentStatus `json:"status"`
}

// Payment is the immutable ledger record created on approval. At most one
// payment exists per payment request.
type Payment struct {
	ID               int       `json:"id"`
	PaymentRequestID int       `json:"payment_request_id"`
	UserID           int       `json:"user_id"`
	CourseID         int       `json:"course_id"`
	Amount           float64   `json:"amount"`
	Status           string    `json:"status"`
	PaymentMethod    string    `json:"payment_method"`
	TransactionID    string    `json:"transaction_id"`
	PaymentDate      time.Time `json:"payment_date"`
}

// PaymentHistoryItem is a dashboard payment row joined with the course title
type PaymentHistoryItem struct {
	ID            int       `json:"id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	PaymentDate   time.Time `json:"payment_date"`
	CourseTitle   string    `json:"course_title"`
}

// Invoice holds the fields printed on a single-payment invoice PDF
type Invoice struct {
	RequestID   int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	CourseTitle string    `json:"course_title"`
	Amount      float64   `json:"amount"`
	UTR         string    `json:"utr"`
	CreatedAt   time.Time `json:"created_at"`
}
