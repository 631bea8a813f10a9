package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/auth/middleware"
	"github.com/skillgateway/backend/internal/models"
)

// PaymentService is the interface that wraps methods for the payment workflow
type PaymentService interface {
	// Method Submit records a payment request and returns its order id.
	// ErrPaymentPending is wrapped when the user already has one awaiting review.
	Submit(ctx context.Context, userID int, req *models.CreatePaymentRequest) (string, error)
	// Method UpdateStatus applies an administrative status transition and
	// returns a human-readable outcome message.
	UpdateStatus(ctx context.Context, req *models.UpdatePaymentStatusRequest) (string, error)
	// Method ListRequests retrieves every payment request.
	ListRequests(ctx context.Context) ([]models.PaymentRequest, error)
}

// PaymentHandler handles payment-request HTTP requests
type PaymentHandler struct {
	BaseHandler
	paymentService PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		paymentService: paymentService,
	}
}

// RegisterRoutes registers the user-facing payment routes
func (h *PaymentHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.With(sessionMiddleware).Post("/api/payments/create", h.Create)
}

// RegisterAdminRoutes registers the administrative payment routes.
// The caller scopes the router to /admin and attaches the admin middleware.
func (h *PaymentHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/payments", h.List)
	r.Post("/payments/update-status", h.UpdateStatus)
}

// Create handles POST /api/payments/create
// @Summary Submit a payment request
// @Description Records a UPI payment claim for manual review. One pending request per user.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body models.CreatePaymentRequest true "Payment request"
// @Success 201 {object} map[string]string "Request recorded"
// @Failure 400 {object} map[string]string "Missing field"
// @Failure 409 {object} map[string]string "A request is already pending"
// @Router /api/payments/create [post]
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	orderID, err := h.paymentService.Submit(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "payment request submitted",
		"orderId": orderID,
	})
}

// List handles GET /admin/payments
// @Summary List payment requests
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {array} models.PaymentRequest "All payment requests"
// @Failure 401 {object} map[string]string "Missing admin token"
// @Router /admin/payments [get]
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.paymentService.ListRequests(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if requests == nil {
		requests = []models.PaymentRequest{}
	}
	h.RespondJSON(w, http.StatusOK, requests)
}

// UpdateStatus handles POST /admin/payments/update-status
// @Summary Transition a payment request
// @Description Approves, rejects, or resets a payment request. Approval unlocks the course.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body models.UpdatePaymentStatusRequest true "Status transition"
// @Success 200 {object} map[string]string "Outcome message"
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 404 {object} map[string]string "Request not found"
// @Router /admin/payments/update-status [post]
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.paymentService.UpdateStatus(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": message})
}
