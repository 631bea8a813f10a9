package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/auth/middleware"
)

// ReportService is the interface that wraps PDF report generation
type ReportService interface {
	// Method UsersReport renders the registered-users report.
	UsersReport(ctx context.Context) ([]byte, error)
	// Method PaymentsReport renders the payment-requests report.
	PaymentsReport(ctx context.Context) ([]byte, error)
	// Method ProjectsReport renders the project-submissions report.
	ProjectsReport(ctx context.Context) ([]byte, error)
	// Method Invoice renders the invoice for an approved payment owned by
	// the caller.
	Invoice(ctx context.Context, requestID, userID int) ([]byte, error)
}

// ReportHandler handles PDF report HTTP requests
type ReportHandler struct {
	BaseHandler
	reportService ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		reportService: reportService,
	}
}

// RegisterAdminRoutes registers the report routes.
// The caller scopes the router to /admin and attaches the admin middleware.
func (h *ReportHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/reports/users", h.Users)
	r.Get("/reports/payments", h.Payments)
	r.Get("/reports/projects", h.Projects)
}

// RegisterRoutes registers the user-facing invoice route
func (h *ReportHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.With(sessionMiddleware).Get("/invoice/{requestID}", h.Invoice)
}

// respondPDF streams a rendered document as an attachment
func (h *ReportHandler) respondPDF(w http.ResponseWriter, filename string, doc []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.Logger.Error("failed to write pdf response", zap.Error(err))
	}
}

// Users handles GET /admin/reports/users
// @Summary Registered users report
// @Tags admin
// @Produce application/pdf
// @Security AdminToken
// @Success 200 {file} binary "PDF document"
// @Router /admin/reports/users [get]
func (h *ReportHandler) Users(w http.ResponseWriter, r *http.Request) {
	doc, err := h.reportService.UsersReport(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.respondPDF(w, "users-report.pdf", doc)
}

// Payments handles GET /admin/reports/payments
// @Summary Payment requests report
// @Tags admin
// @Produce application/pdf
// @Security AdminToken
// @Success 200 {file} binary "PDF document"
// @Router /admin/reports/payments [get]
func (h *ReportHandler) Payments(w http.ResponseWriter, r *http.Request) {
	doc, err := h.reportService.PaymentsReport(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.respondPDF(w, "payments-report.pdf", doc)
}

// Projects handles GET /admin/reports/projects
// @Summary Project submissions report
// @Tags admin
// @Produce application/pdf
// @Security AdminToken
// @Success 200 {file} binary "PDF document"
// @Router /admin/reports/projects [get]
func (h *ReportHandler) Projects(w http.ResponseWriter, r *http.Request) {
	doc, err := h.reportService.ProjectsReport(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.respondPDF(w, "projects-report.pdf", doc)
}

// Invoice handles GET /invoice/{requestID}
// @Summary Download a payment invoice
// @Description Only the owner of an approved payment can download its invoice
// @Tags payments
// @Produce application/pdf
// @Param requestID path int true "Payment request ID"
// @Success 200 {file} binary "PDF document"
// @Failure 404 {object} map[string]string "No such approved payment"
// @Router /invoice/{requestID} [get]
func (h *ReportHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := urlID(r, "requestID")
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	doc, err := h.reportService.Invoice(r.Context(), requestID, userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.respondPDF(w, fmt.Sprintf("invoice-INV-%d.pdf", requestID), doc)
}
