package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/auth/middleware"
	"github.com/skillgateway/backend/internal/models"
)

// DashboardService is the interface that wraps methods for the logged-in
// dashboard reads and writes
type DashboardService interface {
	// Method GetProfile retrieves the caller's profile view.
	GetProfile(ctx context.Context, userID int) (*models.Profile, error)
	// Method UpdateProfile updates the username and/or phone and returns
	// the refreshed profile.
	UpdateProfile(ctx context.Context, userID int, req *models.UpdateProfileRequest) (*models.Profile, error)
	// Method UpdateAvatar stores an uploaded avatar and returns its public path.
	UpdateAvatar(ctx context.Context, userID int, filename string, file io.Reader) (string, error)
	// Method Overview assembles the dashboard counter cards.
	Overview(ctx context.Context, userID int) (*models.Overview, error)
	// Method Courses retrieves the caller's enrolled courses.
	Courses(ctx context.Context, userID int) ([]models.EnrolledCourse, error)
	// Method Payments retrieves the caller's payment history.
	Payments(ctx context.Context, userID int) ([]models.PaymentHistoryItem, error)
	// Method Activity retrieves the caller's recent activity feed.
	Activity(ctx context.Context, userID int) ([]models.ActivityEntry, error)
	// Method Notifications retrieves the caller's notifications.
	Notifications(ctx context.Context, userID int) ([]models.Notification, error)
	// Method MarkNotificationsRead flags all notifications as read.
	MarkNotificationsRead(ctx context.Context, userID int) error
	// Method Tickets retrieves the caller's support tickets.
	Tickets(ctx context.Context, userID int) ([]models.SupportTicket, error)
	// Method CreateTicket opens a support ticket for the caller.
	CreateTicket(ctx context.Context, userID int, req *models.CreateTicketRequest) error
}

// DashboardHandler handles logged-in dashboard HTTP requests
type DashboardHandler struct {
	BaseHandler
	dashboardService DashboardService
	maxAvatarSize    int64
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService DashboardService, maxAvatarSize int64, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		dashboardService: dashboardService,
		maxAvatarSize:    maxAvatarSize,
	}
}

// RegisterRoutes registers all dashboard routes under /api/dashboard
func (h *DashboardHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
		r.Post("/avatar", h.UploadAvatar)
		r.Get("/overview", h.Overview)
		r.Get("/courses", h.Courses)
		r.Get("/payments", h.Payments)
		r.Get("/activity", h.Activity)
		r.Get("/notifications", h.Notifications)
		r.Post("/notifications/read", h.MarkNotificationsRead)
		r.Get("/support-tickets", h.Tickets)
		r.Post("/support-tickets", h.CreateTicket)
	})
}

// userID pulls the session user id; the session middleware guarantees it
func (h *DashboardHandler) userID(r *http.Request) int {
	id, _ := middleware.GetUserID(r.Context())
	return id
}

// GetProfile handles GET /api/dashboard/profile
// @Summary Get the caller's profile
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.Profile "Profile"
// @Failure 401 {object} map[string]string "Not logged in"
// @Router /api/dashboard/profile [get]
func (h *DashboardHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.dashboardService.GetProfile(r.Context(), h.userID(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/dashboard/profile
// @Summary Update the caller's profile
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile update"
// @Success 200 {object} models.Profile "Refreshed profile"
// @Failure 400 {object} map[string]string "Nothing to update"
// @Router /api/dashboard/profile [put]
func (h *DashboardHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.dashboardService.UpdateProfile(r.Context(), h.userID(r), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, profile)
}

// UploadAvatar handles POST /api/dashboard/avatar
// @Summary Upload the caller's avatar
// @Tags dashboard
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} map[string]string "Stored avatar path"
// @Failure 400 {object} map[string]string "Missing or unsupported file"
// @Failure 413 {object} map[string]string "File too large"
// @Router /api/dashboard/avatar [post]
func (h *DashboardHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarSize)
	if err := r.ParseMultipartForm(h.maxAvatarSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "avatar file is too large")
			return
		}
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	path, err := h.dashboardService.UpdateAvatar(r.Context(), h.userID(r), header.Filename, file)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"avatar": path})
}

// Overview handles GET /api/dashboard/overview
// @Summary Dashboard counters
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.Overview "Counters"
// @Router /api/dashboard/overview [get]
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(r.Context(), h.userID(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, overview)
}

// Courses handles GET /api/dashboard/courses
// @Summary The caller's enrolled courses
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.EnrolledCourse "Enrollments"
// @Router /api/dashboard/courses [get]
func (h *DashboardHandler) Courses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.dashboardService.Courses(r.Context(), h.userID(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if courses == nil {
		courses = []models.EnrolledCourse{}
	}
	h.RespondJSON(w, http.StatusOK, courses)
}

// Payments handles GET /api/dashboard/payments
// @Summary The caller's payment history
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.PaymentHistoryItem "Payments"
// @Router /api/dashboard/payments [get]
func (h *DashboardHandler) Payments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.dashboardService.Payments(r.Context(), h.userID(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if payments == nil {
		payments = []models.PaymentHistoryItem{}
	}
	h.RespondJSON(w, http.StatusOK, payments)
}

// Activity handles GET /api/dashboard/activity
// @Summary The caller's recent activity
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.ActivityEntry "Activity feed"
// @Router /api/dashboard/activity [get]
func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.dashboardService.Activity(r.Context(), h.userID(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if activity == nil {
		activity = []models.ActivityEntry{}
	}
	h.RespondJSON(w, http.StatusOK, activity)
}

// Notifications handles GET /api/dashboard/notifications
// @Summary The caller's notifications
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.Notification "Notifications"
// @Router /api/dashboard/notifications [get]
func (h *DashboardHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.dashboardService.Notifications(r.Context(), h.userID(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	h.RespondJSON(w, http.StatusOK, notifications)
}

// MarkNotificationsRead handles POST /api/dashboard/notifications/read
// @Summary Mark all notifications read
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]string "Marked"
// @Router /api/dashboard/notifications/read [post]
func (h *DashboardHandler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboardService.MarkNotificationsRead(r.Context(), h.userID(r)); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "notifications marked read"})
}

// Tickets handles GET /api/dashboard/support-tickets
// @Summary The caller's support tickets
// @Tags dashboard
// @Produce json
// @Success 200 {array} models.SupportTicket "Tickets"
// @Router /api/dashboard/support-tickets [get]
func (h *DashboardHandler) Tickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.dashboardService.Tickets(r.Context(), h.userID(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if tickets == nil {
		tickets = []models.SupportTicket{}
	}
	h.RespondJSON(w, http.StatusOK, tickets)
}

// CreateTicket handles POST /api/dashboard/support-tickets
// @Summary Open a support ticket
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body models.CreateTicketRequest true "Ticket"
// @Success 201 {object} map[string]string "Ticket opened"
// @Failure 400 {object} map[string]string "Missing field"
// @Router /api/dashboard/support-tickets [post]
func (h *DashboardHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.dashboardService.CreateTicket(r.Context(), h.userID(r), &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, map[string]string{"message": "ticket created"})
}
