package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
)

// AdminListingService is the interface that wraps the admin panel listings
// served directly by this handler
type AdminListingService interface {
	// Method UserActivity retrieves the most recent activity across all users.
	UserActivity(ctx context.Context) ([]models.AdminActivityEntry, error)
}

// AdminSupportService is the interface that wraps the admin views of the
// public form submissions
type AdminSupportService interface {
	// Method ListContacts retrieves all contact submissions.
	ListContacts(ctx context.Context) ([]models.Contact, error)
	// Method ListSupportMessages retrieves all help-center messages.
	ListSupportMessages(ctx context.Context) ([]models.SupportMessage, error)
	// Method ListHireRequests retrieves all hire submissions.
	ListHireRequests(ctx context.Context) ([]models.HireRequest, error)
}

// AdminProjectService is the interface that wraps the admin project listing
type AdminProjectService interface {
	// Method ListAll retrieves all project submissions.
	ListAll(ctx context.Context) ([]models.Project, error)
}

// AdminHandler handles admin panel listing HTTP requests
type AdminHandler struct {
	BaseHandler
	adminService   AdminListingService
	supportService AdminSupportService
	projectService AdminProjectService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	adminService AdminListingService,
	supportService AdminSupportService,
	projectService AdminProjectService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		adminService:   adminService,
		supportService: supportService,
		projectService: projectService,
	}
}

// RegisterRoutes registers the admin listing routes.
// The caller scopes the router to /admin and attaches the admin middleware.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/messages", h.Contacts)
	r.Get("/support", h.SupportMessages)
	r.Get("/hire-requests", h.HireRequests)
	r.Get("/projects", h.Projects)
	r.Get("/user-activity", h.UserActivity)
}

// Contacts handles GET /admin/messages
// @Summary List contact submissions
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {array} models.Contact "Contact submissions"
// @Router /admin/messages [get]
func (h *AdminHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.supportService.ListContacts(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	h.RespondJSON(w, http.StatusOK, contacts)
}

// SupportMessages handles GET /admin/support
// @Summary List help-center messages
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {array} models.SupportMessage "Help-center messages"
// @Router /admin/support [get]
func (h *AdminHandler) SupportMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.supportService.ListSupportMessages(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []models.SupportMessage{}
	}
	h.RespondJSON(w, http.StatusOK, messages)
}

// HireRequests handles GET /admin/hire-requests
// @Summary List hire submissions
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {array} models.HireRequest "Hire submissions"
// @Router /admin/hire-requests [get]
func (h *AdminHandler) HireRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.supportService.ListHireRequests(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []models.HireRequest{}
	}
	h.RespondJSON(w, http.StatusOK, requests)
}

// Projects handles GET /admin/projects
// @Summary List project submissions
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {array} models.Project "Project submissions"
// @Router /admin/projects [get]
func (h *AdminHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListAll(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	h.RespondJSON(w, http.StatusOK, projects)
}

// UserActivity handles GET /admin/user-activity
// @Summary Recent activity across all users
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {array} models.AdminActivityEntry "Activity lines"
// @Router /admin/user-activity [get]
func (h *AdminHandler) UserActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.adminService.UserActivity(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if activity == nil {
		activity = []models.AdminActivityEntry{}
	}
	h.RespondJSON(w, http.StatusOK, activity)
}
