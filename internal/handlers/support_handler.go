package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
)

// SupportService is the interface that wraps methods for the public contact,
// help-center and hire forms
type SupportService interface {
	// Method SubmitContact records a contact form submission.
	SubmitContact(ctx context.Context, contact *models.Contact) error
	// Method SubmitSupportMessage records an anonymous help-center message.
	SubmitSupportMessage(ctx context.Context, name, email, message string) (int, error)
	// Method SubmitHireRequest records a hire form submission.
	SubmitHireRequest(ctx context.Context, req *models.HireRequest) (int, error)
}

// SkillbotService is the interface that wraps the AI support chat
type SkillbotService interface {
	// Method Reply answers one user message in its conversation context.
	Reply(ctx context.Context, req *models.SkillbotRequest) (string, error)
}

// skillbotFallback is returned with a 502 when the upstream chat fails
const skillbotFallback = "Skillbot is unavailable right now. Please try again in a moment or open a support ticket."

// SupportHandler handles the public support and marketing HTTP requests
type SupportHandler struct {
	BaseHandler
	supportService  SupportService
	skillbotService SkillbotService
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(
	supportService SupportService,
	skillbotService SkillbotService,
	logger *zap.Logger,
) *SupportHandler {
	return &SupportHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		supportService:  supportService,
		skillbotService: skillbotService,
	}
}

// RegisterRoutes registers all public support routes
func (h *SupportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.Contact)
	r.Post("/api/support", h.Support)
	r.Post("/api/hire", h.Hire)
	r.Post("/api/ai/skillbot", h.Skillbot)
}

// Contact handles POST /contact
// @Summary Submit the contact form
// @Tags support
// @Accept json
// @Produce json
// @Param request body models.Contact true "Contact form"
// @Success 201 {object} map[string]string "Recorded"
// @Failure 400 {object} map[string]string "Missing field"
// @Router /contact [post]
func (h *SupportHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.supportService.SubmitContact(r.Context(), &contact); err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, map[string]string{"message": "thanks, we will get back to you"})
}

// supportRequest is the help-center message payload
type supportRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Support handles POST /api/support
// @Summary Submit a help-center message
// @Tags support
// @Accept json
// @Produce json
// @Param request body supportRequest true "Help-center message"
// @Success 201 {object} map[string]any "Recorded"
// @Failure 400 {object} map[string]string "Missing field"
// @Router /api/support [post]
func (h *SupportHandler) Support(w http.ResponseWriter, r *http.Request) {
	var req supportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.supportService.SubmitSupportMessage(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, map[string]any{"message": "support request received", "id": id})
}

// Hire handles POST /api/hire
// @Summary Submit a hire request
// @Tags support
// @Accept json
// @Produce json
// @Param request body models.HireRequest true "Hire form"
// @Success 201 {object} map[string]any "Recorded"
// @Failure 400 {object} map[string]string "Missing field"
// @Router /api/hire [post]
func (h *SupportHandler) Hire(w http.ResponseWriter, r *http.Request) {
	var req models.HireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.supportService.SubmitHireRequest(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusCreated, map[string]any{"message": "hire request received", "id": id})
}

// Skillbot handles POST /api/ai/skillbot
// @Summary Ask the AI support assistant
// @Tags support
// @Accept json
// @Produce json
// @Param request body models.SkillbotRequest true "Message and prior turns"
// @Success 200 {object} map[string]string "Assistant reply"
// @Failure 400 {object} map[string]string "Missing message"
// @Failure 502 {object} map[string]string "Assistant unavailable"
// @Router /api/ai/skillbot [post]
func (h *SupportHandler) Skillbot(w http.ResponseWriter, r *http.Request) {
	var req models.SkillbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.skillbotService.Reply(r.Context(), &req)
	if err != nil {
		if isValidation(err) {
			h.RespondServiceError(w, err)
			return
		}
		h.Logger.Error("skillbot upstream failed", zap.Error(err))
		h.RespondJSON(w, http.StatusBadGateway, map[string]string{"reply": skillbotFallback})
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
