package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/auth/middleware"
	"github.com/skillgateway/backend/internal/models"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Register creates a new email/password account.
	Register(ctx context.Context, req *models.RegisterRequest) error
	// Method Login authenticates an email/password user and opens a
	// session, returning its id and the user snapshot.
	Login(ctx context.Context, req *models.LoginRequest) (string, *models.SessionUser, error)
	// Method PhoneLogin finds or creates a phone-identified user and opens
	// a session.
	PhoneLogin(ctx context.Context, req *models.PhoneLoginRequest) (string, *models.SessionUser, error)
	// Method RequestOTP issues a one-time login code for an email.
	RequestOTP(ctx context.Context, req *models.OTPRequest) error
	// Method VerifyOTP redeems a one-time code and opens a session.
	VerifyOTP(ctx context.Context, req *models.OTPVerifyRequest) (string, *models.SessionUser, error)
	// Method Logout destroys the session.
	Logout(ctx context.Context, sid string, userID int) error
	// Method AdminLogin checks the administrator credential and returns a token.
	AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	cookies     *sessions.CookieStore
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService AuthService,
	cookies *sessions.CookieStore,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
		cookies:     cookies,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, sessionMiddleware, optionalSessionMiddleware func(http.Handler) http.Handler) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/phone-login", h.PhoneLogin)
	r.Post("/request-otp", h.RequestOTP)
	r.Post("/verify-otp", h.VerifyOTP)
	r.Post("/admin/login", h.AdminLogin)
	r.With(sessionMiddleware).Get("/logout", h.Logout)
	r.With(optionalSessionMiddleware).Get("/api/me", h.Me)
}

// Register handles POST /register
// @Summary Register a new user
// @Description Create an email/password account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]string "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Email already taken"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Register(r.Context(), &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{"message": "registered successfully"})
}

// Login handles POST /login
// @Summary Login user
// @Description Authenticate with email and password; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.SessionUser "Login successful"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.openSession(w, r, sid, user)
}

// PhoneLogin handles POST /phone-login
// @Summary Login with a phone number
// @Description Find or create a phone-identified account; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.PhoneLoginRequest true "Phone login request"
// @Success 200 {object} models.SessionUser "Login successful"
// @Failure 400 {object} map[string]string "Invalid phone number"
// @Router /phone-login [post]
func (h *AuthHandler) PhoneLogin(w http.ResponseWriter, r *http.Request) {
	var req models.PhoneLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, user, err := h.authService.PhoneLogin(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.openSession(w, r, sid, user)
}

// RequestOTP handles POST /request-otp
// @Summary Request a one-time login code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.OTPRequest true "Code request"
// @Success 200 {object} map[string]string "Code issued"
// @Failure 400 {object} map[string]string "Invalid email"
// @Router /request-otp [post]
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.RequestOTP(r.Context(), &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "code sent"})
}

// VerifyOTP handles POST /verify-otp
// @Summary Redeem a one-time login code
// @Description Verifies the code and opens a session; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.OTPVerifyRequest true "Code verification"
// @Success 200 {object} models.SessionUser "Login successful"
// @Failure 401 {object} map[string]string "Invalid or expired code"
// @Router /verify-otp [post]
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sid, user, err := h.authService.VerifyOTP(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.openSession(w, r, sid, user)
}

// Logout handles GET /logout
// @Summary Logout
// @Description Destroys the session and expires the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logged out"
// @Failure 401 {object} map[string]string "Not logged in"
// @Router /logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, _ := middleware.GetSessionID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.authService.Logout(r.Context(), sid, userID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	middleware.ClearSessionCookie(w, r, h.cookies)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// AdminLogin handles POST /admin/login
// @Summary Administrator login
// @Description Checks the fixed administrator credential and returns a bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Admin login request"
// @Success 200 {object} map[string]string "Token issued"
// @Failure 401 {object} map[string]string "Invalid admin credentials"
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.authService.AdminLogin(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me handles GET /api/me
// @Summary Session probe
// @Description Returns the logged-in user snapshot, or logged_in false
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any "Session state"
// @Router /api/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondJSON(w, http.StatusOK, map[string]any{"logged_in": false})
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"logged_in": true, "user": user})
}

// openSession writes the session cookie and returns the user snapshot
func (h *AuthHandler) openSession(w http.ResponseWriter, r *http.Request, sid string, user *models.SessionUser) {
	if err := middleware.SetSessionCookie(w, r, h.cookies, sid); err != nil {
		h.Logger.Error("failed to set session cookie", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
