package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillgateway/backend/internal/auth/service"
	"github.com/skillgateway/backend/internal/models"
	"github.com/skillgateway/backend/internal/session"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user. ErrConflict is wrapped when the
	// email or phone is already taken.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email. ErrNotFound is wrapped
	// when no such user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByPhone retrieves a user by phone number. ErrNotFound is
	// wrapped when no such user exists.
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
}

// SessionStore is the interface that wraps server-side session operations
type SessionStore interface {
	// Method Create stores a session for the user and returns its id.
	Create(ctx context.Context, user models.SessionUser) (string, error)
	// Method Delete removes a session by id.
	Delete(ctx context.Context, sid string) error
}

// OTPStore is the interface that wraps one-time login code operations
type OTPStore interface {
	// Method Issue generates and stores a code for the email.
	Issue(ctx context.Context, email string) (string, error)
	// Method Verify redeems a code, deleting it on success.
	Verify(ctx context.Context, email, code string) error
}

// ActivityRepository is the interface that wraps activity log writes
type ActivityRepository interface {
	// Method Log records one activity line for the user.
	Log(ctx context.Context, userID int, action string) error
}

// authService implements session-based user authentication and the
// token-based administrator login
type authService struct {
	userRepo          UserRepository
	sessions          SessionStore
	otp               OTPStore
	activityRepo      ActivityRepository
	tokenGenerator    *service.TokenGenerator
	logger            *zap.Logger
	adminUsername     string
	adminPasswordHash string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	sessions SessionStore,
	otp OTPStore,
	activityRepo ActivityRepository,
	tokenGenerator *service.TokenGenerator,
	logger *zap.Logger,
	adminUsername string,
	adminPasswordHash string,
) *authService {
	return &authService{
		userRepo:          userRepo,
		sessions:          sessions,
		otp:               otp,
		activityRepo:      activityRepo,
		tokenGenerator:    tokenGenerator,
		logger:            logger,
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// phoneDigits strips everything but digits from a phone number
var phoneDigits = regexp.MustCompile(`\D`)

// Register creates a new email/password account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	username := strings.TrimSpace(req.Username)

	if username == "" {
		return fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", models.ErrValidation)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
		Provider:     models.ProviderPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.logActivity(ctx, user.ID, "Account created")
	return nil
}

// Login authenticates an email/password user and opens a session
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.SessionUser, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", models.ErrUnauthorized)
	}

	sessionUser := sessionUserFrom(user)
	sid, err := s.sessions.Create(ctx, sessionUser)
	if err != nil {
		return "", nil, err
	}

	s.logActivity(ctx, user.ID, "Logged in via email/password")
	return sid, &sessionUser, nil
}

// PhoneLogin finds or creates a phone-identified user and opens a session
func (s *authService) PhoneLogin(ctx context.Context, req *models.PhoneLoginRequest) (string, *models.SessionUser, error) {
	phone := phoneDigits.ReplaceAllString(req.Phone, "")
	if len(phone) < 10 {
		return "", nil, fmt.Errorf("%w: valid phone number is required", models.ErrValidation)
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if errors.Is(err, models.ErrNotFound) {
		user = &models.User{
			Username: "PhoneUser_" + phone[len(phone)-4:],
			Phone:    phone,
			Provider: models.ProviderPhone,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, err
		}
	} else if err != nil {
		return "", nil, err
	}

	sessionUser := sessionUserFrom(user)
	sid, err := s.sessions.Create(ctx, sessionUser)
	if err != nil {
		return "", nil, err
	}

	s.logActivity(ctx, user.ID, "Logged in via phone")
	return sid, &sessionUser, nil
}

// RequestOTP issues a one-time login code for an email. There is no mail
// transport; the code is written to the server log for the operator.
func (s *authService) RequestOTP(ctx context.Context, req *models.OTPRequest) error {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}

	code, err := s.otp.Issue(ctx, email)
	if err != nil {
		return err
	}

	s.logger.Info("issued login code", zap.String("email", email), zap.String("code", code))
	return nil
}

// VerifyOTP redeems a one-time code, finding or creating the user, and
// opens a session
func (s *authService) VerifyOTP(ctx context.Context, req *models.OTPVerifyRequest) (string, *models.SessionUser, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Code == "" {
		return "", nil, fmt.Errorf("%w: email and code are required", models.ErrValidation)
	}

	if err := s.otp.Verify(ctx, email, req.Code); err != nil {
		if errors.Is(err, session.ErrOTPInvalid) {
			return "", nil, fmt.Errorf("invalid or expired code: %w", models.ErrUnauthorized)
		}
		return "", nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		user = &models.User{
			Username: strings.SplitN(email, "@", 2)[0],
			Email:    email,
			Provider: models.ProviderPassword,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, err
		}
	} else if err != nil {
		return "", nil, err
	}

	sessionUser := sessionUserFrom(user)
	sid, err := s.sessions.Create(ctx, sessionUser)
	if err != nil {
		return "", nil, err
	}

	s.logActivity(ctx, user.ID, "Logged in via email code")
	return sid, &sessionUser, nil
}

// Logout destroys the session
func (s *authService) Logout(ctx context.Context, sid string, userID int) error {
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return err
	}
	s.logActivity(ctx, userID, "Logged out")
	return nil
}

// AdminLogin checks the fixed administrator credential and issues a token
func (s *authService) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (string, error) {
	if req.Username != s.adminUsername ||
		bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)) != nil {
		return "", fmt.Errorf("invalid admin credentials: %w", models.ErrUnauthorized)
	}

	token, err := s.tokenGenerator.GenerateAdminToken(req.Username)
	if err != nil {
		return "", err
	}

	return token, nil
}

// logActivity records an activity line without failing the caller's flow
func (s *authService) logActivity(ctx context.Context, userID int, action string) {
	if err := s.activityRepo.Log(ctx, userID, action); err != nil {
		s.logger.Warn("failed to log activity", zap.Int("userId", userID), zap.Error(err))
	}
}

func sessionUserFrom(user *models.User) models.SessionUser {
	return models.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Provider: user.Provider,
	}
}
