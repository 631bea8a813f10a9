package models

import "time"

// Provider tags the identity variant a user signed up with. All variants
// merge into one users row keyed by a stable identifier (email or phone).
type Provider string

// Identity provider constants
const (
	ProviderPassword Provider = "password"
	ProviderPhone    Provider = "phone"
	ProviderGoogle   Provider = "google"
)

// User represents a user in the system
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Provider     Provider  `json:"provider,omitempty"`
	AvatarPath   string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionUser is the slice of the user record kept in the session store
type SessionUser struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Provider Provider `json:"provider,omitempty"`
}

// RegisterRequest represents a request to create an email/password account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents an email/password login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PhoneLoginRequest represents a phone-number login
type PhoneLoginRequest struct {
	Phone string `json:"phone"`
}

// OTPRequest asks for a one-time code to be issued for an email
type OTPRequest struct {
	Email string `json:"email"`
}

// OTPVerifyRequest redeems a one-time code
type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// UpdateProfileRequest represents a dashboard profile update
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// AdminLoginRequest represents an administrator login
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile is the dashboard profile view of a user
type Profile struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
