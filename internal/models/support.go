package models

import "time"

// SupportTicket is a dashboard support request owned by a user
type SupportTicket struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTicketRequest is the dashboard support ticket payload
type CreateTicketRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SupportMessage is an anonymous help-center message
type SupportMessage struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	SourcePage string    `json:"source_page"`
	CreatedAt  time.Time `json:"created_at"`
}

// Contact is a marketing-page contact form submission
type Contact struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// HireRequest is a "hire us" form submission
type HireRequest struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Org       string    `json:"org,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is one turn of the skillbot conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SkillbotRequest is the AI support chat payload
type SkillbotRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}
