package models

import "time"

// Project is a user-submitted project with an uploaded file
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Github      string    `json:"github,omitempty"`
	Description string    `json:"description,omitempty"`
	FileName    string    `json:"file_name"`
	FilePath    string    `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
}
