package models

import "time"

// Notification is a user-facing message created as a side effect of payment
// status changes
type Notification struct {
	ID        int       `json:"id"`
	UserID    int       `json:"-"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"-"`
	Time      string    `json:"time"`
}

// ActivityEntry is a user-visible activity feed row
type ActivityEntry struct {
	Text string `json:"text"`
	Time string `json:"time"`
}

// AdminActivityEntry is an activity row across all users for the admin view
type AdminActivityEntry struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
	Time      string    `json:"time"`
}

// ActivityTimeLayout matches the display format the dashboard expects,
// e.g. "05 Dec, 03:20 PM".
const ActivityTimeLayout = "02 Jan, 03:04 PM"
