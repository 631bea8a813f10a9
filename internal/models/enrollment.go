package models

import "time"

// EnrollmentStatus represents the lifecycle state of an enrollment
type EnrollmentStatus string

// Enrollment status constants
const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Enrollment links one user to one course, unique per (user, course)
type Enrollment struct {
	ID           int              `json:"id"`
	UserID       int              `json:"user_id"`
	CourseID     int              `json:"course_id"`
	Progress     int              `json:"progress"`
	LastLessonID *int             `json:"last_lesson,omitempty"`
	Status       EnrollmentStatus `json:"status"`
	EnrolledAt   time.Time        `json:"enrolled_at"`
}

// EnrolledCourse is a dashboard row joining an enrollment with its course
type EnrolledCourse struct {
	EnrollmentID int              `json:"enrollment_id"`
	CourseID     int              `json:"course_id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Level        string           `json:"level"`
	Progress     int              `json:"progress"`
	LastLessonID *int             `json:"last_lesson,omitempty"`
	Status       EnrollmentStatus `json:"status"`
	EnrolledAt   time.Time        `json:"enrolled_at"`
}

// LessonProgress is the per (user, lesson) watch state. Both fields are
// merged monotonically: stored values never decrease.
type LessonProgress struct {
	ID             int  `json:"id"`
	UserID         int  `json:"user_id"`
	LessonID       int  `json:"lesson_id"`
	WatchedSeconds int  `json:"watched_seconds"`
	IsCompleted    bool `json:"is_completed"`
}

// ProgressUpdateRequest is the player's progress report for a lesson
type ProgressUpdateRequest struct {
	WatchedSeconds int  `json:"watchedSeconds"`
	IsCompleted    bool `json:"isCompleted"`
}

// Overview holds the dashboard overview card counters
type Overview struct {
	TotalCourses    int `json:"total_courses"`
	HoursLearned    int `json:"hours_learned"`
	Certificates    int `json:"certificates"`
	PendingPayments int `json:"pending_payments"`
}
