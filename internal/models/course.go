package models

import "time"

// Course represents a catalog entry
type Course struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Section represents an ordered group of lessons inside a course
type Section struct {
	ID        int    `json:"id"`
	CourseID  int    `json:"courseId"`
	Title     string `json:"title"`
	SortOrder int    `json:"order"`
}

// Lesson belongs to one section and carries a video reference
type Lesson struct {
	ID              int    `json:"id"`
	SectionID       int    `json:"sectionId"`
	CourseID        int    `json:"courseId"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds"`
	SortOrder       int    `json:"order"`
}

// LessonDetail is the player view of a single lesson
type LessonDetail struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds"`
	CourseID        int    `json:"course_id"`
	CourseTitle     string `json:"course_title"`
}

// OutlineLesson is a lesson row in the course outline, overlaid with the
// caller's completion flag
type OutlineLesson struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
	SortOrder       int    `json:"order"`
	IsCompleted     bool   `json:"isCompleted"`
}

// OutlineSection groups outline lessons in sort order
type OutlineSection struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	SortOrder int             `json:"order"`
	Lessons   []OutlineLesson `json:"lessons"`
}

// CourseOutline is the full section/lesson tree for the course player.
// FirstLessonID points at the first lesson of the first non-empty section
// and is null for a course without lessons.
type CourseOutline struct {
	Course        Course           `json:"course"`
	Sections      []OutlineSection `json:"sections"`
	FirstLessonID *int             `json:"firstLessonId"`
}
