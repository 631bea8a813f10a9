package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/auth/middleware"
	"github.com/skillgateway/backend/internal/models"
)

// ProgressService is the interface that wraps methods for the course player
type ProgressService interface {
	// Method UpdateLessonProgress merges a watch report and returns the
	// course completion percent.
	UpdateLessonProgress(ctx context.Context, userID, lessonID int, req *models.ProgressUpdateRequest) (int, error)
	// Method GetOutline assembles the section/lesson tree for an enrolled user.
	GetOutline(ctx context.Context, userID, courseID int) (*models.CourseOutline, error)
	// Method GetLesson retrieves a single lesson, checking enrollment.
	GetLesson(ctx context.Context, userID, lessonID int) (*models.LessonDetail, error)
	// Method CheckPurchase reports whether the user owns the course.
	CheckPurchase(ctx context.Context, userID, courseID int) (bool, error)
}

// PlayerHandler handles course player HTTP requests
type PlayerHandler struct {
	BaseHandler
	progressService ProgressService
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(progressService ProgressService, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		progressService: progressService,
	}
}

// RegisterRoutes registers all player routes
func (h *PlayerHandler) RegisterRoutes(r chi.Router, sessionMiddleware, optionalSessionMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/api/dashboard/courses/{courseID}/outline", h.Outline)
		r.Get("/api/dashboard/lessons/{lessonID}", h.Lesson)
		r.Post("/api/dashboard/lessons/{lessonID}/progress", h.Progress)
	})
	r.With(optionalSessionMiddleware).Get("/api/check-purchase/{courseID}", h.CheckPurchase)
}

// urlID parses a numeric chi URL parameter
func urlID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	return id, err == nil && id > 0
}

// Outline handles GET /api/dashboard/courses/{courseID}/outline
// @Summary Course outline
// @Description Sections and lessons with the caller's completion overlay
// @Tags player
// @Produce json
// @Param courseID path int true "Course ID"
// @Success 200 {object} models.CourseOutline "Outline"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /api/dashboard/courses/{courseID}/outline [get]
func (h *PlayerHandler) Outline(w http.ResponseWriter, r *http.Request) {
	courseID, ok := urlID(r, "courseID")
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	outline, err := h.progressService.GetOutline(r.Context(), userID, courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, outline)
}

// Lesson handles GET /api/dashboard/lessons/{lessonID}
// @Summary Single lesson detail
// @Tags player
// @Produce json
// @Param lessonID path int true "Lesson ID"
// @Success 200 {object} models.LessonDetail "Lesson"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /api/dashboard/lessons/{lessonID} [get]
func (h *PlayerHandler) Lesson(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := urlID(r, "lessonID")
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	lesson, err := h.progressService.GetLesson(r.Context(), userID, lessonID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, lesson)
}

// Progress handles POST /api/dashboard/lessons/{lessonID}/progress
// @Summary Report lesson watch progress
// @Description Merges the report monotonically and returns the course percent
// @Tags player
// @Accept json
// @Produce json
// @Param lessonID path int true "Lesson ID"
// @Param request body models.ProgressUpdateRequest true "Watch report"
// @Success 200 {object} map[string]int "Course completion percent"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /api/dashboard/lessons/{lessonID}/progress [post]
func (h *PlayerHandler) Progress(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := urlID(r, "lessonID")
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	var req models.ProgressUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	percent, err := h.progressService.UpdateLessonProgress(r.Context(), userID, lessonID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]int{"progress": percent})
}

// CheckPurchase handles GET /api/check-purchase/{courseID}
// @Summary Check course ownership
// @Description Answers false rather than an error for logged-out callers and unknown courses
// @Tags player
// @Produce json
// @Param courseID path int true "Course ID"
// @Success 200 {object} map[string]bool "Ownership flag"
// @Router /api/check-purchase/{courseID} [get]
func (h *PlayerHandler) CheckPurchase(w http.ResponseWriter, r *http.Request) {
	courseID, ok := urlID(r, "courseID")
	if !ok {
		h.RespondJSON(w, http.StatusOK, map[string]bool{"purchased": false})
		return
	}
	userID, _ := middleware.GetUserID(r.Context())

	purchased, err := h.progressService.CheckPurchase(r.Context(), userID, courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	h.RespondJSON(w, http.StatusOK, map[string]bool{"purchased": purchased})
}
