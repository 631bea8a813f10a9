package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skillgateway/backend/internal/models"
)

// ProjectService is the interface that wraps project submissions
type ProjectService interface {
	// Method Submit validates and stores a project submission and its file.
	Submit(ctx context.Context, project *models.Project, filename string, file io.Reader) (int, error)
}

// ProjectHandler handles project submission HTTP requests
type ProjectHandler struct {
	BaseHandler
	projectService ProjectService
	maxSize        int64
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService ProjectService, maxSize int64, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		projectService: projectService,
		maxSize:        maxSize,
	}
}

// RegisterRoutes registers the project submission route
func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/projects", h.Submit)
}

// Submit handles POST /api/projects
// @Summary Submit a project
// @Description Multipart form with the project fields and a .zip/.pdf/.ppt/.pptx file
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Submitter name"
// @Param email formData string true "Submitter email"
// @Param title formData string true "Project title"
// @Param category formData string true "Project category"
// @Param github formData string false "Repository link"
// @Param description formData string false "Short description"
// @Param file formData file true "Project archive"
// @Success 201 {object} map[string]any "Submission recorded"
// @Failure 400 {object} map[string]string "Missing field or unsupported file"
// @Router /api/projects [post]
func (h *ProjectHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "project file is required")
		return
	}
	defer file.Close()

	project := &models.Project{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Github:      r.FormValue("github"),
		Description: r.FormValue("description"),
	}

	id, err := h.projectService.Submit(r.Context(), project, header.Filename, file)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{"message": "project submitted", "id": id})
}
