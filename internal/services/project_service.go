package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/skillgateway/backend/internal/models"
	"github.com/skillgateway/backend/internal/storage"
)

// projectExtensions lists the accepted project archive types
var projectExtensions = map[string]bool{
	".zip":  true,
	".pdf":  true,
	".ppt":  true,
	".pptx": true,
}

// ProjectRepository is the interface that wraps project submission data access
type ProjectRepository interface {
	// Method Create inserts a project submission with its file reference.
	Create(ctx context.Context, project *models.Project) (int, error)
	// Method ListAll retrieves all submissions, newest first.
	ListAll(ctx context.Context) ([]models.Project, error)
}

// projectService implements project submissions with their file uploads
type projectService struct {
	projectRepo ProjectRepository
	uploads     UploadStorage
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ProjectRepository, uploads UploadStorage) *projectService {
	return &projectService{
		projectRepo: projectRepo,
		uploads:     uploads,
	}
}

// Submit validates and stores a project submission and its file
func (s *projectService) Submit(ctx context.Context, project *models.Project, filename string, file io.Reader) (int, error) {
	if err := requireFields(map[string]string{
		"name":     project.Name,
		"email":    project.Email,
		"title":    project.Title,
		"category": project.Category,
	}); err != nil {
		return 0, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !projectExtensions[ext] {
		return 0, fmt.Errorf("%w: only .zip, .pdf, .ppt and .pptx files are accepted", models.ErrValidation)
	}

	storedName, path, err := s.uploads.Save(storage.KindProject, ext, file)
	if err != nil {
		return 0, err
	}

	project.FileName = storedName
	project.FilePath = path

	return s.projectRepo.Create(ctx, project)
}

// ListAll retrieves all project submissions for the admin panel
func (s *projectService) ListAll(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.ListAll(ctx)
}
