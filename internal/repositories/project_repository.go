package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillgateway/backend/internal/models"
)

type projectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *projectRepository {
	return &projectRepository{
		db: db,
	}
}

// Create inserts a project submission with its uploaded file reference
func (r *projectRepository) Create(ctx context.Context, project *models.Project) (int, error) {
	query := `
		INSERT INTO projects (name, email, title, category, github, description, file_name, file_path)
		VALUES (?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		project.Name,
		project.Email,
		project.Title,
		project.Category,
		project.Github,
		project.Description,
		project.FileName,
		project.FilePath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return int(id), nil
}

// ListAll retrieves all project submissions, newest first (admin view)
func (r *projectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	query := `
		SELECT id, name, email, title, category, github, description, file_name, file_path, created_at
		FROM projects
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		var github, description sql.NullString
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Email,
			&project.Title,
			&project.Category,
			&github,
			&description,
			&project.FileName,
			&project.FilePath,
			&project.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		project.Github = github.String
		project.Description = description.String
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return projects, nil
}
