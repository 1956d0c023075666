package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/models"
	"github.com/skyventures/tasks-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNameRequired = errors.New("Project name is required")
	// ErrProjectNotFound deliberately conflates "does not exist" with "not
	// owned by the caller" so responses never leak project existence.
	ErrProjectNotFound = errors.New("Project not found or you do not have permission to view it")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
}

// Create persists a new project owned by the caller
func (s *ProjectService) Create(ownerID uuid.UUID, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     ownerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListOwned returns all non-deleted projects owned by the caller
func (s *ProjectService) ListOwned(ownerID uuid.UUID) ([]models.Project, error) {
	projects, err := s.projectRepo.ListOwned(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a non-deleted project owned by the caller
func (s *ProjectService) Get(id, ownerID uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.FindOwned(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// UpdateProjectInput represents a partial project update
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// Update applies a partial update to an owned, non-deleted project and
// returns the updated record.
func (s *ProjectService) Update(id, ownerID uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrProjectNameRequired
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		rows, err := s.projectRepo.Update(id, ownerID, updates)
		if err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
		if rows == 0 {
			return nil, ErrProjectNotFound
		}
	}

	return s.Get(id, ownerID)
}

// SoftDelete flags an owned project as deleted. Re-deleting an already
// deleted project matches the owner filter again and succeeds.
func (s *ProjectService) SoftDelete(id, ownerID uuid.UUID) error {
	rows, err := s.projectRepo.SoftDelete(id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to soft delete project: %w", err)
	}
	if rows == 0 {
		return ErrProjectNotFound
	}
	return nil
}
