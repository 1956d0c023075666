package repository

import (
	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindOwned finds a non-deleted project by (id, owner)
func (r *GormProjectRepository) FindOwned(id, ownerID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, ownerID, false).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListOwned lists all non-deleted projects belonging to the owner
func (r *GormProjectRepository) ListOwned(ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Where("owner_id = ? AND is_deleted = ?", ownerID, false).
		Order("created_at ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies a partial update to a non-deleted owned project in a single
// conditional statement and returns the number of rows matched.
func (r *GormProjectRepository) Update(id, ownerID uuid.UUID, updates map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Project{}).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", id, ownerID, false).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SoftDelete flags an owned project as deleted. Only the owner match is
// enforced here; an already-deleted project matches again and the operation
// succeeds silently.
func (r *GormProjectRepository) SoftDelete(id, ownerID uuid.UUID) (int64, error) {
	res := r.db.Model(&models.Project{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}
