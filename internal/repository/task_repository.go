package repository

import (
	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// sortableColumns is the whitelist for the caller-supplied sortBy parameter.
// Anything outside it falls back to created_at.
var sortableColumns = map[string]string{
	"created_at": "created_at",
	"due_date":   "due_date",
	"title":      "title",
	"status":     "status",
}

func sortColumn(sortBy string) string {
	if column, ok := sortableColumns[sortBy]; ok {
		return column
	}
	return "created_at"
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindInProject finds a non-deleted task by (id, project)
func (r *GormTaskRepository) FindInProject(id, projectID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Where("id = ? AND project_id = ? AND is_deleted = ?", id, projectID, false).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves one page of the project's non-deleted tasks matching the
// filter, plus the total matching count. Both queries are built from the same
// filter so the pagination metadata stays consistent with the page contents.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).
		Where("project_id = ? AND is_deleted = ?", filter.ProjectID, false)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DueFrom != nil && filter.DueTo != nil {
		query = query.Where("due_date >= ? AND due_date < ?", *filter.DueFrom, *filter.DueTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	listQuery := query.Order(sortColumn(filter.SortBy) + " " + direction)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	var tasks []models.Task
	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update applies a partial update to a non-deleted task in the project in a
// single conditional statement and returns the number of rows matched.
func (r *GormTaskRepository) Update(id, projectID uuid.UUID, updates map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND project_id = ? AND is_deleted = ?", id, projectID, false).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SoftDelete flags a task as deleted. The match is (id, project) only, so an
// already-deleted task matches again and the operation succeeds silently.
func (r *GormTaskRepository) SoftDelete(id, projectID uuid.UUID) (int64, error) {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND project_id = ?", id, projectID).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}

// BulkUpdateStatus sets the status of every listed task that belongs to the
// project. The update is one statement: tasks outside the project are simply
// not matched, and the modified count reports what was actually applied.
func (r *GormTaskRepository) BulkUpdateStatus(projectID uuid.UUID, taskIDs []uuid.UUID, status models.TaskStatus) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}

	res := r.db.Model(&models.Task{}).
		Where("id IN ? AND project_id = ?", taskIDs, projectID).
		Update("status", status)
	return res.RowsAffected, res.Error
}
