package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by (lowercased) email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access.
// Every lookup and mutation matches on the owning user so a project is never
// visible to, or mutable by, anyone but its owner.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindOwned finds a non-deleted project by (id, owner)
	FindOwned(id, ownerID uuid.UUID) (*models.Project, error)

	// ListOwned lists all non-deleted projects belonging to the owner
	ListOwned(ownerID uuid.UUID) ([]models.Project, error)

	// Update applies a partial update to a non-deleted owned project and
	// returns the number of rows matched
	Update(id, ownerID uuid.UUID, updates map[string]interface{}) (int64, error)

	// SoftDelete flags an owned project as deleted. The match deliberately
	// omits the not-deleted filter, so re-deleting succeeds silently.
	SoftDelete(id, ownerID uuid.UUID) (int64, error)
}

// TaskFilter holds the caller-supplied filtering, sorting and pagination
// options for listing the tasks of one project. The count query and the page
// query are built from the same filter.
type TaskFilter struct {
	ProjectID  uuid.UUID
	Status     string
	DueFrom    *time.Time
	DueTo      *time.Time
	SortBy     string
	Descending bool
	Page       int
	PageSize   int
}

// TaskRepository defines the interface for task data access. Every operation
// matches on the parent project reference.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindInProject finds a non-deleted task by (id, project)
	FindInProject(id, projectID uuid.UUID) (*models.Task, error)

	// List retrieves one page of matching non-deleted tasks plus the total
	// matching count
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update applies a partial update to a non-deleted task in the project
	// and returns the number of rows matched
	Update(id, projectID uuid.UUID, updates map[string]interface{}) (int64, error)

	// SoftDelete flags a task as deleted, matching on (id, project) only
	SoftDelete(id, projectID uuid.UUID) (int64, error)

	// BulkUpdateStatus sets the status of every listed task that belongs to
	// the project in a single statement and returns the modified count
	BulkUpdateStatus(projectID uuid.UUID, taskIDs []uuid.UUID, status models.TaskStatus) (int64, error)
}
