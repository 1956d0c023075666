package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/models"
	"github.com/skyventures/tasks-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskTitleRequired  = errors.New("Task title is required")
	ErrTaskStatusRequired = errors.New("Task status is required")
	ErrInvalidTaskStatus  = errors.New("Invalid status value")
	ErrInvalidDueDate     = errors.New("Invalid date format for due_date")
	ErrInvalidTaskID      = errors.New("Invalid task ID format")
	ErrTaskNotFound       = errors.New("Task not found within this project")
	ErrTaskUnauthorized   = errors.New("Task not found or unauthorized")
)

// dueDateLayout is the calendar-date format accepted by the list filter.
const dueDateLayout = "2006-01-02"

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	DueDate     *time.Time
}

// Create persists a new task under the project
func (s *TaskService) Create(projectID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}
	if input.Status == "" {
		return nil, ErrTaskStatusRequired
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
		ProjectID:   projectID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasksInput represents the caller-supplied query parameters for listing
// the tasks of one project.
type ListTasksInput struct {
	Status     string
	DueDate    string
	Page       int
	PageSize   int
	SortBy     string
	Descending bool
}

// List returns one page of the project's tasks plus the total matching count.
// A due_date value selects the 24-hour window starting at 00:00 of that date.
// The status value is passed through as an exact-match filter; an unknown
// status simply matches nothing.
func (s *TaskService) List(projectID uuid.UUID, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		ProjectID:  projectID,
		Status:     input.Status,
		SortBy:     input.SortBy,
		Descending: input.Descending,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	if input.DueDate != "" {
		day, err := time.Parse(dueDateLayout, input.DueDate)
		if err != nil {
			return nil, 0, ErrInvalidDueDate
		}
		nextDay := day.Add(24 * time.Hour)
		filter.DueFrom = &day
		filter.DueTo = &nextDay
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// Get returns a non-deleted task belonging to the project
func (s *TaskService) Get(taskID, projectID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindInProject(taskID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput represents a partial task update
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	DueDate     *time.Time
}

// Update applies a partial update to a non-deleted task in the project and
// returns the updated record.
func (s *TaskService) Update(taskID, projectID uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	updates := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTaskTitleRequired
		}
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidTaskStatus
		}
		updates["status"] = *input.Status
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}

	if len(updates) > 0 {
		rows, err := s.taskRepo.Update(taskID, projectID, updates)
		if err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
		if rows == 0 {
			return nil, ErrTaskUnauthorized
		}
	}

	task, err := s.taskRepo.FindInProject(taskID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskUnauthorized
		}
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return task, nil
}

// SoftDelete flags a task as deleted, matching on (id, project) only so the
// operation stays idempotent.
func (s *TaskService) SoftDelete(taskID, projectID uuid.UUID) error {
	rows, err := s.taskRepo.SoftDelete(taskID, projectID)
	if err != nil {
		return fmt.Errorf("failed to soft delete task: %w", err)
	}
	if rows == 0 {
		return ErrTaskUnauthorized
	}
	return nil
}

// BulkUpdateStatus validates the target status and every task reference, then
// updates the matching tasks of the project in one statement. The returned
// count reports how many tasks were actually modified.
func (s *TaskService) BulkUpdateStatus(projectID uuid.UUID, rawTaskIDs []string, status models.TaskStatus) (int64, error) {
	if !models.ValidTaskStatus(status) {
		return 0, ErrInvalidTaskStatus
	}

	taskIDs := make([]uuid.UUID, 0, len(rawTaskIDs))
	for _, raw := range rawTaskIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return 0, ErrInvalidTaskID
		}
		taskIDs = append(taskIDs, id)
	}

	modified, err := s.taskRepo.BulkUpdateStatus(projectID, taskIDs, status)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update tasks: %w", err)
	}

	return modified, nil
}
