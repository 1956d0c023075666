package dto

import (
	"time"

	"github.com/skyventures/tasks-api/internal/models"
)

// CreateTaskRequest is the body of POST /api/projects/:projectID/tasks
type CreateTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"due_date"`
}

// UpdateTaskRequest is the body of PUT /api/projects/:projectID/tasks/:taskID.
// Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	DueDate     *time.Time         `json:"due_date"`
}

// BulkUpdateTasksRequest is the body of
// PUT /api/projects/:projectID/tasks/bulk-update
type BulkUpdateTasksRequest struct {
	TaskIDs []string          `json:"taskIDs"`
	Status  models.TaskStatus `json:"status"`
}

// PaginationMeta describes one page of a filtered task listing. TotalCount
// ignores pagination and TotalPages is ceil(TotalCount / PageSize).
type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
}

// TaskListResponse is the body of GET /api/projects/:projectID/tasks
type TaskListResponse struct {
	Tasks      []models.Task  `json:"tasks"`
	Pagination PaginationMeta `json:"pagination"`
}

// ToTaskListResponse assembles a task page with its pagination metadata
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	if tasks == nil {
		tasks = []models.Task{}
	}

	return TaskListResponse{
		Tasks: tasks,
		Pagination: PaginationMeta{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalCount:  totalCount,
			TotalPages:  totalPages,
		},
	}
}
