package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyventures/tasks-api/internal/dto"
	apierrors "github.com/skyventures/tasks-api/internal/errors"
	"github.com/skyventures/tasks-api/internal/middleware"
	"github.com/skyventures/tasks-api/internal/services"
	"github.com/skyventures/tasks-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers. Every route is project-scoped:
// RequireProjectAccess has already resolved ownership by the time these run.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask persists a new task under the resolved project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(project.ID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// ListTasks returns a filtered, sorted page of the project's tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	params := utils.GetListParams(c)

	tasks, total, err := h.taskService.List(project.ID, services.ListTasksInput{
		Status:     c.Query("status"),
		DueDate:    c.Query("due_date"),
		Page:       params.Page,
		PageSize:   params.Limit,
		SortBy:     params.SortBy,
		Descending: params.Descending,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns one non-deleted task of the project.
func (h *TaskHandler) GetTask(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	taskID, exists := middleware.GetTaskID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid task ID format")
		return
	}

	task, err := h.taskService.Get(taskID, project.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask applies a partial update to one task of the project.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	taskID, exists := middleware.GetTaskID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid task ID format")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(taskID, project.ID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// SoftDeleteTask flags one task of the project as deleted.
func (h *TaskHandler) SoftDeleteTask(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	taskID, exists := middleware.GetTaskID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid task ID format")
		return
	}

	if err := h.taskService.SoftDelete(taskID, project.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task soft deleted successfully"})
}

// BulkUpdateTasksStatus sets the status of the listed tasks that belong to
// the project and reports how many were actually modified.
func (h *TaskHandler) BulkUpdateTasksStatus(c *gin.Context) {
	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var req dto.BulkUpdateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	modified, err := h.taskService.BulkUpdateStatus(project.ID, req.TaskIDs, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d tasks updated to status '%s'", modified, req.Status),
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrTaskStatusRequired),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrInvalidTaskID):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTaskUnauthorized):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
