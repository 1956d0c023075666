package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/constants"
	apierrors "github.com/skyventures/tasks-api/internal/errors"
	"github.com/skyventures/tasks-api/internal/models"
	"gorm.io/gorm"
)

// RequireProjectAccess resolves the :projectID path parameter to a
// non-deleted project owned by the caller and stores it in the context.
// The reference must be well-formed before the store is touched. A miss
// answers 404 whether the project is missing, deleted, or owned by someone
// else, so responses never reveal which.
func RequireProjectAccess(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("projectID"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID format")
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.BadRequest(c, "The token is not valid")
			return
		}

		var project models.Project
		err = db.
			Where("id = ? AND owner_id = ? AND is_deleted = ?", projectID, userID, false).
			First(&project).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Project not found or you do not have permission to view it")
				return
			}
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// ValidateTaskID checks that both path references are well-formed before any
// store access happens on task item routes, and stashes the parsed task ID.
// The project reference is reported first, matching the single-record
// contract.
func ValidateTaskID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param("projectID")); err != nil {
			apierrors.BadRequest(c, "Invalid project ID format")
			return
		}

		taskID, err := uuid.Parse(c.Param("taskID"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID format")
			return
		}

		c.Set(constants.ContextKeyTaskID, taskID)
		c.Next()
	}
}

// GetProject retrieves the project resolved by RequireProjectAccess
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}

	project, ok := value.(models.Project)
	return project, ok
}

// GetTaskID retrieves the task reference parsed by ValidateTaskID
func GetTaskID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyTaskID)
	if !exists {
		return uuid.Nil, false
	}

	taskID, ok := value.(uuid.UUID)
	return taskID, ok
}
