package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID  = "user_id"
	ContextKeyProject = "project"
	ContextKeyTaskID  = "task_id"
)

// Validation limits
const (
	MinUsernameLength = 2
	MinPasswordLength = 8
)

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)
