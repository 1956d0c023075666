package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/constants"
	apierrors "github.com/skyventures/tasks-api/internal/errors"
	"github.com/skyventures/tasks-api/internal/token"
)

const bearerPrefix = "Bearer "

// RequireAuth verifies the bearer token on the Authorization header and
// stores the caller identity in the request context. Registration and login
// are the only API routes that skip it.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			apierrors.BadRequest(c, "The token is not valid")
			return
		}

		userID, err := token.Parse(strings.TrimPrefix(header, bearerPrefix), secret)
		if err != nil {
			apierrors.BadRequest(c, "The token is not valid")
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the authenticated caller identity from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}

	return userID, true
}
