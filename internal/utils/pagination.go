package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skyventures/tasks-api/internal/constants"
)

// ListParams holds the pagination and sorting query parameters
type ListParams struct {
	Page       int
	Limit      int
	SortBy     string
	Descending bool
}

// GetListParams extracts page/limit/sortBy/order from the request. Page
// defaults to 1 and limit to 10; non-numeric or non-positive values collapse
// to 1.
func GetListParams(c *gin.Context) ListParams {
	page := parsePositive(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	limit := parsePositive(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))

	return ListParams{
		Page:       page,
		Limit:      limit,
		SortBy:     c.DefaultQuery("sortBy", "created_at"),
		Descending: c.Query("order") == "desc",
	}
}

func parsePositive(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
