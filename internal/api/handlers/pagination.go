package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/limit query params with the list screens'
// defaults. Limit is capped to keep list queries bounded.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
