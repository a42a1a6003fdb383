// File: internal/common/pagination.go
package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Admin listings (users, providers, bookings) share one pagination
// contract: 1-based pages, capped so a single request cannot drag the
// whole table.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// GetPaginationParams reads page and page_size from the query string.
// Anything missing, malformed or non-positive falls back to the
// defaults; page_size is clamped to MaxPageSize.
func GetPaginationParams(c *gin.Context) (page, pageSize int) {
	page = atoiOrDefault(c.Query("page"), DefaultPage)
	pageSize = atoiOrDefault(c.Query("page_size"), DefaultPageSize)
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// PageOffset converts a 1-based page into the row offset the database
// queries use.
func PageOffset(page, pageSize int) int {
	if page <= 0 {
		page = DefaultPage
	}
	return (page - 1) * pageSize
}

func atoiOrDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
