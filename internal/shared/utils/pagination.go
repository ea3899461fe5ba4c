package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination holds parsed pagination parameters. A zero PageSize means the
// caller asked for everything.
type Pagination struct {
	Page     int
	PageSize int
}

// ValidatePagination normalizes page and pageSize to the supported range.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParsePagination reads page and page_size from the query string. Without a
// page parameter the listing is unpaginated.
func ParsePagination(c *gin.Context) Pagination {
	if c.Query("page") == "" && c.Query("page_size") == "" {
		return Pagination{}
	}
	return ValidatePagination(parseQueryInt(c, "page", DefaultPage), parseQueryInt(c, "page_size", DefaultPageSize))
}

// parseQueryInt parses an integer query parameter with a default value.
func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// ApplyPagination calculates slice indices for pagination.
// Returns (start, end) indices for slicing: slice[start:end]
func ApplyPagination(total, page, pageSize int) (start, end int) {
	start = (page - 1) * pageSize
	end = start + pageSize

	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return start, end
}

// Paginate returns the requested page of items.
func Paginate[T any](items []T, p Pagination) []T {
	if p.PageSize == 0 {
		return items
	}
	start, end := ApplyPagination(len(items), p.Page, p.PageSize)
	return items[start:end]
}
