package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PaginationParams carries the page window for admin listings. Offset is
// precomputed so callers pass the struct straight to ApplyPagination.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads ?page and ?limit, falling back to page 1 and the
// default size on anything non-positive or unparseable. Limit is capped at
// maxPageSize regardless of what the client asks for.
func ParsePagination(c *fiber.Ctx) PaginationParams {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}

	limit := queryInt(c, "limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return PaginationParams{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func ApplyPagination(db *gorm.DB, p PaginationParams) *gorm.DB {
	return db.Offset(p.Offset).Limit(p.Limit)
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
