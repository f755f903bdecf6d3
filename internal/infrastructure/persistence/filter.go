package persistence

import (
	"strings"

	"github.com/promoflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyOrdering appends an ORDER BY clause derived from the filter. The
// column is checked against the caller's allow-list so user-supplied sort
// keys can never reach the SQL text; unknown columns fall back to the
// repository default.
func applyOrdering(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultOrder string) *gorm.DB {
	column := filter.OrderBy
	if column == "" || !allowed[column] {
		return query.Order(defaultOrder)
	}

	direction := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		direction = "DESC"
	}
	return query.Order(column + " " + direction)
}

// applyPagination appends OFFSET/LIMIT when the filter carries a valid page
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}
