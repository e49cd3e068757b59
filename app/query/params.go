// Package query turns raw aggregate-get parameters into a validated,
// bounded store query: sort-field validation, predicate compilation and
// offset/limit paging on top of gorm.
package query

import (
	"fmt"

	"cardsapi/app/apperrors"
	"cardsapi/app/models"

	"gorm.io/gorm"
)

const (
	DefaultPageIdx   = 0
	DefaultPageSize  = 5
	DefaultSortField = "id"
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder matches the enumeration names exactly.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortAsc, SortDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unrecognized sort order: %s", s)
}

// Params is a validated aggregate-get request. Build one with NewParams;
// the zero value is not safe to use against the store.
type Params struct {
	Page      int
	PageSize  int
	SortField string
	Order     SortOrder
	Filters   map[string]string

	sortColumn string
}

// NewParams normalizes paging bounds and validates the sort field against
// the card's declared field set before anything touches the store.
func NewParams(page, pageSize int, sortField string, order SortOrder, filters map[string]string) (Params, error) {
	if page < 0 {
		page = DefaultPageIdx
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if sortField == "" {
		sortField = DefaultSortField
	}
	if order == "" {
		order = SortAsc
	}
	column, ok := models.SortableColumn(sortField)
	if !ok {
		return Params{}, &apperrors.InvalidSortFieldError{Field: sortField, ValidFields: models.SortableFieldNames()}
	}
	if filters == nil {
		filters = map[string]string{}
	}
	return Params{
		Page:       page,
		PageSize:   pageSize,
		SortField:  sortField,
		Order:      order,
		Filters:    filters,
		sortColumn: column,
	}, nil
}

// ApplyOrderAndPage adds the single-field ordering and offset/limit slicing
// to the query. The column name comes from the allow-list, never from user
// input.
func (p Params) ApplyOrderAndPage(tx *gorm.DB) *gorm.DB {
	return tx.
		Order(fmt.Sprintf("%s %s", p.sortColumn, p.Order)).
		Offset(p.Page * p.PageSize).
		Limit(p.PageSize)
}
