package queries

import (
	"errors"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrListItemsQueryIsNotConstructed = errors.New(
		"ListItemsQuery must be created via NewListItemsQuery constructor",
	)
	ErrPageIsInvalid  = errors.New("page must be greater than 0")
	ErrLimitIsInvalid = errors.New("limit must be greater than 0")
)

// ItemFilters narrows a listing. Zero values mean "no filter".
type ItemFilters struct {
	StoreName    string
	Status       item.Status
	DepartmentID *kernel.UUID
}

// ListItemsQuery lists tracked items with optional filters, visibility
// post-filtering, and pagination.
//
// Example:
//
//	query, err := NewListItemsQuery(
//	    ItemFilters{Status: item.InProgress},
//	    RoleFilter{RoleName: "production"},
//	    1, 20,
//	)
type ListItemsQuery struct { //nolint:recvcheck //using for validation
	filters ItemFilters
	roles   RoleFilter
	page    int
	limit   int

	guard guard.ConstructorGuard
}

// NewListItemsQuery creates a paginated item listing query. Pages are
// 1-based.
func NewListItemsQuery(filters ItemFilters, roles RoleFilter, page, limit int) (ListItemsQuery, error) {
	query := ListItemsQuery{
		filters: filters,
		roles:   roles,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setPage(page),
		query.setLimit(limit),
		query.validateFilters(filters),
	); err != nil {
		return ListItemsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListItemsQueryIsNotConstructed if validation fails.
func (q ListItemsQuery) Validate() error {
	return q.guard.Validate(ErrListItemsQueryIsNotConstructed)
}

// Filters returns the listing filters.
func (q ListItemsQuery) Filters() ItemFilters {
	return q.filters
}

// Roles returns the caller's role identifiers.
func (q ListItemsQuery) Roles() RoleFilter {
	return q.roles
}

// Page returns the 1-based page number.
func (q ListItemsQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q ListItemsQuery) Limit() int {
	return q.limit
}

func (q *ListItemsQuery) setPage(page int) error {
	if page <= 0 {
		return ErrPageIsInvalid
	}

	q.page = page
	return nil
}

func (q *ListItemsQuery) setLimit(limit int) error {
	if limit <= 0 {
		return ErrLimitIsInvalid
	}

	q.limit = limit
	return nil
}

func (q ListItemsQuery) validateFilters(filters ItemFilters) error {
	if filters.Status != item.StatusUnknown {
		if err := filters.Status.Validate(); err != nil {
			return err
		}
	}
	if filters.DepartmentID != nil {
		if err := filters.DepartmentID.Validate(); err != nil {
			return err
		}
	}
	return nil
}
