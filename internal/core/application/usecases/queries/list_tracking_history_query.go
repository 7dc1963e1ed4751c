package queries

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrListTrackingHistoryQueryIsNotConstructed = errors.New(
	"ListTrackingHistoryQuery must be created via NewListTrackingHistoryQuery constructor",
)

// ListTrackingHistoryQuery lists the ledger of one item, newest entries
// first, optionally narrowed to a single department. The caller's roles gate
// access to the whole history: an item the caller may not see has no
// observable ledger.
type ListTrackingHistoryQuery struct { //nolint:recvcheck //using for validation
	itemID       kernel.UUID
	departmentID *kernel.UUID
	roles        RoleFilter
	page         int
	limit        int

	guard guard.ConstructorGuard
}

// NewListTrackingHistoryQuery creates a paginated ledger listing query.
// departmentID is optional; pass nil for the full history.
func NewListTrackingHistoryQuery(
	itemID kernel.UUID,
	departmentID *kernel.UUID,
	roles RoleFilter,
	page, limit int,
) (ListTrackingHistoryQuery, error) {
	query := ListTrackingHistoryQuery{
		departmentID: departmentID,
		roles:        roles,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setItemID(itemID),
		query.setPage(page),
		query.setLimit(limit),
	); err != nil {
		return ListTrackingHistoryQuery{}, err
	}

	if departmentID != nil {
		if err := departmentID.Validate(); err != nil {
			return ListTrackingHistoryQuery{}, err
		}
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListTrackingHistoryQueryIsNotConstructed if validation fails.
func (q ListTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrListTrackingHistoryQueryIsNotConstructed)
}

// ItemID returns the item whose ledger is listed.
func (q ListTrackingHistoryQuery) ItemID() kernel.UUID {
	return q.itemID
}

// DepartmentID returns the optional department filter.
func (q ListTrackingHistoryQuery) DepartmentID() *kernel.UUID {
	return q.departmentID
}

// Roles returns the caller's role identifiers.
func (q ListTrackingHistoryQuery) Roles() RoleFilter {
	return q.roles
}

// Page returns the 1-based page number.
func (q ListTrackingHistoryQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q ListTrackingHistoryQuery) Limit() int {
	return q.limit
}

func (q *ListTrackingHistoryQuery) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	q.itemID = id
	return nil
}

func (q *ListTrackingHistoryQuery) setPage(page int) error {
	if page <= 0 {
		return ErrPageIsInvalid
	}

	q.page = page
	return nil
}

func (q *ListTrackingHistoryQuery) setLimit(limit int) error {
	if limit <= 0 {
		return ErrLimitIsInvalid
	}

	q.limit = limit
	return nil
}
