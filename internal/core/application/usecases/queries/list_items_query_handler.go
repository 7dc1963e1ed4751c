package queries

import (
	"context"

	"gorm.io/gorm"
)

// visibilityOverFetchMultiplier controls how many candidate rows are read per
// requested row. Visibility is evaluated in application logic, so a page is
// built by over-fetching ordered rows, filtering, then slicing; the multiplier
// keeps page 1 dense without reading the whole table.
const visibilityOverFetchMultiplier = 4

// ListItemsResponse is one page of items plus pagination totals. Total and
// LastPage are computed from the visibility-filtered candidate set, trading
// exactness on deep pages for not scanning every row.
type ListItemsResponse struct {
	Items    []ItemResponse
	Total    int
	Page     int
	LastPage int
}

// ListItemsQueryHandler lists tracked items from the projection, ordered by
// creation time, with visibility applied after the storage read.
type ListItemsQueryHandler struct {
	db *gorm.DB
}

// NewListItemsQueryHandler creates a handler for item listings.
// Requires a GORM database connection for query execution.
func NewListItemsQueryHandler(db *gorm.DB) ListItemsQueryHandler {
	return ListItemsQueryHandler{db: db}
}

// Handle executes the listing.
// Rows matching the storage filters are read oldest-first up to
// (skip + limit) * visibilityOverFetchMultiplier, filtered through the
// caller's roles, and sliced to the requested page.
func (h ListItemsQueryHandler) Handle(ctx context.Context, query ListItemsQuery) (ListItemsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListItemsResponse{}, err
	}

	skip := (query.Page() - 1) * query.Limit()
	fetch := (skip + query.Limit()) * visibilityOverFetchMultiplier

	sql := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE 1=1
	`
	args := make([]any, 0, 4)

	filters := query.Filters()
	if filters.StoreName != "" {
		sql += " AND store_name = ?"
		args = append(args, filters.StoreName)
	}
	if filters.Status != 0 {
		sql += " AND status = ?"
		args = append(args, filters.Status.String())
	}
	if filters.DepartmentID != nil {
		sql += " AND current_department_id = ?"
		args = append(args, filters.DepartmentID.String())
	}

	sql += " ORDER BY created_at, id LIMIT ?"
	args = append(args, fetch)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return ListItemsResponse{}, err
	}
	defer rows.Close()

	visible := make([]ItemResponse, 0, query.Limit())
	for rows.Next() {
		response, scanErr := scanItemRow(rows)
		if scanErr != nil {
			return ListItemsResponse{}, scanErr
		}
		if response.isVisible(query.Roles()) {
			visible = append(visible, response)
		}
	}
	if err = rows.Err(); err != nil {
		return ListItemsResponse{}, err
	}

	total := len(visible)
	lastPage := (total + query.Limit() - 1) / query.Limit()
	if lastPage == 0 {
		lastPage = 1
	}

	start := skip
	if start > total {
		start = total
	}
	end := start + query.Limit()
	if end > total {
		end = total
	}

	return ListItemsResponse{
		Items:    visible[start:end],
		Total:    total,
		Page:     query.Page(),
		LastPage: lastPage,
	}, nil
}
