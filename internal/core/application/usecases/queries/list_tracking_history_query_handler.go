package queries

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListTrackingHistoryResponse is one page of ledger entries plus pagination
// totals. Entries are ordered newest first.
type ListTrackingHistoryResponse struct {
	Entries  []TrackingEntryResponse
	Total    int
	Page     int
	LastPage int
}

// ListTrackingHistoryQueryHandler lists the audit ledger of an item. The
// parent item's visibility gates the whole history: callers that may not see
// the item get not-found, exactly as the scan token lookup behaves.
type ListTrackingHistoryQueryHandler struct {
	db *gorm.DB
}

// NewListTrackingHistoryQueryHandler creates a handler for ledger listings.
// Requires a GORM database connection for query execution.
func NewListTrackingHistoryQueryHandler(db *gorm.DB) ListTrackingHistoryQueryHandler {
	return ListTrackingHistoryQueryHandler{db: db}
}

// Handle executes the listing.
func (h ListTrackingHistoryQueryHandler) Handle(
	ctx context.Context,
	query ListTrackingHistoryQuery,
) (ListTrackingHistoryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListTrackingHistoryResponse{}, err
	}

	if err := h.authorizeItem(ctx, query); err != nil {
		return ListTrackingHistoryResponse{}, err
	}

	countSQL := `SELECT COUNT(*) FROM tracking_entries WHERE item_id = ?`
	listSQL := `
		SELECT
			id,
			item_id,
			department_id,
			actor_id,
			action,
			status,
			previous_status,
			sub_status,
			preparation_type,
			notes,
			created_at
		FROM tracking_entries
		WHERE item_id = ?
	`
	countArgs := []any{query.ItemID().String()}
	listArgs := []any{query.ItemID().String()}

	if query.DepartmentID() != nil {
		countSQL += " AND department_id = ?"
		listSQL += " AND department_id = ?"
		countArgs = append(countArgs, query.DepartmentID().String())
		listArgs = append(listArgs, query.DepartmentID().String())
	}

	var total int
	if err := h.db.WithContext(ctx).Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return ListTrackingHistoryResponse{}, err
	}

	listSQL += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	listArgs = append(listArgs, query.Limit(), (query.Page()-1)*query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(listSQL, listArgs...).Rows()
	if err != nil {
		return ListTrackingHistoryResponse{}, err
	}
	defer rows.Close()

	entries := make([]TrackingEntryResponse, 0, query.Limit())
	for rows.Next() {
		var (
			response TrackingEntryResponse
			ids      [4]uuid.UUID
		)

		if err = rows.Scan(
			&ids[0], &ids[1], &ids[2], &ids[3],
			&response.Action,
			&response.Status,
			&response.PreviousStatus,
			&response.SubStatus,
			&response.PreparationType,
			&response.Notes,
			&response.CreatedAt,
		); err != nil {
			return ListTrackingHistoryResponse{}, err
		}

		if response.ID, err = kernel.UUIDFromBytes(ids[0][:]); err != nil {
			return ListTrackingHistoryResponse{}, err
		}
		if response.ItemID, err = kernel.UUIDFromBytes(ids[1][:]); err != nil {
			return ListTrackingHistoryResponse{}, err
		}
		if response.DepartmentID, err = kernel.UUIDFromBytes(ids[2][:]); err != nil {
			return ListTrackingHistoryResponse{}, err
		}
		if response.ActorID, err = kernel.UUIDFromBytes(ids[3][:]); err != nil {
			return ListTrackingHistoryResponse{}, err
		}

		entries = append(entries, response)
	}
	if err = rows.Err(); err != nil {
		return ListTrackingHistoryResponse{}, err
	}

	lastPage := (total + query.Limit() - 1) / query.Limit()
	if lastPage == 0 {
		lastPage = 1
	}

	return ListTrackingHistoryResponse{
		Entries:  entries,
		Total:    total,
		Page:     query.Page(),
		LastPage: lastPage,
	}, nil
}

// authorizeItem confirms the item exists and is visible to the caller.
func (h ListTrackingHistoryQueryHandler) authorizeItem(ctx context.Context, query ListTrackingHistoryQuery) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+itemColumns+`
		FROM items
		WHERE id = ?
	`, query.ItemID().String()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return err
		}
		return errs.NewObjectNotFoundError("itemId", query.ItemID().String())
	}

	response, err := scanItemRow(rows)
	if err != nil {
		return err
	}

	if !response.isVisible(query.Roles()) {
		return errs.NewObjectNotFoundError("itemId", query.ItemID().String())
	}

	return nil
}
