package queries

import (
	"context"
	"database/sql"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// itemColumns is the projection shared by the item read handlers. The order
// matters: scanItemRow scans positionally.
const itemColumns = `
	id,
	external_order_id,
	external_item_id,
	store_name,
	scan_token,
	product_name,
	product_sku,
	quantity,
	is_leather,
	is_pattern,
	preparation_type,
	status,
	sub_status,
	current_department_id,
	last_department_id,
	handover_target_id,
	visibility_role_ids,
	visibility_role_names,
	created_at
`

// GetItemByScanTokenQueryHandler resolves scan tokens against the item
// projection. A token whose item the caller may not see reports not-found,
// never the item's existence.
type GetItemByScanTokenQueryHandler struct {
	db *gorm.DB
}

// NewGetItemByScanTokenQueryHandler creates a handler for scan token lookups.
// Requires a GORM database connection for query execution.
func NewGetItemByScanTokenQueryHandler(db *gorm.DB) GetItemByScanTokenQueryHandler {
	return GetItemByScanTokenQueryHandler{db: db}
}

// Handle executes the lookup.
func (h GetItemByScanTokenQueryHandler) Handle(
	ctx context.Context,
	query GetItemByScanTokenQuery,
) (ItemResponse, error) {
	if err := query.Validate(); err != nil {
		return ItemResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+itemColumns+`
		FROM items
		WHERE scan_token = ?
	`, query.ScanToken().String()).Rows()
	if err != nil {
		return ItemResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ItemResponse{}, err
		}
		return ItemResponse{}, errs.NewObjectNotFoundError("scanToken", query.ScanToken().String())
	}

	response, err := scanItemRow(rows)
	if err != nil {
		return ItemResponse{}, err
	}

	if !response.isVisible(query.Roles()) {
		return ItemResponse{}, errs.NewObjectNotFoundError("scanToken", query.ScanToken().String())
	}

	return response, nil
}

// scanItemRow reads one row of itemColumns into a response.
func scanItemRow(rows *sql.Rows) (ItemResponse, error) {
	var (
		response  ItemResponse
		id        uuid.UUID
		current   uuid.NullUUID
		last      uuid.NullUUID
		handover  uuid.NullUUID
		roleIDs   pq.StringArray
		roleNames pq.StringArray
	)

	if err := rows.Scan(
		&id,
		&response.ExternalOrderID,
		&response.ExternalItemID,
		&response.StoreName,
		&response.ScanToken,
		&response.ProductName,
		&response.ProductSKU,
		&response.Quantity,
		&response.IsLeather,
		&response.IsPattern,
		&response.PreparationType,
		&response.Status,
		&response.SubStatus,
		&current,
		&last,
		&handover,
		&roleIDs,
		&roleNames,
		&response.CreatedAt,
	); err != nil {
		return ItemResponse{}, err
	}

	itemID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ItemResponse{}, err
	}
	response.ID = itemID

	if response.CurrentDepartmentID, err = optionalUUID(current); err != nil {
		return ItemResponse{}, err
	}
	if response.LastDepartmentID, err = optionalUUID(last); err != nil {
		return ItemResponse{}, err
	}
	if response.HandoverTargetID, err = optionalUUID(handover); err != nil {
		return ItemResponse{}, err
	}

	response.VisibilityRoleIDs = roleIDs
	response.VisibilityRoleNames = roleNames
	return response, nil
}

func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil //nolint:nilnil //absence is a valid state for nullable columns
	}

	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
