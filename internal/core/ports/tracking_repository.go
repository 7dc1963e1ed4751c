package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for the append-only
// ledger. Entries are only ever inserted or cascade-deleted with their item;
// there is no update operation.
type TrackingRepository interface {
	// Append persists a new ledger entry. The write must be durable before the
	// enclosing workflow operation is considered complete.
	Append(ctx context.Context, entry *tracking.Entry) error

	// Get retrieves a single ledger entry by id.
	Get(ctx context.Context, id kernel.UUID) (*tracking.Entry, error)

	// DeleteByItem removes all ledger entries of an item. Called only from the
	// item-deletion workflow, inside the same transaction as the item delete.
	DeleteByItem(ctx context.Context, itemID kernel.UUID) error
}
