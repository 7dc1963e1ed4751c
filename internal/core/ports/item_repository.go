// Package ports defines repository and external-service interfaces for the
// tracking domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for tracked item aggregates.
type ItemRepository interface {
	// Add persists a new item aggregate to storage.
	// Fails with a Conflict error when the (externalOrderId, externalItemId)
	// pair or the scan token already exists.
	Add(ctx context.Context, aggregate *item.Item) error

	// Update persists changes to an existing item aggregate.
	Update(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// GetByScanToken retrieves an item by its scan token. When called inside a
	// unit of work the row is locked until the transaction ends, serializing
	// concurrent workflow operations on the same item.
	GetByScanToken(ctx context.Context, token kernel.ScanToken) (*item.Item, error)

	// GetByExternalIdentity retrieves an item by its upstream identity pair.
	// Used for idempotent ingestion.
	GetByExternalIdentity(ctx context.Context, externalOrderID, externalItemID string) (*item.Item, error)

	// Delete removes an item permanently. Ledger cascade is the caller's
	// responsibility and must happen in the same unit of work.
	Delete(ctx context.Context, id kernel.UUID) error
}
