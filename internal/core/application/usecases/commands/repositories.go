// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, actor authentication,
// transaction management, and persistence.
package commands

import (
	"context"

	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ItemRepoFactory provides access to the item repository within a transaction.
	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	// TrackingRepoFactory provides access to the ledger repository within a transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// ItemUoW manages transactions for item-only operations.
	// Used when commands do not write ledger entries (ingestion, token rotation).
	ItemUoW interface {
		TxManager
		ItemRepoFactory
	}

	// ItemUoWFactory creates new item unit of work instances.
	ItemUoWFactory interface {
		Create() ItemUoW
	}

	// UoW manages transactions across the item projection and the ledger.
	// Every workflow mutation uses it so the projection update and the ledger
	// append commit or roll back as one unit.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   itemRepo := uow.ItemRepository()
	//   ledgerRepo := uow.TrackingRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ItemRepoFactory
		TrackingRepoFactory
	}

	// UoWFactory creates new unit of work instances for workflow operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Confirmation is what a successful workflow mutation hands back to the
// caller: the ledger entry that was written and a human-readable message.
type Confirmation struct {
	Entry   *tracking.Entry
	Message string
}
