package commands

import (
	"context"
)

// DeleteItemCommandHandler removes an item and its ledger entries in one
// transaction. The ledger cascade happens first so a failure leaves both
// intact.
type DeleteItemCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteItemCommandHandler creates a handler for item removal.
func NewDeleteItemCommandHandler(uowFactory UoWFactory) DeleteItemCommandHandler {
	return DeleteItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the item removal command.
// Loads the item first so a missing id surfaces as a not-found error rather
// than a silent no-op delete.
func (h DeleteItemCommandHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()

	trackedItem, err := itemRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	if err = uow.TrackingRepository().DeleteByItem(ctx, trackedItem.ID()); err != nil {
		return err
	}

	if err = itemRepo.Delete(ctx, trackedItem.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
