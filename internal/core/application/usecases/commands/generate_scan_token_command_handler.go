package commands

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
)

// GenerateScanTokenCommandHandler rotates an item's scan token. The previous
// token stops resolving the moment the transaction commits.
type GenerateScanTokenCommandHandler struct {
	uowFactory ItemUoWFactory
}

// NewGenerateScanTokenCommandHandler creates a handler for token rotation.
func NewGenerateScanTokenCommandHandler(uowFactory ItemUoWFactory) GenerateScanTokenCommandHandler {
	return GenerateScanTokenCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the token rotation command and returns the new token.
func (h GenerateScanTokenCommandHandler) Handle(ctx context.Context, cmd GenerateScanTokenCommand) (kernel.ScanToken, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.ScanToken{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.ScanToken{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()

	trackedItem, err := itemRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return kernel.ScanToken{}, err
	}

	token := trackedItem.RotateScanToken()

	if err = itemRepo.Update(ctx, trackedItem); err != nil {
		return kernel.ScanToken{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.ScanToken{}, err
	}

	return token, nil
}
