package commands

import (
	"context"
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// IngestResult reports what a batch ingestion did: which items were newly
// registered and how many were already known by their external identity pair.
type IngestResult struct {
	CreatedIDs []kernel.UUID
	Skipped    int
}

// IngestItemsCommandHandler registers upstream order items. Ingestion is
// idempotent on the (externalOrderId, externalItemId) pair: re-running the
// same batch creates nothing new.
type IngestItemsCommandHandler struct {
	uowFactory ItemUoWFactory
	roles      ports.RoleDirectory
}

// NewIngestItemsCommandHandler creates a handler for batch ingestion.
func NewIngestItemsCommandHandler(uowFactory ItemUoWFactory, roles ports.RoleDirectory) IngestItemsCommandHandler {
	return IngestItemsCommandHandler{
		uowFactory: uowFactory,
		roles:      roles,
	}
}

// Handle processes the ingestion command.
// When a visibility allow-list is supplied, every referenced role id and name
// must resolve through the role directory before anything is written. The
// whole batch commits as one transaction.
func (h IngestItemsCommandHandler) Handle(ctx context.Context, cmd IngestItemsCommand) (IngestResult, error) {
	if err := cmd.Validate(); err != nil {
		return IngestResult{}, err
	}

	visibility, err := h.resolveVisibility(ctx, cmd.RoleIDs(), cmd.RoleNames())
	if err != nil {
		return IngestResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return IngestResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()
	result := IngestResult{}

	for _, incoming := range cmd.Items() {
		_, err = itemRepo.GetByExternalIdentity(ctx, incoming.ExternalOrderID, incoming.ExternalItemID)
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return IngestResult{}, err
		}

		newItem, err := item.NewItem(
			kernel.NewUUID(),
			incoming.ExternalOrderID, incoming.ExternalItemID, cmd.StoreName(),
			incoming.ProductName, incoming.ProductSKU,
			incoming.Quantity,
			incoming.IsLeather, incoming.IsPattern,
			visibility,
		)
		if err != nil {
			return IngestResult{}, err
		}

		if err = itemRepo.Add(ctx, newItem); err != nil {
			return IngestResult{}, err
		}

		result.CreatedIDs = append(result.CreatedIDs, newItem.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return IngestResult{}, err
	}

	return result, nil
}

// resolveVisibility validates the role allow-list against the role directory
// and builds the visibility value. Returns nil when both lists are empty,
// making the items public.
func (h IngestItemsCommandHandler) resolveVisibility(
	ctx context.Context,
	roleIDs []kernel.UUID,
	roleNames []string,
) (*item.Visibility, error) {
	if len(roleIDs) == 0 && len(roleNames) == 0 {
		return nil, nil
	}

	if len(roleIDs) > 0 {
		matched, err := h.roles.LookupByIDs(ctx, roleIDs)
		if err != nil {
			return nil, err
		}
		if len(matched) != len(roleIDs) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"roleIds",
				fmt.Errorf("%d of %d roles not found", len(roleIDs)-len(matched), len(roleIDs)),
			)
		}
	}

	if len(roleNames) > 0 {
		matched, err := h.roles.LookupByNames(ctx, roleNames)
		if err != nil {
			return nil, err
		}
		if len(matched) != len(roleNames) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"roleNames",
				fmt.Errorf("%d of %d roles not found", len(roleNames)-len(matched), len(roleNames)),
			)
		}
	}

	return item.NewVisibility(roleIDs, roleNames)
}
