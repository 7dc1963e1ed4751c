package commands

import (
	"context"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
)

// CheckOutCommandHandler orchestrates the checkout workflow. Both the
// releasing and the handover department are resolved before the transaction
// starts; a checkout towards a department that does not exist never touches
// the item.
type CheckOutCommandHandler struct {
	uowFactory  UoWFactory
	verifier    ports.ActorVerifier
	departments ports.DepartmentDirectory
}

// NewCheckOutCommandHandler creates a handler for checkout operations.
func NewCheckOutCommandHandler(
	uowFactory UoWFactory,
	verifier ports.ActorVerifier,
	departments ports.DepartmentDirectory,
) CheckOutCommandHandler {
	return CheckOutCommandHandler{
		uowFactory:  uowFactory,
		verifier:    verifier,
		departments: departments,
	}
}

// Handle processes the checkout command.
// Only the department currently holding the item may release it; the handover
// target is recorded on the item until the next check-in claims it.
func (h CheckOutCommandHandler) Handle(ctx context.Context, cmd CheckOutCommand) (Confirmation, error) {
	if err := cmd.Validate(); err != nil {
		return Confirmation{}, err
	}

	actor, err := h.verifier.Verify(ctx, cmd.ActorID(), cmd.Password())
	if err != nil {
		return Confirmation{}, err
	}

	department, err := h.departments.Lookup(ctx, cmd.DepartmentID())
	if err != nil {
		return Confirmation{}, err
	}

	handover, err := h.departments.Lookup(ctx, cmd.HandoverDepartmentID())
	if err != nil {
		return Confirmation{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return Confirmation{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()

	trackedItem, err := itemRepo.GetByScanToken(ctx, cmd.ScanToken())
	if err != nil {
		return Confirmation{}, err
	}

	previousStatus := trackedItem.Status()
	if err = trackedItem.CheckOut(department.ID, handover.ID); err != nil {
		return Confirmation{}, err
	}

	if err = itemRepo.Update(ctx, trackedItem); err != nil {
		return Confirmation{}, err
	}

	entry, err := tracking.NewEntry(
		kernel.NewUUID(),
		trackedItem.ID(),
		department.ID,
		actor.ID,
		tracking.ActionCheckOut,
		trackedItem.Status(),
		previousStatus,
		trackedItem.SubStatus(),
		trackedItem.PreparationType(),
		cmd.Notes(),
	)
	if err != nil {
		return Confirmation{}, err
	}

	if err = uow.TrackingRepository().Append(ctx, entry); err != nil {
		return Confirmation{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return Confirmation{}, err
	}

	return Confirmation{
		Entry: entry,
		Message: fmt.Sprintf(
			"%s (order %s) checked out of %s towards %s by %s",
			trackedItem.ProductName(), trackedItem.ExternalOrderID(),
			department.Name, handover.Name, actor.Name,
		),
	}, nil
}
