package commands

import (
	"context"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
)

// UpdateStatusCommandHandler orchestrates coarse lifecycle transitions.
// Unlike check-in, the checked_out -> checked_in edge here does not enforce
// the handover-department match; the two entry points are intentionally
// asymmetric.
type UpdateStatusCommandHandler struct {
	uowFactory  UoWFactory
	verifier    ports.ActorVerifier
	departments ports.DepartmentDirectory
}

// NewUpdateStatusCommandHandler creates a handler for status updates.
func NewUpdateStatusCommandHandler(
	uowFactory UoWFactory,
	verifier ports.ActorVerifier,
	departments ports.DepartmentDirectory,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory:  uowFactory,
		verifier:    verifier,
		departments: departments,
	}
}

// Handle processes the status-update command.
// Applies the coarse transition table, the in-progress ownership rule, and
// the sub-status graph, then persists the projection and one ledger entry
// atomically.
func (h UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (Confirmation, error) {
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
	if err = trackedItem.UpdateStatus(cmd.NewStatus(), department.ID, cmd.PreparationType(), cmd.SubStatus()); err != nil {
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
		tracking.ActionStatusUpdate,
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
			"%s (order %s) moved from %s to %s at %s by %s",
			trackedItem.ProductName(), trackedItem.ExternalOrderID(),
			previousStatus, trackedItem.Status(), department.Name, actor.Name,
		),
	}, nil
}
