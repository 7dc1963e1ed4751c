package commands

import (
	"context"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
)

// ReturnToStageCommandHandler orchestrates quality-control rework: it sends an
// item backward to an earlier in-progress stage, bypassing the forward-only
// sub-status graph. The escape hatch is deliberate; the allow-list on the
// target stage is the only gate.
type ReturnToStageCommandHandler struct {
	uowFactory  UoWFactory
	verifier    ports.ActorVerifier
	departments ports.DepartmentDirectory
}

// NewReturnToStageCommandHandler creates a handler for return-to-stage
// operations.
func NewReturnToStageCommandHandler(
	uowFactory UoWFactory,
	verifier ports.ActorVerifier,
	departments ports.DepartmentDirectory,
) ReturnToStageCommandHandler {
	return ReturnToStageCommandHandler{
		uowFactory:  uowFactory,
		verifier:    verifier,
		departments: departments,
	}
}

// Handle processes the return-to-stage command.
// On success the item is in_progress at the target stage, held by the
// requesting department, and the reason is preserved in the ledger note.
func (h ReturnToStageCommandHandler) Handle(ctx context.Context, cmd ReturnToStageCommand) (Confirmation, error) {
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
	if err = trackedItem.ReturnToStage(cmd.TargetSubStatus(), department.ID); err != nil {
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
		composeReturnNote(cmd.Reason(), cmd.Notes()),
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
			"%s (order %s) returned to %s at %s by %s",
			trackedItem.ProductName(), trackedItem.ExternalOrderID(),
			trackedItem.SubStatus(), department.Name, actor.Name,
		),
	}, nil
}

// composeReturnNote keeps the rework reason in the ledger note so the audit
// trail explains the backward move.
func composeReturnNote(reason, notes string) string {
	switch {
	case reason == "":
		return notes
	case notes == "":
		return fmt.Sprintf("returned: %s", reason)
	default:
		return fmt.Sprintf("returned: %s; %s", reason, notes)
	}
}
