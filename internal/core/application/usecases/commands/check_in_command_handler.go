package commands

import (
	"context"
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
)

// CheckInCommandHandler orchestrates the check-in workflow: actor
// authentication, department resolution, the aggregate's ownership rules, and
// the atomic projection-plus-ledger write.
//
// Example:
//
//	handler := NewCheckInCommandHandler(uowFactory, verifier, departments)
//	confirmation, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("check-in failed: %w", err)
//	}
//	log.Println(confirmation.Message)
type CheckInCommandHandler struct {
	uowFactory  UoWFactory
	verifier    ports.ActorVerifier
	departments ports.DepartmentDirectory
}

// NewCheckInCommandHandler creates a handler for check-in operations.
func NewCheckInCommandHandler(
	uowFactory UoWFactory,
	verifier ports.ActorVerifier,
	departments ports.DepartmentDirectory,
) CheckInCommandHandler {
	return CheckInCommandHandler{
		uowFactory:  uowFactory,
		verifier:    verifier,
		departments: departments,
	}
}

// Handle processes the check-in command.
// Authenticates the actor, resolves the department, loads the item by scan
// token under a row lock, applies the check-in rules, and persists the updated
// projection together with one ledger entry in a single transaction.
func (h CheckInCommandHandler) Handle(ctx context.Context, cmd CheckInCommand) (Confirmation, error) {
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
	if err = trackedItem.CheckIn(department.ID, cmd.PreparationType(), cmd.SubStatus()); err != nil {
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
		tracking.ActionCheckIn,
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
			"%s (order %s) checked in at %s by %s",
			trackedItem.ProductName(), trackedItem.ExternalOrderID(), department.Name, actor.Name,
		),
	}, nil
}
