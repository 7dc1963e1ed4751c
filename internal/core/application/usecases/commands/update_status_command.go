package commands

import (
	"errors"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand represents a request to move an item along the coarse
// lifecycle transition table, optionally recording a new sub-status and
// preparation type at the same time.
type UpdateStatusCommand struct { //nolint:recvcheck //using for validation
	scanToken    kernel.ScanToken
	newStatus    item.Status
	departmentID kernel.UUID
	actorID      kernel.UUID
	password     string

	preparationType item.PreparationType
	subStatus       stage.SubStatus
	notes           string

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand creates a command to change an item's lifecycle
// status. preparationType and subStatus are optional the same way they are on
// NewCheckInCommand.
func NewUpdateStatusCommand(
	scanToken kernel.ScanToken,
	newStatus item.Status,
	departmentID, actorID kernel.UUID,
	password string,
	preparationType item.PreparationType,
	subStatus stage.SubStatus,
	notes string,
) (UpdateStatusCommand, error) {
	command := UpdateStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setScanToken(scanToken),
		command.setNewStatus(newStatus),
		command.setDepartmentID(departmentID),
		command.setActorID(actorID),
		command.setPassword(password),
		command.setPreparationType(preparationType),
		command.setSubStatus(subStatus),
	); err != nil {
		return UpdateStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateStatusCommandIsNotConstructed if validation fails.
func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

// ScanToken returns the token addressing the item.
func (c UpdateStatusCommand) ScanToken() kernel.ScanToken {
	return c.scanToken
}

// NewStatus returns the requested lifecycle status.
func (c UpdateStatusCommand) NewStatus() item.Status {
	return c.newStatus
}

// DepartmentID returns the department requesting the change.
func (c UpdateStatusCommand) DepartmentID() kernel.UUID {
	return c.departmentID
}

// ActorID returns the user performing the update.
func (c UpdateStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Password returns the actor's password for verification.
func (c UpdateStatusCommand) Password() string {
	return c.password
}

// PreparationType returns the preparation type to record, or
// item.PreparationNone when not supplied.
func (c UpdateStatusCommand) PreparationType() item.PreparationType {
	return c.preparationType
}

// SubStatus returns the sub-status to record, or stage.SubStatusUnknown when
// not supplied.
func (c UpdateStatusCommand) SubStatus() stage.SubStatus {
	return c.subStatus
}

// Notes returns the free-text note for the ledger entry.
func (c UpdateStatusCommand) Notes() string {
	return c.notes
}

func (c *UpdateStatusCommand) setScanToken(token kernel.ScanToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	c.scanToken = token
	return nil
}

func (c *UpdateStatusCommand) setNewStatus(status item.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.newStatus = status
	return nil
}

func (c *UpdateStatusCommand) setDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departmentID = id
	return nil
}

func (c *UpdateStatusCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

func (c *UpdateStatusCommand) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}

	c.password = password
	return nil
}

func (c *UpdateStatusCommand) setPreparationType(prep item.PreparationType) error {
	if err := prep.Validate(); err != nil {
		return err
	}

	c.preparationType = prep
	return nil
}

func (c *UpdateStatusCommand) setSubStatus(subStatus stage.SubStatus) error {
	if subStatus != stage.SubStatusUnknown {
		if err := subStatus.Validate(); err != nil {
			return err
		}
	}

	c.subStatus = subStatus
	return nil
}
