package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/pkg/guard"
)

var ErrReturnToStageCommandIsNotConstructed = errors.New(
	"ReturnToStageCommand must be created via NewReturnToStageCommand constructor",
)

// ReturnToStageCommand represents a request to send an item backward to an
// earlier production stage after a quality-control failure. The target must be
// one of the returnable in-progress stages.
type ReturnToStageCommand struct { //nolint:recvcheck //using for validation
	scanToken       kernel.ScanToken
	targetSubStatus stage.SubStatus
	departmentID    kernel.UUID
	actorID         kernel.UUID
	password        string
	reason          string
	notes           string

	guard guard.ConstructorGuard
}

// NewReturnToStageCommand creates a command to return an item to a production
// stage. reason is recorded in the ledger note so the rework trail stays
// auditable; both reason and notes may be empty.
func NewReturnToStageCommand(
	scanToken kernel.ScanToken,
	targetSubStatus stage.SubStatus,
	departmentID, actorID kernel.UUID,
	password string,
	reason, notes string,
) (ReturnToStageCommand, error) {
	command := ReturnToStageCommand{
		reason: reason,
		notes:  notes,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setScanToken(scanToken),
		command.setTargetSubStatus(targetSubStatus),
		command.setDepartmentID(departmentID),
		command.setActorID(actorID),
		command.setPassword(password),
	); err != nil {
		return ReturnToStageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReturnToStageCommandIsNotConstructed if validation fails.
func (c ReturnToStageCommand) Validate() error {
	return c.guard.Validate(ErrReturnToStageCommandIsNotConstructed)
}

// ScanToken returns the token addressing the item.
func (c ReturnToStageCommand) ScanToken() kernel.ScanToken {
	return c.scanToken
}

// TargetSubStatus returns the stage the item is sent back to.
func (c ReturnToStageCommand) TargetSubStatus() stage.SubStatus {
	return c.targetSubStatus
}

// DepartmentID returns the department taking the item back.
func (c ReturnToStageCommand) DepartmentID() kernel.UUID {
	return c.departmentID
}

// ActorID returns the user performing the return.
func (c ReturnToStageCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Password returns the actor's password for verification.
func (c ReturnToStageCommand) Password() string {
	return c.password
}

// Reason returns why the item is being sent back.
func (c ReturnToStageCommand) Reason() string {
	return c.reason
}

// Notes returns the free-text note for the ledger entry.
func (c ReturnToStageCommand) Notes() string {
	return c.notes
}

func (c *ReturnToStageCommand) setScanToken(token kernel.ScanToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	c.scanToken = token
	return nil
}

func (c *ReturnToStageCommand) setTargetSubStatus(target stage.SubStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.targetSubStatus = target
	return nil
}

func (c *ReturnToStageCommand) setDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departmentID = id
	return nil
}

func (c *ReturnToStageCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

func (c *ReturnToStageCommand) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}

	c.password = password
	return nil
}
