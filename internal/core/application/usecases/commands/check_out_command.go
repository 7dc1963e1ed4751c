package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrCheckOutCommandIsNotConstructed = errors.New(
	"CheckOutCommand must be created via NewCheckOutCommand constructor",
)

// CheckOutCommand represents a request to record an item leaving its current
// department towards a named handover department.
type CheckOutCommand struct { //nolint:recvcheck //using for validation
	scanToken            kernel.ScanToken
	departmentID         kernel.UUID
	actorID              kernel.UUID
	password             string
	handoverDepartmentID kernel.UUID
	notes                string

	guard guard.ConstructorGuard
}

// NewCheckOutCommand creates a command to check an item out of a department.
// The handover department is mandatory: a checkout always promises the item to
// a specific next department.
func NewCheckOutCommand(
	scanToken kernel.ScanToken,
	departmentID, actorID kernel.UUID,
	password string,
	handoverDepartmentID kernel.UUID,
	notes string,
) (CheckOutCommand, error) {
	command := CheckOutCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setScanToken(scanToken),
		command.setDepartmentID(departmentID),
		command.setActorID(actorID),
		command.setPassword(password),
		command.setHandoverDepartmentID(handoverDepartmentID),
	); err != nil {
		return CheckOutCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckOutCommandIsNotConstructed if validation fails.
func (c CheckOutCommand) Validate() error {
	return c.guard.Validate(ErrCheckOutCommandIsNotConstructed)
}

// ScanToken returns the token addressing the item.
func (c CheckOutCommand) ScanToken() kernel.ScanToken {
	return c.scanToken
}

// DepartmentID returns the department releasing the item.
func (c CheckOutCommand) DepartmentID() kernel.UUID {
	return c.departmentID
}

// ActorID returns the user performing the checkout.
func (c CheckOutCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Password returns the actor's password for verification.
func (c CheckOutCommand) Password() string {
	return c.password
}

// HandoverDepartmentID returns the department the item is promised to.
func (c CheckOutCommand) HandoverDepartmentID() kernel.UUID {
	return c.handoverDepartmentID
}

// Notes returns the free-text note for the ledger entry.
func (c CheckOutCommand) Notes() string {
	return c.notes
}

func (c *CheckOutCommand) setScanToken(token kernel.ScanToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	c.scanToken = token
	return nil
}

func (c *CheckOutCommand) setDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departmentID = id
	return nil
}

func (c *CheckOutCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

func (c *CheckOutCommand) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}

	c.password = password
	return nil
}

func (c *CheckOutCommand) setHandoverDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.handoverDepartmentID = id
	return nil
}
