package commands

import (
	"errors"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/pkg/guard"
)

var (
	ErrCheckInCommandIsNotConstructed = errors.New(
		"CheckInCommand must be created via NewCheckInCommand constructor",
	)
	ErrPasswordIsRequired = errors.New("password is required")
)

// CheckInCommand represents a request to record a department receiving a
// tracked item, addressed by its scan token.
//
// Example:
//
//	cmd, err := NewCheckInCommand(token, deptID, actorID, "secret",
//	    item.InHouse, stage.CuttingInProgress, "received from warehouse")
//	if err != nil {
//	    return fmt.Errorf("invalid check-in data: %w", err)
//	}
//
//	confirmation, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("check-in failed: %w", err)
//	}
//	fmt.Println(confirmation.Message)
type CheckInCommand struct { //nolint:recvcheck //using for validation
	scanToken    kernel.ScanToken
	departmentID kernel.UUID
	actorID      kernel.UUID
	password     string

	preparationType item.PreparationType
	subStatus       stage.SubStatus
	notes           string

	guard guard.ConstructorGuard
}

// NewCheckInCommand creates a command to check an item into a department.
// preparationType and subStatus are optional: pass item.PreparationNone and
// stage.SubStatusUnknown to leave the item's recorded values untouched.
func NewCheckInCommand(
	scanToken kernel.ScanToken,
	departmentID, actorID kernel.UUID,
	password string,
	preparationType item.PreparationType,
	subStatus stage.SubStatus,
	notes string,
) (CheckInCommand, error) {
	command := CheckInCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setScanToken(scanToken),
		command.setDepartmentID(departmentID),
		command.setActorID(actorID),
		command.setPassword(password),
		command.setPreparationType(preparationType),
		command.setSubStatus(subStatus),
	); err != nil {
		return CheckInCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCheckInCommandIsNotConstructed if validation fails.
func (c CheckInCommand) Validate() error {
	return c.guard.Validate(ErrCheckInCommandIsNotConstructed)
}

// ScanToken returns the token addressing the item.
func (c CheckInCommand) ScanToken() kernel.ScanToken {
	return c.scanToken
}

// DepartmentID returns the receiving department.
func (c CheckInCommand) DepartmentID() kernel.UUID {
	return c.departmentID
}

// ActorID returns the user performing the check-in.
func (c CheckInCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Password returns the actor's password for verification.
func (c CheckInCommand) Password() string {
	return c.password
}

// PreparationType returns the preparation type to record, or
// item.PreparationNone when not supplied.
func (c CheckInCommand) PreparationType() item.PreparationType {
	return c.preparationType
}

// SubStatus returns the sub-status to record, or stage.SubStatusUnknown when
// not supplied.
func (c CheckInCommand) SubStatus() stage.SubStatus {
	return c.subStatus
}

// Notes returns the free-text note for the ledger entry.
func (c CheckInCommand) Notes() string {
	return c.notes
}

func (c *CheckInCommand) setScanToken(token kernel.ScanToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	c.scanToken = token
	return nil
}

func (c *CheckInCommand) setDepartmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.departmentID = id
	return nil
}

func (c *CheckInCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.actorID = id
	return nil
}

func (c *CheckInCommand) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}

	c.password = password
	return nil
}

func (c *CheckInCommand) setPreparationType(prep item.PreparationType) error {
	if err := prep.Validate(); err != nil {
		return err
	}

	c.preparationType = prep
	return nil
}

func (c *CheckInCommand) setSubStatus(subStatus stage.SubStatus) error {
	if subStatus != stage.SubStatusUnknown {
		if err := subStatus.Validate(); err != nil {
			return err
		}
	}

	c.subStatus = subStatus
	return nil
}
