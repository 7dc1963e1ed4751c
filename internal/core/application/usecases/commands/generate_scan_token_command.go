package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrGenerateScanTokenCommandIsNotConstructed = errors.New(
	"GenerateScanTokenCommand must be created via NewGenerateScanTokenCommand constructor",
)

// GenerateScanTokenCommand represents a request to issue a fresh scan token
// for an item, invalidating the previous one. Used when a printed label is
// lost or damaged; old tokens are never recycled.
type GenerateScanTokenCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateScanTokenCommand creates a command to rotate an item's scan token.
func NewGenerateScanTokenCommand(itemID kernel.UUID) (GenerateScanTokenCommand, error) {
	command := GenerateScanTokenCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setItemID(itemID); err != nil {
		return GenerateScanTokenCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrGenerateScanTokenCommandIsNotConstructed if validation fails.
func (c GenerateScanTokenCommand) Validate() error {
	return c.guard.Validate(ErrGenerateScanTokenCommandIsNotConstructed)
}

// ItemID returns the item whose token is rotated.
func (c GenerateScanTokenCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *GenerateScanTokenCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.itemID = id
	return nil
}
