package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var (
	ErrIngestItemsCommandIsNotConstructed = errors.New(
		"IngestItemsCommand must be created via NewIngestItemsCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// IngestItem is one upstream order item to register. The pair
// (ExternalOrderID, ExternalItemID) identifies it; items already known under
// that pair are skipped rather than duplicated.
type IngestItem struct {
	ExternalOrderID string
	ExternalItemID  string
	ProductName     string
	ProductSKU      string
	Quantity        int
	IsLeather       bool
	IsPattern       bool
}

// IngestItemsCommand represents a batch registration of upstream order items,
// either pushed by a caller or pulled by the sync job. An optional role
// allow-list restricts who can see the ingested items; empty lists mean the
// items are public.
type IngestItemsCommand struct { //nolint:recvcheck //using for validation
	items     []IngestItem
	storeName string
	roleIDs   []kernel.UUID
	roleNames []string

	guard guard.ConstructorGuard
}

// NewIngestItemsCommand creates a batch ingestion command. roleIDs and
// roleNames together form the visibility allow-list; pass both empty for
// public items. Role existence is verified by the handler.
func NewIngestItemsCommand(
	items []IngestItem,
	storeName string,
	roleIDs []kernel.UUID,
	roleNames []string,
) (IngestItemsCommand, error) {
	command := IngestItemsCommand{
		storeName: storeName,
		roleNames: roleNames,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setItems(items),
		command.setRoleIDs(roleIDs),
	); err != nil {
		return IngestItemsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrIngestItemsCommandIsNotConstructed if validation fails.
func (c IngestItemsCommand) Validate() error {
	return c.guard.Validate(ErrIngestItemsCommandIsNotConstructed)
}

// Items returns the upstream items to register.
func (c IngestItemsCommand) Items() []IngestItem {
	return c.items
}

// StoreName returns the upstream store the batch came from.
func (c IngestItemsCommand) StoreName() string {
	return c.storeName
}

// RoleIDs returns the visibility role ids, empty for public items.
func (c IngestItemsCommand) RoleIDs() []kernel.UUID {
	return c.roleIDs
}

// RoleNames returns the visibility role names, empty for public items.
func (c IngestItemsCommand) RoleNames() []string {
	return c.roleNames
}

func (c *IngestItemsCommand) setItems(items []IngestItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *IngestItemsCommand) setRoleIDs(ids []kernel.UUID) error {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.roleIDs = ids
	return nil
}
