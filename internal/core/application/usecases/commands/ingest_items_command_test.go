package commands_test

import (
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIngestItemsCommand_ValidInput(t *testing.T) {
	// Arrange
	items := []commands.IngestItem{
		{ExternalOrderID: "ORD-1", ExternalItemID: "ITEM-1", ProductName: "Bag", ProductSKU: "SKU-1", Quantity: 2},
		{ExternalOrderID: "ORD-1", ExternalItemID: "ITEM-2", ProductName: "Belt", ProductSKU: "SKU-2", Quantity: 1},
	}
	roleID := kernel.NewUUID()

	// Act
	cmd, err := commands.NewIngestItemsCommand(items, "atelier-main", []kernel.UUID{roleID}, []string{"production"})

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Len(t, cmd.Items(), 2)
	assert.Equal(t, "atelier-main", cmd.StoreName())
	assert.Equal(t, []kernel.UUID{roleID}, cmd.RoleIDs())
	assert.Equal(t, []string{"production"}, cmd.RoleNames())
}

func TestNewIngestItemsCommand_InvalidInput(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		_, err := commands.NewIngestItemsCommand(nil, "atelier-main", nil, nil)
		require.ErrorIs(t, err, commands.ErrItemsAreRequired)
	})

	t.Run("zero role id", func(t *testing.T) {
		items := []commands.IngestItem{{ExternalOrderID: "ORD-1", ExternalItemID: "ITEM-1", ProductName: "Bag", Quantity: 1}}
		var zero kernel.UUID
		_, err := commands.NewIngestItemsCommand(items, "atelier-main", []kernel.UUID{zero}, nil)
		require.Error(t, err)
	})
}

func TestIngestItemsCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.IngestItemsCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrIngestItemsCommandIsNotConstructed)
}
