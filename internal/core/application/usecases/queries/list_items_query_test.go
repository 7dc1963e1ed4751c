package queries_test

import (
	"testing"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListItemsQuery_Valid(t *testing.T) {
	department := kernel.NewUUID()
	query, err := queries.NewListItemsQuery(
		queries.ItemFilters{
			StoreName:    "atelier-main",
			Status:       item.InProgress,
			DepartmentID: &department,
		},
		queries.RoleFilter{RoleName: "production"},
		2, 25,
	)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 25, query.Limit())
	assert.Equal(t, "atelier-main", query.Filters().StoreName)
}

func TestNewListItemsQuery_NoFilters(t *testing.T) {
	query, err := queries.NewListItemsQuery(queries.ItemFilters{}, queries.RoleFilter{}, 1, 20)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewListItemsQuery_InvalidPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		expected error
	}{
		{name: "zero page", page: 0, limit: 20, expected: queries.ErrPageIsInvalid},
		{name: "negative page", page: -1, limit: 20, expected: queries.ErrPageIsInvalid},
		{name: "zero limit", page: 1, limit: 0, expected: queries.ErrLimitIsInvalid},
		{name: "negative limit", page: 1, limit: -5, expected: queries.ErrLimitIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewListItemsQuery(queries.ItemFilters{}, queries.RoleFilter{}, tt.page, tt.limit)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestListItemsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListItemsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListItemsQueryIsNotConstructed)
}
