package queries_test

import (
	"testing"

	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetItemByScanTokenQuery_Valid(t *testing.T) {
	query, err := queries.NewGetItemByScanTokenQuery(kernel.NewScanToken(), queries.RoleFilter{})
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetItemByScanTokenQuery_EmptyToken(t *testing.T) {
	_, err := queries.NewGetItemByScanTokenQuery(kernel.ScanToken{}, queries.RoleFilter{})
	require.Error(t, err)
}

func TestGetItemByScanTokenQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetItemByScanTokenQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetItemByScanTokenQueryIsNotConstructed)
}
