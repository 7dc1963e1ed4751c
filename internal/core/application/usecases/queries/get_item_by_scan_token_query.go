package queries

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrGetItemByScanTokenQueryIsNotConstructed = errors.New(
	"GetItemByScanTokenQuery must be created via NewGetItemByScanTokenQuery constructor",
)

// GetItemByScanTokenQuery resolves a scan token to the item it addresses,
// subject to the caller's visibility.
//
// Example:
//
//	query, err := NewGetItemByScanTokenQuery(token, RoleFilter{RoleName: "production"})
//	if err != nil {
//	    return err
//	}
//
//	item, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown token, or the caller may not see the item
//	}
type GetItemByScanTokenQuery struct { //nolint:recvcheck //using for validation
	scanToken kernel.ScanToken
	roles     RoleFilter

	guard guard.ConstructorGuard
}

// NewGetItemByScanTokenQuery creates a query for one item by scan token.
func NewGetItemByScanTokenQuery(scanToken kernel.ScanToken, roles RoleFilter) (GetItemByScanTokenQuery, error) {
	if err := scanToken.Validate(); err != nil {
		return GetItemByScanTokenQuery{}, err
	}

	return GetItemByScanTokenQuery{
		scanToken: scanToken,
		roles:     roles,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetItemByScanTokenQueryIsNotConstructed if validation fails.
func (q GetItemByScanTokenQuery) Validate() error {
	return q.guard.Validate(ErrGetItemByScanTokenQueryIsNotConstructed)
}

// ScanToken returns the token to resolve.
func (q GetItemByScanTokenQuery) ScanToken() kernel.ScanToken {
	return q.scanToken
}

// Roles returns the caller's role identifiers.
func (q GetItemByScanTokenQuery) Roles() RoleFilter {
	return q.roles
}
