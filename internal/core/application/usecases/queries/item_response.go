// Package queries contains read-only operations over the item projection and
// the tracking ledger. Handlers read the database directly, bypassing the
// aggregate layer, and post-filter results through the visibility rules.
package queries

import (
	"time"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
)

// ItemResponse is the read model of a tracked item.
type ItemResponse struct {
	ID              kernel.UUID
	ExternalOrderID string
	ExternalItemID  string
	StoreName       string
	ScanToken       string
	ProductName     string
	ProductSKU      string
	Quantity        int
	IsLeather       bool
	IsPattern       bool
	PreparationType string
	Status          string
	SubStatus       string

	CurrentDepartmentID *kernel.UUID
	LastDepartmentID    *kernel.UUID
	HandoverTargetID    *kernel.UUID

	VisibilityRoleIDs   []string
	VisibilityRoleNames []string

	CreatedAt time.Time
}

// TrackingEntryResponse is the read model of one ledger entry.
type TrackingEntryResponse struct {
	ID              kernel.UUID
	ItemID          kernel.UUID
	DepartmentID    kernel.UUID
	ActorID         kernel.UUID
	Action          string
	Status          string
	PreviousStatus  string
	SubStatus       string
	PreparationType string
	Notes           string
	CreatedAt       time.Time
}

// RoleFilter carries the role identifiers of the caller performing a read.
// All supplied identifiers are matched against an item's visibility sets.
type RoleFilter struct {
	RoleID    *kernel.UUID
	RoleName  string
	RoleIDs   []kernel.UUID
	RoleNames []string
}

// isVisible applies the visibility rules to a scanned row. Items without an
// allow-list are public.
func (r ItemResponse) isVisible(filter RoleFilter) bool {
	if len(r.VisibilityRoleIDs) == 0 && len(r.VisibilityRoleNames) == 0 {
		return true
	}

	view := item.RoleView{
		RoleID:    filter.RoleID,
		RoleName:  filter.RoleName,
		RoleIDs:   filter.RoleIDs,
		RoleNames: filter.RoleNames,
	}

	ids := make([]kernel.UUID, 0, len(r.VisibilityRoleIDs))
	for _, raw := range r.VisibilityRoleIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	visibility, err := item.NewVisibility(ids, r.VisibilityRoleNames)
	if err != nil {
		// an unreadable allow-list hides the item rather than exposing it
		return false
	}

	return visibility.IsVisibleTo(view)
}
