package item

import (
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// Visibility is the per-item allow-list of roles permitted to see the item in
// queries. A nil *Visibility means the item is public. A non-nil value holds
// at least one role id or role name; a viewer is allowed when any of its role
// identifiers or names intersects the recorded sets.
//
// Visibility is a pure value object: it performs no I/O and never resolves
// roles itself. Role existence is validated at assignment time through the
// RoleDirectory port.
type Visibility struct {
	roleIDs   []kernel.UUID
	roleNames []string
}

// RoleView carries the role identifiers of the caller performing a read.
// Singular and plural fields may be combined; all of them are matched against
// the item's visibility sets.
type RoleView struct {
	RoleID    *kernel.UUID
	RoleName  string
	RoleIDs   []kernel.UUID
	RoleNames []string
}

// NewVisibility creates a visibility allow-list from role ids and role names.
// At least one entry is required (an empty allow-list would make the item
// invisible to everyone; use a nil *Visibility for public items instead).
// Duplicate role references are rejected.
func NewVisibility(roleIDs []kernel.UUID, roleNames []string) (*Visibility, error) {
	if len(roleIDs) == 0 && len(roleNames) == 0 {
		return nil, errs.NewValueIsRequiredError("visibility requires at least one role id or role name")
	}

	seenIDs := make(map[kernel.UUID]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenIDs[id]; ok {
			return nil, errs.NewConflictError("visibility.roleIds", id.String())
		}
		seenIDs[id] = struct{}{}
	}

	seenNames := make(map[string]struct{}, len(roleNames))
	for _, name := range roleNames {
		if name == "" {
			return nil, errs.NewValueIsRequiredError("visibility.roleNames")
		}
		if _, ok := seenNames[name]; ok {
			return nil, errs.NewConflictError("visibility.roleNames", name)
		}
		seenNames[name] = struct{}{}
	}

	return &Visibility{
		roleIDs:   append([]kernel.UUID(nil), roleIDs...),
		roleNames: append([]string(nil), roleNames...),
	}, nil
}

// RoleIDs returns a copy of the recorded role ids.
func (v *Visibility) RoleIDs() []kernel.UUID {
	if v == nil {
		return nil
	}
	return append([]kernel.UUID(nil), v.roleIDs...)
}

// RoleNames returns a copy of the recorded role names.
func (v *Visibility) RoleNames() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.roleNames...)
}

// IsVisibleTo decides whether a viewer holding the given roles may see the
// item. A nil visibility means public: every viewer passes. Otherwise the
// viewer passes iff any supplied role id or role name intersects the recorded
// sets. Pure function, no I/O.
func (v *Visibility) IsVisibleTo(view RoleView) bool {
	if v == nil {
		return true
	}

	ids := view.RoleIDs
	if view.RoleID != nil {
		ids = append(append([]kernel.UUID(nil), ids...), *view.RoleID)
	}
	for _, candidate := range ids {
		for _, allowed := range v.roleIDs {
			if candidate.IsEqual(allowed) {
				return true
			}
		}
	}

	names := view.RoleNames
	if view.RoleName != "" {
		names = append(append([]string(nil), names...), view.RoleName)
	}
	for _, candidate := range names {
		for _, allowed := range v.roleNames {
			if candidate == allowed {
				return true
			}
		}
	}

	return false
}

// String renders the allow-list for error messages and logs.
func (v *Visibility) String() string {
	if v == nil {
		return "public"
	}
	return fmt.Sprintf("roleIds=%v roleNames=%v", v.roleIDs, v.roleNames)
}
