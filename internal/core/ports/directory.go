package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
)

// Actor is the read model of a user returned by the credential boundary.
// The tracking core never sees password hashes.
type Actor struct {
	ID   kernel.UUID
	Name string
}

// Department is the read model of a production department.
type Department struct {
	ID   kernel.UUID
	Name string
}

// Role is the read model of an access role, used when validating visibility
// assignments.
type Role struct {
	ID   kernel.UUID
	Name string
}

// ActorVerifier is the external credential boundary. Every workflow mutation
// authenticates through it before touching the item.
type ActorVerifier interface {
	// Verify checks the actor's password. Returns the actor on success, an
	// Unauthorized error on a bad password, or an ObjectNotFound error when
	// the user does not exist.
	Verify(ctx context.Context, userID kernel.UUID, password string) (Actor, error)
}

// DepartmentDirectory resolves department identifiers. The workflow layer uses
// it to confirm that acting and handover departments exist.
type DepartmentDirectory interface {
	// Lookup returns the department or an ObjectNotFound error.
	Lookup(ctx context.Context, id kernel.UUID) (Department, error)
}

// RoleDirectory resolves access roles when a visibility allow-list is
// assigned. Lookups return only the roles that matched; the caller decides
// whether missing references are an error.
type RoleDirectory interface {
	LookupByIDs(ctx context.Context, ids []kernel.UUID) ([]Role, error)
	LookupByNames(ctx context.Context, names []string) ([]Role, error)
}
