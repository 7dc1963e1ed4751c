package tracking

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through the NewEntry or RestoreEntry factory functions.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is one immutable audit record in the tracking ledger. Entries are
// append-only: they are written once when a workflow operation commits and are
// never edited or reordered afterwards. Deleting the parent item deletes its
// entries in the same transaction.
type Entry struct {
	id           kernel.UUID
	itemID       kernel.UUID
	departmentID kernel.UUID
	actorID      kernel.UUID

	action ActionType

	// lifecycle status after the action, and the one it replaced
	status         item.Status
	previousStatus item.Status

	subStatus       stage.SubStatus
	preparationType item.PreparationType

	notes     string
	createdAt time.Time

	isConstructed bool
}

// NewEntry creates a ledger entry for a just-performed workflow action.
// The creation timestamp is taken once, in UTC, so that ledger ordering is
// stable regardless of where the entry is later persisted.
func NewEntry(
	id, itemID, departmentID, actorID kernel.UUID,
	action ActionType,
	status, previousStatus item.Status,
	subStatus stage.SubStatus,
	preparationType item.PreparationType,
	notes string,
) (*Entry, error) {
	entry := &Entry{
		subStatus:       subStatus,
		preparationType: preparationType,
		notes:           notes,
		createdAt:       time.Now().UTC(),
		isConstructed:   true,
	}

	if err := errors.Join(
		entry.setIDs(id, itemID, departmentID, actorID),
		entry.setAction(action),
		entry.setStatuses(status, previousStatus),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// RestoreEntry reconstructs a ledger entry from persistence.
func RestoreEntry(
	id, itemID, departmentID, actorID kernel.UUID,
	action ActionType,
	status, previousStatus item.Status,
	subStatus stage.SubStatus,
	preparationType item.PreparationType,
	notes string,
	createdAt time.Time,
) (*Entry, error) {
	entry := &Entry{
		subStatus:       subStatus,
		preparationType: preparationType,
		notes:           notes,
		createdAt:       createdAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		entry.setIDs(id, itemID, departmentID, actorID),
		entry.setAction(action),
		entry.setStatuses(status, previousStatus),
	); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate ensures the Entry was created through a factory function.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// ItemID returns the tracked item the entry belongs to.
func (e *Entry) ItemID() kernel.UUID {
	return e.itemID
}

// DepartmentID returns the department that performed the action.
func (e *Entry) DepartmentID() kernel.UUID {
	return e.departmentID
}

// ActorID returns the user that performed the action.
func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

// Action returns which workflow operation produced the entry.
func (e *Entry) Action() ActionType {
	return e.action
}

// Status returns the lifecycle status after the action.
func (e *Entry) Status() item.Status {
	return e.status
}

// PreviousStatus returns the lifecycle status the action replaced.
func (e *Entry) PreviousStatus() item.Status {
	return e.previousStatus
}

// SubStatus returns the department sub-status recorded at the time, or
// stage.SubStatusUnknown when none was set.
func (e *Entry) SubStatus() stage.SubStatus {
	return e.subStatus
}

// PreparationType returns the preparation type recorded at the time.
func (e *Entry) PreparationType() item.PreparationType {
	return e.preparationType
}

// Notes returns the free-text note attached to the action, if any.
func (e *Entry) Notes() string {
	return e.notes
}

// CreatedAt returns the entry's creation timestamp (UTC).
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) setIDs(id, itemID, departmentID, actorID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		itemID.Validate(),
		departmentID.Validate(),
		actorID.Validate(),
	); err != nil {
		return err
	}

	e.id = id
	e.itemID = itemID
	e.departmentID = departmentID
	e.actorID = actorID
	return nil
}

func (e *Entry) setAction(action ActionType) error {
	if err := action.Validate(); err != nil {
		return err
	}
	e.action = action
	return nil
}

func (e *Entry) setStatuses(status, previousStatus item.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	// previousStatus may be unknown for entries recorded at first ingestion
	if previousStatus != item.StatusUnknown {
		if err := previousStatus.Validate(); err != nil {
			return err
		}
	}

	e.status = status
	e.previousStatus = previousStatus
	return nil
}
