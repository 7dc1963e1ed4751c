// Package trackingrepo provides data transfer objects and mapping functions
// for the append-only tracking ledger. Entries are inserted once and never
// updated; removal only happens as a cascade of item deletion.
package trackingrepo

import (
	"time"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting ledger entries.
type EntryDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID uuid.UUID `gorm:"type:uuid;not null;index"`

	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID      uuid.UUID `gorm:"type:uuid;not null"`

	Action          string `gorm:"type:varchar(32);not null"`
	Status          string `gorm:"type:varchar(32);not null"`
	PreviousStatus  string `gorm:"type:varchar(32);not null"`
	SubStatus       string `gorm:"type:varchar(64);not null;default:''"`
	PreparationType string `gorm:"type:varchar(32);not null;default:''"`

	Notes string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "tracking_entries"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *tracking.Entry) EntryDTO {
	var subStatus string
	if entry.SubStatus() != stage.SubStatusUnknown {
		subStatus = entry.SubStatus().String()
	}

	return EntryDTO{
		ID:              entry.ID().Bytes(),
		ItemID:          entry.ItemID().Bytes(),
		DepartmentID:    entry.DepartmentID().Bytes(),
		ActorID:         entry.ActorID().Bytes(),
		Action:          entry.Action().String(),
		Status:          entry.Status().String(),
		PreviousStatus:  entry.PreviousStatus().String(),
		SubStatus:       subStatus,
		PreparationType: entry.PreparationType().String(),
		Notes:           entry.Notes(),
		CreatedAt:       entry.CreatedAt(),
	}
}

// toDomain converts a database DTO back to a ledger entry.
func toDomain(dto EntryDTO) (*tracking.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	departmentID, err := kernel.UUIDFromBytes(dto.DepartmentID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	action, err := tracking.ActionTypeFromString(dto.Action)
	if err != nil {
		return nil, err
	}

	status, err := item.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	previousStatus, err := item.StatusFromString(dto.PreviousStatus)
	if err != nil {
		return nil, err
	}

	subStatus := stage.SubStatusUnknown
	if dto.SubStatus != "" {
		if subStatus, err = stage.SubStatusFromString(dto.SubStatus); err != nil {
			return nil, err
		}
	}

	preparation, err := item.PreparationTypeFromString(dto.PreparationType)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreEntry(
		id, itemID, departmentID, actorID,
		action,
		status, previousStatus,
		subStatus,
		preparation,
		dto.Notes,
		dto.CreatedAt,
	)
}
