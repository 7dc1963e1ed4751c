// Package itemrepo provides data transfer objects and mapping functions for
// tracked item persistence. It implements the repository pattern for the item
// aggregate, handling the conversion between domain entities and database
// representations.
package itemrepo

import (
	"time"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ItemDTO represents the database structure for persisting item aggregates.
// The external identity pair and the scan token carry unique indexes so the
// database backs the idempotency and token-uniqueness guarantees.
type ItemDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	ExternalOrderID string `gorm:"type:varchar(255);not null;uniqueIndex:idx_items_external_identity"`
	ExternalItemID  string `gorm:"type:varchar(255);not null;uniqueIndex:idx_items_external_identity"`
	StoreName       string `gorm:"type:varchar(255);not null;index"`

	ScanToken string `gorm:"type:varchar(255);not null;uniqueIndex"`

	ProductName string `gorm:"type:varchar(255);not null"`
	ProductSKU  string `gorm:"type:varchar(255)"`
	Quantity    int    `gorm:"type:int;not null"`
	IsLeather   bool   `gorm:"not null"`
	IsPattern   bool   `gorm:"not null"`

	PreparationType string `gorm:"type:varchar(32);not null;default:''"`
	Status          string `gorm:"type:varchar(32);not null;index"`
	SubStatus       string `gorm:"type:varchar(64);not null;default:''"`

	CurrentDepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	LastDepartmentID    *uuid.UUID `gorm:"type:uuid"`
	HandoverTargetID    *uuid.UUID `gorm:"type:uuid"`

	VisibilityRoleIDs   pq.StringArray `gorm:"type:text[]"`
	VisibilityRoleNames pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}

// fromDomain converts an item aggregate to its database representation.
func fromDomain(aggregate *item.Item) ItemDTO {
	var roleIDs, roleNames pq.StringArray
	if visibility := aggregate.Visibility(); visibility != nil {
		for _, id := range visibility.RoleIDs() {
			roleIDs = append(roleIDs, id.String())
		}
		roleNames = visibility.RoleNames()
	}

	var subStatus string
	if aggregate.SubStatus() != stage.SubStatusUnknown {
		subStatus = aggregate.SubStatus().String()
	}

	return ItemDTO{
		ID:                  aggregate.ID().Bytes(),
		ExternalOrderID:     aggregate.ExternalOrderID(),
		ExternalItemID:      aggregate.ExternalItemID(),
		StoreName:           aggregate.StoreName(),
		ScanToken:           aggregate.ScanToken().String(),
		ProductName:         aggregate.ProductName(),
		ProductSKU:          aggregate.ProductSKU(),
		Quantity:            aggregate.Quantity(),
		IsLeather:           aggregate.IsLeather(),
		IsPattern:           aggregate.IsPattern(),
		PreparationType:     aggregate.PreparationType().String(),
		Status:              aggregate.Status().String(),
		SubStatus:           subStatus,
		CurrentDepartmentID: optionalBytes(aggregate.CurrentDepartment()),
		LastDepartmentID:    optionalBytes(aggregate.LastDepartment()),
		HandoverTargetID:    optionalBytes(aggregate.HandoverTarget()),
		VisibilityRoleIDs:   roleIDs,
		VisibilityRoleNames: roleNames,
		CreatedAt:           aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO back to an item aggregate, re-running the
// aggregate's invariant checks on the way in.
func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	scanToken, err := kernel.ScanTokenFromString(dto.ScanToken)
	if err != nil {
		return nil, err
	}

	status, err := item.StatusFromString(dto.Status)
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

	current, err := optionalUUID(dto.CurrentDepartmentID)
	if err != nil {
		return nil, err
	}
	last, err := optionalUUID(dto.LastDepartmentID)
	if err != nil {
		return nil, err
	}
	handover, err := optionalUUID(dto.HandoverTargetID)
	if err != nil {
		return nil, err
	}

	visibility, err := visibilityFromColumns(dto.VisibilityRoleIDs, dto.VisibilityRoleNames)
	if err != nil {
		return nil, err
	}

	return item.RestoreItem(
		id,
		dto.ExternalOrderID, dto.ExternalItemID, dto.StoreName,
		scanToken,
		dto.ProductName, dto.ProductSKU,
		dto.Quantity,
		dto.IsLeather, dto.IsPattern,
		preparation,
		status,
		subStatus,
		current, last, handover,
		visibility,
		dto.CreatedAt,
	)
}

func visibilityFromColumns(roleIDs, roleNames pq.StringArray) (*item.Visibility, error) {
	if len(roleIDs) == 0 && len(roleNames) == 0 {
		return nil, nil //nolint:nilnil //absent visibility means a public item
	}

	ids := make([]kernel.UUID, 0, len(roleIDs))
	for _, raw := range roleIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return item.NewVisibility(ids, roleNames)
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil //absence is a valid state for nullable columns
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
