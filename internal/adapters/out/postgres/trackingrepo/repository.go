package trackingrepo

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{
		db: db,
	}
}

// Append persists a new ledger entry.
func (r *GormTrackingRepository) Append(ctx context.Context, entry *tracking.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a ledger entry by ID.
func (r *GormTrackingRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingEntry", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// DeleteByItem removes all ledger entries of an item. Deleting zero rows is
// not an error: an item can be removed before its first workflow action.
func (r *GormTrackingRepository) DeleteByItem(ctx context.Context, itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&EntryDTO{}, "item_id = ?", itemID.Bytes()).Error
}
