package itemrepo

import (
	"context"
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// GormItemRepository implements ItemRepository using GORM.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormItemRepository creates a new GORM item repository.
func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new item to the database. Unique index violations on the
// external identity pair or the scan token surface as conflict errors.
func (r *GormItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return asConflict(err, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing item to the database.
func (r *GormItemRepository) Update(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return asConflict(result.Error, aggregate)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an item by ID.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByScanToken retrieves an item by its scan token. The read takes a row
// lock; inside a transaction the lock is held until the transaction ends, so
// concurrent workflow operations on the same item run one at a time.
func (r *GormItemRepository) GetByScanToken(ctx context.Context, token kernel.ScanToken) (*item.Item, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "scan_token = ?", token.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("scanToken", token.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByExternalIdentity retrieves an item by its upstream identity pair.
func (r *GormItemRepository) GetByExternalIdentity(ctx context.Context, externalOrderID, externalItemID string) (*item.Item, error) {
	if externalOrderID == "" || externalItemID == "" {
		return nil, errs.NewValueIsRequiredError("externalOrderId/externalItemId")
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "external_order_id = ? AND external_item_id = ?", externalOrderID, externalItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(
				"externalItemId", fmt.Sprintf("%s/%s", externalOrderID, externalItemID))
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an item permanently.
func (r *GormItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", id.String())
	}

	return nil
}

// asConflict maps PostgreSQL unique violations to conflict errors; other
// errors pass through unchanged.
func asConflict(err error, aggregate *item.Item) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errs.NewConflictErrorWithCause(
			"externalItemId",
			fmt.Sprintf("%s/%s", aggregate.ExternalOrderID(), aggregate.ExternalItemID()),
			err,
		)
	}
	return err
}
