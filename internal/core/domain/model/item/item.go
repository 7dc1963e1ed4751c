package item

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory functions.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is the aggregate root for one physical unit moving through production
// departments. It holds the current-state projection of the unit and enforces
// the department-transfer protocol: check-in, check-out, status updates, and
// quality-control returns.
//
// Item maintains these invariants:
//   - currentDepartment is non-nil iff the lifecycle status is CheckedIn or InProgress
//   - handoverTarget is non-nil only while the status is CheckedOut, and is
//     cleared by the next successful check-in
//   - the (externalOrderID, externalItemID) pair identifies the unit for
//     idempotent ingestion; the storage layer enforces its global uniqueness
//   - the scan token is assigned at creation and only replaced, never reused
//
// All state changes go through the mutation methods below; the struct uses
// private fields so invariants cannot be bypassed.
type Item struct {
	id kernel.UUID

	// identity of the unit in the upstream order system
	externalOrderID string
	externalItemID  string

	// upstream store the item was ingested from, empty when unknown
	storeName string

	scanToken kernel.ScanToken

	quantity    int
	productName string
	productSKU  string
	isLeather   bool
	isPattern   bool

	preparationType PreparationType

	status    Status
	subStatus stage.SubStatus

	currentDepartmentID *kernel.UUID
	lastDepartmentID    *kernel.UUID
	handoverTargetID    *kernel.UUID

	visibility *Visibility

	createdAt time.Time

	isConstructed bool
}

// NewItem creates a tracked item in Pending status with a freshly generated
// scan token and no department. This is how ingestion materializes upstream
// order items.
//
// Parameters:
//   - id: unique identifier for the item
//   - externalOrderID / externalItemID: upstream identity pair (both required)
//   - storeName: upstream store, may be empty
//   - productName / productSKU: product descriptors (name required)
//   - quantity: number of physical units (must be positive)
//   - isLeather / isPattern: material attributes
//   - visibility: role allow-list, nil for public
func NewItem(
	id kernel.UUID,
	externalOrderID, externalItemID, storeName string,
	productName, productSKU string,
	quantity int,
	isLeather, isPattern bool,
	visibility *Visibility,
) (*Item, error) {
	it := &Item{
		status:        Pending,
		scanToken:     kernel.NewScanToken(),
		visibility:    visibility,
		isLeather:     isLeather,
		isPattern:     isPattern,
		storeName:     storeName,
		productSKU:    productSKU,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setExternalIdentity(externalOrderID, externalItemID),
		it.setProductName(productName),
		it.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// RestoreItem reconstructs an item from persistence without running the
// creation defaults. It re-checks the cross-field invariants so corrupt rows
// are rejected at the repository boundary.
func RestoreItem(
	id kernel.UUID,
	externalOrderID, externalItemID, storeName string,
	scanToken kernel.ScanToken,
	productName, productSKU string,
	quantity int,
	isLeather, isPattern bool,
	preparationType PreparationType,
	status Status,
	subStatus stage.SubStatus,
	currentDepartmentID, lastDepartmentID, handoverTargetID *kernel.UUID,
	visibility *Visibility,
	createdAt time.Time,
) (*Item, error) {
	it := &Item{
		isLeather:           isLeather,
		isPattern:           isPattern,
		storeName:           storeName,
		productSKU:          productSKU,
		preparationType:     preparationType,
		status:              status,
		subStatus:           subStatus,
		currentDepartmentID: currentDepartmentID,
		lastDepartmentID:    lastDepartmentID,
		handoverTargetID:    handoverTargetID,
		visibility:          visibility,
		createdAt:           createdAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setExternalIdentity(externalOrderID, externalItemID),
		it.setProductName(productName),
		it.setQuantity(quantity),
		it.setScanToken(scanToken),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if subStatus != stage.SubStatusUnknown {
		if err := subStatus.Validate(); err != nil {
			return nil, err
		}
	}

	if status.IsHolding() != (currentDepartmentID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"currentDepartment",
			fmt.Errorf("status %s is inconsistent with currentDepartment", status),
		)
	}
	if handoverTargetID != nil && status != CheckedOut {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"handoverTarget",
			fmt.Errorf("handover target is only allowed while checked out, status is %s", status),
		)
	}

	return it, nil
}

// Validate ensures the Item instance was properly constructed through one of
// the factory functions.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by their unique identifiers.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ExternalOrderID returns the upstream order identifier.
func (i *Item) ExternalOrderID() string {
	return i.externalOrderID
}

// ExternalItemID returns the upstream item identifier.
func (i *Item) ExternalItemID() string {
	return i.externalItemID
}

// StoreName returns the upstream store the item was ingested from, or an empty
// string when it was not recorded.
func (i *Item) StoreName() string {
	return i.storeName
}

// ScanToken returns the item's current scan token.
func (i *Item) ScanToken() kernel.ScanToken {
	return i.scanToken
}

// Quantity returns the number of physical units.
func (i *Item) Quantity() int {
	return i.quantity
}

// ProductName returns the product descriptor name.
func (i *Item) ProductName() string {
	return i.productName
}

// ProductSKU returns the product descriptor SKU.
func (i *Item) ProductSKU() string {
	return i.productSKU
}

// IsLeather reports whether the item is a leather product.
func (i *Item) IsLeather() bool {
	return i.isLeather
}

// IsPattern reports whether the item is a pattern sample.
func (i *Item) IsPattern() bool {
	return i.isPattern
}

// PreparationType returns how the item is prepared (in-house, outsourced, or
// none when not yet recorded).
func (i *Item) PreparationType() PreparationType {
	return i.preparationType
}

// Status returns the coarse lifecycle status.
func (i *Item) Status() Status {
	return i.status
}

// SubStatus returns the department sub-status, or stage.SubStatusUnknown when
// none has been assigned yet.
func (i *Item) SubStatus() stage.SubStatus {
	return i.subStatus
}

// CurrentDepartment returns the id of the department holding the item, or nil
// when no department holds it.
func (i *Item) CurrentDepartment() *kernel.UUID {
	return i.currentDepartmentID
}

// LastDepartment returns the id of the previous holder, or nil.
func (i *Item) LastDepartment() *kernel.UUID {
	return i.lastDepartmentID
}

// HandoverTarget returns the department promised at checkout, or nil.
func (i *Item) HandoverTarget() *kernel.UUID {
	return i.handoverTargetID
}

// CreatedAt returns when the item was ingested (UTC).
func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// Visibility returns the item's role allow-list, nil for public items.
func (i *Item) Visibility() *Visibility {
	return i.visibility
}

// SetVisibility replaces the item's role allow-list. A nil value makes the
// item public. Role existence is the caller's concern (RoleDirectory port).
func (i *Item) SetVisibility(v *Visibility) {
	i.visibility = v
}

// CheckIn records a department receiving the item.
//
// Rules enforced:
//   - from Pending: always accepted
//   - from CheckedIn/InProgress: rejected with AlreadyCheckedIn when the
//     receiving department already holds the item; accepted into any other
//     department (the item is considered to be moving, no explicit checkout
//     is forced first)
//   - from CheckedOut: the receiving department must match the recorded
//     handover target when one was set; the error names the expected department
//   - from Completed/Shipped/Delivered: InvalidTransition
//
// The optional preparation type is recorded when supplied (non-None). The
// optional sub-status must satisfy the catalog graph when the item already
// has one; a first assignment accepts any catalog value.
//
// On success the item is CheckedIn in the given department, its previous
// holder becomes lastDepartment, and any handover target is cleared.
func (i *Item) CheckIn(departmentID kernel.UUID, prep PreparationType, subStatus stage.SubStatus) error {
	if err := departmentID.Validate(); err != nil {
		return err
	}
	if err := prep.Validate(); err != nil {
		return err
	}

	switch {
	case i.status == Pending:
		// first receipt
	case i.status.IsHolding():
		if i.currentDepartmentID != nil && i.currentDepartmentID.IsEqual(departmentID) {
			return errs.NewAlreadyCheckedInError(departmentID.String())
		}
	case i.status == CheckedOut:
		if i.handoverTargetID != nil && !i.handoverTargetID.IsEqual(departmentID) {
			return errs.NewOwnershipConflictError(i.handoverTargetID.String(), departmentID.String())
		}
	default:
		return errs.NewInvalidTransitionError(i.status.String(), CheckedIn.String())
	}

	if err := i.validateSubStatusMove(subStatus); err != nil {
		return err
	}

	i.recordLastDepartment(departmentID)
	dept := departmentID
	i.currentDepartmentID = &dept
	i.handoverTargetID = nil
	i.status = CheckedIn
	i.applyPreparation(prep)
	i.applySubStatus(subStatus)
	return nil
}

// CheckOut records the item leaving its department towards a handover target.
//
// Only the department currently holding the item (status CheckedIn or
// InProgress) may check it out. The handover department's existence is
// validated by the workflow layer before this is called.
//
// On success the item is CheckedOut with no current department, its previous
// holder becomes lastDepartment, and the handover target is recorded.
func (i *Item) CheckOut(departmentID, handoverDepartmentID kernel.UUID) error {
	if err := departmentID.Validate(); err != nil {
		return err
	}
	if err := handoverDepartmentID.Validate(); err != nil {
		return err
	}

	if !i.status.IsHolding() {
		return errs.NewInvalidTransitionError(i.status.String(), CheckedOut.String())
	}
	if i.currentDepartmentID == nil || !i.currentDepartmentID.IsEqual(departmentID) {
		expected := ""
		if i.currentDepartmentID != nil {
			expected = i.currentDepartmentID.String()
		}
		return errs.NewOwnershipConflictError(expected, departmentID.String())
	}

	last := *i.currentDepartmentID
	i.lastDepartmentID = &last
	i.currentDepartmentID = nil
	handover := handoverDepartmentID
	i.handoverTargetID = &handover
	i.status = CheckedOut
	return nil
}

// UpdateStatus moves the item along the coarse lifecycle transition table.
//
// Rules enforced:
//   - the (current status, new status) pair must be listed in the table
//   - a move to InProgress additionally requires that the requesting
//     department is the one currently holding the item
//   - the optional sub-status must satisfy the catalog graph when the item
//     already has one
//
// The CheckedOut -> CheckedIn edge deliberately does not enforce the handover
// department match; only the CheckIn operation does. The two entry points are
// intentionally asymmetric.
func (i *Item) UpdateStatus(newStatus Status, departmentID kernel.UUID, prep PreparationType, subStatus stage.SubStatus) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if err := departmentID.Validate(); err != nil {
		return err
	}
	if err := prep.Validate(); err != nil {
		return err
	}

	if err := i.status.ValidateTransition(newStatus); err != nil {
		return err
	}

	if newStatus == InProgress {
		if i.currentDepartmentID == nil || !i.currentDepartmentID.IsEqual(departmentID) {
			expected := ""
			if i.currentDepartmentID != nil {
				expected = i.currentDepartmentID.String()
			}
			return errs.NewOwnershipConflictError(expected, departmentID.String())
		}
	}

	if err := i.validateSubStatusMove(subStatus); err != nil {
		return err
	}

	switch newStatus {
	case CheckedIn:
		dept := departmentID
		i.currentDepartmentID = &dept
		i.handoverTargetID = nil
	case InProgress:
		// holder unchanged
	case CheckedOut:
		if i.currentDepartmentID != nil {
			last := *i.currentDepartmentID
			i.lastDepartmentID = &last
		}
		i.currentDepartmentID = nil
	case Shipped, Delivered:
		// no department involvement past completion
	}

	i.status = newStatus
	i.applyPreparation(prep)
	i.applySubStatus(subStatus)
	return nil
}

// ReturnToStage sends the item backward to an earlier production stage after a
// quality-control failure. The target must be on the fixed allow-list of
// in-progress stages; the forward-only sub-status graph is deliberately
// bypassed here.
//
// On success the status is unconditionally InProgress, the sub-status is the
// target stage, and the requesting department becomes the holder.
func (i *Item) ReturnToStage(target stage.SubStatus, departmentID kernel.UUID) error {
	if err := departmentID.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if !target.IsReturnable() {
		return errs.NewValueIsInvalidErrorWithCause(
			"targetSubStatus",
			fmt.Errorf("%s is not a returnable stage", target),
		)
	}

	i.recordLastDepartment(departmentID)
	dept := departmentID
	i.currentDepartmentID = &dept
	i.handoverTargetID = nil
	i.status = InProgress
	i.subStatus = target
	return nil
}

// RotateScanToken replaces the item's scan token with a freshly generated one
// and returns it. The old token is never handed out again.
func (i *Item) RotateScanToken() kernel.ScanToken {
	i.scanToken = kernel.NewScanToken()
	return i.scanToken
}

// validateSubStatusMove checks a prospective sub-status change without
// mutating the item. stage.SubStatusUnknown means "not supplied" and always
// passes; a first assignment accepts any catalog value.
func (i *Item) validateSubStatusMove(next stage.SubStatus) error {
	if next == stage.SubStatusUnknown {
		return nil
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if i.subStatus != stage.SubStatusUnknown {
		return stage.ValidateTransition(i.subStatus, next)
	}
	return nil
}

// applySubStatus commits a sub-status previously cleared by validateSubStatusMove.
func (i *Item) applySubStatus(next stage.SubStatus) {
	if next != stage.SubStatusUnknown {
		i.subStatus = next
	}
}

// applyPreparation records a supplied preparation type, keeping the existing
// one when the caller passed PreparationNone.
func (i *Item) applyPreparation(prep PreparationType) {
	if prep != PreparationNone {
		i.preparationType = prep
	}
}

// recordLastDepartment remembers the current holder as lastDepartment when the
// item is moving to a different department.
func (i *Item) recordLastDepartment(nextDepartmentID kernel.UUID) {
	if i.currentDepartmentID != nil && !i.currentDepartmentID.IsEqual(nextDepartmentID) {
		last := *i.currentDepartmentID
		i.lastDepartmentID = &last
	}
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setExternalIdentity(orderID, itemID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("externalOrderId")
	}
	if itemID == "" {
		return errs.NewValueIsRequiredError("externalItemId")
	}
	i.externalOrderID = orderID
	i.externalItemID = itemID
	return nil
}

func (i *Item) setProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	i.productName = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setScanToken(token kernel.ScanToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	i.scanToken = token
	return nil
}
