package stage

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// SubStatus represents the fine-grained, department-specific stage of a tracked
// item. It implements a state machine with a directed forward transition graph;
// legal moves are defined per value and validated with IsTransitionAllowed.
//
// The graph follows the production line:
//
//	cutting ──> embroidery/rivets ──> stitching ──> packing ──> quality control ──> logistics
//
// quality_control_failed is the rework hub: it points back at every production
// in-progress stage. leather_out_of_stock and delivered are terminal.
//
// SubStatus is a value object that validates state transitions and provides
// string representations for persistence and display.
type SubStatus int

const (
	// SubStatusUnknown represents an invalid or undefined sub-status.
	// This value (0) helps catch uninitialized SubStatus values.
	SubStatusUnknown SubStatus = iota

	// CuttingInProgress is the cutting department working an item.
	CuttingInProgress

	// CuttingCompleted is cutting finished, item ready for the next department.
	CuttingCompleted

	// LeatherOutOfStock is a terminal state: cutting cannot proceed for lack of material.
	LeatherOutOfStock

	// EmbroideryInProgress is the embroidery department working an item.
	EmbroideryInProgress

	// EmbroideryCompleted is embroidery finished.
	EmbroideryCompleted

	// RivetsInProgress is the rivets department working an item.
	RivetsInProgress

	// RivetsCompleted is riveting finished.
	RivetsCompleted

	// StitchingInProgress is the stitching department working an item.
	StitchingInProgress

	// StitchingCompleted is stitching finished.
	StitchingCompleted

	// PackingInProgress is the packing department working an item.
	PackingInProgress

	// PackingCompleted is packing finished.
	PackingCompleted

	// QualityControlInProgress is quality control inspecting an item.
	QualityControlInProgress

	// QualityControlPassed is a successful inspection.
	QualityControlPassed

	// QualityControlFailed is a failed inspection; the item goes back for rework.
	QualityControlFailed

	// ReadyForShipment is logistics holding a packed, approved item.
	ReadyForShipment

	// Shipped is the item handed to the carrier.
	Shipped

	// Delivered is a terminal state: the item reached the customer.
	Delivered
)

// Department group names used to cluster sub-statuses for assignment and
// reporting. These are catalog labels, not the department directory ids.
const (
	GroupCutting        = "cutting"
	GroupEmbroidery     = "embroidery"
	GroupRivets         = "rivets"
	GroupStitching      = "stitching"
	GroupPacking        = "packing"
	GroupQualityControl = "quality_control"
	GroupLogistics      = "logistics"
)

// getSubStatusStrings returns the persistence/display names of all values,
// including SubStatusUnknown.
func getSubStatusStrings() map[SubStatus]string {
	return map[SubStatus]string{
		SubStatusUnknown:         "unknown",
		CuttingInProgress:        "cutting_in_progress",
		CuttingCompleted:         "cutting_completed",
		LeatherOutOfStock:        "leather_out_of_stock",
		EmbroideryInProgress:     "embroidery_in_progress",
		EmbroideryCompleted:      "embroidery_completed",
		RivetsInProgress:         "rivets_in_progress",
		RivetsCompleted:          "rivets_completed",
		StitchingInProgress:      "stitching_in_progress",
		StitchingCompleted:       "stitching_completed",
		PackingInProgress:        "packing_in_progress",
		PackingCompleted:         "packing_completed",
		QualityControlInProgress: "quality_control_in_progress",
		QualityControlPassed:     "quality_control_passed",
		QualityControlFailed:     "quality_control_failed",
		ReadyForShipment:         "ready_for_shipment",
		Shipped:                  "shipped",
		Delivered:                "delivered",
	}
}

// getSubStatusGroups maps each valid sub-status to its department group.
func getSubStatusGroups() map[SubStatus]string {
	return map[SubStatus]string{
		CuttingInProgress:        GroupCutting,
		CuttingCompleted:         GroupCutting,
		LeatherOutOfStock:        GroupCutting,
		EmbroideryInProgress:     GroupEmbroidery,
		EmbroideryCompleted:      GroupEmbroidery,
		RivetsInProgress:         GroupRivets,
		RivetsCompleted:          GroupRivets,
		StitchingInProgress:      GroupStitching,
		StitchingCompleted:       GroupStitching,
		PackingInProgress:        GroupPacking,
		PackingCompleted:         GroupPacking,
		QualityControlInProgress: GroupQualityControl,
		QualityControlPassed:     GroupQualityControl,
		QualityControlFailed:     GroupQualityControl,
		ReadyForShipment:         GroupLogistics,
		Shipped:                  GroupLogistics,
		Delivered:                GroupLogistics,
	}
}

// getTransitionGraph returns the directed forward transition graph.
// Terminal states (LeatherOutOfStock, Delivered) have an empty outbound set.
func getTransitionGraph() map[SubStatus][]SubStatus {
	return map[SubStatus][]SubStatus{
		CuttingInProgress: {CuttingCompleted, LeatherOutOfStock},
		CuttingCompleted:  {EmbroideryInProgress, RivetsInProgress, StitchingInProgress},
		LeatherOutOfStock: {},

		EmbroideryInProgress: {EmbroideryCompleted},
		EmbroideryCompleted:  {RivetsInProgress, StitchingInProgress},

		RivetsInProgress: {RivetsCompleted},
		RivetsCompleted:  {StitchingInProgress},

		StitchingInProgress: {StitchingCompleted},
		StitchingCompleted:  {PackingInProgress, QualityControlInProgress},

		PackingInProgress: {PackingCompleted},
		PackingCompleted:  {QualityControlInProgress, ReadyForShipment},

		QualityControlInProgress: {QualityControlPassed, QualityControlFailed},
		QualityControlPassed:     {PackingInProgress, ReadyForShipment},
		QualityControlFailed: {
			CuttingInProgress,
			EmbroideryInProgress,
			RivetsInProgress,
			StitchingInProgress,
			PackingInProgress,
		},

		ReadyForShipment: {Shipped},
		Shipped:          {Delivered},
		Delivered:        {},
	}
}

// getReturnableStages returns the allow-list for the return-to-stage operation:
// one in-progress stage per production department. Sending an item back to one
// of these bypasses the forward graph (quality-control rework).
func getReturnableStages() []SubStatus {
	return []SubStatus{
		CuttingInProgress,
		EmbroideryInProgress,
		RivetsInProgress,
		StitchingInProgress,
		PackingInProgress,
		QualityControlInProgress,
	}
}

// SubStatusFromString parses a sub-status from its persistence name.
// Returns an error for unknown names, including "unknown" itself.
func SubStatusFromString(s string) (SubStatus, error) {
	for status, name := range getSubStatusStrings() {
		if name == s && status != SubStatusUnknown {
			return status, nil
		}
	}
	return SubStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"subStatus",
		fmt.Errorf("%q is not a known sub-status", s),
	)
}

// String returns the persistence/display name of the sub-status.
// Implements fmt.Stringer; safe to call on any value, including invalid ones.
func (s SubStatus) String() string {
	if str, ok := getSubStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Group returns the department group the sub-status belongs to, or an empty
// string for invalid values.
func (s SubStatus) Group() string {
	return getSubStatusGroups()[s]
}

// Validate checks if the SubStatus value is a member of the catalog.
// SubStatusUnknown (0) and out-of-range values are invalid.
func (s SubStatus) Validate() error {
	if _, ok := getSubStatusGroups()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"subStatus",
			fmt.Errorf("%d is not a valid sub-status", s),
		)
	}
	return nil
}

// IsTerminal reports whether the sub-status has no outbound edges.
func (s SubStatus) IsTerminal() bool {
	return len(getTransitionGraph()[s]) == 0
}

// IsReturnable reports whether the sub-status is a legal target for the
// return-to-stage operation.
func (s SubStatus) IsReturnable() bool {
	for _, candidate := range getReturnableStages() {
		if s == candidate {
			return true
		}
	}
	return false
}

// ForGroup returns all catalog sub-statuses belonging to one department group,
// in declaration order. Used when validating a department's status assignment.
func ForGroup(group string) []SubStatus {
	var members []SubStatus
	for status := CuttingInProgress; status <= Delivered; status++ {
		if status.Group() == group {
			members = append(members, status)
		}
	}
	return members
}

// IsTransitionAllowed returns true iff `to` is a member of `from`'s outbound
// edge set in the transition graph. Pure lookup, no side effects.
func IsTransitionAllowed(from, to SubStatus) bool {
	for _, next := range getTransitionGraph()[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition wraps IsTransitionAllowed in the application's error
// taxonomy, naming both ends of the rejected move.
func ValidateTransition(from, to SubStatus) error {
	if !IsTransitionAllowed(from, to) {
		return errs.NewInvalidTransitionError(from.String(), to.String())
	}
	return nil
}
