package item

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// Status represents the coarse lifecycle state of a tracked item.
// It implements a state machine with defined transitions to ensure items follow
// the department-transfer workflow.
//
// State transitions:
//
//	Pending ──> CheckedIn ──> InProgress ──> CheckedOut ──> CheckedIn ...
//	                │              │  ^
//	                └──> CheckedOut└──┘ (repeated work in the same department)
//
//	Completed ──> Shipped ──> Delivered (terminal)
//
// Completed has no inbound edge in the table; it only appears on items ingested
// in that state from an upstream source.
//
// Status is a value object that validates state transitions and provides string
// representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status of an ingested item before any department
	// has received it.
	Pending

	// CheckedIn means a department has received the item and holds it.
	CheckedIn

	// InProgress means the holding department is actively working the item.
	InProgress

	// CheckedOut means the item left its department and is in transit to the
	// promised handover department.
	CheckedOut

	// Completed means production is finished and the item awaits shipment.
	Completed

	// Shipped means the item was handed to the carrier.
	Shipped

	// Delivered means the item reached the customer. Terminal.
	Delivered
)

// getStatusStrings returns a map of Status values to their string
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Pending:       "pending",
		CheckedIn:     "checked_in",
		InProgress:    "in_progress",
		CheckedOut:    "checked_out",
		Completed:     "completed",
		Shipped:       "shipped",
		Delivered:     "delivered",
	}
}

// getStatusTransitions returns the coarse lifecycle transition table.
// Any move not listed here is rejected. The only permitted self-loop is
// InProgress -> InProgress (repeated work inside one department).
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {CheckedIn},
		CheckedIn:  {InProgress, CheckedOut},
		InProgress: {InProgress, CheckedOut},
		CheckedOut: {CheckedIn},
		Completed:  {Shipped},
		Shipped:    {Delivered},
		Delivered:  {},
	}
}

// StatusFromString parses a lifecycle status from its persistence name.
// Returns an error for unknown names, including "unknown" itself.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known lifecycle status", s),
	)
}

// String returns the persistence/display name of the status.
// Implements fmt.Stringer; safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// IsHolding reports whether the status implies a department currently holds
// the item. The aggregate keeps currentDepartment non-nil exactly for these
// two states.
func (s Status) IsHolding() bool {
	return s == CheckedIn || s == InProgress
}

// CanTransitionTo returns true iff `to` is listed in the transition table for
// the current status. Pure lookup, no side effects.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range getStatusTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition wraps CanTransitionTo in the application's error
// taxonomy, naming both ends of the rejected move.
func (s Status) ValidateTransition(to Status) error {
	if !s.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return nil
}
