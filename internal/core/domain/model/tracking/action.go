package tracking

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// ActionType identifies which workflow operation produced a ledger entry.
type ActionType int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown ActionType = iota

	// ActionCheckIn records a department receiving an item.
	ActionCheckIn

	// ActionCheckOut records an item leaving a department.
	ActionCheckOut

	// ActionStatusUpdate records a lifecycle or sub-status change, including
	// return-to-stage rework moves.
	ActionStatusUpdate
)

// getActionTypeStrings returns the persistence names of all values.
func getActionTypeStrings() map[ActionType]string {
	return map[ActionType]string{
		ActionUnknown:      "unknown",
		ActionCheckIn:      "check_in",
		ActionCheckOut:     "check_out",
		ActionStatusUpdate: "status_update",
	}
}

// ActionTypeFromString parses an action type from its persistence name.
func ActionTypeFromString(s string) (ActionType, error) {
	for action, name := range getActionTypeStrings() {
		if name == s && action != ActionUnknown {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"actionType",
		fmt.Errorf("%q is not a known action type", s),
	)
}

// String returns the persistence/display name of the action type.
func (a ActionType) String() string {
	if str, ok := getActionTypeStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the ActionType value is valid.
func (a ActionType) Validate() error {
	if a != ActionCheckIn && a != ActionCheckOut && a != ActionStatusUpdate {
		return errs.NewValueIsInvalidErrorWithCause(
			"actionType",
			fmt.Errorf("%d is not a valid action type", a),
		)
	}
	return nil
}
