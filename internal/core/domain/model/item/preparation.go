package item

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// PreparationType records how an item is prepared: in-house on the production
// line or outsourced to an external workshop. The zero value PreparationNone
// means the type has not been recorded yet; unlike the status enums it is a
// valid persisted state.
type PreparationType int

const (
	// PreparationNone means no preparation type has been recorded.
	PreparationNone PreparationType = iota

	// InHouse marks items worked on the internal production line.
	InHouse

	// Outsourced marks items sent to an external workshop.
	Outsourced
)

// getPreparationTypeStrings returns the persistence names of all values.
// PreparationNone persists as the empty string.
func getPreparationTypeStrings() map[PreparationType]string {
	return map[PreparationType]string{
		PreparationNone: "",
		InHouse:         "in_house",
		Outsourced:      "outsourced",
	}
}

// PreparationTypeFromString parses a preparation type from its persistence
// name. The empty string parses to PreparationNone.
func PreparationTypeFromString(s string) (PreparationType, error) {
	for prep, name := range getPreparationTypeStrings() {
		if name == s {
			return prep, nil
		}
	}
	return PreparationNone, errs.NewValueIsInvalidErrorWithCause(
		"preparationType",
		fmt.Errorf("%q is not a known preparation type", s),
	)
}

// String returns the persistence name of the preparation type.
func (p PreparationType) String() string {
	if str, ok := getPreparationTypeStrings()[p]; ok {
		return str
	}
	return ""
}

// Validate checks if the PreparationType value is valid.
// PreparationNone is valid; only out-of-range values fail.
func (p PreparationType) Validate() error {
	if _, ok := getPreparationTypeStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"preparationType",
			fmt.Errorf("%d is not a valid preparation type", p),
		)
	}
	return nil
}
