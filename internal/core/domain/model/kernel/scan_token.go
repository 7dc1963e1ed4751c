package kernel

import (
	"strings"

	"tracking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrScanTokenIsNotConstructed indicates that a ScanToken was not created
// through NewScanToken or ScanTokenFromString.
var ErrScanTokenIsNotConstructed = errs.NewValueIsRequiredError("ScanToken must be created via NewScanToken or ScanTokenFromString")

// scanTokenPrefix marks tokens generated by this system so that field scanners
// can distinguish them from raw external barcodes.
const scanTokenPrefix = "TRK-"

// ScanToken is a value object representing the opaque unique code used to
// address a tracked item in field operations (check-in, check-out, status
// updates). Tokens are generated once per item and never recycled.
//
// The zero value of ScanToken is invalid; construct tokens with NewScanToken
// (for new items) or ScanTokenFromString (when resolving a scanned code).
//
// Example usage:
//
//	token := kernel.NewScanToken()
//	fmt.Println(token.String()) // e.g. "TRK-550e8400e29b41d4a716446655440000"
type ScanToken struct {
	value string
}

// NewScanToken generates a fresh unique scan token.
// Uniqueness comes from the embedded random UUID; the storage layer enforces
// it again with a unique index.
func NewScanToken() ScanToken {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return ScanToken{value: scanTokenPrefix + raw}
}

// ScanTokenFromString reconstructs a ScanToken from its string form, as read
// from persistence or from a scanner. The token is treated as opaque: any
// non-empty string is accepted so that codes issued by earlier generations of
// the system keep resolving.
func ScanTokenFromString(s string) (ScanToken, error) {
	if s == "" {
		return ScanToken{}, errs.NewValueIsRequiredError("scanToken")
	}
	return ScanToken{value: s}, nil
}

// String returns the token's opaque string form.
func (t ScanToken) String() string {
	return t.value
}

// IsEqual compares two scan tokens for equality.
func (t ScanToken) IsEqual(other ScanToken) bool {
	return t.value == other.value
}

// Validate checks that the token was properly constructed.
// Returns ErrScanTokenIsNotConstructed for the zero value.
func (t ScanToken) Validate() error {
	if t.value == "" {
		return ErrScanTokenIsNotConstructed
	}
	return nil
}
