package errs

import "strings"

// sanitize collapses control characters in error message fragments so that
// multi-line input cannot forge extra log lines.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
