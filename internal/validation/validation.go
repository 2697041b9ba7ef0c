package validation

import (
	"fmt"
)

// Violation is a single failed field check.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations collects every failed check for one request. It implements
// error so services can return it through the normal error path and
// handlers can map it to a 400.
type Violations []Violation

func (v Violations) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	if len(v) == 1 {
		return fmt.Sprintf("%s %s", v[0].Field, v[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(v))
}

// Add appends a violation and returns the updated slice.
func (v Violations) Add(field, message string) Violations {
	return append(v, Violation{Field: field, Message: message})
}

// OrNil returns the slice as an error, or nil when every check passed.
// A typed nil Violations inside a non-nil error interface is a classic
// footgun, hence this helper.
func (v Violations) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
