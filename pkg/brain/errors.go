package brain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the brain package.
var (
	// ErrInvalidReading indicates the sensor reading was malformed and no
	// decision was produced. The caller should retry with corrected input.
	ErrInvalidReading = errors.New("brain: invalid sensor reading")

	// ErrEmptyQuestion indicates an empty question was submitted.
	ErrEmptyQuestion = errors.New("brain: question is required")
)

// ValidationError reports per-field problems with a sensor reading.
// A cycle that fails validation appends nothing to history.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidReading.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, field+": "+reason)
	}
	sort.Strings(parts)
	return fmt.Sprintf("brain: invalid sensor reading (%s)", strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrInvalidReading.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidReading
}

// IsValidation returns true if the error is a recoverable input problem.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidReading)
}
