package regfake

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Pattern compiler errors
	ErrInvalidPattern = errors.New("invalid pattern")

	// Field generator errors
	ErrUniquenessExhausted = errors.New("uniqueness retries exhausted")

	// Template registry errors
	ErrDuplicateField    = errors.New("duplicate field in template")
	ErrDuplicateTemplate = errors.New("duplicate template")
	ErrEmptyTemplateName = errors.New("template name is empty")
)

// InvalidPatternError reports a pattern the compiler cannot scan.
type InvalidPatternError struct {
	Pattern string
	Offset  int // rune offset of the offending character
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidPattern) hold for any *InvalidPatternError.
func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// FieldError wraps a generator failure with the field and record type it happened in.
type FieldError struct {
	RecordType string
	Field      FieldName
	Err        error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("generate %s.%s: %v", e.RecordType, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
