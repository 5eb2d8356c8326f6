package services

import "errors"

var (
	// ErrValidation marks bad input shape or range. Surfaced to the caller
	// as a 400 before any side effects happen.
	ErrValidation = errors.New("validation error")

	// ErrRepository marks a persistence failure. Fatal for the specific
	// write attempted.
	ErrRepository = errors.New("repository error")

	// ErrNotFound marks a lookup for a record that does not exist or is
	// owned by another user.
	ErrNotFound = errors.New("not found")
)

// MaxTextLen bounds a single submitted text.
const MaxTextLen = 5000

// ValidateText checks one submitted text against the input contract.
func ValidateText(text string) error {
	if text == "" {
		return ErrValidation
	}
	if len(text) > MaxTextLen {
		return ErrValidation
	}
	return nil
}
