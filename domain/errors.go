package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLoanTerms marks loan terms the engine refuses to simulate.
	ErrInvalidLoanTerms = errors.New("invalid loan terms")
	// ErrInvalidContext marks property, borrower or market data the engine cannot use.
	ErrInvalidContext = errors.New("invalid context")
	// ErrValidation is the root of every ValidationErrors value.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every field problem found while parsing a request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}

func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func invalidTerms(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLoanTerms, fmt.Sprintf(format, args...))
}

func invalidContext(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidContext, fmt.Sprintf(format, args...))
}
