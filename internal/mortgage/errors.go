package mortgage

import (
	"errors"
	"strings"
)

var (
	ErrRequired        = errors.New("this field is required")
	ErrModeRequired    = errors.New("mortgage type is required")
	ErrInvalidNumber   = errors.New("not a valid number")
	ErrZeroTerm        = errors.New("term must be at least one year")
	ErrNonFiniteResult = errors.New("calculation did not produce a finite amount")
)

// FieldError ties a validation failure to the field that produced it.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return string(e.Field) + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects every failing field of one request.
type ValidationError struct {
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "invalid loan input: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the field errors so errors.Is matches any of them.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		errs = append(errs, f)
	}
	return errs
}

// For returns the error recorded for field, or nil.
func (e *ValidationError) For(field Field) error {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Err
		}
	}
	return nil
}

func (e *ValidationError) add(field Field, err error) {
	e.Fields = append(e.Fields, &FieldError{Field: field, Err: err})
}

// Problem is the validation state of a single field as shown to the user.
type Problem int

const (
	ProblemNone Problem = iota
	ProblemRequired
	ProblemInvalidNumber
	ProblemZeroTerm
)

// ProblemOf classifies a field error.
func ProblemOf(err error) Problem {
	switch {
	case err == nil:
		return ProblemNone
	case errors.Is(err, ErrRequired), errors.Is(err, ErrModeRequired):
		return ProblemRequired
	case errors.Is(err, ErrZeroTerm):
		return ProblemZeroTerm
	}
	return ProblemInvalidNumber
}

// Message is the inline text displayed next to the field.
func (p Problem) Message() string {
	switch p {
	case ProblemRequired:
		return "This field is required"
	case ProblemInvalidNumber:
		return "Please enter a valid number"
	case ProblemZeroTerm:
		return "Term must be at least 1 year"
	}
	return ""
}

func (p Problem) String() string {
	switch p {
	case ProblemNone:
		return "none"
	case ProblemRequired:
		return "required"
	case ProblemInvalidNumber:
		return "invalid_number"
	case ProblemZeroTerm:
		return "zero_term"
	}
	return "unknown"
}
