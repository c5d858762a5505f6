package gst

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInput        = errors.New("missing input")
	ErrFormat              = errors.New("invalid format")
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
	ErrInvalidNumber       = errors.New("invalid number")
)

// InvalidNumberError reports a numeric field that could not be parsed in strict mode.
type InvalidNumberError struct {
	Field string
	Value any
}

func (e *InvalidNumberError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid number: %v", e.Value)
	}
	return fmt.Sprintf("invalid number for %s: %v", e.Field, e.Value)
}

func (e *InvalidNumberError) Unwrap() error { return ErrInvalidNumber }
