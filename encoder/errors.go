package encoder

import (
	"fmt"

	"github.com/lookbusy1344/dcpu16/parser"
)

// EncodingError carries the source position of the instruction that
// failed to encode, so a failure at this late stage still produces a
// diagnostic in the `<file>:<line>:<column>: <message>` form (spec §6).
type EncodingError struct {
	Pos     parser.Position
	Message string
	Wrapped error
}

func (e *EncodingError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Pos, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}

// NewEncodingError creates an EncodingError at pos.
func NewEncodingError(pos parser.Position, message string) *EncodingError {
	return &EncodingError{Pos: pos, Message: message}
}

// WrapEncodingError attaches pos to err, unless err is already an
// EncodingError.
func WrapEncodingError(pos parser.Position, err error) error {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*EncodingError); ok {
		return ee
	}
	return &EncodingError{Pos: pos, Message: "failed to encode instruction", Wrapped: err}
}
