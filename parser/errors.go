// Package parser implements the DCPU-16 assembler's lexer and parser.
package parser

import (
	"fmt"
	"strings"
)

// Position represents a location in the source file.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Column == 0 {
		return fmt.Sprintf("%s:%d", p.Filename, p.Line)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// ErrorKind categorizes the type of error.
type ErrorKind int

const (
	ErrorLexical ErrorKind = iota
	ErrorSyntax
	ErrorUndefinedLabel
	ErrorDuplicateLabel
	ErrorInvalidDirective
	ErrorInvalidOperand
	ErrorFileIO
)

// Error represents a fatal assembly error with position information. The
// assembler never recovers from one: the first Error returned aborts
// parsing (spec: "does not attempt to recover and continue parsing").
type Error struct {
	Pos     Position
	Message string
	Context string // the source line the error occurred on
	Kind    ErrorKind
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", e.Pos, e.Message))
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n    %s", e.Context))
	}
	return sb.String()
}

// NewError creates a new parser error.
func NewError(pos Position, kind ErrorKind, message string) *Error {
	return &Error{Pos: pos, Message: message, Kind: kind}
}

// NewErrorWithContext creates a new parser error carrying source context.
func NewErrorWithContext(pos Position, kind ErrorKind, message, context string) *Error {
	return &Error{Pos: pos, Message: message, Context: context, Kind: kind}
}

// Warning represents a non-fatal, paranoid-mode-only diagnostic.
type Warning struct {
	Pos     Position
	Message string
}

func (w *Warning) String() string {
	return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
}

// ErrorList accumulates the warnings seen during assembly. Warnings never
// abort assembly, unlike Error.
type ErrorList struct {
	Warnings []*Warning
}

// AddWarning appends a warning.
func (el *ErrorList) AddWarning(w *Warning) {
	el.Warnings = append(el.Warnings, w)
}

// String renders every accumulated warning, one per line.
func (el *ErrorList) String() string {
	var sb strings.Builder
	for _, w := range el.Warnings {
		sb.WriteString(w.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
