package report

import (
	"fmt"
	"strings"
)

// Note is a secondary message attached to a compile error: eg. the location of
// a previous declaration.
type Note struct {
	Span    *TextSpan
	Message string
}

// CompileError is a compilation error that occurs in a context in which the
// source file is known by the reporter and thus doesn't need to be passed
// along with the error.
type CompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.  This may be `nil` for errors on
	// compiler-synthesized nodes.
	Span *TextSpan

	// Additional positions relevant to the error.
	Notes []Note
}

func (ce *CompileError) Error() string {
	sb := strings.Builder{}
	sb.WriteString(ce.Span.String())
	sb.WriteString(": ")
	sb.WriteString(ce.Message)

	for _, note := range ce.Notes {
		sb.WriteString("; ")
		sb.WriteString(note.Span.String())
		sb.WriteString(": ")
		sb.WriteString(note.Message)
	}

	return sb.String()
}

// Raise creates a new compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// WithNote attaches a note to the compile error and returns it.
func (ce *CompileError) WithNote(span *TextSpan, msg string, args ...interface{}) *CompileError {
	ce.Notes = append(ce.Notes, Note{Span: span, Message: fmt.Sprintf(msg, args...)})
	return ce
}

// -----------------------------------------------------------------------------

// InternalError is an internal compiler error: an error that specifically
// results from a bug or unexpected condition occurring within the compiler.
// These errors are not intended to ever happen.
type InternalError struct {
	Message string
}

func (ie *InternalError) Error() string {
	return "internal compiler error: " + ie.Message
}

// ICE raises an internal compiler error.  It never returns.
func ICE(msg string, args ...interface{}) {
	panic(&InternalError{Message: fmt.Sprintf(msg, args...)})
}
