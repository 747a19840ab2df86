// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types for YAML reading, scanning, parsing, and presenting.
// Provides structured error reporting with line/column information.

package libyaml

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// MarkedYAMLError represents a YAML error with position information.
type MarkedYAMLError struct {
	// optional context
	ContextMark    Mark
	ContextMessage string

	Mark    Mark
	Message string

	frame xerrors.Frame
}

// Error returns the error message with position information.
func (e MarkedYAMLError) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if len(e.ContextMessage) > 0 {
		fmt.Fprintf(&builder, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if len(e.ContextMessage) == 0 || e.ContextMark != e.Mark {
		fmt.Fprintf(&builder, "%s: ", e.Mark)
	}
	builder.WriteString(e.Message)
	return builder.String()
}

// Format implements [fmt.Formatter] so that "%+v" includes the call frame
// that raised the error, without this package deciding where that goes.
func (e MarkedYAMLError) Format(f fmt.State, c rune) {
	xerrors.FormatError(formatterFunc(func(p xerrors.Printer) error {
		p.Print(e.Error())
		e.frame.Format(p)
		return nil
	}), f, c)
}

type formatterFunc func(xerrors.Printer) error

func (f formatterFunc) FormatError(p xerrors.Printer) error { return f(p) }

func newMarkedError(mark Mark, message string) MarkedYAMLError {
	return MarkedYAMLError{Mark: mark, Message: message, frame: xerrors.Caller(2)}
}

func newMarkedErrorContext(context string, contextMark Mark, problem string, problemMark Mark) MarkedYAMLError {
	return MarkedYAMLError{
		ContextMark:    contextMark,
		ContextMessage: context,
		Mark:           problemMark,
		Message:        problem,
		frame:          xerrors.Caller(2),
	}
}

// ReaderError is the reader-error kind: a decode failure while transcoding
// the input stream to UTF-8 (§4.1, §7).
type ReaderError struct {
	Offset int
	Value  int
	Err    error
}

// Error returns the error message with offset information.
func (e ReaderError) Error() string {
	return fmt.Sprintf("yaml: offset %d: %s", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e ReaderError) Unwrap() error { return e.Err }

// ScannerError is the lexer-error kind (§4.2, §7): unterminated scalars,
// illegal characters in context, bad escapes, malformed directives.
type ScannerError MarkedYAMLError

// Error returns the error message.
func (e ScannerError) Error() string { return MarkedYAMLError(e).Error() }

// ParserError is the parser-error kind (§4.4, §7): structural failures in
// the event-producing state machine.
type ParserError MarkedYAMLError

// Error returns the error message.
func (e ParserError) Error() string { return MarkedYAMLError(e).Error() }

// EmitterError is the presenter-output-error / presenter-stream-error kind
// (§4.5, §7): an invariant violation in the incoming event stream (misnested
// collections, alias to an unknown anchor, an unexpected event kind in the
// current state).
type EmitterError struct {
	Message string
}

// Error returns the error message.
func (e EmitterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Message)
}

// JSONError is the presenter-json-error kind (§4.5, §7): a value the JSON
// presenter style cannot represent, raised only when the collaborator has
// opted into json-strict (SetJSONStrict) — e.g. a mapping key whose tag
// marks it as something other than a string.
type JSONError struct {
	Message string
}

// Error returns the error message.
func (e JSONError) Error() string {
	return fmt.Sprintf("yaml: json: %s", e.Message)
}

// WriterError wraps a failure from the presenter's byte sink
// (presenter-output-error, §7).
type WriterError struct {
	Err error
}

// Error returns the error message.
func (e WriterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e WriterError) Unwrap() error { return e.Err }

// StreamError wraps the underlying cause when a lazy event stream (§4.6)
// fails during iteration. It is the "dedicated failure kind that wraps the
// underlying cause" required by §7.
type StreamError struct {
	Err error
}

// Error returns the error message.
func (e StreamError) Error() string {
	return fmt.Sprintf("yaml: stream error: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e StreamError) Unwrap() error { return e.Err }

// ConstructError represents a single, non-fatal error that a collaborator's
// typed-decode layer raised while constructing a Go value from the event
// stream. The core itself never raises one (construction is out of scope
// per spec §1); this type exists purely so a collaborator's errors compose
// with this package's error chain.
type ConstructError struct {
	Err    error
	Line   int
	Column int
}

// Error returns the error message with line number.
func (e *ConstructError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err.Error())
}

// Unwrap returns the underlying error.
func (e *ConstructError) Unwrap() error { return e.Err }

// LoadErrors is returned by a collaborator when one or more fields cannot be
// properly decoded from the event stream.
type LoadErrors struct {
	Errors []*ConstructError
}

// Error returns a formatted error message listing all construct errors.
func (e *LoadErrors) Error() string {
	var b strings.Builder
	b.WriteString("yaml: construct errors:")
	for _, err := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// As implements [errors.As] for Go versions prior to 1.20 that don't support
// the Unwrap() []error interface. It allows [LoadErrors] to match against
// *ConstructError targets by returning the first error in the list.
func (e *LoadErrors) As(target any) bool {
	switch t := target.(type) {
	case **ConstructError:
		if len(e.Errors) == 0 {
			return false
		}
		*t = e.Errors[0]
		return true
	case **TypeError:
		var msgs []string
		for _, err := range e.Errors {
			msgs = append(msgs, err.Error())
		}
		*t = &TypeError{Errors: msgs}
		return true
	}
	return false
}

// Is implements [errors.Is] for Go versions prior to 1.20 that don't support
// the Unwrap() []error interface.
func (e *LoadErrors) Is(target error) bool {
	for _, err := range e.Errors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// TypeError is a legacy construction-error carrier retained for
// compatibility with collaborators migrating from an older façade.
//
// Deprecated: use [LoadErrors] instead.
type TypeError struct {
	Errors []string
}

// Error returns a formatted error message listing all unmarshal errors.
func (e *TypeError) Error() string {
	return fmt.Sprintf("yaml: unmarshal errors:\n  %s", strings.Join(e.Errors, "\n  "))
}
