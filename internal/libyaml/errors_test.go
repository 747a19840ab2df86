// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Tests for error types (§7): formatting, unwrapping, and errors.Is/As
// matching.

package libyaml

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkedYAMLErrorFormatting(t *testing.T) {
	err := newMarkedError(Mark{Line: 3, Column: 5, Index: 20}, "found unexpected ':'")
	assert.Equal(t, "yaml: line 4: found unexpected ':'", err.Error())
}

func TestMarkedYAMLErrorWithContext(t *testing.T) {
	err := newMarkedErrorContext(
		"while parsing a block mapping", Mark{Line: 1, Column: 1},
		"did not find expected key", Mark{Line: 2, Column: 3},
	)
	assert.Contains(t, err.Error(), "while parsing a block mapping")
	assert.Contains(t, err.Error(), "did not find expected key")
}

func TestMarkedYAMLErrorFormatVerbosePrintsFrame(t *testing.T) {
	err := newMarkedError(Mark{Line: 0, Column: 0}, "boom")
	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "boom")
}

func TestReaderErrorUnwrap(t *testing.T) {
	cause := errors.New("invalid UTF-8 leading byte")
	err := ReaderError{Offset: 12, Value: 0xFF, Err: cause}
	assert.Equal(t, "yaml: offset 12: invalid UTF-8 leading byte", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestScannerErrorIsMarkedError(t *testing.T) {
	err := ScannerError(newMarkedError(Mark{Line: 2, Column: 1}, "unterminated scalar"))
	assert.Equal(t, "yaml: line 3: unterminated scalar", err.Error())
}

func TestParserErrorIsMarkedError(t *testing.T) {
	err := ParserError(newMarkedError(Mark{Line: 0, Column: 0}, "unexpected event"))
	assert.Equal(t, "yaml: line 1: unexpected event", err.Error())
}

func TestEmitterErrorFormatting(t *testing.T) {
	err := EmitterError{Message: "expected SCALAR-EVENT"}
	assert.Equal(t, "yaml: expected SCALAR-EVENT", err.Error())
}

func TestWriterErrorUnwrap(t *testing.T) {
	cause := errors.New("short write")
	err := WriterError{Err: cause}
	assert.Equal(t, "yaml: short write", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestStreamErrorUnwrap(t *testing.T) {
	cause := ParserError(newMarkedError(Mark{}, "bad alias"))
	err := StreamError{Err: cause}
	assert.Contains(t, err.Error(), "stream error")
	assert.ErrorIs(t, err, cause)
}

func TestConstructErrorUnwrap(t *testing.T) {
	cause := errors.New("cannot unmarshal !!seq into string")
	err := &ConstructError{Line: 7, Err: cause}
	assert.Equal(t, "line 7: cannot unmarshal !!seq into string", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestLoadErrorsFormatsEveryEntry(t *testing.T) {
	err := &LoadErrors{Errors: []*ConstructError{
		{Line: 1, Err: errors.New("bad a")},
		{Line: 2, Err: errors.New("bad b")},
	}}
	got := err.Error()
	assert.Contains(t, got, "bad a")
	assert.Contains(t, got, "bad b")
}

func TestLoadErrorsAsConstructError(t *testing.T) {
	inner := &ConstructError{Line: 4, Err: errors.New("bad value")}
	err := &LoadErrors{Errors: []*ConstructError{inner}}

	var target *ConstructError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 4, target.Line)
}

func TestLoadErrorsAsTypeError(t *testing.T) {
	err := &LoadErrors{Errors: []*ConstructError{
		{Line: 1, Err: errors.New("bad a")},
	}}

	var target *TypeError
	require.True(t, errors.As(err, &target))
	require.Len(t, target.Errors, 1)
	assert.Contains(t, target.Errors[0], "bad a")
}

func TestLoadErrorsIsMatchesWrappedCause(t *testing.T) {
	cause := errors.New("sentinel")
	err := &LoadErrors{Errors: []*ConstructError{{Line: 1, Err: cause}}}
	assert.True(t, err.Is(cause))
	assert.False(t, err.Is(errors.New("unrelated")))
}

func TestTypeErrorFormatting(t *testing.T) {
	err := &TypeError{Errors: []string{"line 1: bad a", "line 2: bad b"}}
	got := err.Error()
	assert.Contains(t, got, "bad a")
	assert.Contains(t, got, "bad b")
}
