// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAllEvents(t *testing.T, src string) []Event {
	t.Helper()
	parser := NewParser()
	parser.SetInputString([]byte(src))
	var events []Event
	for {
		var event Event
		err := parser.Parse(&event)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, event)
		if event.Type == STREAM_END_EVENT {
			break
		}
	}
	return events
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestParsePlainMapping(t *testing.T) {
	events := parseAllEvents(t, "key: value\n")
	assert.Equal(t, []EventType{
		STREAM_START_EVENT,
		DOCUMENT_START_EVENT,
		MAPPING_START_EVENT,
		SCALAR_EVENT,
		SCALAR_EVENT,
		MAPPING_END_EVENT,
		DOCUMENT_END_EVENT,
		STREAM_END_EVENT,
	}, eventTypes(events))
}

func TestParseSequenceOfScalars(t *testing.T) {
	events := parseAllEvents(t, "- a\n- b\n- c\n")
	assert.Equal(t, []EventType{
		STREAM_START_EVENT,
		DOCUMENT_START_EVENT,
		SEQUENCE_START_EVENT,
		SCALAR_EVENT,
		SCALAR_EVENT,
		SCALAR_EVENT,
		SEQUENCE_END_EVENT,
		DOCUMENT_END_EVENT,
		STREAM_END_EVENT,
	}, eventTypes(events))
}

func TestParseAnchorAndAliasRoundTrip(t *testing.T) {
	events := parseAllEvents(t, "a: &x 1\nb: *x\n")
	var alias *Event
	for i := range events {
		if events[i].Type == ALIAS_EVENT {
			alias = &events[i]
		}
	}
	require.NotNil(t, alias)
	assert.Equal(t, "x", string(alias.Anchor))
}

func TestParseUndefinedAliasIsParserError(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("a: *missing\n"))
	var err error
	var event Event
	for err == nil && event.Type != STREAM_END_EVENT {
		err = parser.Parse(&event)
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined alias")
}

func TestParseUndefinedTagHandleIsParserError(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("a: !nosuch:b c\n"))
	var err error
	var event Event
	for err == nil && event.Type != STREAM_END_EVENT {
		err = parser.Parse(&event)
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined tag handle")
}

func TestParseVersionDirectiveAttachesToDocumentStart(t *testing.T) {
	events := parseAllEvents(t, "%YAML 1.1\n---\nkey: value\n")
	var docStart *Event
	for i := range events {
		if events[i].Type == DOCUMENT_START_EVENT {
			docStart = &events[i]
		}
	}
	require.NotNil(t, docStart)
	require.NotNil(t, docStart.GetVersionDirective())
	assert.Equal(t, 1, docStart.GetVersionDirective().Major())
	assert.Equal(t, 1, docStart.GetVersionDirective().Minor())
}

func TestParseUnsupportedVersionIsCoercedWithWarning(t *testing.T) {
	events := parseAllEvents(t, "%YAML 1.9\n---\nkey: value\n")
	var docStart *Event
	for i := range events {
		if events[i].Type == DOCUMENT_START_EVENT {
			docStart = &events[i]
		}
	}
	require.NotNil(t, docStart)
	require.NotNil(t, docStart.GetVersionDirective())
	assert.Equal(t, 1, docStart.GetVersionDirective().Major())
	assert.Equal(t, 2, docStart.GetVersionDirective().Minor())
	assert.NotEmpty(t, docStart.DirectiveWarning)
}

func TestParseIsFiniteAfterStreamEnd(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("a: 1\n"))
	var event Event
	for {
		err := parser.Parse(&event)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	err := parser.Parse(&event)
	assert.Equal(t, io.EOF, err)
}
