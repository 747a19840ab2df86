// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitEvents(t *testing.T, events []Event) string {
	t.Helper()
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)

	for i := range events {
		require.Truef(t, emitter.Emit(&events[i]), "Emit() failed: %s", emitter.Problem)
	}
	return string(output)
}

func TestEmitterSimpleScalar(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewScalarEvent(nil, nil, []byte("hello"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "hello")
}

func TestEmitterSimpleMapping(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewMappingStartEvent(nil, nil, true, BLOCK_MAPPING_STYLE),
		NewScalarEvent(nil, nil, []byte("key"), true, false, PLAIN_SCALAR_STYLE),
		NewScalarEvent(nil, nil, []byte("value"), true, false, PLAIN_SCALAR_STYLE),
		NewMappingEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "key")
	assert.Contains(t, output, "value")
}

func TestEmitterBlockSequence(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewSequenceStartEvent(nil, nil, true, BLOCK_SEQUENCE_STYLE),
		NewScalarEvent(nil, nil, []byte("item1"), true, false, PLAIN_SCALAR_STYLE),
		NewScalarEvent(nil, nil, []byte("item2"), true, false, PLAIN_SCALAR_STYLE),
		NewSequenceEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "item1")
	assert.Contains(t, output, "item2")
	assert.Contains(t, output, "-")
}

func TestEmitterFlowSequence(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewSequenceStartEvent(nil, nil, true, FLOW_SEQUENCE_STYLE),
		NewScalarEvent(nil, nil, []byte("1"), true, false, PLAIN_SCALAR_STYLE),
		NewScalarEvent(nil, nil, []byte("2"), true, false, PLAIN_SCALAR_STYLE),
		NewSequenceEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "[")
	assert.Contains(t, output, "]")
}

func TestEmitterFlowMapping(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewMappingStartEvent(nil, nil, true, FLOW_MAPPING_STYLE),
		NewScalarEvent(nil, nil, []byte("a"), true, false, PLAIN_SCALAR_STYLE),
		NewScalarEvent(nil, nil, []byte("1"), true, false, PLAIN_SCALAR_STYLE),
		NewMappingEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "{")
	assert.Contains(t, output, "}")
}

func TestEmitterExplicitDocument(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, false),
		NewScalarEvent(nil, nil, []byte("value"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(false),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "---")
	assert.Contains(t, output, "...")
}

func TestEmitterAnchorAndAlias(t *testing.T) {
	anchor := []byte("myanchor")
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewSequenceStartEvent(nil, nil, true, BLOCK_SEQUENCE_STYLE),
		NewScalarEvent(anchor, nil, []byte("value"), true, false, PLAIN_SCALAR_STYLE),
		NewAliasEvent(anchor),
		NewSequenceEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "&myanchor")
	assert.Contains(t, output, "*myanchor")
}

func TestEmitterTag(t *testing.T) {
	tag := []byte("tag:yaml.org,2002:str")
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewScalarEvent(nil, tag, []byte("value"), false, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "!!str")
}

func TestEmitterSingleQuotedScalar(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewScalarEvent(nil, nil, []byte("quoted value"), true, false, SINGLE_QUOTED_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "'")
}

func TestEmitterDoubleQuotedScalar(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewScalarEvent(nil, nil, []byte("quoted value"), true, false, DOUBLE_QUOTED_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "\"")
}

func TestEmitterLiteralScalar(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewMappingStartEvent(nil, nil, true, BLOCK_MAPPING_STYLE),
		NewScalarEvent(nil, nil, []byte("key"), true, false, PLAIN_SCALAR_STYLE),
		NewScalarEvent(nil, nil, []byte("line1\nline2\n"), true, false, LITERAL_SCALAR_STYLE),
		NewMappingEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "|")
}

func TestEmitterFoldedScalar(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewMappingStartEvent(nil, nil, true, BLOCK_MAPPING_STYLE),
		NewScalarEvent(nil, nil, []byte("key"), true, false, PLAIN_SCALAR_STYLE),
		NewScalarEvent(nil, nil, []byte("folded text\n"), true, false, FOLDED_SCALAR_STYLE),
		NewMappingEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, ">")
}

func TestEmitterCanonicalMode(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)
	emitter.SetCanonical(true)

	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, false),
		NewScalarEvent(nil, nil, []byte("value"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(false),
		NewStreamEndEvent(),
	}
	for i := range events {
		require.True(t, emitter.Emit(&events[i]))
	}
	assert.Contains(t, string(output), "---")
}

func TestEmitterCustomIndent(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)
	emitter.SetIndent(4)
	assert.Equal(t, 4, emitter.BestIndent)

	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewMappingStartEvent(nil, nil, true, BLOCK_MAPPING_STYLE),
		NewScalarEvent(nil, nil, []byte("key"), true, false, PLAIN_SCALAR_STYLE),
		NewMappingStartEvent(nil, nil, true, BLOCK_MAPPING_STYLE),
		NewScalarEvent(nil, nil, []byte("nested"), true, false, PLAIN_SCALAR_STYLE),
		NewScalarEvent(nil, nil, []byte("value"), true, false, PLAIN_SCALAR_STYLE),
		NewMappingEndEvent(),
		NewMappingEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}
	for i := range events {
		require.True(t, emitter.Emit(&events[i]))
	}
	assert.Contains(t, string(output), "key")
}

func TestEmitterCustomWidth(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)
	emitter.SetWidth(40)

	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewScalarEvent(nil, nil, []byte("short"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}
	for i := range events {
		require.True(t, emitter.Emit(&events[i]))
	}
}

func TestEmitterUnicodeMode(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)
	emitter.SetUnicode(true)

	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewScalarEvent(nil, nil, []byte("unicode: é"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}
	for i := range events {
		require.True(t, emitter.Emit(&events[i]))
	}
	assert.Contains(t, string(output), "unicode")
}

func TestEmitterMultipleDocuments(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, false),
		NewScalarEvent(nil, nil, []byte("doc1"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(false),
		NewDocumentStartEvent(nil, nil, false),
		NewScalarEvent(nil, nil, []byte("doc2"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(false),
		NewStreamEndEvent(),
	})
	assert.GreaterOrEqual(t, strings.Count(output, "---"), 2)
}

func TestEmitterNestedStructures(t *testing.T) {
	output := emitEvents(t, []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewMappingStartEvent(nil, nil, true, BLOCK_MAPPING_STYLE),
		NewScalarEvent(nil, nil, []byte("parent"), true, false, PLAIN_SCALAR_STYLE),
		NewSequenceStartEvent(nil, nil, true, BLOCK_SEQUENCE_STYLE),
		NewMappingStartEvent(nil, nil, true, BLOCK_MAPPING_STYLE),
		NewScalarEvent(nil, nil, []byte("child"), true, false, PLAIN_SCALAR_STYLE),
		NewScalarEvent(nil, nil, []byte("value"), true, false, PLAIN_SCALAR_STYLE),
		NewMappingEndEvent(),
		NewSequenceEndEvent(),
		NewMappingEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	})
	assert.Contains(t, output, "parent")
	assert.Contains(t, output, "child")
}

func TestEmitterRoundTrip(t *testing.T) {
	input := "key: value\nlist:\n  - item1\n  - item2\n"

	parser := NewParser()
	parser.SetInputString([]byte(input))

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

	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)
	for i := range events {
		require.True(t, emitter.Emit(&events[i]))
	}

	result := string(output)
	assert.Contains(t, result, "key")
	assert.Contains(t, result, "value")
	assert.Contains(t, result, "item1")
}

func TestEmitterWriter(t *testing.T) {
	emitter := NewEmitter()
	var buf bytes.Buffer
	emitter.SetOutputWriter(&buf)

	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewScalarEvent(nil, nil, []byte("test"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}
	for i := range events {
		require.True(t, emitter.Emit(&events[i]))
	}
	assert.Contains(t, buf.String(), "test")
}
