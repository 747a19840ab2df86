// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Tests for the EventStream abstraction (§4.6): Next/Peek/Finished on both
// the parser-backed and slice-backed implementations, and the presenter's
// AnchorTidy buffering pass built on top of it.

package libyaml

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserStreamPeekIsIdempotent(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("a: 1\n"))
	stream := NewParserStream(&parser)

	first, err := stream.Peek()
	require.NoError(t, err)
	second, err := stream.Peek()
	require.NoError(t, err)
	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, STREAM_START_EVENT, first.Type)
}

func TestParserStreamNextConsumesPeeked(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("a: 1\n"))
	stream := NewParserStream(&parser)

	peeked, err := stream.Peek()
	require.NoError(t, err)
	next, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked.Type, next.Type)

	after, err := stream.Next()
	require.NoError(t, err)
	assert.NotEqual(t, next.Type, after.Type)
}

func TestParserStreamFinishedAfterStreamEnd(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("a: 1\n"))
	stream := NewParserStream(&parser)

	assert.False(t, stream.Finished())
	for {
		event, err := stream.Next()
		require.NoError(t, err)
		if event.Type == STREAM_END_EVENT {
			break
		}
	}
	assert.True(t, stream.Finished())
}

func TestParserStreamWrapsParseFailureInStreamError(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("*undefined\n"))
	stream := NewParserStream(&parser)

	var err error
	for {
		_, err = stream.Next()
		if err != nil {
			break
		}
	}
	require.Error(t, err)
	var streamErr StreamError
	require.ErrorAs(t, err, &streamErr)
	require.Error(t, streamErr.Err)
}

func TestSliceStreamReplaysInOrder(t *testing.T) {
	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewScalarEvent(nil, nil, []byte("x"), true, false, PLAIN_SCALAR_STYLE),
		NewStreamEndEvent(),
	}
	stream := NewSliceStream(events)

	for _, want := range events {
		assert.False(t, stream.Finished())
		got, err := stream.Next()
		require.NoError(t, err)
		assert.Equal(t, want.Type, got.Type)
	}
	assert.True(t, stream.Finished())

	_, err := stream.Next()
	assert.Equal(t, io.EOF, err)
}

func TestSliceStreamPeekDoesNotAdvance(t *testing.T) {
	events := []Event{NewStreamStartEvent(UTF8_ENCODING), NewStreamEndEvent()}
	stream := NewSliceStream(events)

	a, err := stream.Peek()
	require.NoError(t, err)
	b, err := stream.Peek()
	require.NoError(t, err)
	assert.Equal(t, a.Type, b.Type)
	assert.False(t, stream.Finished())
}

func TestPresentTidyOnlyAnchorsReferencedNodes(t *testing.T) {
	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewSequenceStartEvent(nil, nil, true, BLOCK_SEQUENCE_STYLE),
		NewScalarEvent([]byte("referenced"), nil, []byte("1"), true, false, PLAIN_SCALAR_STYLE),
		NewAliasEvent([]byte("referenced")),
		NewScalarEvent([]byte("unused"), nil, []byte("2"), true, false, PLAIN_SCALAR_STYLE),
		NewSequenceEndEvent(),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}

	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)

	err := PresentTidy(&emitter, NewSliceStream(events), AnchorTidy)
	require.NoError(t, err)

	assert.Contains(t, string(output), "&referenced")
	assert.NotContains(t, string(output), "&unused")
}

func TestPresentTidyAnchorNonePassesEventsThroughLive(t *testing.T) {
	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewScalarEvent([]byte("x"), nil, []byte("1"), true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}

	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)

	err := PresentTidy(&emitter, NewSliceStream(events), AnchorNone)
	require.NoError(t, err)
	assert.Contains(t, string(output), "&x")
}
