// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// EventStream (§4.6): a lazy, non-restartable sequence of events with
// next/peek/finished, backed either by a live Parser or by a fixed slice
// (useful for presenter tests and for replaying a captured document).

package libyaml

import "io"

// EventStream is a lazy, non-restartable source of events. Next advances
// it; Peek looks ahead without consuming.
type EventStream interface {
	// Next produces the next event, advancing the stream.
	Next() (Event, error)
	// Peek returns the next event without consuming it. Calling Peek
	// repeatedly without an intervening Next returns the same event.
	Peek() (Event, error)
	// Finished reports whether the terminal STREAM-END event has already
	// been produced.
	Finished() bool
}

// ParserStream adapts a *Parser to the EventStream interface.
type ParserStream struct {
	parser  *Parser
	peeked  *Event
	done    bool
}

// NewParserStream wraps parser as an EventStream.
func NewParserStream(parser *Parser) *ParserStream {
	return &ParserStream{parser: parser}
}

func (s *ParserStream) Next() (Event, error) {
	if s.peeked != nil {
		event := *s.peeked
		s.peeked = nil
		if event.Type == STREAM_END_EVENT {
			s.done = true
		}
		return event, nil
	}
	var event Event
	if err := s.parser.Parse(&event); err != nil {
		return Event{}, wrapStreamError(err)
	}
	if event.Type == STREAM_END_EVENT {
		s.done = true
	}
	return event, nil
}

func (s *ParserStream) Peek() (Event, error) {
	if s.peeked != nil {
		return *s.peeked, nil
	}
	var event Event
	if err := s.parser.Parse(&event); err != nil {
		return Event{}, wrapStreamError(err)
	}
	s.peeked = &event
	return event, nil
}

// wrapStreamError wraps a Parser failure in a StreamError, the "dedicated
// failure kind" §4.6/§7 requires for an EventStream's iteration failures.
// io.EOF is passed through unwrapped since it signals normal end of
// stream, not a failure.
func wrapStreamError(err error) error {
	if err == io.EOF {
		return err
	}
	return StreamError{Err: err}
}

func (s *ParserStream) Finished() bool {
	return s.done
}

// SliceStream replays a fixed slice of events, useful for feeding the
// presenter a document captured ahead of time (e.g. for the "tidy" anchor
// pass, which needs to see the whole document before deciding which nodes
// get anchored).
type SliceStream struct {
	events []Event
	pos    int
}

// NewSliceStream builds an EventStream over a fixed slice of events.
func NewSliceStream(events []Event) *SliceStream {
	return &SliceStream{events: events}
}

func (s *SliceStream) Next() (Event, error) {
	event, err := s.Peek()
	if err != nil {
		return Event{}, err
	}
	s.pos++
	return event, nil
}

func (s *SliceStream) Peek() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	return s.events[s.pos], nil
}

func (s *SliceStream) Finished() bool {
	return s.pos > 0 && s.events[s.pos-1].Type == STREAM_END_EVENT
}
