//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
// Copyright (c) 2025 The go-yaml Project Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package yaml implements the event-level core of YAML 1.2 processing: a
// lexer, a parser producing a stream of events, and a presenter consuming
// one to write bytes back out. It stops at the event stream — there is no
// document tree, no struct marshaling, and no tag-to-Go-type resolution;
// those belong to a higher layer built on top of this one.
//
// Source code and other details for the project are available at GitHub:
//
//	https://github.com/nyaml/core
package yaml

import (
	"io"

	"github.com/nyaml/core/internal/libyaml"
)

// Re-export the core types so callers never need to import internal/libyaml
// directly.
type (
	Parser       = libyaml.Parser
	Emitter      = libyaml.Emitter
	Event        = libyaml.Event
	EventType    = libyaml.EventType
	Token        = libyaml.Token
	TokenType    = libyaml.TokenType
	Mark         = libyaml.Mark
	Encoding     = libyaml.Encoding
	LineBreak    = libyaml.LineBreak
	VersionDirective = libyaml.VersionDirective
	TagDirective = libyaml.TagDirective
	TagRegistry  = libyaml.TagRegistry
	EventStream  = libyaml.EventStream
	ParserStream = libyaml.ParserStream
	SliceStream  = libyaml.SliceStream

	Style         = libyaml.Style
	ScalarStyle   = libyaml.ScalarStyle
	SequenceStyle = libyaml.SequenceStyle
	MappingStyle  = libyaml.MappingStyle

	PresenterOptions = libyaml.PresenterOptions
	PresenterOption  = libyaml.PresenterOption
	PresenterStyle   = libyaml.PresenterStyle
	AnchorStyle      = libyaml.AnchorStyle
)

// Re-export error kinds (§7).
type (
	MarkedYAMLError = libyaml.MarkedYAMLError
	ReaderError     = libyaml.ReaderError
	ScannerError    = libyaml.ScannerError
	ParserError     = libyaml.ParserError
	EmitterError    = libyaml.EmitterError
	WriterError     = libyaml.WriterError
	StreamError     = libyaml.StreamError
	JSONError       = libyaml.JSONError
)

// Re-export event-type constants.
const (
	NO_EVENT             = libyaml.NO_EVENT
	STREAM_START_EVENT   = libyaml.STREAM_START_EVENT
	STREAM_END_EVENT     = libyaml.STREAM_END_EVENT
	DOCUMENT_START_EVENT = libyaml.DOCUMENT_START_EVENT
	DOCUMENT_END_EVENT   = libyaml.DOCUMENT_END_EVENT
	ALIAS_EVENT          = libyaml.ALIAS_EVENT
	SCALAR_EVENT         = libyaml.SCALAR_EVENT
	SEQUENCE_START_EVENT = libyaml.SEQUENCE_START_EVENT
	SEQUENCE_END_EVENT   = libyaml.SEQUENCE_END_EVENT
	MAPPING_START_EVENT  = libyaml.MAPPING_START_EVENT
	MAPPING_END_EVENT    = libyaml.MAPPING_END_EVENT
)

// Re-export encoding/line-break constants.
const (
	ANY_ENCODING    = libyaml.ANY_ENCODING
	UTF8_ENCODING   = libyaml.UTF8_ENCODING
	UTF16LE_ENCODING = libyaml.UTF16LE_ENCODING
	UTF16BE_ENCODING = libyaml.UTF16BE_ENCODING
	UTF32LE_ENCODING = libyaml.UTF32LE_ENCODING
	UTF32BE_ENCODING = libyaml.UTF32BE_ENCODING

	ANY_BREAK  = libyaml.ANY_BREAK
	CR_BREAK   = libyaml.CR_BREAK
	LN_BREAK   = libyaml.LN_BREAK
	CRLN_BREAK = libyaml.CRLN_BREAK
)

// Re-export presenter style constants.
const (
	StyleDefault   = libyaml.StyleDefault
	StyleMinimal   = libyaml.StyleMinimal
	StyleCanonical = libyaml.StyleCanonical
	StyleJSON      = libyaml.StyleJSON
	StyleBlockOnly = libyaml.StyleBlockOnly

	AnchorTidy   = libyaml.AnchorTidy
	AnchorNone   = libyaml.AnchorNone
	AnchorAlways = libyaml.AnchorAlways
)

// Re-export scalar/sequence/mapping style constants (§3).
const (
	PLAIN_SCALAR_STYLE         = libyaml.PLAIN_SCALAR_STYLE
	SINGLE_QUOTED_SCALAR_STYLE = libyaml.SINGLE_QUOTED_SCALAR_STYLE
	DOUBLE_QUOTED_SCALAR_STYLE = libyaml.DOUBLE_QUOTED_SCALAR_STYLE
	LITERAL_SCALAR_STYLE       = libyaml.LITERAL_SCALAR_STYLE
	FOLDED_SCALAR_STYLE        = libyaml.FOLDED_SCALAR_STYLE

	ANY_SEQUENCE_STYLE   = libyaml.ANY_SEQUENCE_STYLE
	BLOCK_SEQUENCE_STYLE = libyaml.BLOCK_SEQUENCE_STYLE
	FLOW_SEQUENCE_STYLE  = libyaml.FLOW_SEQUENCE_STYLE

	ANY_MAPPING_STYLE   = libyaml.ANY_MAPPING_STYLE
	BLOCK_MAPPING_STYLE = libyaml.BLOCK_MAPPING_STYLE
	FLOW_MAPPING_STYLE  = libyaml.FLOW_MAPPING_STYLE
)

// Re-export well-known tag URI constants (§3).
const (
	NULL_TAG      = libyaml.NULL_TAG
	BOOL_TAG      = libyaml.BOOL_TAG
	STR_TAG       = libyaml.STR_TAG
	INT_TAG       = libyaml.INT_TAG
	FLOAT_TAG     = libyaml.FLOAT_TAG
	TIMESTAMP_TAG = libyaml.TIMESTAMP_TAG
	SEQ_TAG       = libyaml.SEQ_TAG
	MAP_TAG       = libyaml.MAP_TAG
	BINARY_TAG    = libyaml.BINARY_TAG
	MERGE_TAG     = libyaml.MERGE_TAG
	OMAP_TAG      = libyaml.OMAP_TAG
	PAIRS_TAG     = libyaml.PAIRS_TAG
	SET_TAG       = libyaml.SET_TAG
	VALUE_TAG     = libyaml.VALUE_TAG
	YAML_TAG      = libyaml.YAML_TAG

	NON_SPECIFIC_TAG = libyaml.NON_SPECIFIC_TAG
	UNRESOLVED_TAG   = libyaml.UNRESOLVED_TAG
)

// Re-export presenter option constructors.
var (
	WithStyle         = libyaml.WithStyle
	WithIndent        = libyaml.WithIndent
	WithWidth         = libyaml.WithWidth
	WithCanonical     = libyaml.WithCanonical
	WithOutputVersion = libyaml.WithOutputVersion
	WithLineBreak     = libyaml.WithLineBreak
	WithUnicode       = libyaml.WithUnicode
	WithTagHandle     = libyaml.WithTagHandle
	WithAnchorStyle   = libyaml.WithAnchorStyle
	WithJSONStrict    = libyaml.WithJSONStrict
)

// Re-export event constructors. A collaborator building its own event
// stream to feed a presenter (§4.6) constructs events through these rather
// than through internal/libyaml directly.
var (
	NewStreamStartEvent    = libyaml.NewStreamStartEvent
	NewStreamEndEvent      = libyaml.NewStreamEndEvent
	NewDocumentStartEvent  = libyaml.NewDocumentStartEvent
	NewDocumentEndEvent    = libyaml.NewDocumentEndEvent
	NewAliasEvent          = libyaml.NewAliasEvent
	NewScalarEvent         = libyaml.NewScalarEvent
	NewSequenceStartEvent  = libyaml.NewSequenceStartEvent
	NewSequenceEndEvent    = libyaml.NewSequenceEndEvent
	NewMappingStartEvent   = libyaml.NewMappingStartEvent
	NewMappingEndEvent     = libyaml.NewMappingEndEvent
)

// NewParser returns a Parser reading YAML source from r.
func NewParser(r io.Reader) *Parser {
	p := libyaml.NewParser()
	p.SetInputReader(r)
	return &p
}

// NewParserString returns a Parser reading YAML source from input.
func NewParserString(input []byte) *Parser {
	p := libyaml.NewParser()
	p.SetInputString(input)
	return &p
}

// NewTagRegistry returns a TagRegistry seeded with the failsafe, JSON, and
// core schema tags (§4.3).
func NewTagRegistry() *TagRegistry {
	return libyaml.NewTagRegistry()
}

// NewPresenter returns an Emitter writing YAML to w, configured by opts,
// along with the resolved PresenterOptions (see PresenterOptions.DocumentStart).
func NewPresenter(w io.Writer, opts ...PresenterOption) (*Emitter, PresenterOptions) {
	return libyaml.NewPresenter(w, opts...)
}

// NewEventStream adapts a Parser to the lazy EventStream interface (§4.6).
func NewEventStream(p *Parser) *ParserStream {
	return libyaml.NewParserStream(p)
}

// NewSliceStream replays a fixed slice of events as an EventStream.
func NewSliceStream(events []Event) *SliceStream {
	return libyaml.NewSliceStream(events)
}

// Present writes every event from src to emitter, honoring anchorStyle's
// buffering requirement for AnchorTidy (§4.5).
func Present(emitter *Emitter, src EventStream, anchorStyle AnchorStyle) error {
	return libyaml.PresentTidy(emitter, src, anchorStyle)
}
