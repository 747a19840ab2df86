// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// The Parser/Emitter object shapes and the source reader (§4.1): BOM and
// encoding detection, UTF-8/16/32 transcoding into a working buffer the
// lexer scans byte-at-a-time, and the STREAM-START token that primes the
// lexer's token queue.

package libyaml

import (
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

// Buffer and queue sizing, carried over from classic libyaml: the raw
// buffer holds undecoded input bytes, the working buffer holds decoded
// UTF-8 plus a trailing NUL sentinel so isZeroChar can double as an EOF
// check without a separate bounds test on every lookahead.
const (
	input_raw_buffer_size = 16384
	input_buffer_size     = input_raw_buffer_size*3 + 1
	output_buffer_size    = 16384
	initial_stack_size    = 16
	initial_queue_size    = 16
)

type readHandler func(parser *Parser, buffer []byte) (n int, err error)

type writeHandler func(emitter *Emitter, buffer []byte) error

// yamlSimpleKey is a candidate position for a mapping key expressible on a
// single line (§3's "simple key"), tracked so the lexer can retroactively
// turn a scalar already emitted into a mapping-start once ':' confirms it.
type yamlSimpleKey struct {
	possible     bool
	required     bool
	token_number int
	mark         Mark
}

// ParserState names a state in the parser's production-rule state machine
// (§4.4).
type ParserState int

const (
	PARSE_STREAM_START_STATE ParserState = iota
	PARSE_IMPLICIT_DOCUMENT_START_STATE
	PARSE_DOCUMENT_START_STATE
	PARSE_DOCUMENT_CONTENT_STATE
	PARSE_DOCUMENT_END_STATE
	PARSE_BLOCK_NODE_STATE
	PARSE_BLOCK_NODE_OR_INDENTLESS_SEQUENCE_STATE
	PARSE_FLOW_NODE_STATE
	PARSE_BLOCK_SEQUENCE_FIRST_ENTRY_STATE
	PARSE_BLOCK_SEQUENCE_ENTRY_STATE
	PARSE_INDENTLESS_SEQUENCE_ENTRY_STATE
	PARSE_BLOCK_MAPPING_FIRST_KEY_STATE
	PARSE_BLOCK_MAPPING_KEY_STATE
	PARSE_BLOCK_MAPPING_VALUE_STATE
	PARSE_FLOW_SEQUENCE_FIRST_ENTRY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_KEY_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_VALUE_STATE
	PARSE_FLOW_SEQUENCE_ENTRY_MAPPING_END_STATE
	PARSE_FLOW_MAPPING_FIRST_KEY_STATE
	PARSE_FLOW_MAPPING_KEY_STATE
	PARSE_FLOW_MAPPING_VALUE_STATE
	PARSE_FLOW_MAPPING_EMPTY_VALUE_STATE
	PARSE_END_STATE
)

// EmitterState names a state in the presenter's inverse state machine (§4.5).
type EmitterState int

const (
	EMIT_STREAM_START_STATE EmitterState = iota
	EMIT_FIRST_DOCUMENT_START_STATE
	EMIT_DOCUMENT_START_STATE
	EMIT_DOCUMENT_CONTENT_STATE
	EMIT_DOCUMENT_END_STATE
	EMIT_FLOW_SEQUENCE_FIRST_ITEM_STATE
	EMIT_FLOW_SEQUENCE_ITEM_STATE
	EMIT_FLOW_MAPPING_FIRST_KEY_STATE
	EMIT_FLOW_MAPPING_KEY_STATE
	EMIT_FLOW_MAPPING_SIMPLE_VALUE_STATE
	EMIT_FLOW_MAPPING_VALUE_STATE
	EMIT_BLOCK_SEQUENCE_FIRST_ITEM_STATE
	EMIT_BLOCK_SEQUENCE_ITEM_STATE
	EMIT_BLOCK_MAPPING_FIRST_KEY_STATE
	EMIT_BLOCK_MAPPING_KEY_STATE
	EMIT_BLOCK_MAPPING_SIMPLE_VALUE_STATE
	EMIT_BLOCK_MAPPING_VALUE_STATE
	EMIT_END_STATE
)

// Parser drives the lexer and the event state machine over a single input
// stream. Zero value is ready to use once an input source is set via
// SetInputString/SetInputReader (see api.go); NewParser pre-sizes the
// buffers.
type Parser struct {
	// Reader stuff

	read_handler readHandler

	input_reader io.Reader
	input        []byte
	input_pos    int

	eof bool

	buffer     []byte
	buffer_pos int

	newlines int

	raw_buffer     []byte
	raw_buffer_pos int

	encoding Encoding

	offset int
	mark   Mark

	// Scanner stuff

	stream_start_produced bool
	stream_end_produced   bool

	flow_level int

	tokens          []Token
	tokens_head     int
	tokens_parsed   int
	token_available bool

	indent  int
	indents []int

	simple_key_allowed bool
	simple_keys        []yamlSimpleKey

	// Parser stuff

	state  ParserState
	states []ParserState
	marks  []Mark

	tag_directives []TagDirective

	// tags resolves %TAG handles to URIs (§4.3). It is populated
	// alongside tag_directives rather than replacing that lookup: callers
	// needing an interned tag id (for fast comparisons against the
	// well-known schema tags) use tags.resolve, while the inline
	// handle/prefix match against tag_directives keeps producing the
	// tag URI bytes attached to events.
	tags *TagRegistry

	// directiveWarning carries the most recent non-fatal diagnostic raised
	// by processDirectives (an unrecognized %YAML version, accepted and
	// treated as 1.2) until it is attached to the next DOCUMENT-START event.
	directiveWarning string

	// anchors is the per-document anchor table (§3, §4.4): it maps an
	// anchor name to the order it was declared in, so an ALIAS can be
	// rejected with a parser-error if it names an anchor not yet seen in
	// this document. Cleared at DOCUMENT-END, matching "stream-end
	// invalidates all outstanding anchors" (anchors never cross documents
	// in the first place, since the table is rebuilt per document).
	anchors map[string]int

	hadError bool
}

// Emitter is the inverse of Parser: it consumes events and writes a byte
// stream honoring a presentation configuration (§4.5). Zero value is ready
// to use once an output sink is set via SetOutputString/SetOutputWriter;
// NewEmitter pre-sizes the buffers.
type Emitter struct {
	ErrorType ErrorType
	Problem   string

	write_handler writeHandler

	output_buffer *[]byte
	output_writer io.Writer

	buffer     []byte
	buffer_pos int

	raw_buffer     []byte
	raw_buffer_pos int

	encoding Encoding

	canonical             bool
	jsonMode              bool
	jsonStrict            bool
	forceFlow             bool
	forceBlock            bool
	BestIndent            int
	best_width            int
	unicode               bool
	line_break            LineBreak
	compact_sequence_indent bool
	CompactSequenceIndent  bool

	state  EmitterState
	states []EmitterState

	events      []Event
	events_head int

	indents []int

	tag_directives []TagDirective

	indent int

	flow_level int

	root_context        bool
	sequence_context    bool
	mapping_context     bool
	simple_key_context  bool

	line       int
	column     int
	whitespace bool
	indention  bool
	OpenEnded  bool

	space_above bool
	foot_indent int

	anchor_data struct {
		anchor []byte
		alias  bool
	}
	tag_data struct {
		handle []byte
		suffix []byte
	}
	scalar_data struct {
		value                 []byte
		multiline             bool
		flow_plain_allowed    bool
		block_plain_allowed   bool
		single_quoted_allowed bool
		block_allowed         bool
		style                 ScalarStyle
	}
}

// --- source reader (§4.1) -------------------------------------------------

// formatReaderError builds the ReaderError kind (§7) for a byte sequence
// that does not decode to a valid codepoint in the detected encoding.
func formatReaderError(problem string, offset, value int) error {
	return ReaderError{Offset: offset, Value: value, Err: errString(problem)}
}

type errString string

func (e errString) Error() string { return string(e) }

// determineEncoding inspects the first bytes of input for a BOM, defaulting
// to UTF-8 when none is recognized (§4.1). It must be called exactly once,
// before any buffer decoding, and is responsible for consuming (not just
// observing) a detected BOM.
func (parser *Parser) determineEncoding() error {
	for !parser.eof && parser.raw_buffer_pos >= len(parser.raw_buffer) {
		if err := parser.updateRawBuffer(); err != nil {
			return err
		}
	}

	raw := parser.raw_buffer[parser.raw_buffer_pos:]
	switch {
	// 4-byte BOMs are checked first since a UTF-32LE BOM (FF FE 00 00)
	// begins with the same two bytes as a UTF-16LE BOM (FF FE).
	case len(raw) >= 4 && raw[0] == 0xFF && raw[1] == 0xFE && raw[2] == 0x00 && raw[3] == 0x00:
		parser.encoding = UTF32LE_ENCODING
		parser.raw_buffer_pos += 4
		parser.offset += 4
	case len(raw) >= 4 && raw[0] == 0x00 && raw[1] == 0x00 && raw[2] == 0xFE && raw[3] == 0xFF:
		parser.encoding = UTF32BE_ENCODING
		parser.raw_buffer_pos += 4
		parser.offset += 4
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		parser.encoding = UTF16BE_ENCODING
		parser.raw_buffer_pos += 2
		parser.offset += 2
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		parser.encoding = UTF16LE_ENCODING
		parser.raw_buffer_pos += 2
		parser.offset += 2
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		parser.encoding = UTF8_ENCODING
		parser.raw_buffer_pos += 3
		parser.offset += 3
	// No BOM: fall back to the zero-byte pattern of the stream's first
	// character, which for any in-range YAML document is ASCII and so
	// carries at least one zero byte per 16- or 32-bit code unit.
	case len(raw) >= 4 && raw[0] == 0x00 && raw[1] == 0x00 && raw[2] == 0x00 && raw[3] != 0x00:
		parser.encoding = UTF32BE_ENCODING
	case len(raw) >= 4 && raw[0] != 0x00 && raw[1] == 0x00 && raw[2] == 0x00 && raw[3] == 0x00:
		parser.encoding = UTF32LE_ENCODING
	case len(raw) >= 2 && raw[0] == 0x00 && raw[1] != 0x00:
		parser.encoding = UTF16BE_ENCODING
	case len(raw) >= 2 && raw[0] != 0x00 && raw[1] == 0x00:
		parser.encoding = UTF16LE_ENCODING
	default:
		parser.encoding = UTF8_ENCODING
	}
	return nil
}

// updateRawBuffer reads more bytes from the input source into raw_buffer,
// compacting already-consumed bytes out first.
func (parser *Parser) updateRawBuffer() error {
	if parser.raw_buffer_pos > 0 && parser.raw_buffer_pos < len(parser.raw_buffer) {
		copy(parser.raw_buffer, parser.raw_buffer[parser.raw_buffer_pos:])
	}
	if parser.raw_buffer_pos > 0 {
		parser.raw_buffer = parser.raw_buffer[:len(parser.raw_buffer)-parser.raw_buffer_pos]
		parser.raw_buffer_pos = 0
	}

	if parser.read_handler == nil {
		parser.eof = true
		return nil
	}

	start := len(parser.raw_buffer)
	free := cap(parser.raw_buffer) - start
	if free <= 0 {
		free = input_raw_buffer_size
	}
	parser.raw_buffer = parser.raw_buffer[:start+free]
	n, err := parser.read_handler(parser, parser.raw_buffer[start:])
	parser.raw_buffer = parser.raw_buffer[:start+n]
	if n == 0 {
		if err == io.EOF || err == nil {
			parser.eof = true
			return nil
		}
		return formatReaderError(err.Error(), parser.offset, 0)
	}
	return nil
}

// updateBuffer ensures at least length decoded characters are available in
// buffer starting at buffer_pos, transcoding more of raw_buffer to UTF-8 as
// needed (§4.1). Once the source is exhausted it appends a single trailing
// NUL sentinel and stops growing the buffer further; it never returns an
// error once EOF is reached, only on a genuine decode failure.
func (parser *Parser) updateBuffer(length int) error {
	if parser.read_handler == nil && len(parser.input) == 0 && parser.input_reader == nil {
		panic("input was not set")
	}

	if parser.encoding == ANY_ENCODING {
		if err := parser.determineEncoding(); err != nil {
			return err
		}
	}

	if parser.buffer_pos+length <= len(parser.buffer) {
		return nil
	}

	// Compact the buffer, dropping already-consumed bytes.
	if parser.buffer_pos > 0 {
		rest := parser.buffer[parser.buffer_pos:]
		hadSentinel := len(rest) > 0 && rest[len(rest)-1] == 0 && parser.eof
		copy(parser.buffer, rest)
		parser.buffer = parser.buffer[:len(rest)]
		parser.buffer_pos = 0
		_ = hadSentinel
	}

	for parser.buffer_pos+length > len(parser.buffer) {
		if parser.eof {
			if len(parser.buffer) == 0 || parser.buffer[len(parser.buffer)-1] != 0 {
				parser.buffer = append(parser.buffer, 0)
			}
			return nil
		}
		if parser.raw_buffer_pos >= len(parser.raw_buffer) {
			if err := parser.updateRawBuffer(); err != nil {
				return err
			}
			if parser.eof {
				continue
			}
		}
		if err := parser.decodeOneCharacter(); err != nil {
			return err
		}
	}
	return nil
}

// decodeOneCharacter transcodes a single source character from raw_buffer
// (in parser.encoding) and appends its UTF-8 bytes to buffer, normalizing
// CR/CRLF/LF to a single LF.
func (parser *Parser) decodeOneCharacter() error {
	raw := parser.raw_buffer[parser.raw_buffer_pos:]

	var r rune
	var rawWidth int

	switch parser.encoding {
	case UTF32LE_ENCODING, UTF32BE_ENCODING:
		if len(raw) < 4 {
			if err := parser.updateRawBuffer(); err != nil {
				return err
			}
			if parser.eof {
				return nil
			}
			raw = parser.raw_buffer[parser.raw_buffer_pos:]
			if len(raw) < 4 {
				return formatReaderError("incomplete UTF-32 character at end of stream", parser.offset, 0)
			}
		}
		var v uint32
		if parser.encoding == UTF32LE_ENCODING {
			v = uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
		} else {
			v = uint32(raw[3]) | uint32(raw[2])<<8 | uint32(raw[1])<<16 | uint32(raw[0])<<24
		}
		rawWidth = 4
		if v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
			return formatReaderError("invalid UTF-32 codepoint", parser.offset, int(v))
		}
		r = rune(v)
	case UTF16LE_ENCODING, UTF16BE_ENCODING:
		if len(raw) < 2 {
			if err := parser.updateRawBuffer(); err != nil {
				return err
			}
			if parser.eof {
				return nil
			}
			raw = parser.raw_buffer[parser.raw_buffer_pos:]
			if len(raw) < 2 {
				return formatReaderError("incomplete UTF-16 character at end of stream", parser.offset, 0)
			}
		}
		var hi uint16
		if parser.encoding == UTF16LE_ENCODING {
			hi = uint16(raw[0]) | uint16(raw[1])<<8
		} else {
			hi = uint16(raw[1]) | uint16(raw[0])<<8
		}
		rawWidth = 2
		if utf16.IsSurrogate(rune(hi)) {
			for len(raw) < 4 {
				if err := parser.updateRawBuffer(); err != nil {
					return err
				}
				if parser.eof {
					return formatReaderError("incomplete UTF-16 surrogate pair at end of stream", parser.offset, int(hi))
				}
				raw = parser.raw_buffer[parser.raw_buffer_pos:]
			}
			var lo uint16
			if parser.encoding == UTF16LE_ENCODING {
				lo = uint16(raw[2]) | uint16(raw[3])<<8
			} else {
				lo = uint16(raw[3]) | uint16(raw[2])<<8
			}
			r = utf16.DecodeRune(rune(hi), rune(lo))
			if r == utf8.RuneError {
				return formatReaderError("invalid UTF-16 surrogate pair", parser.offset, int(hi))
			}
			rawWidth = 4
		} else {
			r = rune(hi)
		}
	default: // UTF8_ENCODING and ANY_ENCODING already resolved to UTF-8
		if len(raw) == 0 {
			if err := parser.updateRawBuffer(); err != nil {
				return err
			}
			if parser.eof {
				return nil
			}
			raw = parser.raw_buffer[parser.raw_buffer_pos:]
		}
		w := width(raw[0])
		if w == 0 {
			return formatReaderError("invalid UTF-8 leading byte", parser.offset, int(raw[0]))
		}
		for len(raw) < w {
			if err := parser.updateRawBuffer(); err != nil {
				return err
			}
			if parser.eof {
				return formatReaderError("incomplete UTF-8 character at end of stream", parser.offset, int(raw[0]))
			}
			raw = parser.raw_buffer[parser.raw_buffer_pos:]
		}
		decoded, size := utf8.DecodeRune(raw[:w])
		if decoded == utf8.RuneError && size <= 1 {
			return formatReaderError("invalid UTF-8 byte sequence", parser.offset, int(raw[0]))
		}
		r = decoded
		rawWidth = w
	}

	parser.raw_buffer_pos += rawWidth
	parser.offset += rawWidth

	switch {
	case r == '\r':
		// Peek ahead for CRLF; if the low surrogate of the pair isn't yet
		// buffered this falls back to treating the CR alone as a break,
		// which still normalizes correctly on the next call.
		if len(parser.raw_buffer[parser.raw_buffer_pos:]) >= crlfLookahead(parser.encoding) {
			if isRawLF(parser.raw_buffer[parser.raw_buffer_pos:], parser.encoding) {
				parser.raw_buffer_pos += crlfLookahead(parser.encoding)
				parser.offset += crlfLookahead(parser.encoding)
			}
		}
		parser.buffer = append(parser.buffer, '\n')
		parser.newlines++
	case r == '\n':
		parser.buffer = append(parser.buffer, '\n')
		parser.newlines++
	case r == 0x85, r == 0x2028, r == 0x2029:
		// NEL and Unicode line/paragraph separators pass through as-is;
		// only ASCII CR/LF are normalized per §4.1.
		parser.buffer = utf8.AppendRune(parser.buffer, r)
	default:
		parser.buffer = utf8.AppendRune(parser.buffer, r)
	}
	return nil
}

// crlfLookahead returns how many raw bytes a line-feed following a
// carriage return occupies in the given encoding.
func crlfLookahead(encoding Encoding) int {
	switch encoding {
	case UTF32LE_ENCODING, UTF32BE_ENCODING:
		return 4
	case UTF16LE_ENCODING, UTF16BE_ENCODING:
		return 2
	default:
		return 1
	}
}

func isRawLF(raw []byte, encoding Encoding) bool {
	switch encoding {
	case UTF32LE_ENCODING:
		return len(raw) >= 4 && raw[0] == '\n' && raw[1] == 0 && raw[2] == 0 && raw[3] == 0
	case UTF32BE_ENCODING:
		return len(raw) >= 4 && raw[0] == 0 && raw[1] == 0 && raw[2] == 0 && raw[3] == '\n'
	case UTF16LE_ENCODING:
		return len(raw) >= 2 && raw[0] == '\n' && raw[1] == 0
	case UTF16BE_ENCODING:
		return len(raw) >= 2 && raw[0] == 0 && raw[1] == '\n'
	default:
		return len(raw) >= 1 && raw[0] == '\n'
	}
}

// fetchStreamStart emits the mandatory leading STREAM-START token (§3: a
// stream always begins with stream-start/ends with stream-end). It is the
// lexer's very first action, gated on stream_start_produced so it runs
// exactly once.
func (parser *Parser) fetchStreamStart() error {
	if err := parser.updateBuffer(1); err != nil {
		return err
	}
	parser.indent = -1
	parser.stream_start_produced = true
	parser.simple_key_allowed = true
	token := Token{
		Type:      STREAM_START_TOKEN,
		StartMark: parser.mark,
		EndMark:   parser.mark,
		encoding:  parser.encoding,
	}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

// --- writer sink (§4.5) ---------------------------------------------------

// flush drains the emitter's output buffer to its write_handler. Output is
// always UTF-8; SetEncoding only governs whether a BOM is written, matching
// the emitter's writeBom, which writes the fixed 3-byte UTF-8 BOM regardless
// of the requested encoding.
func (emitter *Emitter) flush() bool {
	if emitter.write_handler == nil {
		panic("output was not set")
	}
	if err := emitter.write_handler(emitter, emitter.buffer[:emitter.buffer_pos]); err != nil {
		emitter.ErrorType = WRITER_ERROR
		emitter.Problem = err.Error()
		return false
	}
	emitter.buffer_pos = 0
	return true
}
