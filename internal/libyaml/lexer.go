// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The lexer: consumes the reader's decoded buffer and produces the token
// stream the parser drives (§4.2). Maintains the context-sensitive state
// that distinguishes directive, block, flow, quoted-scalar, and
// block-scalar modes, plus the indentation stack and simple-key table.

package libyaml

import (
	"strconv"
)

// simpleKeyMaxLength is the recommended upper bound (§9's Open Questions,
// resolved in SPEC_FULL.md §14) on a simple key candidate's length before it
// is disqualified rather than failing the parse outright.
const simpleKeyMaxLength = 1024

// Scan produces the next lexical token. It is the lexer's entry point; the
// parser never touches the reader or the buffer directly.
func (parser *Parser) Scan(token *Token) error {
	if err := parser.fetchMoreTokens(); err != nil {
		return err
	}
	*token = parser.tokens[parser.tokens_head]
	parser.tokens_head++
	return nil
}

// fetchMoreTokens ensures at least one token is available in parser.tokens,
// fetching as many as needed to produce it (§4.4's "at least one event per
// call" contract rests on this doing the same for tokens).
func (parser *Parser) fetchMoreTokens() error {
	if parser.token_available {
		return nil
	}

	if !parser.stream_start_produced {
		return parser.fetchStreamStart()
	}

	if parser.stream_end_produced {
		return nil
	}

	// Check whether any stale possible simple keys must be removed.
	if err := parser.staleSimpleKeys(); err != nil {
		return err
	}

	if err := parser.updateBuffer(1); err != nil {
		return err
	}
	parser.skipToWhitespace()
	if err := parser.updateBuffer(4); err != nil {
		return err
	}

	if err := parser.scanToNextToken(); err != nil {
		return err
	}
	if err := parser.staleSimpleKeys(); err != nil {
		return err
	}
	if err := parser.unrollIndent(parser.mark.Column); err != nil {
		return err
	}
	if err := parser.updateBuffer(4); err != nil {
		return err
	}

	if isZeroChar(parser.buffer, parser.buffer_pos) {
		return parser.fetchStreamEnd()
	}
	if parser.mark.Column == 0 && parser.checkDirective() {
		return parser.fetchDirective()
	}
	if parser.mark.Column == 0 && parser.checkDocumentIndicator("---") {
		return parser.fetchDocumentIndicator(DOCUMENT_START_TOKEN)
	}
	if parser.mark.Column == 0 && parser.checkDocumentIndicator("...") {
		return parser.fetchDocumentIndicator(DOCUMENT_END_TOKEN)
	}

	c := parser.buffer[parser.buffer_pos]
	switch {
	case c == '[':
		return parser.fetchFlowCollectionStart(FLOW_SEQUENCE_START_TOKEN)
	case c == '{':
		return parser.fetchFlowCollectionStart(FLOW_MAPPING_START_TOKEN)
	case c == ']':
		return parser.fetchFlowCollectionEnd(FLOW_SEQUENCE_END_TOKEN)
	case c == '}':
		return parser.fetchFlowCollectionEnd(FLOW_MAPPING_END_TOKEN)
	case c == ',':
		return parser.fetchFlowEntry()
	case c == '-' && isBlankOrZero(parser.buffer, parser.buffer_pos+1):
		return parser.fetchBlockEntry()
	case c == '?' && (parser.flow_level > 0 || isBlankOrZero(parser.buffer, parser.buffer_pos+1)):
		return parser.fetchKey()
	case c == ':' && (parser.flow_level > 0 || isBlankOrZero(parser.buffer, parser.buffer_pos+1)):
		return parser.fetchValue()
	case c == '*':
		return parser.fetchAnchor(ALIAS_TOKEN)
	case c == '&':
		return parser.fetchAnchor(ANCHOR_TOKEN)
	case c == '!':
		return parser.fetchTag()
	case c == '|' && parser.flow_level == 0:
		return parser.fetchBlockScalar(true)
	case c == '>' && parser.flow_level == 0:
		return parser.fetchBlockScalar(false)
	case c == '\'':
		return parser.fetchFlowScalar(true)
	case c == '"':
		return parser.fetchFlowScalar(false)
	case parser.checkPlainScalar():
		return parser.fetchPlainScalar()
	}

	return parser.setScannerError("while scanning for the next token", parser.mark,
		"found character that cannot start any token")
}

func (parser *Parser) setScannerError(context string, mark Mark, problem string) error {
	return ScannerError(newMarkedErrorContext(context, parser.mark, problem, mark))
}

// --- low level cursor helpers over the reader's working buffer -----------

func (parser *Parser) skipToWhitespace() {
	// no-op placeholder retained for readability of fetchMoreTokens' steps;
	// actual blank/comment/line-break skipping happens in scanToNextToken.
}

func (parser *Parser) skip() {
	w := width(parser.buffer[parser.buffer_pos])
	if w == 0 {
		w = 1
	}
	parser.mark.Index++
	parser.mark.Column++
	parser.buffer_pos += w
}

func (parser *Parser) skipLine() {
	if isCRLF(parser.buffer, parser.buffer_pos) {
		parser.mark.Index += 2
		parser.mark.Column = 0
		parser.mark.Line++
		parser.buffer_pos += 2
	} else if isLineBreak(parser.buffer, parser.buffer_pos) {
		parser.mark.Index++
		parser.mark.Column = 0
		parser.mark.Line++
		parser.buffer_pos++
	}
}

// scanToNextToken skips whitespace, line breaks, and comments until the
// buffer is positioned at the start of the next token, handling the BOM
// that may appear at the start of any line and the indentation bookkeeping
// for the simple-key table.
func (parser *Parser) scanToNextToken() error {
	for {
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		if parser.mark.Column == 0 && isBOM(parser.buffer, parser.buffer_pos) {
			parser.skip()
		}
		if err := parser.updateBuffer(2); err != nil {
			return err
		}
		for isSpace(parser.buffer, parser.buffer_pos) ||
			(parser.flow_level == 0 && parser.mark.Column < parser.indent+1 && false) {
			parser.skip()
			if err := parser.updateBuffer(1); err != nil {
				return err
			}
		}
		if err := parser.updateBuffer(2); err != nil {
			return err
		}
		if parser.buffer[parser.buffer_pos] == '#' {
			for !isBreakOrZero(parser.buffer, parser.buffer_pos) {
				parser.skip()
				if err := parser.updateBuffer(1); err != nil {
					return err
				}
			}
		}
		if !isBreakOrZero(parser.buffer, parser.buffer_pos) {
			break
		}
		if err := parser.updateBuffer(2); err != nil {
			return err
		}
		if isLineBreak(parser.buffer, parser.buffer_pos) {
			parser.skipLine()
			if parser.flow_level == 0 {
				parser.simple_key_allowed = true
			}
		} else {
			break
		}
	}
	return nil
}

// --- indentation / BLOCK_END bookkeeping ----------------------------------

func (parser *Parser) rollIndent(column, number int, typ TokenType, mark Mark) {
	if parser.flow_level > 0 {
		return
	}
	if parser.indent < column {
		parser.indents = append(parser.indents, parser.indent)
		parser.indent = column
		token := Token{Type: typ, StartMark: mark, EndMark: mark}
		parser.insertToken(number, &token)
	}
}

func (parser *Parser) unrollIndent(column int) error {
	if parser.flow_level > 0 {
		return nil
	}
	for parser.indent > column {
		mark := parser.mark
		parser.indent = parser.indents[len(parser.indents)-1]
		parser.indents = parser.indents[:len(parser.indents)-1]
		token := Token{Type: BLOCK_END_TOKEN, StartMark: mark, EndMark: mark}
		parser.tokens = append(parser.tokens, token)
		parser.token_available = true
	}
	return nil
}

// --- simple key tracking ---------------------------------------------------

func (parser *Parser) saveSimpleKey() error {
	required := parser.flow_level == 0 && parser.indent == parser.mark.Column
	if parser.simple_key_allowed {
		key := yamlSimpleKey{
			possible:      true,
			required:      required,
			token_number:  parser.tokens_parsed + len(parser.tokens) - parser.tokens_head,
			mark:          parser.mark,
		}
		if err := parser.removeSimpleKey(); err != nil {
			return err
		}
		parser.simple_keys = append(parser.simple_keys, key)
	}
	return nil
}

func (parser *Parser) removeSimpleKey() error {
	if len(parser.simple_keys) == 0 {
		return nil
	}
	key := &parser.simple_keys[len(parser.simple_keys)-1]
	if key.possible && key.required {
		return parser.setScannerError("while scanning a simple key", key.mark,
			"could not find expected ':'")
	}
	key.possible = false
	return nil
}

// staleSimpleKeys discards simple-key candidates that can no longer be
// promoted: those on an earlier line (block context), or that have grown
// past simpleKeyMaxLength.
func (parser *Parser) staleSimpleKeys() error {
	for i := range parser.simple_keys {
		key := &parser.simple_keys[i]
		if key.possible && (key.mark.Line < parser.mark.Line ||
			parser.mark.Index-key.mark.Index > simpleKeyMaxLength) {
			if key.required {
				return parser.setScannerError("while scanning a simple key", key.mark,
					"could not find expected ':'")
			}
			key.possible = false
		}
	}
	return nil
}

func (parser *Parser) increaseFlowLevel() error {
	parser.simple_keys = append(parser.simple_keys, yamlSimpleKey{})
	parser.flow_level++
	return nil
}

func (parser *Parser) decreaseFlowLevel() {
	if parser.flow_level > 0 {
		parser.flow_level--
		parser.simple_keys = parser.simple_keys[:len(parser.simple_keys)-1]
	}
}

// --- token fetchers ---------------------------------------------------------

func (parser *Parser) fetchStreamEnd() error {
	parser.indent = -1
	parser.indents = nil
	parser.simple_key_allowed = false
	parser.simple_keys = nil
	parser.stream_end_produced = true
	token := Token{Type: STREAM_END_TOKEN, StartMark: parser.mark, EndMark: parser.mark}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) checkDirective() bool {
	return parser.buffer[parser.buffer_pos] == '%'
}

func (parser *Parser) checkDocumentIndicator(what string) bool {
	if err := parser.updateBuffer(4); err != nil {
		return false
	}
	pos := parser.buffer_pos
	if pos+3 > len(parser.buffer) {
		return false
	}
	if string(parser.buffer[pos:pos+3]) != what {
		return false
	}
	return isBlankOrZero(parser.buffer, pos+3)
}

func (parser *Parser) fetchDocumentIndicator(typ TokenType) error {
	if err := parser.unrollIndent(-1); err != nil {
		return err
	}
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false
	start := parser.mark
	parser.skip()
	parser.skip()
	parser.skip()
	token := Token{Type: typ, StartMark: start, EndMark: parser.mark}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchFlowCollectionStart(typ TokenType) error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	if err := parser.increaseFlowLevel(); err != nil {
		return err
	}
	parser.simple_key_allowed = true
	start := parser.mark
	parser.skip()
	token := Token{Type: typ, StartMark: start, EndMark: parser.mark}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchFlowCollectionEnd(typ TokenType) error {
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.decreaseFlowLevel()
	parser.simple_key_allowed = false
	start := parser.mark
	parser.skip()
	token := Token{Type: typ, StartMark: start, EndMark: parser.mark}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchFlowEntry() error {
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = true
	start := parser.mark
	parser.skip()
	token := Token{Type: FLOW_ENTRY_TOKEN, StartMark: start, EndMark: parser.mark}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchBlockEntry() error {
	if parser.flow_level == 0 {
		if !parser.simple_key_allowed {
			return parser.setScannerError("", parser.mark, "block sequence entries are not allowed in this context")
		}
		parser.rollIndent(parser.mark.Column, -1, BLOCK_SEQUENCE_START_TOKEN, parser.mark)
	}
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = true
	start := parser.mark
	parser.skip()
	token := Token{Type: BLOCK_ENTRY_TOKEN, StartMark: start, EndMark: parser.mark}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchKey() error {
	if parser.flow_level == 0 {
		if !parser.simple_key_allowed {
			return parser.setScannerError("", parser.mark, "mapping keys are not allowed in this context")
		}
		parser.rollIndent(parser.mark.Column, -1, BLOCK_MAPPING_START_TOKEN, parser.mark)
	}
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = parser.flow_level == 0
	start := parser.mark
	parser.skip()
	token := Token{Type: KEY_TOKEN, StartMark: start, EndMark: parser.mark}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchValue() error {
	if len(parser.simple_keys) > 0 {
		key := parser.simple_keys[len(parser.simple_keys)-1]
		if key.possible {
			token := Token{Type: KEY_TOKEN, StartMark: key.mark, EndMark: key.mark}
			parser.insertToken(key.token_number-parser.tokens_parsed, &token)
			if parser.flow_level == 0 {
				parser.rollIndent(key.mark.Column, key.token_number-parser.tokens_parsed, BLOCK_MAPPING_START_TOKEN, key.mark)
			}
			parser.simple_keys[len(parser.simple_keys)-1].possible = false
			parser.simple_key_allowed = false
			start := parser.mark
			parser.skip()
			vtoken := Token{Type: VALUE_TOKEN, StartMark: start, EndMark: parser.mark}
			parser.tokens = append(parser.tokens, vtoken)
			parser.token_available = true
			return nil
		}
	}
	if parser.flow_level == 0 {
		if !parser.simple_key_allowed {
			return parser.setScannerError("", parser.mark, "mapping values are not allowed in this context")
		}
	}
	parser.simple_key_allowed = parser.flow_level == 0
	start := parser.mark
	parser.skip()
	token := Token{Type: VALUE_TOKEN, StartMark: start, EndMark: parser.mark}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchAnchor(typ TokenType) error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false
	start := parser.mark
	parser.skip()
	var value []byte
	for isAnchorChar(parser.buffer, parser.buffer_pos) {
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		value = append(value, parser.buffer[parser.buffer_pos])
		parser.skip()
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
	}
	if len(value) == 0 {
		return parser.setScannerError("while scanning an anchor or alias", start, "did not find expected alphabetic or numeric character")
	}
	token := Token{Type: typ, StartMark: start, EndMark: parser.mark, Value: value}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchTag() error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false
	start := parser.mark
	var handle, suffix []byte

	if err := parser.updateBuffer(2); err != nil {
		return err
	}
	if parser.buffer[parser.buffer_pos+1] == '<' {
		parser.skip()
		parser.skip()
		for !isBlankOrZero(parser.buffer, parser.buffer_pos) && parser.buffer[parser.buffer_pos] != '>' {
			if err := parser.scanURIChar(&suffix, true); err != nil {
				return err
			}
		}
		if parser.buffer[parser.buffer_pos] != '>' {
			return parser.setScannerError("while scanning a tag", start, "did not find the expected '>'")
		}
		parser.skip()
	} else {
		handle = append(handle, '!')
		parser.skip()
		for isAlpha(parser.buffer, parser.buffer_pos) {
			if err := parser.updateBuffer(1); err != nil {
				return err
			}
			handle = append(handle, parser.buffer[parser.buffer_pos])
			parser.skip()
		}
		if parser.buffer_pos < len(parser.buffer) && parser.buffer[parser.buffer_pos] == '!' {
			handle = append(handle, '!')
			parser.skip()
		} else if len(handle) > 1 {
			// !name without trailing ! is a shorthand with empty handle "!"
			// and the scanned run is actually the suffix.
			suffix = append(suffix, handle[1:]...)
			handle = []byte{'!'}
		}
		for !isBlankOrZero(parser.buffer, parser.buffer_pos) {
			if err := parser.scanURIChar(&suffix, false); err != nil {
				return err
			}
		}
	}
	token := Token{Type: TAG_TOKEN, StartMark: start, EndMark: parser.mark, Value: handle, suffix: suffix}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) scanURIChar(dst *[]byte, verbatim bool) error {
	if err := parser.updateBuffer(1); err != nil {
		return err
	}
	if parser.buffer[parser.buffer_pos] == '%' {
		parser.skip()
		if err := parser.updateBuffer(2); err != nil {
			return err
		}
		if !isHex(parser.buffer, parser.buffer_pos) || !isHex(parser.buffer, parser.buffer_pos+1) {
			return parser.setScannerError("while parsing a tag", parser.mark, "did not find URI escape sequence")
		}
		b := asHex(parser.buffer, parser.buffer_pos)*16 + asHex(parser.buffer, parser.buffer_pos+1)
		*dst = append(*dst, byte(b))
		parser.skip()
		parser.skip()
		return nil
	}
	if !isTagURIChar(parser.buffer, parser.buffer_pos, verbatim) {
		return parser.setScannerError("while parsing a tag", parser.mark, "did not find expected tag URI character")
	}
	*dst = append(*dst, parser.buffer[parser.buffer_pos])
	parser.skip()
	return nil
}

// fetchDirective scans a %YAML or %TAG directive, or an unknown directive
// whose parameters are consumed verbatim to end of line (§4.2).
func (parser *Parser) fetchDirective() error {
	if err := parser.unrollIndent(-1); err != nil {
		return err
	}
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	start := parser.mark
	parser.skip() // '%'

	var name []byte
	for isAlpha(parser.buffer, parser.buffer_pos) {
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		name = append(name, parser.buffer[parser.buffer_pos])
		parser.skip()
	}

	var token Token
	switch string(name) {
	case "YAML":
		t, err := parser.scanVersionDirectiveValue(start)
		if err != nil {
			return err
		}
		token = t
	case "TAG":
		t, err := parser.scanTagDirectiveValue(start)
		if err != nil {
			return err
		}
		token = t
	default:
		for !isBreakOrZero(parser.buffer, parser.buffer_pos) {
			parser.skip()
			if err := parser.updateBuffer(1); err != nil {
				return err
			}
		}
		token = Token{Type: TAG_DIRECTIVE_TOKEN, StartMark: start, EndMark: parser.mark, Value: append([]byte(nil), name...)}
	}

	if err := parser.scanDirectiveLineEnd(start); err != nil {
		return err
	}
	token.EndMark = parser.mark
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) scanDirectiveLineEnd(start Mark) error {
	for isBlank(parser.buffer, parser.buffer_pos) {
		parser.skip()
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
	}
	if parser.buffer[parser.buffer_pos] == '#' {
		for !isBreakOrZero(parser.buffer, parser.buffer_pos) {
			parser.skip()
			if err := parser.updateBuffer(1); err != nil {
				return err
			}
		}
	}
	if !isBreakOrZero(parser.buffer, parser.buffer_pos) {
		return parser.setScannerError("while scanning a directive", start, "did not find expected comment or line break")
	}
	return nil
}

func (parser *Parser) scanVersionDirectiveValue(start Mark) (Token, error) {
	for isBlank(parser.buffer, parser.buffer_pos) {
		parser.skip()
		if err := parser.updateBuffer(1); err != nil {
			return Token{}, err
		}
	}
	major, err := parser.scanVersionDirectiveNumber(start)
	if err != nil {
		return Token{}, err
	}
	if parser.buffer[parser.buffer_pos] != '.' {
		return Token{}, parser.setScannerError("while scanning a %YAML directive", start, "did not find expected digit or '.' character")
	}
	parser.skip()
	minor, err := parser.scanVersionDirectiveNumber(start)
	if err != nil {
		return Token{}, err
	}
	return Token{Type: VERSION_DIRECTIVE_TOKEN, StartMark: start, major: int8(major), minor: int8(minor)}, nil
}

func (parser *Parser) scanVersionDirectiveNumber(start Mark) (int, error) {
	var digits []byte
	for isDigit(parser.buffer, parser.buffer_pos) {
		if err := parser.updateBuffer(1); err != nil {
			return 0, err
		}
		digits = append(digits, parser.buffer[parser.buffer_pos])
		parser.skip()
		if len(digits) > 9 {
			return 0, parser.setScannerError("while scanning a %YAML directive", start, "found extremely long version number")
		}
	}
	if len(digits) == 0 {
		return 0, parser.setScannerError("while scanning a %YAML directive", start, "did not find expected version number")
	}
	n, _ := strconv.Atoi(string(digits))
	return n, nil
}

func (parser *Parser) scanTagDirectiveValue(start Mark) (Token, error) {
	for isBlank(parser.buffer, parser.buffer_pos) {
		parser.skip()
		if err := parser.updateBuffer(1); err != nil {
			return Token{}, err
		}
	}
	var handle []byte
	if parser.buffer[parser.buffer_pos] != '!' {
		return Token{}, parser.setScannerError("while scanning a %TAG directive", start, "did not find expected '!'")
	}
	handle = append(handle, '!')
	parser.skip()
	for isAlpha(parser.buffer, parser.buffer_pos) {
		if err := parser.updateBuffer(1); err != nil {
			return Token{}, err
		}
		handle = append(handle, parser.buffer[parser.buffer_pos])
		parser.skip()
	}
	if parser.buffer[parser.buffer_pos] == '!' {
		handle = append(handle, '!')
		parser.skip()
	}
	for isBlank(parser.buffer, parser.buffer_pos) {
		parser.skip()
		if err := parser.updateBuffer(1); err != nil {
			return Token{}, err
		}
	}
	var prefix []byte
	if parser.buffer[parser.buffer_pos] == '<' {
		parser.skip()
		for !isBlankOrZero(parser.buffer, parser.buffer_pos) && parser.buffer[parser.buffer_pos] != '>' {
			if err := parser.scanURIChar(&prefix, true); err != nil {
				return Token{}, err
			}
		}
		if parser.buffer[parser.buffer_pos] != '>' {
			return Token{}, parser.setScannerError("while scanning a %TAG directive", start, "did not find the expected '>'")
		}
		parser.skip()
	} else {
		for !isBlankOrZero(parser.buffer, parser.buffer_pos) {
			if err := parser.scanURIChar(&prefix, false); err != nil {
				return Token{}, err
			}
		}
	}
	return Token{Type: TAG_DIRECTIVE_TOKEN, StartMark: start, Value: handle, prefix: prefix}, nil
}

// --- scalars -----------------------------------------------------------

func (parser *Parser) checkPlainScalar() bool {
	c := parser.buffer[parser.buffer_pos]
	if isBlankOrZero(parser.buffer, parser.buffer_pos) {
		return false
	}
	switch c {
	case '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		// '-', '?', ':' are only indicators when followed by blank/zero, or
		// (for ':') in flow context; all other cases plain scalars may
		// start with them.
		if c == '-' || c == '?' {
			return !isBlankOrZero(parser.buffer, parser.buffer_pos+1)
		}
		if c == ':' {
			return !isBlankOrZero(parser.buffer, parser.buffer_pos+1) && parser.flow_level == 0
		}
		return false
	}
	return true
}

func (parser *Parser) fetchPlainScalar() error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	start := parser.mark
	indent := parser.indent + 1
	var value []byte
	leadingBlanks := false
	var whitespaces, leadingBreak, trailingBreaks []byte

	for {
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		if parser.flow_level == 0 && parser.mark.Column < indent && !isBlankOrZero(parser.buffer, parser.buffer_pos) {
			// under-indented continuation line ends the scalar (handled by
			// the break below via column check at loop top).
		}
		for {
			if err := parser.updateBuffer(2); err != nil {
				return err
			}
			if isBreakOrZero(parser.buffer, parser.buffer_pos) {
				break
			}
			if parser.buffer[parser.buffer_pos] == ':' && isBlankOrZero(parser.buffer, parser.buffer_pos+1) {
				break
			}
			if parser.flow_level > 0 && (parser.buffer[parser.buffer_pos] == ':' && isFlowIndicator(parser.buffer, parser.buffer_pos+1)) {
				break
			}
			if parser.flow_level > 0 && isFlowIndicator(parser.buffer, parser.buffer_pos) {
				break
			}
			if parser.buffer[parser.buffer_pos] == '#' && len(whitespaces) > 0 {
				break
			}
			if isBlank(parser.buffer, parser.buffer_pos) {
				whitespaces = append(whitespaces, parser.buffer[parser.buffer_pos])
				parser.skip()
			} else {
				if len(whitespaces) > 0 {
					value = append(value, whitespaces...)
					whitespaces = whitespaces[:0]
				}
				value = append(value, parser.buffer[parser.buffer_pos])
				parser.skip()
			}
			if err := parser.updateBuffer(1); err != nil {
				return err
			}
		}

		if parser.flow_level == 0 && parser.mark.Column < indent {
			break
		}
		if !isBlank(parser.buffer, parser.buffer_pos) && !isLineBreak(parser.buffer, parser.buffer_pos) {
			break
		}

		for isBlank(parser.buffer, parser.buffer_pos) || isLineBreak(parser.buffer, parser.buffer_pos) {
			if isBlank(parser.buffer, parser.buffer_pos) {
				if leadingBlanks {
					parser.skip()
				} else {
					whitespaces = append(whitespaces, parser.buffer[parser.buffer_pos])
					parser.skip()
				}
			} else {
				if err := parser.updateBuffer(2); err != nil {
					return err
				}
				if !leadingBlanks {
					whitespaces = whitespaces[:0]
					leadingBreak = []byte{'\n'}
					leadingBlanks = true
				} else {
					trailingBreaks = append(trailingBreaks, '\n')
				}
				parser.skipLine()
			}
			if err := parser.updateBuffer(1); err != nil {
				return err
			}
		}

		if parser.flow_level == 0 && parser.mark.Column < indent {
			break
		}

		if leadingBlanks {
			if len(leadingBreak) > 0 && leadingBreak[0] == '\n' {
				if len(trailingBreaks) == 0 {
					value = append(value, ' ')
				} else {
					value = append(value, trailingBreaks...)
				}
			}
			leadingBlanks = false
			leadingBreak = nil
			trailingBreaks = trailingBreaks[:0]
		} else if len(whitespaces) > 0 {
			value = append(value, whitespaces...)
			whitespaces = whitespaces[:0]
		}
	}

	token := Token{Type: SCALAR_TOKEN, StartMark: start, EndMark: parser.mark, Value: value, Style: PLAIN_SCALAR_STYLE}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) fetchFlowScalar(single bool) error {
	if err := parser.saveSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = false

	start := parser.mark
	parser.skip() // opening quote
	var value []byte

	for {
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		if isZeroChar(parser.buffer, parser.buffer_pos) {
			return parser.setScannerError("while scanning a quoted scalar", start, "found unexpected end of stream")
		}
		if isBreakOrZero(parser.buffer, parser.buffer_pos) {
			if isLineBreak(parser.buffer, parser.buffer_pos) {
				parser.skipLine()
				value = append(value, ' ')
				continue
			}
			return parser.setScannerError("while scanning a quoted scalar", start, "found unexpected end of stream")
		}
		c := parser.buffer[parser.buffer_pos]
		if single && c == '\'' {
			if err := parser.updateBuffer(2); err != nil {
				return err
			}
			if parser.buffer_pos+1 < len(parser.buffer) && parser.buffer[parser.buffer_pos+1] == '\'' {
				value = append(value, '\'')
				parser.skip()
				parser.skip()
				continue
			}
			parser.skip()
			break
		}
		if !single && c == '"' {
			parser.skip()
			break
		}
		if !single && c == '\\' {
			parser.skip()
			if err := parser.updateBuffer(1); err != nil {
				return err
			}
			if isLineBreak(parser.buffer, parser.buffer_pos) {
				parser.skipLine()
				continue
			}
			b, err := parser.scanEscape(start)
			if err != nil {
				return err
			}
			value = append(value, b...)
			continue
		}
		value = append(value, c)
		parser.skip()
	}

	style := SINGLE_QUOTED_SCALAR_STYLE
	if !single {
		style = DOUBLE_QUOTED_SCALAR_STYLE
	}
	token := Token{Type: SCALAR_TOKEN, StartMark: start, EndMark: parser.mark, Value: value, Style: style}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}

func (parser *Parser) scanEscape(start Mark) ([]byte, error) {
	if err := parser.updateBuffer(1); err != nil {
		return nil, err
	}
	c := parser.buffer[parser.buffer_pos]
	simple := map[byte]byte{
		'0': 0, 'a': '\a', 'b': '\b', 't': '\t', 'n': '\n', 'v': '\v', 'f': '\f',
		'r': '\r', 'e': 0x1B, '"': '"', '\'': '\'', '\\': '\\', '/': '/',
		'N': 0, '_': 0, 'L': 0, 'P': 0,
	}
	wide := map[byte][]byte{
		'N': {0xC2, 0x85},
		'_': {0xC2, 0xA0},
		'L': {0xE2, 0x80, 0xA8},
		'P': {0xE2, 0x80, 0xA9},
	}
	if b, ok := wide[c]; ok {
		parser.skip()
		return b, nil
	}
	if _, ok := simple[c]; ok {
		parser.skip()
		return []byte{simple[c]}, nil
	}
	var hexLen int
	switch c {
	case 'x':
		hexLen = 2
	case 'u':
		hexLen = 4
	case 'U':
		hexLen = 8
	default:
		return nil, parser.setScannerError("while parsing a quoted scalar", start, "found unknown escape character")
	}
	parser.skip()
	var code rune
	for i := 0; i < hexLen; i++ {
		if err := parser.updateBuffer(1); err != nil {
			return nil, err
		}
		if !isHex(parser.buffer, parser.buffer_pos) {
			return nil, parser.setScannerError("while parsing a quoted scalar", start, "did not find expected hexadecimal number")
		}
		code = code*16 + rune(asHex(parser.buffer, parser.buffer_pos))
		parser.skip()
	}
	return []byte(string(code)), nil
}

// fetchBlockScalar scans a literal (|) or folded (>) block scalar,
// including its optional indentation digit and chomping indicator header
// (§4.2).
func (parser *Parser) fetchBlockScalar(literal bool) error {
	if err := parser.removeSimpleKey(); err != nil {
		return err
	}
	parser.simple_key_allowed = true

	start := parser.mark
	parser.skip() // '|' or '>'

	chomping := 0 // 0 = clip, 1 = strip, -1 = keep
	increment := 0
	if err := parser.updateBuffer(1); err != nil {
		return err
	}
	if parser.buffer[parser.buffer_pos] == '+' || parser.buffer[parser.buffer_pos] == '-' {
		if parser.buffer[parser.buffer_pos] == '+' {
			chomping = -1
		} else {
			chomping = 1
		}
		parser.skip()
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		if isDigit(parser.buffer, parser.buffer_pos) {
			increment = asDigit(parser.buffer, parser.buffer_pos)
			if increment == 0 {
				return parser.setScannerError("while scanning a block scalar", start, "found an indentation indicator equal to 0")
			}
			parser.skip()
		}
	} else if isDigit(parser.buffer, parser.buffer_pos) {
		increment = asDigit(parser.buffer, parser.buffer_pos)
		if increment == 0 {
			return parser.setScannerError("while scanning a block scalar", start, "found an indentation indicator equal to 0")
		}
		parser.skip()
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		if parser.buffer[parser.buffer_pos] == '+' || parser.buffer[parser.buffer_pos] == '-' {
			if parser.buffer[parser.buffer_pos] == '+' {
				chomping = -1
			} else {
				chomping = 1
			}
			parser.skip()
		}
	}

	if err := parser.scanDirectiveLineEnd(start); err != nil {
		return err
	}

	blockIndent := 0
	if increment > 0 {
		blockIndent = parser.indent + increment
		if blockIndent < 1 {
			blockIndent = 1
		}
	}

	var value []byte
	var trailingBreaks []byte
	lineIndent := 0
	sawNonEmptyLine := false

	for {
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		if !isLineBreak(parser.buffer, parser.buffer_pos) && !isZeroChar(parser.buffer, parser.buffer_pos) {
			break
		}
		if isLineBreak(parser.buffer, parser.buffer_pos) {
			parser.skipLine()
			trailingBreaks = append(trailingBreaks, '\n')
		}
		for i := 0; (blockIndent == 0 || i < blockIndent) && isSpace(parser.buffer, parser.buffer_pos); i++ {
			parser.skip()
		}
		if err := parser.updateBuffer(1); err != nil {
			return err
		}
		lineIndent = parser.mark.Column
		if blockIndent == 0 {
			if lineIndent > parser.indent {
				blockIndent = lineIndent
			} else if isBreakOrZero(parser.buffer, parser.buffer_pos) {
				continue
			} else {
				break
			}
		}
		if lineIndent < blockIndent {
			if isZeroChar(parser.buffer, parser.buffer_pos) {
				break
			}
			if !isLineBreak(parser.buffer, parser.buffer_pos) {
				return parser.setScannerError("while scanning a block scalar", start, "found a line that is less indented than the first")
			}
			continue
		}

		if !literal {
			if len(trailingBreaks) == 1 && sawNonEmptyLine {
				value = append(value, ' ')
			} else {
				value = append(value, trailingBreaks...)
			}
		} else {
			value = append(value, trailingBreaks...)
		}
		trailingBreaks = trailingBreaks[:0]
		sawNonEmptyLine = true

		for !isBreakOrZero(parser.buffer, parser.buffer_pos) {
			value = append(value, parser.buffer[parser.buffer_pos])
			parser.skip()
			if err := parser.updateBuffer(1); err != nil {
				return err
			}
		}
	}

	switch chomping {
	case 1: // strip
		// trailing breaks already excluded
	case -1: // keep
		value = append(value, trailingBreaks...)
	default: // clip
		if len(trailingBreaks) > 0 {
			value = append(value, '\n')
		}
	}

	style := LITERAL_SCALAR_STYLE
	if !literal {
		style = FOLDED_SCALAR_STYLE
	}
	token := Token{Type: SCALAR_TOKEN, StartMark: start, EndMark: parser.mark, Value: value, Style: style}
	parser.tokens = append(parser.tokens, token)
	parser.token_available = true
	return nil
}
