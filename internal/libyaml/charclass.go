// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Byte-level character classification shared by the reader and lexer.
// Every predicate here takes the decoded UTF-8 working buffer and an index
// into it, and looks only at the byte(s) starting at that index — this
// mirrors how libyaml-derived scanners classify without allocating a rune
// per lookahead.

package libyaml

import "unicode/utf8"

// width returns the number of bytes a UTF-8 encoded character occupies,
// given its leading byte.
func width(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	}
	return 0
}

func isZeroChar(b []byte, i int) bool {
	return i < len(b) && b[i] == 0
}

func isBOM(b []byte, i int) bool {
	return i+2 < len(b) && b[i] == 0xEF && b[i+1] == 0xBB && b[i+2] == 0xBF
}

func isSpace(b []byte, i int) bool {
	return i < len(b) && b[i] == ' '
}

func isSpaceOrZero(b []byte, i int) bool {
	return isSpace(b, i) || isZeroChar(b, i)
}

func isTab(b []byte, i int) bool {
	return i < len(b) && b[i] == '\t'
}

func isBlank(b []byte, i int) bool {
	return isSpace(b, i) || isTab(b, i)
}

func isBlankOrZero(b []byte, i int) bool {
	return isBlank(b, i) || isZeroChar(b, i)
}

func isCRLF(b []byte, i int) bool {
	return i+1 < len(b) && b[i] == '\r' && b[i+1] == '\n'
}

func isLineBreak(b []byte, i int) bool {
	return i < len(b) && (b[i] == '\r' || b[i] == '\n')
}

func isBreakOrZero(b []byte, i int) bool {
	return isLineBreak(b, i) || isZeroChar(b, i)
}

func isDigit(b []byte, i int) bool {
	return i < len(b) && b[i] >= '0' && b[i] <= '9'
}

func asDigit(b []byte, i int) int {
	return int(b[i]) - '0'
}

func isHex(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	c := b[i]
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func asHex(b []byte, i int) int {
	c := b[i]
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isAlpha(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	c := b[i]
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '-'
}

func isASCII(b []byte, i int) bool {
	return i < len(b) && b[i] < 0x80
}

// isPrintable reports whether the codepoint starting at i is printable per
// the YAML 1.2 [nb-char] production: tab, line breaks, the printable ASCII
// range, NEL, and the rest of Unicode excluding C0/C1 controls and
// surrogates/non-characters.
func isPrintable(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	c := b[i]
	if c < 0x80 {
		return c == 0x09 || c == 0x0A || c == 0x0D || (c >= 0x20 && c < 0x7F)
	}
	r, _ := utf8.DecodeRune(b[i:])
	if r == utf8.RuneError {
		return false
	}
	switch {
	case r == 0x85:
		return true
	case r >= 0xA0 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD && r != 0xFEFF:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// isFlowIndicator reports whether the byte at i is one of the indicators
// that only end a plain scalar inside flow context: , [ ] { }
func isFlowIndicator(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	switch b[i] {
	case ',', '[', ']', '{', '}':
		return true
	}
	return false
}

// isAnchorChar reports whether the byte at i may appear in an anchor or
// alias name: any printable, non-blank, non-zero character that isn't a
// flow indicator.
func isAnchorChar(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	if isBlankOrZero(b, i) || isLineBreak(b, i) || isFlowIndicator(b, i) {
		return false
	}
	return isPrintable(b, i)
}

// isColon reports whether the byte at i is a bare ':'.
func isColon(b []byte, i int) bool {
	return i < len(b) && b[i] == ':'
}

// isTagURIChar reports whether the byte at i may appear literally (i.e.
// without a %HH escape) in a tag suffix or verbatim tag URI. In verbatim
// mode, '[', ']', and ',' are permitted since a verbatim tag isn't
// terminated by flow indicators.
func isTagURIChar(b []byte, i int, verbatim bool) bool {
	if i >= len(b) {
		return false
	}
	c := b[i]
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	}
	switch c {
	case '-', '#', ';', '/', '?', ':', '@', '&', '=', '+', '$', ',', '_', '.', '!', '~', '*', '\'', '(', ')':
		if (c == ',' || c == '[' || c == ']') && !verbatim {
			return false
		}
		return true
	case '[', ']':
		return verbatim
	}
	return false
}
