// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Tests for the scanner stage: input stream to token stream transformation,
// indentation handling, and simple keys.

package libyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAllTokens(t *testing.T, src string) []Token {
	t.Helper()
	parser := NewParser()
	parser.SetInputString([]byte(src))
	var tokens []Token
	for {
		var token Token
		require.NoError(t, parser.Scan(&token))
		tokens = append(tokens, token)
		if token.Type == STREAM_END_TOKEN {
			break
		}
	}
	return tokens
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanPlainMapping(t *testing.T) {
	tokens := scanAllTokens(t, "key: value\n")
	assert.Equal(t, []TokenType{
		STREAM_START_TOKEN,
		BLOCK_MAPPING_START_TOKEN,
		KEY_TOKEN,
		SCALAR_TOKEN,
		VALUE_TOKEN,
		SCALAR_TOKEN,
		BLOCK_END_TOKEN,
		STREAM_END_TOKEN,
	}, tokenTypes(tokens))
}

func TestScanBlockSequence(t *testing.T) {
	tokens := scanAllTokens(t, "- a\n- b\n")
	assert.Equal(t, []TokenType{
		STREAM_START_TOKEN,
		BLOCK_SEQUENCE_START_TOKEN,
		BLOCK_ENTRY_TOKEN,
		SCALAR_TOKEN,
		BLOCK_ENTRY_TOKEN,
		SCALAR_TOKEN,
		BLOCK_END_TOKEN,
		STREAM_END_TOKEN,
	}, tokenTypes(tokens))
}

func TestScanFlowSequence(t *testing.T) {
	tokens := scanAllTokens(t, "[1, 2, 3]\n")
	assert.Equal(t, []TokenType{
		STREAM_START_TOKEN,
		FLOW_SEQUENCE_START_TOKEN,
		SCALAR_TOKEN,
		FLOW_ENTRY_TOKEN,
		SCALAR_TOKEN,
		FLOW_ENTRY_TOKEN,
		SCALAR_TOKEN,
		FLOW_SEQUENCE_END_TOKEN,
		STREAM_END_TOKEN,
	}, tokenTypes(tokens))
}

func TestScanAnchorAndAlias(t *testing.T) {
	tokens := scanAllTokens(t, "a: &x 1\nb: *x\n")
	types := tokenTypes(tokens)
	assert.Contains(t, types, ANCHOR_TOKEN)
	assert.Contains(t, types, ALIAS_TOKEN)
}

func TestScanStreamStartCarriesEncoding(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("a: 1\n"))
	var token Token
	require.NoError(t, parser.Scan(&token))
	require.Equal(t, STREAM_START_TOKEN, token.Type)
	assert.Equal(t, UTF8_ENCODING, token.encoding)
}

func TestScanUnterminatedFlowSequenceErrors(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("[1, 2\n"))
	var err error
	var token Token
	for err == nil && token.Type != STREAM_END_TOKEN {
		err = parser.Scan(&token)
	}
	assert.Error(t, err)
}

func TestCharPredicates(t *testing.T) {
	cases := []struct {
		name string
		got  bool
		want bool
	}{
		{"isAlpha letter", isAlpha([]byte("a"), 0), true},
		{"isAlpha digit", isAlpha([]byte("5"), 0), true},
		{"isAlpha dash", isAlpha([]byte("-"), 0), true},
		{"isDigit", isDigit([]byte("5"), 0), true},
		{"isDigit non-digit", isDigit([]byte("x"), 0), false},
		{"isHex", isHex([]byte("f"), 0), true},
		{"isHex non-hex", isHex([]byte("g"), 0), false},
		{"isFlowIndicator bracket", isFlowIndicator([]byte("["), 0), true},
		{"isFlowIndicator plain", isFlowIndicator([]byte("a"), 0), false},
		{"isSpace", isSpace([]byte(" "), 0), true},
		{"isTab", isTab([]byte("\t"), 0), true},
		{"isBlank space", isBlank([]byte(" "), 0), true},
		{"isBlank tab", isBlank([]byte("\t"), 0), true},
		{"isLineBreak lf", isLineBreak([]byte("\n"), 0), true},
		{"isCRLF", isCRLF([]byte("\r\n"), 0), true},
		{"isZeroChar", isZeroChar([]byte{0}, 0), true},
		{"isBOM", isBOM([]byte{0xEF, 0xBB, 0xBF}, 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

func TestCharConversions(t *testing.T) {
	assert.Equal(t, 5, asDigit([]byte("5"), 0))
	assert.Equal(t, 10, asHex([]byte("a"), 0))
	assert.Equal(t, 15, asHex([]byte("F"), 0))
	assert.Equal(t, 1, width('a'))
	assert.Equal(t, 2, width(0xC2))
	assert.Equal(t, 3, width(0xE2))
	assert.Equal(t, 4, width(0xF0))
}
