// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReaderError(t *testing.T) {
	err := formatReaderError("invalid UTF-8 byte sequence", 4, 0xFF)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid UTF-8")
}

func TestDetermineEncodingDefaultsToUTF8(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("key: value\n"))
	require.NoError(t, parser.determineEncoding())
	assert.Equal(t, UTF8_ENCODING, parser.encoding)
}

func TestDetermineEncodingDetectsBOMs(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
		want  Encoding
	}{
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'a', ':', ' ', 'b'}, UTF8_ENCODING},
		{"utf16le bom", []byte{0xFF, 0xFE, 'a', 0, ':', 0}, UTF16LE_ENCODING},
		{"utf16be bom", []byte{0xFE, 0xFF, 0, 'a', 0, ':'}, UTF16BE_ENCODING},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parser := NewParser()
			parser.SetInputString(tc.input)
			require.NoError(t, parser.determineEncoding())
			assert.Equal(t, tc.want, parser.encoding)
		})
	}
}

func TestUpdateBufferDecodesUTF8(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("abc"))
	require.NoError(t, parser.updateBuffer(3))
	assert.Equal(t, "abc", string(parser.buffer[:3]))
}

func TestUpdateBufferAppendsSentinelAtEOF(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("ab"))
	require.NoError(t, parser.updateBuffer(8))
	assert.True(t, parser.eof)
	require.True(t, isZeroChar(parser.buffer, len(parser.buffer)-1))
}

func TestUpdateBufferNormalizesLineBreaks(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte("a\r\nb\rc\n"))
	require.NoError(t, parser.updateBuffer(16))
	assert.Equal(t, "a\nb\nc\n\x00", string(parser.buffer))
}

func TestUpdateBufferDecodesUTF16LE(t *testing.T) {
	parser := NewParser()
	parser.SetInputString([]byte{0xFF, 0xFE, 'a', 0, 'b', 0})
	require.NoError(t, parser.updateBuffer(2))
	assert.Equal(t, "ab", string(parser.buffer[:2]))
}

func TestUpdateBufferPanicsWithoutInput(t *testing.T) {
	parser := NewParser()
	assert.Panics(t, func() {
		parser.updateBuffer(1)
	})
}

func TestUpdateRawBufferReaderEOF(t *testing.T) {
	parser := NewParser()
	parser.SetInputReader(strings.NewReader(""))
	require.NoError(t, parser.updateRawBuffer())
	assert.True(t, parser.eof)
}
