// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitterFlushEmpty(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)

	ok := emitter.flush()
	assert.True(t, ok, "flush() with empty buffer should not error, got %v", emitter.Problem)
	assert.Equal(t, 0, len(output), "flush() empty buffer produced output, want empty")
}

func TestEmitterFlushWithData(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)

	testData := []byte("test data")
	copy(emitter.buffer, testData)
	emitter.buffer_pos = len(testData)

	ok := emitter.flush()
	assert.True(t, ok, "first flush() error: %v", emitter.Problem)
	assert.Equal(t, testData, output)
	assert.Equal(t, 0, emitter.buffer_pos)
}

func TestEmitterFlushMultipleTimes(t *testing.T) {
	emitter := NewEmitter()
	var output []byte
	emitter.SetOutputString(&output)

	data1 := []byte("first")
	copy(emitter.buffer, data1)
	emitter.buffer_pos = len(data1)

	ok := emitter.flush()
	assert.True(t, ok, "first flush() error: %v", emitter.Problem)

	data2 := []byte("second")
	copy(emitter.buffer, data2)
	emitter.buffer_pos = len(data2)

	ok = emitter.flush()
	assert.True(t, ok, "second flush() error: %v", emitter.Problem)

	expected := append(append([]byte{}, data1...), data2...)
	assert.Equal(t, expected, output)
}

func TestEmitterFlushWithWriter(t *testing.T) {
	emitter := NewEmitter()
	var buf bytes.Buffer
	emitter.SetOutputWriter(&buf)

	testData := []byte("test data")
	copy(emitter.buffer, testData)
	emitter.buffer_pos = len(testData)

	ok := emitter.flush()
	assert.True(t, ok, "flush() should not error, got %v", emitter.Problem)
	assert.Equal(t, testData, buf.Bytes())
}

type errorWriter struct{}

func (w *errorWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write error")
}

func TestEmitterFlushWithWriteError(t *testing.T) {
	emitter := NewEmitter()
	emitter.SetOutputWriter(&errorWriter{})

	testData := []byte("test")
	copy(emitter.buffer, testData)
	emitter.buffer_pos = len(testData)

	ok := emitter.flush()
	assert.False(t, ok, "flush() should report failure on a write error")
	assert.Equal(t, WRITER_ERROR, emitter.ErrorType)
	assert.Contains(t, emitter.Problem, "write error")
}

func TestEmitterFlushPanicWithoutHandler(t *testing.T) {
	emitter := NewEmitter()

	testData := []byte("test")
	copy(emitter.buffer, testData)
	emitter.buffer_pos = len(testData)

	assert.PanicsWithValue(t, "output was not set", func() {
		_ = emitter.flush()
	})
}
