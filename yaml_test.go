// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yaml_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yaml "github.com/nyaml/core"
)

func drain(t *testing.T, p *yaml.Parser) []yaml.Event {
	t.Helper()
	var events []yaml.Event
	for {
		var event yaml.Event
		err := p.Parse(&event)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, event)
		if event.Type == yaml.STREAM_END_EVENT {
			break
		}
	}
	return events
}

func TestNewParserStringProducesBalancedEvents(t *testing.T) {
	p := yaml.NewParserString([]byte("name: core\ntags: [a, b]\n"))
	events := drain(t, p)

	var opens, closes int
	for _, e := range events {
		switch e.Type {
		case yaml.MAPPING_START_EVENT, yaml.SEQUENCE_START_EVENT:
			opens++
		case yaml.MAPPING_END_EVENT, yaml.SEQUENCE_END_EVENT:
			closes++
		}
	}
	assert.Equal(t, opens, closes)
	assert.Equal(t, yaml.STREAM_START_EVENT, events[0].Type)
	assert.Equal(t, yaml.STREAM_END_EVENT, events[len(events)-1].Type)
}

func TestNewParserReadsFromIoReader(t *testing.T) {
	p := yaml.NewParser(strings.NewReader("a: 1\n"))
	events := drain(t, p)
	assert.Equal(t, yaml.STREAM_END_EVENT, events[len(events)-1].Type)
}

func TestNewPresenterDefaultStyleRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	emitter, _ := yaml.NewPresenter(&buf)

	src := yaml.NewSliceStream([]yaml.Event{
		yaml.NewStreamStartEvent(yaml.UTF8_ENCODING),
		yaml.NewDocumentStartEvent(nil, nil, true),
		yaml.NewMappingStartEvent(nil, nil, true, yaml.BLOCK_MAPPING_STYLE),
		yaml.NewScalarEvent(nil, nil, []byte("key"), true, false, yaml.PLAIN_SCALAR_STYLE),
		yaml.NewScalarEvent(nil, nil, []byte("value"), true, false, yaml.PLAIN_SCALAR_STYLE),
		yaml.NewMappingEndEvent(),
		yaml.NewDocumentEndEvent(true),
		yaml.NewStreamEndEvent(),
	})

	require.NoError(t, yaml.Present(emitter, src, yaml.AnchorTidy))

	p := yaml.NewParserString(buf.Bytes())
	events := drain(t, p)

	var key, value string
	for i, e := range events {
		if e.Type == yaml.SCALAR_EVENT {
			if key == "" {
				key = string(e.Value)
			} else if value == "" {
				value = string(e.Value)
			}
			_ = i
		}
	}
	assert.Equal(t, "key", key)
	assert.Equal(t, "value", value)
}

func TestNewTagRegistrySeedsCoreSchemaTags(t *testing.T) {
	reg := yaml.NewTagRegistry()
	assert.NotNil(t, reg)
}

func TestPresenterCanonicalStyleTagsScalars(t *testing.T) {
	var buf bytes.Buffer
	emitter, _ := yaml.NewPresenter(&buf, yaml.WithCanonical())

	src := yaml.NewSliceStream([]yaml.Event{
		yaml.NewStreamStartEvent(yaml.UTF8_ENCODING),
		yaml.NewDocumentStartEvent(nil, nil, true),
		yaml.NewScalarEvent(nil, []byte(yaml.STR_TAG), []byte("hello"), false, false, yaml.PLAIN_SCALAR_STYLE),
		yaml.NewDocumentEndEvent(true),
		yaml.NewStreamEndEvent(),
	})
	require.NoError(t, yaml.Present(emitter, src, yaml.AnchorNone))
	assert.Contains(t, buf.String(), "!!str")
}
