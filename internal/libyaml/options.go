// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// PresenterOptions (§10.2, §4.5): functional options configuring the
// presenter's style, width, line-break, and tag-handle surface, following
// the With* option pattern this lineage's façade layer uses for its own
// (out-of-scope) marshaling options.

package libyaml

import "io"

// PresenterStyle selects the overall emission mode (§4.5).
type PresenterStyle int

const (
	StyleDefault PresenterStyle = iota
	StyleMinimal
	StyleCanonical
	StyleJSON
	StyleBlockOnly
)

// AnchorStyle selects when nodes get an explicit &anchor (§4.5).
type AnchorStyle int

const (
	// AnchorTidy anchors only nodes an alias actually references. Requires
	// buffering the whole document; PresentTidy does that buffering pass,
	// and NewPresenter itself does not.
	AnchorTidy AnchorStyle = iota
	AnchorNone
	AnchorAlways
)

// PresenterOptions is the presenter's configuration surface.
type PresenterOptions struct {
	style         PresenterStyle
	indent        int
	width         int
	outputVersion *VersionDirective
	lineBreak     LineBreak
	unicode       bool
	tagHandles    map[string]string
	anchorStyle   AnchorStyle
	jsonStrict    bool
}

// PresenterOption configures a PresenterOptions value.
type PresenterOption func(*PresenterOptions)

func defaultPresenterOptions() PresenterOptions {
	return PresenterOptions{
		style:     StyleDefault,
		indent:    2,
		width:     80,
		lineBreak: LN_BREAK,
		unicode:   false,
		anchorStyle: AnchorTidy,
	}
}

// WithStyle selects the overall emission style.
func WithStyle(style PresenterStyle) PresenterOption {
	return func(o *PresenterOptions) { o.style = style }
}

// WithIndent sets the block indentation step (2-9, per Emitter.SetIndent).
func WithIndent(indent int) PresenterOption {
	return func(o *PresenterOptions) { o.indent = indent }
}

// WithWidth sets the preferred max line width; width < 0 means unlimited.
func WithWidth(width int) PresenterOption {
	return func(o *PresenterOptions) { o.width = width }
}

// WithCanonical is shorthand for WithStyle(StyleCanonical).
func WithCanonical() PresenterOption {
	return WithStyle(StyleCanonical)
}

// WithOutputVersion requests a leading %YAML directive for the given
// version; a nil version (the default) omits the directive.
func WithOutputVersion(version *VersionDirective) PresenterOption {
	return func(o *PresenterOptions) { o.outputVersion = version }
}

// WithLineBreak selects the line-break character.
func WithLineBreak(lineBreak LineBreak) PresenterOption {
	return func(o *PresenterOptions) { o.lineBreak = lineBreak }
}

// WithUnicode allows unescaped non-ASCII characters in scalars.
func WithUnicode(unicode bool) PresenterOption {
	return func(o *PresenterOptions) { o.unicode = unicode }
}

// WithTagHandle registers a %TAG directive to emit (handle -> prefix).
func WithTagHandle(handle, prefix string) PresenterOption {
	return func(o *PresenterOptions) {
		if o.tagHandles == nil {
			o.tagHandles = make(map[string]string)
		}
		o.tagHandles[handle] = prefix
	}
}

// WithAnchorStyle selects when nodes get an explicit anchor.
func WithAnchorStyle(style AnchorStyle) PresenterOption {
	return func(o *PresenterOptions) { o.anchorStyle = style }
}

// WithJSONStrict makes StyleJSON fail with a JSONError on a mapping key
// explicitly tagged as something other than a string, instead of coercing
// it. Has no effect outside StyleJSON.
func WithJSONStrict() PresenterOption {
	return func(o *PresenterOptions) { o.jsonStrict = true }
}

// NewPresenter builds an Emitter writing to w, configured by opts, along
// with the resolved PresenterOptions (whose DocumentStart method builds
// the DOCUMENT-START event implied by WithOutputVersion/WithTagHandle).
// The returned Emitter is ready for Emit to be called with a STREAM-START
// event first, per the normal event-stream contract.
func NewPresenter(w io.Writer, opts ...PresenterOption) (*Emitter, PresenterOptions) {
	options := defaultPresenterOptions()
	for _, opt := range opts {
		opt(&options)
	}

	emitter := NewEmitter()
	emitter.SetOutputWriter(w)
	emitter.SetIndent(options.indent)
	emitter.SetWidth(options.width)
	emitter.SetUnicode(options.unicode)
	emitter.SetLineBreak(options.lineBreak)

	switch options.style {
	case StyleMinimal:
		// Densest legal YAML: flow collections everywhere, but (unlike
		// canonical/JSON) no forced quoting or tags, so plain scalars and
		// single-quoting still apply wherever they're otherwise safe.
		emitter.SetForceFlow(true)
	case StyleCanonical:
		emitter.SetCanonical(true)
	case StyleJSON:
		emitter.SetJSONMode(true)
		emitter.SetJSONStrict(options.jsonStrict)
	case StyleBlockOnly:
		emitter.SetForceBlock(true)
	}

	for handle, prefix := range options.tagHandles {
		emitter.appendTagDirective(&TagDirective{
			handle: []byte(handle),
			prefix: []byte(prefix),
		}, true)
	}

	return &emitter, options
}

// DocumentStart builds the DOCUMENT-START event implied by these options:
// the configured output version and declared tag handles, so a caller
// doesn't need to thread WithOutputVersion/WithTagHandle through its own
// event construction.
func (o PresenterOptions) DocumentStart(explicit bool) Event {
	var tagDirectives []TagDirective
	for handle, prefix := range o.tagHandles {
		tagDirectives = append(tagDirectives, TagDirective{
			handle: []byte(handle),
			prefix: []byte(prefix),
		})
	}
	return NewDocumentStartEvent(o.outputVersion, tagDirectives, !explicit)
}

// PresentTidy emits every event from src to the presenter, buffering the
// stream first when AnchorTidy is in effect so that only anchors actually
// referenced by an alias are written (§4.5's "requires a first pass
// buffering events"). For AnchorNone/AnchorAlways, events are passed
// through live without buffering.
func PresentTidy(emitter *Emitter, src EventStream, style AnchorStyle) error {
	if style != AnchorTidy {
		return presentStream(emitter, src)
	}

	var events []Event
	for {
		event, err := src.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		events = append(events, event)
		if event.Type == STREAM_END_EVENT {
			break
		}
	}

	referenced := make(map[string]bool)
	for _, event := range events {
		if event.Type == ALIAS_EVENT {
			referenced[string(event.Anchor)] = true
		}
	}
	for i := range events {
		if len(events[i].Anchor) > 0 && !referenced[string(events[i].Anchor)] {
			events[i].Anchor = nil
		}
	}

	return presentStream(emitter, NewSliceStream(events))
}

func presentStream(emitter *Emitter, src EventStream) error {
	for {
		event, err := src.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !emitter.Emit(&event) {
			if emitter.ErrorType == JSON_ERROR {
				return JSONError{Message: emitter.Problem}
			}
			return EmitterError{Message: emitter.Problem}
		}
		if event.Type == STREAM_END_EVENT {
			return nil
		}
	}
}
