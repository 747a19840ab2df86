// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// TagRegistry (§4.3): a bidirectional map between tag URIs and small
// integer ids, seeded with the failsafe, JSON, and core schema tags, plus
// a per-document %TAG handle table that shadows the process-wide default
// of "!" -> "" and "!!" -> "tag:yaml.org,2002:".

package libyaml

import "fmt"

// Well-known tag ids, assigned in registration order below. NoTagID marks
// the absence of a resolved tag (the "?" unresolved/non-specific case).
const (
	NoTagID = -1
)

// TagRegistry resolves %TAG handles against URI prefixes and interns URIs
// to small ids so callers can compare tags by integer rather than by
// string once resolved. The zero value is not ready for use; construct
// with NewTagRegistry.
type TagRegistry struct {
	uris []string
	ids  map[string]int

	// handles is the process-wide default handle -> prefix table (the two
	// entries YAML 1.2 mandates: "!" and "!!"). documentHandles, when
	// non-nil, is the current document's %TAG overlay and is consulted
	// first; an entry there shadows the same handle in handles.
	handles         map[string]string
	documentHandles map[string]string
}

// NewTagRegistry builds a registry pre-populated with the well-known
// failsafe, JSON, and core schema tag URIs (§4.3) and the default "!"/"!!"
// handle bindings.
func NewTagRegistry() *TagRegistry {
	r := &TagRegistry{
		ids: make(map[string]int),
		handles: map[string]string{
			"!":  "",
			"!!": "tag:yaml.org,2002:",
		},
	}
	for _, uri := range []string{
		STR_TAG, INT_TAG, FLOAT_TAG, BOOL_TAG, NULL_TAG, TIMESTAMP_TAG,
		SEQ_TAG, MAP_TAG, BINARY_TAG, MERGE_TAG, OMAP_TAG, PAIRS_TAG,
		SET_TAG, VALUE_TAG, YAML_TAG,
	} {
		r.register(uri)
	}
	return r
}

// register interns uri, returning its id. Registering the same uri twice
// returns the id it was first assigned.
func (r *TagRegistry) register(uri string) int {
	if id, ok := r.ids[uri]; ok {
		return id
	}
	id := len(r.uris)
	r.uris = append(r.uris, uri)
	r.ids[uri] = id
	return id
}

// uri returns the URI registered under id, or "" if id is unknown.
func (r *TagRegistry) uri(id int) string {
	if id < 0 || id >= len(r.uris) {
		return ""
	}
	return r.uris[id]
}

// beginDocument resets the per-document %TAG overlay (§4.4's "the set of
// tag directives seen in the current document").
func (r *TagRegistry) beginDocument() {
	r.documentHandles = nil
}

// declareHandle records a %TAG directive's handle/prefix binding for the
// document currently being parsed, shadowing the process-wide default.
func (r *TagRegistry) declareHandle(handle, prefix string) {
	if r.documentHandles == nil {
		r.documentHandles = make(map[string]string)
	}
	r.documentHandles[handle] = prefix
}

// resolve maps a tag property's handle and suffix to a full URI and
// interns it, returning its id. It fails with an error carrying
// "undefined-tag-handle" semantics (§4.3) if handle was never declared,
// either for this document or as one of the two process-wide defaults.
func (r *TagRegistry) resolve(handle, suffix string) (int, error) {
	if handle == "" {
		return r.register(suffix), nil
	}
	prefix, ok := r.documentHandles[handle]
	if !ok {
		prefix, ok = r.handles[handle]
	}
	if !ok {
		return NoTagID, fmt.Errorf("undefined-tag-handle: %q", handle)
	}
	return r.register(prefix + suffix), nil
}
