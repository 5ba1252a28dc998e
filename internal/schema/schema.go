// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

// Package schema wraps huma's JSON Schema model behind a small descriptor
// type used by the action layer. A Schema supports two things: composing
// object/array/union shapes, and validating (with coercion to plain JSON
// values) an arbitrary Go value against the composed shape.
package schema

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// Schema is an immutable validation descriptor. Build one with the
// composition helpers or For, then share it freely; Validate is safe for
// concurrent use once all schemas are constructed.
type Schema struct {
	s *huma.Schema
}

var (
	// Shared registry for $ref resolution of reflection-derived schemas.
	// Derivation is mutex-guarded; schemas are expected to be built during
	// single-threaded setup before concurrent validation traffic begins.
	registryMu sync.Mutex
	registry   = huma.NewMapRegistry("#/components/schemas/", huma.DefaultSchemaNamer)
)

// FromHuma wraps an already-built huma schema.
func FromHuma(s *huma.Schema) *Schema {
	s.PrecomputeMessages()
	return &Schema{s: s}
}

// Huma exposes the underlying huma schema for API documentation surfaces.
func (s *Schema) Huma() *huma.Schema {
	return s.s
}

// String matches any JSON string.
func String() *Schema {
	return &Schema{s: &huma.Schema{Type: huma.TypeString}}
}

// Number matches any JSON number.
func Number() *Schema {
	return &Schema{s: &huma.Schema{Type: huma.TypeNumber}}
}

// Integer matches whole JSON numbers.
func Integer() *Schema {
	return &Schema{s: &huma.Schema{Type: huma.TypeInteger}}
}

// Boolean matches JSON booleans.
func Boolean() *Schema {
	return &Schema{s: &huma.Schema{Type: huma.TypeBoolean}}
}

// Any matches every JSON value.
func Any() *Schema {
	return &Schema{s: &huma.Schema{}}
}

// Empty matches a JSON object. Unknown keys are accepted and ignored, so an
// empty options contract stays forward-compatible with callers that pass
// extra fields.
func Empty() *Schema {
	return &Schema{s: &huma.Schema{Type: huma.TypeObject}}
}

// OpenMap matches a JSON object with arbitrary keys and values, the shape
// used for document metadata.
func OpenMap() *Schema {
	return &Schema{s: &huma.Schema{Type: huma.TypeObject}}
}

// Object composes a JSON object schema from named property schemas. Only the
// listed required keys must be present; unknown keys are accepted.
func Object(props map[string]*Schema, required ...string) *Schema {
	hp := make(map[string]*huma.Schema, len(props))
	for name, p := range props {
		hp[name] = p.s
	}
	hs := &huma.Schema{
		Type:       huma.TypeObject,
		Properties: hp,
		Required:   required,
	}
	hs.PrecomputeMessages()
	return &Schema{s: hs}
}

// Array composes a JSON array schema whose every element must match items.
func Array(items *Schema) *Schema {
	hs := &huma.Schema{
		Type:  huma.TypeArray,
		Items: items.s,
	}
	hs.PrecomputeMessages()
	return &Schema{s: hs}
}

// Union composes a schema matched by exactly one of the given variants.
func Union(variants ...*Schema) *Schema {
	hv := make([]*huma.Schema, len(variants))
	for i, v := range variants {
		hv[i] = v.s
	}
	hs := &huma.Schema{OneOf: hv}
	hs.PrecomputeMessages()
	return &Schema{s: hs}
}

// For derives a schema from a Go type via reflection. Struct fields follow
// their json tags; pointer and omitempty fields are optional.
func For[T any]() *Schema {
	t := reflect.TypeOf((*T)(nil)).Elem()

	registryMu.Lock()
	defer registryMu.Unlock()
	return &Schema{s: registry.Schema(t, false, t.Name()+"Schema")}
}

// Validate checks v against the schema and returns the coerced plain-JSON
// form of v (maps, slices, strings, float64s). Typed Go values are
// normalised through a JSON round-trip first so structs validate exactly as
// their wire form would. Validation failures carry the offending path and
// every violation message as structured fields.
func (s *Schema) Validate(v any) (any, error) {
	decoded, err := normalize(v)
	if err != nil {
		return nil, err
	}

	res := &huma.ValidateResult{}
	huma.Validate(registry, s.s, huma.NewPathBuffer(nil, 0), huma.ModeWriteToServer, decoded, res)
	if len(res.Errors) == 0 {
		return decoded, nil
	}

	details := make([]string, 0, len(res.Errors))
	location := ""
	for _, verr := range res.Errors {
		if detail, ok := verr.(*huma.ErrorDetail); ok {
			if location == "" {
				location = detail.Location
			}
		}
		details = append(details, verr.Error())
	}

	return nil, latticeerr.New(
		latticeerr.CodeSchemaValidateInvalidValue,
		"value does not conform to schema: "+strings.Join(details, "; "),
		latticeerr.FieldPath(location),
		latticeerr.Field("violations", details),
	)
}

// normalize converts v to the plain-JSON value space huma validates.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	var raw []byte
	switch t := v.(type) {
	case json.RawMessage:
		raw = t
	case []byte:
		raw = t
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, latticeerr.Wrap(err, latticeerr.CodeSchemaValidateInvalidValue, "encoding value for validation")
		}
		raw = b
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, latticeerr.Wrap(err, latticeerr.CodeSchemaValidateInvalidValue, "decoding value for validation")
	}
	return decoded, nil
}
