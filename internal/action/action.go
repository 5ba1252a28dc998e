// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

// Package action implements the validated-action substrate: a named
// asynchronous operation whose input and output are checked against schemas
// on every invocation. Definitions are typed; the Action interface is the
// untyped view the registry and reflection server work with.
package action

import (
	"context"
	"encoding/json"

	"github.com/sigil-dev/lattice/internal/schema"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// Action is the untyped, wire-level view of a definition. All registered
// actions expose it so generic subsystems can discover and invoke them
// without knowing the Go types involved.
type Action interface {
	// Name returns the operation name (e.g. "retrieve", "index").
	Name() string

	// InputSchema returns the schema every input is validated against.
	InputSchema() *schema.Schema

	// OutputSchema returns the output schema, or nil for void actions.
	OutputSchema() *schema.Schema

	// RunJSON invokes the action with a raw JSON input and returns the raw
	// JSON output ("null" for void actions).
	RunJSON(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// Func is the user-supplied behavior behind a definition.
type Func[In, Out any] func(ctx context.Context, in In) (Out, error)

// Definition is a named action with schema-validated input and output.
// The zero value is not usable; construct with New.
type Definition[In, Out any] struct {
	name         string
	inputSchema  *schema.Schema
	outputSchema *schema.Schema
	fn           Func[In, Out]
}

var _ Action = (*Definition[struct{}, struct{}])(nil)

// New creates a definition. outputSchema may be nil for void actions; the
// output is then not validated and RunJSON reports it as JSON null.
func New[In, Out any](name string, inputSchema, outputSchema *schema.Schema, fn Func[In, Out]) (*Definition[In, Out], error) {
	if name == "" {
		return nil, latticeerr.New(latticeerr.CodeActionHandlerMissing, "action name is required")
	}
	if inputSchema == nil {
		return nil, latticeerr.New(latticeerr.CodeActionHandlerMissing, "input schema is required", latticeerr.FieldAction(name))
	}
	if fn == nil {
		return nil, latticeerr.New(latticeerr.CodeActionHandlerMissing, "handler is required", latticeerr.FieldAction(name))
	}
	return &Definition[In, Out]{
		name:         name,
		inputSchema:  inputSchema,
		outputSchema: outputSchema,
		fn:           fn,
	}, nil
}

func (d *Definition[In, Out]) Name() string {
	return d.name
}

func (d *Definition[In, Out]) InputSchema() *schema.Schema {
	return d.inputSchema
}

func (d *Definition[In, Out]) OutputSchema() *schema.Schema {
	return d.outputSchema
}

// Run validates in, invokes the handler, and validates the handler's result
// before returning it. Handler errors propagate unwrapped; no retry or
// recovery happens at this layer.
func (d *Definition[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	var zero Out

	if _, err := d.inputSchema.Validate(in); err != nil {
		return zero, latticeerr.Wrap(err, latticeerr.CodeActionInputInvalid, "invalid input", latticeerr.FieldAction(d.name))
	}

	out, err := d.fn(ctx, in)
	if err != nil {
		return zero, err
	}

	if d.outputSchema != nil {
		if _, err := d.outputSchema.Validate(out); err != nil {
			return zero, latticeerr.Wrap(err, latticeerr.CodeActionOutputInvalid, "invalid output", latticeerr.FieldAction(d.name))
		}
	}
	return out, nil
}

// RunJSON implements Action by decoding input into the definition's typed
// input, running it, and encoding the typed output.
func (d *Definition[In, Out]) RunJSON(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in In
	if len(input) > 0 {
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, latticeerr.Wrap(err, latticeerr.CodeActionDecodeInvalid, "decoding action input", latticeerr.FieldAction(d.name))
		}
	}

	out, err := d.Run(ctx, in)
	if err != nil {
		return nil, err
	}

	if d.outputSchema == nil {
		return json.RawMessage("null"), nil
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return nil, latticeerr.Wrap(err, latticeerr.CodeActionEncodeFailure, "encoding action output", latticeerr.FieldAction(d.name))
	}
	return raw, nil
}
