// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package retrieval

import (
	"context"

	"github.com/sigil-dev/lattice/internal/action"
	"github.com/sigil-dev/lattice/internal/registry"
	"github.com/sigil-dev/lattice/internal/schema"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// RetrieveFunc is a user-supplied retrieval implementation.
type RetrieveFunc[Q, D, O any] func(ctx context.Context, query Q, opts O) ([]D, error)

// RetrieveRequest is the wire pair every retriever action is invoked with.
type RetrieveRequest[Q, O any] struct {
	Query   Q `json:"query"`
	Options O `json:"options"`
}

// Retriever is a registered retrieval action tagged with its query, document,
// and options types. The type parameters exist purely so callers recover
// precise types from an otherwise opaque action value; nothing inspects them
// at runtime.
type Retriever[Q, D, O any] struct {
	key string
	def *action.Definition[RetrieveRequest[Q, O], []D]
}

// AsRetriever tags an already-built retrieval action. The returned value
// invokes def exactly as def itself would; tagging never alters calling
// behavior.
func AsRetriever[Q, D, O any](key string, def *action.Definition[RetrieveRequest[Q, O], []D]) *Retriever[Q, D, O] {
	return &Retriever[Q, D, O]{key: key, def: def}
}

// Key returns the provider/id registration key.
func (r *Retriever[Q, D, O]) Key() string {
	return r.key
}

// Action returns the untyped registered action.
func (r *Retriever[Q, D, O]) Action() action.Action {
	return r.def
}

// Retrieve runs the underlying action: the query/options pair is validated
// against the composed input schema, the user function runs, and every
// returned document is validated against the document schema.
func (r *Retriever[Q, D, O]) Retrieve(ctx context.Context, query Q, opts O) ([]D, error) {
	return r.def.Run(ctx, RetrieveRequest[Q, O]{Query: query, Options: opts})
}

// NewRetriever builds a validated action named "retrieve" from fn and the
// given schemas, registers it under category "retriever" with key
// provider/id, and returns the tagged retriever. Errors from fn propagate to
// callers unwrapped; the factory adds no retry or recovery.
func NewRetriever[Q, D, O any](
	reg *registry.Registry,
	provider, id string,
	querySchema, docSchema, optsSchema *schema.Schema,
	fn RetrieveFunc[Q, D, O],
) (*Retriever[Q, D, O], error) {
	if reg == nil {
		return nil, latticeerr.New(latticeerr.CodeRetrievalFactoryInvalid, "registry is required", latticeerr.FieldProvider(provider))
	}
	if querySchema == nil || docSchema == nil || optsSchema == nil {
		return nil, latticeerr.New(latticeerr.CodeRetrievalFactoryInvalid, "query, document, and options schemas are required", latticeerr.FieldProvider(provider))
	}
	if fn == nil {
		return nil, latticeerr.New(latticeerr.CodeRetrievalFactoryInvalid, "retrieve function is required", latticeerr.FieldProvider(provider))
	}

	inputSchema := schema.Object(map[string]*schema.Schema{
		"query":   querySchema,
		"options": optsSchema,
	}, "query")

	def, err := action.New("retrieve", inputSchema, schema.Array(docSchema),
		func(ctx context.Context, req RetrieveRequest[Q, O]) ([]D, error) {
			return fn(ctx, req.Query, req.Options)
		})
	if err != nil {
		return nil, err
	}

	key := registry.Key(provider, id)
	if err := reg.Register(registry.CategoryRetriever, key, def); err != nil {
		return nil, err
	}
	return AsRetriever[Q, D, O](key, def), nil
}
