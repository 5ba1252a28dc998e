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

// IndexFunc is a user-supplied indexing implementation. It returns no value;
// indexing is a side-effecting ingestion step.
type IndexFunc[D, O any] func(ctx context.Context, docs []D, opts O) error

// IndexRequest is the wire pair every indexer action is invoked with.
type IndexRequest[D, O any] struct {
	Docs    []D `json:"docs"`
	Options O   `json:"options"`
}

// Indexer is a registered indexing action tagged with its document and
// options types. Like Retriever, the type parameters are compile-time-only
// metadata.
type Indexer[D, O any] struct {
	key string
	def *action.Definition[IndexRequest[D, O], struct{}]
}

// AsIndexer tags an already-built indexing action without altering its
// calling behavior.
func AsIndexer[D, O any](key string, def *action.Definition[IndexRequest[D, O], struct{}]) *Indexer[D, O] {
	return &Indexer[D, O]{key: key, def: def}
}

// Key returns the provider/id registration key.
func (ix *Indexer[D, O]) Key() string {
	return ix.key
}

// Action returns the untyped registered action.
func (ix *Indexer[D, O]) Action() action.Action {
	return ix.def
}

// Run invokes the indexer directly. The docs/options pair is validated
// against the composed input schema before the user function runs; a
// document violating the schema fails here, never reaching the function.
func (ix *Indexer[D, O]) Run(ctx context.Context, docs []D, opts O) error {
	_, err := ix.def.Run(ctx, IndexRequest[D, O]{Docs: docs, Options: opts})
	return err
}

// NewIndexer builds a validated, void-output action named "index" from fn
// and the given schemas, registers it under category "indexer" with key
// provider/id, and returns the tagged indexer. Failure semantics match
// NewRetriever.
func NewIndexer[D, O any](
	reg *registry.Registry,
	provider, id string,
	docSchema, optsSchema *schema.Schema,
	fn IndexFunc[D, O],
) (*Indexer[D, O], error) {
	if reg == nil {
		return nil, latticeerr.New(latticeerr.CodeRetrievalFactoryInvalid, "registry is required", latticeerr.FieldProvider(provider))
	}
	if docSchema == nil || optsSchema == nil {
		return nil, latticeerr.New(latticeerr.CodeRetrievalFactoryInvalid, "document and options schemas are required", latticeerr.FieldProvider(provider))
	}
	if fn == nil {
		return nil, latticeerr.New(latticeerr.CodeRetrievalFactoryInvalid, "index function is required", latticeerr.FieldProvider(provider))
	}

	inputSchema := schema.Object(map[string]*schema.Schema{
		"docs":    schema.Array(docSchema),
		"options": optsSchema,
	}, "docs")

	def, err := action.New("index", inputSchema, nil,
		func(ctx context.Context, req IndexRequest[D, O]) (struct{}, error) {
			return struct{}{}, fn(ctx, req.Docs, req.Options)
		})
	if err != nil {
		return nil, err
	}

	key := registry.Key(provider, id)
	if err := reg.Register(registry.CategoryIndexer, key, def); err != nil {
		return nil, err
	}
	return AsIndexer[D, O](key, def), nil
}
