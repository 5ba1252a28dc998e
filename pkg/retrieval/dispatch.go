// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package retrieval

import (
	"context"
	"fmt"

	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// DocumentRetriever is the retrieval capability. Both a bare *Retriever and
// a *DocumentStore satisfy it with identical calling conventions, which is
// why Retrieve needs no shape branching.
type DocumentRetriever[Q, D, O any] interface {
	Retrieve(ctx context.Context, query Q, opts O) ([]D, error)
}

// DocumentIndexer is the store-side indexing capability: an attached Index
// operation, as exposed by *DocumentStore.
type DocumentIndexer[D, O any] interface {
	Index(ctx context.Context, docs []D, opts O) error
}

// runnableIndexer is the direct-call convention of a bare indexer action.
type runnableIndexer[D, O any] interface {
	Run(ctx context.Context, docs []D, opts O) error
}

// Retrieve invokes retriever — a store or a bare tagged retriever — with the
// query/options pair and returns the validated documents. Store wrapping is
// transparent: both shapes yield identical results for identical inputs.
func Retrieve[Q, D, O any](ctx context.Context, retriever DocumentRetriever[Q, D, O], query Q, opts O) ([]D, error) {
	if retriever == nil {
		return nil, latticeerr.New(latticeerr.CodeRetrievalUnsupportedShape, "retriever is required")
	}
	return retriever.Retrieve(ctx, query, opts)
}

// Index normalizes the two indexing calling conventions. A store exposes an
// attached Index operation and is dispatched by method call; a bare tagged
// indexer is directly invocable and is dispatched by direct invocation. The
// store capability is checked first. Anything satisfying neither shape —
// including a value whose Index method has the wrong signature, which fails
// the capability check — is rejected with an explicit error rather than an
// obscure one.
func Index[D, O any](ctx context.Context, indexer any, docs []D, opts O) error {
	switch ix := indexer.(type) {
	case DocumentIndexer[D, O]:
		return ix.Index(ctx, docs, opts)
	case runnableIndexer[D, O]:
		return ix.Run(ctx, docs, opts)
	default:
		return latticeerr.New(latticeerr.CodeRetrievalUnsupportedShape,
			fmt.Sprintf("unsupported indexer shape %T", indexer))
	}
}
