// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package retrieval

import (
	"context"

	"github.com/sigil-dev/lattice/internal/registry"
	"github.com/sigil-dev/lattice/internal/schema"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// StoreConfig bundles everything the document-store factory needs: one
// provider/id identity, one shared document schema, and the two user
// functions with their option schemas.
type StoreConfig[Q, D, RO, IO any] struct {
	Provider string
	ID       string

	QuerySchema            *schema.Schema
	DocumentSchema         *schema.Schema
	RetrieverOptionsSchema *schema.Schema
	IndexerOptionsSchema   *schema.Schema

	Retrieve RetrieveFunc[Q, D, RO]
	Index    IndexFunc[D, IO]
}

// DocumentStore composes one retriever and one indexer over a single logical
// backing collection. It owns no state of its own: both halves are already
// registered actions built from the same document schema, so documents
// returned by Retrieve always conform to what Index accepts.
type DocumentStore[Q, D, RO, IO any] struct {
	retriever *Retriever[Q, D, RO]
	indexer   *Indexer[D, IO]
}

// NewDocumentStore builds and registers the indexer, then the retriever,
// under the same provider/id (in separate registry categories), and wraps
// them into one handle. The construction order is fixed so registry
// snapshots are reproducible.
func NewDocumentStore[Q, D, RO, IO any](reg *registry.Registry, cfg StoreConfig[Q, D, RO, IO]) (*DocumentStore[Q, D, RO, IO], error) {
	if cfg.DocumentSchema == nil {
		return nil, latticeerr.New(latticeerr.CodeRetrievalFactoryInvalid, "document schema is required",
			latticeerr.FieldProvider(cfg.Provider))
	}

	indexer, err := NewIndexer(reg, cfg.Provider, cfg.ID, cfg.DocumentSchema, cfg.IndexerOptionsSchema, cfg.Index)
	if err != nil {
		return nil, err
	}

	retriever, err := NewRetriever(reg, cfg.Provider, cfg.ID, cfg.QuerySchema, cfg.DocumentSchema, cfg.RetrieverOptionsSchema, cfg.Retrieve)
	if err != nil {
		return nil, err
	}

	return &DocumentStore[Q, D, RO, IO]{retriever: retriever, indexer: indexer}, nil
}

// Retrieve delegates to the store's retriever action. Calling the store is
// indistinguishable from calling the bare retriever.
func (s *DocumentStore[Q, D, RO, IO]) Retrieve(ctx context.Context, query Q, opts RO) ([]D, error) {
	return s.retriever.Retrieve(ctx, query, opts)
}

// Index delegates to the store's indexer action.
func (s *DocumentStore[Q, D, RO, IO]) Index(ctx context.Context, docs []D, opts IO) error {
	return s.indexer.Run(ctx, docs, opts)
}

// Retriever returns the store's tagged retriever half.
func (s *DocumentStore[Q, D, RO, IO]) Retriever() *Retriever[Q, D, RO] {
	return s.retriever
}

// Indexer returns the store's tagged indexer half.
func (s *DocumentStore[Q, D, RO, IO]) Indexer() *Indexer[D, IO] {
	return s.indexer
}
