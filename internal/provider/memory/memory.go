// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

// Package memory provides an in-process document store for development and
// tests: documents live in a slice, retrieval ranks by term overlap with the
// query, and nothing survives the process.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sigil-dev/lattice/internal/registry"
	"github.com/sigil-dev/lattice/internal/schema"
	"github.com/sigil-dev/lattice/pkg/document"
	"github.com/sigil-dev/lattice/pkg/retrieval"
)

// Provider is the registration provider name for this backend.
const Provider = "memory"

const defaultK = 10

// DocumentStore is the concrete store type this provider registers.
type DocumentStore = retrieval.DocumentStore[string, document.Document, retrieval.CommonRetrieverOptions, retrieval.IndexerOptions]

type entry struct {
	id  string
	doc document.Document
}

// Store is the backing collection behind the registered actions.
type Store struct {
	mu      sync.RWMutex
	entries []entry
}

// New creates a backing collection, builds and registers its retriever and
// indexer actions under "memory/<id>", and returns the composed store with
// its backing collection.
func New(reg *registry.Registry, id string) (*DocumentStore, *Store, error) {
	backing := &Store{}
	store, err := retrieval.NewDocumentStore(reg, retrieval.StoreConfig[string, document.Document, retrieval.CommonRetrieverOptions, retrieval.IndexerOptions]{
		Provider:               Provider,
		ID:                     id,
		QuerySchema:            schema.String(),
		DocumentSchema:         document.Schema(),
		RetrieverOptionsSchema: retrieval.CommonRetrieverOptionsSchema(),
		IndexerOptionsSchema:   retrieval.IndexerOptionsSchema(),
		Retrieve:               backing.Retrieve,
		Index:                  backing.Index,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, backing, nil
}

// Index appends documents to the collection.
func (s *Store) Index(_ context.Context, docs []document.Document, _ retrieval.IndexerOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		s.entries = append(s.entries, entry{id: uuid.NewString(), doc: doc})
	}
	return nil
}

// Retrieve ranks documents by how many query terms appear in their text
// content and returns at most k (opts.K, or a default of 10). Multipart
// documents never match a non-empty query; an empty query returns the most
// recently indexed documents.
func (s *Store) Retrieve(_ context.Context, query string, opts retrieval.CommonRetrieverOptions) ([]document.Document, error) {
	k := opts.K
	if k <= 0 {
		k = defaultK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := tokenize(query)
	type scored struct {
		entry entry
		score int
		pos   int
	}
	var matches []scored
	for i, e := range s.entries {
		score := overlap(terms, tokenize(e.doc.Text()))
		if score == 0 && len(terms) > 0 {
			continue
		}
		matches = append(matches, scored{entry: e, score: score, pos: i})
	}

	// Highest score first; ties resolve to most recently indexed so the
	// ordering is stable across calls.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].pos > matches[j].pos
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	out := make([]document.Document, len(matches))
	for i, m := range matches {
		out[i] = m.entry.doc
	}
	return out, nil
}

// Len reports how many documents have been indexed.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func overlap(query, doc []string) int {
	if len(query) == 0 || len(doc) == 0 {
		return 0
	}
	docTerms := make(map[string]struct{}, len(doc))
	for _, t := range doc {
		docTerms[t] = struct{}{}
	}
	score := 0
	for _, t := range query {
		if _, ok := docTerms[t]; ok {
			score++
		}
	}
	return score
}
