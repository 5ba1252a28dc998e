// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

// Package sqlitevec provides a persistent document store backed by SQLite
// with the sqlite-vec extension. Documents are vectorized with a
// deterministic feature-hashing scheme so the store works offline with no
// embedding model; retrieval is k-nearest-neighbor over those vectors.
package sqlitevec

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sigil-dev/lattice/internal/registry"
	"github.com/sigil-dev/lattice/internal/schema"
	"github.com/sigil-dev/lattice/pkg/document"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
	"github.com/sigil-dev/lattice/pkg/retrieval"
)

func init() {
	sqlite_vec.Auto()
}

// Provider is the registration provider name for this backend.
const Provider = "sqlitevec"

const (
	defaultK          = 10
	defaultDimensions = 256
)

// DocumentStore is the concrete store type this provider registers.
type DocumentStore = retrieval.DocumentStore[string, document.Document, retrieval.CommonRetrieverOptions, retrieval.IndexerOptions]

// Store holds the SQLite handle behind the registered actions.
type Store struct {
	db   *sql.DB
	dims int
}

// Open opens (or creates) the database at dbPath and initialises the vec0
// virtual table plus the companion document table.
func Open(dbPath string, dimensions int) (*Store, error) {
	if dimensions <= 0 {
		dimensions = defaultDimensions
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "opening sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "pinging sqlite db")
	}
	if err := migrate(db, dimensions); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, dims: dimensions}, nil
}

// New opens the database and registers the store's actions under
// "sqlitevec/<id>". Close the returned Store when done.
func New(reg *registry.Registry, id, dbPath string, dimensions int) (*DocumentStore, *Store, error) {
	backing, err := Open(dbPath, dimensions)
	if err != nil {
		return nil, nil, err
	}

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
		_ = backing.Close()
		return nil, nil, err
	}
	return store, backing, nil
}

func migrate(db *sql.DB, dimensions int) error {
	vecDDL := fmt.Sprintf(
		`CREATE VIRTUAL TABLE IF NOT EXISTS doc_vectors USING vec0(id TEXT PRIMARY KEY, embedding float[%d])`,
		dimensions,
	)
	if _, err := db.Exec(vecDDL); err != nil {
		return latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "creating doc_vectors virtual table")
	}

	const docDDL = `
CREATE TABLE IF NOT EXISTS documents (
	id  TEXT PRIMARY KEY,
	doc TEXT NOT NULL
)`
	if _, err := db.Exec(docDDL); err != nil {
		return latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "creating documents table")
	}
	return nil
}

// Index vectorizes and stores each document under a fresh id.
func (s *Store) Index(ctx context.Context, docs []document.Document, _ retrieval.IndexerOptions) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	for _, doc := range docs {
		id := uuid.NewString()

		blob, err := sqlite_vec.SerializeFloat32(Vectorize(vectorText(doc), s.dims))
		if err != nil {
			return latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "serializing embedding")
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return latticeerr.Wrap(err, latticeerr.CodeStoreInvalidInput, "encoding document")
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO doc_vectors(id, embedding) VALUES (?, ?)`, id, blob); err != nil {
			return latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "inserting vector")
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO documents(id, doc) VALUES (?, ?)`, id, string(raw)); err != nil {
			return latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "inserting document")
		}
	}

	if err := tx.Commit(); err != nil {
		return latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "committing index batch")
	}
	return nil
}

// Retrieve runs a k-nearest-neighbor search for the query's vector and
// returns the stored documents, nearest first.
func (s *Store) Retrieve(ctx context.Context, query string, opts retrieval.CommonRetrieverOptions) ([]document.Document, error) {
	k := opts.K
	if k <= 0 {
		k = defaultK
	}

	blob, err := sqlite_vec.SerializeFloat32(Vectorize(query, s.dims))
	if err != nil {
		return nil, latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "serializing query vector")
	}

	const q = `SELECT d.doc
FROM doc_vectors v
JOIN documents d ON d.id = v.id
WHERE v.embedding MATCH ? AND k = ?
ORDER BY v.distance`

	rows, err := s.db.QueryContext(ctx, q, blob, k)
	if err != nil {
		return nil, latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "searching vectors")
	}
	defer func() { _ = rows.Close() }()

	var out []document.Document
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "scanning result row")
		}
		var doc document.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "decoding stored document")
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "iterating result rows")
	}
	return out, nil
}

// Count reports how many documents are stored.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "counting documents")
	}
	return n, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return latticeerr.Wrap(err, latticeerr.CodeStoreDatabaseFailure, "closing sqlite db")
	}
	return nil
}

// vectorText picks the content to vectorize: the text body for text
// documents, the MIME type for multipart ones so like media clusters
// together.
func vectorText(doc document.Document) string {
	if media, ok := doc.Media(); ok {
		return media.MimeType
	}
	return doc.Text()
}
