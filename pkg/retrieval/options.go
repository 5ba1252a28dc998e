// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package retrieval

import "github.com/sigil-dev/lattice/internal/schema"

// CommonRetrieverOptions is the baseline options contract for retrievers
// that need nothing beyond a result budget.
type CommonRetrieverOptions struct {
	// K caps the number of documents returned. Zero means provider default.
	K int `json:"k,omitempty"`
}

// CommonRetrieverOptionsSchema matches {"k"?: number}.
func CommonRetrieverOptionsSchema() *schema.Schema {
	return schema.Object(map[string]*schema.Schema{
		"k": schema.Number(),
	})
}

// IndexerOptions is the baseline empty options contract for indexers.
type IndexerOptions struct{}

// IndexerOptionsSchema matches the empty object.
func IndexerOptionsSchema() *schema.Schema {
	return schema.Empty()
}
