// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

// Package registry files validated actions under a category and a
// "provider/id" key so other subsystems can discover them without being
// handed each action explicitly. The registry is an explicit collaborator:
// factories receive a *Registry, there is no package-level default.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/sigil-dev/lattice/internal/action"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// Category partitions the registry by the kind of behavior an action
// implements. The set is open; retrieval contributes these two.
type Category string

const (
	CategoryRetriever Category = "retriever"
	CategoryIndexer   Category = "indexer"
)

// Key builds the canonical "provider/id" registration key.
func Key(provider, id string) string {
	return provider + "/" + id
}

// Entry is one registered action together with its filing location.
type Entry struct {
	Category Category
	Key      string
	Action   action.Action
}

// Registry is a thread-safe category+key index of actions. Registration is
// expected during single-threaded setup; lookups and listings may run
// concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[Category]map[string]action.Action
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[Category]map[string]action.Action),
	}
}

// Register files act under category and key. Duplicate keys within a
// category fail loudly; double registration is a programming error the
// caller must surface, never silently ignore.
func (r *Registry) Register(category Category, key string, act action.Action) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if act == nil {
		return latticeerr.New(latticeerr.CodeRegistryKeyInvalid, "action is required",
			latticeerr.FieldCategory(string(category)), latticeerr.FieldKey(key))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	byKey, ok := r.entries[category]
	if !ok {
		byKey = make(map[string]action.Action)
		r.entries[category] = byKey
	}
	if _, exists := byKey[key]; exists {
		return latticeerr.New(latticeerr.CodeRegistryRegisterConflict, "action already registered",
			latticeerr.FieldCategory(string(category)), latticeerr.FieldKey(key))
	}
	byKey[key] = act
	return nil
}

// Lookup returns the action filed under category and key.
func (r *Registry) Lookup(category Category, key string) (action.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if act, ok := r.entries[category][key]; ok {
		return act, nil
	}
	return nil, latticeerr.New(latticeerr.CodeRegistryLookupNotFound, "action not registered",
		latticeerr.FieldCategory(string(category)), latticeerr.FieldKey(key))
}

// List returns every entry, ordered by category then key, so registry
// snapshots are reproducible.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0)
	for category, byKey := range r.entries {
		for key, act := range byKey {
			out = append(out, Entry{Category: category, Key: key, Action: act})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func validateKey(key string) error {
	provider, id, ok := strings.Cut(key, "/")
	if !ok || provider == "" || id == "" {
		return latticeerr.New(latticeerr.CodeRegistryKeyInvalid,
			"registration key must be provider/id", latticeerr.FieldKey(key))
	}
	return nil
}
