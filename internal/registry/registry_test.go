// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package registry_test

import (
	"context"
	"testing"

	"github.com/sigil-dev/lattice/internal/action"
	"github.com/sigil-dev/lattice/internal/registry"
	"github.com/sigil-dev/lattice/internal/schema"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoopAction(t *testing.T, name string) action.Action {
	t.Helper()
	def, err := action.New(name, schema.Empty(), nil,
		func(_ context.Context, _ struct{}) (struct{}, error) {
			return struct{}{}, nil
		})
	require.NoError(t, err)
	return def
}

func TestRegisterAndLookup(t *testing.T) {
	reg := registry.New()
	act := newNoopAction(t, "retrieve")

	require.NoError(t, reg.Register(registry.CategoryRetriever, registry.Key("memory", "simple"), act))

	got, err := reg.Lookup(registry.CategoryRetriever, "memory/simple")
	require.NoError(t, err)
	assert.Same(t, act, got)
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	reg := registry.New()
	key := registry.Key("memory", "simple")

	require.NoError(t, reg.Register(registry.CategoryRetriever, key, newNoopAction(t, "retrieve")))

	err := reg.Register(registry.CategoryRetriever, key, newNoopAction(t, "retrieve"))
	require.Error(t, err)
	assert.True(t, latticeerr.IsConflict(err))
	assert.Equal(t, "memory/simple", latticeerr.FieldsOf(err)["key"])
}

func TestSameKeyAcrossCategories(t *testing.T) {
	reg := registry.New()
	key := registry.Key("memory", "simple")

	require.NoError(t, reg.Register(registry.CategoryRetriever, key, newNoopAction(t, "retrieve")))
	require.NoError(t, reg.Register(registry.CategoryIndexer, key, newNoopAction(t, "index")))
}

func TestLookupMissing(t *testing.T) {
	reg := registry.New()

	_, err := reg.Lookup(registry.CategoryIndexer, "memory/none")
	require.Error(t, err)
	assert.True(t, latticeerr.IsNotFound(err))
}

func TestRegisterRejectsMalformedKey(t *testing.T) {
	reg := registry.New()
	act := newNoopAction(t, "retrieve")

	for _, key := range []string{"", "memory", "memory/", "/simple"} {
		err := reg.Register(registry.CategoryRetriever, key, act)
		require.Error(t, err, "key %q", key)
		assert.True(t, latticeerr.IsInvalidInput(err))
	}
}

func TestListDeterministicOrder(t *testing.T) {
	reg := registry.New()

	require.NoError(t, reg.Register(registry.CategoryRetriever, "zeta/store", newNoopAction(t, "retrieve")))
	require.NoError(t, reg.Register(registry.CategoryIndexer, "alpha/store", newNoopAction(t, "index")))
	require.NoError(t, reg.Register(registry.CategoryRetriever, "alpha/store", newNoopAction(t, "retrieve")))

	entries := reg.List()
	require.Len(t, entries, 3)
	assert.Equal(t, registry.CategoryIndexer, entries[0].Category)
	assert.Equal(t, "alpha/store", entries[0].Key)
	assert.Equal(t, registry.CategoryRetriever, entries[1].Category)
	assert.Equal(t, "alpha/store", entries[1].Key)
	assert.Equal(t, "zeta/store", entries[2].Key)
}
