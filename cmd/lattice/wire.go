// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package main

import (
	"log/slog"

	"github.com/sigil-dev/lattice/internal/config"
	"github.com/sigil-dev/lattice/internal/provider/memory"
	"github.com/sigil-dev/lattice/internal/provider/sqlitevec"
	"github.com/sigil-dev/lattice/internal/registry"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// Runtime holds the wired registry and manages backend lifecycle.
type Runtime struct {
	Registry *registry.Registry

	vec *sqlitevec.Store
}

// Close releases backend resources. Safe on a memory-backed runtime.
func (r *Runtime) Close() error {
	if r.vec != nil {
		return r.vec.Close()
	}
	return nil
}

// WireRuntime builds the action registry and registers the configured
// document store under it.
func WireRuntime(cfg *config.Config, log *slog.Logger) (*Runtime, error) {
	reg := registry.New()
	rt := &Runtime{Registry: reg}

	switch cfg.Storage.Backend {
	case "memory":
		if _, _, err := memory.New(reg, cfg.Store.ID); err != nil {
			return nil, latticeerr.Wrapf(err, latticeerr.CodeCLISetupFailure, "creating memory store %q", cfg.Store.ID)
		}
		log.Info("registered document store", "provider", memory.Provider, "id", cfg.Store.ID)
	case "sqlitevec":
		_, backing, err := sqlitevec.New(reg, cfg.Store.ID, cfg.Storage.Path, cfg.Storage.VectorDimensions)
		if err != nil {
			return nil, latticeerr.Wrapf(err, latticeerr.CodeCLISetupFailure, "creating sqlitevec store %q", cfg.Store.ID)
		}
		rt.vec = backing
		log.Info("registered document store",
			"provider", sqlitevec.Provider,
			"id", cfg.Store.ID,
			"path", cfg.Storage.Path,
			"dimensions", cfg.Storage.VectorDimensions,
		)
	default:
		return nil, latticeerr.Errorf(latticeerr.CodeStoreBackendUnsupported, "unknown storage backend %q", cfg.Storage.Backend)
	}

	return rt, nil
}
