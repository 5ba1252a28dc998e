// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

// Package retrieval is the typed contract layer between user-supplied
// retrieval/indexing functions and the action registry. Factories wrap a
// bare function plus schema descriptors into a validated, registered action;
// the generic type parameters recover the query, document, and options types
// at call sites with zero runtime cost; and the Retrieve/Index entry points
// accept either a bare action or a composed DocumentStore.
//
// This layer performs no retrieval or indexing itself and adds no recovery:
// validation failures and user-function errors surface unchanged to the
// caller of every entry point.
package retrieval
