// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncludesCodeAndFields(t *testing.T) {
	err := latticeerr.New(
		latticeerr.CodeRegistryRegisterConflict,
		"duplicate registration",
		latticeerr.FieldCategory("retriever"),
		latticeerr.FieldKey("memory/simple"),
	)

	require.Error(t, err)
	assert.Equal(t, latticeerr.CodeRegistryRegisterConflict, latticeerr.CodeOf(err))
	assert.True(t, latticeerr.HasCode(err, latticeerr.CodeRegistryRegisterConflict))

	fields := latticeerr.FieldsOf(err)
	assert.Equal(t, "retriever", fields["category"])
	assert.Equal(t, "memory/simple", fields["key"])
}

func TestErrorfFormatsAndWraps(t *testing.T) {
	inner := stderrors.New("disk full")
	err := latticeerr.Errorf(latticeerr.CodeStoreDatabaseFailure, "write failed: %w", inner)
	require.Error(t, err)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, latticeerr.CodeStoreDatabaseFailure, latticeerr.CodeOf(err))
	assert.Contains(t, err.Error(), "write failed")
}

func TestWrapPreservesWrappedErrorAndCode(t *testing.T) {
	root := stderrors.New("no such action")
	err := latticeerr.Wrap(
		root,
		latticeerr.CodeRegistryLookupNotFound,
		"resolving action",
		latticeerr.FieldKey("memory/simple"),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, root)
	assert.True(t, latticeerr.IsNotFound(err))
	assert.Equal(t, "memory/simple", latticeerr.FieldsOf(err)["key"])
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, latticeerr.Wrap(nil, latticeerr.CodeStoreDatabaseFailure, "ignored"))
	assert.NoError(t, latticeerr.Wrapf(nil, latticeerr.CodeStoreDatabaseFailure, "ignored"))
	assert.NoError(t, latticeerr.With(nil))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, latticeerr.Code(""), latticeerr.CodeOf(stderrors.New("plain")))
	assert.Equal(t, latticeerr.Code(""), latticeerr.CodeOf(nil))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		code  latticeerr.Code
		check func(error) bool
	}{
		{"conflict", latticeerr.CodeRegistryRegisterConflict, latticeerr.IsConflict},
		{"not found", latticeerr.CodeRegistryLookupNotFound, latticeerr.IsNotFound},
		{"invalid input", latticeerr.CodeActionInputInvalid, latticeerr.IsInvalidInput},
		{"schema validation", latticeerr.CodeSchemaValidateInvalidValue, latticeerr.IsValidation},
		{"input validation", latticeerr.CodeActionInputInvalid, latticeerr.IsValidation},
		{"output validation", latticeerr.CodeActionOutputInvalid, latticeerr.IsValidation},
		{"unsupported shape", latticeerr.CodeRetrievalUnsupportedShape, latticeerr.IsUnsupportedShape},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.check(latticeerr.New(tc.code, "boom")))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, latticeerr.HTTPStatus(latticeerr.New(latticeerr.CodeRegistryLookupNotFound, "x")))
	assert.Equal(t, http.StatusConflict, latticeerr.HTTPStatus(latticeerr.New(latticeerr.CodeRegistryRegisterConflict, "x")))
	assert.Equal(t, http.StatusUnprocessableEntity, latticeerr.HTTPStatus(latticeerr.New(latticeerr.CodeSchemaValidateInvalidValue, "x")))
	assert.Equal(t, http.StatusBadRequest, latticeerr.HTTPStatus(latticeerr.New(latticeerr.CodeRetrievalUnsupportedShape, "x")))
	assert.Equal(t, http.StatusInternalServerError, latticeerr.HTTPStatus(stderrors.New("plain")))
}
