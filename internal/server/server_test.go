// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sigil-dev/lattice/internal/provider/memory"
	"github.com/sigil-dev/lattice/internal/registry"
	"github.com/sigil-dev/lattice/internal/server"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	reg := registry.New()
	_, _, err := memory.New(reg, "simple")
	require.NoError(t, err)

	srv, err := server.New(server.Config{ListenAddr: "127.0.0.1:0"}, reg, nil)
	require.NoError(t, err)
	return srv
}

func TestServer_New_EmptyListenAddr(t *testing.T) {
	_, err := server.New(server.Config{}, registry.New(), nil)
	require.Error(t, err)
	assert.True(t, latticeerr.HasCode(err, latticeerr.CodeServerConfigInvalid))
}

func TestServer_New_NilRegistry(t *testing.T) {
	_, err := server.New(server.Config{ListenAddr: "127.0.0.1:0"}, nil, nil)
	require.Error(t, err)
	assert.True(t, latticeerr.HasCode(err, latticeerr.CodeServerConfigInvalid))
}

func TestServer_HealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestServer_ListActions(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/actions", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Actions []struct {
			Category string `json:"category"`
			Key      string `json:"key"`
			Name     string `json:"name"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Actions, 2)
	assert.Equal(t, "indexer", body.Actions[0].Category)
	assert.Equal(t, "memory/simple", body.Actions[0].Key)
	assert.Equal(t, "index", body.Actions[0].Name)
	assert.Equal(t, "retriever", body.Actions[1].Category)
	assert.Equal(t, "retrieve", body.Actions[1].Name)
}

func TestServer_RunActionRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	indexReq := `{"category":"indexer","key":"memory/simple","input":{"docs":[{"content":"hello world"},{"content":"other"}],"options":{}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions/run", strings.NewReader(indexReq))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"result":null`)

	retrieveReq := `{"category":"retriever","key":"memory/simple","input":{"query":"hello","options":{"k":1}}}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/actions/run", strings.NewReader(retrieveReq))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Result []struct {
			Content string `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Result, 1)
	assert.Equal(t, "hello world", body.Result[0].Content)
}

func TestServer_RunActionUnknownKey(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions/run",
		strings.NewReader(`{"category":"retriever","key":"memory/none","input":{"query":"x"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RunActionValidationFailure(t *testing.T) {
	srv := newTestServer(t)

	// Query must be a string.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions/run",
		strings.NewReader(`{"category":"retriever","key":"memory/simple","input":{"query":42,"options":{}}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestServer_OpenAPISpec(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "run-action")
}
