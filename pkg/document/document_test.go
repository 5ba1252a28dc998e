// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

package document_test

import (
	"encoding/json"
	"testing"

	"github.com/sigil-dev/lattice/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextVariant(t *testing.T) {
	doc := document.NewText("hello", map[string]any{"source": "unit"})

	assert.False(t, doc.IsMultipart())
	assert.Equal(t, "hello", doc.Text())
	_, ok := doc.Media()
	assert.False(t, ok)
	assert.Equal(t, "unit", doc.Metadata()["source"])
}

func TestMultipartVariant(t *testing.T) {
	doc := document.NewMultipart(document.Media{
		MimeType: "image/png",
		Data:     "aGVsbG8=",
	}, nil)

	assert.True(t, doc.IsMultipart())
	media, ok := doc.Media()
	require.True(t, ok)
	assert.Equal(t, "image/png", media.MimeType)
	assert.Nil(t, doc.Metadata())
}

func TestTextJSONShape(t *testing.T) {
	doc := document.NewText("hello", map[string]any{"k": "v"})

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":"hello","metadata":{"k":"v"}}`, string(raw))

	var back document.Document
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.False(t, back.IsMultipart())
	assert.Equal(t, "hello", back.Text())
	assert.Equal(t, "v", back.Metadata()["k"])
}

func TestMultipartJSONShape(t *testing.T) {
	doc := document.NewMultipart(document.Media{
		MimeType: "application/pdf",
		Data:     "JVBERi0=",
	}, nil)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":{"mimeType":"application/pdf","data":"JVBERi0="}}`, string(raw))

	var back document.Document
	require.NoError(t, json.Unmarshal(raw, &back))
	require.True(t, back.IsMultipart())
	media, _ := back.Media()
	assert.Equal(t, "application/pdf", media.MimeType)
}

func TestUnmarshalMissingContent(t *testing.T) {
	var doc document.Document
	err := json.Unmarshal([]byte(`{"metadata":{}}`), &doc)
	require.Error(t, err)
}

func TestSchemasValidateVariants(t *testing.T) {
	text := document.NewText("hello", nil)
	multi := document.NewMultipart(document.Media{MimeType: "image/png", Data: "aA=="}, nil)

	_, err := document.TextSchema().Validate(text)
	require.NoError(t, err)

	_, err = document.MultipartSchema().Validate(multi)
	require.NoError(t, err)

	_, err = document.Schema().Validate(text)
	require.NoError(t, err)

	_, err = document.Schema().Validate(multi)
	require.NoError(t, err)

	// A text document is not a multipart document.
	_, err = document.MultipartSchema().Validate(text)
	require.Error(t, err)

	// Multipart without mimeType fails before anything else sees it.
	_, err = document.MultipartSchema().Validate(map[string]any{
		"content": map[string]any{"data": "aA=="},
	})
	require.Error(t, err)
}
