// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lattice Contributors

// Package document defines the unit of content moved by retrievers and
// indexers: either plain text or a multipart MIME-typed payload, with an
// optional open metadata map. A document's variant is fixed at creation and
// never mutates.
//
// The wire shape is part of the stable external contract: text documents
// carry content as a JSON string, multipart documents carry content as
// {"mimeType", "data", optional "binary"}.
package document

import (
	"encoding/json"

	"github.com/sigil-dev/lattice/internal/schema"
	latticeerr "github.com/sigil-dev/lattice/pkg/errors"
)

// Media is the structured content of a multipart document. Data holds the
// encoded payload; Binary optionally carries the raw bytes (base64 on the
// wire).
type Media struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
	Binary   []byte `json:"binary,omitempty"`
}

// Document is a tagged union of a text variant and a multipart variant.
// Construct with NewText or NewMultipart; the zero value is a text document
// with empty content.
type Document struct {
	content  string
	media    *Media
	metadata map[string]any
}

// NewText creates a text document. metadata may be nil.
func NewText(content string, metadata map[string]any) Document {
	return Document{content: content, metadata: metadata}
}

// NewMultipart creates a multipart document. metadata may be nil.
func NewMultipart(media Media, metadata map[string]any) Document {
	return Document{media: &media, metadata: metadata}
}

// IsMultipart reports whether the document carries structured media content.
func (d Document) IsMultipart() bool {
	return d.media != nil
}

// Text returns the plain content. It is empty for multipart documents.
func (d Document) Text() string {
	return d.content
}

// Media returns the structured content and whether the document is the
// multipart variant.
func (d Document) Media() (Media, bool) {
	if d.media == nil {
		return Media{}, false
	}
	return *d.media, true
}

// Metadata returns the document's metadata map, which may be nil. The map is
// shared, not copied; treat it as read-only.
func (d Document) Metadata() map[string]any {
	return d.metadata
}

// wireDocument is the JSON envelope. Content is a string for text documents
// and a Media object for multipart documents.
type wireDocument struct {
	Content  json.RawMessage `json:"content"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	var content any = d.content
	if d.media != nil {
		content = d.media
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireDocument{Content: raw, Metadata: d.metadata})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if len(wire.Content) == 0 {
		return latticeerr.New(latticeerr.CodeStoreInvalidInput, "document content is required")
	}

	// The variant is determined by the content's JSON type.
	if wire.Content[0] == '"' {
		var text string
		if err := json.Unmarshal(wire.Content, &text); err != nil {
			return err
		}
		*d = Document{content: text, metadata: wire.Metadata}
		return nil
	}

	var media Media
	if err := json.Unmarshal(wire.Content, &media); err != nil {
		return err
	}
	*d = Document{media: &media, metadata: wire.Metadata}
	return nil
}

// TextSchema matches the text variant: {"content": string, "metadata"?: {}}.
func TextSchema() *schema.Schema {
	return schema.Object(map[string]*schema.Schema{
		"content":  schema.String(),
		"metadata": schema.OpenMap(),
	}, "content")
}

// MultipartSchema matches the multipart variant:
// {"content": {"mimeType": string, "data": string, "binary"?: string}, "metadata"?: {}}.
func MultipartSchema() *schema.Schema {
	return schema.Object(map[string]*schema.Schema{
		"content": schema.Object(map[string]*schema.Schema{
			"mimeType": schema.String(),
			"data":     schema.String(),
			"binary":   schema.String(),
		}, "mimeType", "data"),
		"metadata": schema.OpenMap(),
	}, "content")
}

// Schema matches either variant.
func Schema() *schema.Schema {
	return schema.Union(TextSchema(), MultipartSchema())
}
