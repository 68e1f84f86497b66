// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/tbxml/lib/envelope"
	"github.com/bureau-foundation/tbxml/lib/tbxml"
)

// loadedDocument is an encoded document read by inspect or decode.
type loadedDocument struct {
	document *tbxml.Document

	// encoded is the bare tbxml encoding, after opening any envelope.
	encoded []byte

	// compression is the envelope tag, or None for bare input.
	compression envelope.Tag
	sealed      bool
}

// loadDocument opens an envelope when present and decodes the result.
func loadDocument(data []byte, name string, logger *slog.Logger) (*loadedDocument, error) {
	loaded := &loadedDocument{encoded: data}
	if envelope.IsSealed(data) {
		opened, tag, err := envelope.Open(data)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		loaded.encoded, loaded.compression, loaded.sealed = opened, tag, true
		logger.Debug("opened envelope", "compression", tag.String(), "sealed_bytes", len(data), "bytes", len(opened))
	}

	document, err := tbxml.Decode(loaded.encoded)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	loaded.document = document
	return loaded, nil
}
