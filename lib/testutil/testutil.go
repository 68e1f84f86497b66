// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/tbxml/lib/tbxml"
	"github.com/bureau-foundation/tbxml/lib/xmltree"
)

// ConvertXML converts an XML literal to tbxml bytes.
//
//	encoded := testutil.ConvertXML(t, `<a x="1"><b/></a>`)
func ConvertXML(t testing.TB, source string, options ...xmltree.ParseOption) []byte {
	t.Helper()
	encoded, err := tbxml.ConvertReader(strings.NewReader(source), options...)
	if err != nil {
		t.Fatalf("converting %q: %v", source, err)
	}
	return encoded
}

// DecodeXML converts an XML literal and decodes the result, returning
// both the document and the bytes it was decoded from.
func DecodeXML(t testing.TB, source string, options ...xmltree.ParseOption) (*tbxml.Document, []byte) {
	t.Helper()
	encoded := ConvertXML(t, source, options...)
	document, err := tbxml.Decode(encoded)
	if err != nil {
		t.Fatalf("decoding converted %q: %v", source, err)
	}
	return document, encoded
}

// WriteFile writes data to name inside directory and returns the path.
func WriteFile(t testing.TB, directory, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
