// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/tbxml/lib/digest"
	"github.com/bureau-foundation/tbxml/lib/tbxml"
	"github.com/bureau-foundation/tbxml/lib/testutil"
)

const sampleXML = `<a x="1"><b/><b y="two">hi</b></a>`

// sampleManifest converts and decodes sampleXML so the manifest comes
// from real wire bytes.
func sampleManifest(t *testing.T) *Manifest {
	t.Helper()
	document, data := testutil.DecodeXML(t, sampleXML)
	return NewManifest(document, digest.Document(data), len(data))
}

func TestNewManifest(t *testing.T) {
	manifest := sampleManifest(t)

	if manifest.Format != "tbxml" {
		t.Errorf("Format = %q", manifest.Format)
	}
	if manifest.Digest.IsZero() {
		t.Error("Digest is zero")
	}

	wantTemplates := []TemplateEntry{
		{ID: 0, Name: "a", Slots: []SlotEntry{{Name: "x", Kind: "numeric"}}},
		{ID: 1, Name: "b"},
		{ID: 2, Name: "b", Slots: []SlotEntry{{Name: "y", Kind: "text"}}},
	}
	if diff := cmp.Diff(wantTemplates, manifest.Templates); diff != "" {
		t.Errorf("templates mismatch (-want +got):\n%s", diff)
	}

	text := "hi"
	wantNodes := []NodeEntry{
		{ID: 0, Template: 0, Element: "a", Children: []uint16{1, 2},
			Values: []ValueEntry{{Name: "x", Kind: "numeric", Value: "1"}}},
		{ID: 1, Template: 1, Element: "b"},
		{ID: 2, Template: 2, Element: "b",
			Values: []ValueEntry{{Name: "y", Kind: "text", Value: "two"}}, Text: &text},
	}
	if diff := cmp.Diff(wantNodes, manifest.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]uint16{0}, manifest.Roots); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}
	if manifest.Stats.Nodes != 3 || manifest.Stats.Templates != 3 {
		t.Errorf("Stats = %+v", manifest.Stats)
	}
}

func TestJSONOutput(t *testing.T) {
	manifest := sampleManifest(t)

	pretty, err := MarshalJSON(manifest, false)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"format\": \"tbxml\"") {
		t.Errorf("pretty JSON not indented:\n%s", pretty)
	}

	compact, err := MarshalJSON(manifest, true)
	if err != nil {
		t.Fatalf("MarshalJSON compact: %v", err)
	}
	if strings.Count(string(compact), "\n") != 1 {
		t.Errorf("compact JSON spans several lines:\n%s", compact)
	}
	if !strings.Contains(string(compact), `"digest":"`+manifest.Digest.String()+`"`) {
		t.Errorf("compact JSON missing hex digest:\n%s", compact)
	}
}

func TestJSONInfiniteNumber(t *testing.T) {
	document := &tbxml.Document{
		Templates: []*tbxml.Template{{ID: 0, Name: "n", Slots: []tbxml.Slot{{Name: "v", Kind: tbxml.KindNumeric}}}},
		Nodes:     []*tbxml.Node{{ID: 0, Values: []tbxml.Value{tbxml.NumericValue(math.Inf(1))}}},
		Roots:     []uint16{0},
	}

	output, err := MarshalJSON(NewManifest(document, digest.Hash{}, 0), true)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if !strings.Contains(string(output), `"value":"+Inf"`) {
		t.Errorf("infinite value not carried as text:\n%s", output)
	}
}

func TestYAMLOutput(t *testing.T) {
	manifest := sampleManifest(t)

	output, err := MarshalYAML(manifest)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	for _, want := range []string{
		"format: tbxml\n",
		"digest: " + manifest.Digest.String() + "\n",
		"roots:\n",
		"text: hi\n",
	} {
		if !strings.Contains(string(output), want) {
			t.Errorf("YAML missing %q:\n%s", want, output)
		}
	}
}
