// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tbxml

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/tbxml/lib/xmltree"
)

const sampleDocument = `<catalog version="2" name="tools">
	<book id="1" price="9.99" isbn="978-0-13">Go<![CDATA[ & more]]></book>
	<book id="2" price="n/a" isbn="x"/>
	<book price="4" id="3" isbn="y"/>
	<book id="4" price="1e3" isbn="z"><note lang="en">fine</note></book>
</catalog>`

func TestDecodeReproducesClassification(t *testing.T) {
	flattened, err := Flatten(parseElements(t, sampleDocument))
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	data, err := flattened.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if diff := cmp.Diff(flattened.Templates, decoded.Templates); diff != "" {
		t.Errorf("templates mismatch (-flattened +decoded):\n%s", diff)
	}

	for index, node := range decoded.Nodes {
		template, _ := decoded.Template(node.TemplateID)
		for i, value := range node.Values {
			if value.Kind != template.Slots[i].Kind {
				t.Errorf("node %d value %d kind %s, slot kind %s", index, i, value.Kind, template.Slots[i].Kind)
			}
		}
	}

	if diff := cmp.Diff(flattened.Nodes, decoded.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-flattened +decoded):\n%s", diff)
	}
	if diff := cmp.Diff(flattened.Roots, decoded.Roots); diff != "" {
		t.Errorf("roots mismatch (-flattened +decoded):\n%s", diff)
	}
}

func TestDecodeSampleShapes(t *testing.T) {
	decoded, err := Decode(mustConvertReader(t, sampleDocument))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// catalog, book[num,num,text], book[num,text,text],
	// book[price,id,isbn order], note.
	if len(decoded.Templates) != 5 {
		t.Fatalf("got %d templates, want 5", len(decoded.Templates))
	}

	var bookTemplates []uint16
	for _, node := range decoded.Nodes {
		template, _ := decoded.Template(node.TemplateID)
		if template.Name == "book" {
			bookTemplates = append(bookTemplates, node.TemplateID)
		}
	}
	if diff := cmp.Diff([]uint16{1, 2, 3, 1}, bookTemplates); diff != "" {
		t.Errorf("book template assignment mismatch (-want +got):\n%s", diff)
	}

	if text := decoded.Nodes[1].Text; text != "Go & more" {
		t.Errorf("first book text = %q, want %q", text, "Go & more")
	}
	if number := decoded.Nodes[4].Values[1].Number; number != 1000 {
		t.Errorf("fourth book price = %v, want 1000", number)
	}
}

func TestDecodeMultipleRoots(t *testing.T) {
	decoded, err := Decode(mustConvertReader(t, `<a><b/><c><d/></c></a><e/><f><g/></f>`, xmltree.Fragment(true)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff([]uint16{0, 4, 5}, decoded.Roots); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := mustConvertReader(t, `<a x="1" s="text"><b>t</b></a>`)

	for length := 0; length < len(data); length++ {
		_, err := Decode(data[:length])
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("prefix of %d bytes: got error %v, want ErrTruncated", length, err)
		}
	}
}

func TestDecodeCorrupt(t *testing.T) {
	valid := mustConvertReader(t, `<a x="1"><b/><b y="2"/></a>`)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{
			name:   "trailing byte",
			mutate: func(data []byte) []byte { return append(data, 0) },
		},
		{
			name: "unknown kind byte",
			mutate: func(data []byte) []byte {
				data[10] = 7 // kind of slot x in template 0
				return data
			},
		},
		{
			name: "template ID out of sequence",
			mutate: func(data []byte) []byte {
				data[2] = 5
				return data
			},
		},
		{
			name: "text flag",
			mutate: func(data []byte) []byte {
				data[len(data)-1] = 2
				return data
			},
		},
		{
			name: "child before parent",
			mutate: func(data []byte) []byte {
				data[34] = 0 // first child of node 0 points at node 0
				return data
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), valid...))
			_, err := Decode(data)
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("got error %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestDecodeEmptyNodeList(t *testing.T) {
	decoded, err := Decode([]byte{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Nodes) != 0 || len(decoded.Roots) != 0 {
		t.Errorf("decoded %d nodes and %d roots from empty document", len(decoded.Nodes), len(decoded.Roots))
	}
}

func TestEncodeReplacesInvalidUTF8(t *testing.T) {
	root := &xmltree.Element{Name: "a", Children: []xmltree.Node{xmltree.Text("ok\xffok")}}
	data, err := Convert([]*xmltree.Element{root})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Nodes[0].Text != "ok\uFFFDok" {
		t.Errorf("text = %q, want replacement character", decoded.Nodes[0].Text)
	}
}

func TestTreeRebuildsElements(t *testing.T) {
	decoded, err := Decode(mustConvertReader(t, `<r n="1e3" s="abc"><a>t</a><b/></r><z/>`, xmltree.Fragment(true)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var output strings.Builder
	if err := xmltree.Render(&output, decoded.Tree(), ""); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := `<r n="1000" s="abc"><a>t</a><b/></r><z/>`
	if output.String() != want {
		t.Errorf("got %q, want %q", output.String(), want)
	}
}

func TestStats(t *testing.T) {
	decoded, err := Decode(mustConvertReader(t, sampleDocument))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := Stats{
		Templates:     5,
		Nodes:         6,
		Roots:         1,
		NumericValues: 8,
		TextValues:    7,
		NodesWithText: 2,
		MaxDepth:      3,
	}
	if diff := cmp.Diff(want, decoded.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NumericValue(1000), "1000"},
		{NumericValue(-0.25), "-0.25"},
		{NumericValue(1e21), "1e+21"},
		{NumericValue(math.Inf(1)), "+Inf"},
		{TextValue("abc"), "abc"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValueLiteral(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NumericValue(math.Inf(1)), "1e999"},
		{NumericValue(math.Inf(-1)), "-1e999"},
		{NumericValue(1000), "1000"},
		{TextValue("+Inf"), "+Inf"},
	}
	for _, tt := range tests {
		got := tt.value.Literal()
		if got != tt.want {
			t.Errorf("Literal() = %q, want %q", got, tt.want)
		}
		if kind := Classify(got); kind != tt.value.Kind {
			t.Errorf("Classify(%q) = %s, want %s", got, kind, tt.value.Kind)
		}
	}
}

func TestTreeKeepsOverflowedNumbersNumeric(t *testing.T) {
	first, err := Decode(mustConvertReader(t, `<r big="1e400" small="-2e308" n="5"/>`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	var rendered strings.Builder
	if err := xmltree.Render(&rendered, first.Tree(), ""); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `<r big="1e999" small="-1e999" n="5"/>`; rendered.String() != want {
		t.Errorf("rendered %q, want %q", rendered.String(), want)
	}

	second, err := Decode(mustConvertReader(t, rendered.String()))
	if err != nil {
		t.Fatalf("Decode after round trip: %v", err)
	}
	if diff := cmp.Diff(first.Templates, second.Templates); diff != "" {
		t.Errorf("templates changed across round trip (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Nodes, second.Nodes); diff != "" {
		t.Errorf("nodes changed across round trip (-first +second):\n%s", diff)
	}
}
