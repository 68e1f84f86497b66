// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tbxml

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		value string
		want  AttributeKind
	}{
		{"1", KindNumeric},
		{"1e3", KindNumeric},
		{"1E-3", KindNumeric},
		{"-0.5", KindNumeric},
		{"+.5", KindNumeric},
		{"5.", KindNumeric},
		{"1.e5", KindNumeric},
		{"007", KindNumeric},
		{"1e400", KindNumeric},
		{"1.2.3", KindText},
		{"", KindText},
		{".", KindText},
		{"-", KindText},
		{"1e", KindText},
		{"1e+", KindText},
		{"e5", KindText},
		{" 1", KindText},
		{"1 ", KindText},
		{"1,5", KindText},
		{"1_000", KindText},
		{"0x10", KindText},
		{"NaN", KindText},
		{"Infinity", KindText},
		{"inf", KindText},
		{"١٢", KindText},
		{"hello", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := Classify(tt.value); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.value, got, tt.want)
			}
			_, numeric := ParseNumeric(tt.value)
			if numeric != (tt.want == KindNumeric) {
				t.Errorf("ParseNumeric(%q) ok = %v, disagrees with Classify", tt.value, numeric)
			}
		})
	}
}

func TestParseNumericValues(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"1e3", 1000},
		{"-0.25", -0.25},
		{"+.5", 0.5},
		{"5.", 5},
		{"0", 0},
	}

	for _, tt := range tests {
		got, ok := ParseNumeric(tt.value)
		if !ok {
			t.Errorf("ParseNumeric(%q) not numeric", tt.value)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNumeric(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}

	overflow, ok := ParseNumeric("-1e400")
	if !ok || !math.IsInf(overflow, -1) {
		t.Errorf("ParseNumeric(-1e400) = %v, %v; want -Inf, true", overflow, ok)
	}
}

func TestAttributeKindWireValues(t *testing.T) {
	if KindNumeric != 0 || KindText != 1 {
		t.Fatalf("kind bytes changed: numeric=%d text=%d", KindNumeric, KindText)
	}
	if AttributeKind(2).Valid() {
		t.Error("kind 2 reported valid")
	}
}
