// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSealOpenRoundtrip(t *testing.T) {
	compressible := []byte(strings.Repeat("<item id=\"1\">repeated text</item>", 200))

	for _, tag := range []Tag{None, LZ4, Zstd} {
		t.Run(tag.String(), func(t *testing.T) {
			sealed, used, err := Seal(compressible, tag)
			if err != nil {
				t.Fatalf("Seal: %v", err)
			}
			if used != tag {
				t.Errorf("Seal used %s, want %s", used, tag)
			}
			if tag != None && len(sealed) >= len(compressible) {
				t.Errorf("sealed %d bytes into %d", len(compressible), len(sealed))
			}
			if !IsSealed(sealed) {
				t.Fatal("IsSealed = false for sealed data")
			}

			opened, openedTag, err := Open(sealed)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if openedTag != tag {
				t.Errorf("Open reported %s, want %s", openedTag, tag)
			}
			if !bytes.Equal(opened, compressible) {
				t.Error("roundtrip changed the data")
			}
		})
	}
}

func TestSealFallsBackForIncompressible(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00}

	for _, tag := range []Tag{LZ4, Zstd} {
		sealed, used, err := Seal(data, tag)
		if err != nil {
			t.Fatalf("Seal(%s): %v", tag, err)
		}
		if used != None {
			t.Errorf("Seal(%s) used %s for tiny input, want none", tag, used)
		}
		opened, _, err := Open(sealed)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if !bytes.Equal(opened, data) {
			t.Errorf("got %x, want %x", opened, data)
		}
	}
}

func TestOpenRejectsBareData(t *testing.T) {
	bare := []byte{0x01, 0x00, 0x00, 0x00, 0x01, 'a', 0x00, 0x00}
	if IsSealed(bare) {
		t.Fatal("bare tbxml data reported as sealed")
	}
	if _, _, err := Open(bare); !errors.Is(err, ErrNotSealed) {
		t.Errorf("got error %v, want ErrNotSealed", err)
	}
}

func TestOpenRejectsDamagedFrames(t *testing.T) {
	sealed, _, err := Seal([]byte("payload"), None)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "magic only", data: sealed[:4]},
		{name: "no length", data: sealed[:5]},
		{name: "short payload", data: sealed[:len(sealed)-1]},
		{name: "unknown tag", data: append(append([]byte{}, sealed[:4]...), append([]byte{9}, sealed[5:]...)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Open(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	for _, tag := range []Tag{None, LZ4, Zstd} {
		parsed, err := ParseTag(tag.String())
		if err != nil {
			t.Fatalf("ParseTag(%q): %v", tag.String(), err)
		}
		if parsed != tag {
			t.Errorf("ParseTag(%q) = %s", tag.String(), parsed)
		}
	}
	if _, err := ParseTag("gzip"); err == nil {
		t.Error("ParseTag(gzip) succeeded")
	}
}
