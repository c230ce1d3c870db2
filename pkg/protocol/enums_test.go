package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestEnumEncodeDecode(t *testing.T) {
	enums := []*Enum{
		TextRendering, LineCap, LineJoin, TextAlign, TextBaseline,
		Direction, FontKerning, FontStretch, FontVariantCaps, FillRule,
		CompositeOperation, ImageSmoothingQuality,
	}

	for _, en := range enums {
		t.Run(en.Domain(), func(t *testing.T) {
			for i, v := range en.Values() {
				b, err := en.Encode(v)
				if err != nil {
					t.Fatalf("Encode(%q) error: %v", v, err)
				}
				if int(b) != i {
					t.Errorf("Encode(%q) = %d, want %d", v, b, i)
				}
				s, err := en.Decode(b)
				if err != nil {
					t.Fatalf("Decode(%d) error: %v", b, err)
				}
				if s != v {
					t.Errorf("Decode(%d) = %q, want %q", b, s, v)
				}
			}
		})
	}
}

func TestEnumEncodeInvalid(t *testing.T) {
	_, err := LineCap.Encode("rounded")
	var inv *InvalidEnumValueError
	if !errors.As(err, &inv) {
		t.Fatalf("Encode error type = %T, want *InvalidEnumValueError", err)
	}
	if inv.Domain != "lineCap" || inv.Value != "rounded" {
		t.Errorf("error fields = %q/%q, want lineCap/rounded", inv.Domain, inv.Value)
	}
	// The message names every accepted value so the caller can fix the input.
	for _, v := range []string{"butt", "round", "square"} {
		if !strings.Contains(err.Error(), v) {
			t.Errorf("error %q does not mention valid value %q", err, v)
		}
	}
}

func TestEnumDecodeOutOfRange(t *testing.T) {
	_, err := Direction.Decode(3)
	var oor *ValueOutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("Decode error type = %T, want *ValueOutOfRangeError", err)
	}
}

// Wire bytes are positional. Reordering a table would silently repaint every
// persisted stream, so the first entries are pinned here.
func TestEnumWireOrderPinned(t *testing.T) {
	tests := []struct {
		en    *Enum
		value string
		want  byte
	}{
		{LineCap, "butt", 0},
		{LineJoin, "miter", 0},
		{TextAlign, "start", 0},
		{TextBaseline, "alphabetic", 0},
		{Direction, "inherit", 0},
		{FillRule, "nonzero", 0},
		{FillRule, "evenodd", 1},
		{CompositeOperation, "source-over", 0},
		{CompositeOperation, "luminosity", 25},
		{ImageSmoothingQuality, "low", 0},
		{ImageSmoothingQuality, "high", 2},
	}
	for _, tt := range tests {
		b, err := tt.en.Encode(tt.value)
		if err != nil {
			t.Errorf("%s.Encode(%q) error: %v", tt.en.Domain(), tt.value, err)
			continue
		}
		if b != tt.want {
			t.Errorf("%s.Encode(%q) = %d, want %d", tt.en.Domain(), tt.value, b, tt.want)
		}
	}
}
