package protocol

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestGradientRoundTrip(t *testing.T) {
	linear := NewLinearGradient(0, 0, 100, 50)
	conic := NewConicGradient(50, 50, 1.5)
	radial := NewRadialGradient(10, 10, 5, 90, 90, 40)

	for _, g := range []Gradient{linear, conic, radial} {
		if err := g.AddColorStop(0, "red"); err != nil {
			t.Fatalf("AddColorStop: %v", err)
		}
		if err := g.AddColorStop(0.5, "#00ff00"); err != nil {
			t.Fatalf("AddColorStop: %v", err)
		}
		if err := g.AddColorStop(1, "blue"); err != nil {
			t.Fatalf("AddColorStop: %v", err)
		}
	}

	tests := []struct {
		name string
		in   Gradient
	}{
		{"linear", linear},
		{"conic", conic},
		{"radial", radial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeGradient(tt.in)
			if err != nil {
				t.Fatalf("EncodeGradient error: %v", err)
			}
			got, err := DecodeGradient(data)
			if err != nil {
				t.Fatalf("DecodeGradient error: %v", err)
			}
			if got.Kind() != tt.in.Kind() {
				t.Errorf("Kind = %v, want %v", got.Kind(), tt.in.Kind())
			}
			if !reflect.DeepEqual(got, tt.in) {
				t.Errorf("decoded = %#v, want %#v", got, tt.in)
			}
		})
	}
}

func TestGradientGolden(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0)
	if err := g.AddColorStop(1, "red"); err != nil {
		t.Fatal(err)
	}
	data, err := EncodeGradient(g)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x01,                   // one stop
		0x3F, 0x80, 0x00, 0x00, // offset 1.0
		0x00, 0x00, 0x00, 0x03, 'r', 'e', 'd',
		0x00,       // linear kind tag
		0x00, 0x00, // x0
		0x00, 0x00, // y0
		0x00, 0x0A, // x1
		0x00, 0x00, // y1
	}
	if !bytes.Equal(data, want) {
		t.Errorf("encoded = % X, want % X", data, want)
	}
}

func TestAddColorStopValidation(t *testing.T) {
	g := NewLinearGradient(0, 0, 1, 1)

	for _, offset := range []float64{-0.1, 1.1} {
		err := g.AddColorStop(offset, "red")
		var oor *ValueOutOfRangeError
		if !errors.As(err, &oor) {
			t.Errorf("AddColorStop(%v) error = %v, want *ValueOutOfRangeError", offset, err)
		}
	}
	if len(g.Stops()) != 0 {
		t.Errorf("rejected stops were stored: %v", g.Stops())
	}

	for i := 0; i < MaxGradientStops; i++ {
		if err := g.AddColorStop(0.5, "red"); err != nil {
			t.Fatalf("AddColorStop #%d error: %v", i, err)
		}
	}
	if err := g.AddColorStop(0.5, "red"); err == nil {
		t.Errorf("stop %d accepted, want error at cap", MaxGradientStops+1)
	}
}

func TestGradientGeometryOutOfRange(t *testing.T) {
	g := NewLinearGradient(0, 0, 1e6, 0)
	_, err := EncodeGradient(g)
	var oor *ValueOutOfRangeError
	if !errors.As(err, &oor) {
		t.Errorf("EncodeGradient error = %v, want *ValueOutOfRangeError", err)
	}
}

func TestStyleEncodeDecode(t *testing.T) {
	grad := NewRadialGradient(0, 0, 1, 0, 0, 10)
	if err := grad.AddColorStop(0, "white"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		in   Style
	}{
		{"color", Color("rebeccapurple")},
		{"gradient", grad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeStyle(tt.in)
			if err != nil {
				t.Fatalf("EncodeStyle error: %v", err)
			}
			got, err := DecodeStyle(data)
			if err != nil {
				t.Fatalf("DecodeStyle error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.in) {
				t.Errorf("decoded = %#v, want %#v", got, tt.in)
			}
		})
	}
}

// Two separately built, value-equal gradients must produce identical bytes;
// that is what lets the client compare styles structurally.
func TestStyleStructuralEquality(t *testing.T) {
	build := func() Style {
		g := NewConicGradient(30, 40, 0.25)
		_ = g.AddColorStop(0, "red")
		_ = g.AddColorStop(1, "blue")
		return g
	}
	a, err := EncodeStyle(build())
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeStyle(build())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("value-equal gradients encode differently: % X vs % X", a, b)
	}
}

func TestDecodeGradientTrailing(t *testing.T) {
	g := NewLinearGradient(0, 0, 1, 1)
	data, err := EncodeGradient(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeGradient(append(data, 0x00)); err == nil {
		t.Error("DecodeGradient accepted trailing bytes")
	}
}

func FuzzDecodeGradient(f *testing.F) {
	g := NewLinearGradient(0, 0, 10, 10)
	_ = g.AddColorStop(0.5, "red")
	seed, _ := EncodeGradient(g)
	f.Add(seed)
	f.Add([]byte{0x00, 0x00})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		g, err := DecodeGradient(data)
		if err != nil {
			return
		}
		for _, s := range g.Stops() {
			if math.IsNaN(s.Offset) {
				// NaN payload bits are not preserved across the float64
				// round trip; skip the bit-exactness check.
				return
			}
		}
		if c, ok := g.(*ConicGradient); ok && math.IsNaN(c.Angle) {
			return
		}
		// A decoded gradient must re-encode to the exact input bytes.
		enc, err := EncodeGradient(g)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		if !bytes.Equal(enc, data) {
			t.Errorf("re-encode mismatch: % X vs % X", enc, data)
		}
	})
}
