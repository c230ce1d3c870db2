package protocol

import "fmt"

// Style is what a fill or stroke can be painted with: either a flat Color
// or one of the gradient kinds. It is a sealed union; the wire encoding is
// a tag byte (0x00 color, 0x01 gradient) followed by the variant's payload.
type Style interface {
	isStyle()
}

// Color is a flat CSS color string, e.g. "red" or "#00ff0080".
type Color string

func (Color) isStyle() {}

// Style wire tags.
const (
	styleTagColor    = 0x00
	styleTagGradient = 0x01
)

// GradientKind tags the gradient geometry variant on the wire.
type GradientKind uint8

const (
	GradientLinear GradientKind = 0
	GradientConic  GradientKind = 1
	GradientRadial GradientKind = 2
)

// String returns the gradient kind name.
func (k GradientKind) String() string {
	switch k {
	case GradientLinear:
		return "linear"
	case GradientConic:
		return "conic"
	case GradientRadial:
		return "radial"
	default:
		return "unknown"
	}
}

// ColorStop is one gradient color stop. Insertion order is paint order;
// offsets need not be sorted or unique (the renderer resolves ties by list
// order).
type ColorStop struct {
	Offset float64
	Color  string
}

// Gradient is the common surface of the three gradient kinds.
//
// Wire layout, shared prefix then kind-specific geometry:
//
//	[1B stop count] per stop: [f32 offset][string color]
//	[1B kind tag] [geometry]
//
// Geometry: linear = four int16 coordinates; conic = two int16 coordinates
// + f32 angle; radial = six int16 (two circles).
type Gradient interface {
	Style
	Kind() GradientKind
	Stops() []ColorStop
	AddColorStop(offset float64, color string) error
	appendGeometry(e *Encoder)
}

// stopList carries the stop slice shared by every gradient kind.
type stopList struct {
	stops []ColorStop
}

func (*stopList) isStyle() {}

// AddColorStop appends a stop. The offset must lie in [0, 1] and the stop
// count is bounded by the one-byte wire field; both are validated here, at
// insertion, so encoding never fails on a malformed stop.
func (g *stopList) AddColorStop(offset float64, color string) error {
	if offset < 0 || offset > 1 {
		return &ValueOutOfRangeError{What: "gradient stop offset", Value: offset, Min: 0, Max: 1}
	}
	if len(g.stops) >= MaxGradientStops {
		return &ValueOutOfRangeError{
			What: "gradient stop count", Value: float64(len(g.stops) + 1), Min: 0, Max: MaxGradientStops,
		}
	}
	g.stops = append(g.stops, ColorStop{Offset: offset, Color: color})
	return nil
}

// Stops returns the stops in insertion order. The returned slice is shared;
// do not modify.
func (g *stopList) Stops() []ColorStop { return g.stops }

func (g *stopList) appendStops(e *Encoder) {
	e.WriteByte(byte(len(g.stops)))
	for _, s := range g.stops {
		e.WriteFloat32(float32(s.Offset))
		e.WriteString(s.Color)
	}
}

// LinearGradient paints along the line (X0,Y0)→(X1,Y1).
type LinearGradient struct {
	stopList
	X0, Y0, X1, Y1 float64
}

// NewLinearGradient creates a linear gradient with no stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func (g *LinearGradient) Kind() GradientKind { return GradientLinear }

func (g *LinearGradient) appendGeometry(e *Encoder) {
	e.WriteCoord(g.X0)
	e.WriteCoord(g.Y0)
	e.WriteCoord(g.X1)
	e.WriteCoord(g.Y1)
}

// ConicGradient paints around the center (X,Y) starting at Angle radians.
type ConicGradient struct {
	stopList
	X, Y  float64
	Angle float64
}

// NewConicGradient creates a conic gradient with no stops.
func NewConicGradient(x, y, angle float64) *ConicGradient {
	return &ConicGradient{X: x, Y: y, Angle: angle}
}

func (g *ConicGradient) Kind() GradientKind { return GradientConic }

func (g *ConicGradient) appendGeometry(e *Encoder) {
	e.WriteCoord(g.X)
	e.WriteCoord(g.Y)
	e.WriteFloat32(float32(g.Angle))
}

// RadialGradient paints between the circle (X0,Y0,R0) and (X1,Y1,R1).
type RadialGradient struct {
	stopList
	X0, Y0, R0 float64
	X1, Y1, R1 float64
}

// NewRadialGradient creates a radial gradient with no stops.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) *RadialGradient {
	return &RadialGradient{X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1}
}

func (g *RadialGradient) Kind() GradientKind { return GradientRadial }

func (g *RadialGradient) appendGeometry(e *Encoder) {
	e.WriteCoord(g.X0)
	e.WriteCoord(g.Y0)
	e.WriteCoord(g.R0)
	e.WriteCoord(g.X1)
	e.WriteCoord(g.Y1)
	e.WriteCoord(g.R1)
}

// appendGradient writes the full gradient blob (stops, kind tag, geometry).
func appendGradient(e *Encoder, g Gradient) {
	type stopAppender interface{ appendStops(e *Encoder) }
	g.(stopAppender).appendStops(e)
	e.WriteByte(byte(g.Kind()))
	g.appendGeometry(e)
}

// EncodeGradient encodes a gradient blob (without the style tag byte).
// Geometry outside the int16 coordinate range fails with
// *ValueOutOfRangeError.
func EncodeGradient(g Gradient) ([]byte, error) {
	e := NewEncoder()
	appendGradient(e, g)
	if err := e.Err(); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// AppendStyle encodes a style (tag byte + variant payload) into e.
func AppendStyle(e *Encoder, s Style) error {
	switch v := s.(type) {
	case Color:
		e.WriteByte(styleTagColor)
		e.WriteString(string(v))
	case Gradient:
		e.WriteByte(styleTagGradient)
		appendGradient(e, v)
	default:
		return fmt.Errorf("protocol: unsupported style type %T", s)
	}
	return e.Err()
}

// EncodeStyle encodes a style to bytes.
func EncodeStyle(s Style) ([]byte, error) {
	e := NewEncoder()
	if err := AppendStyle(e, s); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// DecodeGradient decodes a gradient blob produced by EncodeGradient.
func DecodeGradient(data []byte) (Gradient, error) {
	d := NewDecoder(data)
	g, err := decodeGradientFrom(d)
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, fmt.Errorf("protocol: %d trailing bytes after gradient", d.Remaining())
	}
	return g, nil
}

func decodeGradientFrom(d *Decoder) (Gradient, error) {
	count, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	stops := make([]ColorStop, 0, count)
	for i := 0; i < int(count); i++ {
		offset, err := d.ReadFloat32()
		if err != nil {
			return nil, err
		}
		color, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		stops = append(stops, ColorStop{Offset: float64(offset), Color: color})
	}

	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch GradientKind(tag) {
	case GradientLinear:
		g := &LinearGradient{stopList: stopList{stops: stops}}
		if g.X0, err = d.ReadCoord(); err != nil {
			return nil, err
		}
		if g.Y0, err = d.ReadCoord(); err != nil {
			return nil, err
		}
		if g.X1, err = d.ReadCoord(); err != nil {
			return nil, err
		}
		if g.Y1, err = d.ReadCoord(); err != nil {
			return nil, err
		}
		return g, nil
	case GradientConic:
		g := &ConicGradient{stopList: stopList{stops: stops}}
		if g.X, err = d.ReadCoord(); err != nil {
			return nil, err
		}
		if g.Y, err = d.ReadCoord(); err != nil {
			return nil, err
		}
		angle, err := d.ReadFloat32()
		if err != nil {
			return nil, err
		}
		g.Angle = float64(angle)
		return g, nil
	case GradientRadial:
		g := &RadialGradient{stopList: stopList{stops: stops}}
		for _, p := range []*float64{&g.X0, &g.Y0, &g.R0, &g.X1, &g.Y1, &g.R1} {
			if *p, err = d.ReadCoord(); err != nil {
				return nil, err
			}
		}
		return g, nil
	default:
		return nil, &ValueOutOfRangeError{What: "gradient kind tag", Value: float64(tag), Min: 0, Max: 2}
	}
}

// DecodeStyle decodes a style (tag byte + variant payload).
func DecodeStyle(data []byte) (Style, error) {
	d := NewDecoder(data)
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case styleTagColor:
		s, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		return Color(s), nil
	case styleTagGradient:
		return decodeGradientFrom(d)
	default:
		return nil, &ValueOutOfRangeError{What: "style tag", Value: float64(tag), Min: 0, Max: 1}
	}
}
