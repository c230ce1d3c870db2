package canvas

import (
	"context"
	"errors"

	"github.com/canvaswire/canvaswire/pkg/protocol"
)

// Default surface dimensions, matching the renderer's defaults.
const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

// ErrSurfaceRemoved is returned when operating on a surface after Remove.
var ErrSurfaceRemoved = errors.New("canvas: surface already removed")

// Surface is one addressable drawing context. Every stateful field below
// mirrors the last value successfully dispatched to the renderer; getters
// read the mirror, setters diff against the shadow state before writing.
type Surface struct {
	c  *Client
	id protocol.SurfaceID

	disabled bool
	removed  bool

	width  int
	height int

	textRendering            string
	lineWidth                float64
	lineCap                  string
	lineJoin                 string
	miterLimit               float64
	lineDash                 []int
	lineDashOffset           float64
	font                     string
	textAlign                string
	textBaseline             string
	direction                string
	letterSpacing            string
	fontKerning              string
	fontStretch              string
	fontVariantCaps          string
	wordSpacing              string
	fillStyle                protocol.Style
	strokeStyle              protocol.Style
	shadowBlur               float64
	shadowColor              string
	shadowOffsetX            float64
	shadowOffsetY            float64
	globalAlpha              float64
	globalCompositeOperation string
	filter                   string
	imageSmoothingEnabled    bool
	imageSmoothingQuality    string
}

// NewSurface creates a surface with the default 300x150 size.
func (c *Client) NewSurface() (*Surface, error) {
	return c.NewSurfaceSize(DefaultWidth, DefaultHeight)
}

// NewSurfaceSize creates a surface with the given initial size.
//
// When a query transport is configured, creation first performs a handshake
// query; if no renderer acknowledges it the surface runs disabled (every
// operation a silent no-op) and a single warning is logged. Transport
// failures other than a missing reply are returned: they mean the session
// is broken, not merely headless.
func (c *Client) NewSurfaceSize(width, height float64) (*Surface, error) {
	w, err := protocol.RoundCoord(width)
	if err != nil {
		return nil, err
	}
	h, err := protocol.RoundCoord(height)
	if err != nil {
		return nil, err
	}

	id, err := c.alloc.allocate()
	if err != nil {
		return nil, err
	}

	s := &Surface{
		c:                        c,
		id:                       id,
		width:                    int(w),
		height:                   int(h),
		textRendering:            "auto",
		lineWidth:                1,
		lineCap:                  "butt",
		lineJoin:                 "miter",
		miterLimit:               10,
		lineDashOffset:           0,
		font:                     "10px sans-serif",
		textAlign:                "start",
		textBaseline:             "alphabetic",
		direction:                "inherit",
		letterSpacing:            "0px",
		fontKerning:              "auto",
		fontStretch:              "normal",
		fontVariantCaps:          "normal",
		wordSpacing:              "0px",
		fillStyle:                protocol.Color("black"),
		strokeStyle:              protocol.Color("black"),
		shadowColor:              "#00000000",
		globalAlpha:              1,
		globalCompositeOperation: "source-over",
		imageSmoothingEnabled:    true,
		imageSmoothingQuality:    "low",
	}

	if c.queries != nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.queryTimeout)
		resp, qerr := c.roundTrip(ctx, protocol.NewRequest(id, "create", int(w), int(h)))
		cancel()
		switch {
		case errors.Is(qerr, protocol.ErrNoResponse) || (qerr == nil && !acked(resp)):
			if c.strictHandshake {
				c.alloc.release(id)
				return nil, protocol.ErrEnvironmentUnsupported
			}
			s.disabled = true
			c.logger.Warn("environment does not support canvases; surface runs disabled",
				"surface", uint8(id))
		case qerr != nil:
			c.alloc.release(id)
			return nil, qerr
		}
	}

	if !s.disabled {
		e := protocol.NewEncoder()
		e.WriteInt16(w)
		e.WriteInt16(h)
		if err := c.dispatch(id, protocol.OpCreate, e.Bytes()); err != nil {
			c.alloc.release(id)
			return nil, err
		}
		s.seedDefaults()
	}

	c.metrics.setLiveSurfaces(c.alloc.liveCount())
	return s, nil
}

// acked reports whether a handshake reply confirms a live renderer.
func acked(resp any) bool {
	switch v := resp.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// ID returns the surface's wire id.
func (s *Surface) ID() protocol.SurfaceID { return s.id }

// Disabled reports whether the surface runs in degraded no-op mode.
func (s *Surface) Disabled() bool { return s.disabled }

// Remove tells the renderer to drop the surface and recycles its id.
// The surface must not be used afterwards.
func (s *Surface) Remove() error {
	if s.removed {
		return ErrSurfaceRemoved
	}
	if !s.disabled {
		if err := s.c.dispatch(s.id, protocol.OpRemove, nil); err != nil {
			return err
		}
	}
	s.removed = true
	s.c.shadow.Forget(s.id)
	s.c.alloc.release(s.id)
	s.c.metrics.setLiveSurfaces(s.c.alloc.liveCount())
	return nil
}

// Commit flushes buffered frames to the renderer. Call it semi-regularly to
// make updates visible; calling it after every drawing call costs a flush
// per call. Think of it as flushing stdout.
func (s *Surface) Commit() error {
	if skip, err := s.gate(); skip {
		return err
	}
	return s.c.dispatch(s.id, protocol.OpCommit, nil)
}

// gate implements disabled/removed handling shared by every operation:
// removed surfaces are a caller error, disabled surfaces silently no-op.
func (s *Surface) gate() (skip bool, err error) {
	if s.removed {
		return true, ErrSurfaceRemoved
	}
	if s.disabled {
		return true, nil
	}
	return false, nil
}

// seedDefaults commits each stateful property's initial encoding to the
// shadow state, so setting a property to its default dispatches nothing.
func (s *Surface) seedDefaults() {
	seed := func(op protocol.Opcode, e *protocol.Encoder) {
		s.c.shadow.Commit(s.id, op, e.Bytes())
	}

	seed(protocol.OpSetWidth, encCoord(float64(s.width)))
	seed(protocol.OpSetHeight, encCoord(float64(s.height)))
	seed(protocol.OpTextRendering, mustEncEnum(protocol.TextRendering, s.textRendering))
	seed(protocol.OpLineWidth, encFloat(s.lineWidth))
	seed(protocol.OpLineCap, mustEncEnum(protocol.LineCap, s.lineCap))
	seed(protocol.OpLineJoin, mustEncEnum(protocol.LineJoin, s.lineJoin))
	seed(protocol.OpMiterLimit, encFloat(s.miterLimit))
	if e, err := encLineDash(s.lineDash); err == nil {
		seed(protocol.OpLineDash, e)
	}
	seed(protocol.OpLineDashOffset, encFloat(s.lineDashOffset))
	seed(protocol.OpFont, encString(s.font))
	seed(protocol.OpTextAlign, mustEncEnum(protocol.TextAlign, s.textAlign))
	seed(protocol.OpTextBaseline, mustEncEnum(protocol.TextBaseline, s.textBaseline))
	seed(protocol.OpDirection, mustEncEnum(protocol.Direction, s.direction))
	seed(protocol.OpLetterSpacing, encString(s.letterSpacing))
	seed(protocol.OpFontKerning, mustEncEnum(protocol.FontKerning, s.fontKerning))
	seed(protocol.OpFontStretch, mustEncEnum(protocol.FontStretch, s.fontStretch))
	seed(protocol.OpFontVariantCaps, mustEncEnum(protocol.FontVariantCaps, s.fontVariantCaps))
	seed(protocol.OpWordSpacing, encString(s.wordSpacing))
	if e, err := encStyle(s.fillStyle); err == nil {
		seed(protocol.OpFillStyle, e)
	}
	if e, err := encStyle(s.strokeStyle); err == nil {
		seed(protocol.OpStrokeStyle, e)
	}
	seed(protocol.OpShadowBlur, encFloat(s.shadowBlur))
	seed(protocol.OpShadowColor, encString(s.shadowColor))
	seed(protocol.OpShadowOffsetX, encFloat(s.shadowOffsetX))
	seed(protocol.OpShadowOffsetY, encFloat(s.shadowOffsetY))
	seed(protocol.OpGlobalAlpha, encFloat(s.globalAlpha))
	seed(protocol.OpGlobalCompositeOperation, mustEncEnum(protocol.CompositeOperation, s.globalCompositeOperation))
	seed(protocol.OpFilter, encString(s.filter))
	seed(protocol.OpImageSmoothingEnabled, encBool(s.imageSmoothingEnabled))
	seed(protocol.OpImageSmoothingQuality, mustEncEnum(protocol.ImageSmoothingQuality, s.imageSmoothingQuality))
}

// Payload encoding helpers shared by setters and seedDefaults.

func encFloat(v float64) *protocol.Encoder {
	e := protocol.NewEncoder()
	e.WriteFloat32(float32(v))
	return e
}

func encString(v string) *protocol.Encoder {
	e := protocol.NewEncoder()
	e.WriteString(v)
	return e
}

func encBool(v bool) *protocol.Encoder {
	e := protocol.NewEncoder()
	e.WriteBool(v)
	return e
}

func encCoord(v float64) *protocol.Encoder {
	e := protocol.NewEncoder()
	e.WriteCoord(v)
	return e
}

func encEnum(en *protocol.Enum, v string) (*protocol.Encoder, error) {
	b, err := en.Encode(v)
	if err != nil {
		return nil, err
	}
	e := protocol.NewEncoder()
	e.WriteByte(b)
	return e, nil
}

// mustEncEnum encodes a value known to be in the table (defaults).
func mustEncEnum(en *protocol.Enum, v string) *protocol.Encoder {
	e, err := encEnum(en, v)
	if err != nil {
		panic(err)
	}
	return e
}

func encStyle(style protocol.Style) (*protocol.Encoder, error) {
	e := protocol.NewEncoder()
	if err := protocol.AppendStyle(e, style); err != nil {
		return nil, err
	}
	return e, nil
}

func encLineDash(dashes []int) (*protocol.Encoder, error) {
	if len(dashes) > protocol.MaxLineDashSegments {
		return nil, &protocol.ValueOutOfRangeError{
			What: "line dash segment count", Value: float64(len(dashes)),
			Min: 0, Max: protocol.MaxLineDashSegments,
		}
	}
	e := protocol.NewEncoder()
	e.WriteByte(byte(len(dashes)))
	for _, d := range dashes {
		if d < 0 || d > protocol.MaxLineDashSegment {
			return nil, &protocol.ValueOutOfRangeError{
				What: "line dash segment", Value: float64(d),
				Min: 0, Max: protocol.MaxLineDashSegment,
			}
		}
		e.WriteByte(byte(d))
	}
	return e, nil
}

// setEnumProperty is the shared path for enum-typed stateful properties.
func (s *Surface) setEnumProperty(op protocol.Opcode, en *protocol.Enum, v string, mirror *string) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e, err := encEnum(en, v)
	if err != nil {
		return err
	}
	changed, err := s.c.setProperty(s.id, op, e)
	if err != nil {
		return err
	}
	if changed {
		*mirror = v
	}
	return nil
}

// setFloatProperty is the shared path for float32-encoded properties.
func (s *Surface) setFloatProperty(op protocol.Opcode, v float64, mirror *float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	changed, err := s.c.setProperty(s.id, op, encFloat(v))
	if err != nil {
		return err
	}
	if changed {
		*mirror = v
	}
	return nil
}

// setStringProperty is the shared path for string-encoded properties.
func (s *Surface) setStringProperty(op protocol.Opcode, v string, mirror *string) error {
	if skip, err := s.gate(); skip {
		return err
	}
	changed, err := s.c.setProperty(s.id, op, encString(v))
	if err != nil {
		return err
	}
	if changed {
		*mirror = v
	}
	return nil
}

// Width returns the last dispatched width.
func (s *Surface) Width() int { return s.width }

// SetWidth resizes the surface. The value is rounded before the change
// comparison, so two widths that round to the same integer are one write.
func (s *Surface) SetWidth(v float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := encCoord(v)
	changed, err := s.c.setProperty(s.id, protocol.OpSetWidth, e)
	if err != nil {
		return err
	}
	if changed {
		r, _ := protocol.RoundCoord(v)
		s.width = int(r)
	}
	return nil
}

// Height returns the last dispatched height.
func (s *Surface) Height() int { return s.height }

// SetHeight resizes the surface; rounding as in SetWidth.
func (s *Surface) SetHeight(v float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := encCoord(v)
	changed, err := s.c.setProperty(s.id, protocol.OpSetHeight, e)
	if err != nil {
		return err
	}
	if changed {
		r, _ := protocol.RoundCoord(v)
		s.height = int(r)
	}
	return nil
}

// TextRendering returns the current text rendering hint.
func (s *Surface) TextRendering() string { return s.textRendering }

// SetTextRendering sets the text rendering hint.
func (s *Surface) SetTextRendering(v string) error {
	return s.setEnumProperty(protocol.OpTextRendering, protocol.TextRendering, v, &s.textRendering)
}

// LineWidth returns the current line width.
func (s *Surface) LineWidth() float64 { return s.lineWidth }

// SetLineWidth sets the stroke line width.
func (s *Surface) SetLineWidth(v float64) error {
	return s.setFloatProperty(protocol.OpLineWidth, v, &s.lineWidth)
}

// LineCap returns the current line cap.
func (s *Surface) LineCap() string { return s.lineCap }

// SetLineCap sets the stroke cap style.
func (s *Surface) SetLineCap(v string) error {
	return s.setEnumProperty(protocol.OpLineCap, protocol.LineCap, v, &s.lineCap)
}

// LineJoin returns the current line join.
func (s *Surface) LineJoin() string { return s.lineJoin }

// SetLineJoin sets the stroke join style.
func (s *Surface) SetLineJoin(v string) error {
	return s.setEnumProperty(protocol.OpLineJoin, protocol.LineJoin, v, &s.lineJoin)
}

// MiterLimit returns the current miter limit.
func (s *Surface) MiterLimit() float64 { return s.miterLimit }

// SetMiterLimit sets the miter limit.
func (s *Surface) SetMiterLimit(v float64) error {
	return s.setFloatProperty(protocol.OpMiterLimit, v, &s.miterLimit)
}

// LineDash returns a copy of the current dash pattern.
func (s *Surface) LineDash() []int {
	out := make([]int, len(s.lineDash))
	copy(out, s.lineDash)
	return out
}

// SetLineDash sets the dash pattern. Segments are single bytes on the wire.
func (s *Surface) SetLineDash(dashes []int) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e, err := encLineDash(dashes)
	if err != nil {
		return err
	}
	changed, err := s.c.setProperty(s.id, protocol.OpLineDash, e)
	if err != nil {
		return err
	}
	if changed {
		s.lineDash = make([]int, len(dashes))
		copy(s.lineDash, dashes)
	}
	return nil
}

// LineDashOffset returns the current dash offset.
func (s *Surface) LineDashOffset() float64 { return s.lineDashOffset }

// SetLineDashOffset sets the dash offset.
func (s *Surface) SetLineDashOffset(v float64) error {
	return s.setFloatProperty(protocol.OpLineDashOffset, v, &s.lineDashOffset)
}

// Font returns the current font.
func (s *Surface) Font() string { return s.font }

// SetFont sets the font, CSS shorthand, e.g. "12px monospace".
func (s *Surface) SetFont(v string) error {
	return s.setStringProperty(protocol.OpFont, v, &s.font)
}

// TextAlign returns the current text alignment.
func (s *Surface) TextAlign() string { return s.textAlign }

// SetTextAlign sets the text alignment.
func (s *Surface) SetTextAlign(v string) error {
	return s.setEnumProperty(protocol.OpTextAlign, protocol.TextAlign, v, &s.textAlign)
}

// TextBaseline returns the current text baseline.
func (s *Surface) TextBaseline() string { return s.textBaseline }

// SetTextBaseline sets the text baseline.
func (s *Surface) SetTextBaseline(v string) error {
	return s.setEnumProperty(protocol.OpTextBaseline, protocol.TextBaseline, v, &s.textBaseline)
}

// Direction returns the current text direction.
func (s *Surface) Direction() string { return s.direction }

// SetDirection sets the text direction.
func (s *Surface) SetDirection(v string) error {
	return s.setEnumProperty(protocol.OpDirection, protocol.Direction, v, &s.direction)
}

// LetterSpacing returns the current letter spacing.
func (s *Surface) LetterSpacing() string { return s.letterSpacing }

// SetLetterSpacing sets letter spacing as a CSS length, e.g. "2px".
func (s *Surface) SetLetterSpacing(v string) error {
	return s.setStringProperty(protocol.OpLetterSpacing, v, &s.letterSpacing)
}

// FontKerning returns the current font kerning mode.
func (s *Surface) FontKerning() string { return s.fontKerning }

// SetFontKerning sets the font kerning mode.
func (s *Surface) SetFontKerning(v string) error {
	return s.setEnumProperty(protocol.OpFontKerning, protocol.FontKerning, v, &s.fontKerning)
}

// FontStretch returns the current font stretch.
func (s *Surface) FontStretch() string { return s.fontStretch }

// SetFontStretch sets the font stretch.
func (s *Surface) SetFontStretch(v string) error {
	return s.setEnumProperty(protocol.OpFontStretch, protocol.FontStretch, v, &s.fontStretch)
}

// FontVariantCaps returns the current font variant caps.
func (s *Surface) FontVariantCaps() string { return s.fontVariantCaps }

// SetFontVariantCaps sets the font variant caps.
func (s *Surface) SetFontVariantCaps(v string) error {
	return s.setEnumProperty(protocol.OpFontVariantCaps, protocol.FontVariantCaps, v, &s.fontVariantCaps)
}

// WordSpacing returns the current word spacing.
func (s *Surface) WordSpacing() string { return s.wordSpacing }

// SetWordSpacing sets word spacing as a CSS length, e.g. "4px".
func (s *Surface) SetWordSpacing(v string) error {
	return s.setStringProperty(protocol.OpWordSpacing, v, &s.wordSpacing)
}

// CreateLinearGradient creates a linear gradient between two points.
func (s *Surface) CreateLinearGradient(x0, y0, x1, y1 float64) *protocol.LinearGradient {
	return protocol.NewLinearGradient(x0, y0, x1, y1)
}

// CreateConicGradient creates a conic gradient around a center point.
func (s *Surface) CreateConicGradient(x, y, angle float64) *protocol.ConicGradient {
	return protocol.NewConicGradient(x, y, angle)
}

// CreateRadialGradient creates a radial gradient between two circles.
func (s *Surface) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) *protocol.RadialGradient {
	return protocol.NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

// FillStyle returns the current fill style.
func (s *Surface) FillStyle() protocol.Style { return s.fillStyle }

// SetFillStyle sets the fill style to a flat color or gradient. Styles are
// compared structurally: a value-equal gradient built twice dispatches once.
func (s *Surface) SetFillStyle(style protocol.Style) error {
	return s.setStyleProperty(protocol.OpFillStyle, style, &s.fillStyle)
}

// StrokeStyle returns the current stroke style.
func (s *Surface) StrokeStyle() protocol.Style { return s.strokeStyle }

// SetStrokeStyle sets the stroke style to a flat color or gradient.
func (s *Surface) SetStrokeStyle(style protocol.Style) error {
	return s.setStyleProperty(protocol.OpStrokeStyle, style, &s.strokeStyle)
}

func (s *Surface) setStyleProperty(op protocol.Opcode, style protocol.Style, mirror *protocol.Style) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e, err := encStyle(style)
	if err != nil {
		return err
	}
	changed, err := s.c.setProperty(s.id, op, e)
	if err != nil {
		return err
	}
	if changed {
		*mirror = style
	}
	return nil
}

// ShadowBlur returns the current shadow blur.
func (s *Surface) ShadowBlur() float64 { return s.shadowBlur }

// SetShadowBlur sets the shadow blur radius.
func (s *Surface) SetShadowBlur(v float64) error {
	return s.setFloatProperty(protocol.OpShadowBlur, v, &s.shadowBlur)
}

// ShadowColor returns the current shadow color.
func (s *Surface) ShadowColor() string { return s.shadowColor }

// SetShadowColor sets the shadow color.
func (s *Surface) SetShadowColor(v string) error {
	return s.setStringProperty(protocol.OpShadowColor, v, &s.shadowColor)
}

// ShadowOffsetX returns the current shadow X offset.
func (s *Surface) ShadowOffsetX() float64 { return s.shadowOffsetX }

// SetShadowOffsetX sets the shadow X offset.
func (s *Surface) SetShadowOffsetX(v float64) error {
	return s.setFloatProperty(protocol.OpShadowOffsetX, v, &s.shadowOffsetX)
}

// ShadowOffsetY returns the current shadow Y offset.
func (s *Surface) ShadowOffsetY() float64 { return s.shadowOffsetY }

// SetShadowOffsetY sets the shadow Y offset.
func (s *Surface) SetShadowOffsetY(v float64) error {
	return s.setFloatProperty(protocol.OpShadowOffsetY, v, &s.shadowOffsetY)
}

// GlobalAlpha returns the current global alpha.
func (s *Surface) GlobalAlpha() float64 { return s.globalAlpha }

// SetGlobalAlpha sets the global alpha.
func (s *Surface) SetGlobalAlpha(v float64) error {
	return s.setFloatProperty(protocol.OpGlobalAlpha, v, &s.globalAlpha)
}

// GlobalCompositeOperation returns the current composite operation.
func (s *Surface) GlobalCompositeOperation() string { return s.globalCompositeOperation }

// SetGlobalCompositeOperation sets the composite operation.
func (s *Surface) SetGlobalCompositeOperation(v string) error {
	return s.setEnumProperty(protocol.OpGlobalCompositeOperation, protocol.CompositeOperation, v, &s.globalCompositeOperation)
}

// Filter returns the current filter string; empty means unset.
func (s *Surface) Filter() string { return s.filter }

// SetFilter sets the CSS filter string.
func (s *Surface) SetFilter(v string) error {
	return s.setStringProperty(protocol.OpFilter, v, &s.filter)
}

// ImageSmoothingEnabled returns whether image smoothing is on.
func (s *Surface) ImageSmoothingEnabled() bool { return s.imageSmoothingEnabled }

// SetImageSmoothingEnabled toggles image smoothing.
func (s *Surface) SetImageSmoothingEnabled(v bool) error {
	if skip, err := s.gate(); skip {
		return err
	}
	changed, err := s.c.setProperty(s.id, protocol.OpImageSmoothingEnabled, encBool(v))
	if err != nil {
		return err
	}
	if changed {
		s.imageSmoothingEnabled = v
	}
	return nil
}

// ImageSmoothingQuality returns the current smoothing quality.
func (s *Surface) ImageSmoothingQuality() string { return s.imageSmoothingQuality }

// SetImageSmoothingQuality sets the smoothing quality.
func (s *Surface) SetImageSmoothingQuality(v string) error {
	return s.setEnumProperty(protocol.OpImageSmoothingQuality, protocol.ImageSmoothingQuality, v, &s.imageSmoothingQuality)
}

// Drawing operations. Unlike property setters these always dispatch.

// dispatchOp frames a no-payload operation.
func (s *Surface) dispatchOp(op protocol.Opcode) error {
	if skip, err := s.gate(); skip {
		return err
	}
	return s.c.dispatch(s.id, op, nil)
}

// dispatchEnc frames an operation with an encoded payload, surfacing any
// sticky range error before anything is written.
func (s *Surface) dispatchEnc(op protocol.Opcode, e *protocol.Encoder) error {
	if err := e.Err(); err != nil {
		return err
	}
	return s.c.dispatch(s.id, op, e.Bytes())
}

func (s *Surface) dispatchRect(op protocol.Opcode, x, y, width, height float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(x)
	e.WriteCoord(y)
	e.WriteCoord(width)
	e.WriteCoord(height)
	return s.dispatchEnc(op, e)
}

// ClearRect clears a rectangle to transparent black.
func (s *Surface) ClearRect(x, y, width, height float64) error {
	return s.dispatchRect(protocol.OpClearRect, x, y, width, height)
}

// FillRect fills a rectangle with the current fill style.
func (s *Surface) FillRect(x, y, width, height float64) error {
	return s.dispatchRect(protocol.OpFillRect, x, y, width, height)
}

// StrokeRect strokes a rectangle outline with the current stroke style.
func (s *Surface) StrokeRect(x, y, width, height float64) error {
	return s.dispatchRect(protocol.OpStrokeRect, x, y, width, height)
}

// Rect adds a rectangle to the current path.
func (s *Surface) Rect(x, y, width, height float64) error {
	return s.dispatchRect(protocol.OpRect, x, y, width, height)
}

// RoundRect adds a rounded rectangle to the current path. One radius rounds
// all corners; up to four apply per corner.
func (s *Surface) RoundRect(x, y, width, height float64, radii ...float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	if len(radii) > protocol.MaxRoundRectRadii {
		return &protocol.ValueOutOfRangeError{
			What: "round rect radii count", Value: float64(len(radii)),
			Min: 0, Max: protocol.MaxRoundRectRadii,
		}
	}
	e := protocol.NewEncoder()
	e.WriteCoord(x)
	e.WriteCoord(y)
	e.WriteCoord(width)
	e.WriteCoord(height)
	e.WriteByte(byte(len(radii)))
	for _, r := range radii {
		e.WriteCoord(r)
	}
	return s.dispatchEnc(protocol.OpRoundRect, e)
}

func (s *Surface) dispatchText(op protocol.Opcode, text string, x, y float64, maxWidth *float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteBool(maxWidth != nil)
	e.WriteString(text)
	e.WriteCoord(x)
	e.WriteCoord(y)
	if maxWidth != nil {
		e.WriteCoord(*maxWidth)
	}
	return s.dispatchEnc(op, e)
}

// FillText draws filled text at (x, y).
func (s *Surface) FillText(text string, x, y float64) error {
	return s.dispatchText(protocol.OpFillText, text, x, y, nil)
}

// FillTextMaxWidth draws filled text compressed to at most maxWidth.
func (s *Surface) FillTextMaxWidth(text string, x, y, maxWidth float64) error {
	return s.dispatchText(protocol.OpFillText, text, x, y, &maxWidth)
}

// StrokeText draws outlined text at (x, y).
func (s *Surface) StrokeText(text string, x, y float64) error {
	return s.dispatchText(protocol.OpStrokeText, text, x, y, nil)
}

// StrokeTextMaxWidth draws outlined text compressed to at most maxWidth.
func (s *Surface) StrokeTextMaxWidth(text string, x, y, maxWidth float64) error {
	return s.dispatchText(protocol.OpStrokeText, text, x, y, &maxWidth)
}

// BeginPath starts a new path.
func (s *Surface) BeginPath() error { return s.dispatchOp(protocol.OpBeginPath) }

// ClosePath closes the current subpath.
func (s *Surface) ClosePath() error { return s.dispatchOp(protocol.OpClosePath) }

// MoveTo moves the path cursor without drawing.
func (s *Surface) MoveTo(x, y float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(x)
	e.WriteCoord(y)
	return s.dispatchEnc(protocol.OpMoveTo, e)
}

// LineTo adds a straight segment to the path.
func (s *Surface) LineTo(x, y float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(x)
	e.WriteCoord(y)
	return s.dispatchEnc(protocol.OpLineTo, e)
}

// BezierCurveTo adds a cubic Bezier segment.
func (s *Surface) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(cp1x)
	e.WriteCoord(cp1y)
	e.WriteCoord(cp2x)
	e.WriteCoord(cp2y)
	e.WriteCoord(x)
	e.WriteCoord(y)
	return s.dispatchEnc(protocol.OpBezierCurveTo, e)
}

// QuadraticCurveTo adds a quadratic Bezier segment.
func (s *Surface) QuadraticCurveTo(cpx, cpy, x, y float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(cpx)
	e.WriteCoord(cpy)
	e.WriteCoord(x)
	e.WriteCoord(y)
	return s.dispatchEnc(protocol.OpQuadraticCurveTo, e)
}

// Arc adds a circular arc. Angles are radians.
func (s *Surface) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(x)
	e.WriteCoord(y)
	e.WriteCoord(radius)
	e.WriteFloat32(float32(startAngle))
	e.WriteFloat32(float32(endAngle))
	e.WriteBool(counterclockwise)
	return s.dispatchEnc(protocol.OpArc, e)
}

// ArcTo adds an arc joining two tangents.
func (s *Surface) ArcTo(x1, y1, x2, y2, radius float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(x1)
	e.WriteCoord(y1)
	e.WriteCoord(x2)
	e.WriteCoord(y2)
	e.WriteCoord(radius)
	return s.dispatchEnc(protocol.OpArcTo, e)
}

// Ellipse adds an elliptical arc. Angles are radians.
func (s *Surface) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(x)
	e.WriteCoord(y)
	e.WriteCoord(radiusX)
	e.WriteCoord(radiusY)
	e.WriteFloat32(float32(rotation))
	e.WriteFloat32(float32(startAngle))
	e.WriteFloat32(float32(endAngle))
	e.WriteBool(counterclockwise)
	return s.dispatchEnc(protocol.OpEllipse, e)
}

// Fill fills the current path with the nonzero winding rule.
func (s *Surface) Fill() error { return s.FillWithRule("nonzero") }

// FillWithRule fills the current path with an explicit fill rule.
func (s *Surface) FillWithRule(rule string) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e, err := encEnum(protocol.FillRule, rule)
	if err != nil {
		return err
	}
	return s.dispatchEnc(protocol.OpFill, e)
}

// Stroke strokes the current path.
func (s *Surface) Stroke() error { return s.dispatchOp(protocol.OpStroke) }

// Clip clips to the current path with the nonzero winding rule.
func (s *Surface) Clip() error { return s.ClipWithRule("nonzero") }

// ClipWithRule clips to the current path with an explicit fill rule.
func (s *Surface) ClipWithRule(rule string) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e, err := encEnum(protocol.FillRule, rule)
	if err != nil {
		return err
	}
	return s.dispatchEnc(protocol.OpClip, e)
}

// Rotate rotates the transform by angle radians.
func (s *Surface) Rotate(angle float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteFloat32(float32(angle))
	return s.dispatchEnc(protocol.OpRotate, e)
}

// Translate translates the transform.
func (s *Surface) Translate(x, y float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteCoord(x)
	e.WriteCoord(y)
	return s.dispatchEnc(protocol.OpTranslate, e)
}

// Scale scales the transform.
func (s *Surface) Scale(x, y float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	e.WriteFloat32(float32(x))
	e.WriteFloat32(float32(y))
	return s.dispatchEnc(protocol.OpScale, e)
}

func (s *Surface) dispatchTransform(op protocol.Opcode, m11, m12, m21, m22, m31, m32 float64) error {
	if skip, err := s.gate(); skip {
		return err
	}
	e := protocol.NewEncoder()
	for _, m := range [...]float64{m11, m12, m21, m22, m31, m32} {
		e.WriteFloat32(float32(m))
	}
	return s.dispatchEnc(op, e)
}

// Transform multiplies the current transform by the given matrix.
func (s *Surface) Transform(m11, m12, m21, m22, m31, m32 float64) error {
	return s.dispatchTransform(protocol.OpTransform, m11, m12, m21, m22, m31, m32)
}

// SetTransform replaces the current transform with the given matrix.
func (s *Surface) SetTransform(m11, m12, m21, m22, m31, m32 float64) error {
	return s.dispatchTransform(protocol.OpSetTransform, m11, m12, m21, m22, m31, m32)
}

// ResetTransform restores the identity transform.
func (s *Surface) ResetTransform() error { return s.dispatchOp(protocol.OpResetTransform) }

// Save pushes the drawing state onto the renderer's state stack.
func (s *Surface) Save() error { return s.dispatchOp(protocol.OpSave) }

// Restore pops the renderer's state stack.
//
// Restore changes renderer-side state the shadow mirror cannot see, so the
// mirror is cleared for this surface: the next set of any property
// dispatches unconditionally rather than trusting a stale mirror.
func (s *Surface) Restore() error {
	if err := s.dispatchOp(protocol.OpRestore); err != nil {
		return err
	}
	if !s.disabled && !s.removed {
		s.c.shadow.Forget(s.id)
	}
	return nil
}

// Reset wipes the surface back to its default state, including the shadow
// mirror (everything becomes unset, so following sets dispatch).
func (s *Surface) Reset() error {
	if err := s.dispatchOp(protocol.OpReset); err != nil {
		return err
	}
	if !s.disabled && !s.removed {
		s.c.shadow.Forget(s.id)
	}
	return nil
}
