package protocol

// Enum is one enumerated wire domain: a fixed, ordered table of accepted
// strings whose index is the byte sent on the wire. Tables are append-only
// for the same reason opcodes are.
type Enum struct {
	domain string
	values []string
}

// Domain returns the domain name used in error messages.
func (en *Enum) Domain() string { return en.domain }

// Values returns every accepted value in wire order. The returned slice is
// shared; do not modify.
func (en *Enum) Values() []string { return en.values }

// Encode maps a string to its wire byte. Unknown strings fail with
// *InvalidEnumValueError naming the valid set.
func (en *Enum) Encode(v string) (byte, error) {
	for i, s := range en.values {
		if s == v {
			return byte(i), nil
		}
	}
	return 0, &InvalidEnumValueError{Domain: en.domain, Value: v, Valid: en.values}
}

// Decode maps a wire byte back to its string. Bytes outside the table fail
// with *ValueOutOfRangeError.
func (en *Enum) Decode(b byte) (string, error) {
	if int(b) >= len(en.values) {
		return "", &ValueOutOfRangeError{
			What: en.domain + " code", Value: float64(b), Min: 0, Max: float64(len(en.values) - 1),
		}
	}
	return en.values[b], nil
}

var (
	TextRendering = &Enum{"textRendering", []string{
		"auto", "optimizeSpeed", "optimizeLegibility", "geometricPrecision",
	}}

	LineCap = &Enum{"lineCap", []string{"butt", "round", "square"}}

	LineJoin = &Enum{"lineJoin", []string{"miter", "bevel", "round"}}

	TextAlign = &Enum{"textAlign", []string{"start", "end", "left", "right", "center"}}

	TextBaseline = &Enum{"textBaseline", []string{
		"alphabetic", "hanging", "top", "middle", "bottom", "ideographic",
	}}

	Direction = &Enum{"direction", []string{"inherit", "ltr", "rtl"}}

	FontKerning = &Enum{"fontKerning", []string{"auto", "normal", "none"}}

	FontStretch = &Enum{"fontStretch", []string{
		"normal", "ultra-condensed", "extra-condensed", "condensed",
		"semi-condensed", "semi-expanded", "expanded", "extra-expanded",
		"ultra-expanded",
	}}

	FontVariantCaps = &Enum{"fontVariantCaps", []string{
		"normal", "small-caps", "all-small-caps", "petite-caps",
		"all-petite-caps", "unicase", "titling-caps",
	}}

	FillRule = &Enum{"fillRule", []string{"nonzero", "evenodd"}}

	CompositeOperation = &Enum{"globalCompositeOperation", []string{
		"source-over", "source-in", "source-out", "source-atop",
		"destination-over", "destination-in", "destination-out",
		"destination-atop", "lighter", "copy", "xor", "multiply", "screen",
		"overlay", "darken", "lighten", "color-dodge", "color-burn",
		"hard-light", "soft-light", "difference", "exclusion", "hue",
		"saturation", "color", "luminosity",
	}}

	ImageSmoothingQuality = &Enum{"imageSmoothingQuality", []string{"low", "medium", "high"}}
)
