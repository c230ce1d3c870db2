package protocol

// Protocol limits. Most follow directly from fixed-width wire fields: a
// one-byte count can never carry more than 255 entries, a one-byte id never
// more than 256 surfaces.
const (
	// MaxSurfaces is the number of concurrently live surfaces per process.
	MaxSurfaces = 256

	// MaxGradientStops is the most color stops one gradient can carry.
	MaxGradientStops = 255

	// MaxRoundRectRadii is the most corner radii a round rect accepts.
	MaxRoundRectRadii = 4

	// MaxLineDashSegments is the most segments one dash pattern can carry.
	MaxLineDashSegments = 255

	// MaxLineDashSegment is the largest single dash segment length.
	MaxLineDashSegment = 255

	// MinCoord and MaxCoord bound the int16 coordinate encoding.
	MinCoord = -32768
	MaxCoord = 32767

	// MaxFramePayload caps a single frame payload. Nothing in the current
	// operation set comes close; the cap exists so a corrupted length field
	// fails fast instead of allocating gigabytes.
	MaxFramePayload = 1 << 20

	// MaxQueryBody caps a query or response JSON body, for the same reason.
	MaxQueryBody = 1 << 20
)
