package protocol

// SurfaceID identifies one drawing surface. IDs are a single byte on the
// wire, which caps a process at 256 concurrently live surfaces.
type SurfaceID uint8

// Opcode identifies one drawing or state operation.
//
// The table is append-only: opcodes are never reused or renumbered within a
// protocol generation, so a persisted stream written today decodes forever.
type Opcode uint8

const (
	OpCreate Opcode = iota // payload: width int16, height int16
	OpRemove
	OpSetWidth  // payload: int16
	OpSetHeight // payload: int16
	OpClearRect // payload: x, y, w, h int16
	OpFillRect
	OpStrokeRect
	OpFillText // payload: hasMaxWidth byte, text string, x, y int16 [, maxWidth int16]
	OpStrokeText
	OpTextRendering // payload: enum byte
	OpLineWidth     // payload: float32
	OpLineCap       // payload: enum byte
	OpLineJoin      // payload: enum byte
	OpMiterLimit    // payload: float32
	OpLineDash      // payload: count byte, count segment bytes
	OpLineDashOffset
	OpFont // payload: string
	OpTextAlign
	OpTextBaseline
	OpDirection
	OpLetterSpacing // payload: string, e.g. "2px"
	OpFontKerning
	OpFontStretch
	OpFontVariantCaps
	OpWordSpacing
	OpFillStyle // payload: style tag byte + color string or gradient blob
	OpStrokeStyle
	OpShadowBlur
	OpShadowColor
	OpShadowOffsetX
	OpShadowOffsetY
	OpBeginPath
	OpClosePath
	OpMoveTo
	OpLineTo
	OpBezierCurveTo
	OpQuadraticCurveTo
	OpArc
	OpArcTo
	OpEllipse
	OpRect
	OpRoundRect
	OpFill // payload: fill rule enum byte
	OpStroke
	OpClip // payload: fill rule enum byte
	OpRotate
	OpTranslate
	OpScale
	OpTransform // payload: six float32
	OpSetTransform
	OpResetTransform
	OpGlobalAlpha
	OpGlobalCompositeOperation
	OpSave
	OpRestore
	OpReset
	OpFilter
	opReserved57 // reserved for image ops in a future generation
	opReserved58
	OpImageSmoothingEnabled
	OpImageSmoothingQuality
	OpCommit // flushes the transport; no payload
)

var opcodeNames = [...]string{
	OpCreate:                   "create",
	OpRemove:                   "remove",
	OpSetWidth:                 "setWidth",
	OpSetHeight:                "setHeight",
	OpClearRect:                "clearRect",
	OpFillRect:                 "fillRect",
	OpStrokeRect:               "strokeRect",
	OpFillText:                 "fillText",
	OpStrokeText:               "strokeText",
	OpTextRendering:            "textRendering",
	OpLineWidth:                "lineWidth",
	OpLineCap:                  "lineCap",
	OpLineJoin:                 "lineJoin",
	OpMiterLimit:               "miterLimit",
	OpLineDash:                 "lineDash",
	OpLineDashOffset:           "lineDashOffset",
	OpFont:                     "font",
	OpTextAlign:                "textAlign",
	OpTextBaseline:             "textBaseline",
	OpDirection:                "direction",
	OpLetterSpacing:            "letterSpacing",
	OpFontKerning:              "fontKerning",
	OpFontStretch:              "fontStretch",
	OpFontVariantCaps:          "fontVariantCaps",
	OpWordSpacing:              "wordSpacing",
	OpFillStyle:                "fillStyle",
	OpStrokeStyle:              "strokeStyle",
	OpShadowBlur:               "shadowBlur",
	OpShadowColor:              "shadowColor",
	OpShadowOffsetX:            "shadowOffsetX",
	OpShadowOffsetY:            "shadowOffsetY",
	OpBeginPath:                "beginPath",
	OpClosePath:                "closePath",
	OpMoveTo:                   "moveTo",
	OpLineTo:                   "lineTo",
	OpBezierCurveTo:            "bezierCurveTo",
	OpQuadraticCurveTo:         "quadraticCurveTo",
	OpArc:                      "arc",
	OpArcTo:                    "arcTo",
	OpEllipse:                  "ellipse",
	OpRect:                     "rect",
	OpRoundRect:                "roundRect",
	OpFill:                     "fill",
	OpStroke:                   "stroke",
	OpClip:                     "clip",
	OpRotate:                   "rotate",
	OpTranslate:                "translate",
	OpScale:                    "scale",
	OpTransform:                "transform",
	OpSetTransform:             "setTransform",
	OpResetTransform:           "resetTransform",
	OpGlobalAlpha:              "globalAlpha",
	OpGlobalCompositeOperation: "globalCompositeOperation",
	OpSave:                     "save",
	OpRestore:                  "restore",
	OpReset:                    "reset",
	OpFilter:                   "filter",
	opReserved57:               "reserved57",
	opReserved58:               "reserved58",
	OpImageSmoothingEnabled:    "imageSmoothingEnabled",
	OpImageSmoothingQuality:    "imageSmoothingQuality",
	OpCommit:                   "commit",
}

// String returns the operation name, or "unknown" for opcodes outside the
// current generation's table.
func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "unknown"
}
