package graphics

import "fmt"

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// BlendMode controls how source and destination colors are composited.
// Values follow the Porter-Duff ordering used by Skia's SkBlendMode.
type BlendMode int

const (
	BlendModeClear   BlendMode = iota // clear
	BlendModeSrc                      // src
	BlendModeDst                      // dst
	BlendModeSrcOver                  // src_over
	BlendModeDstOver                  // dst_over
	BlendModeSrcIn                    // src_in
	BlendModeDstIn                    // dst_in
	BlendModeSrcOut                   // src_out
	BlendModeDstOut                   // dst_out
)

var _BlendMode_names = []string{
	"clear", "src", "dst", "src_over", "dst_over",
	"src_in", "dst_in", "src_out", "dst_out",
}

// String returns a human-readable representation of the blend mode.
func (b BlendMode) String() string {
	if int(b) >= 0 && int(b) < len(_BlendMode_names) {
		return _BlendMode_names[b]
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// Paint describes how to draw a shape or bitmap on the canvas.
//
// A zero-value Paint draws nothing (BlendModeClear with Alpha 0).
// Use DefaultPaint for a basic opaque white fill.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64

	// AntiAlias smooths shape edges using fractional pixel coverage.
	AntiAlias bool
	// Dither requests error diffusion when reducing color depth. The raster
	// canvas always composites at 8 bits per channel, so it records intent only.
	Dither bool
	// FilterBitmap selects a smoothing filter when bitmaps are scaled.
	FilterBitmap bool

	// Compositing
	BlendMode BlendMode // Compositing mode; out-of-range values default to BlendModeSrcOver
	Alpha     float64   // Overall opacity 0.0-1.0; out-of-range values default to 1.0
}

// DefaultPaint returns a basic opaque white fill paint with standard compositing.
func DefaultPaint() Paint {
	return Paint{
		Color:       ColorWhite,
		Style:       PaintStyleFill,
		StrokeWidth: 1,
		BlendMode:   BlendModeSrcOver,
		Alpha:       1.0,
	}
}

// SmoothPaint returns DefaultPaint with anti-aliasing, dithering and bitmap
// filtering enabled.
func SmoothPaint() Paint {
	p := DefaultPaint()
	p.AntiAlias = true
	p.Dither = true
	p.FilterBitmap = true
	return p
}

// effectiveBlend clamps the blend mode to the supported range.
func (p Paint) effectiveBlend() BlendMode {
	if p.BlendMode < BlendModeClear || p.BlendMode > BlendModeDstOut {
		return BlendModeSrcOver
	}
	return p.BlendMode
}

// effectiveAlpha clamps alpha; invalid values (negative, >1, NaN) default to 1.0.
func (p Paint) effectiveAlpha() float64 {
	if !(p.Alpha >= 0 && p.Alpha <= 1) {
		return 1.0
	}
	return p.Alpha
}
