package graphics

import "image"

// Canvas records or renders drawing commands.
type Canvas interface {
	// Save pushes the current transform state and returns the save count
	// before the push.
	Save() int

	// SaveLayer pushes an off-screen layer covering bounds. Drawing until
	// the matching Restore is composited back using paint's blend mode and
	// alpha. A nil paint composites with BlendModeSrcOver at full opacity.
	// Returns the save count before the push.
	SaveLayer(bounds Rect, paint *Paint) int

	// Restore pops the most recent save or layer.
	Restore()

	// RestoreToCount pops saves and layers until the save count equals count.
	RestoreToCount(count int)

	// SaveCount returns the number of saves and layers currently pushed.
	SaveCount() int

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Clear fills the current layer with the given color, ignoring blend mode.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawImage draws an image with its top-left corner at the given
	// position, composited with paint's blend mode and alpha.
	DrawImage(img image.Image, position Offset, paint Paint)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
