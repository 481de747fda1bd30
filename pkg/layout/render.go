package layout

import "github.com/TkwkT/CircleImageView/pkg/graphics"

// RenderObject handles measuring and painting.
type RenderObject interface {
	Measure(width, height MeasureSpec)
	MeasuredWidth() int
	MeasuredHeight() int
	Paint(ctx *PaintContext)
	MarkNeedsLayout()
	MarkNeedsPaint()
	NeedsLayout() bool
	NeedsPaint() bool
	SetOwner(owner *PipelineOwner)
}

// RenderBoxBase provides base behavior for render boxes: measured size,
// padding, dirty flags and a cached layer of the last recorded paint.
type RenderBoxBase struct {
	measuredWidth  int
	measuredHeight int
	padding        EdgeInsets
	owner          *PipelineOwner
	self           RenderObject
	needsLayout    bool
	needsPaint     bool
	layer          *graphics.DisplayList
}

// MeasuredWidth returns the width recorded by the last measure pass.
func (r *RenderBoxBase) MeasuredWidth() int {
	return r.measuredWidth
}

// MeasuredHeight returns the height recorded by the last measure pass.
func (r *RenderBoxBase) MeasuredHeight() int {
	return r.measuredHeight
}

// SetMeasuredDimension stores the result of a measure pass.
// If the size changes, marks paint as dirty since the recorded content
// depends on the size.
func (r *RenderBoxBase) SetMeasuredDimension(width, height int) {
	r.needsLayout = false
	if r.measuredWidth == width && r.measuredHeight == height {
		return
	}
	r.measuredWidth = width
	r.measuredHeight = height
	r.MarkNeedsPaint()
}

// Bounds returns the measured area as a rect at the origin.
func (r *RenderBoxBase) Bounds() graphics.Rect {
	return graphics.RectFromLTWH(0, 0, float64(r.measuredWidth), float64(r.measuredHeight))
}

// Padding returns the padding inside the measured bounds.
func (r *RenderBoxBase) Padding() EdgeInsets {
	return r.padding
}

// SetPadding updates the padding and requests a new layout.
func (r *RenderBoxBase) SetPadding(padding EdgeInsets) {
	if r.padding == padding {
		return
	}
	r.padding = padding
	r.MarkNeedsLayout()
}

// MarkNeedsLayout marks this render box as needing measure and paint.
func (r *RenderBoxBase) MarkNeedsLayout() {
	r.needsLayout = true
	r.needsPaint = true
	if r.owner == nil || r.self == nil {
		return
	}
	r.owner.ScheduleLayout(r.self)
}

// MarkNeedsPaint marks this render box as needing paint and schedules it
// with the pipeline owner. This is the invalidate step: it never paints
// synchronously.
func (r *RenderBoxBase) MarkNeedsPaint() {
	r.needsPaint = true
	if r.owner == nil || r.self == nil {
		return
	}
	r.owner.SchedulePaint(r.self)
}

// SetOwner assigns the pipeline owner for scheduling layout and paint.
func (r *RenderBoxBase) SetOwner(owner *PipelineOwner) {
	r.owner = owner
}

// Owner returns the pipeline owner, or nil when detached.
func (r *RenderBoxBase) Owner() *PipelineOwner {
	return r.owner
}

// SetSelf registers the concrete render object for scheduling.
func (r *RenderBoxBase) SetSelf(self RenderObject) {
	r.self = self
	r.needsLayout = true // New render objects always need initial layout
	r.needsPaint = true  // New render objects always need initial paint
}

// Self returns the concrete render object registered via SetSelf.
func (r *RenderBoxBase) Self() RenderObject {
	return r.self
}

// NeedsLayout returns true if this render box needs a measure pass.
func (r *RenderBoxBase) NeedsLayout() bool {
	return r.needsLayout
}

// NeedsPaint returns true if this render box needs painting.
func (r *RenderBoxBase) NeedsPaint() bool {
	return r.needsPaint
}

// ClearNeedsPaint marks this render box as painted.
func (r *RenderBoxBase) ClearNeedsPaint() {
	r.needsPaint = false
}

// Layer returns the display list recorded by the last paint, if any.
func (r *RenderBoxBase) Layer() *graphics.DisplayList {
	return r.layer
}

// SetLayer stores the display list recorded by the pipeline owner.
func (r *RenderBoxBase) SetLayer(layer *graphics.DisplayList) {
	r.layer = layer
}
