package layout

import "github.com/TkwkT/CircleImageView/pkg/graphics"

// PipelineOwner tracks render objects that need layout or paint and runs
// the measure and paint phases of a frame.
//
// A frame is:
//  1. FlushLayout - re-measures the root if anything asked for layout
//  2. FlushPaint - records the root into a display list and replays it
//
// Both phases run on the UI thread. Render objects only schedule work here;
// nothing paints synchronously from a setter.
type PipelineOwner struct {
	dirtyLayout map[RenderObject]struct{}
	dirtyPaint  map[RenderObject]struct{}
	frames      int
}

// Attach connects root to this owner and schedules its first frame.
func (p *PipelineOwner) Attach(root RenderObject) {
	root.SetOwner(p)
	p.ScheduleLayout(root)
}

// Detach disconnects root from this owner and drops its pending work.
func (p *PipelineOwner) Detach(root RenderObject) {
	root.SetOwner(nil)
	delete(p.dirtyLayout, root)
	delete(p.dirtyPaint, root)
}

// ScheduleLayout marks a render object as needing measure.
func (p *PipelineOwner) ScheduleLayout(object RenderObject) {
	if p.dirtyLayout == nil {
		p.dirtyLayout = make(map[RenderObject]struct{})
	}
	p.dirtyLayout[object] = struct{}{}
	p.SchedulePaint(object)
}

// SchedulePaint marks a render object as needing paint.
func (p *PipelineOwner) SchedulePaint(object RenderObject) {
	if p.dirtyPaint == nil {
		p.dirtyPaint = make(map[RenderObject]struct{})
	}
	p.dirtyPaint[object] = struct{}{}
}

// NeedsLayout reports if any render objects need layout.
func (p *PipelineOwner) NeedsLayout() bool {
	return len(p.dirtyLayout) > 0
}

// NeedsPaint reports if any render objects need paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return len(p.dirtyPaint) > 0
}

// Frames returns the number of frames painted by FlushPaint.
func (p *PipelineOwner) Frames() int {
	return p.frames
}

// FlushLayout measures root with the given constraints when layout is pending.
func (p *PipelineOwner) FlushLayout(root RenderObject, width, height MeasureSpec) {
	if root == nil || !p.NeedsLayout() {
		return
	}
	root.Measure(width, height)
	clear(p.dirtyLayout)
}

// FlushPaint records root into a display list and composites it onto
// canvas. Returns false when nothing needed paint.
func (p *PipelineOwner) FlushPaint(root RenderObject, canvas graphics.Canvas) bool {
	if root == nil || !p.NeedsPaint() {
		return false
	}

	recorder := &graphics.PictureRecorder{}
	size := graphics.Size{Width: float64(root.MeasuredWidth()), Height: float64(root.MeasuredHeight())}
	root.Paint(&PaintContext{Canvas: recorder.BeginRecording(size)})
	layer := recorder.EndRecording()
	if holder, ok := root.(interface{ SetLayer(*graphics.DisplayList) }); ok {
		holder.SetLayer(layer)
	}
	if clearer, ok := root.(interface{ ClearNeedsPaint() }); ok {
		clearer.ClearNeedsPaint()
	}
	clear(p.dirtyPaint)

	// root is clean now, so this replays the layer just recorded.
	(&PaintContext{Canvas: canvas}).PaintChildWithLayer(root, graphics.Offset{})
	p.frames++
	return true
}
