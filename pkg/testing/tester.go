package testing

import (
	"image"
	"sync"
	"testing"

	"github.com/TkwkT/CircleImageView/pkg/errors"
	"github.com/TkwkT/CircleImageView/pkg/graphics"
	"github.com/TkwkT/CircleImageView/pkg/layout"
	"github.com/TkwkT/CircleImageView/pkg/platform"
	"github.com/TkwkT/CircleImageView/pkg/widgets"
)

const (
	// DefaultTestWidth is the default width constraint for the test surface.
	DefaultTestWidth = 100
	// DefaultTestHeight is the default height constraint for the test surface.
	DefaultTestHeight = 100
)

// WidgetTester drives the measure and paint phases of a single render
// object the way the host UI loop would, with a queued dispatcher standing
// in for the UI thread. Each painted frame is rasterized with
// graphics.RasterCanvas and serialized for op assertions.
//
// Dispatch is safe to call from any goroutine; every other method must be
// called from the test goroutine.
type WidgetTester struct {
	pipeline *layout.PipelineOwner
	root     layout.RenderObject
	width    layout.MeasureSpec
	height   layout.MeasureSpec

	mu         sync.Mutex
	dispatches []func()

	image *image.RGBA
	ops   []DisplayOp
}

// NewWidgetTester creates a tester with exact DefaultTestWidth ×
// DefaultTestHeight constraints and registers it as the platform
// dispatcher. Call Cleanup when done, or use NewWidgetTesterWithT.
func NewWidgetTester() *WidgetTester {
	t := &WidgetTester{
		pipeline: &layout.PipelineOwner{},
		width:    layout.Exactly(DefaultTestWidth),
		height:   layout.Exactly(DefaultTestHeight),
	}
	platform.RegisterDispatch(t.post)
	return t
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup detaches the root and unregisters the dispatcher.
func (t *WidgetTester) Cleanup() {
	if t.root != nil {
		t.pipeline.Detach(t.root)
		t.root = nil
	}
	platform.RegisterDispatch(nil)
}

// SetConstraints sets the measure specs used for the next layout and
// schedules one.
func (t *WidgetTester) SetConstraints(width, height layout.MeasureSpec) {
	t.width, t.height = width, height
	if t.root != nil {
		t.pipeline.ScheduleLayout(t.root)
	}
}

// Host returns widget host services backed by this tester's dispatcher.
func (t *WidgetTester) Host(res widgets.Resources) widgets.Host {
	return widgets.Host{
		Resources: res,
		Dispatch:  t.post,
	}
}

// Mount attaches root as the tested render object and runs one frame.
func (t *WidgetTester) Mount(root layout.RenderObject) {
	if t.root != nil {
		t.pipeline.Detach(t.root)
	}
	t.root = root
	t.image = nil
	t.ops = nil
	t.pipeline.Attach(root)
	t.Pump()
}

// Pump runs queued dispatches, then layout and paint if anything is dirty.
// Returns true if a frame was painted.
func (t *WidgetTester) Pump() bool {
	t.RunDispatches()
	if t.root == nil {
		return false
	}
	t.pipeline.FlushLayout(t.root, t.width, t.height)

	canvas := graphics.NewRasterCanvas(t.root.MeasuredWidth(), t.root.MeasuredHeight())
	if !t.pipeline.FlushPaint(t.root, canvas) {
		return false
	}
	t.image = canvas.Image()
	t.ops = nil
	if holder, ok := t.root.(interface{ Layer() *graphics.DisplayList }); ok && holder.Layer() != nil {
		t.ops = serializeDisplayList(holder.Layer())
	}
	return true
}

// Dispatch queues a callback for the next Pump, mirroring platform.Dispatch.
func (t *WidgetTester) Dispatch(fn func()) {
	t.mu.Lock()
	t.dispatches = append(t.dispatches, fn)
	t.mu.Unlock()
}

func (t *WidgetTester) post(fn func()) bool {
	t.Dispatch(fn)
	return true
}

// PendingDispatches returns the number of queued callbacks.
func (t *WidgetTester) PendingDispatches() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.dispatches)
}

// RunDispatches runs queued callbacks, including any queued while running,
// and returns how many ran.
func (t *WidgetTester) RunDispatches() int {
	n := 0
	for {
		t.mu.Lock()
		pending := t.dispatches
		t.dispatches = nil
		t.mu.Unlock()
		if len(pending) == 0 {
			return n
		}
		for _, fn := range pending {
			runDispatch(fn)
			n++
		}
	}
}

func runDispatch(fn func()) {
	defer errors.Recover("testing.WidgetTester")
	fn()
}

// Pipeline returns the pipeline owner driving the frames.
func (t *WidgetTester) Pipeline() *layout.PipelineOwner {
	return t.pipeline
}

// Root returns the mounted render object.
func (t *WidgetTester) Root() layout.RenderObject {
	return t.root
}

// Image returns the pixels of the last painted frame, or nil before the
// first frame.
func (t *WidgetTester) Image() *image.RGBA {
	return t.image
}

// DisplayOps returns the serialized ops of the last painted frame.
func (t *WidgetTester) DisplayOps() []DisplayOp {
	return t.ops
}
