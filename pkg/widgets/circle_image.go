package widgets

import (
	"context"
	stderrors "errors"
	"image"
	"io"
	"sync/atomic"

	"github.com/TkwkT/CircleImageView/pkg/bitmap"
	"github.com/TkwkT/CircleImageView/pkg/errors"
	"github.com/TkwkT/CircleImageView/pkg/fetch"
	"github.com/TkwkT/CircleImageView/pkg/graphics"
	"github.com/TkwkT/CircleImageView/pkg/layout"
	"github.com/TkwkT/CircleImageView/pkg/platform"
	"github.com/TkwkT/CircleImageView/pkg/resources"
)

var errNoDispatcher = stderrors.New("no UI thread dispatcher registered")

// Resources opens bundled images and resolves resource names.
// [*resources.Bundle] satisfies it.
type Resources interface {
	bitmap.Opener
	Lookup(name string) (resources.Handle, bool)
}

// Fetcher starts asynchronous downloads. [*fetch.Fetcher] satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string, fn func(body io.Reader, err error)) *fetch.Request
}

// Host supplies the services a CircleImage needs from its environment.
// Zero fields fall back to process defaults.
type Host struct {
	// Resources resolves resource handles. Without it, resource loads fail.
	Resources Resources
	// Fetcher downloads URL images. Defaults to [fetch.Default].
	Fetcher Fetcher
	// Dispatch runs a callback on the UI thread. Defaults to [platform.Dispatch].
	Dispatch func(callback func()) bool
	// OnError, if set, is called on the UI thread for every failed load.
	// Failures are reported to the global error handler either way.
	OnError func(err error)
}

// CircleImage renders a bitmap cropped to a circle.
//
// The crop is a compositing trick rather than a clip: an anti-aliased white
// circle is drawn into an off-screen layer and the bitmap is drawn over it
// with [graphics.BlendModeSrcIn], which keeps bitmap pixels only where the
// circle is. The layer is then composited back to the canvas.
//
// The bitmap comes from one of three sources:
//
//   - SetBitmap stores a decoded image.
//   - SetBitmapFromURL downloads and decodes an image in the background.
//   - SetBitmapFromResource selects a bundled image that is decoded while
//     painting, as long as no bitmap was set and no URL was requested.
//
// A URL load that completes after a later SetBitmap still replaces the
// bitmap; the most recent write wins.
//
// All methods except Dispose must be called on the UI thread.
type CircleImage struct {
	layout.RenderBoxBase

	host  Host
	paint graphics.Paint

	bitmap    image.Image
	resID     resources.Handle
	url       string
	bitmapSet bool
	urlSet    bool

	// generation counts bitmap assignments; caches key on it because
	// arbitrary image.Image values need not be comparable.
	generation uint64

	// resKey is the resource decode currently held in bitmap. A failed
	// decode is kept as a nil bitmap so it is not retried every frame.
	resKey   resourceKey
	resolved bool

	// scaled caches bitmap generation scaledGen scaled to scaledSize.
	scaled     image.Image
	scaledGen  uint64
	scaledSize int

	ctx      context.Context
	cancel   context.CancelFunc
	disposed atomic.Bool
}

type resourceKey struct {
	handle resources.Handle
	size   int
}

// NewCircleImage creates a circle image using host services and style
// attributes. The attributes' Src selects the default resource.
func NewCircleImage(host Host, attrs Attributes) *CircleImage {
	if host.Fetcher == nil {
		host.Fetcher = fetch.Default()
	}
	if host.Dispatch == nil {
		host.Dispatch = platform.Dispatch
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &CircleImage{
		host:   host,
		paint:  graphics.SmoothPaint(),
		resID:  attrs.Resource(host.Resources),
		ctx:    ctx,
		cancel: cancel,
	}
	c.SetSelf(c)
	c.SetPadding(attrs.Padding.EdgeInsets())
	return c
}

// SetBitmap displays img. It takes precedence over the resource image.
func (c *CircleImage) SetBitmap(img image.Image) {
	c.assign(img)
	c.bitmapSet = true
	c.MarkNeedsPaint()
}

// SetBitmapFromURL downloads url and displays the decoded image once it
// arrives. The image is decoded for the current ResultSize. Failures are
// reported and leave the current bitmap in place. The returned request may
// be used to cancel the download; it is nil after Dispose.
func (c *CircleImage) SetBitmapFromURL(url string) *fetch.Request {
	if c.disposed.Load() {
		return nil
	}
	c.url = url
	c.urlSet = true
	size := c.ResultSize()
	return c.host.Fetcher.Fetch(c.ctx, url, func(body io.Reader, err error) {
		if err != nil {
			c.fail(err)
			return
		}
		img, err := bitmap.DecodeStream(body, size, size)
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			if ie, ok := err.(*errors.ImageError); ok {
				ie.URL = url
				errors.Report(ie)
			}
			c.fail(err)
			return
		}
		c.post(func() {
			c.assign(img)
			c.MarkNeedsPaint()
		})
	})
}

// SetBitmapFromResource selects a bundled image. It is decoded during paint
// unless a bitmap was set or a URL was requested, even an empty one.
func (c *CircleImage) SetBitmapFromResource(h resources.Handle) {
	c.resID = h
	c.MarkNeedsPaint()
}

// Bitmap returns the bitmap most recently resolved for display, or nil.
func (c *CircleImage) Bitmap() image.Image {
	return c.bitmap
}

// Resource returns the selected resource handle, or 0 if none.
func (c *CircleImage) Resource() resources.Handle {
	return c.resID
}

// URL returns the most recently requested URL.
func (c *CircleImage) URL() string {
	return c.url
}

// BitmapSize returns the smaller side of the selected resource image, read
// from its header. Returns 0 when no resource is selected or it cannot be
// read.
func (c *CircleImage) BitmapSize() int {
	if c.resID == 0 {
		return 0
	}
	cfg, err := bitmap.ResourceBounds(c.host.Resources, c.resID)
	if err != nil {
		c.report(err)
		return 0
	}
	return min(cfg.Width, cfg.Height)
}

// ResultSize returns the diameter of the circle: the measured size less
// padding on whichever axis has more of it.
func (c *CircleImage) ResultSize() int {
	size := c.MeasuredHeight()
	pad := c.Padding()
	return max(0, min(size-pad.Horizontal(), size-pad.Vertical()))
}

// Measure resolves a square size from the constraints.
//
// When both constraints are AtMost, the size is the resource's BitmapSize.
// When only one is AtMost, the other constraint's size is used. Otherwise
// the smaller of the two sizes is used.
func (c *CircleImage) Measure(width, height layout.MeasureSpec) {
	var size int
	switch {
	case width.Mode == layout.MeasureAtMost && height.Mode == layout.MeasureAtMost:
		size = c.BitmapSize()
	case width.Mode == layout.MeasureAtMost:
		size = height.Size
	case height.Mode == layout.MeasureAtMost:
		size = width.Size
	default:
		size = min(width.Size, height.Size)
	}
	c.SetMeasuredDimension(size, size)
}

// Paint draws the circle-cropped bitmap.
func (c *CircleImage) Paint(ctx *layout.PaintContext) {
	canvas := ctx.Canvas
	size := c.ResultSize()
	pad := c.Padding()

	count := canvas.SaveLayer(c.Bounds(), &c.paint)
	defer canvas.RestoreToCount(count)

	if size <= 0 {
		return
	}
	radius := float64(size) / 2
	mask := graphics.DefaultPaint()
	mask.AntiAlias = c.paint.AntiAlias
	canvas.DrawCircle(graphics.Offset{X: float64(pad.Left) + radius, Y: float64(pad.Top) + radius}, radius, mask)

	img := c.resolve(size)
	if img == nil {
		return
	}
	scaled := c.scale(img, size)
	if scaled == nil {
		return
	}
	p := c.paint
	p.BlendMode = graphics.BlendModeSrcIn
	canvas.DrawImage(scaled, graphics.Offset{X: float64(pad.Left), Y: float64(pad.Top)}, p)
}

// Dispose cancels in-flight downloads. Completions that arrive afterwards
// are dropped. Dispose may be called from any goroutine; the widget must
// not be used afterwards.
func (c *CircleImage) Dispose() {
	c.disposed.Store(true)
	c.cancel()
}

// resolve returns the bitmap to draw, decoding the resource when neither a
// bitmap nor a URL has been set.
func (c *CircleImage) resolve(size int) image.Image {
	if c.bitmapSet || c.urlSet || c.resID == 0 {
		return c.bitmap
	}
	key := resourceKey{handle: c.resID, size: size}
	if !c.resolved || c.resKey != key {
		img, err := bitmap.DecodeResource(c.host.Resources, c.resID, size, size)
		if err != nil {
			c.report(err)
			c.fail(err)
		}
		c.assign(img)
		c.resKey, c.resolved = key, true
	}
	return c.bitmap
}

// assign replaces the bitmap and invalidates the scale cache.
func (c *CircleImage) assign(img image.Image) {
	c.bitmap = img
	c.generation++
}

func (c *CircleImage) scale(img image.Image, size int) image.Image {
	if c.scaled != nil && c.scaledGen == c.generation && c.scaledSize == size {
		return c.scaled
	}
	c.scaled = graphics.ScaleUniform(img, size, c.paint.FilterBitmap)
	c.scaledGen, c.scaledSize = c.generation, size
	return c.scaled
}

// post runs fn on the UI thread unless the widget has been disposed.
func (c *CircleImage) post(fn func()) {
	ok := c.host.Dispatch(func() {
		if c.disposed.Load() {
			return
		}
		fn()
	})
	if !ok {
		errors.Report(&errors.ImageError{
			Op:   "widgets.CircleImage",
			Kind: errors.KindRender,
			Err:  errNoDispatcher,
		})
	}
}

// fail notifies OnError on the UI thread. Cancellations after Dispose are
// not failures.
func (c *CircleImage) fail(err error) {
	if c.host.OnError == nil || c.ctx.Err() != nil {
		return
	}
	c.post(func() { c.host.OnError(err) })
}

func (c *CircleImage) report(err error) {
	if ie, ok := err.(*errors.ImageError); ok {
		errors.Report(ie)
		return
	}
	errors.Report(errors.New("widgets.CircleImage", errors.KindUnknown, err))
}
