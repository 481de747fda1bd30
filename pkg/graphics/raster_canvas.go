package graphics

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// circleKappa is the control point distance for approximating a quarter
// circle with one cubic Bézier segment.
const circleKappa = 0.5522847498

// RasterCanvas renders drawing commands into an RGBA image on the CPU.
//
// SaveLayer allocates an off-screen layer; drawing into the layer is
// composited back onto its parent on Restore using the layer paint's blend
// mode and alpha. Shapes are rasterized with fractional coverage when the
// paint requests anti-aliasing.
type RasterCanvas struct {
	base   *image.RGBA
	origin Offset
	stack  []rasterState
}

type rasterState struct {
	origin Offset
	layer  *rasterLayer
}

type rasterLayer struct {
	img   *image.RGBA
	clip  image.Rectangle
	paint Paint
}

// NewRasterCanvas creates a transparent canvas of the given pixel size.
func NewRasterCanvas(width, height int) *RasterCanvas {
	return &RasterCanvas{base: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Image returns the canvas backing image. Content drawn into unrestored
// layers is not visible until the layers are restored.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.base
}

func (c *RasterCanvas) Save() int {
	c.stack = append(c.stack, rasterState{origin: c.origin})
	return len(c.stack) - 1
}

func (c *RasterCanvas) SaveLayer(bounds Rect, paint *Paint) int {
	_, parentClip := c.target()
	clip := bounds.Translate(c.origin.X, c.origin.Y).Pixels().Intersect(parentClip)
	layer := &rasterLayer{
		img:   image.NewRGBA(c.base.Bounds()),
		clip:  clip,
		paint: DefaultPaint(),
	}
	if paint != nil {
		layer.paint = *paint
	}
	c.stack = append(c.stack, rasterState{origin: c.origin, layer: layer})
	return len(c.stack) - 1
}

func (c *RasterCanvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	state := c.stack[n-1]
	c.stack = c.stack[:n-1]
	c.origin = state.origin
	if state.layer == nil {
		return
	}
	dst, clip := c.target()
	r := state.layer.clip.Intersect(clip)
	if r.Empty() {
		return
	}
	composite(dst, r, state.layer.img, r.Min, nil, image.Point{},
		state.layer.paint.effectiveAlpha(), state.layer.paint.effectiveBlend())
}

func (c *RasterCanvas) RestoreToCount(count int) {
	if count < 0 {
		count = 0
	}
	for len(c.stack) > count {
		c.Restore()
	}
}

func (c *RasterCanvas) SaveCount() int {
	return len(c.stack)
}

func (c *RasterCanvas) Translate(dx, dy float64) {
	c.origin = c.origin.Translate(dx, dy)
}

func (c *RasterCanvas) Clear(color Color) {
	dst, clip := c.target()
	draw.Draw(dst, clip, image.NewUniform(color.NRGBA()), image.Point{}, draw.Src)
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	dst, clip := c.target()
	r := rect.Translate(c.origin.X, c.origin.Y)
	mask, bounds := rasterize(clip, paint.AntiAlias, func(z *vector.Rasterizer, o Offset) {
		r := r.Translate(-o.X, -o.Y)
		if paint.Style == PaintStyleStroke && paint.StrokeWidth > 0 {
			hw := paint.StrokeWidth / 2
			rectPath(z, Rect{Left: r.Left - hw, Top: r.Top - hw, Right: r.Right + hw, Bottom: r.Bottom + hw}, false)
			if inner := (Rect{Left: r.Left + hw, Top: r.Top + hw, Right: r.Right - hw, Bottom: r.Bottom - hw}); !inner.IsEmpty() {
				rectPath(z, inner, true)
			}
			return
		}
		rectPath(z, r, false)
	})
	if mask == nil {
		return
	}
	composite(dst, bounds, image.NewUniform(paint.Color.NRGBA()), image.Point{}, mask, image.Point{},
		paint.effectiveAlpha(), paint.effectiveBlend())
}

func (c *RasterCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	dst, clip := c.target()
	cx, cy := center.X+c.origin.X, center.Y+c.origin.Y
	mask, bounds := rasterize(clip, paint.AntiAlias, func(z *vector.Rasterizer, o Offset) {
		if paint.Style == PaintStyleStroke && paint.StrokeWidth > 0 {
			hw := paint.StrokeWidth / 2
			circlePath(z, cx-o.X, cy-o.Y, radius+hw, false)
			if radius > hw {
				circlePath(z, cx-o.X, cy-o.Y, radius-hw, true)
			}
			return
		}
		circlePath(z, cx-o.X, cy-o.Y, radius, false)
	})
	if mask == nil {
		return
	}
	composite(dst, bounds, image.NewUniform(paint.Color.NRGBA()), image.Point{}, mask, image.Point{},
		paint.effectiveAlpha(), paint.effectiveBlend())
}

func (c *RasterCanvas) DrawImage(img image.Image, position Offset, paint Paint) {
	if img == nil {
		return
	}
	dst, clip := c.target()
	src := img.Bounds()
	at := position.Translate(c.origin.X, c.origin.Y).Point()
	r := src.Sub(src.Min).Add(at).Intersect(clip)
	if r.Empty() {
		return
	}
	sp := src.Min.Add(r.Min.Sub(at))
	composite(dst, r, img, sp, nil, image.Point{}, paint.effectiveAlpha(), paint.effectiveBlend())
}

func (c *RasterCanvas) Size() Size {
	b := c.base.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// target returns the image receiving draw calls and its clip rectangle.
func (c *RasterCanvas) target() (*image.RGBA, image.Rectangle) {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if layer := c.stack[i].layer; layer != nil {
			return layer.img, layer.clip
		}
	}
	return c.base, c.base.Bounds()
}

// rasterize builds a coverage mask for the path emitted by fn, restricted to
// clip. The path is emitted in coordinates relative to the returned bounds.
// Returns a nil mask when clip is empty.
func rasterize(clip image.Rectangle, antiAlias bool, fn func(z *vector.Rasterizer, origin Offset)) (*image.Alpha, image.Rectangle) {
	if clip.Empty() {
		return nil, clip
	}
	w, h := clip.Dx(), clip.Dy()
	z := vector.NewRasterizer(w, h)
	fn(z, Offset{X: float64(clip.Min.X), Y: float64(clip.Min.Y)})
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	if !antiAlias {
		for i, a := range mask.Pix {
			if a >= 0x80 {
				mask.Pix[i] = 0xff
			} else {
				mask.Pix[i] = 0
			}
		}
	}
	return mask, clip
}

func rectPath(z *vector.Rasterizer, r Rect, reverse bool) {
	l, t, rt, b := float32(r.Left), float32(r.Top), float32(r.Right), float32(r.Bottom)
	z.MoveTo(l, t)
	if reverse {
		z.LineTo(l, b)
		z.LineTo(rt, b)
		z.LineTo(rt, t)
	} else {
		z.LineTo(rt, t)
		z.LineTo(rt, b)
		z.LineTo(l, b)
	}
	z.ClosePath()
}

// circlePath emits a circle as four cubic segments. reverse flips the
// winding so the circle subtracts from an enclosing path.
func circlePath(z *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	k := r * circleKappa
	f := func(v float64) float32 { return float32(v) }
	z.MoveTo(f(cx+r), f(cy))
	if reverse {
		z.CubeTo(f(cx+r), f(cy-k), f(cx+k), f(cy-r), f(cx), f(cy-r))
		z.CubeTo(f(cx-k), f(cy-r), f(cx-r), f(cy-k), f(cx-r), f(cy))
		z.CubeTo(f(cx-r), f(cy+k), f(cx-k), f(cy+r), f(cx), f(cy+r))
		z.CubeTo(f(cx+k), f(cy+r), f(cx+r), f(cy+k), f(cx+r), f(cy))
	} else {
		z.CubeTo(f(cx+r), f(cy+k), f(cx+k), f(cy+r), f(cx), f(cy+r))
		z.CubeTo(f(cx-k), f(cy+r), f(cx-r), f(cy+k), f(cx-r), f(cy))
		z.CubeTo(f(cx-r), f(cy-k), f(cx-k), f(cy-r), f(cx), f(cy-r))
		z.CubeTo(f(cx+k), f(cy-r), f(cx+r), f(cy-k), f(cx+r), f(cy))
	}
	z.ClosePath()
}
