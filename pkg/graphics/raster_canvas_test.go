package graphics

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func distance(x, y int, cx, cy float64) float64 {
	return math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
}

func TestRasterCanvas_SrcInKeepsOnlyPixelsInsideCircle(t *testing.T) {
	const size = 64
	c := NewRasterCanvas(size, size)

	sc := c.SaveLayer(RectFromLTWH(0, 0, size, size), nil)
	mask := DefaultPaint()
	mask.AntiAlias = true
	c.DrawCircle(Offset{X: 32, Y: 32}, 20, mask)

	paint := SmoothPaint()
	paint.BlendMode = BlendModeSrcIn
	c.DrawImage(solidImage(size, size, color.RGBA{R: 255, A: 255}), Offset{}, paint)
	c.RestoreToCount(sc)

	out := c.Image()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := distance(x, y, 32, 32)
			if d > 21 && !IsTransparent(out, x, y) {
				t.Fatalf("pixel (%d,%d) at distance %.2f is not transparent: %v", x, y, d, out.At(x, y))
			}
			if d < 19 {
				if got := out.RGBAAt(x, y); got != (color.RGBA{R: 255, A: 255}) {
					t.Fatalf("pixel (%d,%d) inside circle = %v, want opaque red", x, y, got)
				}
			}
		}
	}
}

func TestRasterCanvas_AntiAliasProducesPartialCoverage(t *testing.T) {
	c := NewRasterCanvas(32, 32)
	p := DefaultPaint()
	p.AntiAlias = true
	c.DrawCircle(Offset{X: 16, Y: 16}, 10, p)

	partial := 0
	for _, a := range alphaValues(c.Image()) {
		if a > 0 && a < 0xff {
			partial++
		}
	}
	if partial == 0 {
		t.Fatal("expected anti-aliased edge pixels with partial alpha")
	}
}

func TestRasterCanvas_AliasedCircleHasBinaryCoverage(t *testing.T) {
	c := NewRasterCanvas(32, 32)
	c.DrawCircle(Offset{X: 16, Y: 16}, 10, DefaultPaint())

	for _, a := range alphaValues(c.Image()) {
		if a != 0 && a != 0xff {
			t.Fatalf("aliased circle produced partial alpha %d", a)
		}
	}
}

func alphaValues(img *image.RGBA) []uint8 {
	var out []uint8
	for i := 3; i < len(img.Pix); i += 4 {
		out = append(out, img.Pix[i])
	}
	return out
}

func TestRasterCanvas_LayerIsInvisibleUntilRestored(t *testing.T) {
	c := NewRasterCanvas(8, 8)
	c.SaveLayer(RectFromLTWH(0, 0, 8, 8), nil)
	c.DrawRect(RectFromLTWH(0, 0, 8, 8), DefaultPaint())

	if !IsTransparent(c.Image(), 4, 4) {
		t.Fatal("layer content leaked to base before Restore")
	}
	c.Restore()
	if IsTransparent(c.Image(), 4, 4) {
		t.Fatal("layer content missing after Restore")
	}
}

func TestRasterCanvas_LayerBoundsClipDrawing(t *testing.T) {
	c := NewRasterCanvas(10, 10)
	c.SaveLayer(RectFromLTWH(0, 0, 5, 10), nil)
	c.DrawRect(RectFromLTWH(0, 0, 10, 10), DefaultPaint())
	c.Restore()

	if IsTransparent(c.Image(), 2, 2) {
		t.Error("expected pixel inside layer bounds to be drawn")
	}
	if !IsTransparent(c.Image(), 7, 2) {
		t.Error("expected pixel outside layer bounds to stay transparent")
	}
}

func TestRasterCanvas_DrawImageHonorsTranslateAndPosition(t *testing.T) {
	c := NewRasterCanvas(10, 10)
	c.Save()
	c.Translate(2, 3)
	c.DrawImage(solidImage(2, 2, color.White), Offset{X: 1, Y: 1}, DefaultPaint())
	c.Restore()

	img := c.Image()
	if IsTransparent(img, 3, 4) || IsTransparent(img, 4, 5) {
		t.Error("expected image pixels at translated position")
	}
	if !IsTransparent(img, 2, 3) || !IsTransparent(img, 5, 6) {
		t.Error("expected pixels around the image to stay transparent")
	}
}

func TestRasterCanvas_RestoreToCount(t *testing.T) {
	c := NewRasterCanvas(4, 4)
	first := c.Save()
	c.SaveLayer(RectFromLTWH(0, 0, 4, 4), nil)
	c.Save()
	if got := c.SaveCount(); got != 3 {
		t.Fatalf("SaveCount() = %d, want 3", got)
	}
	c.RestoreToCount(first)
	if got := c.SaveCount(); got != 0 {
		t.Fatalf("SaveCount() after RestoreToCount = %d, want 0", got)
	}
	c.Restore() // extra restore is a no-op
}

func TestRasterCanvas_StrokedCircleLeavesCenterEmpty(t *testing.T) {
	c := NewRasterCanvas(32, 32)
	p := DefaultPaint()
	p.Style = PaintStyleStroke
	p.StrokeWidth = 2
	c.DrawCircle(Offset{X: 16, Y: 16}, 10, p)

	if !IsTransparent(c.Image(), 16, 16) {
		t.Error("stroked circle filled its center")
	}
	if IsTransparent(c.Image(), 26, 16) {
		t.Error("stroked circle missing its outline")
	}
}

func TestPorterDuffModes(t *testing.T) {
	opaqueRed := color.RGBA{R: 255, A: 255}
	tests := []struct {
		mode   BlendMode
		dst    color.RGBA
		wantA  uint8
		wantR  uint8
		reason string
	}{
		{BlendModeSrcIn, color.RGBA{}, 0, 0, "src_in over empty destination is empty"},
		{BlendModeSrcIn, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 255, 255, "src_in over opaque destination keeps source"},
		{BlendModeDstIn, color.RGBA{G: 255, A: 255}, 255, 0, "dst_in keeps destination"},
		{BlendModeDstOut, color.RGBA{G: 255, A: 255}, 0, 0, "dst_out erases destination"},
		{BlendModeClear, color.RGBA{G: 255, A: 255}, 0, 0, "clear erases destination"},
		{BlendModeSrcOver, color.RGBA{}, 255, 255, "src_over paints source"},
	}
	for _, tt := range tests {
		c := NewRasterCanvas(1, 1)
		c.Image().SetRGBA(0, 0, tt.dst)
		p := DefaultPaint()
		p.BlendMode = tt.mode
		c.DrawImage(solidImage(1, 1, opaqueRed), Offset{}, p)
		got := c.Image().RGBAAt(0, 0)
		if got.A != tt.wantA || got.R != tt.wantR {
			t.Errorf("%s: got %v, want A=%d R=%d (%s)", tt.mode, got, tt.wantA, tt.wantR, tt.reason)
		}
	}
}

func TestDisplayListReplayMatchesDirectDrawing(t *testing.T) {
	draw := func(c Canvas) {
		sc := c.SaveLayer(RectFromLTWH(0, 0, 16, 16), nil)
		p := DefaultPaint()
		p.AntiAlias = true
		c.DrawCircle(Offset{X: 8, Y: 8}, 6, p)
		img := DefaultPaint()
		img.BlendMode = BlendModeSrcIn
		c.DrawImage(solidImage(16, 16, color.RGBA{B: 255, A: 255}), Offset{}, img)
		c.RestoreToCount(sc)
	}

	direct := NewRasterCanvas(16, 16)
	draw(direct)

	recorder := &PictureRecorder{}
	draw(recorder.BeginRecording(Size{Width: 16, Height: 16}))
	list := recorder.EndRecording()
	if list.Len() != 4 {
		t.Fatalf("display list has %d ops, want 4", list.Len())
	}

	replayed := NewRasterCanvas(16, 16)
	list.Paint(replayed)

	if !bytes.Equal(direct.Image().Pix, replayed.Image().Pix) {
		t.Fatal("replayed display list differs from direct drawing")
	}
}
