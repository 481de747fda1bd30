package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"testing/fstest"

	"github.com/TkwkT/CircleImageView/pkg/errors"
	"github.com/TkwkT/CircleImageView/pkg/resources"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(w, h)); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestDecodeStreamSubsamples(t *testing.T) {
	data := encodePNG(t, 400, 200)
	img, err := DecodeStream(bytes.NewReader(data), 50, 50)
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("decoded size = %dx%d, want 200x100", b.Dx(), b.Dy())
	}
}

func TestDecodeStreamDoesNotRetainStream(t *testing.T) {
	data := encodePNG(t, 120, 80)
	mr := NewMarkReader(bytes.NewReader(data))
	mr.Mark(DefaultMarkLimit)

	if _, err := decodeMarked(mr, 30, 30); err != nil {
		t.Fatalf("decodeMarked() error = %v", err)
	}
	if len(mr.buf) != 0 {
		t.Errorf("mark buffer holds %d of %d stream bytes after decode, want 0", len(mr.buf), len(data))
	}
}

func TestDecodeStreamWithoutTargetKeepsFullSize(t *testing.T) {
	data := encodePNG(t, 64, 32)
	img, err := DecodeStream(bytes.NewReader(data), 0, 0)
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("decoded size = %dx%d, want 64x32", b.Dx(), b.Dy())
	}
}

func TestDecodeStreamRegisteredFormats(t *testing.T) {
	src := testImage(40, 20)
	encoders := map[string]func(io.Writer, image.Image) error{
		"bmp":  bmp.Encode,
		"tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
		"png":  png.Encode,
	}
	for name, encode := range encoders {
		var buf bytes.Buffer
		if err := encode(&buf, src); err != nil {
			t.Fatalf("%s encode error = %v", name, err)
		}
		img, err := DecodeStream(&buf, 5, 5)
		if err != nil {
			t.Fatalf("%s: DecodeStream() error = %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 10 {
			t.Errorf("%s: decoded size = %dx%d, want 20x10", name, b.Dx(), b.Dy())
		}
	}
}

func TestDecodeStreamMalformed(t *testing.T) {
	_, err := DecodeStream(bytes.NewReader([]byte("definitely not an image")), 10, 10)
	if got := errors.KindOf(err); got != errors.KindDecode {
		t.Fatalf("KindOf(%v) = %v, want decode", err, got)
	}
	_, err = DecodeStream(nil, 10, 10)
	if got := errors.KindOf(err); got != errors.KindDecode {
		t.Fatalf("nil stream: KindOf(%v) = %v, want decode", err, got)
	}
}

func TestDecodeStreamReportsResetFailure(t *testing.T) {
	var reported []*errors.ImageError
	old := errors.DefaultHandler
	errors.SetHandler(captureHandler{&reported})
	defer errors.SetHandler(old)

	data := encodePNG(t, 64, 64)
	_, err := decodeStream(bytes.NewReader(data), 10, 10, 8)
	if err == nil {
		t.Fatal("expected decode error after failed reset")
	}
	if len(reported) != 1 || reported[0].Kind != errors.KindStream {
		t.Fatalf("reported = %v, want one stream error", reported)
	}
}

func TestDecodeResource(t *testing.T) {
	fsys := fstest.MapFS{
		resources.ManifestFile: {Data: []byte("version: v1.0.0\nresources:\n  - {id: 5, name: photo, path: photo.png}\n  - {id: 6, name: junk, path: junk.png}\n")},
		"photo.png":            {Data: encodePNG(t, 300, 300)},
		"junk.png":             {Data: []byte("junk")},
	}
	bundle, err := resources.Load(fsys)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg, err := ResourceBounds(bundle, 5)
	if err != nil || cfg.Width != 300 || cfg.Height != 300 {
		t.Fatalf("ResourceBounds() = %+v, %v", cfg, err)
	}

	img, err := DecodeResource(bundle, 5, 100, 100)
	if err != nil {
		t.Fatalf("DecodeResource() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 150 || b.Dy() != 150 {
		t.Errorf("decoded size = %dx%d, want 150x150", b.Dx(), b.Dy())
	}

	if _, err := DecodeResource(bundle, 9, 100, 100); errors.KindOf(err) != errors.KindResource {
		t.Errorf("missing handle error = %v, want resource kind", err)
	}
	if _, err := DecodeResource(bundle, 6, 100, 100); errors.KindOf(err) != errors.KindDecode {
		t.Errorf("junk resource error = %v, want decode kind", err)
	}
	if _, err := DecodeResource(nil, 5, 100, 100); errors.KindOf(err) != errors.KindResource {
		t.Errorf("nil opener error = %v, want resource kind", err)
	}
}

func TestSubsample(t *testing.T) {
	src := testImage(9, 5)
	if got := Subsample(src, 1); got != image.Image(src) {
		t.Error("factor 1 should return the source")
	}
	got := Subsample(src, 4)
	if b := got.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("Subsample(9x5, 4) = %dx%d, want 2x1", b.Dx(), b.Dy())
	}
	if b := Subsample(testImage(3, 3), 8).Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("Subsample clamps to 1x1, got %dx%d", b.Dx(), b.Dy())
	}
}

type captureHandler struct{ errs *[]*errors.ImageError }

func (c captureHandler) HandleError(err *errors.ImageError) { *c.errs = append(*c.errs, err) }
func (c captureHandler) HandlePanic(*errors.PanicError)     {}
