package bitmap

import (
	"image"
	"io"

	"github.com/TkwkT/CircleImageView/pkg/errors"
	"github.com/TkwkT/CircleImageView/pkg/resources"
	"golang.org/x/image/draw"
)

// Opener opens bundled resources by handle.
type Opener interface {
	Open(h resources.Handle) (io.ReadCloser, error)
}

// DecodeBounds reads only the image header from r.
func DecodeBounds(r io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, "", errors.New("bitmap.DecodeBounds", errors.KindDecode, err)
	}
	return cfg, format, nil
}

// DecodeStream decodes r reduced for a reqWidth×reqHeight target.
//
// The stream is probed for bounds, rewound and decoded. A failed rewind is
// reported and decoding continues from wherever the stream is, which
// normally surfaces as a decode error.
func DecodeStream(r io.Reader, reqWidth, reqHeight int) (image.Image, error) {
	return decodeStream(r, reqWidth, reqHeight, DefaultMarkLimit)
}

func decodeStream(r io.Reader, reqWidth, reqHeight, markLimit int) (image.Image, error) {
	if r == nil {
		return nil, errors.New("bitmap.DecodeStream", errors.KindDecode, io.ErrUnexpectedEOF)
	}
	mr := NewMarkReader(r)
	mr.Mark(markLimit)
	return decodeMarked(mr, reqWidth, reqHeight)
}

// decodeMarked probes bounds from a marked reader, rewinds, and decodes
// the full image without retaining the stream a second time.
func decodeMarked(mr *MarkReader, reqWidth, reqHeight int) (image.Image, error) {
	cfg, _, err := DecodeBounds(mr)
	if err != nil {
		return nil, err
	}
	sample := CalculateSampleSize(cfg.Width, cfg.Height, reqWidth, reqHeight)

	if err := mr.Reset(); err != nil {
		errors.Report(errors.New("bitmap.DecodeStream", errors.KindStream, err))
	}
	mr.Unmark()

	img, _, err := image.Decode(mr)
	if err != nil {
		return nil, errors.New("bitmap.DecodeStream", errors.KindDecode, err)
	}
	return Subsample(img, sample), nil
}

// ResourceBounds probes the dimensions of a bundled resource.
func ResourceBounds(src Opener, h resources.Handle) (image.Config, error) {
	rc, err := openResource(src, h, "bitmap.ResourceBounds")
	if err != nil {
		return image.Config{}, err
	}
	defer rc.Close()
	cfg, _, err := DecodeBounds(rc)
	if err != nil {
		return image.Config{}, withResource(err, h)
	}
	return cfg, nil
}

// DecodeResource decodes a bundled resource reduced for a
// reqWidth×reqHeight target. The resource is opened twice, once for the
// bounds probe and once for the decode.
func DecodeResource(src Opener, h resources.Handle, reqWidth, reqHeight int) (image.Image, error) {
	cfg, err := ResourceBounds(src, h)
	if err != nil {
		return nil, err
	}
	sample := CalculateSampleSize(cfg.Width, cfg.Height, reqWidth, reqHeight)

	rc, err := openResource(src, h, "bitmap.DecodeResource")
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, &errors.ImageError{Op: "bitmap.DecodeResource", Kind: errors.KindDecode, Resource: int(h), Err: err}
	}
	return Subsample(img, sample), nil
}

// Subsample reduces img by factor in each dimension. Factors of 1 or less
// return img unchanged.
func Subsample(img image.Image, factor int) image.Image {
	if factor <= 1 || img == nil {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, max(1, b.Dx()/factor), max(1, b.Dy()/factor)))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func openResource(src Opener, h resources.Handle, op string) (io.ReadCloser, error) {
	if src == nil {
		return nil, &errors.ImageError{Op: op, Kind: errors.KindResource, Resource: int(h), Err: resources.ErrNotFound}
	}
	rc, err := src.Open(h)
	if err != nil {
		return nil, &errors.ImageError{Op: op, Kind: errors.KindResource, Resource: int(h), Err: err}
	}
	return rc, nil
}

func withResource(err error, h resources.Handle) error {
	if ie, ok := err.(*errors.ImageError); ok {
		ie.Resource = int(h)
	}
	return err
}
