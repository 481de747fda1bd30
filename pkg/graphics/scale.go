package graphics

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// UniformScale returns the factor that maps the smaller side of a
// width×height bitmap onto target pixels. Both axes use the same factor, so
// the longer side overflows target and the caller's mask crops it.
// Returns 0 when any dimension is not positive.
func UniformScale(width, height, target int) float64 {
	side := min(width, height)
	if side <= 0 || target <= 0 {
		return 0
	}
	return float64(target) / float64(side)
}

// ScaleUniform resizes img so its smaller side equals target pixels while
// preserving the aspect ratio. filter selects Lanczos resampling; otherwise
// nearest-neighbor is used. Returns img unchanged when no scaling is needed
// and nil when img is nil or the scale is undefined.
func ScaleUniform(img image.Image, target int, filter bool) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	scale := UniformScale(b.Dx(), b.Dy(), target)
	if scale == 0 {
		return nil
	}
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	resample := imaging.NearestNeighbor
	if filter {
		resample = imaging.Lanczos
	}
	return imaging.Resize(img, w, h, resample)
}
