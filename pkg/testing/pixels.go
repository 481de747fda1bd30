package testing

import (
	"image"
	"math"
)

// AlphaAt returns the 8-bit alpha of the pixel at (x, y).
func AlphaAt(img image.Image, x, y int) uint8 {
	_, _, _, a := img.At(x, y).RGBA()
	return uint8(a >> 8)
}

// CountOutsideCircle counts non-transparent pixels whose centers lie
// farther than radius from (cx, cy).
func CountOutsideCircle(img image.Image, cx, cy, radius float64) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d > radius && AlphaAt(img, x, y) != 0 {
				n++
			}
		}
	}
	return n
}

// CountOpaque counts pixels with full alpha.
func CountOpaque(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if AlphaAt(img, x, y) == 0xff {
				n++
			}
		}
	}
	return n
}
