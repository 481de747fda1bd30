package graphics

import (
	"image"

	"golang.org/x/image/draw"
)

const maxChannel = 0xffff

// composite blends src onto dst within r using Porter-Duff mode. mask, when
// non-nil, supplies per-pixel coverage; pixels outside the covered area keep
// their destination value. alpha scales the source.
//
// Src and SrcOver at full opacity go through draw.DrawMask, which implements
// exactly those two operators. Every other mode uses the generic loop below.
func composite(dst *image.RGBA, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, alpha float64, mode BlendMode) {
	if r.Empty() {
		return
	}
	if alpha >= 1 {
		switch mode {
		case BlendModeSrcOver:
			draw.DrawMask(dst, r, src, sp, mask, mp, draw.Over)
			return
		case BlendModeSrc:
			draw.DrawMask(dst, r, src, sp, mask, mp, draw.Src)
			return
		}
	}
	if mode == BlendModeDst {
		return
	}

	a16 := uint64(clamp01(alpha) * maxChannel)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx, dy := x-r.Min.X, y-r.Min.Y

			cov := uint64(maxChannel)
			if mask != nil {
				_, _, _, ma := mask.At(mp.X+dx, mp.Y+dy).RGBA()
				cov = uint64(ma)
			}
			cov = cov * a16 / maxChannel
			if cov == 0 {
				continue
			}

			sr, sg, sb, sa := src.At(sp.X+dx, sp.Y+dy).RGBA()
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			dr := uint64(px[0]) * 0x101
			dg := uint64(px[1]) * 0x101
			db := uint64(px[2]) * 0x101
			da := uint64(px[3]) * 0x101

			fa, fb := porterDuff(mode, uint64(sa), da)
			out := [4]uint64{
				blendChannel(uint64(sr), dr, fa, fb, cov),
				blendChannel(uint64(sg), dg, fa, fb, cov),
				blendChannel(uint64(sb), db, fa, fb, cov),
				blendChannel(uint64(sa), da, fa, fb, cov),
			}
			for c := range out {
				px[c] = uint8(out[c] >> 8)
			}
		}
	}
}

// porterDuff returns the source and destination factors for mode, given the
// premultiplied source and destination alpha.
func porterDuff(mode BlendMode, sa, da uint64) (fa, fb uint64) {
	switch mode {
	case BlendModeClear:
		return 0, 0
	case BlendModeSrc:
		return maxChannel, 0
	case BlendModeDst:
		return 0, maxChannel
	case BlendModeDstOver:
		return maxChannel - da, maxChannel
	case BlendModeSrcIn:
		return da, 0
	case BlendModeDstIn:
		return 0, sa
	case BlendModeSrcOut:
		return maxChannel - da, 0
	case BlendModeDstOut:
		return 0, maxChannel - sa
	default:
		return maxChannel, maxChannel - sa
	}
}

// blendChannel applies the Porter-Duff factors to one premultiplied channel
// and interpolates against the destination by coverage.
func blendChannel(s, d, fa, fb, cov uint64) uint64 {
	v := (s*fa + d*fb) / maxChannel
	if v > maxChannel {
		v = maxChannel
	}
	return (v*cov + d*(maxChannel-cov)) / maxChannel
}

// ToRGBA converts any image to a zero-origin *image.RGBA, returning src
// unchanged when it already is one.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	return rgba
}

// IsTransparent reports whether the pixel at (x, y) has zero alpha.
func IsTransparent(img image.Image, x, y int) bool {
	_, _, _, a := img.At(x, y).RGBA()
	return a == 0
}
