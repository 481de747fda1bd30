package bitmap

// CalculateSampleSize returns the power-of-two factor to divide a
// width×height image by so that it stays at least reqWidth×reqHeight.
//
// The factor doubles while both halved source dimensions divided by the
// factor exceed the requested dimensions. Returns 1 when either requested
// dimension is 0 or the source already fits.
func CalculateSampleSize(width, height, reqWidth, reqHeight int) int {
	if reqHeight == 0 || reqWidth == 0 {
		return 1
	}
	sample := 1
	if height > reqHeight || width > reqWidth {
		halfHeight := height / 2
		halfWidth := width / 2
		for halfHeight/sample > reqHeight && halfWidth/sample > reqWidth {
			sample *= 2
		}
	}
	return sample
}
