package graphics

import (
	"image"
	"testing"
)

func TestUniformScaleUsesSmallerSide(t *testing.T) {
	tests := []struct {
		w, h, target int
		want         float64
	}{
		{200, 100, 50, 0.5},
		{100, 200, 50, 0.5},
		{80, 80, 160, 2},
		{0, 100, 50, 0},
		{100, 100, 0, 0},
	}
	for _, tt := range tests {
		if got := UniformScale(tt.w, tt.h, tt.target); got != tt.want {
			t.Errorf("UniformScale(%d, %d, %d) = %v, want %v", tt.w, tt.h, tt.target, got, tt.want)
		}
	}
}

func TestScaleUniformPreservesAspectRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for _, filter := range []bool{true, false} {
		got := ScaleUniform(src, 50, filter)
		if got == nil {
			t.Fatal("ScaleUniform returned nil")
		}
		if b := got.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
			t.Errorf("filter=%v: scaled size = %dx%d, want 100x50", filter, b.Dx(), b.Dy())
		}
	}
}

func TestScaleUniformReturnsSourceWhenAlreadySized(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 80))
	if got := ScaleUniform(src, 50, true); got != image.Image(src) {
		t.Error("expected source image to be returned unchanged")
	}
	if got := ScaleUniform(nil, 50, true); got != nil {
		t.Error("expected nil for nil source")
	}
}
