package layout

import "github.com/TkwkT/CircleImageView/pkg/graphics"

// PaintContext provides the canvas for painting render objects.
type PaintContext struct {
	Canvas graphics.Canvas
}

// PaintChildWithLayer paints a child at offset, replaying its cached layer
// when the child is clean.
func (p *PaintContext) PaintChildWithLayer(child RenderObject, offset graphics.Offset) {
	if child == nil {
		return
	}

	sc := p.Canvas.Save()
	p.Canvas.Translate(offset.X, offset.Y)
	defer p.Canvas.RestoreToCount(sc)

	if cached, ok := child.(interface {
		Layer() *graphics.DisplayList
	}); ok {
		if layer := cached.Layer(); layer != nil && !child.NeedsPaint() {
			layer.Paint(p.Canvas)
			return
		}
	}

	child.Paint(p)
}
