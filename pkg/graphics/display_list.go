package graphics

import "image"

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	base := canvas.SaveCount()
	for _, op := range d.ops {
		op.execute(canvas, base)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, size: size}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{
		ops:  ops,
		size: r.size,
	}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

// displayOp replays itself onto canvas. base is the canvas save count when
// replay started, so recorded RestoreToCount values stay relative.
type displayOp interface {
	execute(canvas Canvas, base int)
}

type recordingCanvas struct {
	recorder  *PictureRecorder
	size      Size
	saveCount int
}

func (c *recordingCanvas) Save() int {
	c.recorder.append(opSave{})
	c.saveCount++
	return c.saveCount - 1
}

func (c *recordingCanvas) SaveLayer(bounds Rect, paint *Paint) int {
	var paintCopy *Paint
	if paint != nil {
		p := *paint
		paintCopy = &p
	}
	c.recorder.append(opSaveLayer{bounds: bounds, paint: paintCopy})
	c.saveCount++
	return c.saveCount - 1
}

func (c *recordingCanvas) Restore() {
	if c.saveCount == 0 {
		return
	}
	c.recorder.append(opRestore{})
	c.saveCount--
}

func (c *recordingCanvas) RestoreToCount(count int) {
	if count < 0 {
		count = 0
	}
	if count >= c.saveCount {
		return
	}
	c.recorder.append(opRestoreToCount{count: count})
	c.saveCount = count
}

func (c *recordingCanvas) SaveCount() int {
	return c.saveCount
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.recorder.append(opTranslate{dx: dx, dy: dy})
}

func (c *recordingCanvas) Clear(color Color) {
	c.recorder.append(opClear{color: color})
}

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.recorder.append(opRect{rect: rect, paint: paint})
}

func (c *recordingCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	c.recorder.append(opCircle{center: center, radius: radius, paint: paint})
}

func (c *recordingCanvas) DrawImage(img image.Image, position Offset, paint Paint) {
	c.recorder.append(opImage{image: img, position: position, paint: paint})
}

func (c *recordingCanvas) Size() Size {
	return c.size
}

type opSave struct{}

func (opSave) execute(canvas Canvas, _ int) {
	canvas.Save()
}

type opSaveLayer struct {
	bounds Rect
	paint  *Paint
}

func (op opSaveLayer) execute(canvas Canvas, _ int) {
	canvas.SaveLayer(op.bounds, op.paint)
}

type opRestore struct{}

func (opRestore) execute(canvas Canvas, _ int) {
	canvas.Restore()
}

type opRestoreToCount struct {
	count int
}

func (op opRestoreToCount) execute(canvas Canvas, base int) {
	canvas.RestoreToCount(base + op.count)
}

type opTranslate struct {
	dx float64
	dy float64
}

func (op opTranslate) execute(canvas Canvas, _ int) {
	canvas.Translate(op.dx, op.dy)
}

type opClear struct {
	color Color
}

func (op opClear) execute(canvas Canvas, _ int) {
	canvas.Clear(op.color)
}

type opRect struct {
	rect  Rect
	paint Paint
}

func (op opRect) execute(canvas Canvas, _ int) {
	canvas.DrawRect(op.rect, op.paint)
}

type opCircle struct {
	center Offset
	radius float64
	paint  Paint
}

func (op opCircle) execute(canvas Canvas, _ int) {
	canvas.DrawCircle(op.center, op.radius, op.paint)
}

type opImage struct {
	image    image.Image
	position Offset
	paint    Paint
}

func (op opImage) execute(canvas Canvas, _ int) {
	canvas.DrawImage(op.image, op.position, op.paint)
}
