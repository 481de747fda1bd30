package testing

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strings"

	"github.com/TkwkT/CircleImageView/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// String formats the op as name(key=value, ...) with keys in sorted order.
func (d DisplayOp) String() string {
	var sb strings.Builder
	sb.WriteString(d.Op)
	sb.WriteByte('(')
	for i, k := range sortedKeys(d.Params) {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, d.Params[k])
	}
	sb.WriteByte(')')
	return sb.String()
}

// serializingCanvas implements graphics.Canvas and records ops as DisplayOp.
type serializingCanvas struct {
	ops   []DisplayOp
	size  graphics.Size
	saves int
}

func (c *serializingCanvas) Save() int {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
	c.saves++
	return c.saves - 1
}

func (c *serializingCanvas) SaveLayer(bounds graphics.Rect, paint *graphics.Paint) int {
	params := sortedMap("bounds", serializeRect(bounds))
	if paint != nil {
		params["blend"] = paint.BlendMode.String()
		params["antiAlias"] = paint.AntiAlias
	}
	c.ops = append(c.ops, DisplayOp{Op: "saveLayer", Params: params})
	c.saves++
	return c.saves - 1
}

func (c *serializingCanvas) Restore() {
	if c.saves == 0 {
		return
	}
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
	c.saves--
}

func (c *serializingCanvas) RestoreToCount(count int) {
	for c.saves > max(count, 0) {
		c.Restore()
	}
}

func (c *serializingCanvas) SaveCount() int {
	return c.saves
}

func (c *serializingCanvas) Translate(dx, dy float64) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: sortedMap("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *serializingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", serializeColor(color)),
	})
}

func (c *serializingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawRect",
		Params: sortedMap("rect", serializeRect(rect), "color", serializeColor(paint.Color)),
	})
}

func (c *serializingCanvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawCircle",
		Params: sortedMap(
			"cx", round2(center.X),
			"cy", round2(center.Y),
			"radius", round2(radius),
			"color", serializeColor(paint.Color),
			"antiAlias", paint.AntiAlias,
		),
	})
}

func (c *serializingCanvas) DrawImage(img image.Image, position graphics.Offset, paint graphics.Paint) {
	params := sortedMap(
		"x", round2(position.X),
		"y", round2(position.Y),
		"blend", paint.BlendMode.String(),
	)
	if img != nil {
		b := img.Bounds()
		params["width"] = b.Dx()
		params["height"] = b.Dy()
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawImage", Params: params})
}

func (c *serializingCanvas) Size() graphics.Size {
	return c.size
}

// serializeDisplayList replays a DisplayList through the serializing canvas.
func serializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	canvas := &serializingCanvas{size: dl.Size()}
	dl.Paint(canvas)
	return canvas.ops
}

// --- Serialization helpers ---

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
// Keys are sorted alphabetically in the resulting map (Go maps iterate
// in random order, but JSON marshaling sorts keys via our snapshot encoder).
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
