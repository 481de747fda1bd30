package layout

import "fmt"

// MeasureMode tells a render object how to interpret a MeasureSpec size.
type MeasureMode int

const (
	// MeasureUnspecified places no constraint on the dimension.
	MeasureUnspecified MeasureMode = iota
	// MeasureExactly requires the dimension to be exactly Size.
	MeasureExactly
	// MeasureAtMost allows any dimension up to Size.
	MeasureAtMost
)

// String returns a human-readable representation of the measure mode.
func (m MeasureMode) String() string {
	switch m {
	case MeasureUnspecified:
		return "unspecified"
	case MeasureExactly:
		return "exactly"
	case MeasureAtMost:
		return "at_most"
	default:
		return fmt.Sprintf("MeasureMode(%d)", int(m))
	}
}

// MeasureSpec is one dimension of the constraint a parent passes to a child
// during the measure pass.
type MeasureSpec struct {
	Mode MeasureMode
	Size int
}

// Exactly returns a spec requiring exactly size pixels.
func Exactly(size int) MeasureSpec {
	return MeasureSpec{Mode: MeasureExactly, Size: max(size, 0)}
}

// AtMost returns a spec allowing up to size pixels.
func AtMost(size int) MeasureSpec {
	return MeasureSpec{Mode: MeasureAtMost, Size: max(size, 0)}
}

// Unspecified returns a spec with no constraint.
func Unspecified() MeasureSpec {
	return MeasureSpec{Mode: MeasureUnspecified}
}

// String returns the spec as "mode:size".
func (s MeasureSpec) String() string {
	return fmt.Sprintf("%s:%d", s.Mode, s.Size)
}

// EdgeInsets holds padding on each side in pixels.
type EdgeInsets struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// EdgeInsetsAll returns insets with the same value on every side.
func EdgeInsetsAll(v int) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// Horizontal returns Left + Right.
func (e EdgeInsets) Horizontal() int {
	return e.Left + e.Right
}

// Vertical returns Top + Bottom.
func (e EdgeInsets) Vertical() int {
	return e.Top + e.Bottom
}
