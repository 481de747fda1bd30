package bitmap

import (
	"errors"
	"io"
	"slices"
)

// DefaultMarkLimit bounds how many bytes a MarkReader retains for replay.
const DefaultMarkLimit = 32 << 20

var (
	// ErrResetUnsupported is returned by Reset when no mark is set.
	ErrResetUnsupported = errors.New("bitmap: reset without mark")
	// ErrMarkExceeded is returned by Reset when more than the mark limit
	// was read after Mark.
	ErrMarkExceeded = errors.New("bitmap: read past mark limit")
)

// MarkReader adds mark/reset to a one-shot stream by retaining the bytes
// read since the last Mark.
type MarkReader struct {
	r        io.Reader
	buf      []byte
	replay   []byte
	limit    int
	marking  bool
	exceeded bool
}

// NewMarkReader wraps r.
func NewMarkReader(r io.Reader) *MarkReader {
	return &MarkReader{r: r}
}

// Mark remembers the current position. Up to limit bytes read afterwards
// can be replayed by Reset.
func (m *MarkReader) Mark(limit int) {
	m.buf = m.buf[:0]
	m.limit = limit
	m.marking = true
	m.exceeded = false
}

// Unmark stops recording and releases the retained bytes. Bytes already
// rewound by Reset are still replayed.
func (m *MarkReader) Unmark() {
	m.buf = nil
	m.marking = false
	m.exceeded = false
}

// Reset rewinds to the marked position. The mark stays in place until
// Unmark.
func (m *MarkReader) Reset() error {
	if m.exceeded {
		return ErrMarkExceeded
	}
	if !m.marking {
		return ErrResetUnsupported
	}
	m.replay = append(slices.Clone(m.buf), m.replay...)
	m.buf = m.buf[:0]
	return nil
}

func (m *MarkReader) Read(p []byte) (int, error) {
	if len(m.replay) > 0 {
		n := copy(p, m.replay)
		m.replay = m.replay[n:]
		m.record(p[:n])
		return n, nil
	}
	n, err := m.r.Read(p)
	m.record(p[:n])
	return n, err
}

func (m *MarkReader) record(b []byte) {
	if !m.marking || len(b) == 0 {
		return
	}
	if len(m.buf)+len(b) > m.limit {
		m.marking = false
		m.exceeded = true
		m.buf = nil
		return
	}
	m.buf = append(m.buf, b...)
}
