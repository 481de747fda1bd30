package platform

import (
	"context"
	"sync"

	"github.com/TkwkT/CircleImageView/pkg/errors"
)

// Looper is a single-goroutine event loop standing in for the host UI
// thread. Callbacks posted from any goroutine run in order on the goroutine
// that calls Run (or RunPending).
type Looper struct {
	queue    chan func()
	quit     chan struct{}
	stopOnce sync.Once
}

// NewLooper creates a looper with room for buffer pending callbacks before
// Post blocks.
func NewLooper(buffer int) *Looper {
	return &Looper{
		queue: make(chan func(), max(buffer, 1)),
		quit:  make(chan struct{}),
	}
}

// Post schedules callback on the loop. Returns false if the looper has been
// stopped or callback is nil.
func (l *Looper) Post(callback func()) bool {
	if callback == nil {
		return false
	}
	select {
	case <-l.quit:
		return false
	default:
	}
	select {
	case l.queue <- callback:
		return true
	case <-l.quit:
		return false
	}
}

// Run processes callbacks until ctx is done or Stop is called.
func (l *Looper) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			return nil
		case fn := <-l.queue:
			l.run(fn)
		}
	}
}

// RunPending runs every callback queued at the time of the call without
// blocking, and returns how many ran.
func (l *Looper) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			l.run(fn)
			n++
		default:
			return n
		}
	}
}

// Stop ends Run and rejects further posts. Pending callbacks are dropped.
func (l *Looper) Stop() {
	l.stopOnce.Do(func() { close(l.quit) })
}

// Install registers this looper as the process-wide dispatch target. Once
// the looper is stopped, Dispatch returns false.
func (l *Looper) Install() {
	RegisterDispatch(l.Post)
}

func (l *Looper) run(fn func()) {
	defer errors.Recover("platform.Looper")
	fn()
}
