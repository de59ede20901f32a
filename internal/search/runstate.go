package search

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// runState is the mutable state of one indexing run: cooperative
// cancellation, the processed-folder counter and the visited set. It is
// created by StartIndexing, shared by all workers of that run, and dies with
// the run.
type runState struct {
	id       uuid.UUID
	stop     chan struct{}
	stopOnce sync.Once
	folders  atomic.Int64
	visited  *VisitedPathSet
	done     chan struct{}
}

func newRunState() *runState {
	return &runState{
		id:      uuid.New(),
		stop:    make(chan struct{}),
		visited: NewVisitedPathSet(),
		done:    make(chan struct{}),
	}
}

// cancel requests cooperative cancellation. Idempotent.
func (r *runState) cancel() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// cancelled reports whether cancellation was requested. Checked at the top
// of each recursive step; an in-flight directory enumeration finishes first,
// so cancellation latency is bounded by one directory.
func (r *runState) cancelled() bool {
	select {
	case <-r.stop:
		return true
	default:
		return false
	}
}
