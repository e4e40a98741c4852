package internal

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// rlock is a mutex that may be re-acquired by the goroutine already holding
// it. Dispatch holds the signal's lock for its whole traversal, so a target
// that adds or deletes slots on its own signal would self-deadlock on a
// plain sync.Mutex.
//
// owner is only ever written by the goroutine that holds mu, and depth is
// only touched by the owner, so a plain int is enough for depth.
type rlock struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (l *rlock) Lock() {
	gid := goid.Get()
	if l.owner.Load() == gid {
		l.depth++
		return
	}

	l.mu.Lock()
	l.owner.Store(gid)
	l.depth = 1
}

func (l *rlock) Unlock() {
	if l.depth > 1 {
		l.depth--
		return
	}

	l.depth = 0
	l.owner.Store(0)
	l.mu.Unlock()
}
