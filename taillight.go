// Package taillight implements signals and slots, with priorities.
//
// A Signal is a named, ordered, thread-safe collection of slots. Each slot
// holds a function, a priority, a listener filter, and a unique uid; Call
// invokes every slot matching the sender, synchronously, in priority order
// with ties broken by insertion order.
package taillight

import (
	"github.com/rs/zerolog"

	"github.com/Elizafox/taillight/internal"
)

// Any matches everything: a slot registered with listener Any runs on every
// dispatch, and Call(Any) runs every slot. It is a single process-wide
// sentinel, distinct from every application value, and safe to share across
// goroutines.
var Any = internal.Any

// PriorityNormal is the priority used when Add is given no WithPriority
// option. It means the same thing on reversed signals.
const PriorityNormal = internal.PriorityNormal

// Option configures a signal at construction.
type Option func(*config)

type config struct {
	reverse bool
	log     zerolog.Logger
}

// WithReverse makes higher priority values run first. The direction only
// affects priorities: at equal priority, earlier-added slots always run
// first.
func WithReverse() Option {
	return func(c *config) { c.reverse = true }
}

// WithLogger attaches a logger for dispatch traces. Signals log nothing by
// default.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) { c.log = log }
}

// Signal is a named ordered collection of slots. All methods may be used
// from multiple goroutines at once, including from inside a running slot
// function on the same goroutine.
type Signal struct {
	s *internal.Signal
}

// New returns the signal registered under name, creating it if needed. Two
// calls with the same non-empty name return the same signal, so unrelated
// packages can rendezvous on a name alone; the first creation fixes the
// signal's options. Shared signals live for the rest of the process.
//
// An empty name gives a private anonymous signal, like NewUnshared.
func New(name string, opts ...Option) *Signal {
	if name == "" {
		return NewUnshared(name, opts...)
	}

	return &Signal{internal.Shared(name, func() *internal.Signal {
		return newInternal(name, opts)
	})}
}

// NewUnshared returns a private signal that is never entered into the
// shared-by-name table, even when another signal uses the same name.
func NewUnshared(name string, opts ...Option) *Signal {
	return &Signal{newInternal(name, opts)}
}

func newInternal(name string, opts []Option) *internal.Signal {
	c := config{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&c)
	}

	return internal.New(name, c.reverse, c.log)
}

// Name returns the signal's label. It is informational only; dispatch never
// matches on it.
func (s *Signal) Name() string { return s.s.Name() }

// Reverse reports whether higher priority values run first.
func (s *Signal) Reverse() bool { return s.s.Reverse() }

// Add registers fn and returns its slot, which carries the uid needed for
// later deletion or lookup. Registration fails with ErrNilFunction for a
// nil fn, ErrNotComparable for a listener that cannot be compared, and
// ErrDeferred while a paused dispatch is pending.
//
// Insertion keeps the slot sequence sorted: slots compare by priority
// (ascending, or descending on a reversed signal) and then by uid
// ascending, so equal-priority slots run in the order they were added. The
// insertion point is found by binary search and spliced in linear time, a
// deliberate trade against the far more frequent dispatch traversal.
func (s *Signal) Add(fn SlotFunc, opts ...SlotOption) (*Slot, error) {
	sc := slotConfig{priority: PriorityNormal, listener: Any}
	for _, opt := range opts {
		opt(&sc)
	}

	sl, err := s.s.Add(internal.SlotFunc(fn), sc.priority, sc.listener)
	if err != nil {
		return nil, err
	}

	return &Slot{sl}, nil
}

// Delete removes a slot previously returned by Add on this signal. Deleting
// a slot twice reports ErrSlotNotFound; the uid is never reused.
func (s *Signal) Delete(sl *Slot) error {
	if sl == nil {
		return s.s.Delete(nil)
	}
	return s.s.Delete(sl.slot)
}

// DeleteUID removes the slot with the given uid, reporting ErrSlotNotFound
// when it is absent.
func (s *Signal) DeleteUID(uid uint64) error { return s.s.DeleteUID(uid) }

// DeleteFunc removes every slot registered with fn.
func (s *Signal) DeleteFunc(fn SlotFunc) error {
	return s.s.DeleteFunc(internal.SlotFunc(fn))
}

// Clear removes every slot from the signal.
func (s *Signal) Clear() { s.s.Clear() }

// Call invokes, in order, every slot whose listener is Any, equals sender,
// or when sender is Any every slot, and returns their results. Dispatch
// walks a snapshot taken when the call starts; a slot function mutating the
// signal affects only later dispatches. The traversal is linear in the
// total number of slots regardless of how many match.
//
// A slot returning ErrStop or ErrDefer controls the dispatch (see
// LastStatus); any other error aborts it immediately and propagates, and
// the remaining slots do not run. A deferred dispatch is continued by the
// next Call, starting at the slot after the deferring one with the original
// snapshot; the new sender is passed to the slot functions but not
// re-filtered.
func (s *Signal) Call(sender any) ([]any, error) { return s.s.Call(sender) }

// Resume continues a deferred dispatch, or does nothing and returns nil
// results when the signal is not deferred.
func (s *Signal) Resume(sender any) ([]any, error) { return s.s.Resume(sender) }

// ResetDefer abandons a paused dispatch so mutation and fresh dispatches
// may proceed.
func (s *Signal) ResetDefer() { s.s.ResetDefer() }

// ResetCall abandons any paused dispatch and dispatches from the beginning,
// atomically with respect to other goroutines.
func (s *Signal) ResetCall(sender any) ([]any, error) { return s.s.ResetCall(sender) }

// Deferred reports whether a dispatch is paused on this signal.
func (s *Signal) Deferred() bool { return s.s.Deferred() }

// LastStatus reports how the most recent dispatch ended: StatusDone,
// StatusStop, or StatusDefer, and StatusNone before any dispatch.
func (s *Signal) LastStatus() Status { return s.s.LastStatus() }

// FindUID returns the slot with the given uid, or ErrSlotNotFound.
func (s *Signal) FindUID(uid uint64) (*Slot, error) {
	sl, err := s.s.FindUID(uid)
	if err != nil {
		return nil, err
	}
	return &Slot{sl}, nil
}

// FindFunc returns every slot registered with fn, in dispatch order.
// Functions are matched by identity (code pointer), not value.
func (s *Signal) FindFunc(fn SlotFunc) ([]*Slot, error) {
	sls, err := s.s.FindFunc(internal.SlotFunc(fn))
	return wrapSlots(sls), err
}

// FindListener returns every slot registered with exactly this listener, in
// dispatch order. This is strict equality, not the dispatch relation:
// FindListener(Any) returns only the slots registered with Any, even though
// Call(Any) would run all of them.
func (s *Signal) FindListener(listener any) ([]*Slot, error) {
	sls, err := s.s.FindListener(listener)
	return wrapSlots(sls), err
}

// PriorityHigher returns a priority that dispatches before the given slots,
// or before everything currently registered when called with none.
func (s *Signal) PriorityHigher(slots ...*Slot) int {
	return s.s.PriorityHigher(unwrapSlots(slots)...)
}

// PriorityLower returns a priority that dispatches after the given slots,
// or after everything currently registered when called with none.
func (s *Signal) PriorityLower(slots ...*Slot) int {
	return s.s.PriorityLower(unwrapSlots(slots)...)
}

// Len returns the number of registered slots.
func (s *Signal) Len() int { return s.s.Len() }

// Slots returns the registered slots as a copy, in dispatch order.
func (s *Signal) Slots() []*Slot { return wrapSlots(s.s.Slots()) }

func (s *Signal) String() string { return s.s.String() }

func wrapSlots(sls []*internal.Slot) []*Slot {
	if sls == nil {
		return nil
	}

	ret := make([]*Slot, len(sls))
	for i, sl := range sls {
		ret[i] = &Slot{sl}
	}
	return ret
}

func unwrapSlots(slots []*Slot) []*internal.Slot {
	ret := make([]*internal.Slot, len(slots))
	for i, sl := range slots {
		ret[i] = sl.slot
	}
	return ret
}
