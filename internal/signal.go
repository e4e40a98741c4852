package internal

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/rs/zerolog"
)

// PriorityNormal is the priority of slots added without one. It does not
// move when the signal is reversed.
const PriorityNormal = 0

// deferral records where a paused dispatch left off. The slot snapshot was
// filtered with the sender the dispatch started with; the resuming call's
// sender is only passed to the remaining slot functions.
type deferral struct {
	slots []*Slot
	index int
}

// Signal owns the ordered slot sequence for one named event.
//
// The sequence is kept sorted by (priority, uid) at all times: Add locates
// the insertion point by binary search and splices, which trades a linear
// insert for a contiguous, cache-friendly traversal on every Call. Dispatch
// is assumed far more frequent than registration churn; a head-optimized
// container could replace the slice if that assumption stops holding.
//
// All operations synchronize on one reentrant lock per signal, so a slot
// function may add, delete, or call on its own signal; such mutations are
// seen by the next dispatch, never the one in flight.
type Signal struct {
	name    string
	reverse bool
	log     zerolog.Logger

	mu      rlock
	slots   []*Slot
	nextUID uint64

	pending    *deferral
	lastStatus Status
}

func New(name string, reverse bool, log zerolog.Logger) *Signal {
	return &Signal{
		name:    name,
		reverse: reverse,
		log:     log,
	}
}

func (s *Signal) Name() string { return s.name }

// Reverse reports whether higher priority values run first.
func (s *Signal) Reverse() bool { return s.reverse }

// Add registers fn with the given priority and listener filter and returns
// the created slot. The uid is allocated and the slot spliced into the
// sorted sequence under the lock, so concurrent Adds never collide or leave
// the sequence unsorted. A nil fn or a listener whose type does not support
// equality is rejected here rather than at dispatch time.
func (s *Signal) Add(fn SlotFunc, priority int, listener any) (*Slot, error) {
	if fn == nil {
		return nil, fmt.Errorf("add on %q: %w", s.name, ErrNilFunction)
	}
	if err := checkComparable(listener); err != nil {
		return nil, fmt.Errorf("add on %q: listener %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return nil, fmt.Errorf("add on %q: %w", s.name, ErrDeferred)
	}

	uid := s.nextUID
	s.nextUID++

	sl := newSlot(s, priority, uid, fn, listener)
	i, _ := slices.BinarySearchFunc(s.slots, sl, (*Slot).Compare)
	s.slots = slices.Insert(s.slots, i, sl)

	s.log.Debug().Str("signal", s.name).Uint64("uid", uid).Int("priority", priority).Msg("slot added")

	return sl, nil
}

// Delete removes the given slot. Deleting a slot that was never added, or
// was already deleted, reports ErrSlotNotFound without touching the
// sequence. The slot's uid is never reused.
func (s *Signal) Delete(sl *Slot) error {
	if sl == nil || sl.signal != s {
		return fmt.Errorf("delete on %q: %w", s.name, ErrSlotNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return fmt.Errorf("delete on %q: %w", s.name, ErrDeferred)
	}

	i, ok := slices.BinarySearchFunc(s.slots, sl, (*Slot).Compare)
	if !ok || s.slots[i] != sl {
		return fmt.Errorf("delete on %q: %w", s.name, ErrSlotNotFound)
	}

	s.slots = slices.Delete(s.slots, i, i+1)
	return nil
}

// DeleteUID removes the slot with the given uid.
func (s *Signal) DeleteUID(uid uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return fmt.Errorf("delete on %q: %w", s.name, ErrDeferred)
	}

	for i, sl := range s.slots {
		if sl.uid == uid {
			s.slots = slices.Delete(s.slots, i, i+1)
			return nil
		}
	}

	return fmt.Errorf("delete uid %d on %q: %w", uid, s.name, ErrSlotNotFound)
}

// DeleteFunc removes every slot holding fn, matched by code pointer the
// same way FindFunc matches.
func (s *Signal) DeleteFunc(fn SlotFunc) error {
	if fn == nil {
		return fmt.Errorf("delete on %q: %w", s.name, ErrNilFunction)
	}
	ptr := reflect.ValueOf(fn).Pointer()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return fmt.Errorf("delete on %q: %w", s.name, ErrDeferred)
	}

	n := len(s.slots)
	s.slots = slices.DeleteFunc(s.slots, func(sl *Slot) bool {
		return sl.fnPtr == ptr
	})
	if len(s.slots) == n {
		return fmt.Errorf("delete func on %q: %w", s.name, ErrSlotNotFound)
	}

	return nil
}

// Clear removes every slot.
func (s *Signal) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = nil
}

// Call dispatches to every slot matching sender, in sequence order, and
// returns the collected results. The matching slots are snapshotted at
// dispatch start, so mutations made by a slot function apply only to later
// dispatches.
//
// A slot returning ErrStop ends the dispatch (status Stop). A slot
// returning ErrDefer pauses it (status Defer): the next Call or Resume
// continues from the following slot, reusing the original snapshot and
// ignoring its own sender for filtering. Any other non-nil error aborts the
// dispatch and propagates; remaining slots do not run.
func (s *Signal) Call(sender any) ([]any, error) {
	if err := checkComparable(sender); err != nil {
		return nil, fmt.Errorf("call on %q: sender %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var slots []*Slot
	start := 0
	if s.pending != nil {
		slots = s.pending.slots
		start = s.pending.index
	} else {
		slots = s.matching(sender)
	}

	s.log.Debug().
		Str("signal", s.name).
		Int("slots", len(slots)-start).
		Bool("resumed", start > 0).
		Msg("dispatching")

	s.lastStatus = StatusDone

	ret := make([]any, 0, len(slots)-start)
	for i := start; i < len(slots); i++ {
		v, err := slots[i].fn(sender)
		switch {
		case err == nil:
			ret = append(ret, v)
		case errors.Is(err, ErrStop):
			s.lastStatus = StatusStop
			s.pending = nil
			return ret, nil
		case errors.Is(err, ErrDefer):
			s.lastStatus = StatusDefer
			s.pending = &deferral{slots: slots, index: i + 1}
			return ret, nil
		default:
			return ret, fmt.Errorf("call on %q: slot uid %d: %w", s.name, slots[i].uid, err)
		}
	}

	s.pending = nil
	return ret, nil
}

// Resume continues a paused dispatch. It returns nil results and no error
// when the signal is not deferred.
func (s *Signal) Resume(sender any) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return nil, nil
	}

	return s.Call(sender)
}

// ResetDefer drops the deferral point. A paused dispatch is abandoned; the
// next Call starts from the beginning.
func (s *Signal) ResetDefer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// ResetCall drops any deferral point and dispatches, as one atomic step.
func (s *Signal) ResetCall(sender any) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	return s.Call(sender)
}

// Deferred reports whether a dispatch is paused.
func (s *Signal) Deferred() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// LastStatus reports how the most recent dispatch ended.
func (s *Signal) LastStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// FindUID returns the slot with the given uid.
func (s *Signal) FindUID(uid uint64) (*Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sl := range s.slots {
		if sl.uid == uid {
			return sl, nil
		}
	}

	return nil, fmt.Errorf("find uid %d on %q: %w", uid, s.name, ErrSlotNotFound)
}

// FindFunc returns every slot holding fn, in sequence order. Functions are
// matched by code pointer, so two closures built from the same literal
// compare equal.
func (s *Signal) FindFunc(fn SlotFunc) ([]*Slot, error) {
	if fn == nil {
		return nil, fmt.Errorf("find on %q: %w", s.name, ErrNilFunction)
	}
	ptr := reflect.ValueOf(fn).Pointer()

	s.mu.Lock()
	defer s.mu.Unlock()

	var ret []*Slot
	for _, sl := range s.slots {
		if sl.fnPtr == ptr {
			ret = append(ret, sl)
		}
	}
	if ret == nil {
		return nil, fmt.Errorf("find func on %q: %w", s.name, ErrSlotNotFound)
	}

	return ret, nil
}

// FindListener returns every slot registered with exactly the given
// listener, in sequence order. Unlike dispatch matching this is plain
// equality: FindListener(Any) returns only slots registered with Any, not
// every slot the way Call(Any) runs every slot.
func (s *Signal) FindListener(listener any) ([]*Slot, error) {
	if err := checkComparable(listener); err != nil {
		return nil, fmt.Errorf("find on %q: listener %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var ret []*Slot
	for _, sl := range s.slots {
		if sl.listener == listener {
			ret = append(ret, sl)
		}
	}
	if ret == nil {
		return nil, fmt.Errorf("find listener %v on %q: %w", listener, s.name, ErrSlotNotFound)
	}

	return ret, nil
}

// PriorityHigher returns a priority that runs before all the given slots,
// or before every registered slot when none are given. Direction follows
// the signal's reverse setting.
func (s *Signal) PriorityHigher(slots ...*Slot) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	lo, hi := s.priorityBounds(slots)
	if s.reverse {
		return hi + 1
	}
	return lo - 1
}

// PriorityLower returns a priority that runs after all the given slots, or
// after every registered slot when none are given.
func (s *Signal) PriorityLower(slots ...*Slot) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	lo, hi := s.priorityBounds(slots)
	if s.reverse {
		return lo - 1
	}
	return hi + 1
}

// priorityBounds returns the priority range of the given slots, of all
// registered slots when none are given, and of PriorityNormal alone when
// the signal is empty too. Caller holds the lock.
func (s *Signal) priorityBounds(slots []*Slot) (lo, hi int) {
	if len(slots) == 0 {
		slots = s.slots
	}
	if len(slots) == 0 {
		return PriorityNormal, PriorityNormal
	}

	lo, hi = slots[0].priority, slots[0].priority
	for _, sl := range slots[1:] {
		lo = min(lo, sl.priority)
		hi = max(hi, sl.priority)
	}

	return lo, hi
}

// Len returns the number of registered slots.
func (s *Signal) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

// Slots returns a copy of the slot sequence in dispatch order.
func (s *Signal) Slots() []*Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.slots)
}

func (s *Signal) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Signal(name=%q, reverse=%t, slots=%d)", s.name, s.reverse, len(s.slots))
}

// matching snapshots the slots that should run for sender. Caller holds the
// lock.
func (s *Signal) matching(sender any) []*Slot {
	ret := make([]*Slot, 0, len(s.slots))
	for _, sl := range s.slots {
		if sl.matches(sender) {
			ret = append(ret, sl)
		}
	}
	return ret
}

// checkComparable rejects values the dispatch filter could not test with
// ==. nil and Any are always fine.
func checkComparable(v any) error {
	if v == nil || v == Any {
		return nil
	}
	if !reflect.TypeOf(v).Comparable() {
		return fmt.Errorf("%w: %T", ErrNotComparable, v)
	}
	return nil
}
