package internal

import (
	"cmp"
	"fmt"
	"reflect"
)

// SlotFunc is the callable a slot holds. It receives the sender passed to
// Call. The returned value is collected into Call's results; a non-nil
// error is interpreted per the dispatch policy (ErrStop and ErrDefer are
// control flow, anything else aborts the dispatch).
type SlotFunc func(sender any) (any, error)

// Slot is one registration on a Signal. It is immutable after Add and is
// ordered by (priority, uid).
type Slot struct {
	signal   *Signal
	priority int
	uid      uint64
	fn       SlotFunc
	fnPtr    uintptr
	listener any
}

func newSlot(s *Signal, priority int, uid uint64, fn SlotFunc, listener any) *Slot {
	return &Slot{
		signal:   s,
		priority: priority,
		uid:      uid,
		fn:       fn,
		fnPtr:    reflect.ValueOf(fn).Pointer(),
		listener: listener,
	}
}

func (sl *Slot) Signal() *Signal { return sl.signal }
func (sl *Slot) Priority() int   { return sl.priority }
func (sl *Slot) UID() uint64     { return sl.uid }
func (sl *Slot) Listener() any   { return sl.listener }

// Compare orders two slots within one signal: priority in the signal's
// direction, then uid ascending. The uid leg never reverses, so slots added
// earlier always run before later ones at equal priority.
func (sl *Slot) Compare(other *Slot) int {
	if c := cmp.Compare(sl.priority, other.priority); c != 0 {
		if sl.signal.reverse {
			return -c
		}
		return c
	}
	return cmp.Compare(sl.uid, other.uid)
}

func (sl *Slot) String() string {
	return fmt.Sprintf("Slot(priority=%d, uid=%d, listener=%v)", sl.priority, sl.uid, sl.listener)
}

// matches reports whether this slot should run for the given sender. ANY on
// either side matches everything; otherwise plain equality.
func (sl *Slot) matches(sender any) bool {
	return sl.listener == Any || sender == Any || sl.listener == sender
}
