package taillight

import "github.com/Elizafox/taillight/internal"

// SlotFunc is the function a slot runs on dispatch. It receives the sender
// the dispatch was called with. The returned value is collected into Call's
// results. Returning ErrStop or ErrDefer steers the dispatch; any other
// non-nil error aborts it and propagates to Call's caller.
type SlotFunc func(sender any) (any, error)

// SlotOption configures a slot at registration.
type SlotOption func(*slotConfig)

type slotConfig struct {
	priority int
	listener any
}

// WithPriority sets the slot's dispatch priority. Lower values run first,
// unless the signal was built with WithReverse.
func WithPriority(priority int) SlotOption {
	return func(c *slotConfig) { c.priority = priority }
}

// WithListener restricts the slot to dispatches whose sender equals
// listener (or is Any). The value must support ==; Add rejects one that
// does not.
func WithListener(listener any) SlotOption {
	return func(c *slotConfig) { c.listener = listener }
}

// Slot is one registration on a signal, immutable once created. Keep it (or
// its UID) around to delete the registration later.
type Slot struct {
	slot *internal.Slot
}

// UID is the slot's identity: unique on its signal, assigned in strictly
// increasing order of Add calls, never reused even after deletion.
func (sl *Slot) UID() uint64 { return sl.slot.UID() }

// Priority returns the slot's dispatch priority.
func (sl *Slot) Priority() int { return sl.slot.Priority() }

// Listener returns the slot's listener filter, Any when unrestricted.
func (sl *Slot) Listener() any { return sl.slot.Listener() }

func (sl *Slot) String() string { return sl.slot.String() }
