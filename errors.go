package taillight

import "github.com/Elizafox/taillight/internal"

// The error surface. All errors returned by this package wrap one of these
// sentinels; test with errors.Is.
var (
	// ErrSlotNotFound reports a delete or find that matched no slot.
	ErrSlotNotFound = internal.ErrSlotNotFound

	// ErrNilFunction reports a nil slot function given to Add, DeleteFunc
	// or FindFunc.
	ErrNilFunction = internal.ErrNilFunction

	// ErrNotComparable reports a listener or sender value whose type does
	// not support equality.
	ErrNotComparable = internal.ErrNotComparable

	// ErrDeferred reports a mutation attempted while a dispatch is paused
	// on the signal.
	ErrDeferred = internal.ErrDeferred

	// ErrStop, returned from a slot function, ends the dispatch early.
	// Call consumes it (it is control flow, not a failure) and reports
	// StatusStop.
	ErrStop = internal.ErrStop

	// ErrDefer, returned from a slot function, pauses the dispatch after
	// that slot. Call consumes it and reports StatusDefer.
	ErrDefer = internal.ErrDefer
)

// Status describes how a signal's most recent dispatch ended.
type Status = internal.Status

const (
	StatusNone  = internal.StatusNone
	StatusDone  = internal.StatusDone
	StatusStop  = internal.StatusStop
	StatusDefer = internal.StatusDefer
)
