package internal

import "errors"

var (
	// ErrSlotNotFound reports a delete or lookup whose uid, function or
	// listener matched nothing on the signal.
	ErrSlotNotFound = errors.New("taillight: slot not found")

	// ErrNilFunction reports an Add with a nil slot function.
	ErrNilFunction = errors.New("taillight: slot function is nil")

	// ErrNotComparable reports a listener or sender whose type does not
	// support equality, which the dispatch filter requires.
	ErrNotComparable = errors.New("taillight: value is not comparable")

	// ErrDeferred reports a mutation attempted while a deferral point is
	// set. ResetDefer clears the condition.
	ErrDeferred = errors.New("taillight: signal has a deferral point set")

	// ErrStop may be returned by a slot function to halt the current
	// dispatch. Call consumes it and reports StatusStop.
	ErrStop = errors.New("taillight: stop dispatch")

	// ErrDefer may be returned by a slot function to pause the current
	// dispatch after itself. Call consumes it, reports StatusDefer, and a
	// later Call or Resume picks up at the next slot.
	ErrDefer = errors.New("taillight: defer dispatch")
)

// Status describes how the most recent dispatch on a signal ended.
type Status int

const (
	// StatusNone means the signal has not been dispatched yet.
	StatusNone Status = iota

	// StatusDone means every matching slot ran.
	StatusDone

	// StatusStop means a slot returned ErrStop.
	StatusStop

	// StatusDefer means a slot returned ErrDefer and the dispatch is
	// paused.
	StatusDefer
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusDone:
		return "done"
	case StatusStop:
		return "stop"
	case StatusDefer:
		return "defer"
	default:
		return "unknown"
	}
}
