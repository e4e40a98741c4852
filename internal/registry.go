package internal

import "sync"

// Signals created through Shared are keyed by name for the life of the
// process, so every caller asking for one name talks to the same slot
// sequence. The first construction for a name wins its configuration.
var shared sync.Map

// Shared returns the process-wide signal registered under name, creating it
// with create when absent. Concurrent first calls for one name race on
// LoadOrStore; exactly one constructed signal survives.
func Shared(name string, create func() *Signal) *Signal {
	if v, ok := shared.Load(name); ok {
		return v.(*Signal)
	}

	v, _ := shared.LoadOrStore(name, create())
	return v.(*Signal)
}
