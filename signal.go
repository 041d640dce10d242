package pixelbatt

import "sync/atomic"

// LoopSignal is set once when the process is asked to terminate, and is checked
// by the Loop before it waits for the next event. It is never reset.
type LoopSignal struct {
	set atomic.Bool
}

// Set sets the signal. It is idempotent.
func (s *LoopSignal) Set() {
	s.set.Store(true)
}

// IsSet checks whether the signal is set.
func (s *LoopSignal) IsSet() bool {
	return s.set.Load()
}
