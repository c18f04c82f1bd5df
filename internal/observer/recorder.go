package observer

import "sync"

// Recorder is an in-memory Observer that appends every event it receives,
// for use in referee tests (spec §8 scenario S5 in particular).
type Recorder struct {
	mu     sync.Mutex
	Events []Event

	// Hang, if set, makes Notify block forever on the first call -- used
	// to exercise the referee's observer-delivery timeout (S5).
	Hang bool
	hung bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(e Event) error {
	if r.Hang && !r.hung {
		r.hung = true
		select {} // block forever; the referee must abandon this call.
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, e)
	return nil
}

// Snapshot returns a copy of the events received so far.
func (r *Recorder) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.Events))
	copy(out, r.Events)
	return out
}
