package referee

import "time"

// Timeouts holds the five tunables of spec §5. DefaultTimeouts matches the
// spec's defaults; tests override them via WithTimeouts to exercise the
// timeout-driven disqualification paths in milliseconds.
type Timeouts struct {
	AssignColor        time.Duration
	Placement          time.Duration
	Turn               time.Duration
	InformDisqualified time.Duration
	ObserverDelivery   time.Duration
}

// DefaultTimeouts returns the spec's default of 10 seconds for every call.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		AssignColor:        10 * time.Second,
		Placement:          10 * time.Second,
		Turn:               10 * time.Second,
		InformDisqualified: 10 * time.Second,
		ObserverDelivery:   10 * time.Second,
	}
}
