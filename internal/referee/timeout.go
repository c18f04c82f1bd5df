package referee

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrTimeout is returned by callWithTimeout when fn did not complete within
// the deadline. The referee treats it identically to any other agent
// failure (spec §4.5: "raises, returns a malformed value, or returns no
// value ... is treated identically").
var ErrTimeout = errors.New("agent call timed out")

// callWithTimeout is the shared "run with deadline" primitive described in
// spec §9: fn runs on its own goroutine, which is never waited on past the
// deadline. A goroutine that finishes late writes to a capacity-1 channel
// nobody reads again, so its result is silently and permanently discarded
// -- this gives §5's "(ii) an abandoned call never subsequently affects
// referee state" for free, without any explicit cancellation signal.
func callWithTimeout[T any](timeout time.Duration, fn func() (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				ch <- result{val: zero, err: errors.Errorf("agent call panicked: %v", r)}
			}
		}()
		v, err := fn()
		ch <- result{val: v, err: err}
	}()

	select {
	case res := <-ch:
		return res.val, res.err
	case <-time.After(timeout):
		var zero T
		return zero, errors.Wrap(ErrTimeout, fmt.Sprintf("after %s", timeout))
	}
}

// callVoidWithTimeout adapts callWithTimeout for agent operations that
// return only an error (AssignColor) or nothing at all (InformDisqualified).
func callVoidWithTimeout(timeout time.Duration, fn func() error) error {
	_, err := callWithTimeout(timeout, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
