package classifier

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Readiness is a one-shot readiness flag. It starts false, is flipped to
// true at most once by a single background initializer, and never goes back.
// Ready is a lock-free read safe from any goroutine.
type Readiness struct {
	ready atomic.Bool
	once  sync.Once
	done  chan struct{}

	mu  sync.Mutex
	err error
}

// NewReadiness returns a flag that is not ready.
func NewReadiness() *Readiness {
	return &Readiness{done: make(chan struct{})}
}

// ReadyNow returns a flag that is ready from the start, for tiers with no
// setup.
func ReadyNow() *Readiness {
	r := NewReadiness()
	r.once.Do(func() {
		r.ready.Store(true)
		close(r.done)
	})
	return r
}

// Ready reports whether initialization completed successfully.
func (r *Readiness) Ready() bool {
	return r.ready.Load()
}

// Err returns the recorded initialization failure, if any.
func (r *Readiness) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done is closed once initialization has finished, successfully or not.
func (r *Readiness) Done() <-chan struct{} {
	return r.done
}

// Start runs setup in a new goroutine after delay. Success flips the flag;
// an error or panic is recorded and the flag stays false. No retry is
// scheduled. Calls after the first are ignored.
//
// The goroutine is not tied to any context and never blocks process exit.
func (r *Readiness) Start(delay time.Duration, setup func() error) {
	r.once.Do(func() {
		go r.run(delay, setup)
	})
}

func (r *Readiness) run(delay time.Duration, setup func() error) {
	defer close(r.done)

	if delay > 0 {
		time.Sleep(delay)
	}

	err := safeSetup(setup)
	if err != nil {
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		return
	}
	r.ready.Store(true)
}

func safeSetup(setup func() error) (err error) {
	if setup == nil {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("initializer panic: %v", rec)
		}
	}()
	return setup()
}
