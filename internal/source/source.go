// Package source holds the music catalog and the readiness state machine
// that gates playback preparation until the catalog has loaded.
package source

import (
	"fmt"
	"sync"
)

// State is the lifecycle state of a music source.
type State int

const (
	// StateCreated means no initialization has been performed.
	StateCreated State = iota + 1
	// StateInitializing means loading is in progress.
	StateInitializing
	// StateInitialized means the source is loaded and ready to be used.
	StateInitialized
	// StateError means loading failed.
	StateError
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitializing:
		return "initializing"
	case StateInitialized:
		return "initialized"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// terminal reports whether actions run immediately in s.
func (s State) terminal() bool {
	return s == StateInitialized || s == StateError
}

// Readiness tracks a source's state and the actions waiting for it to
// settle. The zero value is in StateCreated. It is safe for concurrent use.
type Readiness struct {
	mu       sync.Mutex
	state    State
	pending  []func(ok bool)
	flushing bool // queued actions are being run
	onChange func(from, to State)
}

// State returns the current state.
func (r *Readiness) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current()
}

func (r *Readiness) current() State {
	if r.state == 0 {
		return StateCreated
	}
	return r.state
}

// SetState moves to s. Entering StateInitialized or StateError runs every
// queued action once, in registration order, outside the lock. Actions
// registered while that happens are queued behind the others.
func (r *Readiness) SetState(s State) {
	r.mu.Lock()
	from := r.current()
	r.state = s
	flush := s.terminal() && !r.flushing
	if flush {
		r.flushing = true
	}
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil && from != s {
		onChange(from, s)
	}
	if flush {
		r.flush()
	}
}

// flush runs queued actions until none are left.
func (r *Readiness) flush() {
	for {
		r.mu.Lock()
		run := r.pending
		r.pending = nil
		ok := r.current() == StateInitialized
		if len(run) == 0 {
			r.flushing = false
			r.mu.Unlock()
			return
		}
		r.mu.Unlock()

		for _, action := range run {
			action(ok)
		}
	}
}

// WhenReady runs action with the load outcome. Before a terminal state is
// reached, or while queued actions are still running, the action is queued
// and false is returned.
func (r *Readiness) WhenReady(action func(ok bool)) bool {
	r.mu.Lock()
	state := r.current()
	if !state.terminal() || r.flushing {
		r.pending = append(r.pending, action)
		r.mu.Unlock()
		return false
	}
	r.mu.Unlock()

	action(state == StateInitialized)
	return true
}

// Pending returns how many actions are queued.
func (r *Readiness) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
