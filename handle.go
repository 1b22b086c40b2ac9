// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

// PromiseHandle is the producer-side, non-owning view of a task's
// frame: checked and fallible, never touching a frame that has
// finished or been destroyed.
//
// Exactly one completion method should be fired per pending operation.
// A completion that loses the race against the consumer's Cancel, or
// against another completion, reports false and has no effect.
type PromiseHandle[T any] struct {
	f *frame[T]
}

// Alive reports whether the frame can still be completed: it has
// neither finished nor been destroyed.
func (h PromiseHandle[T]) Alive() bool {
	if h.f == nil {
		return false
	}
	st := h.f.state.Load()
	return st == stateRunning || st == stateSuspended
}

// Resume drives the parked frame without storing a value (void
// completions). It returns once the frame has parked again or
// finished, reporting whether the resumption took effect.
func (h PromiseHandle[T]) Resume() bool {
	if h.f == nil {
		return false
	}
	return h.f.tryResume()
}

// Complete stores v into the promise state, then resumes the frame.
// Claiming the resumption permit precedes the store, and the store is
// visible to the body before it wakes; a false return means the frame
// was not resumed and its value was left untouched.
func (h PromiseHandle[T]) Complete(v T) bool {
	if h.f == nil {
		return false
	}
	if !h.f.claim() {
		return false
	}
	h.f.value.Store(&v)
	h.f.drive()
	return true
}
