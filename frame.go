// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

import (
	"runtime"
	"sync/atomic"
)

// Frame lifecycle states. A frame starts Running (bodies are eager),
// alternates between Running and Suspended across its suspension
// points, and ends in exactly one of the two terminal states.
const (
	stateRunning uint32 = iota
	stateSuspended
	stateDone
	stateDestroyed
)

// closedChan is shared by frames that are born finished.
var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// core is the lifecycle cell of a frame: the at-most-once resumption
// gate, the park/wake handoff between the body goroutine and its
// resumers, and the waiter back-reference consumed at the terminal
// step.
//
// Handoff pairing invariant: at every suspension point exactly one
// resumer (the constructor, for the first one) is blocked receiving
// from park. The body's park send therefore never blocks indefinitely,
// and a resumer returns only once the body has parked again or exited.
type core struct {
	state atomic.Uint32

	// wake carries resumer→body handoffs; park carries body→resumer
	// handoffs and is closed when the body goroutine exits.
	wake chan struct{}
	park chan struct{}

	// finished is closed when the body goroutine exits, whichever
	// terminal state it reached. Task.Wait selects on it.
	finished chan struct{}

	// waiter is the core of the frame parked in awaitFrame on this
	// frame's completion, consumed by the terminal step. Single slot:
	// a later registration replaces an earlier one.
	waiter atomic.Pointer[core]

	// panicked records a panic that escaped the body. Written before
	// park and finished close; read only after observing the close.
	panicked any
}

func (c *core) init() {
	c.wake = make(chan struct{})
	c.park = make(chan struct{})
	c.finished = make(chan struct{})
}

func (c *core) done() bool { return c.state.Load() == stateDone }

// settled reports whether the frame has reached a terminal state.
func (c *core) settled() bool { return c.state.Load() >= stateDone }

// claim takes the single resumption permit of the current suspension.
func (c *core) claim() bool {
	return c.state.CompareAndSwap(stateSuspended, stateRunning)
}

// drive hands control to the parked body and blocks until it parks
// again or exits. Callers must hold the resumption permit. A panic that
// ended the body re-raises here, on the driving goroutine.
func (c *core) drive() {
	c.wake <- struct{}{}
	c.waitParked()
}

// waitParked blocks until the body parks or exits.
func (c *core) waitParked() {
	_, ok := <-c.park
	if !ok && c.panicked != nil {
		panic(c.panicked)
	}
}

// tryResume is the checked, fallible resume: false when the frame is
// running, finished or destroyed, or when another resumer won the
// permit.
func (c *core) tryResume() bool {
	if !c.claim() {
		return false
	}
	c.drive()
	return true
}

// resumeWaiter resumes a frame that registered itself as a waiter.
// Registration happens moments before the waiter parks, so the
// terminal step may observe the waiter still Running; yield until it
// has parked. A waiter that was destroyed while parked is left alone.
func (c *core) resumeWaiter() {
	for {
		switch c.state.Load() {
		case stateRunning:
			runtime.Gosched()
		case stateSuspended:
			if c.claim() {
				c.drive()
				return
			}
		default:
			return
		}
	}
}

// suspend parks the calling body goroutine until a resumer drives it.
// If the frame was destroyed while parked, the goroutine unwinds and
// deferred cleanup in the body runs.
func (c *core) suspend() {
	if c.state.Load() != stateRunning {
		panic("tasq: suspend outside a running task body")
	}
	c.state.Store(stateSuspended)
	c.park <- struct{}{}
	<-c.wake
	if c.state.Load() == stateDestroyed {
		runtime.Goexit()
	}
}

// destroy moves the frame to Destroyed and unwinds its goroutine. A
// parked frame is claimed the same way a resume claims it, a running
// frame is waited out, a settled frame is left alone. destroy returns
// only after the goroutine has exited.
func (c *core) destroy() {
	for {
		switch c.state.Load() {
		case stateDone, stateDestroyed:
			return
		case stateSuspended:
			if c.state.CompareAndSwap(stateSuspended, stateDestroyed) {
				c.wake <- struct{}{}
				<-c.park // park closes once the unwind completes
				return
			}
		default:
			runtime.Gosched()
		}
	}
}

// frame is a suspendable computation bound to one goroutine, together
// with its promise state: the re-settable current value.
type frame[T any] struct {
	core
	value atomic.Pointer[T]
}

func newFrame[T any](body func(*Scope) T) *frame[T] {
	f := &frame[T]{}
	f.start(body)
	return f
}

// newDoneFrame returns a frame born finished. No goroutine is spawned.
func newDoneFrame[T any](v T) *frame[T] {
	f := &frame[T]{}
	f.finished = closedChan
	f.state.Store(stateDone)
	f.value.Store(&v)
	return f
}

// start launches the body eagerly: it returns once the body has reached
// its first suspension point or finished. A panic that ends the body
// before its first suspension re-raises here.
func (f *frame[T]) start(body func(*Scope) T) {
	f.init()
	go f.run(body)
	f.waitParked()
}

func (f *frame[T]) run(body func(*Scope) T) {
	c := &f.core
	defer func() {
		// Catches a panic re-raised out of the waiter cascade below.
		// When both the body and a woken waiter failed, the first
		// recorded panic wins.
		if r := recover(); r != nil && c.panicked == nil {
			c.panicked = r
		}
		c.state.CompareAndSwap(stateRunning, stateDone)
		close(c.finished)
		close(c.park)
	}()
	func() {
		defer func() {
			if r := recover(); r != nil {
				c.panicked = r
			}
			if c.state.Load() == stateDestroyed {
				return // unwinding; no terminal step
			}
			// Terminal step: publish completion, then wake the waiter.
			// Runs on the panic path too, so chains and combinators
			// above a failed body keep making progress.
			c.state.Store(stateDone)
			if w := c.waiter.Swap(nil); w != nil {
				w.resumeWaiter()
			}
		}()
		v := body(&Scope{c: c})
		f.value.Store(&v)
	}()
}

// current returns the value most recently stored into the promise
// state, or the zero value if none has been stored yet.
func (f *frame[T]) current() T {
	if p := f.value.Load(); p != nil {
		return *p
	}
	var zero T
	return zero
}

// destroy is nil-tolerant: chains destroy whatever source they hold.
func (f *frame[T]) destroy() {
	if f == nil {
		return
	}
	f.core.destroy()
}

// spawn runs fn as an unowned frame: no handle, nothing to cancel.
// Fan-in collectors run this way.
func spawn(fn func(*Scope)) {
	f := &frame[struct{}]{}
	f.start(func(s *Scope) struct{} {
		fn(s)
		return struct{}{}
	})
}

// Scope is the suspension capability of a task body. The constructor
// passes one to the body; it must not escape the body or be used from
// another goroutine.
type Scope struct {
	c *core
}

// Suspend parks the body until a producer resumes the frame through a
// PromiseHandle. The current value may have been re-set by the time
// Suspend returns; bodies re-read it through Await or Task.Value.
func (s *Scope) Suspend() {
	s.c.suspend()
}

// awaitFrame suspends the calling body until f completes, then returns
// f's value at that moment. A nil frame yields the zero value
// immediately; a settled frame never parks the caller.
func awaitFrame[T any](s *Scope, f *frame[T]) T {
	if f == nil {
		var zero T
		return zero
	}
	c := &f.core
	if c == s.c {
		panic("tasq: task awaiting itself")
	}
	if c.settled() {
		return f.current()
	}
	c.waiter.Store(s.c)
	if c.settled() && c.waiter.CompareAndSwap(s.c, nil) {
		// Completion raced the registration and the terminal step did
		// not see it. Reclaiming the slot keeps the caller from
		// parking with no wake-up coming; a failed reclaim means the
		// terminal step took the slot and its wake-up is on the way.
		return f.current()
	}
	s.c.suspend()
	return f.current()
}
