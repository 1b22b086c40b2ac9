// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrCanceled is returned by Task.Wait when the frame was destroyed
// before completing.
var ErrCanceled = errors.New("tasq: task canceled")

// Task is the consumer-side handle of a suspendable computation.
//
// A Task starts Owning: Cancel destroys the frame. SetSelfRelease moves
// it to self-released mode, where Cancel is a no-op and the frame
// cleans itself up at its terminal step. Continuation and fan-in
// functions consume their input tasks, detaching the handle and every
// copy of it; a detached (or zero) Task reports Ready vacuously and
// yields the zero value deterministically.
//
// Task is a small value; copies share one ownership record.
type Task[T any] struct {
	cell *cell[T]
}

// cell is the shared ownership record of a task: every copy of a Task
// sees the same frame pointer, so consuming or cancelling through one
// copy detaches them all.
type cell[T any] struct {
	frame       atomic.Pointer[frame[T]]
	selfRelease atomic.Bool
}

func wrap[T any](f *frame[T]) Task[T] {
	c := &cell[T]{}
	c.frame.Store(f)
	return Task[T]{cell: c}
}

// New runs body eagerly on its own frame and returns once the body has
// reached its first suspension point or finished. A panic that ends
// the body before its first suspension re-raises in New.
func New[T any](body func(*Scope) T) Task[T] {
	return wrap(newFrame(body))
}

// Pure returns an already-completed task holding v. No goroutine is
// spawned and nothing ever suspends.
func Pure[T any](v T) Task[T] {
	return wrap(newDoneFrame(v))
}

// Pending returns a task that parks immediately and completes with
// whatever value a producer stores through its PromiseHandle.
func Pending[T any]() Task[T] {
	f := &frame[T]{}
	f.start(func(s *Scope) T {
		s.Suspend()
		return f.current()
	})
	return wrap(f)
}

// Deferred returns a task that parks immediately and, once resumed,
// completes with fn().
func Deferred[T any](fn func() T) Task[T] {
	return New(func(s *Scope) T {
		s.Suspend()
		return fn()
	})
}

func (t Task[T]) frameRef() *frame[T] {
	if t.cell == nil {
		return nil
	}
	return t.cell.frame.Load()
}

// consume detaches the handle and returns the frame, transferring
// ownership into a chain or combinator.
func (t Task[T]) consume() *frame[T] {
	if t.cell == nil {
		return nil
	}
	t.cell.selfRelease.Store(true)
	return t.cell.frame.Swap(nil)
}

// Ready reports whether the frame has settled. Vacuously true for a
// detached or zero Task: a settled answer is already available.
func (t Task[T]) Ready() bool {
	f := t.frameRef()
	return f == nil || f.settled()
}

// Value returns the current value of the promise state: the zero value
// before the first completion or after detach. Producers may re-set
// the value across suspensions; Value always reads the latest.
func (t Task[T]) Value() T {
	f := t.frameRef()
	if f == nil {
		var zero T
		return zero
	}
	return f.current()
}

// TryValue returns the completed value. The boolean reports
// completion: false for a live, detached or zero task.
func (t Task[T]) TryValue() (T, bool) {
	f := t.frameRef()
	if f == nil || !f.done() {
		var zero T
		return zero, false
	}
	return f.current(), true
}

// Wait blocks until the task completes, it is cancelled, or ctx is
// done. It is the consumption surface for code outside any task body;
// inside a body, use Await. A detached or zero task yields
// immediately.
func (t Task[T]) Wait(ctx context.Context) (T, error) {
	f := t.frameRef()
	if f == nil {
		var zero T
		return zero, nil
	}
	select {
	case <-f.finished:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
	if f.state.Load() == stateDestroyed {
		var zero T
		return zero, ErrCanceled
	}
	return f.current(), nil
}

// Cancel destroys an owned, still-live frame: its goroutine unwinds,
// deferred cleanup in the body runs, and pending producers'
// PromiseHandles fail from then on. The handle stays usable afterwards:
// Ready reports true and Wait reports ErrCanceled. Cancel is a no-op on
// self-released, detached and zero tasks, on finished frames, and on a
// second cancel. It must not be called from inside the task's own body.
func (t Task[T]) Cancel() {
	if t.cell == nil || t.cell.selfRelease.Load() {
		return
	}
	t.cell.frame.Load().destroy()
}

// SetSelfRelease moves the task to self-released mode: Cancel becomes
// a no-op and the frame cleans itself up at its terminal step.
func (t Task[T]) SetSelfRelease() {
	if t.cell != nil {
		t.cell.selfRelease.Store(true)
	}
}

// Detach is the no-argument continuation: it transfers the frame to
// self-released mode and empties the handle and every copy sharing it.
// The computation keeps running unowned.
func (t Task[T]) Detach() {
	t.consume()
}

// PromiseHandle returns the non-owning producer view of this task's
// frame. Any number may coexist; all operations fail cleanly once the
// frame settles.
func (t Task[T]) PromiseHandle() PromiseHandle[T] {
	return PromiseHandle[T]{f: t.frameRef()}
}

// Await suspends the calling task body until t completes, then returns
// t's value at that moment. Ownership of t is unchanged. Awaiting a
// detached or zero task yields the zero value immediately; a task must
// not await itself. At most one body may await a given task at a time;
// a later registration replaces an earlier one.
func Await[T any](s *Scope, t Task[T]) T {
	if s == nil || s.c == nil {
		panic("tasq: await outside a task body")
	}
	return awaitFrame(s, t.frameRef())
}

// AnyTask is the type-erased owner view of a task, letting
// heterogeneous tasks be held, cancelled and detached uniformly. Every
// Task satisfies it.
type AnyTask interface {
	Ready() bool
	Cancel()
	SetSelfRelease()
	Detach()
}
