// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

// Continuation chaining: six adapter shapes over a consumed source,
// one per (arity × return kind) combination.
//
//	            1-arg          0-arg
//	value       Map            ThenMap
//	void        Tap            ThenDo
//	Task        Bind           Then
//
// Every function here consumes its input: the source is marked
// self-released, the caller's handle and all copies of it detach, and
// ownership transfers into the synthesized task. The synthesized task
// completes only after the source — and, for Bind and Then, the inner
// task — has completed. Cancelling the synthesized task mid-chain
// destroys whichever stage it is parked on.

// Map returns a task that completes with fn applied to t's result.
func Map[T, R any](t Task[T], fn func(T) R) Task[R] {
	src := t.consume()
	return New(func(s *Scope) R {
		// destroy is a no-op once src completed; it takes effect only
		// when this frame is destroyed while parked on src.
		defer src.destroy()
		return fn(awaitFrame(s, src))
	})
}

// Tap returns a task that runs fn on t's result for its side effects
// and completes with the original value.
func Tap[T any](t Task[T], fn func(T)) Task[T] {
	src := t.consume()
	return New(func(s *Scope) T {
		defer src.destroy()
		v := awaitFrame(s, src)
		fn(v)
		return v
	})
}

// Bind returns a task that feeds t's result to fn and completes with
// the value of the task fn returns, flattened. The task fn returns is
// consumed as well.
func Bind[T, R any](t Task[T], fn func(T) Task[R]) Task[R] {
	src := t.consume()
	return New(func(s *Scope) R {
		defer src.destroy()
		inner := fn(awaitFrame(s, src)).consume()
		defer inner.destroy()
		return awaitFrame(s, inner)
	})
}

// ThenMap returns a task that waits for t, discards its result and
// completes with fn().
func ThenMap[T, R any](t Task[T], fn func() R) Task[R] {
	src := t.consume()
	return New(func(s *Scope) R {
		defer src.destroy()
		awaitFrame(s, src)
		return fn()
	})
}

// ThenDo returns a task that waits for t, runs fn for its side effects
// and completes with t's value.
func ThenDo[T any](t Task[T], fn func()) Task[T] {
	src := t.consume()
	return New(func(s *Scope) T {
		defer src.destroy()
		v := awaitFrame(s, src)
		fn()
		return v
	})
}

// Then returns a task that waits for t, discards its result, then runs
// the task fn returns and completes with its value. The task fn
// returns is consumed as well.
func Then[T, R any](t Task[T], fn func() Task[R]) Task[R] {
	src := t.consume()
	return New(func(s *Scope) R {
		defer src.destroy()
		awaitFrame(s, src)
		inner := fn().consume()
		defer inner.destroy()
		return awaitFrame(s, inner)
	})
}

// Pipe chains fns over t strictly left to right on a single frame.
// With no functions it is the identity and t is left untouched.
func Pipe[T any](t Task[T], fns ...func(T) T) Task[T] {
	if len(fns) == 0 {
		return t
	}
	src := t.consume()
	return New(func(s *Scope) T {
		defer src.destroy()
		v := awaitFrame(s, src)
		for _, fn := range fns {
			v = fn(v)
		}
		return v
	})
}
