// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

import (
	"sync/atomic"
)

// Indexed pairs a fan-in result with the input position it came from.
type Indexed[T any] struct {
	Index int
	Value T
}

// nContext adds the claim/publish pair of WhenN to the latch: tickets
// order the slots by completion, published gates the wake so the
// parent never observes a half-written slot.
type nContext[T any] struct {
	latch
	published atomic.Int64
	slots     []Indexed[T]
}

// WhenN returns a task that completes once n of the inputs have
// completed, with (input index, value) pairs ordered by completion.
// n <= 0 or n > len(ts) means all of them. Inputs are consumed.
// Completions beyond the first n are discarded and their frames keep
// running unowned; they never re-resume the parent.
func WhenN[T any](ts []Task[T], n int) Task[[]Indexed[T]] {
	frames := make([]*frame[T], len(ts))
	for i, t := range ts {
		frames[i] = t.consume()
	}
	if n <= 0 || n > len(frames) {
		n = len(frames)
	}
	if n == 0 {
		return Pure(make([]Indexed[T], 0))
	}
	fan := &nContext[T]{slots: make([]Indexed[T], n)}
	fan.count.Store(int64(n))
	for i, f := range frames {
		spawn(func(s *Scope) {
			v := awaitFrame(s, f)
			ticket := fan.count.Add(-1)
			if ticket < 0 {
				return // satisfied already; discard
			}
			fan.slots[int64(n)-1-ticket] = Indexed[T]{Index: i, Value: v}
			if fan.published.Add(1) == int64(n) {
				fan.fire()
			}
		})
	}
	parent := New(func(s *Scope) []Indexed[T] {
		fan.await(s)
		return fan.slots
	})
	fan.bind(&parent.frameRef().core)
	return parent
}

// WhenAny returns a task that completes with the first input to
// complete, as an (input index, value) pair. Inputs are consumed.
// Panics if ts is empty: first-of-none has no answer.
func WhenAny[T any](ts []Task[T]) Task[Indexed[T]] {
	if len(ts) == 0 {
		panic("tasq: WhenAny of no tasks")
	}
	return Map(WhenN(ts, 1), func(xs []Indexed[T]) Indexed[T] {
		return xs[0]
	})
}
