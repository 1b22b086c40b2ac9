// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

// allContext is the shared state of one WhenAll invocation: a dense
// result slot per child plus the wake latch. Each collector owns the
// slot of its input position, so slot writes never contend.
type allContext[T any] struct {
	latch
	results []T
}

// WhenAll returns a task that completes once every input has
// completed, with the results in input order regardless of completion
// order. Inputs are consumed. An empty input completes immediately
// with an empty slice. A failed child is not special: whatever value
// it completed with is collected.
//
// Completions may arrive from arbitrary goroutines concurrently; the
// parent is resumed exactly once, by the child that finishes last.
// Cancelling the parent does not destroy unfinished children — they
// keep running unowned and their late completions are simply dropped
// by the dead parent.
func WhenAll[T any](ts []Task[T]) Task[[]T] {
	frames := make([]*frame[T], len(ts))
	for i, t := range ts {
		frames[i] = t.consume()
	}
	if len(frames) == 0 {
		return Pure(make([]T, 0))
	}
	fan := &allContext[T]{results: make([]T, len(frames))}
	fan.count.Store(int64(len(frames)))
	for i, f := range frames {
		spawn(func(s *Scope) {
			fan.results[i] = awaitFrame(s, f)
			if fan.count.Add(-1) == 0 {
				fan.fire()
			}
		})
	}
	parent := New(func(s *Scope) []T {
		fan.await(s)
		return fan.results
	})
	fan.bind(&parent.frameRef().core)
	return parent
}
