// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

// Pair is the result shape of Zip.
type Pair[A, B any] struct {
	Fst A
	Snd B
}

// Triple is the result shape of Zip3.
type Triple[A, B, C any] struct {
	Fst A
	Snd B
	Trd C
}

type zipContext[A, B any] struct {
	latch
	fst A
	snd B
}

// Zip is the fixed-arity WhenAll over two differently typed tasks: the
// returned task completes once both inputs have, pairing their results
// by position. Both inputs are consumed.
func Zip[A, B any](ta Task[A], tb Task[B]) Task[Pair[A, B]] {
	fa, fb := ta.consume(), tb.consume()
	fan := &zipContext[A, B]{}
	fan.count.Store(2)
	spawn(func(s *Scope) {
		fan.fst = awaitFrame(s, fa)
		if fan.count.Add(-1) == 0 {
			fan.fire()
		}
	})
	spawn(func(s *Scope) {
		fan.snd = awaitFrame(s, fb)
		if fan.count.Add(-1) == 0 {
			fan.fire()
		}
	})
	parent := New(func(s *Scope) Pair[A, B] {
		fan.await(s)
		return Pair[A, B]{Fst: fan.fst, Snd: fan.snd}
	})
	fan.bind(&parent.frameRef().core)
	return parent
}

type zip3Context[A, B, C any] struct {
	latch
	fst A
	snd B
	trd C
}

// Zip3 is Zip over three tasks.
func Zip3[A, B, C any](ta Task[A], tb Task[B], tc Task[C]) Task[Triple[A, B, C]] {
	fa, fb, fc := ta.consume(), tb.consume(), tc.consume()
	fan := &zip3Context[A, B, C]{}
	fan.count.Store(3)
	spawn(func(s *Scope) {
		fan.fst = awaitFrame(s, fa)
		if fan.count.Add(-1) == 0 {
			fan.fire()
		}
	})
	spawn(func(s *Scope) {
		fan.snd = awaitFrame(s, fb)
		if fan.count.Add(-1) == 0 {
			fan.fire()
		}
	})
	spawn(func(s *Scope) {
		fan.trd = awaitFrame(s, fc)
		if fan.count.Add(-1) == 0 {
			fan.fire()
		}
	})
	parent := New(func(s *Scope) Triple[A, B, C] {
		fan.await(s)
		return Triple[A, B, C]{Fst: fan.fst, Snd: fan.snd, Trd: fan.trd}
	})
	fan.bind(&parent.frameRef().core)
	return parent
}
