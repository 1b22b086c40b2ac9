// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

import (
	"sync/atomic"
)

// latch coordinates one fan-in invocation: child completions count
// down (or claim tickets from) count, the child that satisfies the
// combinator fires the latch, and the parent frame is woken exactly
// once.
//
// The parent core is bound only after the parent task exists. A child
// that finishes before the bind sets done and skips the wake; bind
// re-checks done and wakes the parent itself. After a race both sides
// may attempt the wake — the frame's one-shot resumption permit drops
// the duplicate.
type latch struct {
	count  atomic.Int64
	done   atomic.Bool
	parent atomic.Pointer[core]
}

// fire publishes completion, then wakes the parent if it is bound.
// Result slots must be fully written before the call.
func (l *latch) fire() {
	l.done.Store(true)
	if c := l.parent.Load(); c != nil {
		c.tryResume()
	}
}

// bind attaches the parent frame and closes the missed-wake window.
func (l *latch) bind(c *core) {
	l.parent.Store(c)
	if l.done.Load() {
		c.tryResume()
	}
}

// await parks the parent body until the latch has fired. No child can
// observe the bound parent before the parent has parked, so the wake
// cannot slip between the check and the park.
func (l *latch) await(s *Scope) {
	if !l.done.Load() {
		s.Suspend()
	}
}
