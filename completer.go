// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

// Completers adapt callback-based producers to pending tasks without
// this package knowing the producer. Each completer is the
// promise-compatible object for exactly one pending operation and must
// be fired exactly once per operation, from any goroutine. Every
// completion method reports whether it took effect, so a producer
// firing after the consumer cancelled observes false instead of a
// fault.
//
// The three shapes select the error-representation mode per deployment
// (never per call): Completer for tagged results, OutcomeCompleter for
// paired results, VoidCompleter for operations without a value.

// Completer fires the single pending completion of a tagged-mode task.
type Completer[T any] struct {
	h PromiseHandle[Result[T]]
}

// NewCompleter returns a completer and the pending task it completes.
func NewCompleter[T any]() (Completer[T], Task[Result[T]]) {
	t := Pending[Result[T]]()
	return Completer[T]{h: t.PromiseHandle()}, t
}

// Complete fires a success carrying v.
func (c Completer[T]) Complete(v T) bool {
	return c.h.Complete(OK(v))
}

// CompleteErr fires a success carrying v when err is nil, otherwise a
// failure carrying err.
func (c Completer[T]) CompleteErr(err error, v T) bool {
	if err != nil {
		return c.h.Complete(Fail[T](err))
	}
	return c.h.Complete(OK(v))
}

// OutcomeCompleter fires the single pending completion of a
// paired-mode task: the task's value always carries both fields.
type OutcomeCompleter[T any] struct {
	h PromiseHandle[Outcome[T]]
}

// NewOutcomeCompleter returns a completer and the pending task it
// completes.
func NewOutcomeCompleter[T any]() (OutcomeCompleter[T], Task[Outcome[T]]) {
	t := Pending[Outcome[T]]()
	return OutcomeCompleter[T]{h: t.PromiseHandle()}, t
}

// Complete fires the completion with both fields.
func (c OutcomeCompleter[T]) Complete(err error, v T) bool {
	return c.h.Complete(Outcome[T]{Err: err, Value: v})
}

// VoidCompleter fires the single pending completion of an operation
// that produces no value; the task carries only the error, nil on
// success.
type VoidCompleter struct {
	h PromiseHandle[error]
}

// NewVoidCompleter returns a completer and the pending task it
// completes.
func NewVoidCompleter() (VoidCompleter, Task[error]) {
	t := Pending[error]()
	return VoidCompleter{h: t.PromiseHandle()}, t
}

// Complete fires a successful completion.
func (c VoidCompleter) Complete() bool {
	return c.h.Complete(nil)
}

// CompleteErr fires a failed completion carrying err.
func (c VoidCompleter) CompleteErr(err error) bool {
	return c.h.Complete(err)
}
