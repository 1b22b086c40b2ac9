// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tasq provides one-shot tasks over suspendable computations
// in Go.
//
// The core type [Task] represents a computation that may park at
// suspension points and be resumed by external completion events. It
// turns callback-based producers into linear, composable, cancellable
// control flow: chain steps with the then family, fan in with
// [WhenAll], [WhenN] and [WhenAny], and adapt any callback API through
// the completer surface.
//
// # Design Philosophy
//
// tasq provides:
//   - A small closed vocabulary: one task type, six chaining shapes,
//     three fan-in combinators and their fixed-arity zip variants
//   - At-most-once resumption enforced by an atomic lifecycle cell;
//     misfired completions report false instead of faulting
//   - Synchronous resumption: a completion call returns only after the
//     resumed body has run to its next suspension point or to its end
//
// # Tasks and Ownership
//
// A [Task] is a value handle; copies share one ownership record.
// Exactly one non-weak owner holds a frame at a time:
//
//   - Owning (the default): [Task.Cancel] destroys the frame and
//     unwinds its goroutine
//   - Self-released ([Task.SetSelfRelease]): Cancel is a no-op; the
//     frame cleans itself up at its terminal step
//   - Detached: after a then-family call, a combinator consuming the
//     task, or [Task.Detach], the handle (and every copy sharing its
//     record) holds no frame; [Task.Ready] reports true vacuously and
//     [Task.Value] returns the zero value deterministically
//
// Constructors:
//
//   - [New]: run a suspendable body eagerly, up to its first
//     suspension point or its end
//   - [Pure]: an already-completed task; nothing ever suspends
//   - [Pending]: parks immediately; completes with whatever value a
//     producer stores
//   - [Deferred]: parks immediately; computes its value on first
//     resume
//
// Consumption:
//
//   - [Task.Ready]: completion test, vacuously true when detached
//   - [Task.Value]: current value of the promise state, re-settable
//     across suspensions, zero before the first completion
//   - [Task.TryValue]: value plus a completed flag
//   - [Task.Wait]: block outside task bodies until completion, cancel
//     or context expiry ([ErrCanceled] reports a destroyed frame)
//   - [Await]: suspend the calling task body until another task
//     completes
//   - [AnyTask]: type-erased owner view for heterogeneous task sets
//
// # Suspension Model
//
// Each live frame is a goroutine parked on an unbuffered handoff,
// guarded by a lifecycle cell (Running, Suspended, Done, Destroyed).
// Bodies are eager: constructors return only after the body has
// reached its first suspension point or finished. Resumption claims
// the cell by compare-and-swap — the losing resumer of a race gets
// false, a finished or destroyed frame can never be resumed, and a
// resume racing a cancel either runs the frame before destruction or
// fails cleanly. Cancellation unwinds the parked goroutine so deferred
// cleanup in the body runs; a destroyed or finished frame never blocks
// a resumer and never leaks its goroutine.
//
// # Continuation Chaining
//
// The then family is a closed set of six generic functions, one per
// (arity × return kind) shape, plus two conveniences:
//
//   - [Map]: 1-arg, value — completes with fn(result)
//   - [Tap]: 1-arg, void — side effect, passes the original value
//   - [Bind]: 1-arg, task — flattens the returned task
//   - [ThenMap]: 0-arg, value
//   - [ThenDo]: 0-arg, void
//   - [Then]: 0-arg, task
//   - [Pipe]: left-to-right same-type chain on a single frame
//   - [Task.Detach]: the no-argument then; bare ownership transfer
//
// Chaining consumes the source: ownership transfers into the
// synthesized task, and the synthesized task completes only after the
// source (and, for Bind/Then, the inner task) has completed. Chains
// never complete early.
//
// # Fan-in
//
//   - [WhenAll]: all inputs; results dense, in input order
//   - [WhenN]: first n distinct completions as [Indexed] pairs in
//     completion order; n <= 0 means all
//   - [WhenAny]: first completion as an [Indexed] pair; panics on
//     empty input
//   - [Zip], [Zip3]: fixed-arity WhenAll over differently typed tasks,
//     producing [Pair] and [Triple]
//
// Inputs are consumed. Each child completion stores its slot and takes
// exactly one step of a shared atomic counter; the child that
// satisfies the combinator resumes the parent, exactly once, for every
// completion interleaving. Late completions beyond n are discarded.
// Unfinished children are not destroyed by the parent's cancel — they
// keep running unowned and their completions fall out against the dead
// parent's resumption permit.
//
// # Producers
//
// The producer side is a contract, not an event-loop binding. A
// producer holds a [PromiseHandle] — non-owning, checked, fallible —
// and fires exactly one completion per logical operation:
//
//   - [PromiseHandle.Complete]: store a value, then resume; storing
//     always precedes waking
//   - [PromiseHandle.Resume]: resume without a value (void step)
//   - [PromiseHandle.Alive]: liveness probe
//
// All operations on a finished or destroyed frame return false and
// touch nothing. For plain callback APIs the completer surface wraps a
// pending task and its handle in one object:
//
//   - [NewCompleter] → [Completer]: tagged mode, Task[[Result]]
//   - [NewOutcomeCompleter] → [OutcomeCompleter]: paired mode,
//     Task[[Outcome]]
//   - [NewVoidCompleter] → [VoidCompleter]: void operations,
//     Task[error]
//
// # Error Modes
//
// One error kind — "the operation failed with an external error" —
// carried as data, never propagated implicitly. The mode is chosen per
// deployment by picking the completer/value shape:
//
//   - Tagged (default): [Result] with [OK], [Fail], [Result.IsOK],
//     [Result.Err], [Result.Value], [Result.Unpack]
//   - Paired: [Outcome] with Err and Value side by side
//   - Raised: [Result.Must] re-raises the failure as a panic at the
//     consumption point
//
// Combinators are mode-agnostic: a failed child's Result or Outcome is
// collected exactly like a success, and a fan-in never fails as a
// whole because one child failed.
//
// # Concurrency
//
// Completions may arrive from arbitrary goroutines concurrently. The
// engine guarantees: exactly one counter step per completing child,
// counter exhaustion for exactly one child, and exactly-once parent
// resumption. Bodies run cooperatively to their next suspension point;
// the package spawns no scheduler threads of its own — each frame's
// goroutine is the body itself, parked except while a resumer drives
// it.
//
// # Panics
//
// Programmer errors panic with a "tasq: "-prefixed message: suspending
// outside a running body, awaiting outside a task body, a task
// awaiting itself, [WhenAny] of no tasks. A panic escaping a task body
// is captured at the frame boundary and re-raised on whichever caller
// drove that resumption (the constructor, for a panic before the first
// suspension). The frame still reaches its terminal step: waiters
// proceed with the current value, so a chain above a failed body does
// not stall, and the panic surfaces exactly once, at the producer that
// triggered it.
//
// # Example
//
//	completer, pending := tasq.NewCompleter[int]()
//
//	sum := tasq.Bind(
//		tasq.Map(pending, func(r tasq.Result[int]) int { return r.Must() }),
//		func(x int) tasq.Task[int] {
//			return tasq.Pure(x * 2)
//		},
//	)
//
//	// ... some callback fires on another goroutine:
//	completer.Complete(21)
//
//	v, err := sum.Wait(context.Background())
//	// v == 42, err == nil
package tasq
