// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq

// Result is the tagged error mode: a two-case union of success and
// failure. Failures are ordinary data — nothing propagates implicitly,
// consumers branch on IsOK (or unwrap through Must to trade the branch
// for a panic at the consumption point).
type Result[T any] struct {
	ok  bool
	val T
	err error
}

// OK returns a success Result holding v.
func OK[T any](v T) Result[T] {
	return Result[T]{ok: true, val: v}
}

// Fail returns a failure Result carrying err.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOK reports whether the Result is a success.
func (r Result[T]) IsOK() bool {
	return r.ok
}

// Err returns the failure's error, or nil for a success.
func (r Result[T]) Err() error {
	return r.err
}

// Value returns the success value, or the zero value for a failure.
func (r Result[T]) Value() T {
	return r.val
}

// Unpack returns the value and error together, in the conventional
// (v, err) shape.
func (r Result[T]) Unpack() (T, error) {
	return r.val, r.err
}

// Must returns the success value, re-raising a failure as a panic at
// the consumption point. This is the raised error mode: recover around
// the consumption site to handle it.
func (r Result[T]) Must() T {
	if !r.ok {
		panic(r.err)
	}
	return r.val
}

// Outcome is the paired error mode: error and value side by side, both
// always present. A nil Err means success.
type Outcome[T any] struct {
	Err   error
	Value T
}
