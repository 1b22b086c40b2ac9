// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/tasq"
)

// --- Tagged mode ---

func TestCompleterSuccess(t *testing.T) {
	completer, task := tasq.NewCompleter[int]()
	if task.Ready() {
		t.Fatal("expected the adapted task to start pending")
	}
	if !completer.Complete(42) {
		t.Fatal("expected the completion to take effect")
	}
	r := task.Value()
	if !r.IsOK() {
		t.Fatalf("got error %v, want success", r.Err())
	}
	if got := r.Value(); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestCompleterErr(t *testing.T) {
	wantErr := errors.New("connection reset")
	completer, task := tasq.NewCompleter[int]()
	if !completer.CompleteErr(wantErr, 0) {
		t.Fatal("expected the completion to take effect")
	}
	r := task.Value()
	if r.IsOK() {
		t.Fatal("expected a failure result")
	}
	if !errors.Is(r.Err(), wantErr) {
		t.Fatalf("got %v, want %v", r.Err(), wantErr)
	}
}

func TestCompleterErrNilMeansSuccess(t *testing.T) {
	completer, task := tasq.NewCompleter[string]()
	if !completer.CompleteErr(nil, "payload") {
		t.Fatal("expected the completion to take effect")
	}
	r := task.Value()
	if !r.IsOK() {
		t.Fatalf("got error %v, want success", r.Err())
	}
	if got := r.Value(); got != "payload" {
		t.Fatalf("got %q, want %q", got, "payload")
	}
}

func TestCompleterExactlyOnce(t *testing.T) {
	completer, task := tasq.NewCompleter[int]()
	if !completer.Complete(1) {
		t.Fatal("expected the first completion to take effect")
	}
	if completer.Complete(2) {
		t.Fatal("expected the second completion to fail")
	}
	if got := task.Value().Value(); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestCompleterAfterCancelFails(t *testing.T) {
	completer, task := tasq.NewCompleter[int]()
	task.Cancel()
	if completer.Complete(1) {
		t.Fatal("expected a completion after cancel to fail")
	}
	if completer.CompleteErr(errors.New("late"), 0) {
		t.Fatal("expected a completion after cancel to fail")
	}
}

// --- Paired and void modes ---

func TestOutcomeCompleter(t *testing.T) {
	completer, task := tasq.NewOutcomeCompleter[int]()
	if !completer.Complete(nil, 9) {
		t.Fatal("expected the completion to take effect")
	}
	got := task.Value()
	if got.Err != nil || got.Value != 9 {
		t.Fatalf("got {%v, %d}, want {nil, 9}", got.Err, got.Value)
	}

	wantErr := errors.New("timed out")
	failing, failed := tasq.NewOutcomeCompleter[int]()
	if !failing.Complete(wantErr, 0) {
		t.Fatal("expected the completion to take effect")
	}
	if got := failed.Value(); !errors.Is(got.Err, wantErr) {
		t.Fatalf("got %v, want %v", got.Err, wantErr)
	}
}

func TestVoidCompleter(t *testing.T) {
	completer, task := tasq.NewVoidCompleter()
	if !completer.Complete() {
		t.Fatal("expected the completion to take effect")
	}
	if err := task.Value(); err != nil {
		t.Fatalf("got %v, want nil", err)
	}

	wantErr := errors.New("short write")
	failing, failed := tasq.NewVoidCompleter()
	if !failing.CompleteErr(wantErr) {
		t.Fatal("expected the completion to take effect")
	}
	if err := failed.Value(); !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want %v", err, wantErr)
	}
}

// --- Integration ---

func TestCompleterDrivesChain(t *testing.T) {
	completer, pending := tasq.NewCompleter[int]()
	total := tasq.Bind(
		tasq.Map(pending, func(r tasq.Result[int]) int { return r.Must() }),
		func(x int) tasq.Task[int] { return tasq.Pure(x * 2) },
	)
	if !completer.Complete(21) {
		t.Fatal("expected the completion to take effect")
	}
	v, err := total.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestCompleterConcurrentProducers(t *testing.T) {
	completer, task := tasq.NewCompleter[int]()
	var effective atomic.Int64
	var g errgroup.Group
	for i := range 8 {
		g.Go(func() error {
			if completer.Complete(i) {
				effective.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := effective.Load(); got != 1 {
		t.Fatalf("got %d effective completions, want exactly 1", got)
	}
	if !task.Ready() {
		t.Fatal("expected the task to be completed")
	}
}
