// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tasq_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/tasq"
)

func TestResultOK(t *testing.T) {
	r := tasq.OK(42)
	if !r.IsOK() {
		t.Fatal("expected a success")
	}
	if err := r.Err(); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if got := r.Value(); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if v, err := r.Unpack(); v != 42 || err != nil {
		t.Fatalf("got (%d, %v), want (42, nil)", v, err)
	}
	if got := r.Must(); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestResultFail(t *testing.T) {
	wantErr := errors.New("no route to host")
	r := tasq.Fail[int](wantErr)
	if r.IsOK() {
		t.Fatal("expected a failure")
	}
	if !errors.Is(r.Err(), wantErr) {
		t.Fatalf("got %v, want %v", r.Err(), wantErr)
	}
	if got := r.Value(); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if v, err := r.Unpack(); v != 0 || !errors.Is(err, wantErr) {
		t.Fatalf("got (%d, %v), want (0, %v)", v, err, wantErr)
	}
}

func TestResultMustPanicsOnFailure(t *testing.T) {
	wantErr := errors.New("permission denied")
	r := tasq.Fail[int](wantErr)
	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("expected Must to panic on a failure")
		}
		err, ok := recovered.(error)
		if !ok || !errors.Is(err, wantErr) {
			t.Fatalf("unexpected panic: %v", recovered)
		}
	}()
	r.Must()
}

func TestResultNilErrorStillFails(t *testing.T) {
	r := tasq.Fail[int](nil)
	if r.IsOK() {
		t.Fatal("expected Fail(nil) to stay a failure")
	}
}

func TestResultZeroValueIsFailure(t *testing.T) {
	var r tasq.Result[int]
	if r.IsOK() {
		t.Fatal("expected the zero Result to be a failure")
	}
	if err := r.Err(); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}
