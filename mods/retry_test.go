package mods

import (
	"errors"
	"testing"
	"time"
)

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := withRetry(3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("still locked")
		}
		return nil
	})
	if err != nil {
		t.Errorf("withRetry() error = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithRetryExhaustsBudget(t *testing.T) {
	calls := 0
	wantErr := errors.New("permanently locked")
	err := withRetry(3, time.Millisecond, func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("withRetry() error = %v, want last error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWithRetryStopsOnFirstSuccess(t *testing.T) {
	calls := 0
	if err := withRetry(3, time.Millisecond, func() error {
		calls++
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestLockError(t *testing.T) {
	inner := errors.New("file in use")
	lockErr := &LockError{Path: "/mods/Skins/Hulk", Attempts: 3, Err: inner}

	if !errors.Is(lockErr, inner) {
		t.Error("LockError does not unwrap to the underlying error")
	}
	msg := lockErr.Error()
	if msg == "" {
		t.Fatal("LockError.Error() is empty")
	}
}
