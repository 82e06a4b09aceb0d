package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New(100*time.Millisecond, func() { calls.Add(1) }, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Watch(dir); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	w.Start()

	// A burst of writes should collapse into a single callback
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, "mod"+string(rune('a'+i))+".pak")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("callback fired %d times, want 1", got)
	}
}

func TestWatcherIgnoresQuiet(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New(50*time.Millisecond, func() { calls.Add(1) }, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(dir); err != nil {
		t.Fatal(err)
	}
	w.Start()

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("callback fired %d times with no events, want 0", got)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w, err := New(DefaultDebounce, func() {}, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("Watch() error = nil, want error for missing directory")
	}
}
