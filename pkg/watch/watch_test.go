package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(time.Now().String()), 0644); err != nil {
		t.Fatal(err)
	}
}

// runWatcher starts w.Run in the background and returns a counter of
// trigger invocations plus a stop function.
func runWatcher(t *testing.T, w *Watcher) (*atomic.Int64, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var count atomic.Int64
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(context.Context) error {
			count.Add(1)
			return nil
		})
	}()
	return &count, func() {
		cancel()
		<-done
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWatcherDebouncesBurst(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, Options{Debounce: 100 * time.Millisecond, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	count, stop := runWatcher(t, w)
	defer stop()

	// A burst of writes inside one debounce window coalesces into a
	// single trigger.
	for i := 0; i < 5; i++ {
		touch(t, filepath.Join(root, "note.md"))
		time.Sleep(10 * time.Millisecond)
	}

	if !waitFor(t, 2*time.Second, func() bool { return count.Load() >= 1 }) {
		t.Fatal("no trigger after burst")
	}
	// Let a couple more debounce windows pass; no further triggers may
	// arrive without further events.
	time.Sleep(300 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Errorf("triggers = %d, want exactly 1", got)
	}
}

func TestWatcherIgnoresOutputPath(t *testing.T) {
	root := t.TempDir()
	output := filepath.Join(root, "wall.png")
	w, err := New(root, Options{
		Debounce: 50 * time.Millisecond,
		Ignore:   []string{output},
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	count, stop := runWatcher(t, w)
	defer stop()

	touch(t, output)
	time.Sleep(300 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Errorf("triggers = %d, ignored path must not fire", got)
	}

	// A real note still triggers.
	touch(t, filepath.Join(root, "note.md"))
	if !waitFor(t, 2*time.Second, func() bool { return count.Load() == 1 }) {
		t.Errorf("triggers = %d, want 1 after note change", count.Load())
	}
}

func TestWatcherPicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, Options{Debounce: 50 * time.Millisecond, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	count, stop := runWatcher(t, w)
	defer stop()

	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return count.Load() >= 1 }) {
		t.Fatal("no trigger after mkdir")
	}
	before := count.Load()

	// The new directory is itself watched now.
	touch(t, filepath.Join(sub, "nested.md"))
	if !waitFor(t, 2*time.Second, func() bool { return count.Load() > before }) {
		t.Error("no trigger for file in newly created directory")
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx, func(context.Context) error { return nil })
	}()

	cancel()
	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestWatcherMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope"), Options{Logger: quietLogger()}); err == nil {
		t.Fatal("New() on missing root: expected error, got nil")
	}
}
