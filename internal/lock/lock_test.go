package lock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLock_LockUnlock(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "nested", "store.lock")
	l := New(lockPath)

	if err := l.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("lock file should exist after locking: %v", err)
	}
	if err := l.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if l.file != nil {
		t.Error("expected file handle to be nil after unlocking")
	}

	// Second unlock is a no-op
	if err := l.Unlock(); err != nil {
		t.Errorf("second Unlock() should not error, got %v", err)
	}
}

func TestFileLock_Blocks(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "mirror.lock")

	first := New(lockPath)
	if err := first.Lock(); err != nil {
		t.Fatalf("first Lock() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		second := New(lockPath)
		if err := second.Lock(); err != nil {
			t.Errorf("second Lock() error = %v", err)
		}
		second.Unlock()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("second lock should block while the first is held")
	case <-time.After(30 * time.Millisecond):
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("first Unlock() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("second lock should be acquired after release")
	}
}

func TestFileLock_InvalidPath(t *testing.T) {
	t.Parallel()

	parent := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(parent, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	l := New(filepath.Join(parent, "x.lock"))
	if err := l.Lock(); err == nil {
		l.Unlock()
		t.Error("expected error when the parent is a regular file")
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "store.lock")

	var mu sync.Mutex
	var active, maxActive int
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := With(context.Background(), lockPath, func() error {
				mu.Lock()
				active++
				maxActive = max(maxActive, active)
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("With() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxActive)
	}
}

func TestWith_PropagatesError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	err := With(context.Background(), filepath.Join(t.TempDir(), "x.lock"), func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("With() error = %v, want %v", err, sentinel)
	}
}

func TestWith_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := With(ctx, filepath.Join(t.TempDir(), "x.lock"), func() error { called = true; return nil })
	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("With() = %v, called = %v; want context.Canceled and not called", err, called)
	}
}
