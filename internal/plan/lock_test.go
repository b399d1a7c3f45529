package plan

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

func readLockPID(t *testing.T, path string) int {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read lock file: %v", err)
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		t.Fatalf("failed to parse PID from lock file: %v", err)
	}
	return pid
}

func TestArchiveLock_Acquire_Success(t *testing.T) {
	tmpDir := t.TempDir()

	lock := NewArchiveLock(tmpDir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pid := readLockPID(t, filepath.Join(tmpDir, lockFileName)); pid != os.Getpid() {
		t.Errorf("lock file PID mismatch: got %d, want %d", pid, os.Getpid())
	}
}

func TestArchiveLock_Acquire_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plans")

	lock := NewArchiveLock(dir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("lock file should exist: %v", err)
	}
}

func TestArchiveLock_Acquire_AlreadyLocked(t *testing.T) {
	tmpDir := t.TempDir()

	// Our own PID is always live.
	lockPath := filepath.Join(tmpDir, lockFileName)
	if err := os.WriteFile(lockPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		t.Fatalf("failed to create lock file: %v", err)
	}

	err := NewArchiveLock(tmpDir).Acquire()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrArchiveLocked) {
		t.Errorf("expected ErrArchiveLocked, got %v", err)
	}
}

func TestArchiveLock_Acquire_ReclaimsStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "dead process", content: "99999999"},
		{name: "garbage content", content: "not-a-pid"},
		{name: "negative pid", content: "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			lockPath := filepath.Join(tmpDir, lockFileName)
			if err := os.WriteFile(lockPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to create lock file: %v", err)
			}

			if err := NewArchiveLock(tmpDir).Acquire(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pid := readLockPID(t, lockPath); pid != os.Getpid() {
				t.Errorf("lock file PID mismatch: got %d, want %d", pid, os.Getpid())
			}
		})
	}
}

func TestArchiveLock_Acquire_RaceCondition(t *testing.T) {
	tmpDir := t.TempDir()

	const numGoroutines = 10
	var wg sync.WaitGroup
	var successCount atomic.Int32

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := NewArchiveLock(tmpDir).Acquire(); err == nil {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if count := successCount.Load(); count != 1 {
		t.Errorf("expected exactly 1 successful acquire, got %d", count)
	}
}

func TestArchiveLock_Release(t *testing.T) {
	tmpDir := t.TempDir()
	lock := NewArchiveLock(tmpDir)

	if err := lock.Acquire(); err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(lock.Path()); !os.IsNotExist(err) {
		t.Error("lock file should be removed after release")
	}

	// Releasing again is a no-op.
	if err := lock.Release(); err != nil {
		t.Errorf("unexpected error when releasing unheld lock: %v", err)
	}

	if err := lock.Acquire(); err != nil {
		t.Fatalf("failed to re-acquire lock after release: %v", err)
	}
}
