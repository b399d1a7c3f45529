package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockFileName = ".archive.lock"

// ErrArchiveLocked is returned by Acquire when another live process holds the lock.
var ErrArchiveLocked = errors.New("archive is locked by another process")

// ArchiveLock is an advisory PID lock that keeps two archiver runs from
// renaming the same documents at once.
type ArchiveLock struct {
	path string
}

// NewArchiveLock creates a lock stored in dir.
func NewArchiveLock(dir string) *ArchiveLock {
	return &ArchiveLock{
		path: filepath.Join(dir, lockFileName),
	}
}

// Path returns the lock file location.
func (l *ArchiveLock) Path() string {
	return l.path
}

// Acquire takes the lock. Locks left behind by dead processes are reclaimed.
// It returns an error wrapping ErrArchiveLocked if a live process holds it.
func (l *ArchiveLock) Acquire() error {
	err := l.create()
	if err == nil {
		return nil
	}
	if !os.IsExist(err) {
		return fmt.Errorf("failed to create lock file: %w", err)
	}

	data, readErr := os.ReadFile(l.path)
	if readErr != nil {
		return fmt.Errorf("failed to read existing lock file: %w", readErr)
	}

	pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
	if parseErr == nil && processExists(pid) {
		return fmt.Errorf("%w (PID %d)", ErrArchiveLocked, pid)
	}

	// Stale or garbage lock.
	if removeErr := os.Remove(l.path); removeErr != nil && !os.IsNotExist(removeErr) {
		return fmt.Errorf("failed to remove stale lock file: %w", removeErr)
	}

	// Only one retry, so a competing process that wins the race is reported
	// rather than looped on.
	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: acquired during retry", ErrArchiveLocked)
		}
		return fmt.Errorf("failed to create lock file on retry: %w", err)
	}
	return nil
}

func (l *ArchiveLock) create() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, writeErr := fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()
	if writeErr != nil {
		os.Remove(l.path)
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	return nil
}

// Release removes the lock file. Releasing an unheld lock is not an error.
func (l *ArchiveLock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// processExists checks if a process with the given PID is running.
// Signal 0 probes for existence without delivering anything.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
