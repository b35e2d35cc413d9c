package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/statekit-labs/statekit/internal/home"
)

// Suffix of the sentinel file created next to the locked target.
const sentinelSuffix = ".lock"

// ErrLockTimeout indicates the lock was not acquired within the bounded wait.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// TimeoutError reports a failed acquisition with the contended path.
type TimeoutError struct {
	// Path is the target path the lock guards.
	Path string
	// Wait is how long acquisition was attempted.
	Wait time.Duration
	// HolderPID is the PID recorded in the sentinel, if readable.
	HolderPID int
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	if e.HolderPID > 0 {
		return fmt.Sprintf("could not lock %s within %v (held by pid %d)", e.Path, e.Wait, e.HolderPID)
	}
	return fmt.Sprintf("could not lock %s within %v", e.Path, e.Wait)
}

// Is implements error matching for TimeoutError.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrLockTimeout
}

// Manager acquires per-path advisory locks under one policy.
type Manager struct {
	policy   home.LockPolicy
	disabled bool
}

// NewManager returns a Manager with the given policy.
func NewManager(policy home.LockPolicy) *Manager {
	return &Manager{policy: policy}
}

// Disabled returns a Manager whose Acquire always succeeds without locking.
// Used when the caller has opted out of cross-process serialization.
func Disabled() *Manager {
	return &Manager{disabled: true}
}

// Handle represents one held lock. Release must be called on every exit
// path of the guarded critical section.
type Handle struct {
	sentinel string
	held     bool
}

// Acquire takes the exclusive lock for target, waiting up to the policy
// timeout. On a disabled manager it returns an inert handle immediately.
func (m *Manager) Acquire(ctx context.Context, target string) (*Handle, error) {
	if m.disabled {
		return &Handle{}, nil
	}

	sentinel := target + sentinelSuffix
	deadline := time.Now().Add(m.policy.Timeout)
	delay := m.policy.Retry

	for {
		ok, err := tryCreate(sentinel)
		if err != nil {
			return nil, fmt.Errorf("creating lock sentinel for %s: %w", target, err)
		}
		if ok {
			return &Handle{sentinel: sentinel, held: true}, nil
		}

		if m.reclaimIfStale(sentinel) {
			continue
		}

		if time.Now().After(deadline) {
			return nil, &TimeoutError{
				Path:      target,
				Wait:      m.policy.Timeout,
				HolderPID: readPID(sentinel),
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		// Exponential backoff, capped so a released lock is noticed quickly.
		if delay < time.Second {
			delay *= 2
		}
	}
}

// Release removes the sentinel. Safe to call more than once and on an
// inert handle.
func (h *Handle) Release() error {
	if !h.held {
		return nil
	}
	h.held = false
	if err := os.Remove(h.sentinel); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock sentinel %s: %w", h.sentinel, err)
	}
	return nil
}

// tryCreate atomically creates the sentinel with this process's PID.
// Returns false without error when another process holds it.
func tryCreate(sentinel string) (bool, error) {
	f, err := os.OpenFile(sentinel, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, err
	}
	_, writeErr := fmt.Fprintf(f, "%d\n", os.Getpid())
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(sentinel)
		if writeErr != nil {
			return false, writeErr
		}
		return false, closeErr
	}
	return true, nil
}

// reclaimIfStale removes the sentinel when it is past the stale threshold
// and its recorded owner is no longer alive. Returns true when removed so
// the caller can retry immediately.
func (m *Manager) reclaimIfStale(sentinel string) bool {
	info, err := os.Stat(sentinel)
	if err != nil {
		// Sentinel vanished between attempts; let the caller retry.
		return os.IsNotExist(err)
	}
	if time.Since(info.ModTime()) < m.policy.Stale {
		return false
	}
	if pid := readPID(sentinel); pid > 0 && processAlive(pid) {
		return false
	}
	return os.Remove(sentinel) == nil
}

// readPID returns the PID recorded in the sentinel, or 0 if unreadable.
func readPID(sentinel string) int {
	data, err := os.ReadFile(sentinel)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}
