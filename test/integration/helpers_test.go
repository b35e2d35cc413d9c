//go:build integration

package integration_test

import (
	"testing"

	"github.com/statekit-labs/statekit/internal/home"
)

// setupTestEnv sandboxes the home-state directory and pins a fast lock
// policy so contention tests fail quickly instead of hanging.
func setupTestEnv(t *testing.T) *home.Context {
	t.Helper()

	t.Setenv("STATEKIT_HOME", t.TempDir())
	t.Setenv("STATEKIT_MODE", "test")
	t.Setenv("STATEKIT_LOCK_TIMEOUT_MS", "5000")
	t.Setenv("STATEKIT_LOCK_STALE_MS", "60000")
	t.Setenv("STATEKIT_LOCK_RETRY_MS", "2")

	env, err := home.NewContext()
	if err != nil {
		t.Fatalf("building run context: %v", err)
	}
	return env
}
