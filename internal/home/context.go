package home

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/statekit-labs/statekit/internal/branding"
)

// Environment keys, resolved with the branding prefix (e.g. STATEKIT_HOME).
const (
	keyHome        = "home"
	keyMode        = "mode"
	keyLockTimeout = "lock_timeout_ms"
	keyLockStale   = "lock_stale_ms"
	keyLockRetry   = "lock_retry_ms"
)

// Lock policy defaults.
const (
	DefaultLockTimeout = 10 * time.Second
	DefaultLockStale   = 60 * time.Second
	DefaultLockRetry   = 100 * time.Millisecond
)

// LockPolicy bounds the wait for the advisory file lock.
type LockPolicy struct {
	// Timeout is the total time acquire may spend waiting before failing.
	Timeout time.Duration
	// Stale is the sentinel age beyond which an orphaned lock is reclaimed.
	Stale time.Duration
	// Retry is the base delay between acquisition attempts.
	Retry time.Duration
}

// Context carries the per-process inputs the store needs: where global state
// lives, which mode the process runs in, and how patient the lock should be.
// Construct it once with NewContext and thread it through.
type Context struct {
	// Dir is the absolute path of the global home-state directory.
	Dir string
	// StateFolder is the directory name used for project-local state
	// (rule 3 of path resolution), e.g. ".statekit".
	StateFolder string
	// Mode is the operating mode derived from the environment.
	Mode Mode
	// Lock is the lock acquisition policy.
	Lock LockPolicy
}

// NewContext resolves the run context from the environment. The home-state
// directory honors the STATEKIT_HOME override and otherwise lives under the
// user home directory, with a mode suffix keeping non-production state apart.
func NewContext() (*Context, error) {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	v.SetDefault(keyLockTimeout, int64(DefaultLockTimeout/time.Millisecond))
	v.SetDefault(keyLockStale, int64(DefaultLockStale/time.Millisecond))
	v.SetDefault(keyLockRetry, int64(DefaultLockRetry/time.Millisecond))

	mode := ParseMode(v.GetString(keyMode))

	dir := v.GetString(keyHome)
	if dir == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(userHome, branding.HomeDir()+mode.dirSuffix())
	}

	return &Context{
		Dir:         dir,
		StateFolder: branding.HomeDir(),
		Mode:        mode,
		Lock: LockPolicy{
			Timeout: time.Duration(v.GetInt64(keyLockTimeout)) * time.Millisecond,
			Stale:   time.Duration(v.GetInt64(keyLockStale)) * time.Millisecond,
			Retry:   time.Duration(v.GetInt64(keyLockRetry)) * time.Millisecond,
		},
	}, nil
}
