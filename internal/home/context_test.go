package home

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewContext_EnvOverride(t *testing.T) {
	t.Setenv("STATEKIT_HOME", "/tmp/test-statekit")
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Dir != "/tmp/test-statekit" {
		t.Errorf("expected /tmp/test-statekit, got %s", ctx.Dir)
	}
}

func TestNewContext_Default(t *testing.T) {
	t.Setenv("STATEKIT_HOME", "")
	t.Setenv("STATEKIT_MODE", "")
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	userHome, _ := os.UserHomeDir()
	expected := filepath.Join(userHome, ".statekit")
	if ctx.Dir != expected {
		t.Errorf("expected %s, got %s", expected, ctx.Dir)
	}
	if ctx.StateFolder != ".statekit" {
		t.Errorf("expected state folder .statekit, got %s", ctx.StateFolder)
	}
}

func TestNewContext_ModeSuffix(t *testing.T) {
	tests := []struct {
		mode   string
		suffix string
	}{
		{"", ""},
		{"production", ""},
		{"development", "-dev"},
		{"dev", "-dev"},
		{"demo", "-demo"},
		{"test", "-test"},
		{"bogus", ""},
	}

	for _, tt := range tests {
		t.Run("mode="+tt.mode, func(t *testing.T) {
			t.Setenv("STATEKIT_HOME", "")
			t.Setenv("STATEKIT_MODE", tt.mode)
			ctx, err := NewContext()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			userHome, _ := os.UserHomeDir()
			expected := filepath.Join(userHome, ".statekit"+tt.suffix)
			if ctx.Dir != expected {
				t.Errorf("expected %s, got %s", expected, ctx.Dir)
			}
		})
	}
}

func TestNewContext_LockPolicyDefaults(t *testing.T) {
	t.Setenv("STATEKIT_HOME", "/tmp/sk")
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Lock.Timeout != DefaultLockTimeout {
		t.Errorf("timeout = %v, want %v", ctx.Lock.Timeout, DefaultLockTimeout)
	}
	if ctx.Lock.Stale != DefaultLockStale {
		t.Errorf("stale = %v, want %v", ctx.Lock.Stale, DefaultLockStale)
	}
	if ctx.Lock.Retry != DefaultLockRetry {
		t.Errorf("retry = %v, want %v", ctx.Lock.Retry, DefaultLockRetry)
	}
}

func TestNewContext_LockPolicyEnv(t *testing.T) {
	t.Setenv("STATEKIT_HOME", "/tmp/sk")
	t.Setenv("STATEKIT_LOCK_TIMEOUT_MS", "2500")
	t.Setenv("STATEKIT_LOCK_STALE_MS", "30000")
	t.Setenv("STATEKIT_LOCK_RETRY_MS", "50")
	ctx, err := NewContext()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Lock.Timeout != 2500*time.Millisecond {
		t.Errorf("timeout = %v, want 2.5s", ctx.Lock.Timeout)
	}
	if ctx.Lock.Stale != 30*time.Second {
		t.Errorf("stale = %v, want 30s", ctx.Lock.Stale)
	}
	if ctx.Lock.Retry != 50*time.Millisecond {
		t.Errorf("retry = %v, want 50ms", ctx.Lock.Retry)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("demo") != ModeDemo {
		t.Error("expected demo mode")
	}
	if ParseMode("nonsense") != ModeProduction {
		t.Error("unrecognized mode should fall back to production")
	}
	if ModeDevelopment.String() != "development" {
		t.Errorf("unexpected mode name %s", ModeDevelopment)
	}
}
