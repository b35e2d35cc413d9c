package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestEnsureSecureDir(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "a", "b")

	if err := EnsureSecureDir(dir); err != nil {
		t.Fatalf("EnsureSecureDir failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0700 {
			t.Errorf("permissions = %o, want %o", perm, 0700)
		}
	}
}

func TestEnsureSecureDirTightensExisting(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no permission bits on windows")
	}
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "loose")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := EnsureSecureDir(dir); err != nil {
		t.Fatalf("EnsureSecureDir failed: %v", err)
	}

	ok, err := CheckPerm(dir, 0700)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected directory permissions tightened to 0700")
	}
}

func TestCheckPermMissingFile(t *testing.T) {
	_, err := CheckPerm(filepath.Join(t.TempDir(), "absent"), 0600)
	if runtime.GOOS != "windows" && err == nil {
		t.Error("expected error for missing file")
	}
}
