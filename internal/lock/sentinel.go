package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StaleSentinels scans a directory for lock sentinels that are older than
// the threshold and whose recorded owner is no longer alive. Used by the
// doctor command to report crash leftovers.
func StaleSentinels(dir string, threshold time.Duration) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var stale []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), sentinelSuffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < threshold {
			continue
		}
		if pid := readPID(path); pid > 0 && processAlive(pid) {
			continue
		}
		stale = append(stale, path)
	}
	return stale, nil
}
