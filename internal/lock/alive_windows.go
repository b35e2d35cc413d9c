//go:build windows

package lock

import "os"

// processAlive reports whether a process with the given PID exists.
// os.FindProcess only fails on Windows when no such process exists.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	proc.Release()
	return true
}
