//go:build !windows

package lock

import (
	"os"
	"syscall"
)

// processAlive reports whether a process with the given PID exists.
// Signal 0 performs the existence check without delivering anything.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || err == syscall.EPERM
}
