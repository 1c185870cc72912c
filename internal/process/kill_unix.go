//go:build !windows

package process

import "syscall"

// Chrome is launched as a process group leader, so the negative pid
// addresses every helper it forked.
func killTree(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
