package process

import (
	"errors"
	"fmt"
)

var ErrInvalidPID = errors.New("invalid pid")

// KillTree force-kills pid together with the processes it spawned.
// pid must be positive: on Unix a signal to -0 would hit our own group.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
