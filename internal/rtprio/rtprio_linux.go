//go:build linux

package rtprio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Raise sets the niceness of the calling OS thread to Nice. The caller should
// hold runtime.LockOSThread, otherwise another goroutine may inherit it.
func Raise() error {
	tid := unix.Gettid()
	if err := unix.Setpriority(unix.PRIO_PROCESS, tid, Nice); err != nil {
		return fmt.Errorf("rtprio: setpriority(%d, %d): %w", tid, Nice, err)
	}
	return nil
}

