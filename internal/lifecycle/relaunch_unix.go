//go:build !windows

package lifecycle

import (
	"os"
	"syscall"
)

// Relaunch replaces the current process with a fresh execution of the
// same binary and arguments. Returns only on failure.
func Relaunch() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return syscall.Exec(exe, os.Args, os.Environ())
}
