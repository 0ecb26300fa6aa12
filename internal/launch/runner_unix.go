//go:build !windows

package launch

import "syscall"

// detachAttr detaches the spawned editor from this process group so it
// outlives the serving process.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
