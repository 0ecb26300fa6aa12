//go:build windows

package launch

import "syscall"

func detachAttr() *syscall.SysProcAttr {
	return nil
}
