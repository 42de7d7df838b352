//go:build !windows

package platform

import "syscall"

// CREATE_NO_WINDOW from golang.org/x/sys/windows, which only builds on Windows.
const createNoWindow uint32 = 0x08000000

// SysProcAttr returns nil: no special attributes are needed outside Windows.
func (p Profile) SysProcAttr() *syscall.SysProcAttr {
	return nil
}
