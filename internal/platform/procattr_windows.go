//go:build windows

package platform

import (
	"syscall"

	"golang.org/x/sys/windows"
)

const createNoWindow = uint32(windows.CREATE_NO_WINDOW)

// SysProcAttr returns the process attributes for starting a child with the
// profile's creation flags.
func (p Profile) SysProcAttr() *syscall.SysProcAttr {
	if p.CreationFlags == 0 {
		return nil
	}
	return &syscall.SysProcAttr{
		CreationFlags: p.CreationFlags,
		HideWindow:    true,
	}
}
