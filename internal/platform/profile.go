// Package platform describes the per-OS details of launching FileVault:
// the binary suffix, the process creation flags and the development-tree
// fallback locations. A Profile is chosen once at startup and injected into
// the locator and the runner so neither has to branch on the OS itself.
package platform

import "runtime"

// Profile holds everything that differs between target platforms.
type Profile struct {
	Name          string
	BinarySuffix  string
	CreationFlags uint32   // Windows process creation flags; ignored elsewhere
	FallbackPaths []string // tried in order when the packaged binary is missing
}

// BinaryName returns base with the platform's executable suffix.
func (p Profile) BinaryName(base string) string {
	return base + p.BinarySuffix
}

// WithFallbacks returns a copy of p using paths as its fallback list.
// A nil or empty list keeps the built-in one.
func (p Profile) WithFallbacks(paths []string) Profile {
	if len(paths) == 0 {
		return p
	}
	p.FallbackPaths = append([]string(nil), paths...)
	return p
}

// Windows returns the profile for Windows targets. The child is started
// without a console window.
func Windows() Profile {
	return Profile{
		Name:          "windows",
		BinarySuffix:  ".exe",
		CreationFlags: createNoWindow,
		FallbackPaths: []string{
			`..\..\build\build\Release\bin\release\filevault.exe`,
			`bin\filevault.exe`,
		},
	}
}

// Unix returns the profile for every non-Windows target.
func Unix() Profile {
	return Profile{
		Name: "unix",
		FallbackPaths: []string{
			"../../build/build/Release/bin/release/filevault",
			"../build/build/Release/bin/release/filevault",
			"bin/filevault",
		},
	}
}

// ForOS returns the profile for the given GOOS value.
func ForOS(goos string) Profile {
	if goos == "windows" {
		return Windows()
	}
	return Unix()
}

// Current returns the profile for the running platform.
func Current() Profile {
	return ForOS(runtime.GOOS)
}
