// Package locator resolves the filesystem path of the FileVault executable.
//
// The packaged location <resource root>/bin/<binary> wins when it exists.
// Otherwise the platform profile's development fallbacks are tried in order,
// so the bridge works both from an installed bundle and from a build tree.
// Nothing is cached: the binary may be rebuilt between invocations.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deixis/vaultbridge/internal/platform"
)

// DefaultBinary is the base name of the FileVault executable.
const DefaultBinary = "filevault"

// ErrExecutableNotFound is matched by every NotFoundError.
var ErrExecutableNotFound = errors.New("executable not found")

// NotFoundError reports that no candidate path exists.
type NotFoundError struct {
	Primary string   // packaged location
	Tried   []string // fallback locations, in the order they were checked
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("FileVault executable not found at %q. Tried paths: [%s]",
		e.Primary, quoteAll(e.Tried))
}

// Is makes errors.Is(err, ErrExecutableNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrExecutableNotFound
}

// Paths returns every path that was checked, primary first.
func (e *NotFoundError) Paths() []string {
	return append([]string{e.Primary}, e.Tried...)
}

// Locator finds the FileVault executable.
type Locator struct {
	Profile      platform.Profile
	ResourceRoot string // packaged resource directory
	BaseDir      string // base for relative fallbacks; empty means the working directory
	Binary       string // base name without suffix; defaults to DefaultBinary
}

// Locate returns the first existing candidate path.
func (l *Locator) Locate() (string, error) {
	primary := l.Primary()
	if isFile(primary) {
		return primary, nil
	}

	tried := make([]string, 0, len(l.Profile.FallbackPaths))
	for _, p := range l.Profile.FallbackPaths {
		candidate := l.resolve(p)
		tried = append(tried, candidate)
		if isFile(candidate) {
			return candidate, nil
		}
	}
	return "", &NotFoundError{Primary: primary, Tried: tried}
}

// Primary returns the packaged candidate path.
func (l *Locator) Primary() string {
	return filepath.Join(l.ResourceRoot, "bin", l.Profile.BinaryName(l.binary()))
}

func (l *Locator) binary() string {
	if l.Binary != "" {
		return l.Binary
	}
	return DefaultBinary
}

// resolve anchors a relative fallback at BaseDir.
func (l *Locator) resolve(p string) string {
	if l.BaseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.BaseDir, filepath.FromSlash(p))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func quoteAll(paths []string) string {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return strings.Join(quoted, ", ")
}
