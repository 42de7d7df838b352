package locator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deixis/vaultbridge/internal/platform"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func testProfile() platform.Profile {
	return platform.Profile{
		Name:          "test",
		FallbackPaths: []string{"first/filevault", "second/filevault", "third/filevault"},
	}
}

func TestLocate_PrimaryWins(t *testing.T) {
	root := t.TempDir()
	base := t.TempDir()
	touch(t, filepath.Join(root, "bin", "filevault"))
	touch(t, filepath.Join(base, "first", "filevault"))

	l := &Locator{Profile: testProfile(), ResourceRoot: root, BaseDir: base}
	got, err := l.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if want := filepath.Join(root, "bin", "filevault"); got != want {
		t.Errorf("Locate() = %q, want %q", got, want)
	}
}

func TestLocate_SecondFallback(t *testing.T) {
	root := t.TempDir()
	base := t.TempDir()
	touch(t, filepath.Join(base, "second", "filevault"))
	touch(t, filepath.Join(base, "third", "filevault"))

	l := &Locator{Profile: testProfile(), ResourceRoot: root, BaseDir: base}
	got, err := l.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if want := filepath.Join(base, "second", "filevault"); got != want {
		t.Errorf("Locate() = %q, want %q", got, want)
	}
}

func TestLocate_UnixDevelopmentTree(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "gui", "src-app")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatal(err)
	}
	// Only ../build/... relative to base exists.
	want := filepath.Join(tmp, "gui", "build", "build", "Release", "bin", "release", "filevault")
	touch(t, want)

	l := &Locator{Profile: platform.Unix(), ResourceRoot: filepath.Join(tmp, "resources"), BaseDir: base}
	got, err := l.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != want {
		t.Errorf("Locate() = %q, want %q", got, want)
	}
}

func TestLocate_DirectoryIsNotExecutable(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "bin", "filevault"), 0o755); err != nil {
		t.Fatal(err)
	}
	l := &Locator{Profile: platform.Profile{}, ResourceRoot: root}
	if _, err := l.Locate(); err == nil {
		t.Fatal("expected error when the primary path is a directory")
	}
}

func TestLocate_BinarySuffix(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "bin", "fv.exe"))

	l := &Locator{
		Profile:      platform.Profile{BinarySuffix: ".exe"},
		ResourceRoot: root,
		Binary:       "fv",
	}
	got, err := l.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if filepath.Base(got) != "fv.exe" {
		t.Errorf("Locate() = %q, want fv.exe", got)
	}
}

func TestLocate_NotFound(t *testing.T) {
	root := t.TempDir()
	base := t.TempDir()

	l := &Locator{Profile: testProfile(), ResourceRoot: root, BaseDir: base}
	_, err := l.Locate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("errors.Is(err, ErrExecutableNotFound) = false for %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error type = %T, want *NotFoundError", err)
	}
	if len(nf.Paths()) != 4 {
		t.Errorf("Paths() = %v, want 4 entries", nf.Paths())
	}
	msg := err.Error()
	for _, p := range nf.Paths() {
		if !strings.Contains(msg, p) {
			t.Errorf("error %q does not mention %q", msg, p)
		}
	}
}

func TestLocate_NoCaching(t *testing.T) {
	root := t.TempDir()
	l := &Locator{Profile: platform.Profile{}, ResourceRoot: root}

	if _, err := l.Locate(); err == nil {
		t.Fatal("expected error before the binary exists")
	}
	touch(t, filepath.Join(root, "bin", "filevault"))
	if _, err := l.Locate(); err != nil {
		t.Fatalf("Locate after build: %v", err)
	}
}
