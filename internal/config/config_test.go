package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deixis/vaultbridge/internal/normalize"
	"github.com/deixis/vaultbridge/internal/platform"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_FromWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "version: 1\ntimeout: 10m\nbinary: fv\n")

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Path != filepath.Join(dir, FileName) {
		t.Errorf("Path = %q, want %q", res.Path, filepath.Join(dir, FileName))
	}
	if res.Config.Version != 1 {
		t.Errorf("Config.Version = %d, want 1", res.Config.Version)
	}
	if res.Config.Timeout() != 10*time.Minute {
		t.Errorf("Timeout() = %v, want 10m", res.Config.Timeout())
	}
	if res.Config.BinaryName() != "fv" {
		t.Errorf("BinaryName() = %q, want %q", res.Config.BinaryName(), "fv")
	}
}

func TestLoad_FromSubdirectory(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "version: 1\nresource_root: resources\nhistory:\n  dir: .runs\n")

	sub := filepath.Join(root, "gui", "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Dir != root {
		t.Errorf("Dir = %q, want %q", res.Dir, root)
	}
	if res.Config.Version != 1 {
		t.Errorf("Config.Version = %d, want 1", res.Config.Version)
	}
	// Relative resource roots are anchored at the config file.
	if want := filepath.Join(root, "resources"); res.Config.ResourceRoot != want {
		t.Errorf("ResourceRoot = %q, want %q", res.Config.ResourceRoot, want)
	}
	if want := filepath.Join(root, ".runs"); res.Config.History.Dir != want {
		t.Errorf("History.Dir = %q, want %q", res.Config.History.Dir, want)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	dir := t.TempDir()

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Path != "" {
		t.Errorf("Path = %q, want empty", res.Path)
	}
	cfg := res.Config
	if cfg.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0 (no timeout)", cfg.Timeout())
	}
	if cfg.MaxOutputBytes() != 0 {
		t.Errorf("MaxOutputBytes() = %d, want 0 (unlimited)", cfg.MaxOutputBytes())
	}
	if cfg.BinaryName() != DefaultBinary {
		t.Errorf("BinaryName() = %q, want %q", cfg.BinaryName(), DefaultBinary)
	}
	if cfg.HistoryCapacity() != DefaultHistoryCapacity {
		t.Errorf("HistoryCapacity() = %d, want %d", cfg.HistoryCapacity(), DefaultHistoryCapacity)
	}
}

func TestLoad_Markers(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
markers:
  stdout: ["FATAL"]
`)
	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := res.Config.ErrorMarkers()
	if len(m.Stdout) != 1 || m.Stdout[0] != "FATAL" {
		t.Errorf("Markers.Stdout = %v, want [FATAL]", m.Stdout)
	}
	if len(m.Stderr) != len(normalize.DefaultMarkers.Stderr) {
		t.Errorf("Markers.Stderr = %v, want defaults", m.Stderr)
	}
}

func TestLoad_FallbackPaths(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "fallback_paths:\n  - out/filevault\n")

	res, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := res.Config.Profile(platform.Unix())
	if len(p.FallbackPaths) != 1 || p.FallbackPaths[0] != "out/filevault" {
		t.Errorf("FallbackPaths = %v, want [out/filevault]", p.FallbackPaths)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "timeout: [\n"},
		{"bad timeout", "timeout: soon\n"},
		{"negative output", "max_output: -1\n"},
		{"negative capacity", "history:\n  capacity: -5\n"},
		{"unknown version", "version: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			if _, err := Load(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}
