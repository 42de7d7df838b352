package bridge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/deixis/vaultbridge/internal/config"
	"github.com/deixis/vaultbridge/internal/locator"
	"github.com/deixis/vaultbridge/internal/normalize"
	"github.com/deixis/vaultbridge/internal/platform"
	"github.com/deixis/vaultbridge/internal/report"
	"github.com/deixis/vaultbridge/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeVault is a stand-in for the FileVault CLI. It mimics the real tool's
// habit of exiting 0 after a wrong password.
const fakeVault = `#!/bin/sh
case "$1" in
  unlock)  printf '\033[32m✓ Vault unlocked\033[0m\n' ;;
  decrypt) echo "Decrypting $2"; printf '\033[31m✗ Wrong password\033[0m\n' ;;
  full)    echo "fatal: disk full" >&2; exit 2 ;;
  quiet)   exit 4 ;;
  echo)    shift; for a in "$@"; do echo "$a"; done ;;
esac
`

func newBridge(t *testing.T, store report.Store) *Bridge {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("bridge tests use POSIX shell scripts")
	}
	root := t.TempDir()
	exe := filepath.Join(root, "bin", "filevault")
	require.NoError(t, os.MkdirAll(filepath.Dir(exe), 0o755))
	require.NoError(t, os.WriteFile(exe, []byte(fakeVault), 0o755))

	cfg := &config.Config{ResourceRoot: root, FallbackPaths: []string{filepath.Join(t.TempDir(), "none")}}
	return FromConfig(cfg, platform.Unix(), store, nil)
}

func TestRun_Success(t *testing.T) {
	b := newBridge(t, nil)
	res, err := b.Run(context.Background(), []string{"unlock"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "✓ Vault unlocked\n", res.Stdout)
}

func TestRun_ZeroExitWithErrorMarker(t *testing.T) {
	b := newBridge(t, nil)
	res, err := b.Run(context.Background(), []string{"decrypt", "a.fv"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "✗ Wrong password", res.Error)
}

func TestRun_StderrBecomesError(t *testing.T) {
	b := newBridge(t, nil)
	res, err := b.Run(context.Background(), []string{"full"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.ExitCode)
	assert.Equal(t, "fatal: disk full\n", res.Error)
}

func TestRun_GenericError(t *testing.T) {
	b := newBridge(t, nil)
	res, err := b.Run(context.Background(), []string{"quiet"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Command failed with exit code 4", res.Error)
}

func TestRun_ExecutableNotFound(t *testing.T) {
	b := New(Options{Locator: &locator.Locator{
		Profile:      platform.Profile{FallbackPaths: []string{filepath.Join(t.TempDir(), "fv")}},
		ResourceRoot: t.TempDir(),
	}})
	res, err := b.Run(context.Background(), []string{"unlock"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, locator.ErrExecutableNotFound)
}

func TestRun_SpawnFailure(t *testing.T) {
	root := t.TempDir()
	exe := filepath.Join(root, "bin", "filevault")
	require.NoError(t, os.MkdirAll(filepath.Dir(exe), 0o755))
	require.NoError(t, os.WriteFile(exe, []byte("not a program"), 0o644))

	b := New(Options{Locator: &locator.Locator{Profile: platform.Unix(), ResourceRoot: root}})
	res, err := b.Run(context.Background(), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, runner.ErrSpawn)
}

func TestInvoke_RecordsRedactedHistory(t *testing.T) {
	store := report.NewLRUStore(4, report.NewDiskStore(t.TempDir()))
	b := newBridge(t, store)

	inv, err := b.Invoke(context.Background(), []string{"decrypt", "a.fv", "-p", "hunter2"})
	require.NoError(t, err)
	require.NotEmpty(t, inv.RunID)

	rec, err := store.Load(inv.RunID)
	require.NoError(t, err)
	assert.Equal(t, []string{"decrypt", "a.fv", "-p", "[REDACTED]"}, rec.Args)
	assert.Equal(t, inv.Result, rec.Result)
	assert.Equal(t, "failed", rec.Status())
}

func TestLocate(t *testing.T) {
	b := newBridge(t, nil)
	path, err := b.Locate()
	require.NoError(t, err)
	assert.Equal(t, "filevault", filepath.Base(path))
}

func TestRun_Concurrent(t *testing.T) {
	b := newBridge(t, report.NewLRUStore(2, report.NewDiskStore(t.TempDir())))

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			want := fmt.Sprintf("call-%d", i)
			res, err := b.Run(context.Background(), []string{"echo", want})
			if err != nil {
				errs <- err
				return
			}
			if res.Stdout != want+"\n" {
				errs <- fmt.Errorf("stdout = %q, want %q", res.Stdout, want+"\n")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestDefaultResourceRoot(t *testing.T) {
	root := DefaultResourceRoot()
	assert.NotEmpty(t, root)
	_, err := os.Stat(root)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}

func TestMarkers_ConfiguredLinesMergedWithDefaults(t *testing.T) {
	cfg := &config.Config{Markers: normalize.Markers{Lines: []string{"DENIED"}}}
	b := FromConfig(cfg, platform.Unix(), nil, nil)

	m := b.Markers()
	assert.Equal(t, []string{"DENIED"}, m.Lines)
	assert.Equal(t, normalize.DefaultMarkers.Stdout, m.Stdout)
}
