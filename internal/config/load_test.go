// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("paths are POSIX specific")
	}

	stubs := gostub.StubFunc(&Executable, "/work/slog/scripts/slogdev", nil)
	defer stubs.Reset()

	root, err := ProjectRoot()
	require.NoError(t, err)
	assert.Equal(t, "/work/slog", root)
}

func TestProjectRoot_FollowsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	dir := t.TempDir()
	realBin := filepath.Join(dir, "project", "scripts", "slogdev")
	require.NoError(t, os.MkdirAll(filepath.Dir(realBin), 0o755))
	require.NoError(t, os.WriteFile(realBin, []byte{}, 0o755))

	linkDir := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(linkDir, 0o755))
	require.NoError(t, os.Symlink(realBin, filepath.Join(linkDir, "slogdev")))

	stubs := gostub.StubFunc(&Executable, filepath.Join(linkDir, "slogdev"), nil)
	defer stubs.Reset()

	root, err := ProjectRoot()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(dir, "project"))
	require.NoError(t, err)
	assert.Equal(t, want, root)
}

func TestProjectRoot_Error(t *testing.T) {
	stubs := gostub.StubFunc(&Executable, "", errors.New("no executable"))
	defer stubs.Reset()

	_, err := ProjectRoot()
	require.ErrorIs(t, err, ErrProjectRoot)
}
