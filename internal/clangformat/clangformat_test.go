// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package clangformat

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/slogdev/internal/commandinpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeClangFormat = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "clang-format version 18.1.3"
  exit 0
fi
case "$2" in
  *bad*)
    echo "$2:1:5: error: expected ';' after top level declarator" >&2
    exit 1
    ;;
esac
printf 'int x;\n' > "$2"
`

const brokenClangFormat = `#!/bin/sh
echo "clang-format: error while loading shared libraries" >&2
exit 127
`

func installFake(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on Windows")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultExecutable), []byte(script), 0o755))
	t.Setenv("PATH", dir)

	return dir
}

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, "clang-format", New("").Name())
	assert.Equal(t, "clang-format-18", New("/usr/bin/clang-format-18").Name())
}

func TestProbe_Success(t *testing.T) {
	installFake(t, fakeClangFormat)

	require.NoError(t, New("").Probe(context.Background()))
}

func TestProbe_NotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on Windows")
	}

	t.Setenv("PATH", t.TempDir())

	err := New("").Probe(context.Background())
	require.ErrorIs(t, err, commandinpath.ErrNotFound)
}

func TestProbe_NonZeroExit(t *testing.T) {
	installFake(t, brokenClangFormat)

	err := New("").Probe(context.Background())
	require.ErrorIs(t, err, ErrProbeFailed)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 127, fe.ExitCode())
	assert.Contains(t, fe.Error(), "error while loading shared libraries")
}

func TestFormatInPlace_Success(t *testing.T) {
	installFake(t, fakeClangFormat)

	file := filepath.Join(t.TempDir(), "a.cpp")
	require.NoError(t, os.WriteFile(file, []byte("int  x ;"), 0o644))

	require.NoError(t, New("").FormatInPlace(context.Background(), file))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "int x;\n", string(b))
}

func TestFormatInPlace_Failure(t *testing.T) {
	installFake(t, fakeClangFormat)

	file := filepath.Join(t.TempDir(), "bad.cpp")
	require.NoError(t, os.WriteFile(file, []byte("int x"), 0o644))

	err := New("").FormatInPlace(context.Background(), file)
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, file, fe.Path)
	assert.Equal(t, 1, fe.ExitCode())
	assert.Equal(t, file+":1:5: error: expected ';' after top level declarator\n", fe.Stderr)
	assert.Equal(t,
		"clang-format returned non-zero exit status 1: "+file+":1:5: error: expected ';' after top level declarator",
		fe.Error())

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "int x", string(b))
}

func TestResolve_IsCached(t *testing.T) {
	dir := installFake(t, fakeClangFormat)
	tool := New("")

	require.NoError(t, tool.Probe(context.Background()))
	assert.Equal(t, filepath.Join(dir, DefaultExecutable), tool.path)

	// PATH no longer matters once resolved.
	t.Setenv("PATH", t.TempDir())
	require.NoError(t, tool.Probe(context.Background()))
}
