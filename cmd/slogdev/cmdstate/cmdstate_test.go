// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdstate

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/slogdev/internal/config"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ExplicitRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("paths are POSIX specific")
	}

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/slog/.slogdev.yaml", []byte("format:\n  dirs: [lib]\n"), 0o644))

	stubs := gostub.StubFunc(&config.FsFactory, fs)
	defer stubs.Reset()

	st, err := Load(context.Background(), "/work/slog", "")
	require.NoError(t, err)

	assert.Equal(t, "/work/slog", st.ProjectRoot)
	assert.Equal(t, []string{"lib"}, st.Config.Format.Dirs)
}

func TestLoad_RootFromExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("paths are POSIX specific")
	}

	stubs := gostub.StubFunc(&config.FsFactory, afero.NewMemMapFs())
	defer stubs.Reset()

	stubs.StubFunc(&config.Executable, "/work/slog/scripts/slogdev", nil)

	st, err := Load(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, "/work/slog", st.ProjectRoot)
	assert.Equal(t, config.Default(), st.Config)
}

func TestLoad_ConfigSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.hcl")
	require.NoError(t, os.WriteFile(path, []byte("container {\n  runtime = \"podman\"\n}\n"), 0o644))

	stubs := gostub.StubFunc(&config.FsFactory, afero.NewMemMapFs())
	defer stubs.Reset()

	st, err := Load(context.Background(), t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, "podman", st.Config.Container.Runtime)
}

func TestLoad_InvalidProjectConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	root := filepath.Join(string(filepath.Separator), "work", "slog")
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, config.FileNameYAML), []byte("format:\n  extensions: [cpp]\n"), 0o644))

	stubs := gostub.StubFunc(&config.FsFactory, fs)
	defer stubs.Reset()

	_, err := Load(context.Background(), root, "")
	require.ErrorIs(t, err, config.ErrInvalidExtension)
}

func TestFlags_AreFreshInstances(t *testing.T) {
	a := Flags()
	b := Flags()

	require.Len(t, a, 2)
	assert.NotSame(t, a[0], b[0])
}
