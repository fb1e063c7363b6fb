// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandinpath

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute bits are not meaningful on windows")
	}

	tempDir := t.TempDir()
	mockCommandName := "mockcommand"
	mockCommandPath := filepath.Join(tempDir, mockCommandName)

	require.NoError(t, os.WriteFile(mockCommandPath, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "adir"), 0o755))

	tests := []struct {
		name         string
		label        string
		command      string
		cwd          string
		args         []string
		path         string // PATH environment variable to set
		expectedNil  bool
		expectedPath string
		fileMode     os.FileMode
	}{
		{
			name:         "Command found",
			label:        "test-label",
			command:      mockCommandName,
			cwd:          "/test/cwd",
			args:         []string{"--version"},
			path:         tempDir,
			expectedPath: mockCommandPath,
			fileMode:     0o755,
		},
		{
			name:        "Command not found",
			label:       "test-label",
			command:     "nonexistentcommand",
			path:        tempDir,
			expectedNil: true,
			fileMode:    0o755,
		},
		{
			name:         "Multiple paths in PATH - command found",
			label:        "test-label",
			command:      mockCommandName,
			path:         "/non/existent/path" + string(os.PathListSeparator) + tempDir,
			expectedPath: mockCommandPath,
			fileMode:     0o755,
		},
		{
			name:        "Empty PATH",
			command:     mockCommandName,
			path:        "",
			expectedNil: true,
			fileMode:    0o755,
		},
		{
			name:        "File not executable",
			command:     mockCommandName,
			path:        tempDir,
			expectedNil: true,
			fileMode:    0o644,
		},
		{
			name:        "Directory is not a command",
			command:     "adir",
			path:        tempDir,
			expectedNil: true,
			fileMode:    0o755,
		},
		{
			name:        "Empty command",
			command:     "",
			path:        tempDir,
			expectedNil: true,
			fileMode:    0o755,
		},
		{
			name:         "Path with separator is used as given",
			command:      mockCommandPath,
			path:         "",
			expectedPath: mockCommandPath,
			fileMode:     0o755,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PATH", tc.path)
			require.NoError(t, os.Chmod(mockCommandPath, tc.fileMode))

			result := New(tc.label, tc.command, tc.cwd, tc.args)

			if tc.expectedNil {
				assert.Nil(t, result)
				return
			}

			require.NotNil(t, result)
			assert.Equal(t, tc.label, result.Label)
			assert.Equal(t, tc.expectedPath, result.Path)
			assert.Equal(t, tc.cwd, result.Cwd)
			assert.Equal(t, tc.args, result.Args)
		})
	}
}

func TestLookupNotFoundError(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Lookup("clang-format-does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "clang-format-does-not-exist")
}
