// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandinpath resolves executables on PATH and builds runnable commands for them.
package commandinpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/matt-FFFFFF/slogdev/internal/runbatch"
)

// ErrNotFound is returned when a command cannot be resolved to an executable file.
var ErrNotFound = errors.New("executable not found in PATH")

// Lookup returns the absolute path of command.
// A command containing a path separator is checked as given; otherwise each
// PATH entry is searched in order. Directories and, outside Windows, files
// without an execute bit are ignored.
func Lookup(command string) (string, error) {
	if command == "" {
		return "", fmt.Errorf("%w: empty command", ErrNotFound)
	}

	if strings.ContainsRune(command, filepath.Separator) || strings.ContainsRune(command, '/') {
		abs, err := filepath.Abs(command)
		if err != nil {
			return "", errors.Join(ErrNotFound, err)
		}

		if isExecutable(abs) {
			return abs, nil
		}

		return "", fmt.Errorf("%w: %s", ErrNotFound, command)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}

		for _, name := range candidateNames(command) {
			p := filepath.Join(dir, name)
			if isExecutable(p) {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, command)
}

// New returns an OSCommand for command, or nil if it cannot be found.
func New(label, command, cwd string, args []string) *runbatch.OSCommand {
	path, err := Lookup(command)
	if err != nil {
		return nil
	}

	return &runbatch.OSCommand{
		Label: label,
		Path:  path,
		Cwd:   cwd,
		Args:  args,
	}
}

func candidateNames(command string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(command) != "" {
		return []string{command}
	}

	return []string{command, command + ".exe"}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
		return false
	}

	return true
}
