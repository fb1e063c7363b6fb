// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package clangformat runs the clang-format executable as a formatter.Tool.
package clangformat

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/slogdev/internal/commandinpath"
	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/matt-FFFFFF/slogdev/internal/formatter"
	"github.com/matt-FFFFFF/slogdev/internal/runbatch"
)

// DefaultExecutable is the command looked up on PATH when none is configured.
const DefaultExecutable = "clang-format"

var _ formatter.Tool = (*Tool)(nil)

// ErrProbeFailed is returned when `--version` does not exit successfully.
var ErrProbeFailed = errors.New("version probe failed")

// FormatError describes a failed clang-format invocation.
type FormatError struct {
	Tool     string // Name of the executable
	Path     string // File being formatted, empty for the probe
	Code     int    // Exit code, -1 if the process never ran to completion
	Stderr   string // Standard error of the process
	Err      error  // Underlying error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s returned non-zero exit status %d", e.Tool, e.Code)

	if stderr := strings.TrimRight(e.Stderr, "\r\n"); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code of the failed process.
func (e *FormatError) ExitCode() int {
	return e.Code
}

// Tool invokes clang-format.
type Tool struct {
	executable string
	path       string
}

// New creates a Tool for the given executable name or path.
// An empty executable selects DefaultExecutable.
func New(executable string) *Tool {
	if executable == "" {
		executable = DefaultExecutable
	}

	return &Tool{executable: executable}
}

// Name implements formatter.Tool.
func (t *Tool) Name() string {
	return filepath.Base(t.executable)
}

// Probe implements formatter.Tool. It runs `<executable> --version` and
// discards the output.
func (t *Tool) Probe(ctx context.Context) error {
	path, err := t.resolve()
	if err != nil {
		return err
	}

	res := t.command(path, "--version").Run(ctx).First()
	if res.Status == runbatch.ResultStatusSuccess {
		ctxlog.Debug(ctx, "formatter available", "path", path)
		return nil
	}

	return &FormatError{
		Tool:     t.Name(),
		Code:     res.ExitCode,
		Stderr:   string(res.StdErr),
		Err:      errors.Join(ErrProbeFailed, res.Error),
	}
}

// FormatInPlace implements formatter.Tool. It runs `<executable> -i <path>`.
func (t *Tool) FormatInPlace(ctx context.Context, path string) error {
	exe, err := t.resolve()
	if err != nil {
		return err
	}

	res := t.command(exe, "-i", path).Run(ctx).First()
	if res.Status == runbatch.ResultStatusSuccess {
		return nil
	}

	return &FormatError{
		Tool:     t.Name(),
		Path:     path,
		Code:     res.ExitCode,
		Stderr:   string(res.StdErr),
		Err:      res.Error,
	}
}

// resolve looks the executable up once and caches the result.
func (t *Tool) resolve() (string, error) {
	if t.path != "" {
		return t.path, nil
	}

	path, err := commandinpath.Lookup(t.executable)
	if err != nil {
		return "", err
	}

	t.path = path

	return path, nil
}

func (t *Tool) command(path string, args ...string) *runbatch.OSCommand {
	return &runbatch.OSCommand{
		Label: strings.Join(append([]string{t.Name()}, args...), " "),
		Path:  path,
		Args:  args,
	}
}
