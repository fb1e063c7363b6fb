// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctxlog.LevelVar.Set(slog.LevelDebug)
	t.Cleanup(func() { ctxlog.LevelVar.Set(slog.LevelWarn) })

	return ctxlog.New(context.Background(), ctxlog.DefaultLogger)
}

func TestCommandRun_Success(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	cmd := &OSCommand{
		Path:  "/bin/sh",
		Args:  []string{"-c", "echo hello $FOO"},
		Env:   map[string]string{"FOO": "BAR"},
		Label: "echo test",
		sigCh: make(chan os.Signal, 1),
	}

	results := cmd.Run(testContext(t))
	require.Len(t, results, 1, "expected 1 result")

	res := results[0]
	assert.Equal(t, 0, res.ExitCode, "expected exit code 0")
	require.NoError(t, res.Error, "unexpected error")
	assert.Equal(t, ResultStatusSuccess, res.Status)
	assert.Equal(t, "hello BAR\n", string(res.StdOut))
	assert.False(t, results.HasError())
}

func TestCommandRun_FailureCapturesStderr(t *testing.T) {
	skipOnWindows(t)

	cmd := &OSCommand{
		Path:  "/bin/sh",
		Args:  []string{"-c", "echo 'a.cpp:1:1: error: bad' >&2; exit 3"},
		Label: "fail test",
		sigCh: make(chan os.Signal, 1),
	}

	results := cmd.Run(testContext(t))
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, ResultStatusError, res.Status)
	assert.Equal(t, "a.cpp:1:1: error: bad\n", string(res.StdErr))
	assert.True(t, results.HasError())
}

func TestCommandRun_CustomSuccessCodes(t *testing.T) {
	skipOnWindows(t)

	cmd := &OSCommand{
		Path:             "/bin/sh",
		Args:             []string{"-c", "exit 2"},
		SuccessExitCodes: []int{0, 2},
		sigCh:            make(chan os.Signal, 1),
	}

	res := cmd.Run(testContext(t)).First()
	assert.Equal(t, 2, res.ExitCode)
	assert.Equal(t, ResultStatusSuccess, res.Status)
}

func TestCommandRun_NotFound(t *testing.T) {
	cmd := &OSCommand{
		Path:  "/not/a/real/command",
		Args:  []string{""},
		Label: "notfound test",
		sigCh: make(chan os.Signal, 1),
	}

	res := cmd.Run(testContext(t)).First()

	var notFoundErr *os.PathError

	require.ErrorAs(t, res.Error, &notFoundErr, "expected PathError")
	require.ErrorIs(t, res.Error, ErrCouldNotStartProcess, "expected error to be ErrCouldNotStartProcess")
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, ResultStatusError, res.Status)
}

func TestCommandRun_Cwd(t *testing.T) {
	skipOnWindows(t)

	tempDir := t.TempDir()
	cmd := &OSCommand{
		Path:  "/bin/sh",
		Args:  []string{"-c", "pwd"},
		Cwd:   tempDir,
		sigCh: make(chan os.Signal, 1),
	}

	res := cmd.Run(testContext(t)).First()
	require.NoError(t, res.Error)
	assert.Contains(t, string(res.StdOut), tempDir)
}

func TestCommandRun_LargeOutputDoesNotBlock(t *testing.T) {
	skipOnWindows(t)

	// 256KB on stderr is well above a pipe buffer; the readers must drain concurrently.
	cmd := &OSCommand{
		Path:  "/bin/sh",
		Args:  []string{"-c", "head -c 262144 /dev/zero >&2"},
		sigCh: make(chan os.Signal, 1),
	}

	ctx, cancel := context.WithTimeout(testContext(t), 10*time.Second)
	defer cancel()

	res := cmd.Run(ctx).First()
	require.NoError(t, res.Error)
	assert.Len(t, res.StdErr, 262144)
}

func TestCommandRun_ContextCancelled(t *testing.T) {
	skipOnWindows(t)

	cmd := &OSCommand{
		Path:  "/bin/sleep",
		Args:  []string{"10"},
		Label: "sleep test",
		sigCh: make(chan os.Signal, 1),
	}

	ctx, cancel := context.WithTimeout(testContext(t), 100*time.Millisecond)
	defer cancel()

	res := cmd.Run(ctx).First()
	assert.Equal(t, -1, res.ExitCode, "expected -1 exit code for killed process")
	require.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	require.ErrorIs(t, res.Error, ErrContextDone)
	assert.Equal(t, ResultStatusError, res.Status)
}

func TestCommandRun_SigIntForwarded(t *testing.T) {
	skipOnWindows(t)

	cmd := &OSCommand{
		Path:  "/bin/sleep",
		Args:  []string{"10"},
		Label: "sleep test",
		sigCh: make(chan os.Signal, 1),
	}

	go func() {
		time.Sleep(200 * time.Millisecond)
		cmd.sigCh <- os.Interrupt
	}()

	ctx := testContext(t)

	res := cmd.Run(ctx).First()
	assert.Equal(t, -1, res.ExitCode, "expected -1 exit code for interrupted process")
	require.NoError(t, ctx.Err(), "expected context to be unclosed")
	require.ErrorIs(t, res.Error, ErrSignalReceived)
}

func TestCommandRun_DuplicateSignalKills(t *testing.T) {
	skipOnWindows(t)

	// The child ignores SIGINT, so only the second signal ends it.
	cmd := &OSCommand{
		Path:  "/bin/sh",
		Args:  []string{"-c", "trap '' INT; exec sleep 10"},
		sigCh: make(chan os.Signal, 2),
	}

	go func() {
		time.Sleep(200 * time.Millisecond)
		cmd.sigCh <- os.Interrupt
		time.Sleep(100 * time.Millisecond)
		cmd.sigCh <- os.Interrupt
	}()

	res := cmd.Run(testContext(t)).First()
	require.ErrorIs(t, res.Error, ErrDuplicateSignalReceived)
	assert.Equal(t, -1, res.ExitCode)
}

func TestGetLabel(t *testing.T) {
	assert.Equal(t, "clang-format", (&OSCommand{Path: "/usr/bin/clang-format"}).GetLabel())
	assert.Equal(t, "probe", (&OSCommand{Path: "/usr/bin/clang-format", Label: "probe"}).GetLabel())
}

func TestResultsFirstEmpty(t *testing.T) {
	res := Results{}.First()
	require.ErrorIs(t, res.Error, ErrNoResult)
	assert.Equal(t, ResultStatusError, res.Status)
}

func TestResultStatusString(t *testing.T) {
	assert.Equal(t, "success", ResultStatusSuccess.String())
	assert.Equal(t, "error", ResultStatusError.String())
	assert.Equal(t, "unknown", ResultStatusUnknown.String())
}
