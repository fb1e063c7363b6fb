// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/matt-FFFFFF/slogdev/internal/signalbroker"
	"github.com/matt-FFFFFF/slogdev/internal/teereader"
)

const (
	maxBufferSize  = 8 * 1024 * 1024 // 8MB
	lastLineLength = 200
)

var _ Runnable = (*OSCommand)(nil)

var (
	// ErrBufferOverflow is returned when the output exceeds the max size.
	ErrBufferOverflow = fmt.Errorf("output exceeds max size of %d bytes", maxBufferSize)
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToReadBuffer is returned when the buffer from the operating system pipe could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
	// ErrContextDone is returned when the process was killed because its context ended.
	ErrContextDone = errors.New("context done, process killed")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrSignalReceived is returned when a operating system signal is received by the child process.
	ErrSignalReceived = errors.New("signal received")
	// ErrDuplicateSignalReceived is returned when a duplicate signal is received, forcing process termination.
	ErrDuplicateSignalReceived = errors.New("duplicate signal received, process forcefully terminated")
	// ErrNoResult is returned by Results.First on an empty slice.
	ErrNoResult = errors.New("command produced no result")
)

// OSCommand represents a single external process invocation.
type OSCommand struct {
	Label            string            // Label used in logs and results
	Path             string            // The command to run (absolute path of the executable)
	Args             []string          // Arguments to the command, do not include the executable name itself.
	Cwd              string            // Working directory, empty for the current one
	Env              map[string]string // Added to the current environment
	SuccessExitCodes []int             // Exit codes that indicate success, defaults to 0.
	Interactive      bool              // Attach the child to this process's stdin, stdout and stderr
	sigCh            chan os.Signal    // Channel to receive signals, allows mocking in test.
}

// GetLabel returns the label of the command.
func (c *OSCommand) GetLabel() string {
	if c.Label == "" {
		return filepath.Base(c.Path)
	}

	return c.Label
}

// pipePair is one captured output stream of the child.
type pipePair struct {
	r, w    *os.File
	capture *teereader.Capture
}

func newPipePair() (*pipePair, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrFailedToCreatePipe, err)
	}

	return &pipePair{r: r, w: w, capture: teereader.New(r, maxBufferSize)}, nil
}

func (p *pipePair) close() {
	if p == nil {
		return
	}

	_ = p.r.Close()
	_ = p.w.Close()
}

// Run implements the Runnable interface for OSCommand.
func (c *OSCommand) Run(ctx context.Context) Results {
	logger := ctxlog.Logger(ctx).
		With("runnableType", "OSCommand").
		With("label", c.GetLabel())

	logger.Debug("command info", "path", c.Path, "cwd", c.Cwd, "args", c.Args, "interactive", c.Interactive)

	successCodes := c.SuccessExitCodes
	if successCodes == nil {
		successCodes = []int{0}
	}

	sigCh := c.sigCh
	if sigCh == nil {
		sigCh = signalbroker.New(ctx)
		defer signal.Stop(sigCh)
	}

	res := &Result{
		Label:  c.GetLabel(),
		Status: ResultStatusUnknown,
	}

	env := os.Environ()

	for k, v := range c.Env {
		logger.Debug("adding environment variable", "key", k, "value", v)
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	var stdout, stderr *pipePair

	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}

	if !c.Interactive {
		var err error

		if stdout, err = newPipePair(); err != nil {
			return failed(res, err)
		}

		if stderr, err = newPipePair(); err != nil {
			stdout.close()
			return failed(res, err)
		}

		files = []*os.File{os.Stdin, stdout.w, stderr.w}
	}

	args := slices.Concat([]string{filepath.Base(c.Path)}, c.Args)

	logger.Debug("starting process")

	ps, err := os.StartProcess(c.Path, args, &os.ProcAttr{
		Dir:   c.Cwd,
		Env:   env,
		Files: files,
	})
	if err != nil {
		stdout.close()
		stderr.close()

		return failed(res, errors.Join(ErrCouldNotStartProcess, err))
	}

	logger.Debug("process started", "pid", ps.Pid)

	// The child holds its own copies of the write ends; closing ours lets the readers see EOF.
	var readers sync.WaitGroup

	readErrs := make([]error, 2)

	for i, p := range []*pipePair{stdout, stderr} {
		if p == nil {
			continue
		}

		_ = p.w.Close()

		readers.Add(1)

		go func() {
			defer readers.Done()

			readErrs[i] = p.capture.Drain()
			_ = p.r.Close()
		}()
	}

	done := make(chan struct{})

	var (
		watchdog    sync.WaitGroup
		watchdogErr error
	)

	watchdog.Add(1)

	// Passes signals on to the child and kills it on a duplicate signal or when ctx ends.
	go func() {
		defer watchdog.Done()

		signalCount := make(map[os.Signal]struct{})

		for {
			select {
			case s := <-sigCh:
				if _, ok := signalCount[s]; ok {
					logger.Info("received duplicate signal, killing process", "signal", s.String())
					killPs(ctx, ps)

					watchdogErr = errors.Join(watchdogErr, ErrDuplicateSignalReceived)

					return
				}

				signalCount[s] = struct{}{}

				logger.Info("received signal", "signal", s.String())

				if err := ps.Signal(s); err != nil {
					logger.Info("failed to send signal", "signal", s.String(), "error", err)
				}

				watchdogErr = errors.Join(watchdogErr, ErrSignalReceived)

			case <-ctx.Done():
				logger.Info("context done, killing process")
				killPs(ctx, ps)

				watchdogErr = errors.Join(watchdogErr, ErrContextDone)

				return

			case <-done:
				return
			}
		}
	}()

	logger.Debug("waiting for process to finish")

	state, psErr := ps.Wait()

	close(done)
	watchdog.Wait()
	readers.Wait()

	res.Error = psErr
	res.ExitCode = -1

	if state != nil {
		res.ExitCode = state.ExitCode()
	}

	logger.Debug("process finished", "exitCode", res.ExitCode)

	if watchdogErr != nil {
		res.Error = errors.Join(res.Error, watchdogErr)
		res.ExitCode = -1
	}

	if stdout != nil {
		res.StdOut = stdout.capture.Bytes()
		res.Error = errors.Join(res.Error, streamErr(stdout.capture, readErrs[0]))
	}

	if stderr != nil {
		res.StdErr = stderr.capture.Bytes()
		res.Error = errors.Join(res.Error, streamErr(stderr.capture, readErrs[1]))

		if last := stderr.capture.LastLine(lastLineLength); last != "" {
			logger.Debug("last stderr line", "line", last)
		}
	}

	switch {
	case res.Error == nil && slices.Contains(successCodes, res.ExitCode):
		logger.Debug("process exit code indicates success", "exitCode", res.ExitCode)
		res.Status = ResultStatusSuccess
	default:
		logger.Debug("process error", "error", res.Error, "exitCode", res.ExitCode)

		if res.ExitCode == 0 {
			res.ExitCode = -1
		}

		res.Status = ResultStatusError
	}

	return Results{res}
}

func failed(res *Result, err error) Results {
	res.Error = err
	res.ExitCode = -1
	res.Status = ResultStatusError

	return Results{res}
}

func streamErr(c *teereader.Capture, readErr error) error {
	var err error

	if readErr != nil && !errors.Is(readErr, os.ErrClosed) {
		err = errors.Join(ErrFailedToReadBuffer, readErr)
	}

	if c.Truncated() {
		err = errors.Join(err, ErrBufferOverflow)
	}

	return err
}

// killPs kills the process, tolerating one that already exited.
func killPs(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Logger(ctx).Debug("process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Logger(ctx).Error("process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Logger(ctx).Info("process killed", "pid", ps.Pid)
}
