// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formatter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/matt-FFFFFF/slogdev/internal/progress"
)

// Orchestrator runs a Tool over the candidates of each root directory.
type Orchestrator struct {
	tool     Tool
	finder   Finder
	dirs     []string
	reporter progress.Reporter
}

// New creates an Orchestrator. A nil reporter discards progress events.
func New(tool Tool, finder Finder, dirs []string, reporter progress.Reporter) *Orchestrator {
	if reporter == nil {
		reporter = progress.NewNullReporter()
	}

	return &Orchestrator{
		tool:     tool,
		finder:   finder,
		dirs:     dirs,
		reporter: reporter,
	}
}

// exitCoder is implemented by tool errors that carry a process exit code.
type exitCoder interface {
	ExitCode() int
}

// Run probes the tool and then formats every root directory in order.
//
// If the probe fails Run returns ErrToolUnavailable before touching the
// filesystem. Per-file failures are recorded in the returned RunResult and
// do not make Run return an error. If ctx is cancelled Run returns the cause
// together with the partial result.
func (o *Orchestrator) Run(ctx context.Context) (RunResult, error) {
	result := RunResult{}

	ctxlog.Debug(ctx, "probing formatter", "tool", o.tool.Name())

	if err := o.tool.Probe(ctx); err != nil {
		ctxlog.Debug(ctx, "formatter probe failed", "tool", o.tool.Name(), "error", err)
		return result, errors.Join(ErrToolUnavailable, err)
	}

	o.report(progress.Event{
		Type:    progress.EventRunStarted,
		Message: fmt.Sprintf("%s on: %s...", o.tool.Name(), strings.Join(o.dirs, ", ")),
	})

	for _, name := range o.dirs {
		if ctx.Err() != nil {
			return result, context.Cause(ctx)
		}

		d, err := o.processDirectory(ctx, name)
		result = result.add(d)

		ctxlog.Debug(ctx, "directory processed",
			"directory", d.Name,
			"outcome", d.Outcome.String(),
			"formatted", d.Formatted,
			"attempted", d.Attempted)

		if err != nil {
			return result, err
		}
	}

	o.report(progress.Event{
		Type: progress.EventSummary,
		Data: progress.EventData{Count: result.Formatted},
	})

	return result, nil
}

// processDirectory formats the candidates of one root directory until the
// first failure. The returned error is only set when ctx was cancelled.
func (o *Orchestrator) processDirectory(ctx context.Context, name string) (DirectoryResult, error) {
	d := DirectoryResult{
		Name:      name,
		Outcome:   OutcomeCompleted,
		StoppedAt: -1,
	}

	abs, exists, err := o.finder.Resolve(name)
	d.Path = abs

	if err != nil {
		ctxlog.Warn(ctx, "root directory cannot be scanned", "directory", name, "error", err)
	}

	if !exists || err != nil {
		d.Outcome = OutcomeSkipped
		o.report(progress.Event{
			Path:    []string{name},
			Type:    progress.EventSkipped,
			Message: name,
		})

		return d, nil
	}

	index := 0

	for c, err := range o.finder.Candidates(ctx, abs) {
		if err != nil {
			if ctx.Err() != nil {
				return stopped(d, index, abs, context.Cause(ctx)), context.Cause(ctx)
			}

			o.reportFailure(name, abs, err)

			return stopped(d, index, abs, err), nil
		}

		o.report(progress.Event{
			Path:    []string{name, c.RelPath},
			Type:    progress.EventStarted,
			Message: c.RelPath,
		})

		d.Attempted++

		if err := o.tool.FormatInPlace(ctx, c.Path); err != nil {
			if ctx.Err() != nil {
				return stopped(d, index, c.Path, err), context.Cause(ctx)
			}

			o.reportFailure(name, c.Path, err)

			return stopped(d, index, c.Path, err), nil
		}

		d.Formatted++
		index++

		o.report(progress.Event{
			Path:    []string{name, c.RelPath},
			Type:    progress.EventCompleted,
			Message: c.RelPath,
		})
	}

	return d, nil
}

func stopped(d DirectoryResult, index int, path string, err error) DirectoryResult {
	d.Outcome = OutcomeStoppedEarly
	d.StoppedAt = index
	d.Failed = path
	d.Err = err

	return d
}

func (o *Orchestrator) reportFailure(name, path string, err error) {
	e := progress.Event{
		Path:    []string{name, path},
		Type:    progress.EventFailed,
		Message: path,
		Data:    progress.EventData{Error: err},
	}

	var ec exitCoder
	if errors.As(err, &ec) {
		e.Data.ExitCode = ec.ExitCode()
	}

	o.report(e)
}

func (o *Orchestrator) report(e progress.Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	o.reporter.Report(e)
}
