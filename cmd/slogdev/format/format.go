// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package format implements the format subcommand.
package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/slogdev/cmd/slogdev/cmdstate"
	"github.com/matt-FFFFFF/slogdev/internal/clangformat"
	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/matt-FFFFFF/slogdev/internal/discovery"
	"github.com/matt-FFFFFF/slogdev/internal/formatter"
	"github.com/matt-FFFFFF/slogdev/internal/progress"
	"github.com/matt-FFFFFF/slogdev/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	strictFlag = "strict"

	// ExitCodeUnavailable is returned when the formatter cannot be run.
	ExitCodeUnavailable = 1
	// ExitCodeFailures is returned in strict mode when any file failed to format.
	ExitCodeFailures = 2
)

// FormatCmd formats the project's C++ sources in place.
var FormatCmd = &cli.Command{
	Name:  "format",
	Usage: "Run clang-format in place over the project's source directories",
	Description: `Formats every .cpp, .hpp and .ipp file below the include and src
directories of the project. Missing directories are skipped. When a file fails
to format the rest of its directory is skipped and the next directory is processed.`,
	Flags: append(cmdstate.Flags(),
		&cli.BoolFlag{
			Name:        strictFlag,
			Usage:       fmt.Sprintf("Exit with status %d if any file failed to format", ExitCodeFailures),
			DefaultText: "false",
			Value:       false,
		},
	),
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.FromCommand(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	f := st.Config.Format
	o := formatter.New(
		clangformat.New(f.Executable),
		discovery.NewOS(st.ProjectRoot, f.Extensions),
		f.Dirs,
		progress.NewConsoleReporter(cmd.Root().Writer),
	)

	return run(ctx, o, cmd.Bool(strictFlag))
}

// run executes the orchestrator and maps its outcome to an exit status.
func run(ctx context.Context, o *formatter.Orchestrator, strict bool) error {
	res, err := o.Run(ctx)

	switch {
	case errors.Is(err, formatter.ErrToolUnavailable):
		ctxlog.Debug(ctx, "formatter unavailable", "error", err)
		return cli.Exit(fmt.Sprintf("ERROR: %s", err.Error()), ExitCodeUnavailable)
	case err != nil:
		if _, ok := signalbroker.Interrupted(ctx); ok {
			return cli.Exit("", signalbroker.ExitCodeInterrupted)
		}

		return cli.Exit(err.Error(), 1)
	}

	if failures := res.Failures(); failures != nil {
		ctxlog.Debug(ctx, "formatting failures", "error", failures)

		if strict {
			return cli.Exit(failures.Error(), ExitCodeFailures)
		}
	}

	return nil
}
