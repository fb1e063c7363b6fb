// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell implements the shell subcommand.
package shell

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/slogdev/cmd/slogdev/cmdstate"
	"github.com/matt-FFFFFF/slogdev/internal/container"
	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/matt-FFFFFF/slogdev/internal/progress"
	"github.com/matt-FFFFFF/slogdev/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	tagArg     = "tag"
	dryRunFlag = "dry-run"

	// ExitCodeUsage is returned when the command line is incomplete.
	ExitCodeUsage = 2
)

// ShellCmd starts an interactive shell in the development container.
var ShellCmd = &cli.Command{
	Name:      "shell",
	Usage:     "Start an interactive shell in the slog development container",
	UsageText: "slogdev shell [options] TAG",
	Description: `Runs the slog:TAG image with the project's sources, build files and
scripts bind mounted below /home/dev/slog. The exit status is the one of the
container runtime.`,
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      tagArg,
			UsageText: "TAG",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: append(cmdstate.Flags(),
		&cli.BoolFlag{
			Name:        dryRunFlag,
			Aliases:     []string{"n"},
			Usage:       "Print the container command line without running it",
			DefaultText: "false",
			Value:       false,
		},
	),
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	tag := cmd.StringArg(tagArg)
	if tag == "" {
		return cli.Exit("Please provide the image tag to run, e.g. slogdev shell latest", ExitCodeUsage)
	}

	st, err := cmdstate.FromCommand(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	l := newLauncher(st, container.New(st.ProjectRoot))

	return run(ctx, l, progress.NewConsoleReporter(cmd.Root().Writer), tag, cmd.Bool(dryRunFlag))
}

// newLauncher applies the container configuration to l.
func newLauncher(st cmdstate.State, l *container.Launcher) *container.Launcher {
	c := st.Config.Container

	l.Runtime = c.Runtime
	l.Image = c.Image
	l.Workdir = c.Workdir
	l.Shell = c.Shell
	l.Mounts = st.Config.ContainerMounts()

	return l
}

// run prints the command line and, unless dryRun, runs it and mirrors its exit status.
func run(ctx context.Context, l *container.Launcher, r progress.Reporter, tag string, dryRun bool) error {
	defer r.Close()

	line, err := l.CommandLine(tag)
	if err != nil {
		return cli.Exit(err.Error(), ExitCodeUsage)
	}

	r.Report(progress.Event{
		Type:    progress.EventRunStarted,
		Message: line,
	})

	if dryRun {
		return nil
	}

	code, err := l.Run(ctx, tag)

	if sig, ok := signalbroker.Interrupted(ctx); ok {
		ctxlog.Debug(ctx, "container interrupted", "signal", sig.String())
		return cli.Exit("", signalbroker.ExitCodeInterrupted)
	}

	if err != nil {
		if code <= 0 {
			code = 1
		}

		if errors.Is(err, container.ErrRuntimeNotFound) {
			return cli.Exit("ERROR: "+err.Error(), code)
		}

		return cli.Exit(err.Error(), code)
	}

	if code != 0 {
		return cli.Exit("", code)
	}

	return nil
}
