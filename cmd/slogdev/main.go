// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the slogdev command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/slogdev"
	"github.com/matt-FFFFFF/slogdev/cmd/slogdev/configcmd"
	"github.com/matt-FFFFFF/slogdev/cmd/slogdev/format"
	"github.com/matt-FFFFFF/slogdev/cmd/slogdev/shell"
	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/matt-FFFFFF/slogdev/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		format.FormatCmd,
		shell.ShellCmd,
		configcmd.ConfigCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "slogdev",
	Usage:     "Developer workflow utilities for the slog project",
	Description: `slogdev formats the project's C++ sources with clang-format and starts
the development container with the project mounted into it.

Install it as scripts/slogdev in the project, or pass --project-root.`,
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancelCause(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel(nil)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", slogdev.Version, slogdev.Commit)

	err := rootCmd.Run(ctx, os.Args) // ExitCoder errors are handled by the cli framework

	if sig, ok := signalbroker.Interrupted(ctx); ok {
		ctxlog.Logger(ctx).Info("command terminated by signal", "signal", sig.String())
		os.Exit(signalbroker.ExitCodeInterrupted)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Info("command completed successfully")
}
