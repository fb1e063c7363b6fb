// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package configcmd implements the config subcommand, which prints the
// configuration the other subcommands would use.
package configcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/slogdev/cmd/slogdev/cmdstate"
	"github.com/urfave/cli/v3"
)

// ConfigCmd prints the effective configuration as YAML.
var ConfigCmd = &cli.Command{
	Name:   "config",
	Usage:  "Print the effective configuration as YAML",
	Flags:  cmdstate.Flags(),
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	st, err := cmdstate.FromCommand(ctx, cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := write(cmd.Root().Writer, st); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

func write(w io.Writer, st cmdstate.State) error {
	out, err := yaml.Marshal(st.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if _, err := fmt.Fprintf(w, "# project root: %s\n%s", st.ProjectRoot, out); err != nil {
		return err
	}

	return nil
}
