// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate resolves the project root and configuration shared by all subcommands.
package cmdstate

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/matt-FFFFFF/slogdev/internal/config"
	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	// ProjectRootFlag overrides the project root derived from the executable location.
	ProjectRootFlag = "project-root"
	// ConfigFlag names a configuration file to use instead of the project one.
	ConfigFlag = "config"
)

// State is what every subcommand needs before it starts.
type State struct {
	ProjectRoot string
	Config      config.Config
}

// Flags returns new instances of the flags understood by FromCommand.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      ProjectRootFlag,
			Aliases:   []string{"C"},
			Usage:     "Project root directory. Defaults to the parent of the directory containing this executable",
			TakesFile: true,
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringFlag{
			Name:    ConfigFlag,
			Aliases: []string{"c"},
			Usage: "Configuration file to use instead of " + config.FileNameYAML + " or " + config.FileNameHCL +
				" at the project root. Accepts a path or any go-getter source, e.g. " +
				"git::https://github.com/org/repo//.slogdev.yaml?ref=main",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	}
}

// FromCommand resolves the state from the flags of cmd.
func FromCommand(ctx context.Context, cmd *cli.Command) (State, error) {
	return Load(ctx, cmd.String(ProjectRootFlag), cmd.String(ConfigFlag))
}

// Load resolves the project root, unless given, and loads the configuration
// from configSrc or, when that is empty, from the project root.
func Load(ctx context.Context, projectRoot, configSrc string) (State, error) {
	root := projectRoot
	if root == "" {
		var err error

		if root, err = config.ProjectRoot(); err != nil {
			return State{}, err
		}
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return State{}, errors.Join(config.ErrProjectRoot, err)
	}

	ctxlog.Debug(ctx, "project root resolved", "projectRoot", root)

	var cfg config.Config

	if configSrc != "" {
		data, name, err := config.Fetch(ctx, configSrc)
		if err != nil {
			return State{}, err
		}

		if cfg, err = config.Parse(name, data); err != nil {
			return State{}, err
		}
	} else {
		if cfg, err = config.Load(ctx, config.FsFactory(), root); err != nil {
			return State{}, err
		}
	}

	return State{
		ProjectRoot: root,
		Config:      cfg,
	}, nil
}
