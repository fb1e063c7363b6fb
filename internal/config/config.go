// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/slogdev/internal/clangformat"
	"github.com/matt-FFFFFF/slogdev/internal/container"
)

var (
	// ErrNoDirs is returned when no directories are configured for formatting.
	ErrNoDirs = errors.New("no directories configured")
	// ErrInvalidDir is returned for an empty or absolute directory.
	ErrInvalidDir = errors.New("directory must be a non-empty project relative path")
	// ErrNoExtensions is returned when no extensions are configured.
	ErrNoExtensions = errors.New("no extensions configured")
	// ErrInvalidExtension is returned for an extension without a leading dot.
	ErrInvalidExtension = errors.New("extension must start with a dot")
	// ErrInvalidMount is returned for a mount with an empty source or target.
	ErrInvalidMount = errors.New("mount source and target must not be empty")
)

// Config is the complete configuration.
type Config struct {
	Format    FormatConfig    `yaml:"format"`
	Container ContainerConfig `yaml:"container"`
}

// FormatConfig configures the format command.
type FormatConfig struct {
	Dirs       []string `yaml:"dirs" hcl:"dirs,optional"`
	Extensions []string `yaml:"extensions" hcl:"extensions,optional"`
	Executable string   `yaml:"executable" hcl:"executable,optional"`
}

// ContainerConfig configures the shell command.
type ContainerConfig struct {
	Runtime string  `yaml:"runtime" hcl:"runtime,optional"`
	Image   string  `yaml:"image" hcl:"image,optional"`
	Workdir string  `yaml:"workdir" hcl:"workdir,optional"`
	Shell   string  `yaml:"shell" hcl:"shell,optional"`
	Mounts  []Mount `yaml:"mounts" hcl:"mount,block"`
}

// Mount is a project relative source mounted at a target below the workdir.
type Mount struct {
	Source string `yaml:"source" hcl:"source"`
	Target string `yaml:"target" hcl:"target"`
}

// Default returns the built-in configuration.
func Default() Config {
	mounts := container.DefaultMounts()
	cm := make([]Mount, len(mounts))

	for i, m := range mounts {
		cm[i] = Mount{Source: m.Source, Target: m.Target}
	}

	return Config{
		Format: FormatConfig{
			Dirs:       []string{"include", "src"},
			Extensions: []string{".cpp", ".hpp", ".ipp"},
			Executable: clangformat.DefaultExecutable,
		},
		Container: ContainerConfig{
			Runtime: container.DefaultRuntime,
			Image:   container.DefaultImage,
			Workdir: container.DefaultWorkdir,
			Shell:   container.DefaultShell,
			Mounts:  cm,
		},
	}
}

// ContainerMounts returns the mount table in the form the launcher uses.
func (c Config) ContainerMounts() []container.Mount {
	out := make([]container.Mount, len(c.Container.Mounts))
	for i, m := range c.Container.Mounts {
		out[i] = container.Mount{Source: m.Source, Target: m.Target}
	}

	return out
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var result *multierror.Error

	if len(c.Format.Dirs) == 0 {
		result = multierror.Append(result, ErrNoDirs)
	}

	for _, d := range c.Format.Dirs {
		if strings.TrimSpace(d) == "" || filepath.IsAbs(d) {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrInvalidDir, d))
		}
	}

	if len(c.Format.Extensions) == 0 {
		result = multierror.Append(result, ErrNoExtensions)
	}

	for _, e := range c.Format.Extensions {
		if len(e) < 2 || !strings.HasPrefix(e, ".") {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrInvalidExtension, e))
		}
	}

	for i, m := range c.Container.Mounts {
		if m.Source == "" || m.Target == "" {
			result = multierror.Append(result, fmt.Errorf("%w: mount %d", ErrInvalidMount, i))
		}
	}

	return result.ErrorOrNil()
}

// overlay returns c with every non-empty field of f applied.
func (c Config) overlay(f file) Config {
	if f.Format != nil {
		if len(f.Format.Dirs) > 0 {
			c.Format.Dirs = f.Format.Dirs
		}

		if len(f.Format.Extensions) > 0 {
			c.Format.Extensions = f.Format.Extensions
		}

		if f.Format.Executable != "" {
			c.Format.Executable = f.Format.Executable
		}
	}

	if f.Container != nil {
		if f.Container.Runtime != "" {
			c.Container.Runtime = f.Container.Runtime
		}

		if f.Container.Image != "" {
			c.Container.Image = f.Container.Image
		}

		if f.Container.Workdir != "" {
			c.Container.Workdir = f.Container.Workdir
		}

		if f.Container.Shell != "" {
			c.Container.Shell = f.Container.Shell
		}

		if len(f.Container.Mounts) > 0 {
			c.Container.Mounts = f.Container.Mounts
		}
	}

	return c
}
