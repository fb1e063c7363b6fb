// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package container

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/slogdev/internal/commandinpath"
	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
)

const (
	// DefaultRuntime is the container runtime executable.
	DefaultRuntime = "docker"
	// DefaultImage is the image repository, the tag is supplied per run.
	DefaultImage = "slog"
	// DefaultWorkdir is where the project is mounted inside the container.
	DefaultWorkdir = "/home/dev/slog"
	// DefaultShell is the command started in the container.
	DefaultShell = "bash"
)

var (
	// ErrEmptyTag is returned when no image tag is given.
	ErrEmptyTag = errors.New("image tag must not be empty")
	// ErrRuntimeNotFound is returned when the container runtime is not on PATH.
	ErrRuntimeNotFound = errors.New("container runtime not found in PATH")
)

// Mount maps a project relative path to a path below the container workdir.
type Mount struct {
	Source string
	Target string
}

// DefaultMounts returns the project paths shared with the development container.
func DefaultMounts() []Mount {
	names := []string{
		"benchmark",
		"cmake",
		"examples",
		"include",
		"scripts",
		"src",
		"tests",
		".clang-format",
		".gitignore",
		"CMakeLists.txt",
		"CMakePresets.json",
		"conanfile.py",
		"LICENSE",
		"README.md",
	}

	mounts := make([]Mount, len(names))
	for i, n := range names {
		mounts[i] = Mount{Source: n, Target: n}
	}

	return mounts
}

// Executor runs name with args attached to the terminal and returns its exit code.
type Executor func(ctx context.Context, name string, args []string) (int, error)

// Launcher builds and runs the container command line.
type Launcher struct {
	Runtime     string
	Image       string
	Workdir     string
	Shell       string
	Mounts      []Mount
	ProjectRoot string
	exec        Executor
}

// New creates a Launcher with the default runtime, image, workdir, shell and mounts.
func New(projectRoot string) *Launcher {
	return NewWithExecutor(projectRoot, defaultExecutor)
}

// NewWithExecutor creates a Launcher that runs commands through exec.
func NewWithExecutor(projectRoot string, exec Executor) *Launcher {
	return &Launcher{
		Runtime:     DefaultRuntime,
		Image:       DefaultImage,
		Workdir:     DefaultWorkdir,
		Shell:       DefaultShell,
		Mounts:      DefaultMounts(),
		ProjectRoot: projectRoot,
		exec:        exec,
	}
}

// Args returns the runtime arguments for tag, without the runtime itself.
func (l *Launcher) Args(tag string) ([]string, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, ErrEmptyTag
	}

	args := make([]string, 0, 3+2*len(l.Mounts)+2)
	args = append(args, "run", "-it", "--rm")

	for _, m := range l.Mounts {
		src := filepath.Join(l.ProjectRoot, m.Source)
		dst := path.Join(l.Workdir, filepath.ToSlash(m.Target))
		args = append(args, "-v", src+":"+dst)
	}

	args = append(args, l.Image+":"+tag)

	if l.Shell != "" {
		args = append(args, l.Shell)
	}

	return args, nil
}

// CommandLine returns the full command as it is printed before running.
func (l *Launcher) CommandLine(tag string) (string, error) {
	args, err := l.Args(tag)
	if err != nil {
		return "", err
	}

	return strings.Join(append([]string{l.Runtime}, args...), " "), nil
}

// Run starts the container and waits for it. The returned code mirrors the
// runtime's exit code; it is -1 when the runtime could not be run to completion.
func (l *Launcher) Run(ctx context.Context, tag string) (int, error) {
	args, err := l.Args(tag)
	if err != nil {
		return -1, err
	}

	ctxlog.Debug(ctx, "starting container", "runtime", l.Runtime, "image", l.Image, "tag", tag)

	code, err := l.exec(ctx, l.Runtime, args)
	if err != nil {
		return code, fmt.Errorf("%s: %w", l.Runtime, err)
	}

	ctxlog.Debug(ctx, "container exited", "exitCode", code)

	return code, nil
}

// defaultExecutor runs the command in the foreground with the terminal attached.
func defaultExecutor(ctx context.Context, name string, args []string) (int, error) {
	cmd := commandinpath.New(name, name, "", args)
	if cmd == nil {
		return -1, fmt.Errorf("%w: %s", ErrRuntimeNotFound, name)
	}

	cmd.Interactive = true

	res := cmd.Run(ctx).First()
	if res.Error != nil {
		return res.ExitCode, res.Error
	}

	return res.ExitCode, nil
}
