// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	// FileNameYAML is the YAML configuration file looked for at the project root.
	FileNameYAML = ".slogdev.yaml"
	// FileNameHCL is the HCL configuration file looked for at the project root.
	FileNameHCL = ".slogdev.hcl"
)

var (
	// ErrMultipleConfigFiles is returned when both configuration files exist.
	ErrMultipleConfigFiles = errors.New("only one of " + FileNameYAML + " and " + FileNameHCL + " may exist")
	// ErrInvalidYaml is returned when the YAML file cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidHCL is returned when the HCL file cannot be decoded.
	ErrInvalidHCL = errors.New("invalid HCL")
	// ErrUnknownFormat is returned for a file that is neither YAML nor HCL.
	ErrUnknownFormat = errors.New("unknown configuration file format")
	// ErrReadFile is returned when a configuration file cannot be read.
	ErrReadFile = errors.New("failed to read configuration file")
	// ErrProjectRoot is returned when the project root cannot be determined.
	ErrProjectRoot = errors.New("cannot determine project root")
)

// FsFactory creates the filesystem configuration is read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Executable returns the path of the running binary.
var Executable = os.Executable

// file is the on-disk shape. Absent sections keep their defaults.
type file struct {
	Format    *FormatConfig    `yaml:"format" hcl:"format,block"`
	Container *ContainerConfig `yaml:"container" hcl:"container,block"`
}

// ProjectRoot returns the parent of the directory holding the executable,
// so that <root>/scripts/slogdev resolves to <root>.
func ProjectRoot() (string, error) {
	exe, err := Executable()
	if err != nil {
		return "", errors.Join(ErrProjectRoot, err)
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	abs, err := filepath.Abs(exe)
	if err != nil {
		return "", errors.Join(ErrProjectRoot, err)
	}

	return filepath.Dir(filepath.Dir(abs)), nil
}

// Load returns the defaults overlaid with the project configuration file,
// if there is one.
func Load(ctx context.Context, fs afero.Fs, projectRoot string) (Config, error) {
	yamlPath := filepath.Join(projectRoot, FileNameYAML)
	hclPath := filepath.Join(projectRoot, FileNameHCL)

	yamlExists, err := afero.Exists(fs, yamlPath)
	if err != nil {
		return Config{}, errors.Join(ErrReadFile, err)
	}

	hclExists, err := afero.Exists(fs, hclPath)
	if err != nil {
		return Config{}, errors.Join(ErrReadFile, err)
	}

	var path string

	switch {
	case yamlExists && hclExists:
		return Config{}, ErrMultipleConfigFiles
	case yamlExists:
		path = yamlPath
	case hclExists:
		path = hclPath
	default:
		ctxlog.Debug(ctx, "no configuration file, using defaults", "projectRoot", projectRoot)

		cfg := Default()

		return cfg, cfg.Validate()
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, errors.Join(ErrReadFile, err)
	}

	ctxlog.Debug(ctx, "loading configuration file", "path", path)

	return Parse(path, data)
}

// Parse decodes data as YAML or HCL, chosen by the extension of name, and
// overlays it on the defaults.
func Parse(name string, data []byte) (Config, error) {
	var f file

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidYaml, name, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filepath.Base(name), data, nil, &f); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidHCL, name, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}

	cfg := Default().overlay(f)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", name, err)
	}

	return cfg, nil
}
