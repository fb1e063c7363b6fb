// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formatter

import (
	"context"
	"errors"
	"iter"

	"github.com/matt-FFFFFF/slogdev/internal/discovery"
)

// ErrToolUnavailable is returned by Run when the preflight probe fails.
var ErrToolUnavailable = errors.New("formatter is not installed or not in PATH")

// Tool is a source formatter that rewrites files in place.
type Tool interface {
	// Name is used in progress output.
	Name() string
	// Probe checks that the tool can be run. It is called once per run.
	Probe(ctx context.Context) error
	// FormatInPlace rewrites the file at path.
	FormatInPlace(ctx context.Context, path string) error
}

// Finder resolves root directories and enumerates candidates below them.
// *discovery.Finder satisfies it.
type Finder interface {
	Resolve(name string) (abs string, exists bool, err error)
	Candidates(ctx context.Context, dir string) iter.Seq2[discovery.Candidate, error]
}
