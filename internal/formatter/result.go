// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formatter

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Outcome describes how a root directory was handled.
type Outcome int

const (
	// OutcomeCompleted means every candidate in the directory was formatted.
	OutcomeCompleted Outcome = iota
	// OutcomeStoppedEarly means a failure abandoned the rest of the directory.
	OutcomeStoppedEarly
	// OutcomeSkipped means the directory does not exist.
	OutcomeSkipped
)

// String implements the Stringer interface for Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeStoppedEarly:
		return "stopped-early"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// DirectoryResult is the result of processing one root directory.
type DirectoryResult struct {
	Name      string  // Root directory as configured
	Path      string  // Absolute path
	Outcome   Outcome // How the directory ended
	Formatted int     // Files formatted successfully
	Attempted int     // Files the tool was invoked on
	StoppedAt int     // Zero based index of the failing candidate, -1 if none
	Failed    string  // Path of the failing candidate, if any
	Err       error   // Failure that stopped the directory, if any
}

// RunResult accumulates the results of a whole run.
type RunResult struct {
	Formatted   int
	Directories []DirectoryResult
}

// add returns r with d appended.
func (r RunResult) add(d DirectoryResult) RunResult {
	dirs := make([]DirectoryResult, len(r.Directories), len(r.Directories)+1)
	copy(dirs, r.Directories)

	return RunResult{
		Formatted:   r.Formatted + d.Formatted,
		Directories: append(dirs, d),
	}
}

// HasFailures reports whether any directory stopped early.
func (r RunResult) HasFailures() bool {
	for _, d := range r.Directories {
		if d.Outcome == OutcomeStoppedEarly {
			return true
		}
	}

	return false
}

// Failures returns every failure of the run as a single error, or nil.
func (r RunResult) Failures() error {
	var result *multierror.Error

	for _, d := range r.Directories {
		if d.Err == nil {
			continue
		}

		result = multierror.Append(result, fmt.Errorf("%s: %w", d.Name, d.Err))
	}

	return result.ErrorOrNil()
}
