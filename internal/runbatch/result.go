// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"slices"
)

// ResultStatus is the coarse outcome of a run.
type ResultStatus int

const (
	// ResultStatusUnknown means the outcome has not been determined.
	ResultStatusUnknown ResultStatus = iota
	// ResultStatusSuccess means the command exited with a success code and no error.
	ResultStatusSuccess
	// ResultStatusError means the command failed to start, failed, or was killed.
	ResultStatusError
)

// String implements fmt.Stringer.
func (s ResultStatus) String() string {
	switch s {
	case ResultStatusSuccess:
		return "success"
	case ResultStatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of running a command.
type Result struct {
	ExitCode int          // Exit code of the command, -1 if it never started or was killed
	Error    error        // Error, if any
	StdOut   []byte       // Captured stdout, nil for interactive commands
	StdErr   []byte       // Captured stderr, nil for interactive commands
	Label    string       // Label of the command
	Status   ResultStatus // Outcome of the command
}

// Results is a slice of Result pointers, used to represent multiple results.
type Results []*Result

// HasError reports whether any result failed.
func (r Results) HasError() bool {
	return slices.ContainsFunc(r, func(v *Result) bool {
		return v.Status == ResultStatusError || v.Error != nil || v.ExitCode != 0
	})
}

// First returns the first result, or a failed placeholder when r is empty.
func (r Results) First() *Result {
	if len(r) == 0 {
		return &Result{ExitCode: -1, Error: ErrNoResult, Status: ResultStatusError}
	}

	return r[0]
}
