// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package discovery finds the source files that are eligible for formatting.
//
// A Finder resolves root directories against the project root and walks them
// lazily, yielding one Candidate at a time so the caller can stop as soon as
// it no longer needs results.
package discovery
