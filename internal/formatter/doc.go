// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package formatter applies a source formatting tool to every candidate file
// below a set of root directories.
//
// The Orchestrator checks once that the tool is available, then works through
// the root directories in order. Within a directory the first failure stops
// that directory; the run carries on with the next one.
package formatter
