// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader captures the output stream of a child process.
// It keeps a bounded copy of everything read and remembers the last complete
// line, which is what gets logged when a formatter invocation fails.
package teereader
