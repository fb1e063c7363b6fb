// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs external processes and reports their outcome as Results.
// An OSCommand either captures the child's stdout and stderr (for tools whose
// diagnostics are surfaced later) or attaches it to the current terminal (for
// interactive sessions). OS signals are forwarded to the child; a second
// signal of the same kind, or cancellation of the context, kills it.
package runbatch
