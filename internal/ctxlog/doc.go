// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger writes to stderr through PrettyHandler so that
// diagnostics never interleave with the progress lines the tools print on
// stdout. The level is read from <EXECUTABLE>_LOG_LEVEL, e.g.
// SLOGDEV_LOG_LEVEL=DEBUG.
package ctxlog
