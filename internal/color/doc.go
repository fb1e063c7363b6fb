// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decides whether ANSI colour output should be used and wraps
// strings in the matching escape codes.
//
// NO_COLOR disables colour, FORCE_COLOR enables it, otherwise colour is used
// only when stdout is a terminal (detected with golang.org/x/term).
package color
