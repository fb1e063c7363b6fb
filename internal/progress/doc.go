// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress carries run events from the orchestrators to whatever
// displays them. The console reporter renders the line-oriented output of
// the format and shell commands.
package progress
