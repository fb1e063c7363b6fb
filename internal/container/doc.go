// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package container starts an interactive development shell in a container
// with parts of the project tree bind mounted into it.
package container
