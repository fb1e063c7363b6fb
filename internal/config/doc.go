// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config holds the settings of the slogdev commands.
//
// Defaults are compiled in. A project may override them with a
// .slogdev.yaml or a .slogdev.hcl file at the project root, or a file may be
// fetched from any location go-getter understands.
package config
