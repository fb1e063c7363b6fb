// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	getter "github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
)

const (
	getterSubdirSeparator = "//"
	getterQuerySeparator  = "?"
	// A remote source needs at least a scheme, a host and a sub path.
	minGetterParts = 3
)

var (
	// ErrFetch is returned when a configuration file cannot be fetched.
	ErrFetch = errors.New("failed to fetch configuration file")
	// FetchTimeout bounds a single Fetch.
	FetchTimeout = 30 * time.Second
)

// Fetch retrieves a configuration file from a local path or any source
// go-getter supports, for example
// git::https://github.com/org/repo//configs/.slogdev.yaml?ref=main.
// It returns the content and the file name.
func Fetch(ctx context.Context, src string) ([]byte, string, error) {
	if src == "" {
		return nil, "", fmt.Errorf("%w: empty source", ErrFetch)
	}

	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrFetch, err)
	}

	tmpDir, err := os.MkdirTemp("", "slogdev-config-*")
	if err != nil {
		return nil, "", errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "src"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	// go-getter fetches directories, so split the file name off the source.
	var name string

	if ok, err := getter.Detect(req, &getter.FileGetter{}); ok && err == nil {
		abs := src
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(wd, src)
		}

		req.Src = filepath.Dir(abs)
		name = filepath.Base(abs)
	} else {
		if err != nil {
			return nil, "", errors.Join(ErrFetch, err)
		}

		req.Src, name = splitGetterSource(src)
		if req.Src == "" || name == "" {
			return nil, "", fmt.Errorf("%w: source must name a file below a sub path: %s", ErrFetch, src)
		}
	}

	ctxlog.Debug(ctx, "fetching configuration", "source", req.Src, "file", name)

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, "", errors.Join(ErrFetch, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, name))
	if err != nil {
		return nil, "", errors.Join(ErrFetch, err)
	}

	return data, name, nil
}

// splitGetterSource separates the file name from a remote go-getter source,
// keeping any query string on the returned source.
func splitGetterSource(src string) (string, string) {
	parts := strings.Split(src, getterSubdirSeparator)
	if len(parts) < minGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	var query string

	if i := strings.Index(last, getterQuerySeparator); i >= 0 {
		query = last[i:]
		last = last[:i]
	}

	if last == "" || strings.HasSuffix(last, "/") {
		return "", ""
	}

	name := filepath.Base(last)
	dir := filepath.Dir(last)

	if dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	return strings.Join(parts, getterSubdirSeparator) + query, name
}
