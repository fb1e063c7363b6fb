// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package discovery

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/slogdev/internal/ctxlog"
	"github.com/spf13/afero"
)

// FsFactory creates the filesystem used by NewOS.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

var (
	// ErrNotDirectory is returned when a root directory exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrWalk is returned when a root directory cannot be walked.
	ErrWalk = errors.New("error walking directory")
)

// errStop ends a walk once the consumer stops pulling candidates.
var errStop = errors.New("stop walk")

// Candidate is a file eligible for formatting.
type Candidate struct {
	Path    string // Absolute path
	RelPath string // Path relative to the project root
	Ext     string // Extension including the leading dot
}

// Finder enumerates candidates below a project root.
type Finder struct {
	fs         afero.Fs
	root       string
	extensions map[string]struct{}
}

// New creates a Finder for the project root on the given filesystem.
// Extensions are matched case-sensitively and must include the leading dot.
func New(fs afero.Fs, projectRoot string, extensions []string) *Finder {
	exts := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		exts[e] = struct{}{}
	}

	return &Finder{
		fs:         fs,
		root:       filepath.Clean(projectRoot),
		extensions: exts,
	}
}

// NewOS creates a Finder backed by the filesystem returned by FsFactory.
func NewOS(projectRoot string, extensions []string) *Finder {
	return New(FsFactory(), projectRoot, extensions)
}

// ProjectRoot returns the directory candidates are made relative to.
func (f *Finder) ProjectRoot() string {
	return f.root
}

// Resolve returns the absolute path of a root directory and whether it exists.
// A path that exists but is not a directory reports ErrNotDirectory.
func (f *Finder) Resolve(name string) (string, bool, error) {
	abs := name
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(f.root, name)
	}

	info, err := f.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, false, nil
		}

		return abs, false, err
	}

	if !info.IsDir() {
		return abs, true, fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}

	return abs, true, nil
}

// Matches reports whether a file name carries one of the configured extensions.
func (f *Finder) Matches(name string) bool {
	ext := Ext(name)
	if ext == "" {
		return false
	}

	_, ok := f.extensions[ext]

	return ok
}

// Ext returns the extension of name. A name that is only an extension,
// such as ".cpp", has none.
func Ext(name string) string {
	base := filepath.Base(name)

	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}

	return ext
}

// Candidates walks dir recursively and yields every regular file with a
// configured extension. Symlinks to regular files are accepted; symlinked
// directories below dir are not descended.
//
// Unreadable subtrees are logged and skipped. A failure to read dir itself,
// or cancellation of ctx, is yielded as an error and ends the sequence.
func (f *Finder) Candidates(ctx context.Context, dir string) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		dir = filepath.Clean(dir)
		walkRoot := dir

		// A symlinked root is walked through its target.
		if info, err := lstat(f.fs, dir); err == nil && info.Mode()&os.ModeSymlink != 0 {
			walkRoot = dir + string(filepath.Separator)
		}

		err := afero.Walk(f.fs, walkRoot, func(path string, info os.FileInfo, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			isRoot := filepath.Clean(path) == dir

			if err != nil {
				if isRoot {
					return errors.Join(ErrWalk, err)
				}

				ctxlog.Warn(ctx, "skipping unreadable path", "path", path, "error", err)

				return nil
			}

			if info.IsDir() {
				return nil
			}

			if !f.Matches(info.Name()) {
				return nil
			}

			if info.Mode()&os.ModeSymlink != 0 {
				target, err := f.fs.Stat(path)
				if err != nil || !target.Mode().IsRegular() {
					ctxlog.Debug(ctx, "skipping symlink", "path", path)
					return nil
				}
			} else if !info.Mode().IsRegular() {
				return nil
			}

			c, err := f.candidate(path)
			if err != nil {
				return err
			}

			if !yield(c, nil) {
				return errStop
			}

			return nil
		})

		if err == nil || errors.Is(err, errStop) {
			return
		}

		yield(Candidate{}, err)
	}
}

func (f *Finder) candidate(path string) (Candidate, error) {
	abs := filepath.Clean(path)

	rel, err := filepath.Rel(f.root, abs)
	if err != nil {
		return Candidate{}, fmt.Errorf("%s: %w", abs, err)
	}

	return Candidate{
		Path:    abs,
		RelPath: rel,
		Ext:     Ext(abs),
	}, nil
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}

	return fs.Stat(path)
}
