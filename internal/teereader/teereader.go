// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

const ellipsis = "..."

// Capture wraps an io.Reader and records what passes through it.
// At most limit bytes are retained; anything beyond that is still read
// (so a writer on the other end of a pipe never blocks) but discarded.
// It is safe for concurrent use.
type Capture struct {
	reader    io.Reader
	buf       bytes.Buffer
	limit     int
	truncated bool
	lastLine  string
	partial   strings.Builder
	mu        sync.RWMutex
}

// New creates a Capture reading from r. A limit <= 0 retains everything.
func New(r io.Reader, limit int) *Capture {
	return &Capture{
		reader: r,
		limit:  limit,
	}
}

// Read implements io.Reader.
func (c *Capture) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	if n > 0 {
		c.mu.Lock()
		c.record(p[:n])
		c.mu.Unlock()
	}

	return n, err //nolint:wrapcheck
}

// Drain reads until EOF and returns the first read error other than io.EOF.
func (c *Capture) Drain() error {
	_, err := io.Copy(io.Discard, c)

	return err //nolint:wrapcheck
}

// record must be called with the write lock held.
func (c *Capture) record(data []byte) {
	switch {
	case c.limit <= 0:
		c.buf.Write(data)
	case c.buf.Len() < c.limit:
		room := c.limit - c.buf.Len()
		if len(data) > room {
			c.buf.Write(data[:room])
			c.truncated = true
		} else {
			c.buf.Write(data)
		}
	default:
		c.truncated = true
	}

	c.partial.Write(data)
	combined := c.partial.String()

	idx := strings.LastIndexByte(combined, '\n')
	if idx < 0 {
		return
	}

	complete := combined[:idx]
	if prev := strings.LastIndexByte(complete, '\n'); prev >= 0 {
		complete = complete[prev+1:]
	}

	c.lastLine = strings.TrimSuffix(complete, "\r")
	c.partial.Reset()
	c.partial.WriteString(combined[idx+1:])
}

// Bytes returns a copy of the retained data.
func (c *Capture) Bytes() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return bytes.Clone(c.buf.Bytes())
}

// Truncated reports whether data beyond the limit was discarded.
func (c *Capture) Truncated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.truncated
}

// LastLine returns the last complete line read, or the trailing partial line
// when the stream ended without a newline.
// If maxLength > 0 the result is cut to maxLength, ending in "...".
func (c *Capture) LastLine(maxLength int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	line := c.lastLine
	if p := c.partial.String(); p != "" {
		line = p
	}

	if maxLength > len(ellipsis) && len(line) > maxLength {
		line = line[:maxLength-len(ellipsis)] + ellipsis
	}

	return line
}
