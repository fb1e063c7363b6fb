// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/slogdev/internal/color"
)

// ConsoleReporter writes one human readable line per event.
type ConsoleReporter struct {
	w      io.Writer
	colour bool
	mu     sync.Mutex
	err    error
}

// ConsoleOption configures a ConsoleReporter.
type ConsoleOption func(*ConsoleReporter)

// WithColour forces colour on or off, overriding terminal detection.
func WithColour(enabled bool) ConsoleOption {
	return func(c *ConsoleReporter) {
		c.colour = enabled
	}
}

// NewConsoleReporter creates a ConsoleReporter writing to w.
func NewConsoleReporter(w io.Writer, opts ...ConsoleOption) *ConsoleReporter {
	c := &ConsoleReporter{
		w:      w,
		colour: color.Enabled(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *ConsoleReporter) label(s string, code color.Code) string {
	if !c.colour {
		return s
	}

	return color.Wrap(s, color.Bold, code)
}

// Line renders an event the way the console reporter prints it, without the newline.
// It returns "" for events that are not printed.
func (c *ConsoleReporter) Line(e Event) string {
	switch e.Type {
	case EventRunStarted:
		return c.label("RUNNING:", color.FgCyan) + " " + e.Message
	case EventStarted:
		return c.label("FORMATTING:", color.FgBlue) + " " + e.Message
	case EventFailed:
		line := c.label("FAILED", color.FgRed) + " to format " + e.Message
		if e.Data.Error != nil {
			line += ": " + strings.TrimRight(e.Data.Error.Error(), "\n")
		}

		return line
	case EventSkipped:
		return c.label("SKIPPING", color.FgYellow) + " missing directory: " + e.Message
	case EventSummary:
		return c.label("DONE.", color.FgGreen) + fmt.Sprintf(" Processed %d files.", e.Data.Count)
	default:
		return ""
	}
}

// Report implements Reporter.
func (c *ConsoleReporter) Report(e Event) {
	line := c.Line(e)
	if line == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintln(c.w, line); err != nil && c.err == nil {
		c.err = err
	}
}

// Close implements Reporter.
func (c *ConsoleReporter) Close() {}

// Err returns the first write error, if any.
func (c *ConsoleReporter) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.err
}
