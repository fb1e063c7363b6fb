// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event is a single progress update.
type Event struct {
	Path      []string  // Hierarchical subject, e.g. ["src", "src/a.cpp"]
	Type      EventType // What happened
	Message   string    // Subject of the event: a path, a directory name or a command line
	Timestamp time.Time // When the event occurred
	Data      EventData // Type-specific data
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventRunStarted is emitted once before any work begins.
	EventRunStarted EventType = iota
	// EventStarted indicates an item is about to be processed.
	EventStarted
	// EventCompleted indicates successful completion of an item.
	EventCompleted
	// EventFailed indicates an item failed.
	EventFailed
	// EventSkipped indicates an item was skipped.
	EventSkipped
	// EventSummary is emitted once after all work has finished.
	EventSummary
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventRunStarted:
		return "run-started"
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	case EventSkipped:
		return "skipped"
	case EventSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// EventData contains type-specific information for progress events.
type EventData struct {
	// For EventFailed
	ExitCode int   // Exit code of the failed command, if any
	Error    error // Error if the item failed

	// For EventSummary
	Count int // Number of items processed successfully
}

// Reporter receives progress events.
type Reporter interface {
	// Report handles one event. It must not block for long: the run waits for it.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// NullReporter discards all events.
type NullReporter struct{}

// Report implements Reporter.
func (NullReporter) Report(Event) {}

// Close implements Reporter.
func (NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return NullReporter{}
}
