package palettes

import "time"

// Status is a snapshot of a Registry.
type Status struct {
	// Palettes is the number of registered palettes.
	Palettes int
	// Types lists the display groups in load order.
	Types []string
	// Sources lists the user files and directories loaded so far.
	Sources []string
	// LoadedAt is when the current palette set was built.
	LoadedAt time.Time
	// Reloads counts successful reloads.
	Reloads uint64
	// LastError is the most recent load or watch error (nil if none).
	LastError error
	// Watching reports whether user files are watched for changes.
	Watching bool
}

// ErrorHandler is a callback for load and watch errors.
// It is called asynchronously; do not block in the handler.
type ErrorHandler func(err error)

// EventHandler is a callback for registry events.
// It is called asynchronously; do not block in the handler.
type EventHandler func(event Event)

// Event represents a registry event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
}

// EventType enumerates registry event types.
type EventType int

const (
	// EventLoaded is emitted after Load adds user files.
	EventLoaded EventType = iota
	// EventReloaded is emitted after a successful Reload.
	EventReloaded
	// EventError is emitted when a load or reload fails.
	EventError
	// EventClosed is emitted when the registry is closed.
	EventClosed
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventLoaded:
		return "loaded"
	case EventReloaded:
		return "reloaded"
	case EventError:
		return "error"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}
