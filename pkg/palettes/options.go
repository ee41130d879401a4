package palettes

import "time"

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// Options configures a Registry.
type Options struct {
	// Logger receives load, reload and watch messages.
	// If nil, no logging is performed.
	Logger Logger

	// Strict turns validation warnings (undeclared keys, empty files) into
	// load errors.
	Strict bool

	// SkipBuiltin leaves out the embedded default palettes.
	SkipBuiltin bool

	// WatchConfig reloads user palette files when they change on disk.
	// It has no effect for registries created with NewFromFS.
	WatchConfig bool

	// WatchDebounce sets the debounce interval for file change events.
	// Multiple rapid modifications within this window trigger a single
	// reload. Zero means DefaultWatchDebounce.
	WatchDebounce time.Duration

	// ErrorTracker collects categorized load and watch failures.
	// If nil, each registry gets its own tracker.
	ErrorTracker *ErrorTracker
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		WatchDebounce: DefaultWatchDebounce,
	}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
