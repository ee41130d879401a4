package palettes

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-colorspace/internal/lua"
	"github.com/opd-ai/go-colorspace/pkg/colorspace"
	"github.com/opd-ai/go-colorspace/pkg/palette"
)

var (
	// ErrNotFound is returned for a palette name the registry does not hold.
	ErrNotFound = errors.New("palette not found")

	// ErrClosed is returned by a closed registry.
	ErrClosed = errors.New("registry is closed")
)

// ErrorCategory classifies registry failures.
type ErrorCategory int

const (
	// ErrorCategoryUnknown is the default category for uncategorized errors.
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryConfig is for palette file parsing and validation errors.
	ErrorCategoryConfig
	// ErrorCategoryLua is for Lua palette file execution errors.
	ErrorCategoryLua
	// ErrorCategoryPalette is for rejected palette settings.
	ErrorCategoryPalette
	// ErrorCategoryConversion is for color conversion errors.
	ErrorCategoryConversion
	// ErrorCategoryWatch is for file watcher errors.
	ErrorCategoryWatch
	// ErrorCategoryIO is for file and I/O errors.
	ErrorCategoryIO

	numCategories
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryConfig:
		return "config"
	case ErrorCategoryLua:
		return "lua"
	case ErrorCategoryPalette:
		return "palette"
	case ErrorCategoryConversion:
		return "conversion"
	case ErrorCategoryWatch:
		return "watch"
	case ErrorCategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// Categorize picks the category of err from the sentinel errors it wraps.
// Errors that match nothing are config errors.
func Categorize(err error) ErrorCategory {
	var ce *CategorizedError
	switch {
	case err == nil:
		return ErrorCategoryUnknown
	case errors.As(err, &ce):
		return ce.Category
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ErrorCategoryIO
	case errors.Is(err, lua.ErrCompile), errors.Is(err, lua.ErrExecution), errors.Is(err, lua.ErrLimitExceeded):
		return ErrorCategoryLua
	case errors.Is(err, palette.ErrInvalidSetting), errors.Is(err, palette.ErrUnknownKind):
		return ErrorCategoryPalette
	case errors.Is(err, colorspace.ErrUnsupportedConversion), errors.Is(err, colorspace.ErrAmbiguousConversion),
		errors.Is(err, colorspace.ErrInvalidInput):
		return ErrorCategoryConversion
	}
	return ErrorCategoryConfig
}

// ErrorSeverity indicates the severity level of an error.
type ErrorSeverity int

const (
	// SeverityInfo is for informational messages that don't require action.
	SeverityInfo ErrorSeverity = iota
	// SeverityWarning is for validation warnings.
	SeverityWarning
	// SeverityError is for failures that leave the previous palette set active.
	SeverityError
	// SeverityCritical is for failures that leave the registry unusable.
	SeverityCritical
)

// String returns a human-readable name for the severity level.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// CategorizedError wraps an error with a category, severity and context.
type CategorizedError struct {
	// Err is the underlying error.
	Err error
	// Category classifies the type of error.
	Category ErrorCategory
	// Severity indicates the urgency level.
	Severity ErrorSeverity
	// Timestamp is when the error occurred.
	Timestamp time.Time
	// Context provides additional key-value metadata, such as the file.
	Context map[string]string
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s/%s] (no error)", e.Severity, e.Category)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Severity, e.Category, e.Err.Error())
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// NewCategorizedError creates a new CategorizedError with the given parameters.
func NewCategorizedError(err error, category ErrorCategory, severity ErrorSeverity) *CategorizedError {
	return &CategorizedError{
		Err:       err,
		Category:  category,
		Severity:  severity,
		Timestamp: time.Now(),
		Context:   make(map[string]string),
	}
}

// WithContext adds a key-value pair to the error context and returns the error.
func (e *CategorizedError) WithContext(key, value string) *CategorizedError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// ErrorTracker keeps a bounded window of recent categorized errors and
// lifetime counts per category. Safe for concurrent use.
type ErrorTracker struct {
	mu            sync.RWMutex
	errors        []CategorizedError
	maxErrors     int
	retentionTime time.Duration

	categoryCounters [numCategories]atomic.Int64
}

// ErrorTrackerConfig configures an ErrorTracker.
type ErrorTrackerConfig struct {
	// MaxErrors is the maximum number of errors to retain (default: 100).
	MaxErrors int
	// RetentionTime is how long to retain errors (default: 1 hour).
	RetentionTime time.Duration
}

// DefaultErrorTrackerConfig returns a configuration with sensible defaults.
func DefaultErrorTrackerConfig() ErrorTrackerConfig {
	return ErrorTrackerConfig{
		MaxErrors:     100,
		RetentionTime: time.Hour,
	}
}

// NewErrorTracker creates a new ErrorTracker with the given configuration.
func NewErrorTracker(cfg ErrorTrackerConfig) *ErrorTracker {
	def := DefaultErrorTrackerConfig()
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = def.MaxErrors
	}
	if cfg.RetentionTime <= 0 {
		cfg.RetentionTime = def.RetentionTime
	}
	return &ErrorTracker{
		errors:        make([]CategorizedError, 0, cfg.MaxErrors),
		maxErrors:     cfg.MaxErrors,
		retentionTime: cfg.RetentionTime,
	}
}

// Record adds an error to the tracker.
func (t *ErrorTracker) Record(err *CategorizedError) {
	if err == nil {
		return
	}
	if err.Category >= 0 && err.Category < numCategories {
		t.categoryCounters[err.Category].Add(1)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors = append(t.errors, *err)
	if len(t.errors) > t.maxErrors {
		t.errors = t.errors[len(t.errors)-t.maxErrors:]
	}
	t.pruneExpired()
}

// pruneExpired removes errors older than the retention time.
// Must be called with mu held.
func (t *ErrorTracker) pruneExpired() {
	cutoff := time.Now().Add(-t.retentionTime)
	start := 0
	for start < len(t.errors) && !t.errors[start].Timestamp.After(cutoff) {
		start++
	}
	if start > 0 {
		t.errors = t.errors[start:]
	}
}

// Count returns the lifetime number of errors recorded for category.
func (t *ErrorTracker) Count(category ErrorCategory) int64 {
	if category < 0 || category >= numCategories {
		return 0
	}
	return t.categoryCounters[category].Load()
}

// Stats returns a snapshot of error statistics.
func (t *ErrorTracker) Stats() ErrorStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := ErrorStats{
		TotalErrors:      len(t.errors),
		ErrorsByCategory: make(map[ErrorCategory]int),
		ErrorsBySeverity: make(map[ErrorSeverity]int),
	}
	for _, err := range t.errors {
		stats.ErrorsByCategory[err.Category]++
		stats.ErrorsBySeverity[err.Severity]++
	}
	for c := ErrorCategory(0); c < numCategories; c++ {
		stats.TotalByCategory = append(stats.TotalByCategory, CategoryCount{
			Category: c,
			Count:    t.categoryCounters[c].Load(),
		})
	}
	return stats
}

// RecentErrors returns the most recent errors, up to the specified limit.
func (t *ErrorTracker) RecentErrors(limit int) []CategorizedError {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if limit <= 0 || len(t.errors) == 0 {
		return nil
	}
	start := max(len(t.errors)-limit, 0)
	result := make([]CategorizedError, len(t.errors)-start)
	copy(result, t.errors[start:])
	return result
}

// Clear removes all retained errors. Lifetime counts are kept.
func (t *ErrorTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors = t.errors[:0]
}

// ErrorStats provides a summary of error statistics.
type ErrorStats struct {
	// TotalErrors is the number of errors currently retained.
	TotalErrors int
	// ErrorsByCategory counts retained errors by category.
	ErrorsByCategory map[ErrorCategory]int
	// ErrorsBySeverity counts retained errors by severity.
	ErrorsBySeverity map[ErrorSeverity]int
	// TotalByCategory contains lifetime totals per category.
	TotalByCategory []CategoryCount
}

// CategoryCount pairs a category with its count.
type CategoryCount struct {
	Category ErrorCategory
	Count    int64
}
