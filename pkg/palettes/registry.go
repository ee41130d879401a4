package palettes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"

	"github.com/opd-ai/go-colorspace/internal/config"
	"github.com/opd-ai/go-colorspace/pkg/palette"
)

// Entry is a registered palette.
type Entry struct {
	// Name is the palette name as written in its file.
	Name string
	// Type is the display group of the defining file.
	Type string
	// Method is the generator method of the defining file.
	Method string
	// Source is the defining file, "builtin:<file>" for embedded palettes.
	Source string
	// Settings is the raw definition as read from the file.
	Settings map[string]any
	// Palette is the validated palette.
	Palette *palette.Palette
}

// Desc returns the palette description, if any.
func (e Entry) Desc() string {
	return e.Palette.Settings().Desc
}

// paletteSet is an immutable snapshot of loaded palettes.
type paletteSet struct {
	byName   map[string]*Entry
	order    []*Entry
	types    []string
	loadedAt time.Time
}

// foldName is the lookup key of a palette name. Casers are stateful, so
// each call gets its own.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// add registers e. A palette whose name is already taken replaces the
// earlier one in place.
func (s *paletteSet) add(e *Entry, logger Logger) {
	key := foldName(e.Name)
	prev, ok := s.byName[key]
	s.byName[key] = e
	if !ok {
		s.order = append(s.order, e)
		return
	}
	logger.Info("palette overridden", "name", e.Name, "source", e.Source, "previous", prev.Source)
	for i, o := range s.order {
		if o == prev {
			s.order[i] = e
			break
		}
	}
}

func (s *paletteSet) finish() {
	seen := make(map[string]bool)
	for _, e := range s.order {
		if !seen[e.Type] {
			seen[e.Type] = true
			s.types = append(s.types, e.Type)
		}
	}
}

// Registry holds named palettes: the embedded defaults plus user palette
// files. It is safe for concurrent use; lookups never block on a reload.
type Registry struct {
	opts    Options
	logger  Logger
	tracker *ErrorTracker
	fsys    fs.FS

	// loadMu serializes Load and Reload.
	loadMu sync.Mutex

	mu           sync.RWMutex
	set          *paletteSet
	sources      []string
	closed       bool
	lastErr      error
	errorHandler ErrorHandler
	eventHandler EventHandler

	watchMu sync.Mutex
	watcher *fileWatcher

	reloads atomic.Uint64
}

// New creates a registry holding the embedded default palettes. User
// files are added with Load.
func New(opts *Options) (*Registry, error) {
	return newRegistry(nil, opts)
}

// NewFromFS creates a registry whose user palette files are read from fsys,
// such as an embed.FS. paths may name files or directories inside fsys.
func NewFromFS(fsys fs.FS, paths []string, opts *Options) (*Registry, error) {
	if fsys == nil {
		return nil, errors.New("palettes: nil filesystem")
	}
	r, err := newRegistry(fsys, opts)
	if err != nil {
		return nil, err
	}
	if len(paths) > 0 {
		if err := r.Load(paths...); err != nil {
			r.Close()
			return nil, err
		}
	}
	return r, nil
}

func newRegistry(fsys fs.FS, opts *Options) (*Registry, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.WatchDebounce <= 0 {
		o.WatchDebounce = DefaultWatchDebounce
	}
	if o.Logger == nil {
		o.Logger = NopLogger()
	}
	if o.ErrorTracker == nil {
		o.ErrorTracker = NewErrorTracker(DefaultErrorTrackerConfig())
	}

	r := &Registry{
		opts:    o,
		logger:  o.Logger,
		tracker: o.ErrorTracker,
		fsys:    fsys,
	}
	set, err := r.build(nil)
	if err != nil {
		r.tracker.Record(asCategorized(err))
		return nil, err
	}
	r.set = set
	r.logger.Debug("palette registry ready", "palettes", len(set.order), "types", len(set.types))
	return r, nil
}

// Load adds user palette files. Each path is a palette file or a directory
// whose .conf and .lua files are loaded in name order. Palettes replace
// earlier ones of the same name. On error nothing changes.
func (r *Registry) Load(paths ...string) error {
	r.loadMu.Lock()
	r.mu.RLock()
	closed := r.closed
	sources := append(slices.Clone(r.sources), paths...)
	r.mu.RUnlock()
	if closed {
		r.loadMu.Unlock()
		return ErrClosed
	}

	set, err := r.build(sources)
	if err != nil {
		r.loadMu.Unlock()
		r.fail(err)
		return err
	}
	r.mu.Lock()
	r.set = set
	r.sources = sources
	r.mu.Unlock()
	r.loadMu.Unlock()

	r.logger.Info("palettes loaded", "paths", paths, "palettes", len(set.order))
	r.emitEvent(EventLoaded, fmt.Sprintf("loaded %d palettes", len(set.order)))

	if r.opts.WatchConfig && r.fsys == nil {
		return r.watch()
	}
	return nil
}

// Reload re-reads the embedded defaults and every loaded user path. A
// failed reload keeps the previous palettes.
func (r *Registry) Reload() error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()

	r.mu.RLock()
	closed := r.closed
	sources := slices.Clone(r.sources)
	r.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	set, err := r.build(sources)
	if err != nil {
		err = fmt.Errorf("palette reload failed: %w", err)
		r.fail(err)
		return err
	}
	r.mu.Lock()
	r.set = set
	r.mu.Unlock()
	r.reloads.Add(1)

	r.logger.Info("palettes reloaded", "palettes", len(set.order))
	r.emitEvent(EventReloaded, fmt.Sprintf("reloaded %d palettes", len(set.order)))
	return nil
}

// build parses, validates and builds a complete palette set.
func (r *Registry) build(sources []string) (*paletteSet, error) {
	var files []*config.PaletteFile
	if !r.opts.SkipBuiltin {
		builtin, err := config.Builtin()
		if err != nil {
			return nil, NewCategorizedError(err, ErrorCategoryConfig, SeverityCritical).WithContext("file", config.BuiltinPrefix)
		}
		files = append(files, builtin...)
	}

	if len(sources) > 0 {
		paths, err := r.expand(sources)
		if err != nil {
			return nil, NewCategorizedError(err, ErrorCategoryIO, SeverityError)
		}
		parser, err := config.NewParser()
		if err != nil {
			return nil, NewCategorizedError(err, ErrorCategoryLua, SeverityCritical)
		}
		defer parser.Close()

		for _, p := range paths {
			var f *config.PaletteFile
			if r.fsys != nil {
				f, err = parser.ParseFromFS(r.fsys, p)
			} else {
				f, err = parser.ParseFile(p)
			}
			if err != nil {
				return nil, loadError(err, p)
			}
			files = append(files, f)
		}
	}

	validator := config.NewValidator().WithStrictMode(r.opts.Strict)
	set := &paletteSet{byName: make(map[string]*Entry), loadedAt: time.Now()}
	for _, f := range files {
		result := validator.Validate(f)
		for _, w := range result.Warnings {
			r.logger.Warn("palette file warning", "file", f.Source, "field", w.Field, "message", w.Message)
		}
		if err := result.Error(); err != nil {
			return nil, loadError(fmt.Errorf("%s: %w", f.Source, err), f.Source)
		}
		for _, d := range f.Palettes {
			p, err := d.Build(f.Method)
			if err != nil {
				return nil, loadError(fmt.Errorf("%s: %w", f.Source, err), f.Source)
			}
			set.add(&Entry{
				Name:     d.Name,
				Type:     f.Type,
				Method:   f.Method,
				Source:   f.Source,
				Settings: d.Settings,
				Palette:  p,
			}, r.logger)
		}
	}
	set.finish()
	return set, nil
}

func loadError(err error, file string) *CategorizedError {
	return NewCategorizedError(err, Categorize(err), SeverityError).WithContext("file", file)
}

// expand replaces directories by the palette files they contain.
func (r *Registry) expand(sources []string) ([]string, error) {
	var out []string
	for _, src := range sources {
		if r.fsys != nil {
			files, err := expandFS(r.fsys, src)
			if err != nil {
				return nil, err
			}
			out = append(out, files...)
			continue
		}

		info, err := os.Stat(src)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, src)
			continue
		}
		files, err := config.FindPaletteFiles([]string{src})
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

func expandFS(fsys fs.FS, src string) ([]string, error) {
	info, err := fs.Stat(fsys, src)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{src}, nil
	}
	entries, err := fs.ReadDir(fsys, src)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		ext := strings.ToLower(path.Ext(e.Name()))
		if !e.IsDir() && (ext == config.LegacyExt || ext == config.LuaExt) {
			out = append(out, path.Join(src, e.Name()))
		}
	}
	return out, nil
}

// watch (re)starts the file watcher over the loaded user paths.
func (r *Registry) watch() error {
	r.watchMu.Lock()
	defer r.watchMu.Unlock()

	r.mu.RLock()
	closed := r.closed
	sources := slices.Clone(r.sources)
	r.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	if r.watcher != nil {
		r.watcher.Stop()
		r.watcher = nil
	}

	var files, dirs []string
	for _, src := range sources {
		if info, err := os.Stat(src); err == nil && info.IsDir() {
			dirs = append(dirs, src)
		} else {
			files = append(files, src)
		}
	}
	if len(files) == 0 && len(dirs) == 0 {
		return nil
	}

	w, err := newFileWatcher(files, dirs, r.opts.WatchDebounce, r.Reload, r.watchError)
	if err != nil {
		ce := NewCategorizedError(fmt.Errorf("watch palette files: %w", err), ErrorCategoryWatch, SeverityError)
		r.fail(ce)
		return ce
	}
	r.watcher = w
	w.Start()
	r.logger.Debug("watching palette files", "files", len(files), "dirs", len(dirs))
	return nil
}

// watchError handles errors reported by the watcher goroutine. Reload
// failures are already reported by Reload itself.
func (r *Registry) watchError(err error) {
	var ce *CategorizedError
	if errors.Is(err, ErrClosed) || errors.As(err, &ce) {
		return
	}
	r.fail(NewCategorizedError(err, ErrorCategoryWatch, SeverityWarning))
}

func asCategorized(err error) *CategorizedError {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce
	}
	return NewCategorizedError(err, Categorize(err), SeverityError)
}

// fail records err, logs it and notifies the error handler.
func (r *Registry) fail(err error) {
	ce := asCategorized(err)
	r.tracker.Record(ce)

	r.mu.Lock()
	r.lastErr = err
	handler := r.errorHandler
	r.mu.Unlock()

	r.logger.Error("palette registry error",
		"category", ce.Category.String(), "severity", ce.Severity.String(),
		"file", ce.Context["file"], "error", err)

	if handler != nil {
		go func() {
			defer func() {
				if p := recover(); p != nil {
					r.logger.Error("error handler panicked", "panic", p, "original_error", err)
				}
			}()
			handler(err)
		}()
	}
	r.emitEvent(EventError, err.Error())
}

// emitEvent sends an event to the event handler if configured.
func (r *Registry) emitEvent(eventType EventType, message string) {
	r.mu.RLock()
	handler := r.eventHandler
	r.mu.RUnlock()
	if handler == nil {
		return
	}

	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("event handler panicked", "panic", p, "event", eventType.String())
			}
		}()
		handler(Event{Type: eventType, Timestamp: time.Now(), Message: message})
	}()
}

// SetErrorHandler registers a callback for load and watch errors.
func (r *Registry) SetErrorHandler(handler ErrorHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorHandler = handler
}

// SetEventHandler registers a callback for registry events.
func (r *Registry) SetEventHandler(handler EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.eventHandler = handler
}

func (r *Registry) snapshot() *paletteSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.set
}

func (e *Entry) clone() Entry {
	c := *e
	c.Settings = maps.Clone(e.Settings)
	return c
}

// Get returns the palette with the given name. Names are compared
// case-insensitively.
func (r *Registry) Get(name string) (Entry, error) {
	e, ok := r.snapshot().byName[foldName(name)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e.clone(), nil
}

// Names returns the names of all palettes of the given kind, sorted
// case-insensitively. A zero kind lists every palette.
func (r *Registry) Names(kind palette.Kind) []string {
	var names []string
	for _, e := range r.snapshot().order {
		if kind == 0 || e.Palette.Kind() == kind {
			names = append(names, e.Name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(foldName(a), foldName(b))
	})
	return names
}

// Types returns the display groups in load order.
func (r *Registry) Types() []string {
	return slices.Clone(r.snapshot().types)
}

// ByType returns the palettes of a display group in load order.
func (r *Registry) ByType(typ string) ([]Entry, error) {
	var out []Entry
	for _, e := range r.snapshot().order {
		if strings.EqualFold(e.Type, typ) {
			out = append(out, e.clone())
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no palettes of type %q", ErrNotFound, typ)
	}
	return out, nil
}

// Entries returns every palette in load order.
func (r *Registry) Entries() []Entry {
	set := r.snapshot()
	out := make([]Entry, len(set.order))
	for i, e := range set.order {
		out[i] = e.clone()
	}
	return out
}

// Colors generates n hex colors from the named palette. Fields set in
// overrides replace the stored settings. n <= 0 uses the palette's n
// setting, or palette.DefaultN.
func (r *Registry) Colors(name string, n int, overrides palette.Settings) ([]string, error) {
	e, ok := r.snapshot().byName[foldName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	p := e.Palette
	if len(overrides.Keys()) > 0 {
		var err error
		if p, err = p.With(overrides); err != nil {
			return nil, fmt.Errorf("palette %q: %w", e.Name, err)
		}
	}
	if n <= 0 {
		n = p.N()
	}
	return p.Colors(n)
}

// Status returns a snapshot of the registry state.
func (r *Registry) Status() Status {
	r.mu.RLock()
	st := Status{
		Palettes:  len(r.set.order),
		Types:     slices.Clone(r.set.types),
		Sources:   slices.Clone(r.sources),
		LoadedAt:  r.set.loadedAt,
		LastError: r.lastErr,
	}
	r.mu.RUnlock()

	r.watchMu.Lock()
	st.Watching = r.watcher != nil
	r.watchMu.Unlock()
	st.Reloads = r.reloads.Load()
	return st
}

// ErrorTracker returns the tracker recording this registry's failures.
func (r *Registry) ErrorTracker() *ErrorTracker {
	return r.tracker
}

// Close stops watching. Lookups keep working on the last palette set;
// Load and Reload return ErrClosed. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.watchMu.Lock()
	if r.watcher != nil {
		r.watcher.Stop()
		r.watcher = nil
	}
	r.watchMu.Unlock()

	r.emitEvent(EventClosed, "registry closed")
	return nil
}
