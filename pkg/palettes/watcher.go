package palettes

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/opd-ai/go-colorspace/internal/config"
)

// fileWatcher monitors palette files and directories for changes and
// triggers reloads.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool // absolute paths of watched files
	dirs     map[string]bool // absolute directories whose palette files are watched
	debounce time.Duration
	onReload func() error
	onError  func(error)

	stopCh    chan struct{}
	stoppedCh chan struct{}
	mu        sync.Mutex
	running   bool
}

// newFileWatcher creates a watcher for the given files and directories.
// onReload is called when one of them changes (after debouncing).
// onError is called when errors occur during watching.
func newFileWatcher(files, dirs []string, debounce time.Duration, onReload func() error, onError func(error)) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	fw := &fileWatcher{
		watcher:   watcher,
		files:     make(map[string]bool),
		dirs:      make(map[string]bool),
		debounce:  debounce,
		onReload:  onReload,
		onError:   onError,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}

	// Watch the directory containing each file, not the file itself.
	// Editors that save by renaming replace the watched inode.
	watched := make(map[string]bool)
	add := func(dir string) error {
		if watched[dir] {
			return nil
		}
		watched[dir] = true
		return watcher.Add(dir)
	}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		fw.files[abs] = true
		if err := add(filepath.Dir(abs)); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		fw.dirs[abs] = true
		if err := add(abs); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	return fw, nil
}

// Start begins watching for file changes in a goroutine.
func (fw *fileWatcher) Start() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.running {
		return
	}
	fw.running = true
	go fw.watchLoop()
}

// Stop stops the file watcher and waits for cleanup.
func (fw *fileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		fw.watcher.Close()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.stoppedCh
}

// relevant reports whether an event path is a watched palette file.
func (fw *fileWatcher) relevant(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if fw.files[abs] {
		return true
	}
	if !fw.dirs[filepath.Dir(abs)] {
		return false
	}
	ext := strings.ToLower(filepath.Ext(abs))
	return ext == config.LegacyExt || ext == config.LuaExt
}

// watchLoop is the main event loop for file watching with debouncing.
func (fw *fileWatcher) watchLoop() {
	defer close(fw.stoppedCh)
	defer fw.watcher.Close()

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-fw.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event.Name) {
				continue
			}
			// Remove matters for directories: a deleted file leaves the registry.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(fw.debounce)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			if fw.onReload != nil {
				if err := fw.onReload(); err != nil && fw.onError != nil {
					fw.onError(err)
				}
			}
			debounceTimer = nil
			debounceCh = nil

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			if fw.onError != nil {
				fw.onError(err)
			}
		}
	}
}
