package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrAlreadyRunning is returned when Watch is called twice.
var ErrAlreadyRunning = errors.New("watcher already running")

// Config contains configuration for the file watcher.
type Config struct {
	// Debounce is the time to wait after the last file event before
	// triggering a recompile (default: 100ms).
	Debounce time.Duration

	// Extensions is the list of file extensions to watch (e.g., ".yml").
	Extensions []string

	// SkipHidden ignores files whose name starts with a dot. Editors
	// write swap and backup files that way.
	SkipHidden bool

	// Ignore lists files whose changes never trigger a recompile, such as
	// the compile's own output.
	Ignore []string
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:   100 * time.Millisecond,
		Extensions: []string{".yml", ".yaml"},
		SkipHidden: true,
	}
}

// FileWatcher watches the directories holding a compile's source files and
// reports debounced changes. Directories are watched non-recursively so
// that editors replacing a file by rename are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer
	ignore   map[string]struct{}

	mu      sync.Mutex
	dirs    map[string]struct{}
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(config *Config, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	ignore := make(map[string]struct{}, len(config.Ignore))
	for _, path := range config.Ignore {
		if abs, err := filepath.Abs(path); err == nil {
			ignore[abs] = struct{}{}
		}
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "watch"),
		config:   config,
		debounce: NewDebouncer(config.Debounce),
		ignore:   ignore,
		dirs:     make(map[string]struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Track starts watching the directory of every given file. A directory is
// watched as itself. Paths already covered are ignored, so Track can be
// called after every compile with the full include list.
func (fw *FileWatcher) Track(paths ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", path, err)
		}

		dir := abs
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			dir = filepath.Dir(abs)
		}

		if _, ok := fw.dirs[dir]; ok {
			continue
		}
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
		fw.dirs[dir] = struct{}{}
		fw.logger.Debug("Watching directory", "path", dir)
	}

	return nil
}

// Dirs returns the watched directories, sorted.
func (fw *FileWatcher) Dirs() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	dirs := make([]string, 0, len(fw.dirs))
	for dir := range fw.dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Watch processes file events until the context is cancelled or Stop is
// called. onChange runs once per burst of events, with the last path seen.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(path string)) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return ErrAlreadyRunning
	}
	fw.running = true
	fw.mu.Unlock()

	defer close(fw.doneCh)

	fw.logger.Info("File watcher started",
		"dirs", len(fw.Dirs()),
		"debounce_ms", fw.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("File watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("File watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			name := event.Name
			fw.debounce.Trigger(func() {
				onChange(name)
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.logger.Error("File watcher error", "error", err)
		}
	}
}

// Stop stops the watcher, cancels any pending callback and releases the
// underlying fsnotify watcher. It is safe to call more than once.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	select {
	case <-fw.stopCh:
		fw.mu.Unlock()
		return nil
	default:
	}
	close(fw.stopCh)
	running := fw.running
	fw.mu.Unlock()

	if running {
		<-fw.doneCh
	}

	fw.debounce.Stop()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// shouldProcessEvent reports whether an event should trigger a recompile.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if abs, err := filepath.Abs(event.Name); err == nil {
		if _, ok := fw.ignore[abs]; ok {
			return false
		}
	}

	base := filepath.Base(event.Name)
	if fw.config.SkipHidden && strings.HasPrefix(base, ".") {
		return false
	}

	return fw.hasValidExtension(strings.ToLower(filepath.Ext(base)))
}

func (fw *FileWatcher) hasValidExtension(ext string) bool {
	for _, validExt := range fw.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}
