package watch

import (
	"context"
	"log/slog"
	"sync"
)

// Triggers passed to a CompileFunc.
const (
	TriggerInitial  = "initial"
	TriggerChange   = "change"
	TriggerSchedule = "schedule"
)

// CompileFunc performs one compile. It returns every file the compile read
// (so their directories can be watched) and whether it succeeded.
type CompileFunc func(ctx context.Context, trigger string) (files []string, ok bool)

// Options configures a Session.
type Options struct {
	// Watcher configures file watching. Nil uses DefaultConfig.
	Watcher *Config

	// Schedule is an optional cron expression for periodic recompiles.
	Schedule string

	// Hook runs after every successful compile.
	Hook *Hook

	Logger *slog.Logger
}

// Session recompiles on file changes and on schedule until cancelled.
// Compiles never overlap.
type Session struct {
	compile   CompileFunc
	watcher   *FileWatcher
	scheduler *Scheduler
	hook      *Hook
	logger    *slog.Logger

	mu sync.Mutex
}

// NewSession creates a Session around compile.
func NewSession(opts Options, compile CompileFunc) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := NewFileWatcher(opts.Watcher, logger)
	if err != nil {
		return nil, err
	}

	s := &Session{
		compile: compile,
		watcher: watcher,
		hook:    opts.Hook,
		logger:  logger,
	}
	s.scheduler = NewScheduler(opts.Schedule, func(ctx context.Context) {
		s.run(ctx, TriggerSchedule)
	}, logger)

	return s, nil
}

// Run compiles once, then keeps recompiling until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	defer s.watcher.Stop()

	s.run(ctx, TriggerInitial)

	if err := s.scheduler.Start(ctx); err != nil {
		return err
	}
	defer s.scheduler.Stop()

	return s.watcher.Watch(ctx, func(path string) {
		s.logger.Debug("Recompiling after change", "path", path)
		s.run(ctx, TriggerChange)
	})
}

// Watcher returns the underlying file watcher.
func (s *Session) Watcher() *FileWatcher {
	return s.watcher
}

// run performs one compile, extends the watched set and runs the hook.
func (s *Session) run(ctx context.Context, trigger string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	files, ok := s.compile(ctx, trigger)

	if err := s.watcher.Track(files...); err != nil {
		s.logger.Warn("failed to watch source files", "error", err)
	}

	if !ok {
		return
	}
	if err := s.hook.Run(ctx); err != nil {
		s.logger.Error("exec hook failed", "trigger", trigger, "error", err)
	}
}
