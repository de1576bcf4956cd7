package history

import (
	"context"
	"log/slog"
	"time"

	"mercator-hq/yamlinc/pkg/include"
)

// Recorder saves compile results to a Store and enforces retention.
type Recorder struct {
	store     Store
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewRecorder creates a Recorder. A zero retention keeps records forever.
// A nil logger discards the recorder's log output.
func NewRecorder(store Store, retention time.Duration, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{
		store:     store,
		retention: retention,
		now:       time.Now,
		logger:    logger.With("component", "history.recorder"),
	}
}

// Record saves the result and, when retention is set, prunes records that
// have aged out. A pruning failure is logged, not returned.
func (r *Recorder) Record(ctx context.Context, res include.Result) error {
	now := r.now()

	if err := r.store.Save(ctx, NewRecord(res, now)); err != nil {
		return err
	}

	if r.retention <= 0 {
		return nil
	}

	cutoff := now.Add(-r.retention)
	deleted, err := r.store.Prune(ctx, cutoff)
	if err != nil {
		r.logger.Warn("failed to prune history", "error", err)
		return nil
	}
	if deleted > 0 {
		r.logger.Debug("history pruned", "deleted", deleted, "cutoff", cutoff)
	}

	return nil
}
