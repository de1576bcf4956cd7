package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mercator-hq/yamlinc/pkg/include"
)

// ErrNoCompile is reported until the first compile has finished.
var ErrNoCompile = errors.New("no compile has finished yet")

// CompileState remembers the outcome of the most recent compile. Its Check
// method is a CheckFunc that passes only while that outcome is ok.
type CompileState struct {
	mu     sync.RWMutex
	seen   bool
	source string
	status string
	at     time.Time
}

// Observe records a finished compile.
func (s *CompileState) Observe(res include.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen = true
	s.source = res.Source
	s.status = res.Status
	s.at = time.Now()
}

// Check reports whether the last compile succeeded.
func (s *CompileState) Check(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.seen {
		return ErrNoCompile
	}
	if s.status != include.StatusOK {
		return fmt.Errorf("last compile of %s at %s was %s", s.source, s.at.Format(time.RFC3339), s.status)
	}
	return nil
}
