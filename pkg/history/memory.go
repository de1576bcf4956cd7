package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store, used in tests and when history is
// wanted for the lifetime of a single watch session only.
type MemoryStore struct {
	records map[string]*Record
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

// Save stores a copy of the record.
func (s *MemoryStore) Save(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return NewStorageError("memory", "save", errMissingID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recordCopy := *record
	s.records[record.ID] = &recordCopy

	return nil
}

// List returns copies of matching records, newest first.
func (s *MemoryStore) List(ctx context.Context, query *Query) ([]*Record, error) {
	if query == nil {
		query = &Query{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*Record, 0, len(s.records))
	for _, record := range s.records {
		if matches(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].CompiledAt.Equal(results[j].CompiledAt) {
			return results[i].ID > results[j].ID
		}
		return results[i].CompiledAt.After(results[j].CompiledAt)
	})

	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}

	return results, nil
}

// Prune deletes records compiled before the given time.
func (s *MemoryStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if record.CompiledAt.Before(before) {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func matches(record *Record, query *Query) bool {
	if query.Source != "" && record.Source != query.Source {
		return false
	}
	if query.Status != "" && record.Status != query.Status {
		return false
	}
	if !query.Since.IsZero() && record.CompiledAt.Before(query.Since) {
		return false
	}
	return true
}
