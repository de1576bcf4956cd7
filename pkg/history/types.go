package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"mercator-hq/yamlinc/pkg/include"
)

// Record is a single compile as stored in the history.
type Record struct {
	// ID is the compile ID assigned by the compiler.
	ID string `json:"id" yaml:"id"`

	// Source is the root file path as given on the command line.
	Source string `json:"source" yaml:"source"`

	// Status is the compile status ("ok", "empty", "missing").
	Status string `json:"status" yaml:"status"`

	// OutputHash is the hex SHA-256 of the compiled output.
	OutputHash string `json:"output_hash" yaml:"output_hash"`

	// Includes is the number of files successfully included.
	Includes int `json:"includes" yaml:"includes"`

	// Errors is the number of diagnostics reported.
	Errors int `json:"errors" yaml:"errors"`

	// Depth is the deepest include nesting reached.
	Depth int `json:"depth" yaml:"depth"`

	// Duration is the wall time of the compile.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// CompiledAt is when the compile finished.
	CompiledAt time.Time `json:"compiled_at" yaml:"compiled_at"`
}

// NewRecord builds a Record from a compile result.
func NewRecord(res include.Result, at time.Time) *Record {
	sum := sha256.Sum256([]byte(res.Output))

	errs := 0
	if res.Diagnostics != nil {
		errs = res.Diagnostics.Count()
	}

	return &Record{
		ID:         res.ID,
		Source:     res.Source,
		Status:     res.Status,
		OutputHash: hex.EncodeToString(sum[:]),
		Includes:   len(res.Includes),
		Errors:     errs,
		Depth:      res.Depth,
		Duration:   res.Duration,
		CompiledAt: at.UTC(),
	}
}

// Query filters records returned by Store.List. Zero fields match everything.
type Query struct {
	// Source restricts results to one root file.
	Source string

	// Status restricts results to one compile status.
	Status string

	// Since restricts results to compiles at or after this time.
	Since time.Time

	// Limit caps the number of records returned. Zero means no limit.
	Limit int
}

// Store persists compile records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save stores a record. Saving a record whose ID already exists
	// replaces it.
	Save(ctx context.Context, record *Record) error

	// List returns matching records, newest first.
	List(ctx context.Context, query *Query) ([]*Record, error)

	// Prune deletes records compiled before the given time and returns
	// the number deleted.
	Prune(ctx context.Context, before time.Time) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
