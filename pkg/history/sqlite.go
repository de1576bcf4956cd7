package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"mercator-hq/yamlinc/pkg/config"
)

// Driver names accepted by Open.
const (
	DriverPureGo = "sqlite"  // modernc.org/sqlite, no cgo required
	DriverCgo    = "sqlite3" // github.com/mattn/go-sqlite3
)

// SQLiteConfig contains configuration for the SQLite history store.
type SQLiteConfig struct {
	// Driver is DriverPureGo or DriverCgo.
	// Default: DriverPureGo
	Driver string

	// Path is the database file path. Parent directories are created.
	Path string

	// WALMode enables Write-Ahead Logging so readers do not block a writer.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// Logger receives the store's log output. Nil discards it.
	Logger *slog.Logger
}

// ConfigFromHistory converts the history section of the yamlinc
// configuration into a SQLiteConfig.
func ConfigFromHistory(cfg *config.HistoryConfig, logger *slog.Logger) *SQLiteConfig {
	return &SQLiteConfig{
		Driver:      cfg.Driver,
		Path:        cfg.Path,
		WALMode:     true,
		BusyTimeout: cfg.BusyTimeout,
		Logger:      logger,
	}
}

// SQLiteStore implements Store on SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// OpenSQLite opens (creating if needed) the history database and applies
// the schema.
func OpenSQLite(cfg *SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverPureGo
	}
	if cfg.Driver != DriverPureGo && cfg.Driver != DriverCgo {
		return nil, NewStorageError(cfg.Driver, "open", fmt.Errorf("unknown driver %q", cfg.Driver))
	}
	if cfg.Path == "" {
		return nil, NewStorageError(cfg.Driver, "open", errors.New("database path is required"))
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "history.sqlite")

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError(cfg.Driver, "open", err)
		}
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, NewStorageError(cfg.Driver, "open", err)
	}

	// A single connection keeps pragmas applied and serialises writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:     db,
		config: cfg,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("history store opened",
		"driver", cfg.Driver,
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
	)

	return s, nil
}

// initialize applies pragmas and the schema, then verifies the version.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError(s.config.Driver, "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError(s.config.Driver, "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError(s.config.Driver, "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion, time.Now().UnixNano()); err != nil {
		return NewStorageError(s.config.Driver, "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return NewStorageError(s.config.Driver, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError(s.config.Driver, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Save inserts or replaces a record.
func (s *SQLiteStore) Save(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return NewStorageError(s.config.Driver, "save", errMissingID)
	}

	_, err := s.db.ExecContext(ctx, insertRecord,
		record.ID, record.Source, record.Status, record.OutputHash,
		record.Includes, record.Errors, record.Depth,
		int64(record.Duration), record.CompiledAt.UnixNano(),
	)
	if err != nil {
		return NewStorageError(s.config.Driver, "save", err)
	}

	return nil
}

// List returns matching records, newest first.
func (s *SQLiteStore) List(ctx context.Context, query *Query) ([]*Record, error) {
	if query == nil {
		query = &Query{}
	}

	var (
		where []string
		args  []any
	)
	if query.Source != "" {
		where = append(where, "source = ?")
		args = append(args, query.Source)
	}
	if query.Status != "" {
		where = append(where, "status = ?")
		args = append(args, query.Status)
	}
	if !query.Since.IsZero() {
		where = append(where, "compiled_at >= ?")
		args = append(args, query.Since.UnixNano())
	}

	stmt := selectRecords
	if len(where) > 0 {
		stmt += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	stmt += "ORDER BY compiled_at DESC, id DESC"
	if query.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, query.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewStorageError(s.config.Driver, "list", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			r          Record
			duration   int64
			compiledAt int64
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Status, &r.OutputHash,
			&r.Includes, &r.Errors, &r.Depth, &duration, &compiledAt); err != nil {
			return nil, NewStorageError(s.config.Driver, "scan", err)
		}
		r.Duration = time.Duration(duration)
		r.CompiledAt = time.Unix(0, compiledAt).UTC()
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError(s.config.Driver, "list", err)
	}

	return records, nil
}

// Prune deletes records compiled before the given time.
func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, deleteBefore, before.UnixNano())
	if err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError(s.config.Driver, "prune", err)
	}

	if deleted > 0 {
		s.logger.Debug("pruned history records", "deleted", deleted, "before", before)
	}

	return deleted, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError(s.config.Driver, "close", err)
	}
	return nil
}
