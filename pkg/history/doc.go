// Package history records every compile so past builds can be listed and
// compared by output hash.
//
// Two Store implementations are provided: MemoryStore, and SQLiteStore which
// runs on either the pure Go driver (modernc.org/sqlite, registered as
// "sqlite") or the cgo driver (github.com/mattn/go-sqlite3, registered as
// "sqlite3").
//
// # Usage
//
//	store, err := history.OpenSQLite(history.ConfigFromHistory(&cfg.History, logger.Slog()))
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	rec := history.NewRecorder(store, cfg.History.Retention, logger.Slog())
//	if err := rec.Record(ctx, res); err != nil {
//	    return err
//	}
//
//	records, err := store.List(ctx, &history.Query{Limit: 20})
package history
