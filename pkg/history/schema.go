package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the history tables. Timestamps are stored as Unix
// nanoseconds so both SQLite drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS compile_history (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    status TEXT NOT NULL,
    output_hash TEXT NOT NULL,
    includes INTEGER NOT NULL,
    errors INTEGER NOT NULL,
    depth INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    compiled_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_compile_history_compiled_at ON compile_history(compiled_at);
CREATE INDEX IF NOT EXISTS idx_compile_history_source ON compile_history(source);
`

// InsertSchemaVersion records the schema version once.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, ?)
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion returns the newest applied schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const insertRecord = `
INSERT OR REPLACE INTO compile_history (
    id, source, status, output_hash, includes, errors, depth, duration_ns, compiled_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const selectRecords = `
SELECT id, source, status, output_hash, includes, errors, depth, duration_ns, compiled_at
FROM compile_history
`

const deleteBefore = `
DELETE FROM compile_history WHERE compiled_at < ?;
`
