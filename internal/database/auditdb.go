package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/softaudit/softaudit/internal/model"
)

// dbFileName is the history database file name inside the data directory.
const dbFileName = "softaudit.db"

// timeFormat is how run timestamps are stored. RFC 3339 keeps the column
// sortable as text and round-trips without driver-specific parsing.
const timeFormat = time.RFC3339Nano

// AuditDB provides SQLite-based storage for inventory runs.
//
// Design decision: We store the full inventory as a JSON column next to
// queryable metadata rather than normalizing records into their own
// table. The compare command always needs whole runs, never individual
// records, so a relational record table would only add join overhead.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids lock
	// contention entirely for this workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- Runs store complete inventory snapshots as JSON with queryable metadata
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hostname TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		inventory_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_hostname ON runs(hostname);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata describes one stored run without its records.
type RunMetadata struct {
	// ID is the run's database identifier.
	ID int64

	// Hostname is the machine the inventory was collected from.
	Hostname string

	// Timestamp is when the run was collected.
	Timestamp time.Time

	// RecordCount is the number of records in the run.
	RecordCount int
}

// SaveRun stores an inventory snapshot and returns its run ID.
func (adb *AuditDB) SaveRun(ctx context.Context, inv *model.Inventory) (int64, error) {
	data, err := json.Marshal(inv)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize inventory: %w", err)
	}

	result, err := adb.db.ExecContext(ctx,
		`INSERT INTO runs (hostname, timestamp, record_count, inventory_json) VALUES (?, ?, ?, ?)`,
		inv.Hostname,
		inv.CollectedAt.UTC().Format(timeFormat),
		len(inv.Records),
		string(data),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// ListRuns returns metadata for all stored runs, newest first.
func (adb *AuditDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	rows, err := adb.db.QueryContext(ctx,
		`SELECT id, hostname, timestamp, record_count FROM runs ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var ts string
		if err := rows.Scan(&meta.ID, &meta.Hostname, &ts, &meta.RecordCount); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		meta.Timestamp, err = time.Parse(timeFormat, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp %q: %w", ts, err)
		}
		runs = append(runs, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRunByID retrieves a stored inventory by run ID.
// Returns nil without error when the run does not exist.
func (adb *AuditDB) GetRunByID(ctx context.Context, id int64) (*model.Inventory, error) {
	var data string
	err := adb.db.QueryRowContext(ctx,
		`SELECT inventory_json FROM runs WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %d: %w", id, err)
	}

	var inv model.Inventory
	if err := json.Unmarshal([]byte(data), &inv); err != nil {
		return nil, fmt.Errorf("failed to deserialize run %d: %w", id, err)
	}
	return &inv, nil
}

// GetLatestRuns retrieves up to n stored inventories, newest first.
func (adb *AuditDB) GetLatestRuns(ctx context.Context, n int) ([]*model.Inventory, error) {
	rows, err := adb.db.QueryContext(ctx,
		`SELECT inventory_json FROM runs ORDER BY timestamp DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var inventories []*model.Inventory
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		var inv model.Inventory
		if err := json.Unmarshal([]byte(data), &inv); err != nil {
			return nil, fmt.Errorf("failed to deserialize run: %w", err)
		}
		inventories = append(inventories, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return inventories, nil
}

// GetFirstRunSince retrieves the oldest run collected at or after the
// given time. Returns nil without error when none qualifies.
func (adb *AuditDB) GetFirstRunSince(ctx context.Context, since time.Time) (*model.Inventory, int64, error) {
	var data string
	var id int64
	err := adb.db.QueryRowContext(ctx,
		`SELECT id, inventory_json FROM runs WHERE timestamp >= ? ORDER BY timestamp ASC, id ASC LIMIT 1`,
		since.UTC().Format(timeFormat)).Scan(&id, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query runs since %s: %w", since, err)
	}

	var inv model.Inventory
	if err := json.Unmarshal([]byte(data), &inv); err != nil {
		return nil, 0, fmt.Errorf("failed to deserialize run %d: %w", id, err)
	}
	return &inv, id, nil
}
