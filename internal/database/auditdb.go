package database

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nao1215/pwaudit/internal/model"
	"golang.org/x/crypto/argon2"
	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the audit database file name inside the database directory.
const FileName = "audit.db"

// Fingerprint parameters. Memory is in KiB; 19 MiB, two passes and one
// thread is the OWASP minimum for argon2id.
const (
	fingerprintTime    = 2
	fingerprintMemory  = 19 * 1024
	fingerprintThreads = 1
	fingerprintKeyLen  = 32
	saltLen            = 16
	saltMetaKey        = "fingerprint_salt"
)

// timeLayout stores timestamps in UTC with fixed width so they sort as text.
const timeLayout = "2006-01-02 15:04:05.000000000"

// ErrRunNotFound is returned when a run ID is not in the database.
var ErrRunNotFound = errors.New("audit run not found")

// AuditDB stores audit runs in SQLite. Passwords are never stored; each
// record keeps the masked display form and a keyed argon2id fingerprint
// so reuse across runs can be detected.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// salt keys every fingerprint. It is generated once per database.
	salt []byte

	// now returns the timestamp recorded for new runs.
	now func() time.Time
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool

	// Now overrides the clock used for run timestamps. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the audit database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
		now:    opts.Now,
	}
	if adb.now == nil {
		adb.now = time.Now
	}

	ctx := context.Background()

	if opts.EnableWAL {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := adb.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := adb.loadSalt(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load fingerprint salt: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// Path returns the database file path.
func (adb *AuditDB) Path() string {
	return adb.dbPath
}

func (adb *AuditDB) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);

	-- One row per audit invocation with its strength summary
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		total INTEGER NOT NULL,
		weak INTEGER NOT NULL,
		medium INTEGER NOT NULL,
		strong INTEGER NOT NULL,
		common INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

	-- One row per scored password; never the password itself
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		fingerprint TEXT NOT NULL,
		masked TEXT NOT NULL,
		length INTEGER NOT NULL,
		entropy REAL NOT NULL,
		strength TEXT NOT NULL,
		flags TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);
	CREATE INDEX IF NOT EXISTS idx_records_fingerprint ON records(fingerprint);
	`

	_, err := adb.db.ExecContext(ctx, schema)
	return err
}

// loadSalt reads the fingerprint salt, creating it on first use.
func (adb *AuditDB) loadSalt(ctx context.Context) error {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return err
	}

	// INSERT OR IGNORE keeps an existing salt.
	if _, err := adb.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO meta (key, value) VALUES (?, ?)`, saltMetaKey, salt); err != nil {
		return err
	}

	var stored []byte
	if err := adb.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, saltMetaKey).Scan(&stored); err != nil {
		return err
	}
	adb.salt = stored
	return nil
}

// Fingerprint returns the keyed argon2id fingerprint of password as hex.
// The same password always yields the same fingerprint within one database.
func (adb *AuditDB) Fingerprint(password string) string {
	key := argon2.IDKey([]byte(password), adb.salt,
		fingerprintTime, fingerprintMemory, fingerprintThreads, fingerprintKeyLen)
	return hex.EncodeToString(key)
}

// SaveRun stores results as a new run and returns its ID.
func (adb *AuditDB) SaveRun(ctx context.Context, results []model.AnalysisResult) (string, error) {
	records := make([]model.AuditRecord, len(results))
	for i, r := range results {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		records[i] = model.NewAuditRecord(r, adb.Fingerprint(r.Password))
	}

	runID := uuid.NewString()
	summary := model.NewSummary(results)
	createdAt := adb.now().UTC().Format(timeLayout)

	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, created_at, total, weak, medium, strong, common)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, createdAt, summary.Total, summary.Weak, summary.Medium, summary.Strong, summary.Common)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO records (run_id, position, fingerprint, masked, length, entropy, strength, flags)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		flagsJSON, err := json.Marshal(rec.Flags)
		if err != nil {
			return "", fmt.Errorf("failed to serialize flags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			runID, i, rec.Fingerprint, rec.Masked, rec.Length, rec.EntropyBits,
			rec.Strength.String(), string(flagsJSON),
		); err != nil {
			return "", fmt.Errorf("failed to save record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns all runs, newest first, without their records.
func (adb *AuditDB) ListRuns(ctx context.Context) ([]model.AuditRun, error) {
	rows, err := adb.db.QueryContext(ctx, `
	SELECT id, created_at, total, weak, medium, strong, common
	FROM runs
	ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.AuditRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetRun returns one run with its records in input order. Each record's
// SeenBefore counts the earlier runs that contained the same fingerprint.
func (adb *AuditDB) GetRun(ctx context.Context, runID string) (*model.AuditRun, error) {
	row := adb.db.QueryRowContext(ctx, `
	SELECT id, created_at, total, weak, medium, strong, common
	FROM runs
	WHERE id = ?
	`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := adb.db.QueryContext(ctx, `
	SELECT r.fingerprint, r.masked, r.length, r.entropy, r.strength, r.flags,
		(SELECT COUNT(DISTINCT r2.run_id)
		 FROM records r2 JOIN runs u2 ON u2.id = r2.run_id
		 WHERE r2.fingerprint = r.fingerprint AND u2.created_at < u.created_at)
	FROM records r JOIN runs u ON u.id = r.run_id
	WHERE r.run_id = ?
	ORDER BY r.position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec model.AuditRecord
		var strength, flagsJSON string
		if err := rows.Scan(&rec.Fingerprint, &rec.Masked, &rec.Length, &rec.EntropyBits,
			&strength, &flagsJSON, &rec.SeenBefore); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if rec.Strength, err = model.ParseStrength(strength); err != nil {
			return nil, fmt.Errorf("failed to parse record: %w", err)
		}
		if err := json.Unmarshal([]byte(flagsJSON), &rec.Flags); err != nil {
			return nil, fmt.Errorf("failed to parse record flags: %w", err)
		}
		run.Records = append(run.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &run, nil
}

// CountSeen returns the number of runs containing fingerprint.
func (adb *AuditDB) CountSeen(ctx context.Context, fingerprint string) (int, error) {
	var n int
	err := adb.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT run_id) FROM records WHERE fingerprint = ?`, fingerprint).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count fingerprint: %w", err)
	}
	return n, nil
}

// DeleteRun removes a run and its records.
func (adb *AuditDB) DeleteRun(ctx context.Context, runID string) error {
	tx, err := adb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}

	return tx.Commit()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (model.AuditRun, error) {
	var run model.AuditRun
	var createdAt string
	err := s.Scan(&run.ID, &createdAt,
		&run.Summary.Total, &run.Summary.Weak, &run.Summary.Medium, &run.Summary.Strong, &run.Summary.Common)
	if errors.Is(err, sql.ErrNoRows) {
		return run, err
	}
	if err != nil {
		return run, fmt.Errorf("failed to scan run: %w", err)
	}
	run.CreatedAt = parseTimestamp(createdAt)
	return run, nil
}

// timestampFormats contains the timestamp formats accepted when reading.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timeLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// parseTimestamp parses s with the first matching format, or returns the
// zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
