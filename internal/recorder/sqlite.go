package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block tick writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS samples (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			user      TEXT NOT NULL,
			words     INTEGER NOT NULL,
			forced    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_user_ts ON samples(user, timestamp)`,

		`CREATE TABLE IF NOT EXISTS pace_alerts (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			user           TEXT NOT NULL,
			needed_per_day INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pace_ts ON pace_alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSample(evt *SampleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	forced := 0
	if evt.Forced {
		forced = 1
	}
	_, err := r.db.Exec(`INSERT INTO samples (timestamp, user, words, forced) VALUES (?,?,?,?)`,
		evt.At.Unix(), evt.User, evt.Words, forced)
	return err
}

func (r *SQLiteRecorder) RecordPaceAlert(evt *PaceAlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO pace_alerts (timestamp, user, needed_per_day) VALUES (?,?,?)`,
		evt.At.Unix(), evt.User, evt.NeededPerDay)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
