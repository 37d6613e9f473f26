package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"AviatorStats/internal/logger"
	"AviatorStats/internal/model"
)

var log = logger.WithComponent("recorder")

// MemoryPath opens a ledger that lives only as long as the process.
const MemoryPath = ":memory:"

// SQLiteRecorder writes the ledger to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if dbPath == MemoryPath {
		// Every new connection to :memory: gets its own empty database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite ledger opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id           TEXT PRIMARY KEY,
			round_number INTEGER NOT NULL,
			multiplier   REAL NOT NULL,
			occurred_at  INTEGER NOT NULL,
			status       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_number ON rounds(round_number)`,

		`CREATE TABLE IF NOT EXISTS prediction_batches (
			id           TEXT PRIMARY KEY,
			generated_at INTEGER NOT NULL,
			size         INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS predictions (
			id                   TEXT PRIMARY KEY,
			batch_id             TEXT NOT NULL REFERENCES prediction_batches(id),
			position             INTEGER NOT NULL,
			round_number         INTEGER NOT NULL,
			predicted_multiplier REAL NOT NULL,
			confidence           INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_batch ON predictions(batch_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordHistory stores a generated ledger in one transaction.
func (r *SQLiteRecorder) RecordHistory(records []model.RoundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO rounds
		(id, round_number, multiplier, occurred_at, status)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.ID, rec.RoundNumber, rec.Multiplier,
			rec.OccurredAt.UnixMilli(), string(rec.Status)); err != nil {
			return fmt.Errorf("insert round %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// RecordBatch stores a published batch and its predictions in one transaction.
func (r *SQLiteRecorder) RecordBatch(batch model.PredictionBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO prediction_batches (id, generated_at, size) VALUES (?,?,?)`,
		batch.ID, batch.GeneratedAt.UnixMilli(), len(batch.Records)); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	for i, p := range batch.Records {
		if _, err := tx.Exec(`INSERT INTO predictions
			(id, batch_id, position, round_number, predicted_multiplier, confidence)
			VALUES (?,?,?,?,?,?)`,
			p.ID, batch.ID, i, p.RoundNumber, p.PredictedMultiplier, p.Confidence,
		); err != nil {
			return fmt.Errorf("insert prediction %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Totals() (Totals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var t Totals
	err := r.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM rounds),
		(SELECT COUNT(*) FROM prediction_batches),
		(SELECT COUNT(*) FROM predictions)`).Scan(&t.Rounds, &t.Batches, &t.Predictions)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite ledger")
	return r.db.Close()
}
