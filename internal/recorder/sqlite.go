package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"BitcoinTracker/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists price samples to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_samples (
			id         TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			source     TEXT NOT NULL,
			price      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_samples_symbol_ts ON price_samples(symbol, source, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSample stores one sample. Prices are stored as decimal text so no
// precision is lost on the way back.
func (r *SQLiteRecorder) RecordSample(s *model.PriceSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO price_samples
		(id, timestamp, symbol, source, price)
		VALUES (?,?,?,?,?)`,
		s.ID, s.FetchedAt.UnixMilli(), s.Symbol, s.Source, s.Price.String(),
	)
	return err
}

func (r *SQLiteRecorder) RecentSamples(symbol, source string, since time.Time, limit int) ([]model.PriceSample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, symbol, source, price FROM (
			SELECT * FROM price_samples
			WHERE symbol = ? AND source = ? AND timestamp >= ?
			ORDER BY timestamp DESC, id DESC
			LIMIT ?
		) ORDER BY timestamp ASC, id ASC`,
		symbol, source, since.UnixMilli(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []model.PriceSample
	for rows.Next() {
		var (
			s     model.PriceSample
			ts    int64
			price string
		)
		if err := rows.Scan(&s.ID, &ts, &s.Symbol, &s.Source, &price); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if s.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("sample %s: %w", s.ID, err)
		}
		s.FetchedAt = time.UnixMilli(ts)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
