package loader

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"PairScope/internal/model"
)

// Store persists candle series to a SQLite database and implements
// Loader on top of it, as an alternative to the CSV cache.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens (or creates) the SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so an importer can write while an analysis reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite candle store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS candles (
			exchange  TEXT NOT NULL,
			pair      TEXT NOT NULL,
			tick_size TEXT NOT NULL,
			ts        INTEGER NOT NULL,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL,
			volume    REAL,
			PRIMARY KEY (exchange, pair, tick_size, ts)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candles_series ON candles(exchange, pair, tick_size, ts)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *Store) Name() string { return "sqlite" }

// Load reads NumTicks bars for the requested series starting at
// req.Start. Fewer stored bars than requested yields a LoadError.
func (s *Store) Load(req Request) ([]model.OHLCV, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ts, open, high, low, close, volume
		FROM candles
		WHERE exchange = ? AND pair = ? AND tick_size = ? AND ts >= ?
		ORDER BY ts
		LIMIT ?`,
		req.Exchange, req.Pair, req.TickSize, req.Start.UTC().UnixMilli(), req.NumTicks,
	)
	if err != nil {
		return nil, &LoadError{Exchange: req.Exchange, Pair: req.Pair, Err: err}
	}
	defer rows.Close()

	bars := make([]model.OHLCV, 0, req.NumTicks)
	for rows.Next() {
		var ts int64
		var bar model.OHLCV
		if err := rows.Scan(&ts, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, &LoadError{Exchange: req.Exchange, Pair: req.Pair, Err: err}
		}
		bar.Time = time.UnixMilli(ts).UTC()
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Exchange: req.Exchange, Pair: req.Pair, Err: err}
	}
	if len(bars) < req.NumTicks {
		return nil, &LoadError{
			Exchange: req.Exchange,
			Pair:     req.Pair,
			Err:      fmt.Errorf("store holds %d of %d requested ticks", len(bars), req.NumTicks),
		}
	}
	return bars, nil
}

// SaveSeries upserts the given bars for one series.
func (s *Store) SaveSeries(exchange, pair, tickSize string, bars []model.OHLCV) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO candles
		(exchange, pair, tick_size, ts, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(exchange, pair, tickSize,
			b.Time.UTC().UnixMilli(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert candle: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) Close() error {
	log.Println("[INFO] closing sqlite candle store")
	return s.db.Close()
}
