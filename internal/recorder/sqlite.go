package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"PairSentinel/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
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

	// WAL mode for better concurrent read performance.
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
		`CREATE TABLE IF NOT EXISTS attention_records (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			stock_id        TEXT NOT NULL,
			stock_name      TEXT,
			market          TEXT,
			attention_count INTEGER,
			threshold_price INTEGER,
			threshold_type  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attention_ts ON attention_records(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_attention_stock ON attention_records(stock_id)`,

		`CREATE TABLE IF NOT EXISTS disposal_records (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			stock_id         TEXT NOT NULL,
			stock_name       TEXT,
			market           TEXT,
			start_date       TEXT,
			end_date         TEXT,
			interval_minutes INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_disposal_ts ON disposal_records(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_disposal_stock ON disposal_records(stock_id)`,

		`CREATE TABLE IF NOT EXISTS pair_signals (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			group_id         TEXT NOT NULL,
			stock_a          TEXT NOT NULL,
			stock_b          TEXT NOT NULL,
			correlation      REAL,
			current_ratio    REAL,
			mean_ratio       REAL,
			std_dev          REAL,
			z_score          REAL,
			arbitrage_space  REAL,
			co_movement_rate REAL,
			signal_strength  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON pair_signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_group ON pair_signals(group_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSnapshot writes one row per attention and disposal stock in the snapshot.
func (r *SQLiteRecorder) RecordSnapshot(snap *model.DisposalSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, a := range snap.AttentionStocks {
		_, err := r.db.Exec(`INSERT INTO attention_records
			(timestamp, stock_id, stock_name, market, attention_count, threshold_price, threshold_type)
			VALUES (?,?,?,?,?,?,?)`,
			now, a.StockID, a.StockName, string(a.MarketType),
			a.AttentionCount, a.ThresholdPrice, string(a.ThresholdType),
		)
		if err != nil {
			return fmt.Errorf("insert attention record: %w", err)
		}
	}
	for _, d := range snap.DisposalStocks {
		_, err := r.db.Exec(`INSERT INTO disposal_records
			(timestamp, stock_id, stock_name, market, start_date, end_date, interval_minutes)
			VALUES (?,?,?,?,?,?,?)`,
			now, d.StockID, d.StockName, string(d.MarketType),
			d.StartDate, d.EndDate, d.DisposalInterval,
		)
		if err != nil {
			return fmt.Errorf("insert disposal record: %w", err)
		}
	}
	return nil
}

// RecordSignals writes one row per analyzed pair.
func (r *SQLiteRecorder) RecordSignals(groupID string, results []model.PairAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, p := range results {
		_, err := r.db.Exec(`INSERT INTO pair_signals
			(timestamp, group_id, stock_a, stock_b, correlation, current_ratio,
			 mean_ratio, std_dev, z_score, arbitrage_space, co_movement_rate, signal_strength)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			now, groupID, p.StockA, p.StockB,
			p.CorrelationCoef, p.CurrentRatio, p.HistoricalMean, p.HistoricalStdDev,
			p.ZScore, p.ArbitrageSpace, p.CoMovementRate, string(p.SignalStrength),
		)
		if err != nil {
			return fmt.Errorf("insert pair signal: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
