package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"PairSentinel/internal/model"
)

// GroupStore persists stock groups to a SQLite database.
type GroupStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewGroupStore opens (or creates) the SQLite database and runs migrations.
func NewGroupStore(dbPath string) (*GroupStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &GroupStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] group store opened: %s", dbPath)
	return s, nil
}

func (s *GroupStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stock_groups (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			stock_ids  TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_groups_name ON stock_groups(name)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Create stores a new group. Groups hold between 2 and 5 stocks; the bounds
// are enforced on write so every stored group is analyzable.
func (s *GroupStore) Create(name string, stockIDs []string) (*model.StockGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(stockIDs) < model.GroupMinStocks || len(stockIDs) > model.GroupMaxStocks {
		return nil, fmt.Errorf("group must hold %d to %d stocks, got %d",
			model.GroupMinStocks, model.GroupMaxStocks, len(stockIDs))
	}

	now := time.Now()
	g := &model.StockGroup{
		ID:        uuid.NewString(),
		Name:      name,
		StockIDs:  append([]string(nil), stockIDs...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.insert(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GroupStore) insert(g *model.StockGroup) error {
	ids, err := json.Marshal(g.StockIDs)
	if err != nil {
		return fmt.Errorf("marshal stock ids: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO stock_groups (id, name, stock_ids, created_at, updated_at)
		VALUES (?,?,?,?,?)`,
		g.ID, g.Name, string(ids), g.CreatedAt.Unix(), g.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// Get returns the group with the given id, or sql.ErrNoRows when absent.
func (s *GroupStore) Get(id string) (*model.StockGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT id, name, stock_ids, created_at, updated_at
		FROM stock_groups WHERE id = ?`, id)
	return scanGroup(row)
}

// List returns all groups ordered by creation time.
func (s *GroupStore) List() ([]*model.StockGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, name, stock_ids, created_at, updated_at
		FROM stock_groups ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.StockGroup
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Delete removes a group. Deleting an absent id is not an error.
func (s *GroupStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM stock_groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// AddStock appends a stock to a group. Adding an already present stock is a
// no-op, as is adding to a group that already holds the maximum.
func (s *GroupStore) AddStock(id, stockID string) (*model.StockGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}
	for _, existing := range g.StockIDs {
		if existing == stockID {
			return g, nil
		}
	}
	if len(g.StockIDs) >= model.GroupMaxStocks {
		return g, nil
	}
	g.StockIDs = append(g.StockIDs, stockID)
	if err := s.updateStocks(g); err != nil {
		return nil, err
	}
	return g, nil
}

// RemoveStock drops a stock from a group. Removing an absent stock is a no-op.
func (s *GroupStore) RemoveStock(id, stockID string) (*model.StockGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}
	kept := g.StockIDs[:0]
	for _, existing := range g.StockIDs {
		if existing != stockID {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(g.StockIDs) {
		return g, nil
	}
	g.StockIDs = kept
	if err := s.updateStocks(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GroupStore) getLocked(id string) (*model.StockGroup, error) {
	row := s.db.QueryRow(`SELECT id, name, stock_ids, created_at, updated_at
		FROM stock_groups WHERE id = ?`, id)
	return scanGroup(row)
}

func (s *GroupStore) updateStocks(g *model.StockGroup) error {
	ids, err := json.Marshal(g.StockIDs)
	if err != nil {
		return fmt.Errorf("marshal stock ids: %w", err)
	}
	g.UpdatedAt = time.Now()
	_, err = s.db.Exec(`UPDATE stock_groups SET stock_ids = ?, updated_at = ? WHERE id = ?`,
		string(ids), g.UpdatedAt.Unix(), g.ID)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*model.StockGroup, error) {
	var (
		g       model.StockGroup
		rawIDs  string
		created int64
		updated int64
	)
	if err := row.Scan(&g.ID, &g.Name, &rawIDs, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rawIDs), &g.StockIDs); err != nil {
		return nil, fmt.Errorf("unmarshal stock ids: %w", err)
	}
	g.CreatedAt = time.Unix(created, 0)
	g.UpdatedAt = time.Unix(updated, 0)
	return &g, nil
}

// Close closes the underlying database.
func (s *GroupStore) Close() error {
	log.Println("[INFO] closing group store")
	return s.db.Close()
}
