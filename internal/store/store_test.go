package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *GroupStore {
	t.Helper()
	s, err := NewGroupStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewGroupStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)

	g, err := s.Create("semis", []string{"2330", "2303"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID == "" {
		t.Fatal("Create() returned empty id")
	}

	got, err := s.Get(g.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "semis" {
		t.Errorf("Name = %q, want semis", got.Name)
	}
	if len(got.StockIDs) != 2 || got.StockIDs[0] != "2330" || got.StockIDs[1] != "2303" {
		t.Errorf("StockIDs = %v, want [2330 2303]", got.StockIDs)
	}
}

func TestCreateRejectsBadSize(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Create("single", []string{"2330"}); err == nil {
		t.Error("Create() with 1 stock expected error")
	}
	if _, err := s.Create("six", []string{"a", "b", "c", "d", "e", "f"}); err == nil {
		t.Error("Create() with 6 stocks expected error")
	}
}

func TestListAndDelete(t *testing.T) {
	s := newTestStore(t)

	g1, _ := s.Create("one", []string{"2330", "2303"})
	g2, _ := s.Create("two", []string{"2454", "3008"})

	groups, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("List() returned %d groups, want 2", len(groups))
	}

	if err := s.Delete(g1.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(g1.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Get() after delete error = %v, want sql.ErrNoRows", err)
	}
	if _, err := s.Get(g2.ID); err != nil {
		t.Errorf("Get() for surviving group error = %v", err)
	}

	// Deleting an absent id is not an error.
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestAddStock(t *testing.T) {
	s := newTestStore(t)
	g, _ := s.Create("grp", []string{"2330", "2303"})

	got, err := s.AddStock(g.ID, "2454")
	if err != nil {
		t.Fatalf("AddStock() error = %v", err)
	}
	if len(got.StockIDs) != 3 {
		t.Fatalf("StockIDs = %v, want 3 entries", got.StockIDs)
	}

	// Duplicate add is a no-op.
	got, err = s.AddStock(g.ID, "2454")
	if err != nil {
		t.Fatalf("AddStock() duplicate error = %v", err)
	}
	if len(got.StockIDs) != 3 {
		t.Errorf("duplicate add changed StockIDs = %v", got.StockIDs)
	}

	// Adding past the maximum is a no-op.
	s.AddStock(g.ID, "3008")
	s.AddStock(g.ID, "2603")
	got, err = s.AddStock(g.ID, "2609")
	if err != nil {
		t.Fatalf("AddStock() at cap error = %v", err)
	}
	if len(got.StockIDs) != 5 {
		t.Errorf("add past cap changed StockIDs = %v", got.StockIDs)
	}
}

func TestRemoveStock(t *testing.T) {
	s := newTestStore(t)
	g, _ := s.Create("grp", []string{"2330", "2303", "2454"})

	got, err := s.RemoveStock(g.ID, "2303")
	if err != nil {
		t.Fatalf("RemoveStock() error = %v", err)
	}
	if len(got.StockIDs) != 2 || got.StockIDs[0] != "2330" || got.StockIDs[1] != "2454" {
		t.Errorf("StockIDs = %v, want [2330 2454]", got.StockIDs)
	}

	// Removing an absent stock is a no-op.
	got, err = s.RemoveStock(g.ID, "9999")
	if err != nil {
		t.Fatalf("RemoveStock(absent) error = %v", err)
	}
	if len(got.StockIDs) != 2 {
		t.Errorf("absent remove changed StockIDs = %v", got.StockIDs)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := NewGroupStore(path)
	if err != nil {
		t.Fatalf("NewGroupStore() error = %v", err)
	}
	g, _ := s.Create("kept", []string{"2330", "2303"})
	s.Close()

	s2, err := NewGroupStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(g.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Name != "kept" {
		t.Errorf("Name = %q, want kept", got.Name)
	}
}
