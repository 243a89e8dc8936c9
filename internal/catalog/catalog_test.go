package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"PairSentinel/internal/model"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stocks.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadAndLookup(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"代號": "2330", "名稱": "台積電", "市場": "上市"},
		{"代號": "6488", "名稱": "環球晶", "市場": "上櫃"},
		{"代號": "", "名稱": "ignored", "市場": "上市"}
	]`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if got := c.Name("2330"); got != "台積電" {
		t.Errorf("Name(2330) = %q, want 台積電", got)
	}
	e, ok := c.Lookup("6488")
	if !ok {
		t.Fatal("Lookup(6488) not found")
	}
	if e.Market != model.MarketTPEx {
		t.Errorf("Lookup(6488).Market = %q, want %q", e.Market, model.MarketTPEx)
	}
}

func TestNameFallsBackToCode(t *testing.T) {
	if got := Empty().Name("9999"); got != "9999" {
		t.Errorf("Name(9999) = %q, want code fallback", got)
	}
}

func TestLoadRejectsNonArray(t *testing.T) {
	path := writeCatalogFile(t, `{"代號": "2330"}`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for non-array JSON")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}
