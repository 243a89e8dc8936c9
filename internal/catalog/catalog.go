package catalog

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"PairSentinel/internal/model"
)

// Entry describes one listed security.
type Entry struct {
	Code   string
	Name   string
	Market model.MarketType
}

// Catalog is an immutable code-to-name lookup loaded once at startup.
type Catalog struct {
	entries map[string]Entry
}

// Load reads the security list from a JSON file. Each element carries the
// fields 代號 (code), 名稱 (name) and 市場 (market).
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("parse catalog %s: expected a JSON array", path)
	}

	entries := make(map[string]Entry)
	for _, item := range parsed.Array() {
		code := item.Get("代號").String()
		if code == "" {
			continue
		}
		market := model.MarketTWSE
		if item.Get("市場").String() == "上櫃" {
			market = model.MarketTPEx
		}
		entries[code] = Entry{
			Code:   code,
			Name:   item.Get("名稱").String(),
			Market: market,
		}
	}
	return &Catalog{entries: entries}, nil
}

// Empty returns a catalog with no entries. Name lookups fall back to the code.
func Empty() *Catalog {
	return &Catalog{entries: map[string]Entry{}}
}

// Name returns the display name for a stock code, or the code itself when
// the catalog has no entry for it.
func (c *Catalog) Name(code string) string {
	if e, ok := c.entries[code]; ok && e.Name != "" {
		return e.Name
	}
	return code
}

// Lookup returns the full entry for a code.
func (c *Catalog) Lookup(code string) (Entry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

// Len reports the number of loaded entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
