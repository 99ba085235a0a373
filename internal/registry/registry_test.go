package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	r := Default()
	if r.Len() != 11 {
		t.Fatalf("expected 11 built-in KPIs, got %d", r.Len())
	}
	// Order is fixed: Energy block first, Taxation block second.
	defs := r.Definitions()
	if defs[0].ID != "td-losses" || defs[0].Category != "Energy" {
		t.Fatalf("unexpected first entry: %+v", defs[0])
	}
	if defs[5].ID != "fbr-tax" || defs[5].Category != "Taxation" {
		t.Fatalf("unexpected sixth entry: %+v", defs[5])
	}
	d, ok := r.Get("circular-debt")
	if !ok || d.Name != "Circular Debt" {
		t.Fatalf("Get(circular-debt) = %+v, %v", d, ok)
	}
	if r.Contains("no-such-kpi") {
		t.Fatalf("Contains should be false for unknown id")
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]Definition{{ID: "a", Name: "A"}, {ID: "a", Name: "A2"}})
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
	_, err = New([]Definition{{Name: "missing id"}})
	if err == nil {
		t.Fatalf("expected missing id error")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kpis.yaml")
	doc := `kpis:
  - id: exports
    name: Export Growth
    category: Trade
    keywords: ["export", "trade surplus"]
    description: Export volume growth
  - id: remittances
    name: Remittances
    category: Trade
    keywords: ["remittance"]
    description: Overseas worker remittances
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}
	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 KPIs, got %d", r.Len())
	}
	if d, _ := r.Get("exports"); d.Name != "Export Growth" || len(d.Keywords) != 2 {
		t.Fatalf("unexpected definition: %+v", d)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("kpis: []\n"), 0o644); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if _, err := LoadFile(empty); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}
