// Package registry is the static KPI catalog: which indicators exist, their
// display names, categories, keyword sets, and descriptions. The catalog is
// immutable for a run and its order drives deterministic output ordering.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition describes a single tracked KPI.
type Definition struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    string   `yaml:"category" json:"category"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Description string   `yaml:"description" json:"description"`
}

// Registry is an ordered, read-only KPI catalog.
type Registry struct {
	defs  []Definition
	index map[string]int
}

// New builds a registry from an ordered definition list. Duplicate ids are an
// error since downstream merge-by-id assumes uniqueness.
func New(defs []Definition) (*Registry, error) {
	r := &Registry{defs: defs, index: make(map[string]int, len(defs))}
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("kpi definition %d: missing id", i)
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate kpi id: %s", d.ID)
		}
		r.index[d.ID] = i
	}
	return r, nil
}

// Default returns the built-in catalog: the Energy block followed by the
// Taxation block.
func Default() *Registry {
	r, err := New(builtinDefinitions())
	if err != nil {
		// The built-in table is validated by tests; a failure here is a bug.
		panic(err)
	}
	return r
}

// LoadFile reads a replacement catalog from a YAML file.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var doc struct {
		KPIs []Definition `yaml:"kpis"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if len(doc.KPIs) == 0 {
		return nil, fmt.Errorf("registry %s defines no kpis", path)
	}
	return New(doc.KPIs)
}

// Definitions returns the catalog in registry order.
func (r *Registry) Definitions() []Definition { return r.defs }

// Get looks up a definition by id.
func (r *Registry) Get(id string) (Definition, bool) {
	i, ok := r.index[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Contains reports whether id is a known KPI.
func (r *Registry) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int { return len(r.defs) }

func builtinDefinitions() []Definition {
	return []Definition{
		{
			ID:          "td-losses",
			Name:        "T&D Losses",
			Category:    "Energy",
			Keywords:    []string{"T&D loss", "transmission loss", "distribution loss", "line loss"},
			Description: "Transmission and distribution losses in the power sector",
		},
		{
			ID:          "circular-debt",
			Name:        "Circular Debt",
			Category:    "Energy",
			Keywords:    []string{"circular debt", "power sector debt"},
			Description: "Circular debt crisis in the power sector",
		},
		{
			ID:          "electricity-recovery",
			Name:        "Electricity Recovery",
			Category:    "Energy",
			Keywords:    []string{"electricity recovery", "bill recovery", "power recovery"},
			Description: "Electricity bill recovery and collection rates",
		},
		{
			ID:          "imported-electricity",
			Name:        "Imported Electricity",
			Category:    "Energy",
			Keywords:    []string{"imported electricity", "power import", "energy import"},
			Description: "Electricity imported from neighboring countries",
		},
		{
			ID:          "power-sector",
			Name:        "Power Sector",
			Category:    "Energy",
			Keywords:    []string{"power sector", "electricity sector", "energy sector", "Nepra", "Disco", "IPP"},
			Description: "Overall power sector performance and stability",
		},
		{
			ID:          "fbr-tax",
			Name:        "FBR Tax Collection",
			Category:    "Taxation",
			Keywords:    []string{"FBR", "Federal Board of Revenue", "tax revenue"},
			Description: "Federal Board of Revenue tax collection",
		},
		{
			ID:          "tax-to-gdp",
			Name:        "Tax-to-GDP Ratio",
			Category:    "Taxation",
			Keywords:    []string{"tax-to-GDP", "tax to GDP", "tax GDP ratio"},
			Description: "Tax collection as percentage of GDP",
		},
		{
			ID:          "tax-collection",
			Name:        "Tax Collection",
			Category:    "Taxation",
			Keywords:    []string{"tax collection", "revenue collection", "tax receipts"},
			Description: "Overall tax collection performance",
		},
		{
			ID:          "tax-expenditure",
			Name:        "Tax Expenditure",
			Category:    "Taxation",
			Keywords:    []string{"tax expenditure", "tax exemption", "tax concession"},
			Description: "Tax expenditures and exemptions",
		},
		{
			ID:          "direct-taxes",
			Name:        "Direct Taxes",
			Category:    "Taxation",
			Keywords:    []string{"direct tax", "income tax", "corporate tax"},
			Description: "Direct taxation revenue",
		},
		{
			ID:          "withholding-taxes",
			Name:        "Withholding Taxes",
			Category:    "Taxation",
			Keywords:    []string{"withholding tax", "WHT", "advance tax"},
			Description: "Withholding tax collection",
		},
	}
}
