// Package provision ensures foreign-key targets exist before dependent rows
// are written: the well-known municipality seeds, the operator user behind a
// mock development identity, and the company row auto-created for a
// COMPANIES-role user publishing their first offer.
package provision

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Seed describes one recognized default municipality.
type Seed struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Department string `yaml:"department"`
	Email      string `yaml:"email"`
}

// Catalog is the closed set of municipality ids the provisioner will
// synthesize. Any id outside it is a validation error, never silently
// accepted.
type Catalog struct {
	order []string
	seeds map[string]Seed
}

type catalogFile struct {
	Municipalities []Seed `yaml:"municipalities"`
}

// LoadCatalog parses the embedded catalog, or the file at path when
// non-empty (deployment override).
func LoadCatalog(path string) (*Catalog, error) {
	raw := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed catalog: %w", err)
		}
		raw = b
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	if len(f.Municipalities) == 0 {
		return nil, fmt.Errorf("seed catalog has no municipalities")
	}

	c := &Catalog{seeds: make(map[string]Seed, len(f.Municipalities))}
	for _, s := range f.Municipalities {
		if s.ID == "" || s.Name == "" || s.Department == "" {
			return nil, fmt.Errorf("seed catalog entry %+v is missing id, name or department", s)
		}
		if _, dup := c.seeds[s.ID]; dup {
			return nil, fmt.Errorf("seed catalog has duplicate id %q", s.ID)
		}
		c.order = append(c.order, s.ID)
		c.seeds[s.ID] = s
	}
	return c, nil
}

// Lookup returns the seed for id, if recognized.
func (c *Catalog) Lookup(id string) (Seed, bool) {
	s, ok := c.seeds[id]
	return s, ok
}

// Default returns the first catalog entry, used when a synthesized company
// has no municipality of its own.
func (c *Catalog) Default() Seed {
	return c.seeds[c.order[0]]
}

// IDs returns every recognized id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}
