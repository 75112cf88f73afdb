package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Entry describes one known test: its canonical name, expected unit,
// reference bounds and the patient-facing explanation for out-of-range
// values.
type Entry struct {
	CanonicalName  string  `yaml:"name" json:"name"`
	Unit           string  `yaml:"unit" json:"unit"`
	RefLow         float64 `yaml:"ref_low" json:"ref_low"`
	RefHigh        float64 `yaml:"ref_high" json:"ref_high"`
	ExplanationLow string  `yaml:"explanation_low" json:"explanation_low"`
	ExplanationHigh string `yaml:"explanation_high" json:"explanation_high"`
}

// Catalog is the read-only lookup table the pipeline validates against.
// Build it once at startup and share it freely; it is never mutated after
// construction.
type Catalog struct {
	entries map[string]Entry
	names   []string
}

func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		name := strings.ToLower(strings.TrimSpace(e.CanonicalName))
		if name == "" {
			return nil, fmt.Errorf("catalog entry with empty name")
		}
		if e.RefLow > e.RefHigh {
			return nil, fmt.Errorf("catalog entry %q: ref_low %g > ref_high %g", name, e.RefLow, e.RefHigh)
		}
		if _, exists := c.entries[name]; exists {
			return nil, fmt.Errorf("duplicate catalog entry %q", name)
		}
		e.CanonicalName = name
		c.entries[name] = e
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c, nil
}

func (c *Catalog) Get(name string) (Entry, bool) {
	e, ok := c.entries[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Names returns the canonical names in sorted order. Callers must not
// modify the returned slice.
func (c *Catalog) Names() []string {
	return c.names
}

func (c *Catalog) Len() int {
	return len(c.entries)
}
