package content

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the immutable, ordered table of site entries.
type Catalog struct {
	entries []Entry
	byID    map[int]int
}

type catalogFile struct {
	Entries []Entry `yaml:"entries"`
}

// NewCatalog validates entries and returns a catalog preserving their order.
func NewCatalog(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[int]int, len(entries)),
	}
	for _, e := range entries {
		e = e.Clone()
		e.Title = strings.TrimSpace(e.Title)
		e.Category = strings.TrimSpace(e.Category)
		if e.Title == "" {
			return nil, fmt.Errorf("%w: entry %d has no title", ErrInvalidEntry, e.ID)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, e.ID)
		}
		if strings.TrimSpace(e.URL) == "" {
			e.URL = AnchorFor(e.Title)
		}
		target, err := ParseTarget(e.URL)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", e.ID, err)
		}
		e.target = target
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("cannot parse catalog: %w", err)
	}
	return NewCatalog(f.Entries)
}

// LoadCatalog reads a YAML catalog from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries in declaration order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}
	return out
}

// Get returns the entry with the given ID.
func (c *Catalog) Get(id int) (Entry, error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return c.entries[i].Clone(), nil
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	var out []string
	for _, e := range c.entries {
		if e.Category != "" && !slices.Contains(out, e.Category) {
			out = append(out, e.Category)
		}
	}
	return out
}

// Featured returns the featured entries in declaration order.
func (c *Catalog) Featured() []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Featured {
			out = append(out, e.Clone())
		}
	}
	return out
}
