package content

import (
	"errors"
	"slices"
)

// Error values for catalog construction and lookup.
var (
	ErrInvalidEntry = errors.New("invalid entry")
	ErrDuplicateID  = errors.New("duplicate entry id")
	ErrNotFound     = errors.New("entry not found")
)

// Entry is a static, searchable content record.
type Entry struct {
	ID          int      `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Category    string   `yaml:"category" json:"category"`
	URL         string   `yaml:"url" json:"url"`
	Description string   `yaml:"description" json:"description"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Featured    bool     `yaml:"featured" json:"featured"`

	target Target
}

// Target returns the entry's resolved navigation target.
// It is only populated for entries obtained from a Catalog.
func (e Entry) Target() Target {
	return e.target
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	e.Keywords = slices.Clone(e.Keywords)
	return e
}
