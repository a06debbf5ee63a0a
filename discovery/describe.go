package discovery

import (
	"slices"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/index"
)

// DetailLevel controls how much of an entry Describe returns.
type DetailLevel string

const (
	// DetailSummary returns the listing summary only.
	DetailSummary DetailLevel = "summary"
	// DetailFull adds the full description, keywords and resolved target.
	DetailFull DetailLevel = "full"
)

// Valid reports whether l is a known level.
func (l DetailLevel) Valid() bool {
	return l == DetailSummary || l == DetailFull
}

// EntryDoc is the documentation view of an entry.
type EntryDoc struct {
	Summary index.Summary `json:"summary"`

	// Populated for DetailFull only.
	Description string             `json:"description,omitempty"`
	Keywords    []string           `json:"keywords,omitempty"`
	TargetKind  content.TargetKind `json:"targetKind,omitempty"`
}

func describe(e content.Entry, level DetailLevel) EntryDoc {
	doc := EntryDoc{Summary: index.SummaryOf(e)}
	if level == DetailFull {
		doc.Description = e.Description
		doc.Keywords = slices.Clone(e.Keywords)
		doc.TargetKind = e.Target().Kind
	}
	return doc
}
