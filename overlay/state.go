// Package overlay implements the site search overlay: open/closed state,
// the live query, debounced ranking and result selection.
package overlay

import "github.com/jonwraymond/sitesearch/discovery"

// State is a snapshot of the overlay. The overlay is either open or closed;
// a closed overlay always has an empty query and no results.
type State struct {
	Open    bool
	Query   string
	Results discovery.Results
}

// Opened returns the state after the overlay is opened.
func (s State) Opened() State {
	s.Open = true
	return s
}

// Closed returns the cleared, closed state.
func (s State) Closed() State {
	return State{Results: discovery.Results{}}
}

// WithQuery returns the state after the query changed. Closed overlays
// ignore query changes.
func (s State) WithQuery(q string) State {
	if !s.Open {
		return s
	}
	s.Query = q
	return s
}

// WithResults returns the state with results replaced.
func (s State) WithResults(r discovery.Results) State {
	if !s.Open {
		return s
	}
	s.Results = r
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Results = s.Results.Clone()
	if s.Results == nil {
		s.Results = discovery.Results{}
	}
	return s
}

// Titles lists result titles in rank order.
func (s State) Titles() []string {
	out := make([]string, 0, len(s.Results))
	for _, r := range s.Results {
		out = append(out, r.Summary.Title)
	}
	return out
}
