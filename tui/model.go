// Package tui renders the search overlay in the terminal with Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/discovery"
	"github.com/jonwraymond/sitesearch/overlay"
	"github.com/jonwraymond/sitesearch/widget"
)

// Selection is the entry chosen by the user.
type Selection struct {
	Result discovery.Result
	Target content.Target
}

type searchTickMsg struct {
	seq   int
	query string
}

type resultsMsg struct {
	seq     int
	results discovery.Results
	err     error
}

// Model is the Bubble Tea model of the overlay.
type Model struct {
	ctx      context.Context
	engine   overlay.Engine
	theme    *widget.ThemeHandle
	styles   Styles
	debounce time.Duration
	limit    int

	input   textinput.Model
	seq     int
	results discovery.Results
	cursor  int
	err     error

	selection *Selection
	quitting  bool
}

// Options configures a Model.
type Options struct {
	Debounce time.Duration
	Limit    int
	Query    string
}

// New returns an overlay model searching engine.
func New(ctx context.Context, engine overlay.Engine, theme *widget.ThemeHandle, opts Options) Model {
	if opts.Debounce <= 0 {
		opts.Debounce = overlay.DefaultDebounce
	}
	if theme == nil {
		theme = widget.NewThemeHandle(widget.Light)
	}
	ti := textinput.New()
	ti.Placeholder = "Search pages, products and sections..."
	ti.CharLimit = 120
	ti.Width = 60
	ti.Focus()
	ti.SetValue(opts.Query)

	return Model{
		ctx:      ctx,
		engine:   engine,
		theme:    theme,
		styles:   StylesFor(theme.Current()),
		debounce: opts.Debounce,
		limit:    opts.Limit,
		input:    ti,
	}
}

// Init schedules the initial search when a query was preset.
func (m Model) Init() tea.Cmd {
	if m.input.Value() == "" {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.schedule())
}

func (m *Model) schedule() tea.Cmd {
	m.seq++
	seq, q := m.seq, m.input.Value()
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: q}
	})
}

func (m Model) search(seq int, q string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.engine.Search(m.ctx, q, m.limit)
		return resultsMsg{seq: seq, results: results, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "ctrl+t":
			m.styles = StylesFor(m.theme.Toggle())
			return m, nil
		case "enter":
			if len(m.results) == 0 {
				return m, nil
			}
			r := m.results[m.cursor]
			target, err := content.ParseTarget(r.Summary.URL)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.selection = &Selection{Result: r, Target: target}
			return m, tea.Quit
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() == before {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.schedule())

	case searchTickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m, m.search(msg.seq, msg.query)

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.err = msg.err
		m.results = msg.results
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the overlay.
func (m Model) View() string {
	if m.quitting || m.selection != nil {
		return ""
	}
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Prompt.Render("Search") + " " + m.input.View() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(s.Error.Render(m.err.Error()) + "\n")
	case len(m.results) == 0 && strings.TrimSpace(m.input.Value()) != "":
		b.WriteString(s.Muted.Render("No results") + "\n")
	}
	for i, r := range m.results {
		line := fmt.Sprintf("%-40s %s", r.Summary.Title, s.Category.Render(r.Summary.Category))
		if i == m.cursor {
			line = s.Selected.Render("> " + r.Summary.Title)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + s.Muted.Render("↑/↓ move · enter open · ctrl+t theme · esc close"))
	return s.Frame.Render(b.String())
}

// Selection returns the chosen entry, if any.
func (m Model) Selection() (Selection, bool) {
	if m.selection == nil {
		return Selection{}, false
	}
	return *m.selection, true
}

// Results returns the displayed results.
func (m Model) Results() discovery.Results { return m.results }

// Run runs the overlay until the user selects an entry or closes it.
func Run(ctx context.Context, engine overlay.Engine, theme *widget.ThemeHandle, opts Options) (Selection, bool, error) {
	p := tea.NewProgram(New(ctx, engine, theme, opts), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Selection{}, false, err
	}
	sel, ok := final.(Model).Selection()
	return sel, ok, nil
}
