// Package tui provides an interactive terminal browser for log collections.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Geun-Oh/logview/internal/collection"
	"github.com/Geun-Oh/logview/internal/entry"
	"github.com/Geun-Oh/logview/internal/filter"
)

// Mode is the input mode of the model.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// --- Messages ---

// ReloadMsg replaces the browsed collection, e.g. after the file changed.
type ReloadMsg struct {
	Collection *collection.Collection
}

// ErrorMsg carries an error to display in the status bar.
type ErrorMsg struct {
	Err error
}

// --- Model ---

// Model is the bubbletea model for the log browser. It pages through a
// collection one page at a time and never materializes more than a page.
type Model struct {
	source string
	base   *collection.Collection
	view   *collection.Collection
	tree   []collection.TreeNode

	levelIdx int
	perPage  int
	pageNum  int
	page     collection.Page
	cursor   int
	expanded map[int]bool // keyed by 1-based position in the filtered view

	mode   Mode
	search textinput.Model
	query  string

	width   int
	height  int
	status  string
	reloads int
}

// NewModel creates a model browsing c, perPage entries at a time.
func NewModel(sourceName string, c *collection.Collection, perPage int) Model {
	si := textinput.New()
	si.Placeholder = "search..."
	si.CharLimit = 128

	if perPage < 1 {
		perPage = 20
	}
	m := Model{
		source:   sourceName,
		base:     c,
		perPage:  perPage,
		pageNum:  1,
		expanded: map[int]bool{},
		search:   si,
	}
	m.refresh()
	return m
}

// Init sets the window title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("logview: " + m.source)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReloadMsg:
		m.base = msg.Collection
		m.reloads++
		m.expanded = map[int]bool{}
		m.status = fmt.Sprintf("reloaded (%d)", m.reloads)
		m.refresh()
		return m, nil

	case ErrorMsg:
		m.status = "error: " + msg.Err.Error()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeSearch {
		switch msg.String() {
		case "esc":
			m.mode = ModeNormal
			m.search.SetValue("")
			m.search.Blur()
			return m, nil
		case "enter":
			m.mode = ModeNormal
			m.search.Blur()
			m.setQuery(m.search.Value())
			return m, nil
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.cursor = min(m.cursor+1, max(len(m.page.Items)-1, 0))
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case "n", "right":
		if m.page.HasMorePages() {
			m.gotoPage(m.pageNum + 1)
		}
	case "p", "left":
		if m.pageNum > 1 {
			m.gotoPage(m.pageNum - 1)
		}
	case "g":
		m.gotoPage(1)
	case "G":
		m.gotoPage(m.page.LastPage())
	case "tab", "l":
		m.levelIdx = (m.levelIdx + 1) % len(m.tree)
		m.gotoPage(1)
	case "shift+tab", "h":
		m.levelIdx = (m.levelIdx + len(m.tree) - 1) % len(m.tree)
		m.gotoPage(1)
	case "enter", " ":
		if len(m.page.Items) > 0 {
			pos := m.page.From() + m.cursor
			m.expanded[pos] = !m.expanded[pos]
		}
	case "/":
		m.mode = ModeSearch
		m.search.SetValue(m.query)
		m.search.Focus()
		return m, textinput.Blink
	case "esc":
		if m.query != "" {
			m.setQuery("")
		}
	}
	return m, nil
}

func (m *Model) setQuery(q string) {
	m.query = q
	m.gotoPage(1)
}

func (m *Model) gotoPage(n int) {
	m.pageNum = max(n, 1)
	m.cursor = 0
	m.expanded = map[int]bool{}
	m.refresh()
}

// refresh re-derives the filtered view and loads the current page.
func (m *Model) refresh() {
	m.tree = m.base.Tree(true)
	if m.levelIdx >= len(m.tree) {
		m.levelIdx = 0
	}

	v := m.base
	if key := m.tree[m.levelIdx].Key; key != entry.KeyAll {
		v = v.FilterByLevel(key)
	}
	if m.query != "" {
		v = v.Filter(filter.NewKeywordFilter(m.query).FoldCase())
	}
	m.view = v

	page, err := v.Paginate(m.perPage, m.pageNum)
	if err != nil {
		m.status = err.Error()
		return
	}
	// The collection may have shrunk on reload.
	if len(page.Items) == 0 && m.pageNum > page.LastPage() {
		m.pageNum = page.LastPage()
		if page, err = v.Paginate(m.perPage, m.pageNum); err != nil {
			m.status = err.Error()
			return
		}
	}
	m.page = page
	m.cursor = min(m.cursor, max(len(page.Items)-1, 0))
}

// Level returns the key of the active level tab.
func (m Model) Level() string {
	return m.tree[m.levelIdx].Key
}

// Query returns the active search term.
func (m Model) Query() string {
	return m.query
}

// Page returns the page on screen.
func (m Model) Page() collection.Page {
	return m.page
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (entry.LogEntry, bool) {
	if m.cursor >= len(m.page.Items) {
		return entry.LogEntry{}, false
	}
	return m.page.Items[m.cursor], true
}
