// Package ui provides the Bubble Tea browser for the bookstore catalog.
// It is a pure consumer of the session's collection caches: every key
// action dispatches through the session and the view re-renders from
// fresh snapshots when the dispatch settles.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrae/bookdesk/internal/bookapi"
	"github.com/kgrae/bookdesk/internal/prefs"
	"github.com/kgrae/bookdesk/internal/session"
)

// Tab identifies the active entity view.
type Tab int

const (
	TabBooks Tab = iota
	TabAuthors
	TabPublishers
	TabCategories
	TabCart
	tabCount
)

func (t Tab) title() string {
	switch t {
	case TabBooks:
		return "Books"
	case TabAuthors:
		return "Authors"
	case TabPublishers:
		return "Publishers"
	case TabCategories:
		return "Categories"
	case TabCart:
		return "Cart"
	}
	return "?"
}

// tabState is the per-tab paging and selection state.
type tabState struct {
	page        int
	search      string
	row         int
	showDeleted bool // books only
	loaded      bool
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *session.Session
	ThemeName string
	PrefsPath string
	PageSize  int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	sess      *session.Session
	prefsPath string
	pageSize  int

	keys   keyMap
	theme  Theme
	styles Styles

	width  int
	height int
	ready  bool

	tab  Tab
	tabs [tabCount]tabState

	searchMode  bool
	searchInput textinput.Model

	showDetail     bool
	detailViewport viewport.Model

	confirmDelete string

	showHelp bool

	notice *session.Notice
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	theme := GetTheme(themeName)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "search"
	input.CharLimit = 128

	m := Model{
		ctx:         ctx,
		sess:        opts.Session,
		prefsPath:   prefsPath,
		pageSize:    pageSize,
		keys:        DefaultKeyMap(),
		theme:       theme,
		styles:      theme.Styles(),
		searchInput: input,
	}
	for i := range m.tabs {
		m.tabs[i].page = 1
	}
	return m
}

// Run boots the browser until quit or ctx cancellation.
func Run(opts Options) error {
	if opts.Session == nil {
		return fmt.Errorf("ui requires a session")
	}
	program := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := program.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(TabBooks),
		waitNoticeCmd(m.sess.Notices()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width-4, msg.Height-6)
		} else {
			m.detailViewport.Width = msg.Width - 4
			m.detailViewport.Height = msg.Height - 6
		}
		m.ready = true
		return m, nil

	case dispatchDoneMsg:
		m.tabs[msg.tab].loaded = true
		m.clampRow()
		return m, nil

	case detailReadyMsg:
		m.showDetail = true
		m.detailViewport.SetContent(m.detailContent())
		m.detailViewport.GotoTop()
		return m, nil

	case noticeMsg:
		notice := session.Notice(msg)
		m.notice = &notice
		return m, waitNoticeCmd(m.sess.Notices())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input swallows everything but confirm/cancel.
	if m.searchMode {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.searchMode = false
			m.tabs[m.tab].search = m.searchInput.Value()
			m.tabs[m.tab].page = 1
			return m, m.loadCmd(m.tab)
		case key.Matches(msg, m.keys.Escape):
			m.searchMode = false
			m.searchInput.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	// A pending delete only accepts confirm or cancel.
	if m.confirmDelete != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			id := m.confirmDelete
			m.confirmDelete = ""
			return m, m.deleteCmd(m.tab, id)
		case key.Matches(msg, m.keys.Escape):
			m.confirmDelete = ""
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		next := NextTheme(m.theme.Name)
		m.theme = GetTheme(next)
		m.styles = m.theme.Styles()
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: next, PageSize: m.pageSize})
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.showDetail {
			m.showDetail = false
			m.clearSelected()
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	case key.Matches(msg, m.keys.ViewBooks):
		return m.switchTab(TabBooks)
	case key.Matches(msg, m.keys.ViewAuthors):
		return m.switchTab(TabAuthors)
	case key.Matches(msg, m.keys.ViewPublishers):
		return m.switchTab(TabPublishers)
	case key.Matches(msg, m.keys.ViewCategories):
		return m.switchTab(TabCategories)
	case key.Matches(msg, m.keys.ViewCart):
		return m.switchTab(TabCart)

	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.tabs[m.tab].row = 0
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.tabs[m.tab].row = m.rowCount() - 1
		m.clampRow()
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		return m.turnPage(-1)
	case key.Matches(msg, m.keys.NextPage):
		return m.turnPage(1)

	case key.Matches(msg, m.keys.Reload):
		if m.tab != TabCart {
			return m, m.loadCmd(m.tab)
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		if m.tab != TabCart {
			m.searchMode = true
			m.searchInput.SetValue(m.tabs[m.tab].search)
			m.searchInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if id := m.selectedID(); id != "" && m.tab != TabCart {
			return m, m.selectCmd(m.tab, id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if id := m.selectedID(); id != "" && m.tab != TabCart {
			m.confirmDelete = id
		}
		return m, nil

	case key.Matches(msg, m.keys.Restore):
		if m.tab == TabBooks {
			if id := m.selectedID(); id != "" {
				return m, m.restoreCmd(id)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ShowDeleted):
		if m.tab == TabBooks {
			m.tabs[TabBooks].showDeleted = !m.tabs[TabBooks].showDeleted
			m.tabs[TabBooks].page = 1
			return m, m.loadCmd(TabBooks)
		}
		return m, nil

	case key.Matches(msg, m.keys.StockUp):
		if m.tab == TabBooks {
			if id := m.selectedID(); id != "" {
				return m, m.stockCmd(id, 1)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.StockDown):
		if m.tab == TabBooks {
			if id := m.selectedID(); id != "" {
				return m, m.stockCmd(id, -1)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.AddToCart):
		if m.tab == TabBooks {
			if book, found := m.selectedBook(); found {
				m.sess.AddToCart(book, 1)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.RemoveLine):
		if m.tab == TabCart {
			if id := m.selectedID(); id != "" {
				m.sess.RemoveFromCart(id)
				m.clampRow()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearCart):
		if m.tab == TabCart {
			m.sess.ClearCart()
			m.tabs[TabCart].row = 0
		}
		return m, nil
	}

	return m, nil
}

func (m Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	if m.showDetail {
		m.showDetail = false
		m.clearSelected()
	}
	m.tab = tab
	if tab != TabCart && !m.tabs[tab].loaded {
		return m, m.loadCmd(tab)
	}
	return m, nil
}

func (m Model) turnPage(dir int) (tea.Model, tea.Cmd) {
	if m.tab == TabCart {
		return m, nil
	}
	p := m.pagination()
	next := m.tabs[m.tab].page + dir
	if next < 1 {
		return m, nil
	}
	if p.TotalPages > 0 && next > p.TotalPages {
		return m, nil
	}
	m.tabs[m.tab].page = next
	m.tabs[m.tab].row = 0
	return m, m.loadCmd(m.tab)
}

func (m *Model) moveRow(dir int) {
	m.tabs[m.tab].row += dir
	m.clampRow()
}

func (m *Model) clampRow() {
	count := m.rowCount()
	if count == 0 {
		m.tabs[m.tab].row = 0
		return
	}
	if m.tabs[m.tab].row < 0 {
		m.tabs[m.tab].row = 0
	}
	if m.tabs[m.tab].row >= count {
		m.tabs[m.tab].row = count - 1
	}
}

func (m Model) rowCount() int {
	switch m.tab {
	case TabBooks:
		return len(m.sess.Books.Snapshot().Items)
	case TabAuthors:
		return len(m.sess.Authors.Snapshot().Items)
	case TabPublishers:
		return len(m.sess.Publishers.Snapshot().Items)
	case TabCategories:
		return len(m.sess.Categories.Snapshot().Items)
	case TabCart:
		return len(m.sess.Cart.Lines())
	}
	return 0
}

// selectedID returns the id of the highlighted row.
func (m Model) selectedID() string {
	row := m.tabs[m.tab].row
	switch m.tab {
	case TabBooks:
		items := m.sess.Books.Snapshot().Items
		if row < len(items) {
			return items[row].ID
		}
	case TabAuthors:
		items := m.sess.Authors.Snapshot().Items
		if row < len(items) {
			return items[row].ID
		}
	case TabPublishers:
		items := m.sess.Publishers.Snapshot().Items
		if row < len(items) {
			return items[row].ID
		}
	case TabCategories:
		items := m.sess.Categories.Snapshot().Items
		if row < len(items) {
			return items[row].ID
		}
	case TabCart:
		lines := m.sess.Cart.Lines()
		if row < len(lines) {
			return lines[row].Book.ID
		}
	}
	return ""
}

func (m Model) selectedBook() (bookapi.Book, bool) {
	items := m.sess.Books.Snapshot().Items
	row := m.tabs[TabBooks].row
	if row < len(items) {
		return items[row], true
	}
	return bookapi.Book{}, false
}

func (m Model) pagination() bookapi.Pagination {
	switch m.tab {
	case TabBooks:
		return m.sess.Books.Snapshot().Pagination
	case TabAuthors:
		return m.sess.Authors.Snapshot().Pagination
	case TabPublishers:
		return m.sess.Publishers.Snapshot().Pagination
	case TabCategories:
		return m.sess.Categories.Snapshot().Pagination
	}
	return bookapi.Pagination{}
}

func (m Model) clearSelected() {
	switch m.tab {
	case TabBooks:
		m.sess.Books.ClearSelected()
	case TabAuthors:
		m.sess.Authors.ClearSelected()
	case TabPublishers:
		m.sess.Publishers.ClearSelected()
	case TabCategories:
		m.sess.Categories.ClearSelected()
	}
}

// query builds the list query for one tab from its paging state.
func (m Model) query(tab Tab) bookapi.Query {
	state := m.tabs[tab]
	q := bookapi.Query{
		Search: state.search,
		Limit:  m.pageSize,
	}
	if tab == TabBooks && state.showDeleted {
		q.Status = "deleted"
	}
	return q.WithPage(state.page)
}
