package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kgrae/bookdesk/internal/session"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading…"
	}

	sections := []string{m.renderHeader()}
	if m.searchMode {
		sections = append(sections, m.searchInput.View())
	}

	switch {
	case m.showHelp:
		sections = append(sections, m.renderHelp())
	case m.showDetail:
		sections = append(sections, m.styles.Panel.Render(m.detailViewport.View()))
	case m.tab == TabCart:
		sections = append(sections, m.renderCart())
	default:
		sections = append(sections, m.renderTable())
	}

	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		label := t.title()
		if t == TabCart {
			if n := m.sess.Cart.Count(); n > 0 {
				label = fmt.Sprintf("%s (%d)", label, n)
			}
		}
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	right := m.styles.MutedText.Render(m.sess.API().BaseURL())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// tableSpec is one tab's column layout and row content.
type tableSpec struct {
	headers []string
	widths  []int
	rows    [][]string
}

func (m Model) renderTable() string {
	snapErr, loading := m.status()
	if loading {
		return m.styles.MutedText.Render("  loading…")
	}

	// List failures clear the rows, so an empty table with an error is a
	// failed load. Mutation failures keep the rows; their error rides the
	// footer notice instead of hiding the page the user was working in.
	spec := m.tableSpec()
	if len(spec.rows) == 0 {
		if snapErr != "" {
			return m.styles.DangerText.Render("  " + snapErr)
		}
		return m.styles.MutedText.Render("  no results")
	}

	var b strings.Builder
	b.WriteString(m.styles.MutedText.Render(renderRow(spec.headers, spec.widths)))
	b.WriteString("\n")
	for i, row := range spec.rows {
		line := renderRow(row, spec.widths)
		if i == m.tabs[m.tab].row {
			line = m.styles.Selected.Render(line)
		} else {
			line = m.styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) tableSpec() tableSpec {
	switch m.tab {
	case TabBooks:
		snap := m.sess.Books.Snapshot()
		spec := tableSpec{
			headers: []string{"TITLE", "AUTHOR", "CATEGORY", "PRICE", "STOCK", ""},
			widths:  []int{m.flexWidth(56), 20, 14, 8, 5, 7},
		}
		for _, b := range snap.Items {
			flag := ""
			switch {
			case b.Deleted:
				flag = "deleted"
			case !b.Available:
				flag = "hidden"
			}
			spec.rows = append(spec.rows, []string{
				b.Title,
				m.sess.AuthorNames.Cached(b.Author),
				m.sess.CategoryNames.Cached(b.Category),
				fmt.Sprintf("%.2f", b.Price),
				fmt.Sprintf("%d", b.Stock),
				flag,
			})
		}
		return spec
	case TabAuthors:
		snap := m.sess.Authors.Snapshot()
		spec := tableSpec{
			headers: []string{"NAME", "BIO"},
			widths:  []int{28, m.flexWidth(30)},
		}
		for _, a := range snap.Items {
			spec.rows = append(spec.rows, []string{a.Name, a.Bio})
		}
		return spec
	case TabPublishers:
		snap := m.sess.Publishers.Snapshot()
		spec := tableSpec{
			headers: []string{"NAME", "WEBSITE"},
			widths:  []int{28, m.flexWidth(30)},
		}
		for _, p := range snap.Items {
			spec.rows = append(spec.rows, []string{p.Name, p.Website})
		}
		return spec
	default:
		snap := m.sess.Categories.Snapshot()
		spec := tableSpec{
			headers: []string{"NAME", "DESCRIPTION"},
			widths:  []int{28, m.flexWidth(30)},
		}
		for _, c := range snap.Items {
			spec.rows = append(spec.rows, []string{c.Name, c.Description})
		}
		return spec
	}
}

func (m Model) renderCart() string {
	lines := m.sess.Cart.Lines()
	if len(lines) == 0 {
		return m.styles.MutedText.Render("  cart is empty")
	}

	widths := []int{m.flexWidth(28), 5, 10, 10}
	var b strings.Builder
	b.WriteString(m.styles.MutedText.Render(renderRow([]string{"TITLE", "QTY", "PRICE", "SUBTOTAL"}, widths)))
	b.WriteString("\n")
	for i, line := range lines {
		row := renderRow([]string{
			line.Book.Title,
			fmt.Sprintf("%d", line.Quantity),
			fmt.Sprintf("%.2f", line.Book.EffectivePrice()),
			fmt.Sprintf("%.2f", line.Subtotal()),
		}, widths)
		if i == m.tabs[TabCart].row {
			row = m.styles.Selected.Render(row)
		} else {
			row = m.styles.Text.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.AccentText.Render(fmt.Sprintf("  %d items · subtotal %.2f", m.sess.Cart.Count(), m.sess.Cart.Subtotal())))
	return b.String()
}

// detailContent builds the detail pane text for the current selection.
func (m Model) detailContent() string {
	var fields [][2]string
	switch m.tab {
	case TabBooks:
		snap := m.sess.Books.Snapshot()
		if snap.Selected == nil {
			if snap.Err != "" {
				return m.styles.DangerText.Render(snap.Err)
			}
			return "no selection"
		}
		b := *snap.Selected
		fields = [][2]string{
			{"Title", b.Title},
			{"Author", m.sess.AuthorNames.Cached(b.Author)},
			{"Publisher", m.sess.PublisherNames.Cached(b.Publisher)},
			{"Category", m.sess.CategoryNames.Cached(b.Category)},
			{"ISBN", b.ISBN},
			{"Price", fmt.Sprintf("%.2f", b.Price)},
			{"Discount", fmt.Sprintf("%.0f%%", b.Discount)},
			{"Stock", fmt.Sprintf("%d", b.Stock)},
			{"Available", yesNo(b.Available)},
			{"Deleted", yesNo(b.Deleted)},
			{"", ""},
			{"Description", b.Description},
		}
	case TabAuthors:
		snap := m.sess.Authors.Snapshot()
		if snap.Selected == nil {
			if snap.Err != "" {
				return m.styles.DangerText.Render(snap.Err)
			}
			return "no selection"
		}
		a := *snap.Selected
		fields = [][2]string{
			{"Name", a.Name},
			{"Photo", a.PhotoURL},
			{"", ""},
			{"Bio", a.Bio},
		}
	case TabPublishers:
		snap := m.sess.Publishers.Snapshot()
		if snap.Selected == nil {
			if snap.Err != "" {
				return m.styles.DangerText.Render(snap.Err)
			}
			return "no selection"
		}
		p := *snap.Selected
		fields = [][2]string{
			{"Name", p.Name},
			{"Address", p.Address},
			{"Website", p.Website},
		}
	case TabCategories:
		snap := m.sess.Categories.Snapshot()
		if snap.Selected == nil {
			if snap.Err != "" {
				return m.styles.DangerText.Render(snap.Err)
			}
			return "no selection"
		}
		c := *snap.Selected
		fields = [][2]string{
			{"Name", c.Name},
			{"Description", c.Description},
		}
	}

	var b strings.Builder
	for _, field := range fields {
		if field[0] == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.styles.AccentText.Render(fmt.Sprintf("%-12s", field[0])))
		b.WriteString(field[1])
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.confirmDelete != "" {
		return m.styles.WarningText.Render(
			fmt.Sprintf(" delete %s? enter to confirm, esc to cancel", m.confirmDelete))
	}

	var parts []string
	if p := m.pagination(); p.TotalPages > 0 && m.tab != TabCart {
		parts = append(parts, fmt.Sprintf("page %d/%d · %d total", p.CurrentPage, p.TotalPages, p.TotalItems))
	}
	if search := m.tabs[m.tab].search; search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", search))
	}
	if m.tab == TabBooks && m.tabs[TabBooks].showDeleted {
		parts = append(parts, "showing deleted")
	}
	if m.notice != nil {
		text := m.notice.Text
		if m.notice.Level == session.LevelError {
			parts = append(parts, m.styles.DangerText.Render(text))
		} else {
			parts = append(parts, m.styles.SuccessText.Render(text))
		}
	}
	parts = append(parts, "h help")
	return m.styles.Footer.Render(strings.Join(parts, "  ·  "))
}

func (m Model) renderHelp() string {
	k := m.keys
	bindings := [][2]string{
		{k.Tab.Help().Key, k.Tab.Help().Desc},
		{k.ViewBooks.Help().Key + "-" + k.ViewCart.Help().Key, "Jump to tab"},
		{k.Up.Help().Key + "/" + k.Down.Help().Key, "Move selection"},
		{k.PrevPage.Help().Key + " " + k.NextPage.Help().Key, "Turn pages"},
		{k.Search.Help().Key, k.Search.Help().Desc},
		{k.Open.Help().Key, k.Open.Help().Desc},
		{k.Reload.Help().Key, k.Reload.Help().Desc},
		{k.Delete.Help().Key, k.Delete.Help().Desc},
		{k.Restore.Help().Key, k.Restore.Help().Desc},
		{k.ShowDeleted.Help().Key, k.ShowDeleted.Help().Desc},
		{k.StockUp.Help().Key + "/" + k.StockDown.Help().Key, "Adjust stock"},
		{k.AddToCart.Help().Key, k.AddToCart.Help().Desc},
		{k.RemoveLine.Help().Key, k.RemoveLine.Help().Desc},
		{k.ClearCart.Help().Key, k.ClearCart.Help().Desc},
		{k.CycleTheme.Help().Key, k.CycleTheme.Help().Desc},
		{k.Quit.Help().Key, k.Quit.Help().Desc},
	}

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("  Key bindings"))
	b.WriteString("\n\n")
	for _, binding := range bindings {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			m.styles.AccentText.Render(fmt.Sprintf("%-10s", binding[0])),
			binding[1]))
	}
	return b.String()
}

// status reports the active tab's error and loading flags.
func (m Model) status() (string, bool) {
	switch m.tab {
	case TabBooks:
		snap := m.sess.Books.Snapshot()
		return snap.Err, snap.Loading
	case TabAuthors:
		snap := m.sess.Authors.Snapshot()
		return snap.Err, snap.Loading
	case TabPublishers:
		snap := m.sess.Publishers.Snapshot()
		return snap.Err, snap.Loading
	case TabCategories:
		snap := m.sess.Categories.Snapshot()
		return snap.Err, snap.Loading
	}
	return "", false
}

// flexWidth sizes the flexible column against the terminal width, with a
// floor so narrow terminals stay readable.
func (m Model) flexWidth(fixed int) int {
	w := m.width - fixed - 4
	if w < 16 {
		return 16
	}
	return w
}

func renderRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = pad(cell, widths[i])
	}
	return " " + strings.Join(parts, " ")
}

// pad truncates or right-pads a cell to the column width.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
