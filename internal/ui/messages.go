package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kgrae/bookdesk/internal/session"
)

// dispatchDoneMsg signals that a list or mutate dispatch settled; the view
// re-reads snapshots, so the message only carries the tab for bookkeeping.
type dispatchDoneMsg struct {
	tab Tab
}

// detailReadyMsg signals that a get-by-id dispatch settled.
type detailReadyMsg struct {
	tab Tab
}

// noticeMsg delivers one transient session notice.
type noticeMsg session.Notice

// loadCmd dispatches the list lifecycle for a tab. Errors land in the
// collection cache; the UI renders them from the snapshot.
func (m Model) loadCmd(tab Tab) tea.Cmd {
	q := m.query(tab)
	return func() tea.Msg {
		switch tab {
		case TabBooks:
			if err := m.sess.LoadBooks(m.ctx, q); err == nil {
				m.warmBookRefs()
			}
		case TabAuthors:
			_ = m.sess.LoadAuthors(m.ctx, q)
		case TabPublishers:
			_ = m.sess.LoadPublishers(m.ctx, q)
		case TabCategories:
			_ = m.sess.LoadCategories(m.ctx, q)
		}
		return dispatchDoneMsg{tab: tab}
	}
}

// warmBookRefs resolves reference labels for the freshly loaded page so
// rendering never blocks on the network.
func (m Model) warmBookRefs() {
	for _, book := range m.sess.Books.Snapshot().Items {
		m.sess.AuthorNames.Name(m.ctx, book.Author)
		m.sess.PublisherNames.Name(m.ctx, book.Publisher)
		m.sess.CategoryNames.Name(m.ctx, book.Category)
	}
}

// selectCmd dispatches the get-by-id lifecycle for the highlighted row.
func (m Model) selectCmd(tab Tab, id string) tea.Cmd {
	return func() tea.Msg {
		switch tab {
		case TabBooks:
			_ = m.sess.SelectBook(m.ctx, id)
		case TabAuthors:
			_ = m.sess.SelectAuthor(m.ctx, id)
		case TabPublishers:
			_ = m.sess.SelectPublisher(m.ctx, id)
		case TabCategories:
			_ = m.sess.SelectCategory(m.ctx, id)
		}
		return detailReadyMsg{tab: tab}
	}
}

// deleteCmd dispatches a delete for the confirmed row.
func (m Model) deleteCmd(tab Tab, id string) tea.Cmd {
	return func() tea.Msg {
		switch tab {
		case TabBooks:
			_ = m.sess.DeleteBook(m.ctx, id)
		case TabAuthors:
			_ = m.sess.DeleteAuthor(m.ctx, id)
		case TabPublishers:
			_ = m.sess.DeletePublisher(m.ctx, id)
		case TabCategories:
			_ = m.sess.DeleteCategory(m.ctx, id)
		}
		return dispatchDoneMsg{tab: tab}
	}
}

// restoreCmd reverses a book soft delete.
func (m Model) restoreCmd(id string) tea.Cmd {
	return func() tea.Msg {
		_ = m.sess.RestoreBook(m.ctx, id)
		return dispatchDoneMsg{tab: TabBooks}
	}
}

// stockCmd adjusts a book's stock by a signed delta.
func (m Model) stockCmd(id string, delta int) tea.Cmd {
	return func() tea.Msg {
		_ = m.sess.AdjustStock(m.ctx, id, delta)
		return dispatchDoneMsg{tab: TabBooks}
	}
}

// waitNoticeCmd blocks on the session notice channel and re-arms after
// each delivery.
func waitNoticeCmd(ch <-chan session.Notice) tea.Cmd {
	return func() tea.Msg {
		notice, open := <-ch
		if !open {
			return nil
		}
		return noticeMsg(notice)
	}
}
