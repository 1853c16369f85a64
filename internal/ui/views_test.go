package ui

import (
	"strings"
	"testing"

	"github.com/kgrae/bookdesk/internal/bookapi"
	"github.com/kgrae/bookdesk/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client, err := bookapi.NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	m := New(Options{Session: session.New(client), PageSize: 10})
	m.width = 100
	m.height = 30
	m.ready = true
	return m
}

func TestRenderTable_FailedMutationKeepsRows(t *testing.T) {
	m := newTestModel(t)
	m.sess.Books.ListLoaded([]bookapi.Book{{ID: "b1", Title: "Dune", Price: 10}},
		bookapi.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 10})
	m.sess.Books.MutateFailed("stock cannot go below zero")

	out := m.renderTable()
	if !strings.Contains(out, "Dune") {
		t.Fatalf("renderTable = %q, want cached row still visible", out)
	}
	if strings.Contains(out, "stock cannot go below zero") {
		t.Fatalf("renderTable = %q, want mutation error left to the footer notice", out)
	}
}

func TestRenderTable_ListFailureShowsError(t *testing.T) {
	m := newTestModel(t)
	m.sess.Books.ListLoaded([]bookapi.Book{{ID: "b1", Title: "Dune"}},
		bookapi.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 10})
	m.sess.Books.BeginList()
	m.sess.Books.ListFailed("cannot reach the book service")

	out := m.renderTable()
	if !strings.Contains(out, "cannot reach the book service") {
		t.Fatalf("renderTable = %q, want load failure surfaced", out)
	}
	if strings.Contains(out, "Dune") {
		t.Fatalf("renderTable = %q, want stale rows gone after failed load", out)
	}
}

func TestDetailContent_FailedMutationKeepsSelection(t *testing.T) {
	m := newTestModel(t)
	m.sess.Books.GetLoaded(bookapi.Book{ID: "b1", Title: "Dune", Price: 10})
	m.sess.Books.MutateFailed("stock cannot go below zero")

	out := m.detailContent()
	if !strings.Contains(out, "Dune") {
		t.Fatalf("detailContent = %q, want selection still visible", out)
	}
	if strings.Contains(out, "stock cannot go below zero") {
		t.Fatalf("detailContent = %q, want mutation error left to the footer notice", out)
	}
}

func TestDetailContent_FailedGetShowsError(t *testing.T) {
	m := newTestModel(t)
	m.sess.Books.BeginGet()
	m.sess.Books.GetFailed("Book not found")

	if out := m.detailContent(); !strings.Contains(out, "Book not found") {
		t.Fatalf("detailContent = %q, want fetch failure surfaced", out)
	}
}

func TestPad_TruncatesAndFills(t *testing.T) {
	if got := pad("abc", 6); got != "abc   " {
		t.Fatalf("pad = %q, want right-padded", got)
	}
	if got := pad("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("pad = %q, want truncated with ellipsis", got)
	}
	if got := pad("日本語の本", 4); got != "日本語…" {
		t.Fatalf("pad = %q, want rune-aware truncation", got)
	}
}

func TestTabTitles(t *testing.T) {
	want := []string{"Books", "Authors", "Publishers", "Categories", "Cart"}
	for i, title := range want {
		if got := Tab(i).title(); got != title {
			t.Fatalf("Tab(%d).title() = %q, want %q", i, got, title)
		}
	}
}

func TestQueryFollowsTabState(t *testing.T) {
	m := New(Options{PageSize: 25})
	m.tabs[TabBooks].page = 3
	m.tabs[TabBooks].search = "dune"
	m.tabs[TabBooks].showDeleted = true

	q := m.query(TabBooks)
	if q.Page != 3 || q.Limit != 25 || q.Search != "dune" {
		t.Fatalf("query = %#v, want tab paging state applied", q)
	}
	if q.Status != "deleted" {
		t.Fatalf("status = %q, want deleted filter", q.Status)
	}

	if q := m.query(TabAuthors); q.Status != "" {
		t.Fatalf("status = %q, want deleted filter scoped to books", q.Status)
	}
}
