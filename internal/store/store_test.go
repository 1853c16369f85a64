package store

import (
	"testing"

	"github.com/kgrae/bookdesk/internal/bookapi"
)

func page(perPage, total int) bookapi.Pagination {
	return bookapi.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: total, ItemsPerPage: perPage}
}

func TestCollection_ListLifecycle(t *testing.T) {
	c := NewCollection[bookapi.Book]()

	c.ListFailed("boom")
	c.BeginList()

	snap := c.Snapshot()
	if !snap.Loading {
		t.Fatalf("loading = false after BeginList, want true")
	}
	if snap.Err != "" {
		t.Fatalf("err = %q after BeginList, want cleared", snap.Err)
	}

	items := []bookapi.Book{{ID: "b1", Title: "Dune"}, {ID: "b2", Title: "Hyperion"}}
	c.ListLoaded(items, page(10, 2))

	snap = c.Snapshot()
	if snap.Loading {
		t.Fatalf("loading = true after ListLoaded, want false")
	}
	if len(snap.Items) != 2 || snap.Items[0].ID != "b1" {
		t.Fatalf("items = %#v, want server order preserved", snap.Items)
	}
	if snap.Pagination.TotalItems != 2 {
		t.Fatalf("pagination = %#v, want stored verbatim", snap.Pagination)
	}
}

func TestCollection_ListFailedClearsPage(t *testing.T) {
	c := NewCollection[bookapi.Book]()
	c.ListLoaded([]bookapi.Book{{ID: "b1"}}, page(10, 1))

	c.BeginList()
	c.ListFailed("cannot reach the book service")

	snap := c.Snapshot()
	if snap.Err != "cannot reach the book service" {
		t.Fatalf("err = %q, want failure message", snap.Err)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("items = %#v, want stale rows cleared on failure", snap.Items)
	}
	if snap.Pagination != (bookapi.Pagination{}) {
		t.Fatalf("pagination = %#v, want zeroed on failure", snap.Pagination)
	}
	if snap.Loading {
		t.Fatalf("loading = true after failure, want false")
	}
}

func TestCollection_EmptyListIsNotAnError(t *testing.T) {
	c := NewCollection[bookapi.Book]()
	c.BeginList()
	c.ListLoaded(nil, page(10, 0))

	snap := c.Snapshot()
	if snap.Err != "" || snap.Loading {
		t.Fatalf("snapshot = %#v, want clean empty state", snap)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("items = %#v, want empty", snap.Items)
	}
}

func TestCollection_ListLoadedDropsDuplicateKeys(t *testing.T) {
	c := NewCollection[bookapi.Book]()
	c.ListLoaded([]bookapi.Book{
		{ID: "b1", Title: "first"},
		{ID: "b2"},
		{ID: "b1", Title: "second"},
	}, page(10, 3))

	snap := c.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("items = %#v, want duplicate key dropped", snap.Items)
	}
	if snap.Items[0].Title != "first" {
		t.Fatalf("kept copy = %#v, want first occurrence", snap.Items[0])
	}
}

func TestCollection_GetLifecycle(t *testing.T) {
	c := NewCollection[bookapi.Author]()
	c.GetLoaded(bookapi.Author{ID: "a1", Name: "old"})

	c.BeginGet()
	if snap := c.Snapshot(); snap.Selected != nil {
		t.Fatalf("selected = %#v during fetch, want cleared eagerly", snap.Selected)
	}

	c.GetLoaded(bookapi.Author{ID: "a2", Name: "new"})
	snap := c.Snapshot()
	if snap.Selected == nil || snap.Selected.ID != "a2" {
		t.Fatalf("selected = %#v, want a2", snap.Selected)
	}

	c.BeginGet()
	c.GetFailed("Author not found")
	snap = c.Snapshot()
	if snap.Selected != nil {
		t.Fatalf("selected = %#v after failure, want nil", snap.Selected)
	}
	if snap.Err != "Author not found" {
		t.Fatalf("err = %q, want failure message", snap.Err)
	}
}

func TestCollection_SelectionIndependentOfList(t *testing.T) {
	c := NewCollection[bookapi.Book]()
	c.ListLoaded([]bookapi.Book{{ID: "b1"}}, page(10, 1))

	// Selecting a record outside the cached page leaves the page alone.
	c.GetLoaded(bookapi.Book{ID: "b99", Title: "elsewhere"})

	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "b1" {
		t.Fatalf("items = %#v, want list untouched by selection", snap.Items)
	}
	if snap.Selected == nil || snap.Selected.ID != "b99" {
		t.Fatalf("selected = %#v, want b99", snap.Selected)
	}
}

func TestCollection_CreatedPrependsAndDedupes(t *testing.T) {
	c := NewCollection[bookapi.Category]()
	c.ListLoaded([]bookapi.Category{{ID: "c1"}, {ID: "c2"}}, page(10, 2))

	c.BeginMutate()
	c.Created(bookapi.Category{ID: "c3", Name: "Horror"})

	snap := c.Snapshot()
	if len(snap.Items) != 3 || snap.Items[0].ID != "c3" {
		t.Fatalf("items = %#v, want new record prepended", snap.Items)
	}

	// A re-created key replaces the stale copy instead of duplicating it.
	c.Created(bookapi.Category{ID: "c2", Name: "replaced"})
	snap = c.Snapshot()
	if len(snap.Items) != 3 {
		t.Fatalf("items = %#v, want key unique after re-create", snap.Items)
	}
	if snap.Items[0].ID != "c2" || snap.Items[0].Name != "replaced" {
		t.Fatalf("items[0] = %#v, want fresh copy first", snap.Items[0])
	}
}

func TestCollection_UpdatedSyncsSelection(t *testing.T) {
	c := NewCollection[bookapi.Book]()
	c.ListLoaded([]bookapi.Book{{ID: "b1", Stock: 1}, {ID: "b2"}}, page(10, 2))
	c.GetLoaded(bookapi.Book{ID: "b1", Stock: 1})

	c.BeginMutate()
	c.Updated(bookapi.Book{ID: "b1", Stock: 5})

	snap := c.Snapshot()
	if snap.Items[0].Stock != 5 {
		t.Fatalf("items[0] = %#v, want updated in place", snap.Items[0])
	}
	if len(snap.Items) != 2 || snap.Items[1].ID != "b2" {
		t.Fatalf("items = %#v, want other rows untouched", snap.Items)
	}
	if snap.Selected == nil || snap.Selected.Stock != 5 {
		t.Fatalf("selected = %#v, want selection synced", snap.Selected)
	}

	// Updating a record outside the page is a no-op on the list.
	c.Updated(bookapi.Book{ID: "b77"})
	if snap := c.Snapshot(); len(snap.Items) != 2 {
		t.Fatalf("items = %#v, want off-page update ignored", snap.Items)
	}
}

func TestCollection_DeletedRemovesAndClearsSelection(t *testing.T) {
	c := NewCollection[bookapi.Publisher]()
	c.ListLoaded([]bookapi.Publisher{{ID: "p1"}, {ID: "p2"}}, page(10, 2))
	c.GetLoaded(bookapi.Publisher{ID: "p1"})

	c.BeginMutate()
	c.Deleted("p1")

	snap := c.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "p2" {
		t.Fatalf("items = %#v, want p1 removed", snap.Items)
	}
	if snap.Selected != nil {
		t.Fatalf("selected = %#v, want cleared with deleted record", snap.Selected)
	}

	// Deleting a different record leaves an unrelated selection alone.
	c.GetLoaded(bookapi.Publisher{ID: "p2"})
	c.Deleted("p9")
	if snap := c.Snapshot(); snap.Selected == nil || snap.Selected.ID != "p2" {
		t.Fatalf("selected = %#v, want unrelated selection kept", snap.Selected)
	}
}

func TestCollection_MutateFailedKeepsData(t *testing.T) {
	c := NewCollection[bookapi.Book]()
	c.ListLoaded([]bookapi.Book{{ID: "b1"}}, page(10, 1))
	c.GetLoaded(bookapi.Book{ID: "b1"})

	c.BeginMutate()
	c.MutateFailed("DB unavailable")

	snap := c.Snapshot()
	if snap.Err != "DB unavailable" {
		t.Fatalf("err = %q, want failure message", snap.Err)
	}
	if len(snap.Items) != 1 || snap.Selected == nil {
		t.Fatalf("snapshot = %#v, want data untouched by failed mutation", snap)
	}
}

func TestCollection_SnapshotIsACopy(t *testing.T) {
	c := NewCollection[bookapi.Book]()
	c.ListLoaded([]bookapi.Book{{ID: "b1", Title: "Dune"}}, page(10, 1))
	c.GetLoaded(bookapi.Book{ID: "b1", Title: "Dune"})

	snap := c.Snapshot()
	snap.Items[0].Title = "mutated"
	snap.Selected.Title = "mutated"

	fresh := c.Snapshot()
	if fresh.Items[0].Title != "Dune" || fresh.Selected.Title != "Dune" {
		t.Fatalf("snapshot shared memory with the store: %#v", fresh)
	}
}

func TestCollection_Reset(t *testing.T) {
	c := NewCollection[bookapi.Book]()
	c.ListLoaded([]bookapi.Book{{ID: "b1"}}, page(10, 1))
	c.GetLoaded(bookapi.Book{ID: "b1"})
	c.MutateFailed("boom")

	c.Reset()

	snap := c.Snapshot()
	if len(snap.Items) != 0 || snap.Selected != nil || snap.Err != "" || snap.Loading {
		t.Fatalf("snapshot after Reset = %#v, want empty defaults", snap)
	}
}
