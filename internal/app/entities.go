package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kgrae/bookdesk/internal/bookapi"
	"github.com/kgrae/bookdesk/internal/store"
)

// crudHooks binds one simple entity kind (no soft delete, no stock) to the
// session dispatchers so one command builder covers all three.
type crudHooks[T store.Entity] struct {
	singular string
	load     func(context.Context, bookapi.Query) error
	sel      func(context.Context, string) error
	remove   func(context.Context, string) error
	snapshot func() store.Snapshot[T]
	headers  []string
	row      func(T) []string
	fields   func(T) [][2]string
}

func newCrudCmd[T store.Entity](use string, hooks crudHooks[T], add, edit *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Manage %s", use),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", use),
	}
	var (
		search string
		page   int
		limit  int
	)
	list.Flags().StringVarP(&search, "search", "q", "", "Free-text search")
	list.Flags().IntVar(&page, "page", 0, "Page number")
	list.Flags().IntVar(&limit, "limit", 0, "Page size")
	list.RunE = func(cmd *cobra.Command, args []string) error {
		q := bookapi.Query{Search: search, Page: page, Limit: limit}
		if q.Limit == 0 {
			q.Limit = cfg.PageSize
		}
		if err := hooks.load(cmd.Context(), q); err != nil {
			return err
		}
		snap := hooks.snapshot()
		return renderList(snap.Items, snap.Pagination, hooks.headers, hooks.row)
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", hooks.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := hooks.sel(cmd.Context(), args[0]); err != nil {
				return err
			}
			snap := hooks.snapshot()
			if snap.Selected == nil {
				return fmt.Errorf("%s %q not loaded", hooks.singular, args[0])
			}
			return renderRecord(*snap.Selected, hooks.fields(*snap.Selected))
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: fmt.Sprintf("Delete a %s", hooks.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := hooks.remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			ok("Deleted %s %s", hooks.singular, args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, add, edit, rm)
	return cmd
}

func newAuthorsCmd() *cobra.Command {
	var payload bookapi.AuthorPayload

	add := &cobra.Command{
		Use:   "add",
		Short: "Add an author",
		RunE: func(cmd *cobra.Command, args []string) error {
			if payload.Name == "" {
				return fmt.Errorf("--name is required")
			}
			return sess.CreateAuthor(cmd.Context(), payload)
		},
	}
	add.Flags().StringVar(&payload.Name, "name", "", "Author name")
	add.Flags().StringVar(&payload.Bio, "bio", "", "Short biography")
	add.Flags().StringVar(&payload.PhotoURL, "photo-url", "", "Photo URL")

	var editPayload bookapi.AuthorPayload
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update author fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sess.UpdateAuthor(cmd.Context(), args[0], editPayload)
		},
	}
	edit.Flags().StringVar(&editPayload.Name, "name", "", "Author name")
	edit.Flags().StringVar(&editPayload.Bio, "bio", "", "Short biography")
	edit.Flags().StringVar(&editPayload.PhotoURL, "photo-url", "", "Photo URL")

	return newCrudCmd("authors", crudHooks[bookapi.Author]{
		singular: "author",
		load:     sessLoadAuthors,
		sel:      sessSelectAuthor,
		remove:   sessDeleteAuthor,
		snapshot: func() store.Snapshot[bookapi.Author] { return sess.Authors.Snapshot() },
		headers:  []string{"ID", "NAME", "BIO"},
		row: func(a bookapi.Author) []string {
			return []string{a.ID, a.Name, truncate(a.Bio, 48)}
		},
		fields: func(a bookapi.Author) [][2]string {
			return [][2]string{
				{"ID", a.ID},
				{"Name", a.Name},
				{"Bio", a.Bio},
				{"Photo", a.PhotoURL},
			}
		},
	}, add, edit)
}

func newPublishersCmd() *cobra.Command {
	var payload bookapi.PublisherPayload

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a publisher",
		RunE: func(cmd *cobra.Command, args []string) error {
			if payload.Name == "" {
				return fmt.Errorf("--name is required")
			}
			return sess.CreatePublisher(cmd.Context(), payload)
		},
	}
	add.Flags().StringVar(&payload.Name, "name", "", "Publisher name")
	add.Flags().StringVar(&payload.Address, "address", "", "Postal address")
	add.Flags().StringVar(&payload.Website, "website", "", "Website URL")

	var editPayload bookapi.PublisherPayload
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update publisher fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sess.UpdatePublisher(cmd.Context(), args[0], editPayload)
		},
	}
	edit.Flags().StringVar(&editPayload.Name, "name", "", "Publisher name")
	edit.Flags().StringVar(&editPayload.Address, "address", "", "Postal address")
	edit.Flags().StringVar(&editPayload.Website, "website", "", "Website URL")

	return newCrudCmd("publishers", crudHooks[bookapi.Publisher]{
		singular: "publisher",
		load:     sessLoadPublishers,
		sel:      sessSelectPublisher,
		remove:   sessDeletePublisher,
		snapshot: func() store.Snapshot[bookapi.Publisher] { return sess.Publishers.Snapshot() },
		headers:  []string{"ID", "NAME", "WEBSITE"},
		row: func(p bookapi.Publisher) []string {
			return []string{p.ID, p.Name, p.Website}
		},
		fields: func(p bookapi.Publisher) [][2]string {
			return [][2]string{
				{"ID", p.ID},
				{"Name", p.Name},
				{"Address", p.Address},
				{"Website", p.Website},
			}
		},
	}, add, edit)
}

func newCategoriesCmd() *cobra.Command {
	var payload bookapi.CategoryPayload

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if payload.Name == "" {
				return fmt.Errorf("--name is required")
			}
			return sess.CreateCategory(cmd.Context(), payload)
		},
	}
	add.Flags().StringVar(&payload.Name, "name", "", "Category name")
	add.Flags().StringVar(&payload.Description, "description", "", "Description")

	var editPayload bookapi.CategoryPayload
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update category fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sess.UpdateCategory(cmd.Context(), args[0], editPayload)
		},
	}
	edit.Flags().StringVar(&editPayload.Name, "name", "", "Category name")
	edit.Flags().StringVar(&editPayload.Description, "description", "", "Description")

	return newCrudCmd("categories", crudHooks[bookapi.Category]{
		singular: "category",
		load:     sessLoadCategories,
		sel:      sessSelectCategory,
		remove:   sessDeleteCategory,
		snapshot: func() store.Snapshot[bookapi.Category] { return sess.Categories.Snapshot() },
		headers:  []string{"ID", "NAME", "DESCRIPTION"},
		row: func(c bookapi.Category) []string {
			return []string{c.ID, c.Name, truncate(c.Description, 48)}
		},
		fields: func(c bookapi.Category) [][2]string {
			return [][2]string{
				{"ID", c.ID},
				{"Name", c.Name},
				{"Description", c.Description},
			}
		},
	}, add, edit)
}

// Session indirections: the hooks are built at init time while the session
// is only constructed in PersistentPreRunE, so they dereference lazily.
func sessLoadAuthors(ctx context.Context, q bookapi.Query) error    { return sess.LoadAuthors(ctx, q) }
func sessSelectAuthor(ctx context.Context, id string) error        { return sess.SelectAuthor(ctx, id) }
func sessDeleteAuthor(ctx context.Context, id string) error        { return sess.DeleteAuthor(ctx, id) }
func sessLoadPublishers(ctx context.Context, q bookapi.Query) error { return sess.LoadPublishers(ctx, q) }
func sessSelectPublisher(ctx context.Context, id string) error     { return sess.SelectPublisher(ctx, id) }
func sessDeletePublisher(ctx context.Context, id string) error     { return sess.DeletePublisher(ctx, id) }
func sessLoadCategories(ctx context.Context, q bookapi.Query) error { return sess.LoadCategories(ctx, q) }
func sessSelectCategory(ctx context.Context, id string) error      { return sess.SelectCategory(ctx, id) }
func sessDeleteCategory(ctx context.Context, id string) error      { return sess.DeleteCategory(ctx, id) }

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
