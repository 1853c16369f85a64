package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kgrae/bookdesk/internal/bookapi"
)

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book catalog",
	}
	cmd.AddCommand(
		newBooksListCmd(),
		newBooksGetCmd(),
		newBooksAddCmd(),
		newBooksEditCmd(),
		newBooksRemoveCmd(),
		newBooksRestoreCmd(),
		newBooksStockCmd(),
	)
	return cmd
}

// bookListFlags maps the catalog filter surface onto cobra flags.
type bookListFlags struct {
	search    string
	category  string
	author    string
	publisher string
	status    string
	sort      string
	available bool
	minPrice  float64
	maxPrice  float64
	page      int
	limit     int
}

func (f *bookListFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "q", "", "Free-text search")
	cmd.Flags().StringVar(&f.category, "category", "", "Filter by category id")
	cmd.Flags().StringVar(&f.author, "author", "", "Filter by author id")
	cmd.Flags().StringVar(&f.publisher, "publisher", "", "Filter by publisher id")
	cmd.Flags().StringVar(&f.status, "status", "", "Record status filter (e.g. deleted)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort spec, field:asc or field:desc")
	cmd.Flags().BoolVar(&f.available, "available", false, "Only books in stock")
	cmd.Flags().Float64Var(&f.minPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Float64Var(&f.maxPrice, "max-price", 0, "Maximum price")
	cmd.Flags().IntVar(&f.page, "page", 0, "Page number")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Page size")
}

// query builds a Query carrying only the flags the user actually set.
func (f *bookListFlags) query(cmd *cobra.Command) bookapi.Query {
	q := bookapi.Query{
		Search:    f.search,
		Category:  f.category,
		Author:    f.author,
		Publisher: f.publisher,
		Status:    f.status,
		Page:      f.page,
		Limit:     f.limit,
	}
	if q.Limit == 0 {
		q.Limit = cfg.PageSize
	}
	if cmd.Flags().Changed("available") {
		q.Available = &f.available
	}
	if cmd.Flags().Changed("min-price") {
		q.MinPrice = &f.minPrice
	}
	if cmd.Flags().Changed("max-price") {
		q.MaxPrice = &f.maxPrice
	}
	if f.sort != "" {
		q.Sort = parseSort(f.sort)
	}
	return q
}

func parseSort(spec string) bookapi.SortSpec {
	field, dir, found := strings.Cut(spec, ":")
	if !found {
		return bookapi.SortSpec{Field: spec}
	}
	return bookapi.SortSpec{Field: field, Desc: dir == "desc"}
}

func newBooksListCmd() *cobra.Command {
	var flags bookListFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog books",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := sess.LoadBooks(ctx, flags.query(cmd)); err != nil {
				return err
			}
			snap := sess.Books.Snapshot()
			headers := []string{"ID", "TITLE", "AUTHOR", "CATEGORY", "PRICE", "STOCK", "AVAILABLE"}
			return renderList(snap.Items, snap.Pagination, headers, func(b bookapi.Book) []string {
				return []string{
					b.ID,
					b.Title,
					sess.AuthorNames.Name(ctx, b.Author),
					sess.CategoryNames.Name(ctx, b.Category),
					money(b.Price),
					strconv.Itoa(b.Stock),
					yesNo(b.Available),
				}
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newBooksGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := sess.SelectBook(ctx, args[0]); err != nil {
				return err
			}
			snap := sess.Books.Snapshot()
			if snap.Selected == nil {
				return fmt.Errorf("book %q not loaded", args[0])
			}
			b := *snap.Selected
			return renderRecord(b, [][2]string{
				{"ID", b.ID},
				{"Title", b.Title},
				{"Author", sess.AuthorNames.Name(ctx, b.Author)},
				{"Publisher", sess.PublisherNames.Name(ctx, b.Publisher)},
				{"Category", sess.CategoryNames.Name(ctx, b.Category)},
				{"ISBN", b.ISBN},
				{"Price", money(b.Price)},
				{"Stock", strconv.Itoa(b.Stock)},
				{"Available", yesNo(b.Available)},
				{"Deleted", yesNo(b.Deleted)},
				{"Created", timestamp(b.ParsedCreatedAt())},
				{"Updated", timestamp(b.ParsedUpdatedAt())},
				{"Description", b.Description},
			})
		},
	}
}

// bookEditFlags covers the writable book fields shared by add and edit.
type bookEditFlags struct {
	title       string
	description string
	isbn        string
	author      string
	publisher   string
	category    string
	price       float64
	discount    float64
	stock       int
	available   bool
	images      []string
}

func (f *bookEditFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Book title")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&f.author, "author", "", "Author id")
	cmd.Flags().StringVar(&f.publisher, "publisher", "", "Publisher id")
	cmd.Flags().StringVar(&f.category, "category", "", "Category id")
	cmd.Flags().Float64Var(&f.price, "price", 0, "Price")
	cmd.Flags().Float64Var(&f.discount, "discount", 0, "Discount percentage")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "Initial stock")
	cmd.Flags().BoolVar(&f.available, "available", false, "Available for sale")
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "Cover image file, repeatable")
}

// payload collects the flags the user set; unset flags are omitted so the
// server only touches supplied fields.
func (f *bookEditFlags) payload(cmd *cobra.Command) (bookapi.BookPayload, error) {
	p := bookapi.BookPayload{
		Title:       f.title,
		Description: f.description,
		ISBN:        f.isbn,
		Author:      f.author,
		Publisher:   f.publisher,
		Category:    f.category,
	}
	if cmd.Flags().Changed("price") {
		if f.price < 0 {
			return p, fmt.Errorf("price cannot be negative")
		}
		p.Price = &f.price
	}
	if cmd.Flags().Changed("discount") {
		if f.discount < 0 || f.discount > 100 {
			return p, fmt.Errorf("discount must be between 0 and 100")
		}
		p.Discount = &f.discount
	}
	if cmd.Flags().Changed("stock") {
		if f.stock < 0 {
			return p, fmt.Errorf("stock cannot be negative")
		}
		p.Stock = &f.stock
	}
	if cmd.Flags().Changed("available") {
		p.Available = &f.available
	}
	for _, path := range f.images {
		content, err := os.ReadFile(path)
		if err != nil {
			return p, fmt.Errorf("read image %q: %w", path, err)
		}
		p.Images = append(p.Images, bookapi.Attachment{
			Field:   "images",
			Name:    filepath.Base(path),
			Content: content,
		})
	}
	return p, nil
}

func newBooksAddCmd() *cobra.Command {
	var flags bookEditFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.title == "" {
				return fmt.Errorf("--title is required")
			}
			payload, err := flags.payload(cmd)
			if err != nil {
				return err
			}
			if err := sess.CreateBook(cmd.Context(), payload); err != nil {
				return err
			}
			snap := sess.Books.Snapshot()
			if len(snap.Items) > 0 {
				ok("Created book %s (%s)", snap.Items[0].Title, snap.Items[0].ID)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newBooksEditCmd() *cobra.Command {
	var flags bookEditFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update book fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := flags.payload(cmd)
			if err != nil {
				return err
			}
			if err := sess.UpdateBook(cmd.Context(), args[0], payload); err != nil {
				return err
			}
			ok("Updated book %s", args[0])
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newBooksRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Soft-delete a book (recoverable with restore)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sess.DeleteBook(cmd.Context(), args[0]); err != nil {
				return err
			}
			ok("Deleted book %s (restore with: bookdesk books restore %s)", args[0], args[0])
			return nil
		},
	}
}

func newBooksRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Recover a soft-deleted book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sess.RestoreBook(cmd.Context(), args[0]); err != nil {
				return err
			}
			ok("Restored book %s", args[0])
			return nil
		},
	}
}

func newBooksStockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stock <id> <delta>",
		Short: "Adjust stock by a signed delta",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("delta must be an integer: %q", args[1])
			}
			if delta == 0 {
				return fmt.Errorf("delta cannot be zero")
			}
			if err := sess.AdjustStock(cmd.Context(), args[0], delta); err != nil {
				return err
			}
			ok("Adjusted stock of %s by %+d", args[0], delta)
			return nil
		},
	}
}
