package session

import (
	"context"

	"github.com/kgrae/bookdesk/internal/bookapi"
)

// LoadBooks fetches one catalog page into the book cache.
func (s *Session) LoadBooks(ctx context.Context, q bookapi.Query) error {
	return fetchList(ctx, s.Books, func(ctx context.Context) (bookapi.Page[bookapi.Book], error) {
		return s.api.Books().List(ctx, q)
	})
}

// SelectBook fetches a single book into the selection slot.
func (s *Session) SelectBook(ctx context.Context, id string) error {
	return fetchOne(ctx, s.Books, func(ctx context.Context) (bookapi.Book, error) {
		return s.api.Books().Get(ctx, id)
	})
}

// CreateBook submits a new book and prepends the stored record.
func (s *Session) CreateBook(ctx context.Context, payload bookapi.BookPayload) error {
	return created(ctx, s, s.Books, "book", func(ctx context.Context) (bookapi.Book, error) {
		return s.api.Books().CreateBook(ctx, payload)
	})
}

// UpdateBook submits changed fields and syncs the cached copy.
func (s *Session) UpdateBook(ctx context.Context, id string, payload bookapi.BookPayload) error {
	return updated(ctx, s, s.Books, "book updated", func(ctx context.Context) (bookapi.Book, error) {
		return s.api.Books().UpdateBook(ctx, id, payload)
	})
}

// DeleteBook soft-deletes a book; the record stays recoverable server-side.
func (s *Session) DeleteBook(ctx context.Context, id string) error {
	return deleted(ctx, s, s.Books, id, "book deleted", func(ctx context.Context) (string, error) {
		return s.api.Books().Delete(ctx, id)
	})
}

// RestoreBook reverses a soft delete and syncs the cached copy.
func (s *Session) RestoreBook(ctx context.Context, id string) error {
	return updated(ctx, s, s.Books, "book restored", func(ctx context.Context) (bookapi.Book, error) {
		return s.api.Books().Restore(ctx, id)
	})
}

// AdjustStock applies a signed stock delta and syncs the cached copy.
func (s *Session) AdjustStock(ctx context.Context, id string, delta int) error {
	return updated(ctx, s, s.Books, "stock updated", func(ctx context.Context) (bookapi.Book, error) {
		return s.api.Books().UpdateStock(ctx, id, delta)
	})
}

// LoadAuthors fetches one page of authors.
func (s *Session) LoadAuthors(ctx context.Context, q bookapi.Query) error {
	return fetchList(ctx, s.Authors, func(ctx context.Context) (bookapi.Page[bookapi.Author], error) {
		return s.api.Authors().List(ctx, q)
	})
}

// SelectAuthor fetches a single author into the selection slot.
func (s *Session) SelectAuthor(ctx context.Context, id string) error {
	return fetchOne(ctx, s.Authors, func(ctx context.Context) (bookapi.Author, error) {
		return s.api.Authors().Get(ctx, id)
	})
}

// CreateAuthor submits a new author record.
func (s *Session) CreateAuthor(ctx context.Context, payload bookapi.AuthorPayload) error {
	return created(ctx, s, s.Authors, "author", func(ctx context.Context) (bookapi.Author, error) {
		return s.api.Authors().Create(ctx, payload)
	})
}

// UpdateAuthor submits changed author fields.
func (s *Session) UpdateAuthor(ctx context.Context, id string, payload bookapi.AuthorPayload) error {
	return updated(ctx, s, s.Authors, "author updated", func(ctx context.Context) (bookapi.Author, error) {
		return s.api.Authors().Update(ctx, id, payload)
	})
}

// DeleteAuthor removes an author; delete semantics are server-defined.
func (s *Session) DeleteAuthor(ctx context.Context, id string) error {
	return deleted(ctx, s, s.Authors, id, "author deleted", func(ctx context.Context) (string, error) {
		return s.api.Authors().Delete(ctx, id)
	})
}

// LoadPublishers fetches one page of publishers.
func (s *Session) LoadPublishers(ctx context.Context, q bookapi.Query) error {
	return fetchList(ctx, s.Publishers, func(ctx context.Context) (bookapi.Page[bookapi.Publisher], error) {
		return s.api.Publishers().List(ctx, q)
	})
}

// SelectPublisher fetches a single publisher into the selection slot.
func (s *Session) SelectPublisher(ctx context.Context, id string) error {
	return fetchOne(ctx, s.Publishers, func(ctx context.Context) (bookapi.Publisher, error) {
		return s.api.Publishers().Get(ctx, id)
	})
}

// CreatePublisher submits a new publisher record.
func (s *Session) CreatePublisher(ctx context.Context, payload bookapi.PublisherPayload) error {
	return created(ctx, s, s.Publishers, "publisher", func(ctx context.Context) (bookapi.Publisher, error) {
		return s.api.Publishers().Create(ctx, payload)
	})
}

// UpdatePublisher submits changed publisher fields.
func (s *Session) UpdatePublisher(ctx context.Context, id string, payload bookapi.PublisherPayload) error {
	return updated(ctx, s, s.Publishers, "publisher updated", func(ctx context.Context) (bookapi.Publisher, error) {
		return s.api.Publishers().Update(ctx, id, payload)
	})
}

// DeletePublisher removes a publisher; delete semantics are server-defined.
func (s *Session) DeletePublisher(ctx context.Context, id string) error {
	return deleted(ctx, s, s.Publishers, id, "publisher deleted", func(ctx context.Context) (string, error) {
		return s.api.Publishers().Delete(ctx, id)
	})
}

// LoadCategories fetches one page of categories.
func (s *Session) LoadCategories(ctx context.Context, q bookapi.Query) error {
	return fetchList(ctx, s.Categories, func(ctx context.Context) (bookapi.Page[bookapi.Category], error) {
		return s.api.Categories().List(ctx, q)
	})
}

// SelectCategory fetches a single category into the selection slot.
func (s *Session) SelectCategory(ctx context.Context, id string) error {
	return fetchOne(ctx, s.Categories, func(ctx context.Context) (bookapi.Category, error) {
		return s.api.Categories().Get(ctx, id)
	})
}

// CreateCategory submits a new category record.
func (s *Session) CreateCategory(ctx context.Context, payload bookapi.CategoryPayload) error {
	return created(ctx, s, s.Categories, "category", func(ctx context.Context) (bookapi.Category, error) {
		return s.api.Categories().Create(ctx, payload)
	})
}

// UpdateCategory submits changed category fields.
func (s *Session) UpdateCategory(ctx context.Context, id string, payload bookapi.CategoryPayload) error {
	return updated(ctx, s, s.Categories, "category updated", func(ctx context.Context) (bookapi.Category, error) {
		return s.api.Categories().Update(ctx, id, payload)
	})
}

// DeleteCategory removes a category; delete semantics are server-defined.
func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	return deleted(ctx, s, s.Categories, id, "category deleted", func(ctx context.Context) (string, error) {
		return s.api.Categories().Delete(ctx, id)
	})
}

// AddToCart puts a displayed book in the cart.
func (s *Session) AddToCart(book bookapi.Book, qty int) {
	s.Cart.Add(book, qty)
	s.notify(LevelSuccess, "added to cart: "+book.Title)
}

// RemoveFromCart drops a cart line.
func (s *Session) RemoveFromCart(id string) {
	s.Cart.Remove(id)
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.Cart.Clear()
	s.notify(LevelSuccess, "cart cleared")
}
