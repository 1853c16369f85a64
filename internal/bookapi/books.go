package bookapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// BookService extends the uniform CRUD surface with the book-only
// operations: stock adjustment, soft-delete recovery, and mixed
// scalar+binary create/update payloads.
type BookService struct {
	*Resource[Book]
}

// BookPayload carries book create/update fields. Nil pointers and empty
// strings are omitted so partial updates only touch supplied fields.
// Images, when present, switch the request to multipart/form-data.
type BookPayload struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	ISBN        string       `json:"isbn,omitempty"`
	Price       *float64     `json:"price,omitempty"`
	Discount    *float64     `json:"discount,omitempty"`
	Stock       *int         `json:"stock,omitempty"`
	Available   *bool        `json:"available,omitempty"`
	Author      string       `json:"author,omitempty"`
	Publisher   string       `json:"publisher,omitempty"`
	Category    string       `json:"category,omitempty"`
	Images      []Attachment `json:"-"`
}

// formFields flattens the scalar fields for multipart submission.
func (p BookPayload) formFields() map[string]string {
	fields := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}
	set("title", p.Title)
	set("description", p.Description)
	set("isbn", p.ISBN)
	set("author", p.Author)
	set("publisher", p.Publisher)
	set("category", p.Category)
	if p.Price != nil {
		fields["price"] = strconv.FormatFloat(*p.Price, 'f', -1, 64)
	}
	if p.Discount != nil {
		fields["discount"] = strconv.FormatFloat(*p.Discount, 'f', -1, 64)
	}
	if p.Stock != nil {
		fields["stock"] = strconv.Itoa(*p.Stock)
	}
	if p.Available != nil {
		fields["available"] = strconv.FormatBool(*p.Available)
	}
	return fields
}

// CreateBook submits a new book, as multipart when images are attached.
func (s *BookService) CreateBook(ctx context.Context, payload BookPayload) (Book, error) {
	s.c.metrics.IncRequest(s.name, "create")
	rel := &url.URL{Path: s.base}
	var book Book
	var err error
	if len(payload.Images) > 0 {
		_, err = s.c.doMultipart(ctx, http.MethodPost, rel, payload.formFields(), payload.Images, &book)
	} else {
		_, err = s.c.doJSON(ctx, http.MethodPost, rel, payload, &book)
	}
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// UpdateBook submits changed fields, as multipart when images are attached.
func (s *BookService) UpdateBook(ctx context.Context, id string, payload BookPayload) (Book, error) {
	if id == "" {
		return Book{}, fmt.Errorf("id required")
	}
	s.c.metrics.IncRequest(s.name, "update")
	rel := s.item(id)
	var book Book
	var err error
	if len(payload.Images) > 0 {
		_, err = s.c.doMultipart(ctx, http.MethodPut, rel, payload.formFields(), payload.Images, &book)
	} else {
		_, err = s.c.doJSON(ctx, http.MethodPut, rel, payload, &book)
	}
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// UpdateStock applies a signed quantity delta and returns the updated book.
// The server owns the arithmetic and rejects adjustments below zero.
func (s *BookService) UpdateStock(ctx context.Context, id string, delta int) (Book, error) {
	if id == "" {
		return Book{}, fmt.Errorf("id required")
	}
	s.c.metrics.IncRequest(s.name, "stock")
	rel := &url.URL{Path: s.base + "/" + url.PathEscape(id) + "/stock"}
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: delta}
	var book Book
	if _, err := s.c.doJSON(ctx, http.MethodPut, rel, body, &book); err != nil {
		return Book{}, err
	}
	return book, nil
}

// Restore reverses a soft delete and returns the recovered book.
func (s *BookService) Restore(ctx context.Context, id string) (Book, error) {
	if id == "" {
		return Book{}, fmt.Errorf("id required")
	}
	s.c.metrics.IncRequest(s.name, "restore")
	rel := &url.URL{Path: s.base + "/" + url.PathEscape(id) + "/restore"}
	var book Book
	if _, err := s.c.doJSON(ctx, http.MethodPut, rel, nil, &book); err != nil {
		return Book{}, err
	}
	return book, nil
}
