package bookapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Record is implemented by every entity kind the service exposes.
type Record interface {
	Key() string
	Label() string
}

// Resource provides the uniform CRUD surface for one entity kind. The
// service shapes list, get, create, update, and delete identically across
// books, authors, publishers, and categories; only books add operations on
// top (see BookService).
type Resource[T Record] struct {
	c    *Client
	base string // mounted path, e.g. "/api/authors"
	name string // metrics label
}

// List fetches one page of the collection using the present query keys.
func (r *Resource[T]) List(ctx context.Context, q Query) (Page[T], error) {
	r.c.metrics.IncRequest(r.name, "list")
	rel := &url.URL{Path: r.base, RawQuery: q.Values().Encode()}
	var page Page[T]
	if _, err := r.c.doJSON(ctx, http.MethodGet, rel, nil, &page); err != nil {
		return Page[T]{}, err
	}
	return page, nil
}

// Get fetches a single record by id.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, fmt.Errorf("id required")
	}
	r.c.metrics.IncRequest(r.name, "get")
	var record T
	if _, err := r.c.doJSON(ctx, http.MethodGet, r.item(id), nil, &record); err != nil {
		return zero, err
	}
	return record, nil
}

// Create submits a new record and returns the server's stored form.
func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	var zero T
	r.c.metrics.IncRequest(r.name, "create")
	var record T
	if _, err := r.c.doJSON(ctx, http.MethodPost, &url.URL{Path: r.base}, payload, &record); err != nil {
		return zero, err
	}
	return record, nil
}

// Update submits changed fields and returns the resulting record.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	var zero T
	if id == "" {
		return zero, fmt.Errorf("id required")
	}
	r.c.metrics.IncRequest(r.name, "update")
	var record T
	if _, err := r.c.doJSON(ctx, http.MethodPut, r.item(id), payload, &record); err != nil {
		return zero, err
	}
	return record, nil
}

// Delete removes a record and returns the server's confirmation message.
// Delete semantics are server-defined; callers must not assume the record
// becomes un-fetchable (books are soft-deleted and recoverable).
func (r *Resource[T]) Delete(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("id required")
	}
	r.c.metrics.IncRequest(r.name, "delete")
	return r.c.doJSON(ctx, http.MethodDelete, r.item(id), nil, nil)
}

func (r *Resource[T]) item(id string) *url.URL {
	return &url.URL{Path: r.base + "/" + url.PathEscape(id)}
}

// AuthorPayload carries author create/update fields.
type AuthorPayload struct {
	Name     string `json:"name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// PublisherPayload carries publisher create/update fields.
type PublisherPayload struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Website string `json:"website,omitempty"`
}

// CategoryPayload carries category create/update fields.
type CategoryPayload struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}
