// Package session wires the gateway to the collection caches. It is the
// dispatch layer the page surfaces (CLI and TUI) share: every method runs
// one request lifecycle end to end, applying the pending transition, the
// gateway call, and the fulfilled or rejected transition.
package session

import (
	"context"

	"github.com/kgrae/bookdesk/internal/bookapi"
	"github.com/kgrae/bookdesk/internal/lookup"
	"github.com/kgrae/bookdesk/internal/store"
)

const noticeBuffer = 16

// Level classifies a notice for presentation.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notice is a transient notification surfaced after a mutation settles.
// The channel it arrives on is the whole contract; presentation (toast,
// status bar, stderr line) belongs to the consumer.
type Notice struct {
	Level Level
	Text  string
}

// Session owns one collection cache per entity kind plus the cart. It is
// constructed once at startup and passed to consumers explicitly; there are
// no package-level singletons.
type Session struct {
	api *bookapi.Client

	Books      *store.Collection[bookapi.Book]
	Authors    *store.Collection[bookapi.Author]
	Publishers *store.Collection[bookapi.Publisher]
	Categories *store.Collection[bookapi.Category]
	Cart       *store.Cart

	AuthorNames    *lookup.Resolver
	PublisherNames *lookup.Resolver
	CategoryNames  *lookup.Resolver

	notices chan Notice
}

// New builds a Session around the given gateway client.
func New(api *bookapi.Client) *Session {
	s := &Session{
		api:        api,
		Books:      store.NewCollection[bookapi.Book](),
		Authors:    store.NewCollection[bookapi.Author](),
		Publishers: store.NewCollection[bookapi.Publisher](),
		Categories: store.NewCollection[bookapi.Category](),
		Cart:       store.NewCart(),
		notices:    make(chan Notice, noticeBuffer),
	}
	s.AuthorNames = lookup.New(0, func(ctx context.Context, id string) (string, error) {
		author, err := api.Authors().Get(ctx, id)
		if err != nil {
			return "", err
		}
		return author.Name, nil
	})
	s.PublisherNames = lookup.New(0, func(ctx context.Context, id string) (string, error) {
		publisher, err := api.Publishers().Get(ctx, id)
		if err != nil {
			return "", err
		}
		return publisher.Name, nil
	})
	s.CategoryNames = lookup.New(0, func(ctx context.Context, id string) (string, error) {
		category, err := api.Categories().Get(ctx, id)
		if err != nil {
			return "", err
		}
		return category.Name, nil
	})
	return s
}

// API exposes the underlying gateway for consumers that bypass the caches.
func (s *Session) API() *bookapi.Client { return s.api }

// Notices returns the channel mutation outcomes are announced on.
func (s *Session) Notices() <-chan Notice { return s.notices }

// notify delivers without blocking; a slow consumer drops notices rather
// than stalling a dispatch.
func (s *Session) notify(level Level, text string) {
	if text == "" {
		return
	}
	select {
	case s.notices <- Notice{Level: level, Text: text}:
	default:
	}
}

// fetchList runs the list lifecycle against one collection.
func fetchList[T store.Entity](ctx context.Context, col *store.Collection[T], fetch func(context.Context) (bookapi.Page[T], error)) error {
	col.BeginList()
	page, err := fetch(ctx)
	if err != nil {
		col.ListFailed(bookapi.ErrorMessage(err))
		return err
	}
	col.ListLoaded(page.Items, page.Pagination)
	return nil
}

// fetchOne runs the get-by-id lifecycle against one collection.
func fetchOne[T store.Entity](ctx context.Context, col *store.Collection[T], fetch func(context.Context) (T, error)) error {
	col.BeginGet()
	record, err := fetch(ctx)
	if err != nil {
		col.GetFailed(bookapi.ErrorMessage(err))
		return err
	}
	col.GetLoaded(record)
	return nil
}

// created runs a create mutation: prepend on success, untouched on failure.
func created[T store.Entity](ctx context.Context, s *Session, col *store.Collection[T], what string, create func(context.Context) (T, error)) error {
	col.BeginMutate()
	record, err := create(ctx)
	if err != nil {
		col.MutateFailed(bookapi.ErrorMessage(err))
		s.notify(LevelError, bookapi.ErrorMessage(err))
		return err
	}
	col.Created(record)
	s.notify(LevelSuccess, what+" created")
	return nil
}

// updated runs an update-shaped mutation (update, restore, stock change).
func updated[T store.Entity](ctx context.Context, s *Session, col *store.Collection[T], what string, update func(context.Context) (T, error)) error {
	col.BeginMutate()
	record, err := update(ctx)
	if err != nil {
		col.MutateFailed(bookapi.ErrorMessage(err))
		s.notify(LevelError, bookapi.ErrorMessage(err))
		return err
	}
	col.Updated(record)
	s.notify(LevelSuccess, what)
	return nil
}

// deleted runs a delete mutation, surfacing the server confirmation.
func deleted[T store.Entity](ctx context.Context, s *Session, col *store.Collection[T], id, fallback string, remove func(context.Context) (string, error)) error {
	col.BeginMutate()
	message, err := remove(ctx)
	if err != nil {
		col.MutateFailed(bookapi.ErrorMessage(err))
		s.notify(LevelError, bookapi.ErrorMessage(err))
		return err
	}
	col.Deleted(id)
	if message == "" {
		message = fallback
	}
	s.notify(LevelSuccess, message)
	return nil
}
