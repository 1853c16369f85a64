package bookapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Pagination mirrors the pagination block the server attaches to list
// responses. The client stores it verbatim and never recomputes it.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// Page is one server-returned page of a collection.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Book describes a catalog entry. Cross-reference fields arrive either as a
// bare object id or as the populated sub-document, depending on whether the
// server expanded them; Ref tolerates both.
type Book struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount,omitempty"`
	Stock       int      `json:"stock"`
	Available   bool     `json:"available"`
	Deleted     bool     `json:"isDeleted,omitempty"`
	Author      Ref      `json:"author"`
	Publisher   Ref      `json:"publisher"`
	Category    Ref      `json:"category"`
	Images      []string `json:"images,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// Key returns the record identifier.
func (b Book) Key() string { return b.ID }

// Label returns the display name for the record.
func (b Book) Label() string { return b.Title }

// EffectivePrice applies the server-reported discount percentage for display.
// Authoritative pricing stays server-side; this only labels cart lines.
func (b Book) EffectivePrice() float64 {
	if b.Discount <= 0 {
		return b.Price
	}
	return b.Price * (1 - b.Discount/100)
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (b Book) ParsedCreatedAt() time.Time { return parseTime(b.CreatedAt) }

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (b Book) ParsedUpdatedAt() time.Time { return parseTime(b.UpdatedAt) }

// Author describes a book author record.
type Author struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (a Author) Key() string   { return a.ID }
func (a Author) Label() string { return a.Name }

// Publisher describes a publishing house record.
type Publisher struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Website   string `json:"website,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (p Publisher) Key() string   { return p.ID }
func (p Publisher) Label() string { return p.Name }

// Category describes a catalog category record.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

func (c Category) Key() string   { return c.ID }
func (c Category) Label() string { return c.Name }

// Ref is a cross-reference field: either a bare identifier or the expanded
// sub-document. ID is always populated when the reference is present.
type Ref struct {
	ID       string
	Expanded *RefDoc
}

// RefDoc is the populated form of a cross-reference.
type RefDoc struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Name returns the display name when the reference was expanded, "" otherwise.
func (r Ref) Name() string {
	if r.Expanded != nil {
		return r.Expanded.Name
	}
	return ""
}

// IsZero reports whether the reference is absent.
func (r Ref) IsZero() bool { return r.ID == "" && r.Expanded == nil }

// UnmarshalJSON accepts a bare id string, an expanded document, or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return fmt.Errorf("decode reference id: %w", err)
		}
		*r = Ref{ID: id}
		return nil
	}
	var doc RefDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return fmt.Errorf("decode reference document: %w", err)
	}
	*r = Ref{ID: doc.ID, Expanded: &doc}
	return nil
}

// MarshalJSON emits the bare id; payloads never send expanded documents back.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// MarshalYAML mirrors the JSON form for structured CLI output.
func (r Ref) MarshalYAML() (any, error) {
	if r.ID == "" {
		return nil, nil
	}
	return r.ID, nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
