package bookapi

import (
	"encoding/json"
	"testing"
)

func TestRef_DecodesBothShapes(t *testing.T) {
	t.Parallel()

	var ref Ref
	if err := json.Unmarshal([]byte(`"a1"`), &ref); err != nil {
		t.Fatalf("bare id returned error: %v", err)
	}
	if ref.ID != "a1" || ref.Expanded != nil {
		t.Fatalf("bare id ref = %#v, want id only", ref)
	}
	if ref.Name() != "" {
		t.Fatalf("bare id name = %q, want empty", ref.Name())
	}

	if err := json.Unmarshal([]byte(`{"_id": "a1", "name": "Frank Herbert"}`), &ref); err != nil {
		t.Fatalf("expanded doc returned error: %v", err)
	}
	if ref.ID != "a1" || ref.Name() != "Frank Herbert" {
		t.Fatalf("expanded ref = %#v, want id and name", ref)
	}

	if err := json.Unmarshal([]byte(`null`), &ref); err != nil {
		t.Fatalf("null returned error: %v", err)
	}
	if !ref.IsZero() {
		t.Fatalf("null ref = %#v, want zero", ref)
	}
}

func TestRef_MarshalsBareID(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(Ref{ID: "a1", Expanded: &RefDoc{ID: "a1", Name: "Frank Herbert"}})
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(out) != `"a1"` {
		t.Fatalf("marshal = %s, want bare id", out)
	}

	out, err = json.Marshal(Ref{})
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("marshal = %s, want null", out)
	}
}

func TestBook_EffectivePrice(t *testing.T) {
	t.Parallel()

	b := Book{Price: 100}
	if got := b.EffectivePrice(); got != 100 {
		t.Fatalf("price without discount = %v, want 100", got)
	}
	b.Discount = 25
	if got := b.EffectivePrice(); got != 75 {
		t.Fatalf("price with 25%% discount = %v, want 75", got)
	}
}

func TestBook_ParsedTimestamps(t *testing.T) {
	t.Parallel()

	b := Book{CreatedAt: "2024-03-01T10:30:00.000Z"}
	if b.ParsedCreatedAt().IsZero() {
		t.Fatalf("ParsedCreatedAt = zero, want parsed time")
	}
	if got := (Book{}).ParsedUpdatedAt(); !got.IsZero() {
		t.Fatalf("empty timestamp = %v, want zero", got)
	}
}

func TestSortSpec_String(t *testing.T) {
	t.Parallel()

	if got := (SortSpec{}).String(); got != "" {
		t.Fatalf("empty sort = %q, want empty", got)
	}
	if got := (SortSpec{Field: "title"}).String(); got != "title:asc" {
		t.Fatalf("sort = %q, want title:asc", got)
	}
	if got := (SortSpec{Field: "price", Desc: true}).String(); got != "price:desc" {
		t.Fatalf("sort = %q, want price:desc", got)
	}
}
