package bookapi

import (
	"net/url"
	"strconv"
	"strings"
)

// SortSpec names a field and direction, serialized as "field:asc|desc".
type SortSpec struct {
	Field string
	Desc  bool
}

// String renders the wire form, or "" when no field is set.
func (s SortSpec) String() string {
	field := strings.TrimSpace(s.Field)
	if field == "" {
		return ""
	}
	dir := "asc"
	if s.Desc {
		dir = "desc"
	}
	return field + ":" + dir
}

// Query configures list requests. Zero values are omitted from the query
// string entirely; pointer fields distinguish "unset" from a meaningful
// false/zero.
type Query struct {
	Search    string
	Category  string
	Author    string
	Publisher string
	Available *bool
	MinPrice  *float64
	MaxPrice  *float64
	Sort      SortSpec
	Status    string
	Page      int
	Limit     int
}

// Values encodes only the keys that are present.
func (q Query) Values() url.Values {
	values := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		values.Set("q", s)
	}
	if s := strings.TrimSpace(q.Category); s != "" {
		values.Set("category", s)
	}
	if s := strings.TrimSpace(q.Author); s != "" {
		values.Set("author", s)
	}
	if s := strings.TrimSpace(q.Publisher); s != "" {
		values.Set("publisher", s)
	}
	if q.Available != nil {
		values.Set("available", strconv.FormatBool(*q.Available))
	}
	if q.MinPrice != nil {
		values.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		values.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if sort := q.Sort.String(); sort != "" {
		values.Set("sort", sort)
	}
	if s := strings.TrimSpace(q.Status); s != "" {
		values.Set("status", s)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

// WithPage returns a copy of the query pointing at the given page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}
