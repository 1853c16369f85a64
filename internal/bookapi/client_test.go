package bookapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:4000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:4000" {
		t.Fatalf("base = %q, want http scheme prepended", u.String())
	}

	u, err = parseBaseURL("https://example.com/tail?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_UnwrapsEnvelopeAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/books":
			gotQuery = r.URL.Query()
			_, _ = w.Write([]byte(`{
				"success": true,
				"message": "ok",
				"data": {
					"items": [
						{"_id": "b1", "title": "Dune", "price": 10, "stock": 3, "available": true,
						 "author": {"_id": "a1", "name": "Frank Herbert"},
						 "category": "c1"}
					],
					"pagination": {"currentPage": 2, "totalPages": 5, "totalItems": 42, "itemsPerPage": 10}
				}
			}`))
		case "/api/authors/a1":
			_, _ = w.Write([]byte(`{"success": true, "data": {"_id": "a1", "name": "Frank Herbert"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	available := true
	min := 5.5
	page, err := c.Books().List(ctx, Query{
		Search:    "dune",
		Available: &available,
		MinPrice:  &min,
		Sort:      SortSpec{Field: "price", Desc: true},
		Page:      2,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "b1" {
		t.Fatalf("List items = %#v, want 1 item b1", page.Items)
	}
	if page.Pagination.CurrentPage != 2 || page.Pagination.TotalItems != 42 {
		t.Fatalf("pagination = %#v, want page 2 of 42 items", page.Pagination)
	}
	if got := page.Items[0].Author.Name(); got != "Frank Herbert" {
		t.Fatalf("expanded author name = %q, want Frank Herbert", got)
	}
	if got := page.Items[0].Category.ID; got != "c1" {
		t.Fatalf("bare category id = %q, want c1", got)
	}

	if gotQuery.Get("q") != "dune" ||
		gotQuery.Get("available") != "true" ||
		gotQuery.Get("minPrice") != "5.5" ||
		gotQuery.Get("sort") != "price:desc" ||
		gotQuery.Get("page") != "2" ||
		gotQuery.Get("limit") != "10" {
		t.Fatalf("List query = %v, want params encoded", gotQuery)
	}
	for _, absent := range []string{"category", "author", "publisher", "maxPrice", "status"} {
		if gotQuery.Has(absent) {
			t.Fatalf("List query contains %q, want key omitted", absent)
		}
	}

	author, err := c.Authors().Get(ctx, "a1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if author.Name != "Frank Herbert" {
		t.Fatalf("author = %#v, want Frank Herbert", author)
	}

	if !strings.HasPrefix(gotUserAgent, "bookdesk/") {
		t.Fatalf("User-Agent = %q, want bookdesk/*", gotUserAgent)
	}
}

func TestClient_NormalizesFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/books/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success": false, "message": "Book not found"}`))
		case "/api/books/down":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success": false, "message": "DB unavailable"}`))
		case "/api/books/bare":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`upstream timeout`))
		case "/api/books/refused":
			// 200 with success:false still fails.
			_, _ = w.Write([]byte(`{"success": false, "message": "validation failed"}`))
		case "/api/books/garbage":
			_, _ = w.Write([]byte(`{not-json`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.Books().Get(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing record error = %v, want ErrNotFound", err)
	}
	if ErrorMessage(err) != "Book not found" {
		t.Fatalf("message = %q, want server message surfaced", ErrorMessage(err))
	}

	_, err = c.Books().Get(ctx, "down")
	if !errors.Is(err, ErrServer) {
		t.Fatalf("server failure error = %v, want ErrServer", err)
	}
	if ErrorMessage(err) != "DB unavailable" {
		t.Fatalf("message = %q, want DB unavailable", ErrorMessage(err))
	}

	_, err = c.Books().Get(ctx, "bare")
	if err == nil || !strings.Contains(err.Error(), "server returned status 502") {
		t.Fatalf("non-envelope failure error = %v, want status fallback message", err)
	}

	_, err = c.Books().Get(ctx, "refused")
	if !errors.Is(err, ErrServer) || ErrorMessage(err) != "validation failed" {
		t.Fatalf("success=false error = %v, want ErrServer with server message", err)
	}

	_, err = c.Books().Get(ctx, "garbage")
	if err == nil || !strings.Contains(err.Error(), "unexpected response") {
		t.Fatalf("decode failure error = %v, want unexpected response", err)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Books().Get(context.Background(), "b1")
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("error = %v, want ErrNetwork", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 0 {
		t.Fatalf("error = %#v, want APIError with status 0", err)
	}
	if strings.Contains(ErrorMessage(err), "dial") {
		t.Fatalf("message = %q, want transport detail hidden", ErrorMessage(err))
	}
}

func TestClient_DeleteReturnsConfirmation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/categories/c1" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "message": "Category deleted"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	msg, err := c.Categories().Delete(context.Background(), "c1")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if msg != "Category deleted" {
		t.Fatalf("confirmation = %q, want Category deleted", msg)
	}
}

func TestBookService_CreateSwitchesToMultipart(t *testing.T) {
	t.Parallel()

	type captured struct {
		contentType string
		fields      map[string]string
		files       map[string][]byte
		jsonBody    map[string]any
	}
	var got captured

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = captured{contentType: r.Header.Get("Content-Type")}
		mediaType, params, err := mime.ParseMediaType(got.contentType)
		if err == nil && mediaType == "multipart/form-data" {
			got.fields = map[string]string{}
			got.files = map[string][]byte{}
			reader := multipart.NewReader(r.Body, params["boundary"])
			for {
				part, err := reader.NextPart()
				if err != nil {
					break
				}
				content, _ := io.ReadAll(part)
				if part.FileName() != "" {
					got.files[part.FileName()] = content
				} else {
					got.fields[part.FormName()] = string(content)
				}
			}
		} else {
			_ = json.NewDecoder(r.Body).Decode(&got.jsonBody)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"_id": "b9", "title": "New"}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	price := 12.5
	book, err := c.Books().CreateBook(ctx, BookPayload{
		Title:  "New",
		Price:  &price,
		Author: "a1",
		Images: []Attachment{{Name: "cover.jpg", Content: []byte("jpegbytes")}},
	})
	if err != nil {
		t.Fatalf("CreateBook returned error: %v", err)
	}
	if book.ID != "b9" {
		t.Fatalf("created book = %#v, want id b9", book)
	}
	if !strings.HasPrefix(got.contentType, "multipart/form-data") {
		t.Fatalf("Content-Type = %q, want multipart/form-data", got.contentType)
	}
	if got.fields["title"] != "New" || got.fields["price"] != "12.5" || got.fields["author"] != "a1" {
		t.Fatalf("form fields = %v, want scalars flattened", got.fields)
	}
	if string(got.files["cover.jpg"]) != "jpegbytes" {
		t.Fatalf("form files = %v, want cover.jpg carried", got.files)
	}

	_, err = c.Books().CreateBook(ctx, BookPayload{Title: "Plain", Price: &price})
	if err != nil {
		t.Fatalf("CreateBook returned error: %v", err)
	}
	if got.contentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json without images", got.contentType)
	}
	if got.jsonBody["title"] != "Plain" {
		t.Fatalf("json body = %v, want title Plain", got.jsonBody)
	}
	if _, present := got.jsonBody["stock"]; present {
		t.Fatalf("json body = %v, want unset pointer fields omitted", got.jsonBody)
	}
}

func TestBookService_StockAndRestoreRoutes(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	var gotBody map[string]int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody = nil
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"_id": "b1", "stock": 4}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	book, err := c.Books().UpdateStock(ctx, "b1", -2)
	if err != nil {
		t.Fatalf("UpdateStock returned error: %v", err)
	}
	if book.Stock != 4 {
		t.Fatalf("stock = %d, want server value 4", book.Stock)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/books/b1/stock" {
		t.Fatalf("route = %s %s, want PUT /api/books/b1/stock", gotMethod, gotPath)
	}
	if gotBody["quantity"] != -2 {
		t.Fatalf("body = %v, want quantity -2", gotBody)
	}

	if _, err := c.Books().Restore(ctx, "b1"); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/books/b1/restore" {
		t.Fatalf("route = %s %s, want PUT /api/books/b1/restore", gotMethod, gotPath)
	}
}

func TestResource_CreateThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	// The server stores the created record and serves the same document
	// back on get.
	var stored []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/authors":
			var payload AuthorPayload
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			stored, _ = json.Marshal(Author{
				ID:        "a9",
				Name:      payload.Name,
				Bio:       payload.Bio,
				PhotoURL:  payload.PhotoURL,
				CreatedAt: "2026-08-01T09:00:00.000Z",
				UpdatedAt: "2026-08-01T09:00:00.000Z",
			})
			_, _ = w.Write([]byte(`{"success": true, "data": ` + string(stored) + `}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/authors/a9":
			_, _ = w.Write([]byte(`{"success": true, "data": ` + string(stored) + `}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	created, err := c.Authors().Create(ctx, AuthorPayload{
		Name: "Ursula K. Le Guin",
		Bio:  "Wrote the Hainish cycle.",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created record = %#v, want server-assigned id", created)
	}

	fetched, err := c.Authors().Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if fetched != created {
		t.Fatalf("get after create = %#v, want %#v", fetched, created)
	}
}

func TestResource_RequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Authors().Get(context.Background(), ""); err == nil {
		t.Fatalf("Get with empty id returned nil error, want error")
	}
	if _, err := c.Authors().Delete(context.Background(), ""); err == nil {
		t.Fatalf("Delete with empty id returned nil error, want error")
	}
	if _, err := c.Books().UpdateStock(context.Background(), "", 1); err == nil {
		t.Fatalf("UpdateStock with empty id returned nil error, want error")
	}
}
