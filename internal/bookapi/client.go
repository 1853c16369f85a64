package bookapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "http://127.0.0.1:4000"
	defaultUserAgent = "bookdesk/0.1"
	requestTimeout   = 10 * time.Second
)

// Client talks to the bookstore HTTP API. All responses share the
// {success, message, data} envelope; callers only ever see the unwrapped
// data or a normalized *APIError.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	metrics   *Metrics

	books      *BookService
	authors    *Resource[Author]
	publishers *Resource[Publisher]
	categories *Resource[Category]
}

// NewClient builds a Client for the given service root. An empty value
// falls back to the local default.
func NewClient(rawURL string) (*Client, error) {
	base, err := parseBaseURL(rawURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	c.books = &BookService{Resource: &Resource[Book]{c: c, base: "/api/books", name: "books"}}
	c.authors = &Resource[Author]{c: c, base: "/api/authors", name: "authors"}
	c.publishers = &Resource[Publisher]{c: c, base: "/api/publishers", name: "publishers"}
	c.categories = &Resource[Category]{c: c, base: "/api/categories", name: "categories"}
	return c, nil
}

// WithTimeout overrides the request timeout and returns the client.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.http.Timeout = d
	}
	return c
}

// WithMetrics attaches Prometheus collectors and returns the client.
func (c *Client) WithMetrics(m *Metrics) *Client {
	c.metrics = m
	return c
}

// WithTransport swaps the underlying round tripper. Tests use this to plug
// in a mock transport.
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	c.http.Transport = rt
	return c
}

// Books returns the book operations, including stock and restore.
func (c *Client) Books() *BookService { return c.books }

// Authors returns author CRUD operations.
func (c *Client) Authors() *Resource[Author] { return c.authors }

// Publishers returns publisher CRUD operations.
func (c *Client) Publishers() *Resource[Publisher] { return c.publishers }

// Categories returns category CRUD operations.
func (c *Client) Categories() *Resource[Category] { return c.categories }

// BaseURL reports the resolved service root.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// envelope is the uniform wrapper every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Attachment is a binary part transmitted alongside scalar fields.
type Attachment struct {
	Field   string
	Name    string
	Content []byte
}

// doJSON issues a request with an optional JSON body and decodes the
// envelope's data into dest. The envelope message is returned for callers
// that surface confirmations.
func (c *Client) doJSON(ctx context.Context, method string, rel *url.URL, body any, dest any) (string, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, rel, contentType, reader, dest)
}

// doMultipart issues a multipart/form-data request carrying scalar fields
// and binary attachments in one body.
func (c *Client) doMultipart(ctx context.Context, method string, rel *url.URL, fields map[string]string, files []Attachment, dest any) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return "", fmt.Errorf("write form field %q: %w", key, err)
		}
	}
	for _, file := range files {
		field := file.Field
		if field == "" {
			field = "images"
		}
		part, err := writer.CreateFormFile(field, file.Name)
		if err != nil {
			return "", fmt.Errorf("create form file %q: %w", file.Name, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return "", fmt.Errorf("write form file %q: %w", file.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize form body: %w", err)
	}
	return c.doRaw(ctx, method, rel, writer.FormDataContentType(), &buf, dest)
}

// doRaw performs the HTTP exchange, unwraps the envelope, and normalizes
// every failure into *APIError.
func (c *Client) doRaw(ctx context.Context, method string, rel *url.URL, contentType string, body io.Reader, dest any) (string, error) {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		return "", c.fail(networkError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail(networkError(err))
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 || (decodeErr == nil && !env.Success) {
		message := ""
		if decodeErr == nil {
			message = strings.TrimSpace(env.Message)
		}
		if message == "" {
			message = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
		return "", c.fail(serverError(resp.StatusCode, message, decodeErr))
	}
	if decodeErr != nil {
		return "", c.fail(serverError(resp.StatusCode, "unexpected response from the book service", decodeErr))
	}
	if dest != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return "", c.fail(serverError(resp.StatusCode, "unexpected response from the book service", err))
		}
	}
	return env.Message, nil
}

func (c *Client) fail(err *APIError) error {
	c.metrics.IncError(kindLabel(err))
	return err
}

func parseBaseURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", rawURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
