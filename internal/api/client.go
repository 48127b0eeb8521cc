package api

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource supplies the current bearer token. An empty token means the
// caller is logged out and no Authorization header is attached.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource for tests and one-shot CLI calls.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }

// Client talks to the Canto platform HTTP API.
type Client struct {
	base      string
	http      *http.Client
	tokens    TokenSource
	userAgent string
	log       zerolog.Logger
}

const (
	defaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "canto/0.1"
	requestTimeout   = 60 * time.Second
)

// NewClient builds a Client against the given base URL. An empty baseURL
// falls back to the development default. tokens may be nil for a client
// that only calls public endpoints.
func NewClient(baseURL string, tokens TokenSource, log zerolog.Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		base: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		tokens:    tokens,
		userAgent: defaultUserAgent,
		log:       log,
	}, nil
}

// Origin returns the resolved API origin with any /api suffix stripped.
// Static and media assets are served from this origin outside the API
// prefix, so relative media paths resolve against it.
func (c *Client) Origin() string {
	return c.base
}

// Upload is a single-file multipart request body.
type Upload struct {
	Field    string // form field name; defaults to "file"
	Filename string
	Content  io.Reader
}

func (u *Upload) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	field := u.Field
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, u.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, u.Content); err != nil {
		return nil, "", fmt.Errorf("copy form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finish form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, dest)
}

func (c *Client) put(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, dest)
}

func (c *Client) delete(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, dest)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.base + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case *Upload:
		// Multipart bodies carry their own boundary content type.
		buf, ct, err := b.encode()
		if err != nil {
			return err
		}
		reader = buf
		contentType = ct
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := normalizeError(resp.StatusCode, data)
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("api error")
		return apiErr
	}
	if dest == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &DecodeError{err: err}
	}
	return nil
}

// parseBaseURL normalizes a configured base URL: empty falls back to the
// development default, a bare host gets an http scheme, trailing slashes
// are dropped, and a trailing /api segment is stripped since API paths
// already start with /api.
func parseBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	base := strings.TrimRight(u.String(), "/")
	base = strings.TrimSuffix(base, "/api")
	return strings.TrimRight(base, "/"), nil
}
