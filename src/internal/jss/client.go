package jss

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"
)

var (
	// ErrNotFound is returned when an id or name does not exist on the server.
	ErrNotFound = errors.New("object not found")
	// ErrAuth is returned when the server rejects the credentials.
	ErrAuth = errors.New("authentication failed")
)

// APIError is a non-success HTTP response from the server.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	}
	return nil
}

const (
	// DefaultTimeout bounds every request
	DefaultTimeout = 60 * time.Second
	// DefaultMaxRetries is the number of attempts for reads
	DefaultMaxRetries = 3

	resourcePrefix = "/JSSResource"
	tokenPath      = "/api/v1/auth/token"
)

// Options configures a Client.
type Options struct {
	URL       string
	Username  string
	Password  string
	VerifySSL bool
	// Timeout defaults to DefaultTimeout
	Timeout time.Duration
	// MaxRetries defaults to DefaultMaxRetries
	MaxRetries int
	// RetryDelay is multiplied by the attempt number between reads.
	// Defaults to two seconds.
	RetryDelay time.Duration
	Logger     *slog.Logger
}

// Client is a Classic API Repository.
type Client struct {
	baseURL    string
	username   string
	password   string
	http       *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	basicOnly   bool
}

var _ Repository = (*Client)(nil)

// NewClient creates a client for the server at opts.URL.
func NewClient(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, errors.New("server URL is not configured")
	}
	parsed, err := url.Parse(opts.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", opts.URL)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	retryDelay := opts.RetryDelay
	if retryDelay == 0 {
		retryDelay = 2 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !opts.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via settings
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.URL, "/"),
		username:   opts.Username,
		password:   opts.Password,
		http:       &http.Client{Timeout: timeout, Transport: transport},
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}, nil
}

// PolicyLogURL returns the web page listing a policy's logs.
func (c *Client) PolicyLogURL(id int) string {
	return fmt.Sprintf("%s/policies.html?id=%d&o=l", c.baseURL, id)
}

// List returns the id and name of every object of a type.
func (c *Client) List(ctx context.Context, t Type) ([]Summary, error) {
	data, err := c.get(ctx, resourcePrefix+"/"+t.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s objects: %w", t, err)
	}
	return parseList(t, data)
}

// Get fetches one object by id or name.
func (c *Client) Get(ctx context.Context, t Type, sel Selector) (*Object, error) {
	if sel.IsZero() {
		return nil, fmt.Errorf("no %s specified", t)
	}

	path := resourcePrefix + "/" + t.Path
	if sel.ID != 0 {
		path += "/id/" + strconv.Itoa(sel.ID)
	} else {
		path += "/name/" + url.PathEscape(sel.Name)
	}

	data, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", t, sel, err)
	}
	return ParseObject(t, data)
}

// Save PUTs the object to the server. Saves are never retried.
func (c *Client) Save(ctx context.Context, obj *Object) error {
	id := obj.ID()
	if id == 0 {
		return fmt.Errorf("cannot save %s %q without an id", obj.Type, obj.Name())
	}

	body, err := obj.Bytes()
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", obj.Type, err)
	}

	path := fmt.Sprintf("%s/%s/id/%d", resourcePrefix, obj.Type.Path, id)
	resp, err := c.do(ctx, http.MethodPut, path, body)
	if err != nil {
		return fmt.Errorf("failed to save %s %q: %w", obj.Type, obj.Name(), err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return fmt.Errorf("failed to save %s %q: %w", obj.Type, obj.Name(), err)
	}
	c.logger.Debug("saved object", "type", obj.Type.Name, "id", id)
	return nil
}

// get performs a GET with retries for transport errors and 5xx responses.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.do(ctx, http.MethodGet, path, nil)
		if err == nil {
			data, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()

			if resp.StatusCode < 500 {
				if err := checkResponseBody(resp, data); err != nil {
					return nil, err
				}
				if readErr != nil {
					return nil, readErr
				}
				return data, nil
			}
			err = checkResponseBody(resp, data)
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		c.logger.Debug("request failed", "path", path, "attempt", attempt, "error", err)

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/xml")
	if body != nil {
		req.Header.Set("Content-Type", "text/xml")
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	c.logger.Debug("request", "method", method, "path", path)
	return c.http.Do(req)
}

// authorize adds a bearer token, or basic credentials on servers that do
// not offer the token endpoint.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		req.SetBasicAuth(c.username, c.password)
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

type tokenResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.basicOnly {
		return "", nil
	}
	// Refresh a minute early so long runs don't send an expired token.
	if c.token != "" && time.Now().Add(time.Minute).Before(c.tokenExpiry) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug("token endpoint unavailable, using basic authentication")
		c.basicOnly = true
		return "", nil
	}
	if err := checkResponse(resp); err != nil {
		return "", fmt.Errorf("failed to request token: %w", err)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token: %w", err)
	}
	if token.Token == "" {
		return "", fmt.Errorf("failed to request token: %w", ErrAuth)
	}

	c.token = token.Token
	c.tokenExpiry = token.Expires
	if c.tokenExpiry.IsZero() {
		c.tokenExpiry = time.Now().Add(20 * time.Minute)
	}
	return c.token, nil
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	return checkResponseBody(resp, data)
}

func checkResponseBody(resp *http.Response, data []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &APIError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.Path,
		StatusCode: resp.StatusCode,
		Message:    errorMessage(data),
	}
}

// errorMessage pulls the text out of the server's HTML error pages,
// which wrap the reason in <p> elements.
func errorMessage(data []byte) string {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return ""
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err == nil && doc.Root() != nil {
		var parts []string
		for _, p := range doc.FindElements("//p") {
			if t := strings.TrimSpace(p.Text()); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}

	return truncate(text, maxMessageLength)
}

// maxMessageLength caps the bytes of a plain-text error body kept in an
// APIError.
const maxMessageLength = 200

// truncate shortens text to at most n bytes without splitting a UTF-8
// sequence.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// parseList reads <policies><size>2</size><policy><id/><name/></policy>...
func parseList(t Type, data []byte) ([]Summary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s list: %w", t, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	var result []Summary
	for _, el := range root.ChildElements() {
		if el.Tag == "size" {
			continue
		}
		ref := Reference{el}
		result = append(result, Summary{ID: ref.ID(), Name: ref.Name()})
	}
	return result, nil
}
