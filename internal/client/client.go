// Package client talks to the content-analytics REST API. A Client with a
// credential is also a remote ingest.PlatformDirectory and
// ingest.ContentCatalog, which is how linkctl runs the ingestion pipeline
// against a server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/sakif/content-analytics/internal/ingest"
	"github.com/sakif/content-analytics/internal/model"
)

// ErrUnauthorized is returned when the server rejects the credential (401).
var ErrUnauthorized = errors.New("client: unauthorized")

// Credential is the bearer token sent on every request. It is always passed
// in explicitly; the client never reads ambient state.
type Credential string

// TokenSource adapts the credential for oauth2.Transport.
func (c Credential) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(c), TokenType: "Bearer"})
}

// APIError is a non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Code       string // "error" field of the body, e.g. "not_found"
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("client: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("client: status %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client is a thin typed wrapper over the REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

var (
	_ ingest.PlatformDirectory = (*Client)(nil)
	_ ingest.ContentCatalog    = (*Client)(nil)
)

// New returns a client for baseURL (e.g. http://localhost:8080). An empty
// credential gives an anonymous client that can only Login and Register.
//
// Requests have no timeout; bound them with the context.
func New(baseURL string, cred Credential, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must be http or https", baseURL)
	}

	var transport http.RoundTripper = &loggingRoundTripper{inner: http.DefaultTransport, logger: logger}
	if cred != "" {
		transport = &oauth2.Transport{Source: cred.TokenSource(), Base: transport}
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Transport: transport},
		logger:  logger,
	}, nil
}

// newRequest builds a request for relPath (no query string) with an
// optional JSON body.
func (c *Client) newRequest(ctx context.Context, method, relPath string, query url.Values, body any) (*http.Request, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, relPath)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: encoding request: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// doRaw sends req and returns the body of a 2xx response.
func (c *Client) doRaw(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("client: reading response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, e.Message)
	}
	return nil, &APIError{StatusCode: resp.StatusCode, Code: e.Error, Message: e.Message}
}

// do sends req and decodes a 2xx JSON body into out (if non-nil).
func (c *Client) do(req *http.Request, out any) error {
	body, err := c.doRaw(req)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("client: decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}

// LoginResult is the body of POST /api/auth/login.
type LoginResult struct {
	Token Credential  `json:"token"`
	User  *model.User `json:"user"`
}

// Login exchanges a username and password for a credential.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var out LoginResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. A taken username comes back as an
// *APIError with StatusCode 409.
func (c *Client) Register(ctx context.Context, username, password, email, name string) (*model.User, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/register", nil, map[string]string{
		"username": username,
		"password": password,
		"email":    email,
		"name":     name,
	})
	if err != nil {
		return nil, err
	}
	var out model.User
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the credential belongs to.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var out model.User
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPlatforms returns the credential owner's platforms. The server scopes
// the list by token, so ownerID is informational.
func (c *Client) ListPlatforms(ctx context.Context, ownerID string) ([]model.Platform, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/platforms", nil, nil)
	if err != nil {
		return nil, err
	}
	var out []model.Platform
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePlatform posts {platformName, url} and returns the raw response body
// for ingest.DecodePlatformID.
func (c *Client) CreatePlatform(ctx context.Context, name model.PlatformName, rawURL string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/platforms", nil, map[string]string{
		"platformName": string(name),
		"url":          rawURL,
	})
	if err != nil {
		return nil, err
	}
	return c.doRaw(req)
}

// PlatformStats returns the content count per platform name.
func (c *Client) PlatformStats(ctx context.Context) (map[model.PlatformName]model.PlatformStats, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/platforms/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	var out map[model.PlatformName]model.PlatformStats
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContent records one piece of content.
func (c *Client) CreateContent(ctx context.Context, in ingest.ContentRequest) (*model.Content, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/content", nil, in)
	if err != nil {
		return nil, err
	}
	var out model.Content
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListContents pages through the owner's content, newest first. Zero
// values use the server defaults.
func (c *Client) ListContents(ctx context.Context, limit, offset int) ([]model.Content, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/api/content", q, nil)
	if err != nil {
		return nil, err
	}
	var out []model.Content
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassifyResult is the server's preview of a link.
type ClassifyResult struct {
	ingest.Classification
	Title string `json:"title"`
	Valid bool   `json:"valid"`
}

// Classify asks the server how it would classify rawURL.
func (c *Client) Classify(ctx context.Context, rawURL string) (*ClassifyResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/classify", url.Values{"url": {rawURL}}, nil)
	if err != nil {
		return nil, err
	}
	var out ClassifyResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
