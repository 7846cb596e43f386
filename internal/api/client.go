// Package api is a typed client for the file-manager server's JSON API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"filedeck/internal/domain"
)

// Error is a typed API error carrying the HTTP status code and the
// server-supplied message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// ListResult is the response shape shared by browse and search.
type ListResult struct {
	Path    string         `json:"path,omitempty"`
	Query   string         `json:"query,omitempty"`
	Entries []domain.Entry `json:"entries"`
	Offset  int            `json:"offset"`
	Limit   int            `json:"limit"`
	Total   int            `json:"total"`
}

// OpResult is the response shape of the file-operation endpoints. Performed
// is only set by move/copy: the server may decline to overwrite an existing
// destination and report the operation as skipped.
type OpResult struct {
	Success   bool    `json:"success"`
	Path      *string `json:"path,omitempty"`
	Message   *string `json:"message,omitempty"`
	Performed *bool   `json:"performed,omitempty"`
}

// WasPerformed reports whether the server actually carried out a move/copy.
// Absence of the flag means the operation type never skips.
func (r *OpResult) WasPerformed() bool {
	return r.Performed == nil || *r.Performed
}

// AuthStatus is the response of GET /api/auth/status.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
	AuthRequired  bool `json:"auth_required"`
}

// Health is the response of GET /api/health.
type Health struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	BuildNumber      string `json:"build_number"`
	GitCommit        string `json:"git_commit"`
	BuiltAt          string `json:"built_at"`
	FfprobeAvailable bool   `json:"ffprobe_available"`
	DatabaseStatus   struct {
		Connected bool    `json:"connected"`
		Error     *string `json:"error,omitempty"`
	} `json:"database_status"`
}

// IndexStatus is the response of the indexer endpoints.
type IndexStatus struct {
	IsRunning bool `json:"is_running"`
}

// ServerSortKey translates a client sort field to the server's sort key.
// The server collapses the media dimensions into a single key and calls the
// MIME type "type"; every other field passes through unchanged.
func ServerSortKey(field domain.SortField) string {
	switch field {
	case domain.SortByMimeType:
		return "type"
	case domain.SortByWidth, domain.SortByHeight:
		return "dimensions"
	default:
		return string(field)
	}
}

// Client issues HTTP requests against a file-manager server.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
}

// NewClient creates a client for the given server URL. Session cookies from
// /api/auth/login are kept in an in-memory jar.
func NewClient(serverURL string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}
	if base.Scheme == "" {
		return nil, fmt.Errorf("server URL %q has no scheme", serverURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: base,
		httpc: &http.Client{
			Jar:     jar,
			Timeout: 60 * time.Second,
		},
	}, nil
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Browse lists a directory. A zero limit uses the server default.
func (c *Client) Browse(ctx context.Context, path string, offset, limit int, sort domain.SortConfig) (*ListResult, error) {
	q := url.Values{}
	q.Set("path", domain.NormalizePath(path))
	q.Set("offset", strconv.Itoa(offset))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	q.Set("sort_by", ServerSortKey(sort.Field))
	q.Set("sort_order", string(sort.Order))

	var result ListResult
	if err := c.get(ctx, "/api/browse", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search queries the server-side file index.
func (c *Client) Search(ctx context.Context, query string, offset, limit int, sort domain.SortConfig) (*ListResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("offset", strconv.Itoa(offset))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	q.Set("sort_by", ServerSortKey(sort.Field))
	q.Set("sort_order", string(sort.Order))

	var result ListResult
	if err := c.get(ctx, "/api/search", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Tree fetches directory nodes for the sidebar.
func (c *Client) Tree(ctx context.Context, path string) ([]domain.TreeNode, error) {
	q := url.Values{}
	q.Set("path", domain.NormalizePath(path))

	var nodes []domain.TreeNode
	if err := c.get(ctx, "/api/tree", q, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Mkdir creates a directory.
func (c *Client) Mkdir(ctx context.Context, path string) (*OpResult, error) {
	body := map[string]any{"path": path}
	var result OpResult
	if err := c.send(ctx, http.MethodPost, "/api/files/mkdir", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Rename renames a file or directory in place.
func (c *Client) Rename(ctx context.Context, path, newName string) (*OpResult, error) {
	body := map[string]any{"path": path, "new_name": newName}
	var result OpResult
	if err := c.send(ctx, http.MethodPost, "/api/files/rename", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Move moves a file or directory. When overwrite is false and the
// destination exists the server skips the operation and reports
// performed=false.
func (c *Client) Move(ctx context.Context, from, to string, overwrite bool) (*OpResult, error) {
	body := map[string]any{"from": from, "to": to, "overwrite": overwrite}
	var result OpResult
	if err := c.send(ctx, http.MethodPost, "/api/files/move", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Copy copies a file or directory, with the same overwrite semantics as Move.
func (c *Client) Copy(ctx context.Context, from, to string, overwrite bool) (*OpResult, error) {
	body := map[string]any{"from": from, "to": to, "overwrite": overwrite}
	var result OpResult
	if err := c.send(ctx, http.MethodPost, "/api/files/copy", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a file or directory.
func (c *Client) Delete(ctx context.Context, path string) (*OpResult, error) {
	body := map[string]any{"path": path}
	var result OpResult
	if err := c.send(ctx, http.MethodDelete, "/api/files/delete", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Download streams the raw bytes of a file. The caller must close the
// returned reader.
func (c *Client) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	q := url.Values{}
	q.Set("path", path)

	req, err := c.newRequest(ctx, http.MethodGet, "/api/files/download", q, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp.Body, nil
}

// Upload uploads a file into dir via multipart form data.
func (c *Client) Upload(ctx context.Context, dir, name string, r io.Reader) (*OpResult, error) {
	return c.UploadWithProgress(ctx, dir, name, r, 0, nil)
}

// UploadWithProgress uploads a file, reporting (written, total) through fn
// as the body is consumed. The body is streamed; memory use is bounded by
// the multipart buffer.
func (c *Client) UploadWithProgress(ctx context.Context, dir, name string, r io.Reader, total int64, fn func(written, total int64)) (*OpResult, error) {
	if fn != nil {
		r = &progressReader{r: r, total: total, fn: fn}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	endpoint := "/api/files/upload" + domain.NormalizePath(dir)
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, nil, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result OpResult
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates against the server; the session cookie lands in the
// client's jar.
func (c *Client) Login(ctx context.Context, password string) error {
	body := map[string]any{"password": password}
	var result struct {
		Success bool    `json:"success"`
		Error   *string `json:"error,omitempty"`
	}
	if err := c.send(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return err
	}
	if !result.Success {
		msg := "login rejected"
		if result.Error != nil {
			msg = *result.Error
		}
		return &Error{StatusCode: http.StatusUnauthorized, Message: msg}
	}
	return nil
}

// Logout invalidates the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Status returns whether the server requires auth and whether the current
// session is valid.
func (c *Client) Status(ctx context.Context) (*AuthStatus, error) {
	var status AuthStatus
	if err := c.get(ctx, "/api/auth/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Health fetches the server health report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.get(ctx, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// IndexStatus reports whether the background indexer is running.
func (c *Client) IndexStatus(ctx context.Context) (*IndexStatus, error) {
	var s IndexStatus
	if err := c.get(ctx, "/api/index/status", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// TriggerIndex asks the server to start a full reindex.
func (c *Client) TriggerIndex(ctx context.Context) (*IndexStatus, error) {
	var s IndexStatus
	if err := c.send(ctx, http.MethodPost, "/api/index/trigger", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, q url.Values, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + endpoint
	if q != nil {
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, q, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, endpoint, nil, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError converts a non-2xx response into a typed Error. The server
// sends {"error": "..."}; anything else falls back to "Unknown error".
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Message: "Unknown error"}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}

// progressReader counts bytes as they are read and reports through fn.
type progressReader struct {
	r       io.Reader
	written int64
	total   int64
	fn      func(written, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		p.fn(p.written, p.total)
	}
	return n, err
}
