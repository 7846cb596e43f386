package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedeck/internal/domain"
)

func TestServerSortKey(t *testing.T) {
	assert.Equal(t, "type", ServerSortKey(domain.SortByMimeType))
	assert.Equal(t, "dimensions", ServerSortKey(domain.SortByWidth))
	assert.Equal(t, "dimensions", ServerSortKey(domain.SortByHeight))
	assert.Equal(t, "name", ServerSortKey(domain.SortByName))
	assert.Equal(t, "size", ServerSortKey(domain.SortBySize))
	assert.Equal(t, "modified", ServerSortKey(domain.SortByModified))
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("localhost:8080")
	require.Error(t, err)

	_, err = NewClient("http://localhost:8080/")
	require.NoError(t, err)
}

func TestBrowseQueryParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(ListResult{Path: "/docs", Total: 1})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	res, err := c.Browse(context.Background(), "/docs/", 50, 200, domain.SortConfig{
		Field: domain.SortByWidth,
		Order: domain.SortDesc,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/browse", gotPath)
	assert.Equal(t, map[string]string{
		"path":       "/docs",
		"offset":     "50",
		"limit":      "200",
		"sort_by":    "dimensions",
		"sort_order": "desc",
	}, gotQuery)
	assert.Equal(t, "/docs", res.Path)
	assert.Equal(t, 1, res.Total)
}

func TestBrowseOmitsZeroLimit(t *testing.T) {
	var hasLimit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasLimit = r.URL.Query().Has("limit")
		json.NewEncoder(w).Encode(ListResult{})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	_, err := c.Browse(context.Background(), "/", 0, 0, domain.DefaultSortConfig())
	require.NoError(t, err)
	assert.False(t, hasLimit)
}

func TestSearchQueryParams(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(ListResult{Query: "report"})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	res, err := c.Search(context.Background(), "report", 0, 50, domain.SortConfig{
		Field: domain.SortByMimeType,
		Order: domain.SortAsc,
	})
	require.NoError(t, err)

	assert.Equal(t, "report", got["q"])
	assert.Equal(t, "type", got["sort_by"])
	assert.Equal(t, "asc", got["sort_order"])
	assert.Equal(t, "report", res.Query)
}

func TestMoveSendsOverwriteFlag(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/files/move", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		performed := false
		json.NewEncoder(w).Encode(OpResult{Success: true, Performed: &performed})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	res, err := c.Move(context.Background(), "/a.txt", "/dest/a.txt", false)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"from":      "/a.txt",
		"to":        "/dest/a.txt",
		"overwrite": false,
	}, body)
	assert.False(t, res.WasPerformed())
}

func TestWasPerformedDefaultsTrue(t *testing.T) {
	// Endpoints that never skip omit the flag entirely.
	res := &OpResult{Success: true}
	assert.True(t, res.WasPerformed())

	performed := true
	res = &OpResult{Success: true, Performed: &performed}
	assert.True(t, res.WasPerformed())
}

func TestDeleteUsesDeleteMethodWithBody(t *testing.T) {
	var method string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(OpResult{Success: true})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	_, err := c.Delete(context.Background(), "/old.txt")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, map[string]any{"path": "/old.txt"}, body)
}

func TestErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Path not found"})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	_, err := c.Browse(context.Background(), "/missing", 0, 0, domain.DefaultSortConfig())
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Path not found", apiErr.Message)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestErrorDecodingFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "<html>gateway exploded</html>")
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	_, err := c.Health(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "Unknown error", apiErr.Message)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestLoginStoresSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "hunter2" {
			json.NewEncoder(w).Encode(map[string]any{"success": false})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	var gotCookie string
	mux.HandleFunc("/api/auth/status", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		json.NewEncoder(w).Encode(AuthStatus{Authenticated: true, AuthRequired: true})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := NewClient(srv.URL)

	err := c.Login(context.Background(), "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	require.NoError(t, c.Login(context.Background(), "hunter2"))

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "abc123", gotCookie)
}

func TestDownloadStreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/download", r.URL.Path)
		assert.Equal(t, "/docs/report.txt", r.URL.Query().Get("path"))
		io.WriteString(w, "file contents")
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	rc, err := c.Download(context.Background(), "/docs/report.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "file contents", string(data))
}

func TestUploadMultipartEndpoint(t *testing.T) {
	var gotPath, gotName, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotName = hdr.Filename
		data, _ := io.ReadAll(f)
		gotBody = string(data)
		json.NewEncoder(w).Encode(OpResult{Success: true})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	res, err := c.Upload(context.Background(), "/docs/sub", "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "/api/files/upload/docs/sub", gotPath)
	assert.Equal(t, "notes.txt", gotName)
	assert.Equal(t, "hello", gotBody)
}

func TestUploadProgressReporting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		json.NewEncoder(w).Encode(OpResult{Success: true})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)

	var lastWritten, lastTotal int64
	_, err := c.UploadWithProgress(context.Background(), "/", "big.bin", strings.NewReader("0123456789"), 10,
		func(written, total int64) {
			lastWritten, lastTotal = written, total
		})
	require.NoError(t, err)

	assert.Equal(t, int64(10), lastWritten)
	assert.Equal(t, int64(10), lastTotal)
}
