package domain

import (
	"path"
	"strings"
	"time"
)

// Entry represents a file or directory record returned by the server.
// Media metadata fields are only present for indexed files.
type Entry struct {
	ID       int64      `json:"id,omitempty"`
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	IsDir    bool       `json:"is_dir"`
	Size     *int64     `json:"size"`
	Created  *time.Time `json:"created"`
	Modified *time.Time `json:"modified"`
	MimeType *string    `json:"mime_type"`
	Width    *int       `json:"width,omitempty"`
	Height   *int       `json:"height,omitempty"`
	Duration *float64   `json:"duration,omitempty"`
}

// TreeNode is a directory node for the sidebar tree.
type TreeNode struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	HasChildren bool   `json:"has_children"`
}

// SortField names the client-side sort fields. The API client translates
// semantic fields (mime_type, width, height) to server sort keys.
type SortField string

const (
	SortByName     SortField = "name"
	SortByPath     SortField = "path"
	SortBySize     SortField = "size"
	SortByModified SortField = "modified"
	SortByCreated  SortField = "created"
	SortByMimeType SortField = "mime_type"
	SortByWidth    SortField = "width"
	SortByHeight   SortField = "height"
	SortByDuration SortField = "duration"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortConfig is a field/order pair; browse and search each track their own.
type SortConfig struct {
	Field SortField
	Order SortOrder
}

// DefaultSortConfig sorts by name ascending.
func DefaultSortConfig() SortConfig {
	return SortConfig{Field: SortByName, Order: SortAsc}
}

// ClipboardOp is the pending clipboard operation.
type ClipboardOp string

const (
	ClipboardNone ClipboardOp = ""
	ClipboardCopy ClipboardOp = "copy"
	ClipboardCut  ClipboardOp = "cut"
)

// Clipboard holds at most one pending copy/cut batch of source paths.
type Clipboard struct {
	Files     []string
	Operation ClipboardOp
}

// Empty reports whether there is no pending clipboard operation.
func (c Clipboard) Empty() bool {
	return c.Operation == ClipboardNone || len(c.Files) == 0
}

// ViewMode is the listing presentation style.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

// NormalizePath reduces a server path to its canonical form: absolute,
// slash-delimited, no trailing slash except for the root itself.
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = path.Clean(p)
	if p == "." {
		return "/"
	}
	return p
}

// ParentPath returns the parent directory of a normalized path. The parent
// of the root is the root.
func ParentPath(p string) string {
	p = NormalizePath(p)
	if p == "/" {
		return "/"
	}
	return NormalizePath(path.Dir(p))
}

// BaseName returns the last path element of a normalized path.
func BaseName(p string) string {
	return path.Base(NormalizePath(p))
}

// JoinPath joins a directory with a child name, avoiding the double slash
// when the directory is the root.
func JoinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return NormalizePath(dir) + "/" + name
}
