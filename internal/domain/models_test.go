package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", NormalizePath(""))
	assert.Equal(t, "/", NormalizePath("/"))
	assert.Equal(t, "/docs", NormalizePath("/docs/"))
	assert.Equal(t, "/docs", NormalizePath("docs"))
	assert.Equal(t, "/a/b", NormalizePath("/a//b/"))
	assert.Equal(t, "/a", NormalizePath("/a/b/.."))
}

func TestParentPath(t *testing.T) {
	assert.Equal(t, "/", ParentPath("/"))
	assert.Equal(t, "/", ParentPath("/docs"))
	assert.Equal(t, "/docs", ParentPath("/docs/report.txt"))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "/", BaseName("/"))
	assert.Equal(t, "docs", BaseName("/docs"))
	assert.Equal(t, "report.txt", BaseName("/docs/report.txt"))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/docs", JoinPath("/", "docs"))
	assert.Equal(t, "/docs/report.txt", JoinPath("/docs", "report.txt"))
}

func TestClipboardEmpty(t *testing.T) {
	assert.True(t, Clipboard{}.Empty())
	assert.True(t, Clipboard{Operation: ClipboardCopy}.Empty())
	assert.True(t, Clipboard{Files: []string{"/a"}}.Empty())
	assert.False(t, Clipboard{Files: []string{"/a"}, Operation: ClipboardCut}.Empty())
}
