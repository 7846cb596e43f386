package ui

import (
	"time"

	"filedeck/internal/api"
	"filedeck/internal/domain"
	"filedeck/internal/eventbus"
	"filedeck/internal/transfer"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for spinner animation
type tickMsg time.Time

// listingMsg carries the result of a browse or search request. gen guards
// against stale search responses arriving after the query changed.
type listingMsg struct {
	result    *api.ListResult
	forSearch bool
	gen       int
	err       error
}

// treeMsg carries sidebar tree nodes, keyed by the directory they belong to
type treeMsg struct {
	nodes map[string][]domain.TreeNode
	err   error
}

// opDoneMsg is the result of a single file operation (mkdir, rename)
type opDoneMsg struct {
	op    string
	focus string // path to focus after the listing reloads
	err   error
}

// deleteDoneMsg summarizes a delete batch
type deleteDoneMsg struct {
	performed int
	failed    int
}

// transferDoneMsg is published after a paste batch resolves
type transferDoneMsg struct {
	op     transfer.Operation
	cut    bool
	result transfer.Result
}

// downloadDoneMsg is the result of a file download
type downloadDoneMsg struct {
	path string
	dest string
	err  error
}

// searchDebounceMsg fires after the search debounce interval; stale
// generations are dropped
type searchDebounceMsg struct {
	gen int
}

// toastExpireMsg clears the status toast; stale ids are dropped
type toastExpireMsg struct {
	id int
}

// indexStatusMsg carries the server indexer state
type indexStatusMsg struct {
	running bool
	err     error
}

// healthMsg carries the result of a server health probe
type healthMsg struct {
	ok bool
}

// previewDoneMsg is sent when the pager returns control
type previewDoneMsg struct {
	err error
}
