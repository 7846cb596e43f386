// Package navigation owns the client's navigation state: current location,
// pagination, sort, multi-selection, clipboard, and back/forward history.
// The service is the single source of truth and is only ever mutated from
// the UI goroutine, so it needs no locking.
package navigation

import (
	"filedeck/internal/domain"
	"filedeck/internal/eventbus"
)

// Service holds the navigation state machine.
type Service struct {
	bus eventbus.EventBus

	currentPath     string
	directoryOffset int
	directoryLimit  int
	searchOffset    int
	searchLimit     int

	sortConfig       domain.SortConfig
	searchSortConfig domain.SortConfig

	isSearching bool
	searchQuery string

	// Selection is an insertion-ordered set; the order matters for
	// re-anchoring after a toggle removes the anchor.
	selected      map[string]bool
	selectedOrder []string
	lastSelected  string

	clipboard domain.Clipboard

	history      []HistoryEntry
	historyIndex int

	// Auxiliary UI state co-located with the store.
	deleteConfirmOpen bool
	pendingFocusPath  string
	previewPath       string
	sidebarWidth      int
	viewMode          domain.ViewMode
}

// NewService creates the store with its initial root location and a single
// root history entry.
func NewService(bus eventbus.EventBus) *Service {
	return &Service{
		bus:              bus,
		currentPath:      "/",
		directoryLimit:   200,
		searchLimit:      50,
		sortConfig:       domain.DefaultSortConfig(),
		searchSortConfig: domain.DefaultSortConfig(),
		selected:         make(map[string]bool),
		history:          []HistoryEntry{{Kind: KindPath, Path: "/", Offset: 0}},
		historyIndex:     0,
		sidebarWidth:     28,
		viewMode:         domain.ViewList,
	}
}

// Getters

func (s *Service) CurrentPath() string                 { return s.currentPath }
func (s *Service) DirectoryOffset() int                { return s.directoryOffset }
func (s *Service) DirectoryLimit() int                 { return s.directoryLimit }
func (s *Service) SearchOffset() int                   { return s.searchOffset }
func (s *Service) SearchLimit() int                    { return s.searchLimit }
func (s *Service) SortConfig() domain.SortConfig       { return s.sortConfig }
func (s *Service) SearchSortConfig() domain.SortConfig { return s.searchSortConfig }
func (s *Service) IsSearching() bool                   { return s.isSearching }
func (s *Service) SearchQuery() string                 { return s.searchQuery }
func (s *Service) Clipboard() domain.Clipboard         { return s.clipboard }
func (s *Service) LastSelected() string                { return s.lastSelected }
func (s *Service) SelectedCount() int                  { return len(s.selected) }
func (s *Service) DeleteConfirmOpen() bool             { return s.deleteConfirmOpen }
func (s *Service) PreviewPath() string                 { return s.previewPath }
func (s *Service) SidebarWidth() int                   { return s.sidebarWidth }
func (s *Service) ViewMode() domain.ViewMode           { return s.viewMode }

// HistoryLen and HistoryIndex expose history shape for status display.
func (s *Service) HistoryLen() int   { return len(s.history) }
func (s *Service) HistoryIndex() int { return s.historyIndex }

// IsSelected reports whether path is part of the selection.
func (s *Service) IsSelected(path string) bool {
	return s.selected[path]
}

// SelectedFiles returns the selected paths in insertion order.
func (s *Service) SelectedFiles() []string {
	out := make([]string, len(s.selectedOrder))
	copy(out, s.selectedOrder)
	return out
}

// SetLimits configures the page sizes used when recording offsets.
func (s *Service) SetLimits(directory, search int) {
	if directory > 0 {
		s.directoryLimit = directory
	}
	if search > 0 {
		s.searchLimit = search
	}
}

// Navigation transitions

// SetCurrentPath navigates to a directory: resets the directory offset,
// clears the selection, and by default exits search and records history.
func (s *Service) SetCurrentPath(path string, opts ...Option) {
	o := applyOptions(opts)

	s.currentPath = domain.NormalizePath(path)
	s.directoryOffset = 0
	s.resetSelection()

	if o.exitSearch {
		s.isSearching = false
		s.searchQuery = ""
		s.searchOffset = 0
	}

	if o.recordHistory {
		s.commitHistory(HistoryEntry{Kind: KindPath, Path: s.currentPath, Offset: 0}, o.replaceHistory)
	}

	s.publishNavigation()
}

// SetDirectoryOffset moves the browse pagination cursor, clamped to >= 0.
func (s *Service) SetDirectoryOffset(offset int, opts ...Option) {
	o := applyOptions(opts)

	if offset < 0 {
		offset = 0
	}
	s.directoryOffset = offset

	if o.recordHistory {
		s.commitHistory(HistoryEntry{Kind: KindPath, Path: s.currentPath, Offset: offset}, o.replaceHistory)
	}

	s.publishNavigation()
}

// SetSearchQuery updates the active search. History entries are only
// committed once the query reaches the search-trigger length, and
// consecutive search entries coalesce by replacement so typing does not
// leave one entry per keystroke.
func (s *Service) SetSearchQuery(query string, opts ...Option) {
	o := applyOptions(opts)

	if query != s.searchQuery {
		s.searchOffset = 0
	}
	s.searchQuery = query
	s.isSearching = query != ""

	if o.recordHistory && len(query) >= minSearchLength {
		s.commitHistory(HistoryEntry{
			Kind:       KindSearch,
			Path:       s.currentPath,
			PathOffset: s.directoryOffset,
			Query:      query,
			Offset:     s.searchOffset,
		}, false)
	}

	s.publishNavigation()
}

// SetSearchOffset moves the search pagination cursor. History is only
// touched while a committed search is active.
func (s *Service) SetSearchOffset(offset int, opts ...Option) {
	o := applyOptions(opts)

	if offset < 0 {
		offset = 0
	}
	s.searchOffset = offset

	if o.recordHistory && s.isSearching && len(s.searchQuery) >= minSearchLength {
		s.commitHistory(HistoryEntry{
			Kind:       KindSearch,
			Path:       s.currentPath,
			PathOffset: s.directoryOffset,
			Query:      s.searchQuery,
			Offset:     offset,
		}, o.replaceHistory)
	}

	s.publishNavigation()
}

// ExitSearch leaves search mode, returning to the remembered browse
// location. No history entry is written; going back from the search entry
// already lands on the pre-search state.
func (s *Service) ExitSearch() {
	if !s.isSearching && s.searchQuery == "" {
		return
	}
	s.isSearching = false
	s.searchQuery = ""
	s.searchOffset = 0
	s.publishNavigation()
}

// CanGoBack reports whether history extends behind the current index.
func (s *Service) CanGoBack() bool {
	return s.historyIndex > 0
}

// CanGoForward reports whether history extends past the current index.
func (s *Service) CanGoForward() bool {
	return s.historyIndex < len(s.history)-1
}

// GoBack moves one entry back in history. No-op at the boundary.
func (s *Service) GoBack() bool {
	if !s.CanGoBack() {
		return false
	}
	s.historyIndex--
	s.applyHistoryEntry(s.history[s.historyIndex])
	return true
}

// GoForward moves one entry forward in history. No-op at the boundary.
func (s *Service) GoForward() bool {
	if !s.CanGoForward() {
		return false
	}
	s.historyIndex++
	s.applyHistoryEntry(s.history[s.historyIndex])
	return true
}

// applyHistoryEntry re-derives the full navigable state from a history
// entry. Selection is always dropped on history navigation.
func (s *Service) applyHistoryEntry(e HistoryEntry) {
	switch e.Kind {
	case KindPath:
		s.currentPath = e.Path
		s.directoryOffset = e.Offset
		s.isSearching = false
		s.searchQuery = ""
		s.searchOffset = 0
	case KindSearch:
		s.currentPath = e.Path
		s.directoryOffset = e.PathOffset
		s.isSearching = true
		s.searchQuery = e.Query
		s.searchOffset = e.Offset
	}
	s.resetSelection()
	s.publishNavigation()
}

// commitHistory records a navigation action. Forward history beyond the
// current index is truncated first (browser semantics). A commit identical
// to the current entry is dropped; consecutive search entries coalesce by
// replacement.
func (s *Service) commitHistory(e HistoryEntry, replace bool) {
	current := s.history[s.historyIndex]
	if current == e {
		return
	}

	s.history = s.history[:s.historyIndex+1]

	if replace || (e.Kind == KindSearch && current.Kind == KindSearch) {
		s.history[s.historyIndex] = e
		return
	}

	s.history = append(s.history, e)
	s.historyIndex++
}

// Sort configuration

// SetSort sets the browse sort and rewinds the directory offset.
func (s *Service) SetSort(cfg domain.SortConfig) {
	s.sortConfig = cfg
	s.directoryOffset = 0
}

// SetSearchSort sets the search sort and rewinds the search offset.
func (s *Service) SetSearchSort(cfg domain.SortConfig) {
	s.searchSortConfig = cfg
	s.searchOffset = 0
}

// Selection

// SelectFile selects a single path. With multi the path is added to the
// existing selection instead of replacing it. Either way the path becomes
// the anchor.
func (s *Service) SelectFile(path string, multi bool) {
	if !multi {
		s.resetSelection()
	}
	s.insertSelected(path)
	s.lastSelected = path
	s.publishSelection()
}

// SelectRange replaces the selection with the de-duplicated, order-
// preserving set of paths. The anchor becomes the last element, or empty
// for an empty input.
func (s *Service) SelectRange(paths []string) {
	s.resetSelection()
	for _, p := range paths {
		s.insertSelected(p)
	}
	if n := len(s.selectedOrder); n > 0 {
		s.lastSelected = s.selectedOrder[n-1]
	}
	s.publishSelection()
}

// ToggleSelection flips membership of path. Removing the anchor re-anchors
// to the most recently inserted remaining member.
func (s *Service) ToggleSelection(path string) {
	if s.selected[path] {
		s.removeSelected(path)
		if s.lastSelected == path {
			s.lastSelected = ""
			if n := len(s.selectedOrder); n > 0 {
				s.lastSelected = s.selectedOrder[n-1]
			}
		}
	} else {
		s.insertSelected(path)
		s.lastSelected = path
	}
	s.publishSelection()
}

// ClearSelection empties the selection and nulls the anchor.
func (s *Service) ClearSelection() {
	if len(s.selected) == 0 && s.lastSelected == "" {
		return
	}
	s.resetSelection()
	s.publishSelection()
}

func (s *Service) insertSelected(path string) {
	if s.selected[path] {
		return
	}
	s.selected[path] = true
	s.selectedOrder = append(s.selectedOrder, path)
}

func (s *Service) removeSelected(path string) {
	delete(s.selected, path)
	for i, p := range s.selectedOrder {
		if p == path {
			s.selectedOrder = append(s.selectedOrder[:i], s.selectedOrder[i+1:]...)
			break
		}
	}
}

func (s *Service) resetSelection() {
	s.selected = make(map[string]bool)
	s.selectedOrder = nil
	s.lastSelected = ""
}

// Clipboard

// CopyFiles replaces the clipboard with a pending copy batch.
func (s *Service) CopyFiles(paths []string) {
	s.setClipboard(paths, domain.ClipboardCopy)
}

// CutFiles replaces the clipboard with a pending cut batch.
func (s *Service) CutFiles(paths []string) {
	s.setClipboard(paths, domain.ClipboardCut)
}

// ClearClipboard drops the pending clipboard operation.
func (s *Service) ClearClipboard() {
	s.setClipboard(nil, domain.ClipboardNone)
}

func (s *Service) setClipboard(paths []string, op domain.ClipboardOp) {
	files := make([]string, len(paths))
	copy(files, paths)
	s.clipboard = domain.Clipboard{Files: files, Operation: op}
	if s.bus != nil {
		s.bus.Publish(eventbus.ClipboardChangedEvent{Files: files, Operation: op})
	}
}

// Auxiliary UI state

func (s *Service) SetDeleteConfirmOpen(open bool) { s.deleteConfirmOpen = open }

// SetPendingFocusPath marks a path to focus once the next listing arrives.
func (s *Service) SetPendingFocusPath(path string) { s.pendingFocusPath = path }

// TakePendingFocusPath returns and clears the pending focus path.
func (s *Service) TakePendingFocusPath() string {
	p := s.pendingFocusPath
	s.pendingFocusPath = ""
	return p
}

func (s *Service) SetPreviewPath(path string) { s.previewPath = path }

func (s *Service) SetSidebarWidth(w int) {
	if w < 12 {
		w = 12
	}
	s.sidebarWidth = w
}

func (s *Service) SetViewMode(mode domain.ViewMode) { s.viewMode = mode }

// Event publication

func (s *Service) publishNavigation() {
	if s.bus == nil {
		return
	}
	offset := s.directoryOffset
	if s.isSearching {
		offset = s.searchOffset
	}
	s.bus.Publish(eventbus.NavigationChangedEvent{
		Path:        s.currentPath,
		Offset:      offset,
		IsSearching: s.isSearching,
		Query:       s.searchQuery,
	})
}

func (s *Service) publishSelection() {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.SelectionChangedEvent{Total: len(s.selected)})
}

// ExtendSelection computes the additive shift-select result: the current
// selection unioned with the contiguous range from anchor to target. The
// range is ordered so the target comes last, making it the new anchor when
// the result is passed to SelectRange.
func ExtendSelection(listing, current []string, anchor, target string) []string {
	rng := RangePaths(listing, anchor, target)
	if len(rng) > 1 && rng[len(rng)-1] != target {
		for i, j := 0, len(rng)-1; i < j; i, j = i+1, j-1 {
			rng[i], rng[j] = rng[j], rng[i]
		}
	}

	inRange := make(map[string]bool, len(rng))
	for _, p := range rng {
		inRange[p] = true
	}

	out := make([]string, 0, len(current)+len(rng))
	for _, p := range current {
		if !inRange[p] {
			out = append(out, p)
		}
	}
	return append(out, rng...)
}

// RangePaths computes the contiguous inclusive slice of listing between
// anchor and target, in listing order, regardless of which comes first.
// When the anchor is absent from the listing the range collapses to the
// target alone. Range selection is additive; callers union the result into
// the existing selection.
func RangePaths(listing []string, anchor, target string) []string {
	ai, ti := -1, -1
	for i, p := range listing {
		if p == anchor {
			ai = i
		}
		if p == target {
			ti = i
		}
	}
	if ti == -1 {
		return nil
	}
	if ai == -1 {
		ai = ti
	}
	if ai > ti {
		ai, ti = ti, ai
	}
	out := make([]string, 0, ti-ai+1)
	out = append(out, listing[ai:ti+1]...)
	return out
}
