package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"filedeck/internal/api"
	"filedeck/internal/domain"
	"filedeck/internal/eventbus"
	"filedeck/internal/transfer"
	"filedeck/internal/ui/input"
	"filedeck/internal/ui/input/types"
	"filedeck/internal/ui/services/navigation"
	"filedeck/internal/ui/views"
)

const (
	searchDebounce = 300 * time.Millisecond
	toastDuration  = 4 * time.Second
	indexPollEvery = 2 * time.Second
)

// Client is the server surface the model depends on. *api.Client satisfies
// it; tests substitute a stub.
type Client interface {
	Browse(ctx context.Context, path string, offset, limit int, sort domain.SortConfig) (*api.ListResult, error)
	Search(ctx context.Context, query string, offset, limit int, sort domain.SortConfig) (*api.ListResult, error)
	Tree(ctx context.Context, path string) ([]domain.TreeNode, error)
	Mkdir(ctx context.Context, path string) (*api.OpResult, error)
	Rename(ctx context.Context, path, newName string) (*api.OpResult, error)
	Move(ctx context.Context, from, to string, overwrite bool) (*api.OpResult, error)
	Copy(ctx context.Context, from, to string, overwrite bool) (*api.OpResult, error)
	Delete(ctx context.Context, path string) (*api.OpResult, error)
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	UploadWithProgress(ctx context.Context, dir, name string, r io.Reader, total int64, fn func(written, total int64)) (*api.OpResult, error)
	Health(ctx context.Context) (*api.Health, error)
	IndexStatus(ctx context.Context) (*api.IndexStatus, error)
	TriggerIndex(ctx context.Context) (*api.IndexStatus, error)
}

// clientOps adapts the API client to the transfer resolver's interface.
type clientOps struct {
	client Client
}

func (o clientOps) Move(ctx context.Context, from, to string, overwrite bool) (bool, error) {
	res, err := o.client.Move(ctx, from, to, overwrite)
	if err != nil {
		return false, err
	}
	return res.WasPerformed(), nil
}

func (o clientOps) Copy(ctx context.Context, from, to string, overwrite bool) (bool, error) {
	res, err := o.client.Copy(ctx, from, to, overwrite)
	if err != nil {
		return false, err
	}
	return res.WasPerformed(), nil
}

// busNotifier forwards resolver notifications onto the event bus, which the
// program loop feeds back into Update as EventMsg.
type busNotifier struct {
	bus eventbus.EventBus
}

func (n busNotifier) Toast(message string) {
	n.bus.Publish(eventbus.ToastEvent{Message: message})
}

func (n busNotifier) Error(message string) {
	n.bus.Publish(eventbus.ToastEvent{Message: message, IsError: true})
}

// Model is the bubbletea model tying the navigation store, key dispatch,
// transfer resolver, and renderer together. All state mutation happens on
// the Update goroutine.
type Model struct {
	bus      eventbus.EventBus
	client   Client
	nav      *navigation.Service
	handler  *input.Handler
	renderer *views.Renderer
	resolver *transfer.Resolver
	preview  *PreviewOps

	width  int
	height int

	entries []domain.Entry
	total   int
	loading bool

	focusIndex  int
	filterQuery string

	searchGen    int
	searchCancel context.CancelFunc

	showSidebar  bool
	treeNodes    map[string][]domain.TreeNode
	treeExpanded map[string]bool

	pendingPaste *transfer.Prompt
	pendingOp    transfer.Operation
	pendingCut   bool

	toast        string
	toastIsError bool
	toastID      int

	indexRunning bool
	connected    bool
	uploadName   string
	uploadPct    int

	showHelp   bool
	helpScroll int

	quitting bool
}

// NewModel wires up the UI model.
func NewModel(bus eventbus.EventBus, client Client, nav *navigation.Service) *Model {
	m := &Model{
		bus:          bus,
		client:       client,
		nav:          nav,
		handler:      input.New(),
		renderer:     views.NewRenderer(),
		treeNodes:    make(map[string][]domain.TreeNode),
		treeExpanded: make(map[string]bool),
		connected:    true,
	}
	m.resolver = transfer.NewResolver(
		clientOps{client: client},
		busNotifier{bus: bus},
		func() { bus.Publish(eventbus.SelectionClearRequestedEvent{}) },
	)
	return m
}

// SetProgram hands the model the running program, needed to release the
// terminal for the preview pager.
func (m *Model) SetProgram(p *tea.Program) {
	m.preview = NewPreviewOps(p)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadListing(), m.probeHealth(), m.pollIndexStatus())
}

func (m *Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	// A panic in one update must not take down the whole UI.
	model = m
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic in update: %v", r)
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		return m.handleEvent(msg.Event)

	case listingMsg:
		return m.handleListing(msg)

	case treeMsg:
		if msg.err == nil {
			for path, nodes := range msg.nodes {
				m.treeNodes[path] = nodes
				m.treeExpanded[path] = true
			}
		}
		return m, nil

	case searchDebounceMsg:
		if msg.gen == m.searchGen && m.nav.IsSearching() && len(m.nav.SearchQuery()) >= 2 {
			return m, m.loadListing()
		}
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			return m, m.errorToast(fmt.Sprintf("%s failed: %v", msg.op, msg.err))
		}
		if msg.focus != "" {
			m.nav.SetPendingFocusPath(msg.focus)
		}
		return m, m.loadListing()

	case deleteDoneMsg:
		cmds := []tea.Cmd{m.loadListing()}
		if msg.failed > 0 {
			cmds = append(cmds, m.errorToast(fmt.Sprintf("Deleted %d items, %d failed", msg.performed, msg.failed)))
		} else {
			cmds = append(cmds, m.infoToast(fmt.Sprintf("Deleted %d items", msg.performed)))
		}
		return m, tea.Batch(cmds...)

	case transferDoneMsg:
		// A completed cut batch consumes the clipboard; copies stay pasteable.
		if msg.cut {
			m.nav.ClearClipboard()
		}
		m.bus.Publish(eventbus.TransferCompletedEvent{
			Operation: string(msg.op),
			Performed: msg.result.Performed,
			Skipped:   msg.result.Skipped,
			Failed:    msg.result.Failed,
			Total:     msg.result.Attempted,
		})
		return m, m.loadListing()

	case downloadDoneMsg:
		if msg.err != nil {
			return m, m.errorToast(fmt.Sprintf("Download failed: %v", msg.err))
		}
		return m, m.infoToast(fmt.Sprintf("Saved %s", msg.dest))

	case toastExpireMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case indexStatusMsg:
		if msg.err == nil {
			if m.indexRunning != msg.running {
				m.bus.Publish(eventbus.IndexStatusChangedEvent{Running: msg.running})
			}
			m.indexRunning = msg.running
		}
		if m.indexRunning {
			return m, tea.Tick(indexPollEvery, func(time.Time) tea.Msg {
				return tickMsg(time.Now())
			})
		}
		return m, nil

	case healthMsg:
		m.connected = msg.ok
		return m, nil

	case previewDoneMsg:
		m.nav.SetPreviewPath("")
		if msg.err != nil {
			return m, m.errorToast(fmt.Sprintf("Preview failed: %v", msg.err))
		}
		return m, nil

	case tickMsg:
		if m.indexRunning {
			return m, m.pollIndexStatus()
		}
		return m, nil
	}

	// Blink ticks and other text input messages
	return m, m.handler.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "j", "down":
			m.helpScroll++
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		default:
			m.showHelp = false
			m.helpScroll = 0
		}
		return m, nil
	}

	actions, cmd := m.handler.HandleKey(msg, modelContext{m: m})
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.applyAction(action))
	}
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

// applyAction executes one dispatched action against the stores.
func (m *Model) applyAction(action types.Action) tea.Cmd {
	switch a := action.(type) {
	case types.MoveFocusAction:
		return m.moveFocus(m.focusIndex+a.Delta, a.Extend)

	case types.FocusEdgeAction:
		target := 0
		if a.End {
			target = len(m.visibleEntries()) - 1
		}
		return m.moveFocus(target, a.Extend)

	case types.PageAction:
		return m.changePage(a.Delta)

	case types.OpenAction:
		e := m.currentEntry()
		if e == nil {
			return nil
		}
		if e.IsDir {
			m.nav.SetCurrentPath(e.Path)
			m.filterQuery = ""
			m.focusIndex = 0
			return tea.Batch(m.loadListing(), m.maybeLoadTree())
		}
		return m.openPreview(*e)

	case types.ParentAction:
		current := m.nav.CurrentPath()
		if current == "/" {
			return nil
		}
		// Focus the directory we came from once the parent listing loads
		m.nav.SetPendingFocusPath(current)
		m.nav.SetCurrentPath(domain.ParentPath(current))
		m.filterQuery = ""
		m.focusIndex = 0
		return tea.Batch(m.loadListing(), m.maybeLoadTree())

	case types.HistoryBackAction:
		if m.nav.GoBack() {
			m.filterQuery = ""
			m.focusIndex = 0
			return tea.Batch(m.loadListing(), m.maybeLoadTree())
		}
		return nil

	case types.HistoryForwardAction:
		if m.nav.GoForward() {
			m.filterQuery = ""
			m.focusIndex = 0
			return tea.Batch(m.loadListing(), m.maybeLoadTree())
		}
		return nil

	case types.ExitSearchAction:
		m.cancelSearchInFlight()
		m.nav.ExitSearch()
		m.focusIndex = 0
		return m.loadListing()

	case types.ToggleSelectAction:
		if e := m.currentEntry(); e != nil {
			m.nav.ToggleSelection(e.Path)
		}
		return nil

	case types.SelectAllAction:
		m.nav.SelectRange(m.visiblePaths())
		return nil

	case types.DeselectAllAction:
		m.nav.ClearSelection()
		return nil

	case types.CopyAction:
		if paths := m.operationTargets(); len(paths) > 0 {
			m.nav.CopyFiles(paths)
			return m.infoToast(fmt.Sprintf("Copied %d items to clipboard", len(paths)))
		}
		return nil

	case types.CutAction:
		if paths := m.operationTargets(); len(paths) > 0 {
			m.nav.CutFiles(paths)
			return m.infoToast(fmt.Sprintf("Cut %d items to clipboard", len(paths)))
		}
		return nil

	case types.PasteAction:
		return m.startPaste()

	case types.PasteStrategyAction:
		return m.resolvePaste(a.Overwrite)

	case types.CopyPathsAction:
		paths := m.operationTargets()
		if len(paths) == 0 {
			return nil
		}
		if err := clipboard.WriteAll(strings.Join(paths, "\n")); err != nil {
			return m.errorToast(fmt.Sprintf("Clipboard unavailable: %v", err))
		}
		return m.infoToast(fmt.Sprintf("Copied %d paths", len(paths)))

	case types.DeleteConfirmedAction:
		return m.deleteBatch(m.operationTargets())

	case types.DownloadAction:
		if e := m.currentEntry(); e != nil && !e.IsDir {
			return m.download(*e)
		}
		return nil

	case types.UpdateTextAction:
		return m.handleTextUpdate(a.Text)

	case types.SubmitTextAction:
		return m.handleTextSubmit(a)

	case types.CancelTextAction:
		if m.nav.IsSearching() {
			m.cancelSearchInFlight()
			m.nav.ExitSearch()
			m.focusIndex = 0
			return m.loadListing()
		}
		m.filterQuery = ""
		return nil

	case types.RefreshAction:
		return tea.Batch(m.loadListing(), m.probeHealth())

	case types.CycleViewAction:
		mode := domain.ViewGrid
		if m.nav.ViewMode() == domain.ViewGrid {
			mode = domain.ViewList
		}
		m.nav.SetViewMode(mode)
		m.publishUIConfig()
		return nil

	case types.ToggleSidebarAction:
		m.showSidebar = !m.showSidebar
		m.publishUIConfig()
		if m.showSidebar {
			return m.loadTree()
		}
		return nil

	case types.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.helpScroll = 0
		return nil

	case types.TriggerIndexAction:
		return m.triggerIndex()

	case types.ChangeModeAction:
		m.nav.SetDeleteConfirmOpen(a.Mode == types.ModeDeleteConfirm)
		return nil

	case types.QuitAction:
		m.quitting = true
		return nil
	}

	return nil
}

// cancelSearchInFlight aborts the search request of the superseded
// generation, if one is still running.
func (m *Model) cancelSearchInFlight() {
	if m.searchCancel != nil {
		m.searchCancel()
		m.searchCancel = nil
	}
}

// moveFocus clamps the focus into the listing, optionally extending the
// selection from the anchor to the new focus.
func (m *Model) moveFocus(target int, extend bool) tea.Cmd {
	visible := m.visibleEntries()
	if len(visible) == 0 {
		m.focusIndex = 0
		return nil
	}
	if target < 0 {
		target = 0
	}
	if target >= len(visible) {
		target = len(visible) - 1
	}
	m.focusIndex = target

	if extend {
		targetPath := visible[target].Path
		anchor := m.nav.LastSelected()
		if anchor == "" {
			m.nav.SelectFile(targetPath, false)
			return nil
		}
		union := navigation.ExtendSelection(m.visiblePaths(), m.nav.SelectedFiles(), anchor, targetPath)
		m.nav.SelectRange(union)
	}
	return nil
}

func (m *Model) changePage(delta int) tea.Cmd {
	if m.nav.IsSearching() {
		offset := m.nav.SearchOffset() + delta*m.nav.SearchLimit()
		if offset >= m.total {
			return nil
		}
		m.nav.SetSearchOffset(offset)
	} else {
		offset := m.nav.DirectoryOffset() + delta*m.nav.DirectoryLimit()
		if offset >= m.total {
			return nil
		}
		m.nav.SetDirectoryOffset(offset)
	}
	m.focusIndex = 0
	return m.loadListing()
}

// startPaste stages the clipboard batch and opens the collision prompt.
func (m *Model) startPaste() tea.Cmd {
	cb := m.nav.Clipboard()
	if cb.Empty() {
		return nil
	}

	m.pendingPaste = &transfer.Prompt{
		Paths:      cb.Files,
		TargetPath: m.nav.CurrentPath(),
	}
	m.pendingOp = transfer.OpCopy
	m.pendingCut = cb.Operation == domain.ClipboardCut
	if m.pendingCut {
		m.pendingOp = transfer.OpMove
	}
	m.handler.ChangeMode(types.ModePasteStrategy, "")
	return nil
}

// resolvePaste runs the staged batch with the chosen collision strategy.
func (m *Model) resolvePaste(overwrite bool) tea.Cmd {
	if m.pendingPaste == nil {
		return nil
	}

	req := transfer.Request{
		Action: transfer.Action{Operation: m.pendingOp, Strategy: transfer.StrategySkip},
		Prompt: *m.pendingPaste,
	}
	if overwrite {
		req.Action.Strategy = transfer.StrategyOverwrite
	}
	op := m.pendingOp
	cut := m.pendingCut
	resolver := m.resolver
	m.pendingPaste = nil

	return func() tea.Msg {
		result := resolver.PerformDrop(context.Background(), req)
		return transferDoneMsg{op: op, cut: cut, result: result}
	}
}

// deleteBatch deletes sequentially, continuing past failures and tallying.
func (m *Model) deleteBatch(paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	client := m.client
	m.nav.ClearSelection()

	return func() tea.Msg {
		performed, failed := 0, 0
		for _, p := range paths {
			if _, err := client.Delete(context.Background(), p); err != nil {
				log.Printf("delete %s: %v", p, err)
				failed++
				continue
			}
			performed++
		}
		return deleteDoneMsg{performed: performed, failed: failed}
	}
}

func (m *Model) download(e domain.Entry) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		rc, err := client.Download(context.Background(), e.Path)
		if err != nil {
			return downloadDoneMsg{path: e.Path, err: err}
		}
		defer rc.Close()

		dir, err := os.UserHomeDir()
		if err != nil {
			dir = "."
		} else {
			dir = filepath.Join(dir, "Downloads")
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return downloadDoneMsg{path: e.Path, err: err}
		}

		dest := filepath.Join(dir, e.Name)
		f, err := os.Create(dest)
		if err != nil {
			return downloadDoneMsg{path: e.Path, err: err}
		}
		defer f.Close()

		if _, err := io.Copy(f, rc); err != nil {
			return downloadDoneMsg{path: e.Path, dest: dest, err: err}
		}
		return downloadDoneMsg{path: e.Path, dest: dest}
	}
}

func (m *Model) openPreview(e domain.Entry) tea.Cmd {
	if m.preview == nil {
		return m.errorToast("Preview unavailable")
	}
	m.nav.SetPreviewPath(e.Path)
	client := m.client
	preview := m.preview
	return func() tea.Msg {
		rc, err := client.Download(context.Background(), e.Path)
		if err != nil {
			return previewDoneMsg{err: err}
		}
		defer rc.Close()
		return previewDoneMsg{err: preview.ShowInPager(e.Name, rc)}
	}
}

func (m *Model) handleTextUpdate(text string) tea.Cmd {
	switch m.handler.CurrentMode() {
	case types.ModeSearch:
		m.nav.SetSearchQuery(text)
		m.focusIndex = 0
		// The new query supersedes any in-flight request for the old one.
		m.searchGen++
		m.cancelSearchInFlight()
		if len(text) < 2 {
			return nil
		}
		gen := m.searchGen
		return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{gen: gen}
		})
	case types.ModeFilter:
		m.filterQuery = text
		m.focusIndex = 0
	}
	return nil
}

func (m *Model) handleTextSubmit(a types.SubmitTextAction) tea.Cmd {
	text := strings.TrimSpace(a.Text)

	switch a.Mode {
	case types.ModeSearch:
		// Search is live; submit just leaves the input with results showing
		return nil

	case types.ModeFilter:
		m.filterQuery = text
		m.focusIndex = 0
		return nil

	case types.ModeMkdir:
		if text == "" {
			return nil
		}
		path := domain.JoinPath(m.nav.CurrentPath(), text)
		client := m.client
		return func() tea.Msg {
			_, err := client.Mkdir(context.Background(), path)
			return opDoneMsg{op: "mkdir", focus: path, err: err}
		}

	case types.ModeRename:
		e := m.currentEntry()
		if e == nil || text == "" || text == e.Name {
			return nil
		}
		oldPath := e.Path
		newPath := domain.JoinPath(domain.ParentPath(oldPath), text)
		client := m.client
		return func() tea.Msg {
			_, err := client.Rename(context.Background(), oldPath, text)
			return opDoneMsg{op: "rename", focus: newPath, err: err}
		}

	case types.ModeUpload:
		if text == "" {
			return nil
		}
		return m.upload(text)

	case types.ModeSort:
		return m.applySort(text)
	}

	return nil
}

// upload streams a local file into the current directory, reporting
// progress through the bus.
func (m *Model) upload(localPath string) tea.Cmd {
	dir := m.nav.CurrentPath()
	client := m.client
	bus := m.bus

	return func() tea.Msg {
		f, err := os.Open(localPath)
		if err != nil {
			return opDoneMsg{op: "upload", err: err}
		}
		defer f.Close()

		var total int64
		if info, err := f.Stat(); err == nil {
			total = info.Size()
		}

		name := filepath.Base(localPath)
		_, err = client.UploadWithProgress(context.Background(), dir, name, f, total,
			func(written, total int64) {
				bus.Publish(eventbus.UploadProgressEvent{Name: name, Written: written, Total: total})
			})
		return opDoneMsg{op: "upload", focus: domain.JoinPath(dir, name), err: err}
	}
}

// applySort parses "field" or "-field" and re-sorts the active listing.
func (m *Model) applySort(text string) tea.Cmd {
	order := domain.SortAsc
	if strings.HasPrefix(text, "-") {
		order = domain.SortDesc
		text = strings.TrimPrefix(text, "-")
	}

	var field domain.SortField
	switch strings.ToLower(text) {
	case "name":
		field = domain.SortByName
	case "path":
		field = domain.SortByPath
	case "size":
		field = domain.SortBySize
	case "modified", "mtime":
		field = domain.SortByModified
	case "created":
		field = domain.SortByCreated
	case "type", "mime":
		field = domain.SortByMimeType
	case "width":
		field = domain.SortByWidth
	case "height":
		field = domain.SortByHeight
	case "duration":
		field = domain.SortByDuration
	default:
		return m.errorToast(fmt.Sprintf("Unknown sort field %q", text))
	}

	cfg := domain.SortConfig{Field: field, Order: order}
	if m.nav.IsSearching() {
		m.nav.SetSearchSort(cfg)
	} else {
		m.nav.SetSort(cfg)
	}
	m.focusIndex = 0
	return m.loadListing()
}

// handleEvent applies bus events forwarded into the Update goroutine.
func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.SelectionClearRequestedEvent:
		m.nav.ClearSelection()
		return m, nil

	case eventbus.ToastEvent:
		if e.IsError {
			return m, m.errorToast(e.Message)
		}
		return m, m.infoToast(e.Message)

	case eventbus.ErrorEvent:
		return m, m.errorToast(e.Message)

	case eventbus.IndexStatusChangedEvent:
		m.indexRunning = e.Running
		return m, nil

	case eventbus.UploadProgressEvent:
		m.uploadName = e.Name
		if e.Total > 0 {
			m.uploadPct = int(e.Written * 100 / e.Total)
		}
		if e.Total > 0 && e.Written >= e.Total {
			m.uploadName = ""
			m.uploadPct = 0
			return m, m.loadListing()
		}
		return m, nil
	}

	return m, nil
}

// handleListing installs a fresh listing and fixes up focus and offsets.
func (m *Model) handleListing(msg listingMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err != nil {
		// Aborted requests were superseded on purpose; nothing to report.
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		if api.IsNotFound(msg.err) && m.nav.CurrentPath() != "/" {
			// The directory vanished under us; fall back to its parent.
			m.nav.SetCurrentPath(domain.ParentPath(m.nav.CurrentPath()), navigation.ReplaceHistory())
			return m, m.loadListing()
		}
		return m, m.errorToast(fmt.Sprintf("Load failed: %v", msg.err))
	}

	// Drop stale search responses: an old query's results must not clobber
	// the listing for the current one.
	if msg.forSearch {
		if !m.nav.IsSearching() || msg.gen != m.searchGen {
			return m, nil
		}
	} else if m.nav.IsSearching() {
		return m, nil
	}

	m.entries = msg.result.Entries
	m.total = msg.result.Total

	// An out-of-range offset (page deleted under us) snaps to the last page.
	if len(m.entries) == 0 && m.total > 0 && !msg.forSearch && m.nav.DirectoryOffset() > 0 {
		limit := m.nav.DirectoryLimit()
		last := ((m.total - 1) / limit) * limit
		m.nav.SetDirectoryOffset(last, navigation.ReplaceHistory())
		return m, m.loadListing()
	}

	if m.focusIndex >= len(m.visibleEntries()) {
		m.focusIndex = 0
	}

	if want := m.nav.TakePendingFocusPath(); want != "" {
		for i, e := range m.visibleEntries() {
			if e.Path == want {
				m.focusIndex = i
				break
			}
		}
	}

	return m, nil
}

// Commands

func (m *Model) loadListing() tea.Cmd {
	m.loading = true
	client := m.client

	if m.nav.IsSearching() && len(m.nav.SearchQuery()) >= 2 {
		query := m.nav.SearchQuery()
		offset := m.nav.SearchOffset()
		limit := m.nav.SearchLimit()
		sort := m.nav.SearchSortConfig()
		gen := m.searchGen

		// One abortable request per query generation
		m.cancelSearchInFlight()
		ctx, cancel := context.WithCancel(context.Background())
		m.searchCancel = cancel

		return func() tea.Msg {
			result, err := client.Search(ctx, query, offset, limit, sort)
			return listingMsg{result: result, forSearch: true, gen: gen, err: err}
		}
	}

	// A browse load supersedes any search still in flight.
	m.cancelSearchInFlight()

	path := m.nav.CurrentPath()
	offset := m.nav.DirectoryOffset()
	limit := m.nav.DirectoryLimit()
	sort := m.nav.SortConfig()
	return func() tea.Msg {
		result, err := client.Browse(context.Background(), path, offset, limit, sort)
		return listingMsg{result: result, err: err}
	}
}

// loadTree fetches sidebar nodes for the root and every ancestor of the
// current path, so the tree is expanded down to the current directory.
func (m *Model) loadTree() tea.Cmd {
	client := m.client

	paths := []string{"/"}
	for p := m.nav.CurrentPath(); p != "/"; p = domain.ParentPath(p) {
		paths = append(paths, p)
	}

	return func() tea.Msg {
		nodes := make(map[string][]domain.TreeNode, len(paths))
		for _, p := range paths {
			children, err := client.Tree(context.Background(), p)
			if err != nil {
				return treeMsg{err: err}
			}
			nodes[p] = children
		}
		return treeMsg{nodes: nodes}
	}
}

func (m *Model) maybeLoadTree() tea.Cmd {
	if !m.showSidebar {
		return nil
	}
	return m.loadTree()
}

func (m *Model) probeHealth() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.Health(context.Background())
		return healthMsg{ok: err == nil}
	}
}

func (m *Model) pollIndexStatus() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		status, err := client.IndexStatus(context.Background())
		if err != nil {
			return indexStatusMsg{err: err}
		}
		return indexStatusMsg{running: status.IsRunning}
	}
}

func (m *Model) triggerIndex() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		status, err := client.TriggerIndex(context.Background())
		if err != nil {
			return indexStatusMsg{err: err}
		}
		return indexStatusMsg{running: status.IsRunning}
	}
}

func (m *Model) infoToast(message string) tea.Cmd {
	return m.setToast(message, false)
}

func (m *Model) errorToast(message string) tea.Cmd {
	log.Printf("error: %s", message)
	return m.setToast(message, true)
}

func (m *Model) setToast(message string, isError bool) tea.Cmd {
	m.toast = message
	m.toastIsError = isError
	m.toastID++
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpireMsg{id: id}
	})
}

func (m *Model) publishUIConfig() {
	m.bus.Publish(eventbus.ConfigChangedEvent{
		SidebarWidth: m.nav.SidebarWidth(),
		ViewMode:     m.nav.ViewMode(),
	})
}

// State helpers

// visibleEntries applies the client-side fuzzy filter to the listing.
func (m *Model) visibleEntries() []domain.Entry {
	if m.filterQuery == "" {
		return m.entries
	}

	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.Name
	}
	matches := fuzzy.Find(m.filterQuery, names)

	out := make([]domain.Entry, 0, len(matches))
	for _, match := range matches {
		out = append(out, m.entries[match.Index])
	}
	return out
}

func (m *Model) visiblePaths() []string {
	visible := m.visibleEntries()
	paths := make([]string, len(visible))
	for i, e := range visible {
		paths[i] = e.Path
	}
	return paths
}

func (m *Model) currentEntry() *domain.Entry {
	visible := m.visibleEntries()
	if m.focusIndex < 0 || m.focusIndex >= len(visible) {
		return nil
	}
	e := visible[m.focusIndex]
	return &e
}

// operationTargets is the batch file operations act on: the selection when
// one exists, otherwise the focused entry.
func (m *Model) operationTargets() []string {
	if paths := m.nav.SelectedFiles(); len(paths) > 0 {
		return paths
	}
	if e := m.currentEntry(); e != nil {
		return []string{e.Path}
	}
	return nil
}

// sidebarRows flattens the loaded tree into visible rows, expanding along
// the current path.
func (m *Model) sidebarRows() []views.SidebarRow {
	var rows []views.SidebarRow
	var walk func(path string, depth int)
	walk = func(path string, depth int) {
		for _, node := range m.treeNodes[path] {
			expanded := m.treeExpanded[node.Path] && len(m.treeNodes[node.Path]) > 0
			rows = append(rows, views.SidebarRow{Node: node, Depth: depth, Expanded: expanded})
			if expanded {
				walk(node.Path, depth+1)
			}
		}
	}
	walk("/", 0)
	return rows
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := views.ViewState{
		Width:        m.width,
		Height:       m.height,
		Path:         m.nav.CurrentPath(),
		IsSearching:  m.nav.IsSearching(),
		SearchQuery:  m.nav.SearchQuery(),
		FilterQuery:  m.filterQuery,
		Entries:      m.visibleEntries(),
		FocusIndex:   m.focusIndex,
		Selected:     selectionSet(m.nav.SelectedFiles()),
		Offset:       m.nav.DirectoryOffset(),
		Total:        m.total,
		ViewMode:     m.nav.ViewMode(),
		ShowSidebar:  m.showSidebar,
		SidebarWidth: m.nav.SidebarWidth(),
		SidebarRows:  m.sidebarRows(),
		Clipboard:    m.nav.Clipboard(),
		Loading:      m.loading,
		IndexRunning: m.indexRunning,
		UploadName:   m.uploadName,
		UploadPct:    m.uploadPct,
		Toast:        m.toast,
		ToastIsError: m.toastIsError,
		ShowHelp:     m.showHelp,
		HelpScrollOffset: m.helpScroll,
		Connected:    m.connected,
	}

	if m.nav.IsSearching() {
		state.Offset = m.nav.SearchOffset()
		state.Sort = m.nav.SearchSortConfig()
	} else {
		state.Sort = m.nav.SortConfig()
	}

	switch m.handler.CurrentMode() {
	case types.ModeDeleteConfirm:
		n := len(m.operationTargets())
		state.ConfirmPrompt = fmt.Sprintf("Delete %d items? (y/n): ", n)
	case types.ModePasteStrategy:
		verb := "Move"
		if m.pendingOp == transfer.OpCopy {
			verb = "Copy"
		}
		n := 0
		if m.pendingPaste != nil {
			n = len(m.pendingPaste.Paths)
		}
		state.PastePrompt = fmt.Sprintf("%s %d items: [o]verwrite existing, [s]kip existing, [esc] cancel", verb, n)
	default:
		if ti := m.handler.TextInput(); ti != nil {
			state.InputMode = m.handler.ModeName()
			state.Prompt = m.handler.Prompt()
			state.TextInput = ti.Value()
		}
	}

	return m.renderer.Render(state)
}

func selectionSet(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}
