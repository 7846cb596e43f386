package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedeck/internal/ui/input/types"
)

// stubContext is a canned Context for dispatch tests.
type stubContext struct {
	index      int
	total      int
	selected   int
	entryPath  string
	entryName  string
	entryIsDir bool
	clipboard  bool
	searching  bool
	canBack    bool
	canForward bool
}

func (c *stubContext) CurrentIndex() int       { return c.index }
func (c *stubContext) TotalItems() int         { return c.total }
func (c *stubContext) PageSize() int           { return 200 }
func (c *stubContext) HasSelection() bool      { return c.selected > 0 }
func (c *stubContext) SelectedCount() int      { return c.selected }
func (c *stubContext) CurrentEntryPath() string { return c.entryPath }
func (c *stubContext) CurrentEntryName() string { return c.entryName }
func (c *stubContext) CurrentEntryIsDir() bool  { return c.entryIsDir }
func (c *stubContext) ClipboardPending() bool   { return c.clipboard }
func (c *stubContext) IsSearching() bool        { return c.searching }
func (c *stubContext) CanGoBack() bool          { return c.canBack }
func (c *stubContext) CanGoForward() bool       { return c.canForward }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+v":
		return tea.KeyMsg{Type: tea.KeyCtrlV}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func firstAction(t *testing.T, h *Handler, key string, ctx types.Context) types.Action {
	t.Helper()
	actions, _ := h.HandleKey(keyMsg(key), ctx)
	require.NotEmpty(t, actions, "key %q produced no actions", key)
	return actions[0]
}

func TestNormalModeKeymap(t *testing.T) {
	ctx := &stubContext{
		total:      10,
		entryPath:  "/docs/report.txt",
		entryName:  "report.txt",
		clipboard:  true,
		canBack:    true,
		canForward: true,
	}

	cases := []struct {
		key  string
		want types.Action
	}{
		{"down", types.MoveFocusAction{Delta: 1}},
		{"up", types.MoveFocusAction{Delta: -1}},
		{"j", types.MoveFocusAction{Delta: 1}},
		{"k", types.MoveFocusAction{Delta: -1}},
		{"shift+down", types.MoveFocusAction{Delta: 1, Extend: true}},
		{"J", types.MoveFocusAction{Delta: 1, Extend: true}},
		{"G", types.FocusEdgeAction{End: true}},
		{"left", types.ParentAction{}},
		{"h", types.ParentAction{}},
		{"enter", types.OpenAction{}},
		{"[", types.HistoryBackAction{}},
		{"]", types.HistoryForwardAction{}},
		{"space", types.ToggleSelectAction{}},
		{"ctrl+a", types.SelectAllAction{}},
		{"ctrl+x", types.CutAction{}},
		{"ctrl+v", types.PasteAction{}},
		{"v", types.CycleViewAction{}},
		{"t", types.ToggleSidebarAction{}},
		{"d", types.DownloadAction{}},
		{"R", types.RefreshAction{}},
		{"I", types.TriggerIndexAction{}},
		{"?", types.ToggleHelpAction{}},
		{"q", types.QuitAction{Force: false}},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			h := New()
			assert.Equal(t, tc.want, firstAction(t, h, tc.key, ctx))
		})
	}
}

func TestCtrlCCopiesWithSelectionQuitsWithout(t *testing.T) {
	h := New()

	withSel := &stubContext{total: 3, selected: 2}
	assert.Equal(t, types.CopyAction{}, firstAction(t, h, "ctrl+c", withSel))

	noSel := &stubContext{total: 3}
	assert.Equal(t, types.QuitAction{Force: true}, firstAction(t, h, "ctrl+c", noSel))
}

func TestEscClearsSelectionBeforeLeavingSearch(t *testing.T) {
	h := New()

	both := &stubContext{total: 3, selected: 1, searching: true}
	assert.Equal(t, types.DeselectAllAction{}, firstAction(t, h, "esc", both))

	searchOnly := &stubContext{total: 3, searching: true}
	assert.Equal(t, types.ExitSearchAction{}, firstAction(t, h, "esc", searchOnly))

	neither := &stubContext{total: 3}
	actions, _ := h.HandleKey(keyMsg("esc"), neither)
	assert.Empty(t, actions)
}

func TestDownloadRequiresFile(t *testing.T) {
	h := New()

	onDir := &stubContext{total: 3, entryPath: "/docs", entryName: "docs", entryIsDir: true}
	actions, _ := h.HandleKey(keyMsg("d"), onDir)
	assert.Empty(t, actions)
}

func TestPasteRequiresClipboard(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(keyMsg("ctrl+v"), &stubContext{total: 3})
	assert.Empty(t, actions)
}

func TestGGJumpsToTop(t *testing.T) {
	h := New()
	ctx := &stubContext{total: 10}

	actions, _ := h.HandleKey(keyMsg("g"), ctx)
	assert.Empty(t, actions)

	assert.Equal(t, types.FocusEdgeAction{End: false}, firstAction(t, h, "g", ctx))
}

func TestSearchModeLifecycle(t *testing.T) {
	h := New()
	ctx := &stubContext{total: 10}

	actions, _ := h.HandleKey(keyMsg("/"), ctx)
	require.NotEmpty(t, actions)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "Search: ", h.Prompt())

	// Typing flows into the shared text input and surfaces as UpdateText
	actions, _ = h.HandleKey(keyMsg("r"), ctx)
	require.NotEmpty(t, actions)
	assert.Equal(t, types.UpdateTextAction{Text: "r"}, actions[len(actions)-1])

	actions, _ = h.HandleKey(keyMsg("e"), ctx)
	assert.Equal(t, types.UpdateTextAction{Text: "re"}, actions[len(actions)-1])

	// Enter submits and drops back to normal mode
	actions, _ = h.HandleKey(keyMsg("enter"), ctx)
	assert.Contains(t, actions, types.SubmitTextAction{Text: "re", Mode: types.ModeSearch})
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestEscCancelsTextMode(t *testing.T) {
	h := New()
	ctx := &stubContext{total: 10}

	h.HandleKey(keyMsg("/"), ctx)
	h.HandleKey(keyMsg("x"), ctx)

	actions, _ := h.HandleKey(keyMsg("esc"), ctx)
	assert.Contains(t, actions, types.CancelTextAction{})
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestRenameModePrefillsCurrentName(t *testing.T) {
	h := New()
	ctx := &stubContext{total: 3, entryPath: "/docs/report.txt", entryName: "report.txt"}

	h.HandleKey(keyMsg("f2"), ctx)
	require.Equal(t, types.ModeRename, h.CurrentMode())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "report.txt", h.TextInput().Value())
}

func TestDeleteConfirmFlow(t *testing.T) {
	h := New()
	ctx := &stubContext{total: 3, entryPath: "/docs/report.txt", entryName: "report.txt"}

	h.HandleKey(keyMsg("delete"), ctx)
	require.Equal(t, types.ModeDeleteConfirm, h.CurrentMode())

	// n cancels without a delete action
	actions, _ := h.HandleKey(keyMsg("n"), ctx)
	assert.NotContains(t, actions, types.DeleteConfirmedAction{})
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	h.HandleKey(keyMsg("delete"), ctx)
	actions, _ = h.HandleKey(keyMsg("y"), ctx)
	assert.Contains(t, actions, types.DeleteConfirmedAction{})
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestPasteStrategyMode(t *testing.T) {
	h := New()
	ctx := &stubContext{total: 3, clipboard: true}

	// The model opens the prompt itself when a collision needs resolving.
	h.ChangeMode(types.ModePasteStrategy, "")
	require.Equal(t, types.ModePasteStrategy, h.CurrentMode())

	actions, _ := h.HandleKey(keyMsg("o"), ctx)
	assert.Contains(t, actions, types.PasteStrategyAction{Overwrite: true})
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	h.ChangeMode(types.ModePasteStrategy, "")
	actions, _ = h.HandleKey(keyMsg("s"), ctx)
	assert.Contains(t, actions, types.PasteStrategyAction{Overwrite: false})
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(keyMsg("z"), &stubContext{total: 3})
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
