package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"filedeck/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		// Terminal convention wins over copy when nothing is selected.
		if ctx.HasSelection() {
			return []types.Action{types.CopyAction{}}, true
		}
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.MoveFocusAction{Delta: -1}}, true

	case tea.KeyDown:
		return []types.Action{types.MoveFocusAction{Delta: 1}}, true

	case tea.KeyShiftUp:
		return []types.Action{types.MoveFocusAction{Delta: -1, Extend: true}}, true

	case tea.KeyShiftDown:
		return []types.Action{types.MoveFocusAction{Delta: 1, Extend: true}}, true

	case tea.KeyLeft:
		return []types.Action{types.ParentAction{}}, true

	case tea.KeyRight, tea.KeyEnter:
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, false

	case tea.KeyPgUp:
		return []types.Action{types.PageAction{Delta: -1}}, true

	case tea.KeyPgDown:
		return []types.Action{types.PageAction{Delta: 1}}, true

	case tea.KeyHome:
		return []types.Action{types.FocusEdgeAction{End: false}}, true

	case tea.KeyEnd:
		return []types.Action{types.FocusEdgeAction{End: true}}, true

	case tea.KeyDelete, tea.KeyBackspace:
		if ctx.HasSelection() || ctx.CurrentEntryPath() != "" {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeDeleteConfirm}}, true
		}
		return nil, false

	case tea.KeyF2:
		if ctx.CurrentEntryPath() != "" {
			return []types.Action{types.ChangeModeAction{
				Mode: types.ModeRename,
				Data: ctx.CurrentEntryName(),
			}}, true
		}
		return nil, false

	case tea.KeyCtrlA:
		return []types.Action{types.SelectAllAction{}}, true

	case tea.KeyCtrlX:
		if ctx.HasSelection() || ctx.CurrentEntryPath() != "" {
			return []types.Action{types.CutAction{}}, true
		}
		return nil, false

	case tea.KeyCtrlV:
		if ctx.ClipboardPending() {
			return []types.Action{types.PasteAction{}}, true
		}
		return nil, true // Consume the key even if no action
	}

	// Handle string keys
	switch msg.String() {
	case "j":
		return []types.Action{types.MoveFocusAction{Delta: 1}}, true

	case "k":
		return []types.Action{types.MoveFocusAction{Delta: -1}}, true

	case "h":
		return []types.Action{types.ParentAction{}}, true

	case "l":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, false

	case "J":
		return []types.Action{types.MoveFocusAction{Delta: 1, Extend: true}}, true

	case "K":
		return []types.Action{types.MoveFocusAction{Delta: -1, Extend: true}}, true

	case " ":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.ToggleSelectAction{}}, true
		}
		return nil, false

	case "[":
		if ctx.CanGoBack() {
			return []types.Action{types.HistoryBackAction{}}, true
		}
		return nil, true // Consume the key even if no action

	case "]":
		if ctx.CanGoForward() {
			return []types.Action{types.HistoryForwardAction{}}, true
		}
		return nil, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "f":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true

	case "n":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeMkdir}}, true

	case "r":
		if ctx.CurrentEntryPath() != "" {
			return []types.Action{types.ChangeModeAction{
				Mode: types.ModeRename,
				Data: ctx.CurrentEntryName(),
			}}, true
		}
		return nil, false

	case "s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true

	case "u":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeUpload}}, true

	case "v":
		return []types.Action{types.CycleViewAction{}}, true

	case "t":
		return []types.Action{types.ToggleSidebarAction{}}, true

	case "d":
		// Download only applies to files
		if ctx.CurrentEntryPath() != "" && !ctx.CurrentEntryIsDir() {
			return []types.Action{types.DownloadAction{}}, true
		}
		return nil, false

	case "Y":
		if ctx.HasSelection() || ctx.CurrentEntryPath() != "" {
			return []types.Action{types.CopyPathsAction{}}, true
		}
		return nil, false

	case "R":
		return []types.Action{types.RefreshAction{}}, true

	case "I":
		return []types.Action{types.TriggerIndexAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "esc":
		// Clear selection first, then leave search results
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		if ctx.IsSearching() {
			return []types.Action{types.ExitSearchAction{}}, true
		}
		return nil, true // Consume the key even if no action

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.FocusEdgeAction{End: false}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.FocusEdgeAction{End: true}}, true

	default:
		// Any other key cancels the 'g' prefix
		if m.lastKeyWasG {
			m.lastKeyWasG = false
		}
	}

	return nil, false
}
