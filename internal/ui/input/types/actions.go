package types

// Focus actions

// MoveFocusAction moves the focused entry by Delta rows. With Extend the
// contiguous range from the selection anchor is added to the selection.
type MoveFocusAction struct {
	Delta  int
	Extend bool
}

func (a MoveFocusAction) Type() string { return "move_focus" }

// FocusEdgeAction jumps to the first or last entry of the listing.
type FocusEdgeAction struct {
	End    bool
	Extend bool
}

func (a FocusEdgeAction) Type() string { return "focus_edge" }

// PageAction moves the focus by whole pages; negative is up.
type PageAction struct {
	Delta int
}

func (a PageAction) Type() string { return "page" }

// Navigation actions

// OpenAction opens the focused entry: directories navigate into, files open
// the preview.
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

// ParentAction navigates to the parent directory.
type ParentAction struct{}

func (a ParentAction) Type() string { return "parent" }

type HistoryBackAction struct{}

func (a HistoryBackAction) Type() string { return "history_back" }

type HistoryForwardAction struct{}

func (a HistoryForwardAction) Type() string { return "history_forward" }

// ExitSearchAction leaves search results and returns to the browse listing.
type ExitSearchAction struct{}

func (a ExitSearchAction) Type() string { return "exit_search" }

// Selection actions

// ToggleSelectAction flips selection membership of the focused entry.
type ToggleSelectAction struct{}

func (a ToggleSelectAction) Type() string { return "toggle_select" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// Clipboard actions

type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

type CutAction struct{}

func (a CutAction) Type() string { return "cut" }

// PasteAction pastes the pending clipboard batch into the current directory.
type PasteAction struct{}

func (a PasteAction) Type() string { return "paste" }

// PasteStrategyAction resolves a pending collision prompt.
type PasteStrategyAction struct {
	Overwrite bool
}

func (a PasteStrategyAction) Type() string { return "paste_strategy" }

// CopyPathsAction copies the selected paths to the system clipboard.
type CopyPathsAction struct{}

func (a CopyPathsAction) Type() string { return "copy_paths" }

// File operation actions

// DeleteConfirmedAction deletes the selection (or the focused entry) after
// the confirm prompt.
type DeleteConfirmedAction struct{}

func (a DeleteConfirmedAction) Type() string { return "delete_confirmed" }

type DownloadAction struct{}

func (a DownloadAction) Type() string { return "download" }

// Mode transition actions

type ChangeModeAction struct {
	Mode Mode
	Data string // Optional prefill for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions

type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Command actions

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type CycleViewAction struct{}

func (a CycleViewAction) Type() string { return "cycle_view" }

type ToggleSidebarAction struct{}

func (a ToggleSidebarAction) Type() string { return "toggle_sidebar" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type TriggerIndexAction struct{}

func (a TriggerIndexAction) Type() string { return "trigger_index" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
