package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"filedeck/internal/domain"
)

// SidebarRow is one visible row of the directory tree pane.
type SidebarRow struct {
	Node     domain.TreeNode
	Depth    int
	Expanded bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Path        string
	IsSearching bool
	SearchQuery string
	FilterQuery string

	Entries    []domain.Entry
	FocusIndex int
	Selected   map[string]bool

	Offset int
	Total  int

	ViewMode domain.ViewMode
	Sort     domain.SortConfig

	ShowSidebar  bool
	SidebarWidth int
	SidebarRows  []SidebarRow

	Clipboard domain.Clipboard

	Loading      bool
	IndexRunning bool
	UploadName   string
	UploadPct    int

	Toast        string
	ToastIsError bool

	InputMode string // empty outside text modes
	Prompt    string
	TextInput string

	ConfirmPrompt string // delete confirmation text, empty when closed
	PastePrompt   string // collision prompt text, empty when closed

	ShowHelp         bool
	HelpScrollOffset int

	Connected bool
	ServerURL string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	entryRender *EntryRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		entryRender: NewEntryRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderHeader(state))
	content.WriteString("\n")

	content.WriteString(r.renderPromptLine(state))

	listWidth := state.Width
	if state.ShowSidebar {
		listWidth -= state.SidebarWidth + 2
	}

	listHeight := state.Height - 4 // header, prompt, status, padding
	if listHeight < 3 {
		listHeight = 3
	}

	var main string
	if state.ViewMode == domain.ViewGrid && !state.IsSearching {
		main = r.renderGrid(state, listWidth, listHeight)
	} else {
		main = r.renderList(state, listWidth, listHeight)
	}

	if state.ShowSidebar {
		sidebar := r.renderSidebar(state, listHeight)
		main = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}

	content.WriteString(main)
	content.WriteString("\n")
	content.WriteString(r.renderStatusBar(state))

	final := r.styles.Main.Render(content.String())

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(final, helpContent, state.Height, state.Width, r.styles.HelpBox)
	}

	return final
}

// renderHeader renders the breadcrumb line with right-aligned indicators.
func (r *Renderer) renderHeader(state ViewState) string {
	logo := r.styles.Title.Render("filedeck")

	location := state.Path
	if state.IsSearching {
		location = fmt.Sprintf("search: %q", state.SearchQuery)
	}
	left := fmt.Sprintf("%s  %s", logo, r.styles.Breadcrumb.Render(location))

	indicators := []string{}
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, spinner[frame]+" Loading")
	}
	if state.IndexRunning {
		indicators = append(indicators, "◈ Indexing")
	}
	if state.UploadName != "" {
		indicators = append(indicators, fmt.Sprintf("↑ %s %d%%", state.UploadName, state.UploadPct))
	}
	if !state.Clipboard.Empty() {
		verb := "copy"
		if state.Clipboard.Operation == domain.ClipboardCut {
			verb = "cut"
		}
		indicators = append(indicators, r.styles.Clipboard.Render(fmt.Sprintf("✂ %d %s", len(state.Clipboard.Files), verb)))
	}
	if state.FilterQuery != "" {
		indicators = append(indicators, r.styles.Prompt.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	if !state.Connected {
		indicators = append(indicators, r.styles.StatusError.Render("⚠ offline"))
	}

	if len(indicators) == 0 {
		return left
	}

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	pad := termWidth - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 2 {
		pad = 2
	}
	return left + strings.Repeat(" ", pad) + right
}

// renderPromptLine renders the confirm/collision/text-input line, or an
// empty spacer outside prompt modes.
func (r *Renderer) renderPromptLine(state ViewState) string {
	switch {
	case state.ConfirmPrompt != "":
		return r.styles.Confirm.Render(state.ConfirmPrompt) + "\n"
	case state.PastePrompt != "":
		return r.styles.Confirm.Render(state.PastePrompt) + "\n"
	case state.InputMode != "":
		return r.styles.Prompt.Render(state.Prompt) + state.TextInput + "█\n"
	default:
		return "\n"
	}
}

func (r *Renderer) renderList(state ViewState, width, height int) string {
	if len(state.Entries) == 0 {
		if state.IsSearching {
			return r.styles.Dim.Render("No results")
		}
		return r.styles.Dim.Render("Empty directory")
	}

	// Keep the focused row inside the visible window
	top := 0
	if state.FocusIndex >= height {
		top = state.FocusIndex - height + 1
	}

	lines := make([]string, 0, height+2)
	if top > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", top)))
	}

	end := top + height
	if top > 0 {
		end--
	}
	if end > len(state.Entries) {
		end = len(state.Entries)
	}

	for i := top; i < end; i++ {
		e := state.Entries[i]
		lines = append(lines, r.entryRender.RenderEntry(
			e,
			i == state.FocusIndex,
			state.Selected[e.Path],
			state.IsSearching,
			width,
		))
	}

	below := len(state.Entries) - end
	if below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", below)))
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) renderGrid(state ViewState, width, height int) string {
	if len(state.Entries) == 0 {
		return r.styles.Dim.Render("Empty directory")
	}

	const cellWidth = 24
	cols := width / cellWidth
	if cols < 1 {
		cols = 1
	}

	rows := make([]string, 0, height)
	for start := 0; start < len(state.Entries) && len(rows) < height; start += cols {
		endIdx := start + cols
		if endIdx > len(state.Entries) {
			endIdx = len(state.Entries)
		}
		cells := make([]string, 0, cols)
		for i := start; i < endIdx; i++ {
			e := state.Entries[i]
			cells = append(cells, r.entryRender.RenderGridCell(e, i == state.FocusIndex, state.Selected[e.Path], cellWidth))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	hidden := len(state.Entries) - height*cols
	if hidden > 0 {
		rows = append(rows, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", hidden)))
	}

	return strings.Join(rows, "\n")
}

func (r *Renderer) renderSidebar(state ViewState, height int) string {
	lines := make([]string, 0, height)
	for i, row := range state.SidebarRows {
		if i >= height {
			break
		}

		indent := strings.Repeat("  ", row.Depth)
		arrow := " "
		if row.Node.HasChildren {
			arrow = "▸"
			if row.Expanded {
				arrow = "▾"
			}
		}

		name := row.Node.Name
		maxName := state.SidebarWidth - len(indent) - 3
		if maxName > 0 && len(name) > maxName {
			name = name[:maxName-1] + "…"
		}

		line := fmt.Sprintf("%s%s %s", indent, arrow, name)
		if row.Node.Path == state.Path {
			line = r.styles.SidebarSel.Render(line)
		}
		lines = append(lines, line)
	}

	return r.styles.Sidebar.Width(state.SidebarWidth).Height(height).Render(strings.Join(lines, "\n"))
}

// renderStatusBar renders the bottom line: toast when present, otherwise
// pagination and selection summary plus the help hint.
func (r *Renderer) renderStatusBar(state ViewState) string {
	if state.Toast != "" {
		if state.ToastIsError {
			return r.styles.ToastError.Render(state.Toast)
		}
		return r.styles.Toast.Render(state.Toast)
	}

	parts := []string{}
	if state.Total > 0 {
		first := state.Offset + 1
		last := state.Offset + len(state.Entries)
		parts = append(parts, fmt.Sprintf("%d-%d of %d", first, last, state.Total))
	}
	if n := len(state.Selected); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	parts = append(parts, fmt.Sprintf("sort: %s %s", state.Sort.Field, state.Sort.Order))

	status := r.styles.Status.Render(strings.Join(parts, "  •  "))
	hint := r.styles.Help.Render("? help")

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	pad := termWidth - 2 - lipgloss.Width(status) - lipgloss.Width(hint)
	if pad < 2 {
		pad = 2
	}
	return status + strings.Repeat(" ", pad) + hint
}

// renderHelpContent renders the help information
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	row := func(key, desc string) string {
		return fmt.Sprintf("  %-18s %s\n", keyStyle.Render(key), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("filedeck Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(row("↑/↓, j/k", "Move focus"))
	help.WriteString(row("←/h", "Parent directory"))
	help.WriteString(row("→/l, Enter", "Open directory / preview file"))
	help.WriteString(row("PgUp/PgDn", "Previous / next page"))
	help.WriteString(row("gg/G", "Go to top / bottom"))
	help.WriteString(row("[ / ]", "History back / forward"))

	help.WriteString(sectionStyle.Render("Selection"))
	help.WriteString("\n")
	help.WriteString(row("Space", "Toggle selection"))
	help.WriteString(row("Shift+↑/↓, J/K", "Extend selection"))
	help.WriteString(row("Ctrl+A", "Select all"))
	help.WriteString(row("Esc", "Clear selection / leave search"))

	help.WriteString(sectionStyle.Render("File Operations"))
	help.WriteString("\n")
	help.WriteString(row("Ctrl+C / Ctrl+X", "Copy / cut selection"))
	help.WriteString(row("Ctrl+V", "Paste into current directory"))
	help.WriteString(row("Delete/Backspace", "Delete (with confirmation)"))
	help.WriteString(row("F2, r", "Rename"))
	help.WriteString(row("n", "New folder"))
	help.WriteString(row("d", "Download file"))
	help.WriteString(row("u", "Upload a local file"))
	help.WriteString(row("Y", "Copy paths to system clipboard"))

	help.WriteString(sectionStyle.Render("Search & Display"))
	help.WriteString("\n")
	help.WriteString(row("/", "Search the file index"))
	help.WriteString(row("f", "Filter the current listing"))
	help.WriteString(row("s", "Sort (name, size, modified, type, ...)"))
	help.WriteString(row("v", "Toggle list / grid view"))
	help.WriteString(row("t", "Toggle directory tree"))

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(row("R", "Refresh listing"))
	help.WriteString(row("I", "Trigger server reindex"))
	help.WriteString(row("?", "Toggle this help"))
	help.WriteString(fmt.Sprintf("  %-18s %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	content := help.String()
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}

		endLine := scrollOffset + visibleHeight
		if endLine > totalLines {
			endLine = totalLines
		}
		lines = lines[scrollOffset:endLine]

		if scrollOffset > 0 {
			lines[0] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}
