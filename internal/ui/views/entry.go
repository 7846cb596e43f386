package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"filedeck/internal/domain"
)

// EntryRenderer renders a single listing row.
type EntryRenderer struct {
	styles *Styles
}

func NewEntryRenderer(styles *Styles) *EntryRenderer {
	return &EntryRenderer{styles: styles}
}

// RenderEntry renders one list row: marker, icon, name, then size and
// modified time right-aligned into the remaining width.
func (er *EntryRenderer) RenderEntry(e domain.Entry, focused, selected, searching bool, width int) string {
	marker := "  "
	if selected {
		marker = er.styles.Marker.Render("▌ ")
	}

	icon := "·"
	nameStyle := er.styles.File
	if e.IsDir {
		icon = "▸"
		nameStyle = er.styles.Dir
	}

	name := e.Name
	// Search results show the full path so hits in different directories
	// are distinguishable.
	if searching {
		name = e.Path
	}

	meta := er.metaColumn(e)

	if width <= 0 {
		width = 80
	}
	avail := width - 4 - lipgloss.Width(marker) - 2 - lipgloss.Width(meta)
	if avail < 8 {
		avail = 8
	}
	if len(name) > avail {
		name = name[:avail-1] + "…"
	}

	pad := avail - len(name)
	if pad < 0 {
		pad = 0
	}

	line := fmt.Sprintf("%s%s %s%s  %s", marker, icon, nameStyle.Render(name), strings.Repeat(" ", pad), er.styles.Dim.Render(meta))
	if focused {
		return er.styles.Focus.Render(fmt.Sprintf("%s%s %s%s  %s", marker, icon, name, strings.Repeat(" ", pad), meta))
	}
	if selected {
		return er.styles.SelectedBg.Render(line)
	}
	return line
}

// metaColumn builds the right-hand column: size, media dimensions when
// indexed, and modified time.
func (er *EntryRenderer) metaColumn(e domain.Entry) string {
	parts := make([]string, 0, 3)

	if e.IsDir {
		parts = append(parts, "dir")
	} else if e.Size != nil {
		parts = append(parts, humanize.Bytes(uint64(*e.Size)))
	}

	if e.Width != nil && e.Height != nil {
		parts = append(parts, fmt.Sprintf("%dx%d", *e.Width, *e.Height))
	} else if e.Duration != nil {
		parts = append(parts, fmtDuration(*e.Duration))
	}

	if e.Modified != nil {
		parts = append(parts, humanize.Time(*e.Modified))
	}

	return strings.Join(parts, "  ")
}

func fmtDuration(seconds float64) string {
	s := int(seconds)
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// RenderGridCell renders a grid-mode cell of fixed width.
func (er *EntryRenderer) RenderGridCell(e domain.Entry, focused, selected bool, cellWidth int) string {
	name := e.Name
	if len(name) > cellWidth-3 {
		name = name[:cellWidth-4] + "…"
	}

	icon := " "
	if e.IsDir {
		icon = "▸"
	}
	cell := fmt.Sprintf("%s %-*s", icon, cellWidth-2, name)

	switch {
	case focused:
		return er.styles.Focus.Render(cell)
	case selected:
		return er.styles.SelectedBg.Render(cell)
	case e.IsDir:
		return er.styles.Dir.Render(cell)
	default:
		return er.styles.File.Render(cell)
	}
}
