package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Breadcrumb  lipgloss.Style
	Dim         lipgloss.Style
	Dir         lipgloss.Style
	File        lipgloss.Style
	Focus       lipgloss.Style
	SelectedBg  lipgloss.Style
	Marker      lipgloss.Style
	Confirm     lipgloss.Style
	Prompt      lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Toast       lipgloss.Style
	ToastError  lipgloss.Style
	Clipboard   lipgloss.Style
	Scroll      lipgloss.Style
	Sidebar     lipgloss.Style
	SidebarSel  lipgloss.Style
	Help        lipgloss.Style
	HelpBox     lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Breadcrumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Dir:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		File:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Focus:       lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		SelectedBg:  lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Marker:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Confirm:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Toast:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		ToastError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Clipboard:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("238")).
			PaddingRight(1),
		SidebarSel: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		Help:       lipgloss.NewStyle().Faint(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		Main: lipgloss.NewStyle().Padding(0, 1),
	}
}
