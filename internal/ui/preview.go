package ui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// PreviewOps shows file contents in the ov pager, handing the terminal over
// while the pager runs and restoring it afterwards.
type PreviewOps struct {
	program *tea.Program
}

// NewPreviewOps creates a new preview operations instance
func NewPreviewOps(program *tea.Program) *PreviewOps {
	return &PreviewOps{
		program: program,
	}
}

// ShowInPager streams r through the pager under the given document name.
// Blocks until the pager exits.
func (p *PreviewOps) ShowInPager(name string, r io.Reader) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Don't write the pager screen on exit, it would clobber our view
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if doc := root.Doc; doc != nil {
		doc.Caption = name
	}

	return root.Run()
}
