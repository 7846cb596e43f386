package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filedeck/internal/ui/input/types"
)

type RenameMode struct {
	TextInputMode
}

func NewRenameMode(ti *textinput.Model) *RenameMode {
	return &RenameMode{
		TextInputMode: NewTextInputMode(types.ModeRename, "rename", "Rename: ", ti),
	}
}
