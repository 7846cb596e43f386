package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filedeck/internal/ui/input/types"
)

type MkdirMode struct {
	TextInputMode
}

func NewMkdirMode(ti *textinput.Model) *MkdirMode {
	return &MkdirMode{
		TextInputMode: NewTextInputMode(types.ModeMkdir, "mkdir", "New folder: ", ti),
	}
}
