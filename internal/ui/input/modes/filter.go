package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filedeck/internal/ui/input/types"
)

// FilterMode narrows the already loaded listing client-side with a fuzzy
// match; nothing is sent to the server.
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti),
	}
}
