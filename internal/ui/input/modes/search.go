package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filedeck/internal/ui/input/types"
)

// SearchMode runs a live server-side search: every keystroke produces an
// UpdateTextAction the model debounces into search requests.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
