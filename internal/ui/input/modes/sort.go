package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filedeck/internal/ui/input/types"
)

// SortMode reads a sort field name; prefixing with "-" flips to descending.
type SortMode struct {
	TextInputMode
}

func NewSortMode(ti *textinput.Model) *SortMode {
	return &SortMode{
		TextInputMode: NewTextInputMode(types.ModeSort, "sort", "Sort by: ", ti),
	}
}
