package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"filedeck/internal/ui/input/types"
)

// UploadMode reads a local filesystem path to upload into the current
// directory.
type UploadMode struct {
	TextInputMode
}

func NewUploadMode(ti *textinput.Model) *UploadMode {
	return &UploadMode{
		TextInputMode: NewTextInputMode(types.ModeUpload, "upload", "Upload file: ", ti),
	}
}
