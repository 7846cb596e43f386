package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"filedeck/internal/ui/input/types"
)

// PasteStrategyMode asks how to treat destination collisions before a paste
// or drop batch runs: overwrite existing entries or skip them.
type PasteStrategyMode struct{}

func NewPasteStrategyMode() *PasteStrategyMode {
	return &PasteStrategyMode{}
}

func (m *PasteStrategyMode) Name() string {
	return "paste-strategy"
}

func (m *PasteStrategyMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *PasteStrategyMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *PasteStrategyMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "o", "O":
		return []types.Action{
			types.PasteStrategyAction{Overwrite: true},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "s", "S":
		return []types.Action{
			types.PasteStrategyAction{Overwrite: false},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "n", "esc":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	return nil, false
}
