package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/chess10kp/whereami/internal/config"
)

// KeyMap binds intents to the key names from the [keys] config section.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Close       key.Binding
	Quit        key.Binding
	FocusSearch key.Binding
}

func NewKeyMap(k config.KeysConfig) KeyMap {
	return KeyMap{
		Up:          binding(k.Up, "up"),
		Down:        binding(k.Down, "down"),
		Select:      binding(k.Select, "focus"),
		Close:       binding(k.Close, "close"),
		Quit:        binding(k.Quit, "quit"),
		FocusSearch: binding(k.FocusSearch, "search"),
	}
}

func binding(keys []string, desc string) key.Binding {
	help := ""
	if len(keys) > 0 {
		help = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.FocusSearch}}
}
