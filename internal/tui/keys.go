package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Shorter    key.Binding
	Longer     key.Binding
	ShorterBig key.Binding
	LongerBig  key.Binding
	Lower      key.Binding
	Upper      key.Binding
	Digits     key.Binding
	Symbols    key.Binding
	Generate   key.Binding
	Copy       key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Shorter:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "shorter")),
		Longer:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "longer")),
		ShorterBig: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "length -8")),
		LongerBig:  key.NewBinding(key.WithKeys("=", "+"), key.WithHelp("=", "length +8")),
		Lower:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "lowercase")),
		Upper:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "uppercase")),
		Digits:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "digits")),
		Symbols:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "symbols")),
		Generate:   key.NewBinding(key.WithKeys("g", "enter"), key.WithHelp("g/enter", "generate")),
		Copy:       key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear history")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Copy, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Shorter, k.Longer, k.ShorterBig, k.LongerBig},
		{k.Lower, k.Upper, k.Digits, k.Symbols},
		{k.Generate, k.Copy, k.Clear},
		{k.Help, k.Quit},
	}
}
