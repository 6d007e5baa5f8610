package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/locale"
)

// keyMap lists the picker bindings. It implements help.KeyMap.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Today    key.Binding
	Collapse key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap(tr *locale.Translator) keyMap {
	move := tr.Msg(config.TKeyHelpMove)
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", move)),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", move)),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", move)),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", move)),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", tr.Msg(config.TKeyHelpSelect))),
		Prev:     key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", tr.Msg(config.TKeyHelpPrev))),
		Next:     key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", tr.Msg(config.TKeyHelpNext))),
		Today:    key.NewBinding(key.WithKeys("t", "home"), key.WithHelp("t", tr.Msg(config.TKeyHelpToday))),
		Collapse: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", tr.Msg(config.TKeyHelpCollapse))),
		Clear:    key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", tr.Msg(config.TKeyHelpClear))),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", tr.Msg(config.TKeyHelpHelp))),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", tr.Msg(config.TKeyHelpQuit))),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Prev, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Prev, k.Next, k.Today},
		{k.Collapse, k.Clear, k.Help, k.Quit},
	}
}
