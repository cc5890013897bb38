package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/calpick/internal/calendar"
)

// KeyMap holds the calendar key bindings. It implements help.KeyMap.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	Select    key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Panel     key.Binding
	Accept    key.Binding
	Cancel    key.Binding
	Toggle    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first day")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last day")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "select")),
		PrevMonth: key.NewBinding(key.WithKeys("pgup", "["), key.WithHelp("pgup/[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("pgdown", "]"), key.WithHelp("pgdn/]", "next month")),
		Panel:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "other month")),
		Accept:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		Cancel:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel")),
		Toggle:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open/close")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.PrevMonth, k.NextMonth, k.Toggle, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Home, k.End, k.Select, k.Panel},
		{k.PrevMonth, k.NextMonth, k.Accept, k.Cancel},
		{k.Toggle, k.Help, k.Quit},
	}
}

// CalendarKey maps a key press to a calendar key, or KeyNone.
func (k KeyMap) CalendarKey(msg tea.KeyMsg) calendar.Key {
	switch {
	case key.Matches(msg, k.Left):
		return calendar.KeyLeft
	case key.Matches(msg, k.Right):
		return calendar.KeyRight
	case key.Matches(msg, k.Up):
		return calendar.KeyUp
	case key.Matches(msg, k.Down):
		return calendar.KeyDown
	case key.Matches(msg, k.Home):
		return calendar.KeyHome
	case key.Matches(msg, k.End):
		return calendar.KeyEnd
	case key.Matches(msg, k.Select):
		if msg.Type == tea.KeySpace {
			return calendar.KeySpace
		}
		return calendar.KeyEnter
	case key.Matches(msg, k.PrevMonth):
		return calendar.KeyPageUp
	case key.Matches(msg, k.NextMonth):
		return calendar.KeyPageDown
	case key.Matches(msg, k.Panel):
		return calendar.KeyTab
	}
	return calendar.KeyNone
}
