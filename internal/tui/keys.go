package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the application
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	List1       key.Binding
	List2       key.Binding
	List3       key.Binding
	List4       key.Binding
	Toggle      key.Binding
	Delete      key.Binding
	Add         key.Binding
	Reveal      key.Binding
	Refresh     key.Binding
	HardReset   key.Binding
	Owner       key.Binding
	CycleStatus key.Binding
	CycleHeart  key.Binding
	LikeFirst   key.Binding
	LikeSecond  key.Binding
	Filter      key.Binding
	Escape      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		List1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1-4", "switch list"),
		),
		List2: key.NewBinding(key.WithKeys("2")),
		List3: key.NewBinding(key.WithKeys("3")),
		List4: key.NewBinding(key.WithKeys("4")),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "pick one"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		HardReset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset local data"),
		),
		Owner: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "switch owner"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "status filter"),
		),
		CycleHeart: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "heart filter"),
		),
		LikeFirst: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b/n", "like"),
		),
		LikeSecond: key.NewBinding(
			key.WithKeys("n"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the mini help line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Toggle, k.Add, k.Reveal, k.Help, k.Quit}
}

// FullHelp returns all bindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.NextTab, k.PrevTab, k.List1, k.Owner},
		{k.Toggle, k.Add, k.Delete, k.Refresh, k.HardReset},
		{k.Reveal, k.CycleStatus, k.CycleHeart, k.LikeFirst},
		{k.Filter, k.Escape, k.Help, k.Quit},
	}
}
