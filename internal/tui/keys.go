package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Enter    key.Binding
	Back     key.Binding

	// Picker
	Filter     key.Binding
	SwitchKind key.Binding

	// Browser filters
	NextMonth    key.Binding
	PrevMonth    key.Binding
	NextVenue    key.Binding
	PrevVenue    key.Binding
	ClearFilters key.Binding

	// Actions
	Refresh     key.Binding
	HardRefresh key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h", "left"),
			key.WithHelp("esc", "back"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		SwitchKind: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "leagues/teams"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m/M", "month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("M"),
		),
		NextVenue: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v/V", "venue"),
		),
		PrevVenue: key.NewBinding(
			key.WithKeys("V"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		HardRefresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "clear cache and refetch"),
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

// PickerHelp returns the bindings shown on the help screen for the picker
func (k KeyMap) PickerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Filter, k.SwitchKind, k.Refresh, k.HardRefresh, k.Quit}
}

// BrowserHelp returns the bindings shown on the help screen for the browser
func (k KeyMap) BrowserHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMonth, k.NextVenue, k.ClearFilters, k.Refresh, k.Back, k.Quit}
}
