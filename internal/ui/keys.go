package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Tab         key.Binding
	FocusSearch key.Binding
	Escape      key.Binding

	// Panes
	ToggleResults key.Binding
	ToggleWatched key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Results
	Select key.Binding

	// Detail
	Rate       key.Binding
	RateUp     key.Binding
	RateDown   key.Binding
	AddWatched key.Binding

	// Watched list
	Remove key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch pane"),
		),
		FocusSearch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close movie"),
		),

		ToggleResults: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Collapse results"),
		),
		ToggleWatched: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Collapse watched list"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Select: key.NewBinding(
			key.WithKeys(" ", "space", "o"),
			key.WithHelp("space", "Open/close movie"),
		),

		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "Rate 1-10"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Raise rating"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Lower rating"),
		),
		AddWatched: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to watched"),
		),

		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove from watched"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusSearch, k.Select, k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusSearch, k.Tab, k.Escape, k.Up, k.Down, k.Top, k.Bottom},
		{k.Select, k.ToggleResults, k.ToggleWatched},
		{k.Rate, k.RateUp, k.RateDown, k.AddWatched},
		{k.Remove},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
