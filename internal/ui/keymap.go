package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application. The swap screen
// keeps a text input focused, so no binding uses a printable character.
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding
	Help key.Binding

	// Swap
	Flip   key.Binding
	Submit key.Binding
	Clear  key.Binding
	Logs   key.Binding

	// Logs
	Up          key.Binding
	Down        key.Binding
	Follow      key.Binding
	FilterAll   key.Binding
	FilterInfo  key.Binding
	FilterWarn  key.Binding
	FilterError key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Global navigation
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),

		// Swap
		Flip: key.NewBinding(
			key.WithKeys("tab", "ctrl+f"),
			key.WithHelp("tab", "flip"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "swap"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
		Logs: key.NewBinding(
			key.WithKeys("f12", "ctrl+l"),
			key.WithHelp("F12", "logs"),
		),

		// Logs
		Up: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/j", "down"),
		),
		Follow: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tail"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "all"),
		),
		FilterInfo: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "info+"),
		),
		FilterWarn: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "warn+"),
		),
		FilterError: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "error"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns extended help text for the current context
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flip, k.Submit, k.Clear, k.Logs},
		{k.Up, k.Down, k.Follow},
		{k.FilterAll, k.FilterInfo, k.FilterWarn, k.FilterError},
		{k.Back, k.Help, k.Quit},
	}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteSwap:
		return []key.Binding{k.Flip, k.Submit, k.Clear, k.Logs, k.Help, k.Quit}
	case RouteLogs:
		return []key.Binding{k.Up, k.Down, k.Follow, k.FilterAll, k.FilterInfo, k.FilterWarn, k.FilterError, k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}
