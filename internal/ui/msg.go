package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/dupc-swap/internal/swap"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// SubmitResultMsg carries the outcome of an asynchronous swap submission.
// The swap screen logs it and does not change the form.
type SubmitResultMsg struct {
	Direction swap.Direction
	Amount    string
	Err       error
}

// LogTickMsg asks the logs screen with the matching ID to reload the buffer
type LogTickMsg struct {
	ID   int
	Time time.Time
}

// Navigate returns a command that emits a RouterMsg
func Navigate(route Route) tea.Cmd {
	return func() tea.Msg {
		return RouterMsg{To: route}
	}
}

// TickLogs schedules the next LogTickMsg for id
func TickLogs(id int, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return LogTickMsg{ID: id, Time: t}
	})
}

// Route represents different screens in the application
type Route int

const (
	RouteSwap Route = iota
	RouteLogs
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteSwap:
		return "swap"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
