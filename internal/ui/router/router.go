package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/dupc-swap/internal/ui"
)

// Screen represents a screen that can be navigated to
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Factory builds the screen for a route. It returns nil for routes it does
// not know.
type Factory func(route ui.Route) Screen

type entry struct {
	route  ui.Route
	screen Screen
}

// Router manages navigation between screens using a stack-based approach.
// Navigating to a route that is already on the stack pops back to it, so a
// screen keeps its state while something is pushed on top of it. Keys and
// mouse events go to the top screen only; every other message goes to each
// screen on the stack.
type Router struct {
	stack   []entry
	factory Factory
	width   int
	height  int
}

// New creates a new router with the initial screen mounted at route
func New(route ui.Route, initial Screen, factory Factory) *Router {
	return &Router{
		stack:   []entry{{route: route, screen: initial}},
		factory: factory,
	}
}

// Init initializes the router
func (r *Router) Init() tea.Cmd {
	if len(r.stack) == 0 {
		return nil
	}
	return r.top().screen.Init()
}

// Update processes messages and updates the current screen
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.RouterMsg:
		return r, r.Navigate(msg.To)

	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && r.CanGoBack() {
			return r, r.Pop()
		}
	}

	if len(r.stack) == 0 {
		return r, nil
	}

	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		current := r.top()
		updated, cmd := current.screen.Update(msg)
		current.screen = updated
		return r, cmd
	}

	// Command results reach covered screens too; a submit started on the swap
	// screen may finish while the logs screen is on top.
	cmds := make([]tea.Cmd, 0, len(r.stack))
	for i := range r.stack {
		updated, cmd := r.stack[i].screen.Update(msg)
		r.stack[i].screen = updated
		cmds = append(cmds, cmd)
	}
	return r, tea.Batch(cmds...)
}

// View renders the current screen
func (r *Router) View() string {
	if len(r.stack) == 0 {
		return "No screen available"
	}
	return r.top().screen.View()
}

// SetSize sets the size for the router and current screen
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height

	if len(r.stack) > 0 {
		r.top().screen.SetSize(width, height)
	}
}

// Navigate moves to route. Routes already on the stack are popped back to;
// anything else is built by the factory and pushed.
func (r *Router) Navigate(route ui.Route) tea.Cmd {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if r.stack[i].route == route {
			if i == len(r.stack)-1 {
				return nil
			}
			r.stack = r.stack[:i+1]
			return r.activate()
		}
	}

	if r.factory == nil {
		return nil
	}
	screen := r.factory(route)
	if screen == nil {
		return nil
	}
	return r.Push(route, screen)
}

// Push adds a new screen to the navigation stack
func (r *Router) Push(route ui.Route, screen Screen) tea.Cmd {
	r.stack = append(r.stack, entry{route: route, screen: screen})
	return r.activate()
}

// Pop removes the current screen from the stack
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.activate()
}

func (r *Router) activate() tea.Cmd {
	current := r.top().screen
	current.SetSize(r.width, r.height)
	return current.Init()
}

func (r *Router) top() *entry {
	return &r.stack[len(r.stack)-1]
}

// Current returns the current screen
func (r *Router) Current() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.top().screen
}

// CurrentRoute returns the route of the current screen
func (r *Router) CurrentRoute() ui.Route {
	if len(r.stack) == 0 {
		return ui.RouteSwap
	}
	return r.top().route
}

// Depth returns the current navigation depth
func (r *Router) Depth() int {
	return len(r.stack)
}

// CanGoBack returns true if there are screens to go back to
func (r *Router) CanGoBack() bool {
	return len(r.stack) > 1
}
