package screen

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/dupc-swap/internal/logger"
	"github.com/rovshanmuradov/dupc-swap/internal/swap"
	"github.com/rovshanmuradov/dupc-swap/internal/ui"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/component"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/router"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/style"
	"go.uber.org/zap"
)

// SwapDeps holds what the swap screen needs from the rest of the app
type SwapDeps struct {
	Context context.Context
	Widget  *swap.Widget
	Status  func() component.WalletStatus
	Logs    *logger.LogBuffer
	Logger  *zap.Logger
}

// SwapScreen hosts the swap widget. Submissions run as commands and their
// outcome is only logged; the form is not reset.
type SwapScreen struct {
	ctx    context.Context
	widget *swap.Widget
	status func() component.WalletStatus
	logger *zap.Logger
	keyMap ui.KeyMap

	input   textinput.Model
	spinner spinner.Model
	header  *component.StatusHeader
	card    *component.SwapCard
	recent  *component.LogViewer
	helpBar *component.HelpBar

	showHelp bool
	pending  int
	width    int
	height   int
}

// NewSwapScreen creates the swap screen
func NewSwapScreen(deps SwapDeps) *SwapScreen {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	status := deps.Status
	if status == nil {
		status = func() component.WalletStatus { return component.WalletStatus{} }
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "0"
	input.Width = 24
	input.SetValue(deps.Widget.SendAmount())
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = style.InfoStyle

	keyMap := ui.DefaultKeyMap()
	return &SwapScreen{
		ctx:     ctx,
		widget:  deps.Widget,
		status:  status,
		logger:  log.Named("tui"),
		keyMap:  keyMap,
		input:   input,
		spinner: sp,
		header:  component.NewStatusHeader(),
		card:    component.NewSwapCard(),
		recent:  component.NewLogViewer(deps.Logs, "Activity", 5),
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteSwap)),
	}
}

// Init initializes the swap screen
func (s *SwapScreen) Init() tea.Cmd {
	s.recent.Refresh()
	return textinput.Blink
}

// Update handles screen updates
func (s *SwapScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = s.handleKey(msg)

	case ui.SubmitResultMsg:
		s.pending--
		if msg.Err != nil {
			s.logger.Error("Swap failed",
				zap.Stringer("direction", msg.Direction),
				zap.String("amount", msg.Amount),
				zap.Error(msg.Err))
		} else {
			s.logger.Info("Swap submitted",
				zap.Stringer("direction", msg.Direction),
				zap.String("amount", msg.Amount))
		}

	case spinner.TickMsg:
		if s.pending > 0 {
			s.spinner, cmd = s.spinner.Update(msg)
		}

	default:
		s.input, cmd = s.input.Update(msg)
	}

	s.recent.Refresh()
	return s, cmd
}

func (s *SwapScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keyMap.Quit):
		return tea.Quit

	case key.Matches(msg, s.keyMap.Flip):
		s.widget.Flip()
		s.input.SetValue(s.widget.SendAmount())
		s.input.CursorEnd()
		return nil

	case key.Matches(msg, s.keyMap.Submit):
		return s.submit()

	case key.Matches(msg, s.keyMap.Clear):
		s.input.Reset()
		s.widget.SetSendAmount("")
		return nil

	case key.Matches(msg, s.keyMap.Logs):
		return ui.Navigate(ui.RouteLogs)

	case key.Matches(msg, s.keyMap.Help):
		s.showHelp = !s.showHelp
		return nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != s.widget.SendAmount() {
		s.widget.SetSendAmount(s.input.Value())
	}
	return cmd
}

// submit captures the current form into a command. A disabled button does
// nothing.
func (s *SwapScreen) submit() tea.Cmd {
	action, err := s.widget.SubmitAction()
	if err != nil {
		s.logger.Debug("Submit ignored", zap.Error(err))
		return nil
	}

	dir, amount, ctx := s.widget.Direction(), s.widget.SendAmount(), s.ctx
	run := func() tea.Msg {
		return ui.SubmitResultMsg{Direction: dir, Amount: amount, Err: action(ctx)}
	}

	s.pending++
	if s.pending == 1 {
		return tea.Batch(run, s.spinner.Tick)
	}
	return run
}

// Pending returns the number of submissions still in flight
func (s *SwapScreen) Pending() int {
	return s.pending
}

// View renders the swap screen
func (s *SwapScreen) View() string {
	s.header.SetStatus(s.status())

	sections := []string{
		s.header.View(),
		s.card.View(s.widget.Snapshot(), s.input.View()),
	}

	if s.pending > 0 {
		sections = append(sections, s.spinner.View()+" "+style.InfoStyle.Render("Waiting for wallet..."))
	}

	sections = append(sections, s.recent.View())

	if s.showHelp {
		var all []key.Binding
		for _, group := range s.keyMap.FullHelp() {
			all = append(all, group...)
		}
		sections = append(sections, s.helpBar.SetKeyBindings(all).View())
	} else {
		sections = append(sections, s.helpBar.SetKeyBindings(s.keyMap.ContextualHelp(ui.RouteSwap)).View())
	}

	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, sections...), "\n")
}

// SetSize sets the screen dimensions
func (s *SwapScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.header.SetWidth(width)
	s.card.SetWidth(width)
	s.helpBar.SetWidth(width)
	s.recent.SetSize(style.CardWidth(width), 8)
}
