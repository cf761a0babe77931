package screen

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/dupc-swap/internal/logger"
	"github.com/rovshanmuradov/dupc-swap/internal/ui"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/component"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/router"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/style"
	"go.uber.org/zap/zapcore"
)

const (
	logsRefreshInterval = 500 * time.Millisecond
	logsLimit           = 500
)

var logsTickSeq atomic.Int64

// LogsScreen shows the in-memory log buffer and refreshes it on a timer
type LogsScreen struct {
	buffer  *logger.LogBuffer
	keyMap  ui.KeyMap
	viewer  *component.LogViewer
	helpBar *component.HelpBar
	tickID  int
	width   int
	height  int
}

// NewLogsScreen creates a new logs screen
func NewLogsScreen(buffer *logger.LogBuffer) *LogsScreen {
	keyMap := ui.DefaultKeyMap()
	return &LogsScreen{
		buffer:  buffer,
		keyMap:  keyMap,
		viewer:  component.NewLogViewer(buffer, "Logs", logsLimit),
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs)),
		tickID:  int(logsTickSeq.Add(1)),
	}
}

// Init starts the refresh timer
func (s *LogsScreen) Init() tea.Cmd {
	s.viewer.Refresh()
	return ui.TickLogs(s.tickID, logsRefreshInterval)
}

// Update handles screen updates
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.Logs):
			return s, ui.Navigate(ui.RouteSwap)
		case key.Matches(msg, s.keyMap.Up):
			s.viewer.ScrollUp(1)
		case key.Matches(msg, s.keyMap.Down):
			s.viewer.ScrollDown(1)
		case key.Matches(msg, s.keyMap.Follow):
			s.viewer.SetFollow(!s.viewer.Following())
		case key.Matches(msg, s.keyMap.FilterAll):
			s.viewer.SetMinLevel(zapcore.DebugLevel)
		case key.Matches(msg, s.keyMap.FilterInfo):
			s.viewer.SetMinLevel(zapcore.InfoLevel)
		case key.Matches(msg, s.keyMap.FilterWarn):
			s.viewer.SetMinLevel(zapcore.WarnLevel)
		case key.Matches(msg, s.keyMap.FilterError):
			s.viewer.SetMinLevel(zapcore.ErrorLevel)
		}

	case ui.LogTickMsg:
		// ticks from an earlier logs screen are dropped
		if msg.ID != s.tickID {
			return s, nil
		}
		s.viewer.Refresh()
		return s, ui.TickLogs(s.tickID, logsRefreshInterval)
	}

	return s, nil
}

// View renders the logs screen
func (s *LogsScreen) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		style.TitleStyle.Render("Application Logs"),
		s.renderStatusBar(),
		s.viewer.View(),
		s.helpBar.View(),
	)
}

func (s *LogsScreen) renderStatusBar() string {
	parts := []string{fmt.Sprintf("Shown: %d", s.viewer.Shown())}
	if s.buffer != nil {
		total, spilled := s.buffer.GetStats()
		parts = append(parts, fmt.Sprintf("Total: %d", total), fmt.Sprintf("Spilled: %d", spilled))
	}
	if s.viewer.Following() {
		parts = append(parts, "Tail")
	}
	return style.SubHeaderStyle.Render(strings.Join(parts, " • "))
}

// SetSize sets the screen dimensions
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
	// title, status bar and help bar
	s.viewer.SetSize(width, max(height-8, 5))
}
