package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/dupc-swap/internal/logger"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/style"
	"go.uber.org/zap/zapcore"
)

// LogViewer renders entries from a LogBuffer inside a scrollable viewport.
// Entries below the minimum level are hidden.
type LogViewer struct {
	buffer   *logger.LogBuffer
	viewport viewport.Model
	minLevel zapcore.Level
	limit    int
	follow   bool
	shown    int
	title    string
	style    logViewerStyle
}

type logViewerStyle struct {
	container lipgloss.Style
	title     lipgloss.Style
	timestamp lipgloss.Style
	name      lipgloss.Style
	fields    lipgloss.Style
	debug     lipgloss.Style
	info      lipgloss.Style
	warn      lipgloss.Style
	error     lipgloss.Style
}

// NewLogViewer creates a viewer over buffer showing at most limit entries
func NewLogViewer(buffer *logger.LogBuffer, title string, limit int) *LogViewer {
	return &LogViewer{
		buffer:   buffer,
		viewport: viewport.New(50, 4),
		minLevel: zapcore.InfoLevel,
		limit:    limit,
		follow:   true,
		title:    title,
		style: logViewerStyle{
			container: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(style.Activity).
				Padding(0, 1),

			title: lipgloss.NewStyle().
				Foreground(style.Activity).
				Bold(true),

			timestamp: lipgloss.NewStyle().
				Foreground(style.Muted),

			name: lipgloss.NewStyle().
				Foreground(style.DupcViolet),

			fields: lipgloss.NewStyle().
				Foreground(style.Muted),

			debug: lipgloss.NewStyle().
				Foreground(style.Muted),

			info: lipgloss.NewStyle().
				Foreground(style.Text),

			warn: lipgloss.NewStyle().
				Foreground(style.Caution).
				Bold(true),

			error: lipgloss.NewStyle().
				Foreground(style.Rejected).
				Bold(true),
		},
	}
}

// SetSize sets the outer dimensions including the border and title
func (v *LogViewer) SetSize(width, height int) {
	v.viewport.Width = max(width-4, 10)
	v.viewport.Height = max(height-3, 1)
	v.style.container = v.style.container.Width(max(width-2, 10))
	v.Refresh()
}

// SetMinLevel hides entries below level
func (v *LogViewer) SetMinLevel(level zapcore.Level) {
	v.minLevel = level
	v.Refresh()
}

// MinLevel returns the current filter level
func (v *LogViewer) MinLevel() zapcore.Level {
	return v.minLevel
}

// SetFollow pins the view to the newest entry
func (v *LogViewer) SetFollow(follow bool) {
	v.follow = follow
	if follow {
		v.viewport.GotoBottom()
	}
}

// Following reports whether the view is pinned to the newest entry
func (v *LogViewer) Following() bool {
	return v.follow
}

// Shown returns how many entries passed the filter on the last refresh
func (v *LogViewer) Shown() int {
	return v.shown
}

// ScrollUp scrolls back and stops following
func (v *LogViewer) ScrollUp(lines int) {
	v.follow = false
	v.viewport.LineUp(lines)
}

// ScrollDown scrolls forward; reaching the bottom resumes following
func (v *LogViewer) ScrollDown(lines int) {
	v.viewport.LineDown(lines)
	if v.viewport.AtBottom() {
		v.follow = true
	}
}

// Refresh reloads the viewport from the buffer
func (v *LogViewer) Refresh() {
	if v.buffer == nil {
		v.shown = 0
		v.viewport.SetContent("No log buffer available")
		return
	}

	var lines []string
	for _, entry := range v.buffer.GetRecentLogs(v.limit) {
		if levelOf(entry) < v.minLevel {
			continue
		}
		lines = append(lines, v.format(entry))
	}
	v.shown = len(lines)

	if len(lines) == 0 {
		v.viewport.SetContent(v.style.timestamp.Render("No logs match current filter"))
		return
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
	if v.follow {
		v.viewport.GotoBottom()
	}
}

// View renders the log viewer
func (v *LogViewer) View() string {
	title := fmt.Sprintf("%s [%s+]", v.title, v.minLevel.CapitalString())
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		v.style.title.Render(title),
		v.viewport.View(),
	)
	return v.style.container.Render(content)
}

func levelOf(entry logger.LogEntry) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(entry.Level))); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func (v *LogViewer) format(entry logger.LogEntry) string {
	var b strings.Builder
	b.WriteString(v.style.timestamp.Render(entry.Timestamp.Format("15:04:05")))
	b.WriteString(" ")
	if entry.Logger != "" {
		b.WriteString(v.style.name.Render(entry.Logger))
		b.WriteString(" ")
	}

	level := levelOf(entry)
	switch {
	case level >= zapcore.ErrorLevel:
		b.WriteString(v.style.error.Render(entry.Message))
	case level == zapcore.WarnLevel:
		b.WriteString(v.style.warn.Render(entry.Message))
	case level == zapcore.DebugLevel:
		b.WriteString(v.style.debug.Render(entry.Message))
	default:
		b.WriteString(v.style.info.Render(entry.Message))
	}

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		b.WriteString(" ")
		b.WriteString(v.style.fields.Render(strings.Join(parts, " ")))
	}
	return b.String()
}
