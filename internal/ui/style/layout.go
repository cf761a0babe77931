package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Header styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(TonBlue).
			Bold(true).
			Margin(1, 0)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(DupcViolet).
			Bold(true)
)

// Card styles for the swap form
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(TonBlue).
			Padding(1, 2)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Muted).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(TonBlue).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	AmountStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	TokenStyle = lipgloss.NewStyle().
			Foreground(DupcViolet).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(Ink).
			Background(TonBlue).
			Padding(0, 2).
			Bold(true)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Background(InkRaised).
				Padding(0, 2)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Confirmed).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Rejected).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Caution).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Activity)
)

// CardWidth clamps the swap card to the terminal width
func CardWidth(width int) int {
	const preferred = 56
	if width <= 0 || width-4 > preferred {
		return preferred
	}
	return width - 4
}
