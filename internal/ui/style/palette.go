package style

import "github.com/charmbracelet/lipgloss"

// Swap colors. TonBlue marks the base token and active elements, DupcViolet
// the quote token.
var (
	TonBlue    = lipgloss.Color("#0098EA")
	DupcViolet = lipgloss.Color("#A66CFF")

	Confirmed = lipgloss.Color("#3DDC97")
	Rejected  = lipgloss.Color("#FF6B6B")
	Caution   = lipgloss.Color("#F5A623")
	Activity  = lipgloss.Color("#7DD3FC")

	Ink       = lipgloss.Color("#11151C")
	InkRaised = lipgloss.Color("#1F2630")
	Text      = lipgloss.Color("#E6EDF3")
	TextDim   = lipgloss.Color("#AEB8C4")
	Muted     = lipgloss.Color("#7A8594")
)
