package component

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/dupc-swap/internal/swap"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/style"
)

// SwapCard renders the swap form: the send panel, the flip arrow, the
// receive panel, the rate line and the action button.
type SwapCard struct {
	width int
}

// NewSwapCard creates a swap card
func NewSwapCard() *SwapCard {
	return &SwapCard{}
}

// SetWidth sets the terminal width the card is fitted into
func (c *SwapCard) SetWidth(width int) {
	c.width = width
}

// View renders v. sendInput is the already rendered amount input.
func (c *SwapCard) View(v swap.View, sendInput string) string {
	width := style.CardWidth(c.width)
	inner := width - 6

	send := style.ActivePanelStyle.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left,
		style.LabelStyle.Render("You send"),
		row(inner-2, sendInput, style.TokenStyle.Render(v.SendToken.Symbol)),
		style.MutedStyle.Render(v.SendUSD),
	))

	receive := style.PanelStyle.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left,
		style.LabelStyle.Render("You receive"),
		row(inner-2, style.AmountStyle.Render(v.ReceiveDisplay), style.TokenStyle.Render(v.ReceiveToken.Symbol)),
		style.MutedStyle.Render(v.ReceiveUSD),
	))

	arrow := lipgloss.PlaceHorizontal(inner, lipgloss.Center, style.SubHeaderStyle.Render("⇅"))
	rate := lipgloss.PlaceHorizontal(inner, lipgloss.Center, style.InfoStyle.Render(v.RateLine))

	buttonStyle := style.ButtonDisabledStyle
	if v.ButtonEnabled {
		buttonStyle = style.ButtonStyle
	}
	button := lipgloss.PlaceHorizontal(inner, lipgloss.Center, buttonStyle.Render(v.ButtonLabel))

	body := lipgloss.JoinVertical(lipgloss.Left, send, arrow, receive, "", rate, "", button)
	return style.CardStyle.Width(width).Render(body)
}

// row places left and right at the two ends of a line of the given width
func row(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, left, lipgloss.NewStyle().Width(gap).Render(""), right)
}
