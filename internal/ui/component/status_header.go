package component

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/style"
)

// WalletStatus is what the header shows about the connected wallet
type WalletStatus struct {
	Connected bool
	Address   string
	Network   string
	DryRun    bool
}

// StatusHeader provides a clean header with wallet and network information
type StatusHeader struct {
	status WalletStatus
	style  StatusHeaderStyle
	width  int
}

// StatusHeaderStyle contains all styling for the status header
type StatusHeaderStyle struct {
	container lipgloss.Style
	title     lipgloss.Style
	wallet    lipgloss.Style
	good      lipgloss.Style
	bad       lipgloss.Style
	mode      lipgloss.Style
}

// NewStatusHeader creates a new status header component
func NewStatusHeader() *StatusHeader {
	return &StatusHeader{
		style: StatusHeaderStyle{
			container: lipgloss.NewStyle().
				Foreground(style.Text).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(style.TonBlue).
				Padding(0, 2),

			title: lipgloss.NewStyle().
				Foreground(style.TonBlue).
				Bold(true),

			wallet: lipgloss.NewStyle().
				Foreground(style.TextDim),

			good: lipgloss.NewStyle().
				Foreground(style.Confirmed).
				Bold(true),

			bad: lipgloss.NewStyle().
				Foreground(style.Rejected).
				Bold(true),

			mode: lipgloss.NewStyle().
				Foreground(style.Caution),
		},
	}
}

// SetStatus updates the wallet status display
func (sh *StatusHeader) SetStatus(status WalletStatus) {
	sh.status = status
}

// SetWidth sets the component width for responsive layout
func (sh *StatusHeader) SetWidth(width int) {
	sh.width = width
	if width > 4 {
		sh.style.container = sh.style.container.Width(width - 2)
	}
}

// View renders the status header
func (sh *StatusHeader) View() string {
	parts := []string{
		sh.style.title.Render("DUPC Swap"),
		sh.renderWallet(),
		sh.style.wallet.Render(networkName(sh.status.Network)),
	}
	if sh.status.DryRun {
		parts = append(parts, sh.style.mode.Render("dry run"))
	}

	content := parts[0]
	for _, p := range parts[1:] {
		content = lipgloss.JoinHorizontal(lipgloss.Left, content, " | ", p)
	}
	return sh.style.container.Render(content)
}

func (sh *StatusHeader) renderWallet() string {
	if !sh.status.Connected {
		return sh.style.bad.Render("● Wallet: not connected")
	}
	return sh.style.good.Render(fmt.Sprintf("● Wallet: %s", sh.status.Address))
}

func networkName(id string) string {
	switch id {
	case "-239":
		return "mainnet"
	case "-3":
		return "testnet"
	case "":
		return "unknown network"
	default:
		return "network " + id
	}
}

// GetHeight returns the component height for layout calculations
func (sh *StatusHeader) GetHeight() int {
	return 3 // border + content
}
