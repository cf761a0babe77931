package screen

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/dupc-swap/internal/logger"
	"github.com/rovshanmuradov/dupc-swap/internal/swap"
	"github.com/rovshanmuradov/dupc-swap/internal/ui"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/component"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubWallet struct{ connected bool }

func (s *stubWallet) Connected() bool { return s.connected }

type mockMinter struct{ mock.Mock }

func (m *mockMinter) BuyCoins(ctx context.Context, amount string) error {
	return m.Called(ctx, amount).Error(0)
}

func (m *mockMinter) Address() string { return "EQMinter" }

func (m *mockMinter) TotalSupply(context.Context) (string, error) { return "", nil }

type mockJetton struct{ mock.Mock }

func (m *mockJetton) SellCoins(ctx context.Context, amount string) error {
	return m.Called(ctx, amount).Error(0)
}

type fixture struct {
	screen *SwapScreen
	widget *swap.Widget
	minter *mockMinter
	jetton *mockJetton
	logs   *logger.LogBuffer
}

func newFixture(t *testing.T, connected bool) *fixture {
	t.Helper()

	logs, err := logger.NewLogBuffer(50, "")
	require.NoError(t, err)
	log, err := logger.CreateTUILogger(false, logs)
	require.NoError(t, err)

	minter, jetton := &mockMinter{}, &mockJetton{}
	widget := swap.NewWidget(&stubWallet{connected: connected}, minter, jetton, log)

	s := NewSwapScreen(SwapDeps{
		Context: context.Background(),
		Widget:  widget,
		Status: func() component.WalletStatus {
			return component.WalletStatus{Connected: connected, Address: "EQAbcd...wxyz", Network: "-239"}
		},
		Logs:   logs,
		Logger: log,
	})
	s.SetSize(100, 40)
	return &fixture{screen: s, widget: widget, minter: minter, jetton: jetton, logs: logs}
}

func typeText(s *SwapScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// collect runs cmd and every command batched into it, skipping timers
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func submitResult(t *testing.T, cmd tea.Cmd) ui.SubmitResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if res, ok := msg.(ui.SubmitResultMsg); ok {
			return res
		}
	}
	t.Fatal("no SubmitResultMsg produced")
	return ui.SubmitResultMsg{}
}

func TestTypingUpdatesWidget(t *testing.T) {
	f := newFixture(t, true)

	typeText(f.screen, "2.5")
	assert.Equal(t, "2.5", f.widget.SendAmount())
	assert.Equal(t, "250000", f.widget.ReceiveAmount())
	assert.Contains(t, f.screen.View(), "250,000")
}

func TestFlipKeyMovesReceiveIntoInput(t *testing.T) {
	f := newFixture(t, true)
	typeText(f.screen, "1")

	f.screen.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, swap.Reversed, f.widget.Direction())
	assert.Equal(t, "100000", f.screen.input.Value())
	assert.Equal(t, "1.00000000", f.widget.ReceiveAmount())
	assert.Contains(t, f.screen.View(), "1 DUPC ≈ 0.00001000 TON")
}

func TestClearKey(t *testing.T) {
	f := newFixture(t, true)
	typeText(f.screen, "3")

	f.screen.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, f.widget.SendAmount())
	assert.Empty(t, f.screen.input.Value())
}

func TestSubmitBuysAsync(t *testing.T) {
	f := newFixture(t, true)
	typeText(f.screen, "1.5")
	f.minter.On("BuyCoins", mock.Anything, "1.5").Return(nil).Once()

	_, cmd := f.screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, f.screen.Pending())

	res := submitResult(t, cmd)
	assert.NoError(t, res.Err)
	assert.Equal(t, swap.Forward, res.Direction)
	f.minter.AssertExpectations(t)

	f.screen.Update(res)
	assert.Equal(t, 0, f.screen.Pending())
	// form is left as it was
	assert.Equal(t, "1.5", f.widget.SendAmount())

	recent := f.logs.GetRecentLogs(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "Swap submitted", recent[0].Message)
}

func TestSubmitResultArrivesWhileLogsOpen(t *testing.T) {
	f := newFixture(t, true)
	factory := func(route ui.Route) router.Screen {
		if route == ui.RouteLogs {
			return NewLogsScreen(f.logs)
		}
		return nil
	}
	r := router.New(ui.RouteSwap, f.screen, factory)
	r.SetSize(100, 40)

	typeText(f.screen, "1")
	f.minter.On("BuyCoins", mock.Anything, "1").Return(nil).Once()

	_, cmd := r.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := submitResult(t, cmd)
	require.Equal(t, 1, f.screen.Pending())

	r.Update(ui.RouterMsg{To: ui.RouteLogs})
	require.Equal(t, ui.RouteLogs, r.CurrentRoute())

	r.Update(res)
	assert.Equal(t, 0, f.screen.Pending())
	recent := f.logs.GetRecentLogs(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "Swap submitted", recent[0].Message)

	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ui.RouteSwap, r.CurrentRoute())
	assert.NotContains(t, r.View(), "Waiting for wallet")
}

func TestSubmitSellFailureIsLogged(t *testing.T) {
	f := newFixture(t, true)
	f.screen.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(f.screen, "500")
	f.jetton.On("SellCoins", mock.Anything, "500").Return(errors.New("rejected")).Once()

	_, cmd := f.screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	res := submitResult(t, cmd)
	require.Error(t, res.Err)

	f.screen.Update(res)
	recent := f.logs.GetRecentLogs(1)
	require.Len(t, recent, 1)
	assert.Equal(t, "error", recent[0].Level)
	assert.Equal(t, "Swap failed", recent[0].Message)
	assert.Equal(t, "500", f.widget.SendAmount())
}

func TestSubmitDisabledDoesNothing(t *testing.T) {
	f := newFixture(t, false)
	typeText(f.screen, "1")

	_, cmd := f.screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, f.screen.Pending())
	assert.Contains(t, f.screen.View(), "Connect Wallet")
	f.minter.AssertNotCalled(t, "BuyCoins", mock.Anything, mock.Anything)
}

func TestSubmitEmptyAmountDoesNothing(t *testing.T) {
	f := newFixture(t, true)

	_, cmd := f.screen.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestLogsKeyNavigates(t *testing.T) {
	f := newFixture(t, true)

	_, cmd := f.screen.Update(tea.KeyMsg{Type: tea.KeyF12})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteLogs}, cmd())
}

func TestHelpToggle(t *testing.T) {
	f := newFixture(t, true)
	assert.NotContains(t, f.screen.View(), "tail")

	f.screen.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, f.screen.View(), "tail")
}

func TestLogsScreenTicksAndFilters(t *testing.T) {
	logs, err := logger.NewLogBuffer(10, "")
	require.NoError(t, err)
	log, err := logger.CreateTUILogger(true, logs)
	require.NoError(t, err)

	s := NewLogsScreen(logs)
	s.SetSize(100, 30)
	require.NotNil(t, s.Init())

	log.Debug("debug line")
	log.Warn("warn line", zap.String("k", "v"))

	// a tick from another screen is ignored
	_, cmd := s.Update(ui.LogTickMsg{ID: s.tickID + 1000})
	assert.Nil(t, cmd)
	assert.NotContains(t, s.View(), "warn line")

	_, cmd = s.Update(ui.LogTickMsg{ID: s.tickID})
	assert.NotNil(t, cmd)
	view := s.View()
	assert.Contains(t, view, "warn line")
	assert.NotContains(t, view, "debug line")

	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	assert.Contains(t, s.View(), "debug line")

	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, 0, s.viewer.Shown())
}

func TestLogsScreenNavigatesBack(t *testing.T) {
	s := NewLogsScreen(nil)
	s.SetSize(80, 24)

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyF12})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteSwap}, cmd())
}
