package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rovshanmuradov/dupc-swap/internal/logger"
	"github.com/rovshanmuradov/dupc-swap/internal/ton"
	"github.com/rovshanmuradov/dupc-swap/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func writeConfig(t *testing.T, fields map[string]interface{}) string {
	t.Helper()
	if _, ok := fields["minter_address"]; !ok {
		fields["minter_address"] = "EQMinter"
	}
	data, err := json.Marshal(fields)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

type bridge struct {
	mu       sync.Mutex
	requests []ton.TransferRequest
	server   *httptest.Server
}

func newBridge(t *testing.T) *bridge {
	b := &bridge{}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ton.TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.requests = append(b.requests, req)
		b.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *bridge) received() []ton.TransferRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ton.TransferRequest(nil), b.requests...)
}

func TestQuoteForward(t *testing.T) {
	out, err := run(t, "quote", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "1 TON")
	assert.Contains(t, out, "100,000 DUPC")
	assert.Contains(t, out, "$2.00")
	assert.Contains(t, out, "100000")
	assert.Contains(t, out, "1 TON ≈ 100,000 DUPC")
}

func TestQuoteReverse(t *testing.T) {
	out, err := run(t, "quote", "100000", "--reverse")
	require.NoError(t, err)

	assert.Contains(t, out, "100000 DUPC")
	assert.Contains(t, out, "1.00000000 TON")
	assert.Contains(t, out, "1 DUPC ≈ 0.00001000 TON")
}

func TestQuoteGarbage(t *testing.T) {
	out, err := run(t, "quote", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "NaN")
}

func TestQuoteRequiresAmount(t *testing.T) {
	_, err := run(t, "quote")
	assert.Error(t, err)
}

func TestBuyDryRun(t *testing.T) {
	cfg := writeConfig(t, map[string]interface{}{})

	out, err := run(t, "buy", "1.5", "--config", cfg, "--wallet", "EQOwner")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
	assert.Contains(t, out, "Buy request for 1.5 TON submitted")
}

func TestBuyWithoutWallet(t *testing.T) {
	cfg := writeConfig(t, map[string]interface{}{})

	_, err := run(t, "buy", "1", "--config", cfg)
	assert.ErrorIs(t, err, errNotConnected)
}

func TestBuyThroughBridge(t *testing.T) {
	b := newBridge(t)
	cfg := writeConfig(t, map[string]interface{}{
		"wallet_address": "EQOwner",
		"network":        "-3",
		"bridge_url":     b.server.URL,
	})

	out, err := run(t, "buy", "1.5", "--config", cfg)
	require.NoError(t, err)
	assert.NotContains(t, out, "Dry run")

	reqs := b.received()
	require.Len(t, reqs, 1)
	req := reqs[0]
	assert.Equal(t, "EQOwner", req.From)
	assert.Equal(t, "-3", req.Network)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "EQMinter", req.Messages[0].Address)
	assert.Equal(t, "1500000000", req.Messages[0].Amount)
	require.NotNil(t, req.Messages[0].Payload)
	assert.Equal(t, ton.OpBuy, req.Messages[0].Payload.Op)
}

func TestSellThroughBridge(t *testing.T) {
	b := newBridge(t)
	cfg := writeConfig(t, map[string]interface{}{
		"wallet_address":        "EQOwner",
		"jetton_wallet_address": "EQJetton",
		"bridge_url":            b.server.URL,
	})

	out, err := run(t, "sell", "250000", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Sell request for 250000 DUPC submitted")

	reqs := b.received()
	require.Len(t, reqs, 1)
	msg := reqs[0].Messages[0]
	assert.Equal(t, "EQJetton", msg.Address)
	assert.Equal(t, ton.SellForwardNano, msg.Amount)
	require.NotNil(t, msg.Payload)
	assert.Equal(t, ton.OpSell, msg.Payload.Op)
	assert.Equal(t, "250000000000000", msg.Payload.JettonAmount)
	assert.Equal(t, "EQOwner", msg.Payload.ResponseDestination)
}

func TestBuyWritesJournal(t *testing.T) {
	journalPath := filepath.Join(t.TempDir(), "data", "swaps.csv")
	cfg := writeConfig(t, map[string]interface{}{
		"wallet_address": "EQOwner",
		"journal_path":   journalPath,
	})

	_, err := run(t, "buy", "2", "--config", cfg)
	require.NoError(t, err)

	f, err := os.Open(journalPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, logger.JournalHeader, rows[0])

	row := rows[1]
	assert.Equal(t, "EQOwner", row[3])
	assert.Equal(t, ton.OpBuy, row[4])
	assert.Equal(t, "EQMinter", row[5])
	assert.Equal(t, "2000000000", row[6])
	assert.Equal(t, "logged", row[8])
}

func TestSellInvalidAmount(t *testing.T) {
	cfg := writeConfig(t, map[string]interface{}{
		"wallet_address":        "EQOwner",
		"jetton_wallet_address": "EQJetton",
	})

	_, err := run(t, "sell", "abc", "--config", cfg)
	assert.ErrorIs(t, err, ton.ErrInvalidAmount)
}

func TestInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/jetton/masters":
			fmt.Fprint(w, `{"jetton_masters":[{"address":"EQMinter","total_supply":"1000000000000000"}]}`)
		case "/api/v3/jetton/wallets":
			fmt.Fprint(w, `{"jetton_wallets":[{"address":"EQJetton","balance":"2500000000","owner":"EQOwner","jetton":"EQMinter"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cfg := writeConfig(t, map[string]interface{}{
		"toncenter_url": server.URL,
		"request_rps":   0,
	})

	out, err := run(t, "info", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "EQMinter")
	assert.Contains(t, out, "1,000,000 DUPC")
	assert.Contains(t, out, "No wallet connected")

	out, err = run(t, "info", "--config", cfg, "--wallet", "EQOwner")
	require.NoError(t, err)
	assert.Contains(t, out, "2.5 DUPC")
}

func TestExplicitMissingConfigFails(t *testing.T) {
	_, err := run(t, "buy", "1", "--config", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestAppWalletStatus(t *testing.T) {
	path := writeConfig(t, map[string]interface{}{"wallet_address": "EQAbcdefghijklmnopqrstuvwxyz"})
	root := NewRootCommand()
	require.NoError(t, root.ParseFlags([]string{"--config", path}))

	cfg, err := loadConfig(root, &globalOptions{configPath: path})
	require.NoError(t, err)

	app, err := NewApp(cfg, zap.NewNop())
	require.NoError(t, err)
	defer app.Close()

	status := app.WalletStatus()
	assert.True(t, status.Connected)
	assert.Equal(t, "EQAbcd...wxyz", status.Address)
	assert.True(t, status.DryRun)
	assert.Equal(t, ton.Mainnet, status.Network)
}

func TestAppCountsTransfers(t *testing.T) {
	path := writeConfig(t, map[string]interface{}{"wallet_address": "EQOwner"})
	cfg, err := loadConfig(NewRootCommand(), &globalOptions{configPath: path})
	require.NoError(t, err)

	app, err := NewApp(cfg, zap.NewNop())
	require.NoError(t, err)
	defer app.Close()

	app.Widget.SetSendAmount("1")
	require.NoError(t, app.Widget.Submit(context.Background()))

	count, err := testutil.GatherAndCount(app.Metrics.Registry(), "dupc_swap_transfers_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAppModelRoutes(t *testing.T) {
	path := writeConfig(t, map[string]interface{}{"wallet_address": "EQOwner"})
	cfg, err := loadConfig(NewRootCommand(), &globalOptions{configPath: path})
	require.NoError(t, err)

	logs, err := logger.NewLogBuffer(20, "")
	require.NoError(t, err)
	app, err := NewApp(cfg, zap.NewNop())
	require.NoError(t, err)
	defer app.Close()

	m := newAppModel(context.Background(), app, logs)
	assert.Equal(t, "Initializing...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.View(), "DUPC Swap")
	assert.Contains(t, m.View(), "EQOwner")

	m.Update(ui.RouterMsg{To: ui.RouteLogs})
	assert.Contains(t, m.View(), "Application Logs")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Contains(t, m.View(), "DUPC Swap")
}
