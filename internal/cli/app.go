package cli

import (
	"fmt"
	"time"

	"github.com/rovshanmuradov/dupc-swap/internal/config"
	"github.com/rovshanmuradov/dupc-swap/internal/logger"
	"github.com/rovshanmuradov/dupc-swap/internal/metrics"
	"github.com/rovshanmuradov/dupc-swap/internal/swap"
	"github.com/rovshanmuradov/dupc-swap/internal/ton"
	"github.com/rovshanmuradov/dupc-swap/internal/ui/component"
	"go.uber.org/zap"
)

// App wires the TON adapters behind the swap widget's collaborator interfaces.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Session   *ton.Session
	Toncenter *ton.Toncenter
	Minter    *ton.Minter
	Jetton    *ton.JettonWallet
	Widget    *swap.Widget
	Metrics   *metrics.Collector

	journal *logger.CSVJournal
}

const journalFlushInterval = 2 * time.Second

// NewApp builds the adapters from cfg. Without a bridge URL transfer
// requests are only logged. With a journal path every request is also
// appended to a CSV journal. Every request and toncenter call is counted
// in the metrics collector.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	retry := ton.RetryOptions{MaxTries: uint(cfg.Retries)}

	session := ton.NewSession(cfg.WalletAddress)
	builder := ton.NewBuilder(session, cfg.Network, cfg.ValidFor())
	toncenter := ton.NewToncenter(cfg.ToncenterURL, cfg.ToncenterAPIKey, cfg.RequestRPS, retry, log)
	collector := metrics.NewCollector()
	toncenter.SetObserver(collector)

	var sender ton.Sender
	okStatus := "sent"
	if cfg.DryRun() {
		sender = ton.NewLogSender(log)
		okStatus = "logged"
	} else {
		sender = ton.NewBridgeSender(cfg.BridgeURL, retry, log)
	}

	var journal *logger.CSVJournal
	if cfg.JournalPath != "" {
		j, err := logger.NewCSVJournal(cfg.JournalPath, logger.JournalHeader, journalFlushInterval, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		journal = j
		sender = ton.NewJournalSender(sender, journal, okStatus, log)
	}
	sender = ton.NewMetricsSender(sender, collector)

	minter, err := ton.NewMinter(cfg.MinterAddress, builder, sender, toncenter, cfg.SupplyCacheTTL(), log)
	if err != nil {
		if journal != nil {
			_ = journal.Close()
		}
		return nil, fmt.Errorf("failed to create minter: %w", err)
	}
	jetton := ton.NewJettonWallet(cfg.JettonWalletAddress, cfg.MinterAddress, builder, sender, toncenter, log)

	log.Debug("App wired",
		zap.String("network", cfg.Network),
		zap.String("minter", cfg.MinterAddress),
		zap.Bool("wallet_connected", session.Connected()),
		zap.Bool("dry_run", cfg.DryRun()))

	return &App{
		Config:    cfg,
		Logger:    log,
		Session:   session,
		Toncenter: toncenter,
		Minter:    minter,
		Jetton:    jetton,
		Widget:    swap.NewWidget(session, minter, jetton, log),
		Metrics:   collector,
		journal:   journal,
	}, nil
}

// WalletStatus describes the session for the TUI header.
func (a *App) WalletStatus() component.WalletStatus {
	return component.WalletStatus{
		Connected: a.Session.Connected(),
		Address:   a.Session.ShortAddress(),
		Network:   a.Config.Network,
		DryRun:    a.Config.DryRun(),
	}
}

// Close releases the adapters and flushes the journal.
func (a *App) Close() {
	a.Minter.Close()
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.Logger.Warn("Failed to close journal", zap.Error(err))
		}
	}
}
