package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rovshanmuradov/dupc-swap/internal/config"
	"github.com/rovshanmuradov/dupc-swap/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "configs/config.json"

type globalOptions struct {
	configPath string
	wallet     string
	debug      bool
}

// NewRootCommand builds the dupc-swap command tree. Running it without a
// subcommand starts the TUI.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "dupc-swap",
		Short: "Swap TON for DUPC at a fixed rate",
		Long: `dupc-swap converts between TON and the DUPC jetton at a fixed rate of
1 TON = 100,000 DUPC and sends buy or sell requests to the connected wallet.

Examples:
  dupc-swap                      # interactive swap form
  dupc-swap quote 1.5
  dupc-swap quote 250000 --reverse
  dupc-swap buy 1.5 --wallet EQ...
  dupc-swap sell 250000
  dupc-swap info`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts, tuiOptions{})
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "Path to config file")
	root.PersistentFlags().StringVarP(&opts.wallet, "wallet", "w", "", "Connected wallet address (overrides wallet_address)")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")

	root.AddCommand(
		newTUICommand(opts),
		newQuoteCommand(),
		newTradeCommand(opts, tradeBuy),
		newTradeCommand(opts, tradeSell),
		newInfoCommand(opts),
	)
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// loadConfig reads the config file. The default path may be absent, in which
// case only defaults and the environment are used.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	path := opts.configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if w := strings.TrimSpace(opts.wallet); w != "" {
		cfg.WalletAddress = w
	}
	if opts.debug {
		cfg.DebugLogging = true
	}
	return cfg, nil
}

// newCLIApp loads config and wires the adapters with a console logger.
func newCLIApp(cmd *cobra.Command, opts *globalOptions) (*App, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	log, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return NewApp(cfg, log)
}

func closeApp(app *App) {
	app.Close()
	_ = app.Logger.Sync()
}

var (
	labelColor   = color.New(color.FgHiBlack)
	valueColor   = color.New(color.FgWhite, color.Bold)
	tokenColor   = color.New(color.FgMagenta, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

func printField(cmd *cobra.Command, label, value string) {
	w := cmd.OutOrStdout()
	labelColor.Fprintf(w, "%-14s", label+":")
	valueColor.Fprintln(w, value)
}

// logFields is a helper so commands log the same keys.
func logFields(app *App) []zap.Field {
	return []zap.Field{
		zap.String("network", app.Config.Network),
		zap.Bool("dry_run", app.Config.DryRun()),
	}
}
