package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rovshanmuradov/dupc-swap/internal/swap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type tradeSide int

const (
	tradeBuy tradeSide = iota
	tradeSell
)

// errNotConnected is returned when a trade is attempted without a wallet.
var errNotConnected = errors.New("no wallet connected: set wallet_address or pass --wallet")

func newTradeCommand(opts *globalOptions, side tradeSide) *cobra.Command {
	use, short, example := "buy <ton-amount>", "Buy DUPC with TON", "dupc-swap buy 1.5 --wallet EQ..."
	if side == tradeSell {
		use, short, example = "sell <dupc-amount>", "Sell DUPC for TON", "dupc-swap sell 250000 --wallet EQ..."
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `. The request is sent to the wallet bridge, or only logged when
no bridge_url is configured.

Example:
  ` + example,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrade(cmd, opts, side, args[0])
		},
	}
}

func runTrade(cmd *cobra.Command, opts *globalOptions, side tradeSide, amount string) error {
	app, err := newCLIApp(cmd, opts)
	if err != nil {
		return err
	}
	defer closeApp(app)

	w := app.Widget
	if side == tradeSell {
		w.Flip()
	}
	w.SetSendAmount(amount)

	if !w.CanSubmit() {
		if amount == "" {
			return fmt.Errorf("amount is required")
		}
		return errNotConnected
	}

	v := w.Snapshot()
	printQuote(cmd, v)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " Sending request to wallet..."
	s.Start()
	err = w.Submit(cmd.Context())
	s.Stop()

	if err != nil {
		app.Logger.Error("Swap failed", append(logFields(app), zap.Error(err))...)
		return fmt.Errorf("%s failed: %w", sideName(w.Direction()), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	if app.Config.DryRun() {
		warnColor.Fprintln(out, "Dry run: transfer request logged, nothing was sent.")
	}
	successColor.Fprintf(out, "%s request for %s %s submitted\n", sideName(w.Direction()), amount, v.SendToken.Symbol)
	app.Logger.Debug("Swap submitted", logFields(app)...)
	return nil
}

func sideName(d swap.Direction) string {
	if d.SendsBase() {
		return "Buy"
	}
	return "Sell"
}
