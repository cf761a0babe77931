package cli

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/rovshanmuradov/dupc-swap/internal/swap"
	"github.com/rovshanmuradov/dupc-swap/internal/ton"
	"github.com/spf13/cobra"
)

func newInfoCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show minter address, total supply and wallet balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd, opts)
		},
	}
}

func runInfo(cmd *cobra.Command, opts *globalOptions) error {
	app, err := newCLIApp(cmd, opts)
	if err != nil {
		return err
	}
	defer closeApp(app)

	ctx := cmd.Context()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " Fetching jetton data..."
	s.Start()
	supplyUnits, supplyErr := app.Minter.TotalSupply(ctx)
	s.Stop()

	printField(cmd, "Minter", app.Minter.Address())
	printField(cmd, "Rate", swap.RateLine(swap.DefaultPair(), swap.Forward))

	if supplyErr != nil {
		return fmt.Errorf("failed to fetch total supply: %w", supplyErr)
	}
	supply, err := ton.FromUnits(supplyUnits, swap.DUPC.Decimals)
	if err != nil {
		return fmt.Errorf("failed to parse total supply: %w", err)
	}
	printField(cmd, "Total supply", fmt.Sprintf("%s %s", humanize.BigComma(supply.Round(0).BigInt()), tokenColor.Sprint(swap.DUPC.Symbol)))

	if !app.Session.Connected() {
		warnColor.Fprintln(cmd.OutOrStdout(), "No wallet connected; pass --wallet to see a balance.")
		return nil
	}

	printField(cmd, "Wallet", app.Session.ShortAddress())
	balance, err := app.Jetton.Balance(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}
	printField(cmd, "Balance", fmt.Sprintf("%s %s", balance.String(), tokenColor.Sprint(swap.DUPC.Symbol)))
	return nil
}
