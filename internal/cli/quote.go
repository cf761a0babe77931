package cli

import (
	"fmt"

	"github.com/rovshanmuradov/dupc-swap/internal/swap"
	"github.com/spf13/cobra"
)

func newQuoteCommand() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "quote <amount>",
		Short: "Show what an amount converts to",
		Long: `Show the receive amount, its USD estimate and the rate line for an amount.
The amount is sent in TON unless --reverse is given, in which case it is DUPC.

Examples:
  dupc-swap quote 1
  dupc-swap quote 100000 --reverse`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := swap.NewWidget(nil, nil, nil, nil)
			if reverse {
				w.Flip()
			}
			w.SetSendAmount(args[0])
			printQuote(cmd, w.Snapshot())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Send DUPC and receive TON")
	return cmd
}

func printQuote(cmd *cobra.Command, v swap.View) {
	out := cmd.OutOrStdout()

	printField(cmd, "You send", fmt.Sprintf("%s %s", v.SendAmount, tokenColor.Sprint(v.SendToken.Symbol)))
	labelColor.Fprintf(out, "%-14s", "")
	infoColor.Fprintln(out, v.SendUSD)

	printField(cmd, "You receive", fmt.Sprintf("%s %s", v.ReceiveDisplay, tokenColor.Sprint(v.ReceiveToken.Symbol)))
	labelColor.Fprintf(out, "%-14s", "")
	infoColor.Fprintln(out, v.ReceiveUSD)

	printField(cmd, "Exact", v.ReceiveAmount)
	printField(cmd, "Rate", v.RateLine)
}
