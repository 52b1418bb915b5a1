package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/friendledger/pkg/api"
)

func balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show who owes whom",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeStore, err := openLedger(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()

			resp, err := svc.GetBalances(cmd.Context(), connect.NewRequest(&api.GetBalancesRequest{}))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Msg.Balances) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("All settled up!"))
			} else {
				fmt.Fprintln(out, headerStyle.Render("Settlements"))
				for _, b := range resp.Msg.Balances {
					fmt.Fprintf(out, "  %s owes %s %s\n", b.From.Name, b.To.Name, money(b.Amount))
				}
			}

			if len(resp.Msg.FriendBalances) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\n", headerStyle.Render("Friend"), headerStyle.Render("Net"), headerStyle.Render("Status"))
			for _, fb := range resp.Msg.FriendBalances {
				fmt.Fprintf(w, "%s\t%s\t%s\n", fb.Friend.Name, money(fb.Net), status(fb.Net))
			}
			return nil
		},
	}
}

func status(net string) string {
	switch {
	case strings.HasPrefix(net, "-"):
		return owesStyle.Render("owes")
	case net == "0":
		return mutedStyle.Render("settled")
	default:
		return owedStyle.Render("is owed")
	}
}
