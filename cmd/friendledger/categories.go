package main

import (
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/friendledger/pkg/api"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeStore, err := openLedger(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()

			resp, err := svc.ListCategories(cmd.Context(), connect.NewRequest(&api.ListCategoriesRequest{}))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\n", headerStyle.Render("ID"), headerStyle.Render("Name"), headerStyle.Render("Icon"))
			for _, c := range resp.Msg.Categories {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Id, c.DisplayName, c.Icon)
			}
			return nil
		},
	}
}
