package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/friendledger/pkg/api"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses",
		Long:  `List, add and delete shared expenses.`,
	}

	cmd.AddCommand(expensesListCmd())
	cmd.AddCommand(expensesAddCmd())
	cmd.AddCommand(expensesDeleteCmd())

	return cmd
}

func expensesListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeStore, err := openLedger(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()

			resp, err := svc.ListExpenses(cmd.Context(), connect.NewRequest(&api.ListExpensesRequest{Category: category}))
			if err != nil {
				return err
			}
			friends, err := listFriends(cmd.Context(), svc)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(friends))
			for _, f := range friends {
				names[f.Id] = f.Name
			}

			out := cmd.OutOrStdout()
			if len(resp.Msg.Expenses) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("No expenses found."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Date"),
				headerStyle.Render("Title"),
				headerStyle.Render("Category"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Paid by"),
				headerStyle.Render("Split"))
			for _, e := range resp.Msg.Expenses {
				shares := make([]string, len(e.Participants))
				for i, p := range e.Participants {
					shares[i] = fmt.Sprintf("%s %s", names[p.FriendId], money(p.Amount))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					e.Id,
					e.CreatedAt.Local().Format("Jan 2, 2006"),
					e.Title,
					e.Category,
					money(e.Amount),
					names[e.PaidBy],
					strings.Join(shares, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list expenses in this category")
	return cmd
}

func expensesAddCmd() *cobra.Command {
	var (
		paidBy   string
		with     []string
		shares   []string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add <title> <amount>",
		Short: "Add an expense",
		Long: `Add an expense paid by one friend.

Split it equally with --with, or give each participant's share with --share:

  friendledger expenses add Dinner 30 --paid-by Alice --with Alice,Bob,Charlie
  friendledger expenses add Groceries 50 --paid-by Alice --share Alice=20 --share Bob=30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(with) > 0 && len(shares) > 0 {
				return fmt.Errorf("use either --with or --share, not both")
			}

			svc, closeStore, err := openLedger(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()

			friends, err := listFriends(cmd.Context(), svc)
			if err != nil {
				return err
			}
			payer, err := resolveFriend(friends, paidBy)
			if err != nil {
				return fmt.Errorf("--paid-by: %w", err)
			}

			req := &api.AddExpenseRequest{
				Title:    args[0],
				Amount:   args[1],
				PaidBy:   payer.Id,
				Category: category,
			}
			if len(shares) > 0 {
				req.Split = api.SplitCustom
				for _, s := range shares {
					ref, amount, ok := strings.Cut(s, "=")
					if !ok {
						return fmt.Errorf("--share %q: expected <friend>=<amount>", s)
					}
					f, err := resolveFriend(friends, strings.TrimSpace(ref))
					if err != nil {
						return fmt.Errorf("--share: %w", err)
					}
					req.Participants = append(req.Participants, api.Participant{FriendId: f.Id, Amount: amount})
				}
			} else {
				req.Split = api.SplitEqual
				for _, ref := range with {
					f, err := resolveFriend(friends, strings.TrimSpace(ref))
					if err != nil {
						return fmt.Errorf("--with: %w", err)
					}
					req.ParticipantIds = append(req.ParticipantIds, f.Id)
				}
			}

			resp, err := svc.AddExpense(cmd.Context(), connect.NewRequest(req))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) %s\n", resp.Msg.Expense.Title, money(resp.Msg.Expense.Amount), resp.Msg.Expense.Id)
			return nil
		},
	}

	cmd.Flags().StringVar(&paidBy, "paid-by", "", "friend who paid (ID or name)")
	cmd.Flags().StringSliceVar(&with, "with", nil, "friends to split equally with (IDs or names)")
	cmd.Flags().StringArrayVar(&shares, "share", nil, "custom share as <friend>=<amount>, repeatable")
	cmd.Flags().StringVar(&category, "category", "other", "expense category")
	_ = cmd.MarkFlagRequired("paid-by")

	return cmd
}

func expensesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := openLedger(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := svc.DeleteExpense(cmd.Context(), connect.NewRequest(&api.DeleteExpenseRequest{ExpenseId: args[0]})); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}
