package main

import (
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/friendledger/pkg/api"
)

func friendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friends",
		Short: "Manage friends",
		Long:  `List, add and remove the friends who share expenses.`,
	}

	cmd.AddCommand(friendsListCmd())
	cmd.AddCommand(friendsAddCmd())
	cmd.AddCommand(friendsRemoveCmd())

	return cmd
}

func friendsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List friends in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeStore, err := openLedger(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()

			friends, err := listFriends(cmd.Context(), svc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(friends) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("No friends yet. Use 'friendledger friends add <name>' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\n", headerStyle.Render("ID"), headerStyle.Render("Name"), headerStyle.Render("Colour"))
			for _, f := range friends {
				fmt.Fprintf(w, "%s\t%s\t%s %s\n", f.Id, f.Name, swatch(f.AvatarColor), f.AvatarColor)
			}
			return nil
		},
	}
}

func friendsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>...",
		Short: "Add one or more friends",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := openLedger(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()

			for _, name := range args {
				resp, err := svc.AddFriend(cmd.Context(), connect.NewRequest(&api.AddFriendRequest{Name: name}))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", swatch(resp.Msg.Friend.AvatarColor), resp.Msg.Friend.Name, resp.Msg.Friend.Id)
			}
			return nil
		},
	}
}

func friendsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id|name>",
		Short: "Remove a friend who is not part of any expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := openLedger(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()

			friends, err := listFriends(cmd.Context(), svc)
			if err != nil {
				return err
			}
			friend, err := resolveFriend(friends, args[0])
			if err != nil {
				return err
			}

			if _, err := svc.RemoveFriend(cmd.Context(), connect.NewRequest(&api.RemoveFriendRequest{FriendId: friend.Id})); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", friend.Name)
			return nil
		},
	}
}
