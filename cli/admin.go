package cli

import (
	"fmt"
	"strconv"

	"eventers-marketplace-client/dashboard"
	"eventers-marketplace-client/notify"

	"github.com/spf13/cobra"
)

func (a *App) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin dashboard",
	}
	cmd.AddCommand(a.adminStatsCommand(), a.adminUsersCommand(), a.adminToggleCommand())
	return cmd
}

func (a *App) adminStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Platform totals and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if _, err := a.require(ctx, admins...); err != nil {
				return err
			}
			stats, err := a.factory.Client(ctx).AdminStats(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(stats)
			}
			fmt.Fprintf(a.out, "users %d · events %d · tickets sold %d · revenue %s\n\n",
				stats.TotalUsers, stats.TotalEvents, stats.TotalTicketsSold, stats.TotalRevenue.StringFixed(2))
			for _, item := range dashboard.Feed(stats) {
				fmt.Fprintf(a.out, "%s  %s\n", item.When().Local().Format(dateLayout), dashboard.Describe(item))
			}
			return nil
		},
	}
}

func (a *App) adminUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List every user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if _, err := a.require(ctx, admins...); err != nil {
				return err
			}
			users, err := a.factory.Client(ctx).AdminUsers(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(users)
			}
			t := a.table("ID", "NAME", "EMAIL", "ROLE", "VERIFIED")
			for _, u := range users {
				t.row(u.ID, u.Name, u.Email, string(u.Role), strconv.FormatBool(u.IsVerified))
			}
			return t.flush()
		},
	}
}

func (a *App) adminToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <eventID>",
		Short: "Activate or deactivate an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			if _, err := a.require(ctx, admins...); err != nil {
				return err
			}
			e, err := a.factory.Client(ctx).ToggleEvent(ctx, args[0])
			if err != nil {
				return err
			}
			state := "deactivated"
			if e.IsActive {
				state = "activated"
			}
			notify.Success(a.notifier, "%s %s", e.Name, state)
			return nil
		},
	}
}
