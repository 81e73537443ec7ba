package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
)

func newNotificationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notify"},
		Short:   "Manage notifications",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireAuth()
		},
	}

	cmd.AddCommand(
		newNotificationListCmd(app),
		newNotificationReadCmd(app),
		newNotificationReadAllCmd(app),
	)

	return cmd
}

func newNotificationListCmd(app *App) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			notifications, err := app.Client.Notifications().List(context.Background())
			if err != nil {
				return err
			}
			if unreadOnly {
				filtered := notifications[:0]
				for _, n := range notifications {
					if !n.IsRead {
						filtered = append(filtered, n)
					}
				}
				notifications = filtered
			}
			if len(notifications) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notifications.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotifications(notifications))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notifications")

	return cmd
}

func newNotificationReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark one notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Client.Notifications().MarkRead(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Read: %s\n", n.Title)
			return nil
		},
	}
}

func newNotificationReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.Notifications().MarkAllRead(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All notifications marked read.")
			return nil
		},
	}
}
