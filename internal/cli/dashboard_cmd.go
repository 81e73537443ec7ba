package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"stats"},
		Short:   "Show the role dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAuth(); err != nil {
				return err
			}
			stats, err := app.Client.Dashboard().Stats(context.Background(), app.Session.Role())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case stats.Builder != nil:
				fmt.Fprintln(out, formatter.FormatBuilderStats(stats.Builder))
			case stats.Broker != nil:
				fmt.Fprintln(out, formatter.FormatBrokerStats(stats.Broker))
			}

			events, err := app.Client.Events().Today(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.Header("Today"))
			if len(events) == 0 {
				fmt.Fprintln(out, formatter.Dim("Nothing scheduled today."))
				return nil
			}
			fmt.Fprintln(out, formatter.FormatEvents(events))
			return nil
		},
	}
}

// requireBroker gates broker-only subtrees.
func requireBroker(app *App) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return app.requireRole(domain.RoleBroker)
	}
}

func requireBuilder(app *App) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return app.requireRole(domain.RoleBuilder)
	}
}
