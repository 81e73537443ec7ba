package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"calendar"},
		Short:   "Manage the calendar",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.requireAuth()
		},
	}

	cmd.AddCommand(
		newEventListCmd(app),
		newEventTodayCmd(app),
		newEventUpcomingCmd(app),
		newEventAddCmd(app),
		newEventUpdateCmd(app),
		newEventCompleteCmd(app),
		newEventRemoveCmd(app),
	)

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var etype, status, date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Client.Events().List(context.Background(), api.EventFilters{
				Type:   etype,
				Status: status,
				Date:   date,
			})
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEvents(events))
			return nil
		},
	}

	cmd.Flags().StringVar(&etype, "type", "", "Filter by event type")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&date, "date", "", "Filter by date (YYYY-MM-DD)")

	return cmd
}

func newEventTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Client.Events().Today(context.Background())
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing scheduled today.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEvents(events))
			return nil
		},
	}
}

func newEventUpcomingCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show the next few days",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Client.Events().Upcoming(context.Background(), days)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing scheduled in the next %d days.\n", days)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEvents(events))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Days ahead to include")

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var title, etype, date, timeStr, customer, phone, location, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}
			created, err := app.Client.Events().Create(context.Background(), domain.Event{
				Title:    title,
				Type:     domain.EventType(etype),
				Date:     d,
				Time:     timeStr,
				Customer: customer,
				Phone:    phone,
				Location: location,
				Notes:    notes,
				Status:   domain.EventScheduled,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s on %s (%s)\n",
				created.Title, created.Date.Format("2006-01-02"), created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&etype, "type", string(domain.EventVisit), "Event type")
	cmd.Flags().StringVar(&date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeStr, "time", "", "Display time, e.g. \"10:30 AM\"")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name")
	cmd.Flags().StringVar(&phone, "phone", "", "Customer phone")
	cmd.Flags().StringVar(&location, "location", "", "Where to meet")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newEventUpdateCmd(app *App) *cobra.Command {
	var date, timeStr, location, notes string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Reschedule or edit an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := app.Client.Events().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("date") {
				d, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				e.Date = d
			}
			if cmd.Flags().Changed("time") {
				e.Time = timeStr
			}
			if cmd.Flags().Changed("location") {
				e.Location = location
			}
			if cmd.Flags().Changed("notes") {
				e.Notes = notes
			}
			updated, err := app.Client.Events().Update(ctx, e.ID, *e)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s %s)\n",
				updated.Title, updated.Date.Format("2006-01-02"), updated.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeStr, "time", "", "New display time")
	cmd.Flags().StringVar(&location, "location", "", "New location")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}

func newEventCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark an event completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Client.Events().MarkCompleted(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", e.Title)
			return nil
		},
	}
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.Events().Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}
