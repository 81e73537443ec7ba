package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/export"
	"github.com/rohanvaze/brokerdesk/internal/metrics"
)

func newDealCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "deal",
		Short:             "Manage deals",
		PersistentPreRunE: requireBroker(app),
	}

	cmd.AddCommand(
		newDealListCmd(app),
		newDealAddCmd(app),
		newDealUpdateCmd(app),
		newDealRemoveCmd(app),
		newDealAnalyticsCmd(app),
		newDealExportCmd(app),
	)

	return cmd
}

func newDealListCmd(app *App) *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals",
		RunE: func(cmd *cobra.Command, args []string) error {
			deals, err := app.Client.Deals().List(context.Background(), api.DealFilters{
				Status: status,
				Search: search,
			})
			if err != nil {
				return err
			}
			if len(deals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No deals found.")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatDealSummary(metrics.SummarizeDeals(deals)))
			fmt.Fprintln(out, formatter.FormatDeals(deals, nil, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by deal status")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")

	return cmd
}

func newDealAddCmd(app *App) *cobra.Command {
	var property, customer, status, value, brokerage, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a deal",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := domain.Deal{
				PropertyTitle:   property,
				CustomerName:    customer,
				Status:          domain.DealStatus(status),
				DealValue:       value,
				BrokerageAmount: brokerage,
				Notes:           notes,
			}
			if err := d.Validate(); err != nil {
				return err
			}
			created, err := app.Client.Deals().Create(context.Background(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added deal %s / %s (%s)\n",
				created.PropertyTitle, created.CustomerName, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&property, "property", "", "Property title")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name")
	cmd.Flags().StringVar(&status, "status", string(domain.DealInterested), "Deal status")
	cmd.Flags().StringVar(&value, "value", "", "Deal value, e.g. \"₹1.5 Cr\"")
	cmd.Flags().StringVar(&brokerage, "brokerage", "", "Brokerage amount")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("property")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func newDealUpdateCmd(app *App) *cobra.Command {
	var status, value, brokerage, closeDate string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := app.Client.Deals().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("status") {
				d.Status = domain.DealStatus(status)
			}
			if cmd.Flags().Changed("value") {
				d.DealValue = value
			}
			if cmd.Flags().Changed("brokerage") {
				d.BrokerageAmount = brokerage
			}
			if cmd.Flags().Changed("close-date") {
				t, err := time.Parse("2006-01-02", closeDate)
				if err != nil {
					return fmt.Errorf("invalid close date %q: %w", closeDate, err)
				}
				d.CloseDate = &t
			}
			if err := d.Validate(); err != nil {
				return err
			}
			updated, err := app.Client.Deals().Update(ctx, d.ID, *d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated deal %s [%s]\n", updated.PropertyTitle, updated.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New deal status")
	cmd.Flags().StringVar(&value, "value", "", "New deal value")
	cmd.Flags().StringVar(&brokerage, "brokerage", "", "New brokerage amount")
	cmd.Flags().StringVar(&closeDate, "close-date", "", "Close date (YYYY-MM-DD)")

	return cmd
}

func newDealRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.Deals().Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func newDealAnalyticsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show the monthly brokerage series",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			series, err := app.Client.Deals().BrokerageAnalytics(ctx)
			if err != nil {
				return err
			}
			deals, err := app.Client.Deals().List(ctx, api.DealFilters{})
			if err != nil {
				return err
			}
			summary := metrics.SummarizeBrokerage(series, deals)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBrokerageSummary(summary, series))
			return nil
		},
	}
}

func newDealExportCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export deals to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			deals, err := app.Client.Deals().List(context.Background(), api.DealFilters{})
			if err != nil {
				return err
			}
			f, err := export.Deals(deals)
			if err != nil {
				return err
			}
			path, err := f.Write(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d deals to %s\n", len(deals), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")

	return cmd
}
