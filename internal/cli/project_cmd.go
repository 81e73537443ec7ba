package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "project",
		Short:             "Manage builder projects and plots",
		PersistentPreRunE: requireBuilder(app),
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectAddCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newPlotListCmd(app),
		newPlotAddCmd(app),
		newPlotUpdateCmd(app),
		newPlotUploadCmd(app),
		newPaymentAddCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var area, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Client.Projects().List(context.Background(), api.ProjectFilters{
				Area:   area,
				Search: search,
			})
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjects(projects))
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Filter by area")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, area, priceRange, approval, completion string
	var totalPlots int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.Project{
				Name:           name,
				Area:           area,
				TotalPlots:     totalPlots,
				AvailablePlots: totalPlots,
				PriceRange:     priceRange,
				LayoutApproval: approval,
			}
			if completion != "" {
				t, err := time.Parse("2006-01-02", completion)
				if err != nil {
					return fmt.Errorf("invalid completion date %q: %w", completion, err)
				}
				p.CompletionDate = t
			}
			if err := p.Validate(); err != nil {
				return err
			}
			created, err := app.Client.Projects().Create(context.Background(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&area, "area", "", "Locality")
	cmd.Flags().IntVar(&totalPlots, "plots", 0, "Total plot count")
	cmd.Flags().StringVar(&priceRange, "price-range", "", "Price range, e.g. \"₹40-60 Lakh\"")
	cmd.Flags().StringVar(&approval, "approval", "Pending", "Layout approval (Approved or Pending)")
	cmd.Flags().StringVar(&completion, "completion", "", "Completion date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("area")
	_ = cmd.MarkFlagRequired("plots")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var priceRange, approval string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Client.Projects().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("price-range") {
				p.PriceRange = priceRange
			}
			if cmd.Flags().Changed("approval") {
				p.LayoutApproval = approval
			}
			updated, err := app.Client.Projects().Update(ctx, p.ID, *p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&priceRange, "price-range", "", "New price range")
	cmd.Flags().StringVar(&approval, "approval", "", "New layout approval")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.Projects().Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func newPlotListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "plots PROJECT_ID",
		Short: "List plots in a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plots, err := app.Client.Projects().Plots(context.Background(), args[0], api.PlotFilters{
				Status: status,
			})
			if err != nil {
				return err
			}
			if len(plots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plots found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlots(plots))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by plot status")

	return cmd
}

func newPlotAddCmd(app *App) *cobra.Command {
	var number, size, price, facing, status, buyerName, buyerPhone string

	cmd := &cobra.Command{
		Use:   "plot-add PROJECT_ID",
		Short: "Add a plot to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plot := domain.Plot{
				PlotNumber: number,
				Size:       size,
				Price:      price,
				Facing:     facing,
				Status:     domain.PlotStatus(status),
			}
			if buyerName != "" {
				plot.Buyer = &domain.PlotBuyer{Name: buyerName, Phone: buyerPhone}
			}
			if err := plot.Validate(); err != nil {
				return err
			}
			p, err := app.Client.Projects().AddPlot(context.Background(), args[0], plot)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added plot %s to %s (%d total)\n", number, p.Name, p.TotalPlots)
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Plot number")
	cmd.Flags().StringVar(&size, "size", "", "Plot size, e.g. \"1800 sq ft\"")
	cmd.Flags().StringVar(&price, "price", "", "Asking price")
	cmd.Flags().StringVar(&facing, "facing", "", "Facing direction")
	cmd.Flags().StringVar(&status, "status", string(domain.PlotAvailable), "Plot status")
	cmd.Flags().StringVar(&buyerName, "buyer", "", "Buyer name (reserved/sold plots)")
	cmd.Flags().StringVar(&buyerPhone, "buyer-phone", "", "Buyer phone")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newPlotUpdateCmd(app *App) *cobra.Command {
	var price, status, buyerName, buyerPhone string

	cmd := &cobra.Command{
		Use:   "plot-update PROJECT_ID PLOT_NUMBER",
		Short: "Update a plot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			project, err := app.Client.Projects().Get(ctx, args[0])
			if err != nil {
				return err
			}
			var plot *domain.Plot
			for i := range project.Plots {
				if project.Plots[i].PlotNumber == args[1] {
					plot = &project.Plots[i]
					break
				}
			}
			if plot == nil {
				return fmt.Errorf("no plot %s in project %s", args[1], project.Name)
			}
			if cmd.Flags().Changed("price") {
				plot.Price = price
			}
			if cmd.Flags().Changed("status") {
				plot.Status = domain.PlotStatus(status)
			}
			if cmd.Flags().Changed("buyer") {
				plot.Buyer = &domain.PlotBuyer{Name: buyerName, Phone: buyerPhone}
			}
			if err := plot.Validate(); err != nil {
				return err
			}
			p, err := app.Client.Projects().UpdatePlot(ctx, args[0], args[1], *plot)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated plot %s in %s\n", args[1], p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "New asking price")
	cmd.Flags().StringVar(&status, "status", "", "New plot status")
	cmd.Flags().StringVar(&buyerName, "buyer", "", "Buyer name")
	cmd.Flags().StringVar(&buyerPhone, "buyer-phone", "", "Buyer phone")

	return cmd
}

// readPlotsCSV parses a bulk-upload file. Expected header:
// plot_number,size,price,facing,status
func readPlotsCSV(path string) ([]domain.Plot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}

	plots := make([]domain.Plot, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 5 {
			return nil, fmt.Errorf("row %d: expected 5 columns, got %d", i+2, len(rec))
		}
		plot := domain.Plot{
			PlotNumber: rec[0],
			Size:       rec[1],
			Price:      rec[2],
			Facing:     rec[3],
			Status:     domain.PlotStatus(rec[4]),
		}
		if plot.Status == "" {
			plot.Status = domain.PlotAvailable
		}
		if err := plot.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		plots = append(plots, plot)
	}
	return plots, nil
}

func newPlotUploadCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "plot-upload PROJECT_ID",
		Short: "Bulk-add plots from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plots, err := readPlotsCSV(file)
			if err != nil {
				return err
			}
			p, err := app.Client.Projects().BulkUploadPlots(context.Background(), args[0], plots)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d plots to %s (%d total)\n", len(plots), p.Name, p.TotalPlots)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file (plot_number,size,price,facing,status)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newPaymentAddCmd(app *App) *cobra.Command {
	var plot, amount, ptype, status, date string

	cmd := &cobra.Command{
		Use:   "payment-add PROJECT_ID",
		Short: "Record a payment against a plot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payment := domain.Payment{
				Amount: amount,
				Type:   ptype,
				Status: domain.PaymentStatus(status),
			}
			if date != "" {
				t, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid payment date %q: %w", date, err)
				}
				payment.Date = t
			} else {
				payment.Date = app.now()
			}
			p, err := app.Client.Projects().AddPayment(context.Background(), args[0], plot, payment)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %s payment on plot %s (%s)\n",
				amount, ptype, plot, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&plot, "plot", "", "Plot number")
	cmd.Flags().StringVar(&amount, "amount", "", "Payment amount, e.g. \"₹5 Lakh\"")
	cmd.Flags().StringVar(&ptype, "type", "Installment", "Payment type (Booking, Token, Installment, ...)")
	cmd.Flags().StringVar(&status, "status", string(domain.PaymentPaid), "Payment status")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD), defaults to today")
	_ = cmd.MarkFlagRequired("plot")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
