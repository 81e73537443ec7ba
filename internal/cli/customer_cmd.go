package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/export"
	"github.com/rohanvaze/brokerdesk/internal/metrics"
)

func newCustomerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "customer",
		Aliases:           []string{"cust"},
		Short:             "Manage the customer pipeline",
		PersistentPreRunE: requireBroker(app),
	}

	cmd.AddCommand(
		newCustomerListCmd(app),
		newCustomerAddCmd(app),
		newCustomerUpdateCmd(app),
		newCustomerRemoveCmd(app),
		newCustomerStarCmd(app),
		newCustomerExportCmd(app),
	)

	return cmd
}

func newCustomerListCmd(app *App) *cobra.Command {
	var status, search string
	var important bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := app.Client.Customers().List(context.Background(), api.CustomerFilters{
				Status: status,
				Search: search,
			})
			if err != nil {
				return err
			}
			if important {
				filtered := customers[:0]
				for _, c := range customers {
					if c.IsImportant {
						filtered = append(filtered, c)
					}
				}
				customers = filtered
			}
			if len(customers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No customers found.")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatCustomerSummary(metrics.SummarizeCustomers(customers)))
			fmt.Fprintln(out, formatter.FormatCustomers(customers))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by pipeline status")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")
	cmd.Flags().BoolVar(&important, "important", false, "Only starred customers")

	return cmd
}

func newCustomerAddCmd(app *App) *cobra.Command {
	var name, phone, email, budget, interest, status, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Client.Customers().Create(context.Background(), domain.Customer{
				Name:     name,
				Phone:    phone,
				Email:    email,
				Budget:   budget,
				Interest: interest,
				Status:   domain.CustomerStatus(status),
				Notes:    notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added customer %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Customer name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&budget, "budget", "", "Budget range, e.g. \"₹2-3 Cr\"")
	cmd.Flags().StringVar(&interest, "interest", "", "What they are looking for")
	cmd.Flags().StringVar(&status, "status", string(domain.CustomerInterested), "Pipeline status")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newCustomerUpdateCmd(app *App) *cobra.Command {
	var status, budget, notes string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Client.Customers().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("status") {
				c.Status = domain.CustomerStatus(status)
			}
			if cmd.Flags().Changed("budget") {
				c.Budget = budget
			}
			if cmd.Flags().Changed("notes") {
				c.Notes = notes
			}
			updated, err := app.Client.Customers().Update(ctx, c.ID, *c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated customer %s\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New pipeline status")
	cmd.Flags().StringVar(&budget, "budget", "", "New budget range")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}

func newCustomerRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.Customers().Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func newCustomerStarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "star ID",
		Short: "Toggle the important flag on a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Client.Customers().ToggleImportant(context.Background(), args[0])
			if err != nil {
				return err
			}
			if c.IsImportant {
				fmt.Fprintf(cmd.OutOrStdout(), "Starred: %s\n", c.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unstarred: %s\n", c.Name)
			}
			return nil
		},
	}
}

func newCustomerExportCmd(app *App) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export customers to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := app.Client.Customers().List(context.Background(), api.CustomerFilters{})
			if err != nil {
				return err
			}
			f, err := export.Customers(customers)
			if err != nil {
				return err
			}
			path, err := f.Write(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d customers to %s\n", len(customers), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")

	return cmd
}
