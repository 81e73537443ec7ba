package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/api"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

func newPropertyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "property",
		Aliases:           []string{"prop"},
		Short:             "Manage property listings",
		PersistentPreRunE: requireBroker(app),
	}

	cmd.AddCommand(
		newPropertyListCmd(app),
		newPropertyInspectCmd(app),
		newPropertyAddCmd(app),
		newPropertyUpdateCmd(app),
		newPropertyRemoveCmd(app),
		newPropertyHotCmd(app),
		newPropertyAreasCmd(app),
		newPropertyTypesCmd(app),
	)

	return cmd
}

func newPropertyListCmd(app *App) *cobra.Command {
	var area, ptype, status, search string
	var hot bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			properties, err := app.Client.Properties().List(context.Background(), api.PropertyFilters{
				Area:   area,
				Type:   ptype,
				Status: status,
				Search: search,
			})
			if err != nil {
				return err
			}
			if hot {
				filtered := properties[:0]
				for _, p := range properties {
					if p.IsHot {
						filtered = append(filtered, p)
					}
				}
				properties = filtered
			}
			if len(properties) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No properties found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProperties(properties))
			return nil
		},
	}

	cmd.Flags().StringVar(&area, "area", "", "Filter by area")
	cmd.Flags().StringVar(&ptype, "type", "", "Filter by property type")
	cmd.Flags().StringVar(&status, "status", "", "Filter by listing status")
	cmd.Flags().StringVar(&search, "search", "", "Free-text search")
	cmd.Flags().BoolVar(&hot, "hot", false, "Only hot listings")

	return cmd
}

func newPropertyInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show property details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Client.Properties().Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPropertyDetail(p))
			return nil
		},
	}
}

func newPropertyAddCmd(app *App) *cobra.Command {
	var title, ptype, status, price, size, area, address, facing, ownerName, ownerPhone string
	var bedrooms, bathrooms int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.Property{
				Title:     title,
				Type:      domain.PropertyType(ptype),
				Status:    domain.PropertyStatus(status),
				Price:     price,
				Size:      size,
				Area:      area,
				Address:   address,
				Facing:    facing,
				Bedrooms:  bedrooms,
				Bathrooms: bathrooms,
				Owner:     domain.PropertyOwner{Name: ownerName, Phone: ownerPhone},
			}
			if err := p.Validate(); err != nil {
				return err
			}
			created, err := app.Client.Properties().Create(context.Background(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added property %s (%s)\n", created.Title, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Listing title")
	cmd.Flags().StringVar(&ptype, "type", string(domain.TypeApartment), "Property type")
	cmd.Flags().StringVar(&status, "status", string(domain.ForSale), "Listing status")
	cmd.Flags().StringVar(&price, "price", "", "Asking price, e.g. \"₹85 Lakh\"")
	cmd.Flags().StringVar(&size, "size", "", "Size, e.g. \"1200 sq ft\"")
	cmd.Flags().StringVar(&area, "area", "", "Locality")
	cmd.Flags().StringVar(&address, "address", "", "Street address")
	cmd.Flags().StringVar(&facing, "facing", "", "Facing direction")
	cmd.Flags().StringVar(&ownerName, "owner", "", "Owner name")
	cmd.Flags().StringVar(&ownerPhone, "owner-phone", "", "Owner phone")
	cmd.Flags().IntVar(&bedrooms, "bedrooms", 0, "Bedroom count")
	cmd.Flags().IntVar(&bathrooms, "bathrooms", 0, "Bathroom count")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("area")

	return cmd
}

func newPropertyUpdateCmd(app *App) *cobra.Command {
	var price, status string
	var hot bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a property listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Client.Properties().Get(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("price") {
				p.Price = price
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.PropertyStatus(status)
			}
			if cmd.Flags().Changed("hot") {
				p.IsHot = hot
			}
			updated, err := app.Client.Properties().Update(ctx, p.ID, *p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated property %s\n", updated.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "New price")
	cmd.Flags().StringVar(&status, "status", "", "New listing status")
	cmd.Flags().BoolVar(&hot, "hot", false, "Hot listing flag")

	return cmd
}

func newPropertyRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a property listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.Properties().Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func newPropertyHotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hot ID",
		Short: "Toggle the hot flag on a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Client.Properties().ToggleHot(context.Background(), args[0])
			if err != nil {
				return err
			}
			if p.IsHot {
				fmt.Fprintf(cmd.OutOrStdout(), "Marked hot: %s\n", p.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unmarked hot: %s\n", p.Title)
			}
			return nil
		},
	}
}

func newPropertyAreasCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "areas",
		Short: "List known localities",
		RunE: func(cmd *cobra.Command, args []string) error {
			areas, err := app.Client.Properties().Areas(context.Background())
			if err != nil {
				return err
			}
			for _, a := range areas {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}
}

func newPropertyTypesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List property types in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := app.Client.Properties().Types(context.Background())
			if err != nil {
				return err
			}
			for _, t := range types {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}
