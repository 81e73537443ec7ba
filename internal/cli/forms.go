package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

const formDateLayout = "2006-01-02"

// selectOptions converts string-backed enum values into huh options.
func selectOptions[T ~string](values []T) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(values))
	for _, v := range values {
		opts = append(opts, huh.NewOption(string(v), string(v)))
	}
	return opts
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(formDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}
	return &t, nil
}

// newPropertyFormView opens the create dialog when existing is nil and
// the edit dialog otherwise.
func newPropertyFormView(state *SharedState, existing *domain.Property) *dialogView {
	draft := domain.Property{
		Type:   domain.TypeApartment,
		Status: domain.ForSale,
	}
	title := "New Property"
	if existing != nil {
		draft = *existing
		title = "Edit Property"
	}
	status := string(draft.Status)
	ptype := string(draft.Type)

	buildForm := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Title").Value(&draft.Title).Validate(notBlank("title")),
				huh.NewSelect[string]().Title("Type").
					Options(selectOptions(domain.PropertyTypes)...).Value(&ptype),
				huh.NewSelect[string]().Title("Status").
					Options(selectOptions(domain.PropertyStatuses)...).Value(&status),
				huh.NewInput().Title("Price").Value(&draft.Price).Placeholder("₹85 Lakh"),
				huh.NewInput().Title("Area").Value(&draft.Area).Validate(notBlank("area")),
				huh.NewInput().Title("Address").Value(&draft.Address),
				huh.NewInput().Title("Size").Value(&draft.Size).Placeholder("1200 sq ft"),
				huh.NewInput().Title("Owner name").Value(&draft.Owner.Name),
				huh.NewInput().Title("Owner phone").Value(&draft.Owner.Phone),
			),
		).WithTheme(brokerdeskHuhTheme())
	}

	submit := func() (string, error) {
		draft.Type = domain.PropertyType(ptype)
		draft.Status = domain.PropertyStatus(status)
		ctx := context.Background()
		if existing == nil {
			created, err := state.App.Client.Properties().Create(ctx, draft)
			if err != nil {
				return "", err
			}
			return "Added property: " + created.Title, nil
		}
		updated, err := state.App.Client.Properties().Update(ctx, existing.ID, draft)
		if err != nil {
			return "", err
		}
		return "Updated property: " + updated.Title, nil
	}

	return newDialogView(state, title, buildForm, submit)
}

func newCustomerFormView(state *SharedState, existing *domain.Customer) *dialogView {
	draft := domain.Customer{Status: domain.CustomerInterested}
	title := "New Customer"
	if existing != nil {
		draft = *existing
		title = "Edit Customer"
	}
	status := string(draft.Status)

	buildForm := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Name").Value(&draft.Name).Validate(notBlank("name")),
				huh.NewInput().Title("Phone").Value(&draft.Phone).Validate(notBlank("phone")),
				huh.NewInput().Title("Email").Value(&draft.Email),
				huh.NewInput().Title("Budget").Value(&draft.Budget).Placeholder("₹2-3 Cr"),
				huh.NewInput().Title("Interest").Value(&draft.Interest).Placeholder("3BHK in Baner"),
				huh.NewSelect[string]().Title("Status").
					Options(selectOptions(domain.CustomerStatuses)...).Value(&status),
				huh.NewText().Title("Notes").Value(&draft.Notes).Lines(3),
			),
		).WithTheme(brokerdeskHuhTheme())
	}

	submit := func() (string, error) {
		draft.Status = domain.CustomerStatus(status)
		ctx := context.Background()
		if existing == nil {
			created, err := state.App.Client.Customers().Create(ctx, draft)
			if err != nil {
				return "", err
			}
			return "Added customer: " + created.Name, nil
		}
		updated, err := state.App.Client.Customers().Update(ctx, existing.ID, draft)
		if err != nil {
			return "", err
		}
		return "Updated customer: " + updated.Name, nil
	}

	return newDialogView(state, title, buildForm, submit)
}

func newDealFormView(state *SharedState, existing *domain.Deal) *dialogView {
	draft := domain.Deal{Status: domain.DealInterested}
	title := "New Deal"
	if existing != nil {
		draft = *existing
		title = "Edit Deal"
	}
	status := string(draft.Status)
	closeDate := ""
	if draft.CloseDate != nil {
		closeDate = draft.CloseDate.Format(formDateLayout)
	}

	buildForm := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Property").Value(&draft.PropertyTitle).Validate(notBlank("property")),
				huh.NewInput().Title("Customer").Value(&draft.CustomerName).Validate(notBlank("customer")),
				huh.NewSelect[string]().Title("Status").
					Options(selectOptions(domain.DealStatuses)...).Value(&status),
				huh.NewInput().Title("Deal value").Value(&draft.DealValue).Placeholder("₹1.5 Cr"),
				huh.NewInput().Title("Brokerage").Value(&draft.BrokerageAmount).Placeholder("₹3 Lakh"),
				huh.NewInput().Title("Close date").Value(&closeDate).Placeholder("YYYY-MM-DD"),
				huh.NewText().Title("Notes").Value(&draft.Notes).Lines(3),
			),
		).WithTheme(brokerdeskHuhTheme())
	}

	submit := func() (string, error) {
		draft.Status = domain.DealStatus(status)
		cd, err := optionalDate(closeDate)
		if err != nil {
			return "", err
		}
		draft.CloseDate = cd
		if err := draft.Validate(); err != nil {
			return "", err
		}
		ctx := context.Background()
		if existing == nil {
			created, err := state.App.Client.Deals().Create(ctx, draft)
			if err != nil {
				return "", err
			}
			return "Added deal: " + created.PropertyTitle, nil
		}
		updated, err := state.App.Client.Deals().Update(ctx, existing.ID, draft)
		if err != nil {
			return "", err
		}
		return "Updated deal: " + updated.PropertyTitle, nil
	}

	return newDialogView(state, title, buildForm, submit)
}

func newEventFormView(state *SharedState, existing *domain.Event) *dialogView {
	draft := domain.Event{
		Type:   domain.EventVisit,
		Status: domain.EventScheduled,
	}
	title := "New Event"
	if existing != nil {
		draft = *existing
		title = "Edit Event"
	}
	etype := string(draft.Type)
	date := ""
	if !draft.Date.IsZero() {
		date = draft.Date.Format(formDateLayout)
	}

	buildForm := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Title").Value(&draft.Title).Validate(notBlank("title")),
				huh.NewSelect[string]().Title("Type").
					Options(selectOptions(domain.EventTypes)...).Value(&etype),
				huh.NewInput().Title("Date").Value(&date).Placeholder("YYYY-MM-DD").Validate(notBlank("date")),
				huh.NewInput().Title("Time").Value(&draft.Time).Placeholder("10:30 AM"),
				huh.NewInput().Title("Customer").Value(&draft.Customer),
				huh.NewInput().Title("Phone").Value(&draft.Phone),
				huh.NewInput().Title("Location").Value(&draft.Location),
				huh.NewText().Title("Notes").Value(&draft.Notes).Lines(2),
			),
		).WithTheme(brokerdeskHuhTheme())
	}

	submit := func() (string, error) {
		draft.Type = domain.EventType(etype)
		d, err := time.Parse(formDateLayout, date)
		if err != nil {
			return "", fmt.Errorf("date must be YYYY-MM-DD")
		}
		draft.Date = d
		ctx := context.Background()
		if existing == nil {
			created, err := state.App.Client.Events().Create(ctx, draft)
			if err != nil {
				return "", err
			}
			return "Scheduled: " + created.Title, nil
		}
		updated, err := state.App.Client.Events().Update(ctx, existing.ID, draft)
		if err != nil {
			return "", err
		}
		return "Updated: " + updated.Title, nil
	}

	return newDialogView(state, title, buildForm, submit)
}

func newProjectFormView(state *SharedState, existing *domain.Project) *dialogView {
	draft := domain.Project{LayoutApproval: "Pending"}
	title := "New Project"
	if existing != nil {
		draft = *existing
		title = "Edit Project"
	}
	totalPlots := ""
	if draft.TotalPlots > 0 {
		totalPlots = strconv.Itoa(draft.TotalPlots)
	}

	buildForm := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Name").Value(&draft.Name).Validate(notBlank("name")),
				huh.NewInput().Title("Area").Value(&draft.Area).Validate(notBlank("area")),
				huh.NewInput().Title("Total plots").Value(&totalPlots).Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("total plots must be a positive number")
					}
					return nil
				}),
				huh.NewInput().Title("Price range").Value(&draft.PriceRange).Placeholder("₹40-60 Lakh"),
				huh.NewSelect[string]().Title("Layout approval").
					Options(
						huh.NewOption("Approved", "Approved"),
						huh.NewOption("Pending", "Pending"),
					).Value(&draft.LayoutApproval),
			),
		).WithTheme(brokerdeskHuhTheme())
	}

	submit := func() (string, error) {
		draft.TotalPlots, _ = strconv.Atoi(totalPlots)
		if err := draft.Validate(); err != nil {
			return "", err
		}
		ctx := context.Background()
		if existing == nil {
			created, err := state.App.Client.Projects().Create(ctx, draft)
			if err != nil {
				return "", err
			}
			return "Added project: " + created.Name, nil
		}
		updated, err := state.App.Client.Projects().Update(ctx, existing.ID, draft)
		if err != nil {
			return "", err
		}
		return "Updated project: " + updated.Name, nil
	}

	return newDialogView(state, title, buildForm, submit)
}

// newPlotFormView adds a plot to an existing project.
func newPlotFormView(state *SharedState, project domain.Project) *dialogView {
	draft := domain.Plot{Status: domain.PlotAvailable}
	status := string(draft.Status)
	buyerName := ""
	buyerPhone := ""

	buildForm := func() *huh.Form {
		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Plot number").Value(&draft.PlotNumber).Validate(notBlank("plot number")),
				huh.NewInput().Title("Size").Value(&draft.Size).Placeholder("1800 sq ft"),
				huh.NewInput().Title("Price").Value(&draft.Price).Placeholder("₹45 Lakh"),
				huh.NewInput().Title("Facing").Value(&draft.Facing),
				huh.NewSelect[string]().Title("Status").
					Options(selectOptions(domain.PlotStatuses)...).Value(&status),
				huh.NewInput().Title("Buyer name").Value(&buyerName).
					Description("required when reserved or sold"),
				huh.NewInput().Title("Buyer phone").Value(&buyerPhone),
			),
		).WithTheme(brokerdeskHuhTheme())
	}

	submit := func() (string, error) {
		draft.Status = domain.PlotStatus(status)
		if buyerName != "" {
			draft.Buyer = &domain.PlotBuyer{Name: buyerName, Phone: buyerPhone}
		} else {
			draft.Buyer = nil
		}
		if err := draft.Validate(); err != nil {
			return "", err
		}
		_, err := state.App.Client.Projects().AddPlot(context.Background(), project.ID, draft)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added plot %s to %s", draft.PlotNumber, project.Name), nil
	}

	return newDialogView(state, "New Plot · "+project.Name, buildForm, submit)
}
