package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// FormatProperties renders the property list as a table.
func FormatProperties(properties []domain.Property) string {
	if len(properties) == 0 {
		return Dim("No properties found.") + "\n"
	}
	rows := make([][]string, 0, len(properties))
	for _, p := range properties {
		rows = append(rows, []string{
			HotBadge(p.IsHot),
			p.Title,
			string(p.Type),
			p.Area,
			Money(p.Price),
			PropertyStatusPill(p.Status),
			DealStatusPill(p.DealStatus),
		})
	}
	return RenderTable(
		[]string{"", "Title", "Type", "Area", "Price", "Listing", "Deal"},
		rows,
	)
}

// FormatPropertyDetail renders one property with owner contact.
func FormatPropertyDetail(p *domain.Property) string {
	var b strings.Builder
	b.WriteString(Header(p.Title) + "\n")
	write := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s %s\n", Dim(PadRight(label, 12)), value)
		}
	}
	write("Type", string(p.Type))
	write("Status", PropertyStatusPill(p.Status))
	write("Price", Money(p.Price))
	write("Size", p.Size)
	write("Facing", p.Facing)
	write("Area", p.Area)
	write("Address", p.Address)
	if p.Bedrooms > 0 || p.Bathrooms > 0 {
		write("Layout", fmt.Sprintf("%d bed, %d bath", p.Bedrooms, p.Bathrooms))
	}
	var traits []string
	if p.IsHot {
		traits = append(traits, "hot")
	}
	if p.HasGarden {
		traits = append(traits, "garden")
	}
	if p.IsCorner {
		traits = append(traits, "corner")
	}
	if p.VastuCompliant {
		traits = append(traits, "vastu")
	}
	write("Traits", strings.Join(traits, ", "))
	write("Owner", fmt.Sprintf("%s (%s)", p.Owner.Name, p.Owner.Phone))
	write("Deal", DealStatusPill(p.DealStatus))
	if p.BrokerageAmount != "" {
		write("Brokerage", Money(p.BrokerageAmount))
	}
	return b.String()
}

// FormatCustomers renders the customer list as a table.
func FormatCustomers(customers []domain.Customer) string {
	if len(customers) == 0 {
		return Dim("No customers found.") + "\n"
	}
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		followUp := Dim("—")
		if c.FollowUpDate != nil {
			followUp = c.FollowUpDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			ImportantBadge(c.IsImportant),
			c.Name,
			c.Phone,
			c.Budget,
			c.Interest,
			CustomerStatusPill(c.Status),
			followUp,
		})
	}
	return RenderTable(
		[]string{"", "Name", "Phone", "Budget", "Interest", "Status", "Follow-up"},
		rows,
	)
}

// FormatDeals renders the deal list. lookupProperty and lookupCustomer
// resolve live display names; pass nil to use the denormalized copies.
func FormatDeals(deals []domain.Deal, lookupProperty, lookupCustomer func(id string) (string, bool)) string {
	if len(deals) == 0 {
		return Dim("No deals found.") + "\n"
	}
	rows := make([][]string, 0, len(deals))
	for i := range deals {
		d := &deals[i]
		closeDate := Dim("—")
		if d.CloseDate != nil {
			closeDate = d.CloseDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			d.DisplayProperty(lookupProperty),
			d.DisplayCustomer(lookupCustomer),
			DealStatusPill(d.Status),
			Money(d.DealValue),
			Money(d.BrokerageAmount),
			closeDate,
		})
	}
	return RenderTable(
		[]string{"Property", "Customer", "Status", "Value", "Brokerage", "Closed"},
		rows,
	)
}

// FormatProjects renders the builder project list.
func FormatProjects(projects []domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects found.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.Name,
			p.Area,
			fmt.Sprintf("%d", p.TotalPlots),
			StyleGreen.Render(fmt.Sprintf("%d", p.SoldPlots)),
			fmt.Sprintf("%d", p.AvailablePlots),
			p.PriceRange,
			p.LayoutApproval,
		})
	}
	return RenderTable(
		[]string{"Project", "Area", "Plots", "Sold", "Available", "Price Range", "Approval"},
		rows,
	)
}

// FormatPlots renders a project's plot inventory.
func FormatPlots(plots []domain.Plot) string {
	if len(plots) == 0 {
		return Dim("No plots found.") + "\n"
	}
	rows := make([][]string, 0, len(plots))
	for _, plot := range plots {
		buyer := Dim("—")
		if plot.Buyer != nil {
			buyer = plot.Buyer.Name
		}
		status := string(plot.Status)
		switch plot.Status {
		case domain.PlotSold:
			status = StyleGreen.Render(status)
		case domain.PlotReserved:
			status = StyleYellow.Render(status)
		}
		rows = append(rows, []string{
			plot.PlotNumber,
			plot.Size,
			Money(plot.Price),
			status,
			buyer,
		})
	}
	return RenderTable([]string{"Plot", "Size", "Price", "Status", "Buyer"}, rows)
}

// FormatEvents renders the calendar event list.
func FormatEvents(events []domain.Event) string {
	if len(events) == 0 {
		return Dim("No events found.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		status := string(e.Status)
		switch e.Status {
		case domain.EventCompleted:
			status = StyleGreen.Render(status)
		case domain.EventCancelled:
			status = StyleRed.Render(status)
		}
		rows = append(rows, []string{
			e.Date.Format("Mon Jan 02"),
			e.Time,
			e.Title,
			string(e.Type),
			e.Customer,
			e.Location,
			status,
		})
	}
	return RenderTable(
		[]string{"Date", "Time", "Title", "Type", "Customer", "Location", "Status"},
		rows,
	)
}

// FormatNotifications renders notifications, unread ones in bold.
func FormatNotifications(notifications []domain.Notification) string {
	if len(notifications) == 0 {
		return Dim("No notifications.") + "\n"
	}
	var b strings.Builder
	for _, n := range notifications {
		marker := Dim("·")
		title := Dim(n.Title)
		if !n.IsRead {
			marker = StyleBlue.Render("●")
			title = Bold(n.Title)
		}
		fmt.Fprintf(&b, "%s %s %s\n  %s\n", marker, title, Dim(RelativeTime(n.CreatedAt)), n.Message)
	}
	return b.String()
}

// RelativeTime renders a compact "3h ago" style timestamp.
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
