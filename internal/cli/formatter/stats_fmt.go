package formatter

import (
	"fmt"
	"strings"

	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/metrics"
)

// FormatBrokerStats renders the broker dashboard summary.
func FormatBrokerStats(s *domain.BrokerStats) string {
	var b strings.Builder
	b.WriteString(Header("Dashboard") + "\n")
	card := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(PadRight(label, 20)), value)
	}
	card("Properties", fmt.Sprintf("%d", s.TotalProperties))
	card("Customers", fmt.Sprintf("%d", s.TotalCustomers))
	card("Active Deals", StyleYellow.Render(fmt.Sprintf("%d", s.ActiveDeals)))
	card("Monthly Brokerage", Money(s.MonthlyBrokerage))
	card("Total Brokerage", Money(s.TotalBrokerage))
	return b.String()
}

// FormatBuilderStats renders the builder dashboard summary.
func FormatBuilderStats(s *domain.BuilderStats) string {
	var b strings.Builder
	b.WriteString(Header("Dashboard") + "\n")
	card := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(PadRight(label, 20)), value)
	}
	card("Projects", fmt.Sprintf("%d", s.TotalProjects))
	card("Total Plots", fmt.Sprintf("%d", s.TotalPlots))
	sold := fmt.Sprintf("%d", s.SoldPlots)
	if s.TotalPlots > 0 {
		pct := metrics.PercentageOfTotal(s.SoldPlots, s.TotalPlots)
		sold = fmt.Sprintf("%s %s", sold, Dim(fmt.Sprintf("(%.0f%%)", pct)))
	}
	card("Sold Plots", StyleGreen.Render(sold))
	card("Monthly Revenue", Money(s.MonthlyRevenue))
	card("Total Revenue", Money(s.TotalRevenue))
	return b.String()
}

// FormatBrokerageSummary renders the analytics screen figures.
func FormatBrokerageSummary(s metrics.BrokerageSummary, series []domain.BrokerageMonth) string {
	var b strings.Builder
	b.WriteString(Header("Brokerage Analytics") + "\n")
	card := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(PadRight(label, 20)), value)
	}
	card("Total Earnings", Money(s.TotalEarnings.Format()))
	card("Avg Monthly", Money(s.AvgMonthly.Format()))
	if s.HasBestMonth {
		card("Best Month", fmt.Sprintf("%s %s", s.BestMonth.Month, Money(domain.Money(s.BestMonth.Amount).Format())))
	}
	card("Growth", FormatGrowth(s.GrowthRate))
	card("Closed Deals", fmt.Sprintf("%d %s", s.ClosedDeals, Dim("worth "+s.ClosedValue.Format())))

	if len(series) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(series))
		for _, m := range series {
			rows = append(rows, []string{
				m.Month,
				Money(domain.Money(m.Amount).Format()),
				fmt.Sprintf("%d", m.DealsCount),
			})
		}
		b.WriteString(RenderTable([]string{"Month", "Brokerage", "Deals"}, rows))
	}
	return b.String()
}

// FormatGrowth renders a signed percentage with direction color.
func FormatGrowth(rate float64) string {
	pct := rate * 100
	switch {
	case pct > 0:
		return StyleGreen.Render(fmt.Sprintf("▲ %.1f%%", pct))
	case pct < 0:
		return StyleRed.Render(fmt.Sprintf("▼ %.1f%%", -pct))
	default:
		return Dim("0.0%")
	}
}

// FormatDealSummary renders the deal history header strip.
func FormatDealSummary(s metrics.DealSummary) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s\n",
		Dim(fmt.Sprintf("%d deals", s.Total)),
		StyleGreen.Render(fmt.Sprintf("%d closed", s.Closed)),
		StyleYellow.Render(fmt.Sprintf("%d active", s.Active)),
		StyleRed.Render(fmt.Sprintf("%d cancelled", s.Cancelled)),
		Money(s.TotalBrokerage.Format()),
	)
}

// FormatCustomerSummary renders the customer screen header strip.
func FormatCustomerSummary(s metrics.CustomerSummary) string {
	return fmt.Sprintf("%s  %s  %s  %s\n",
		Dim(fmt.Sprintf("%d customers", s.Total)),
		StyleBlue.Render(fmt.Sprintf("%d active", s.Active)),
		StyleGreen.Render(fmt.Sprintf("%d closed", s.Closed)),
		StyleYellow.Render(fmt.Sprintf("%d starred", s.Important)),
	)
}
