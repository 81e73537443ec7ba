package metrics

import (
	"time"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// BrokerageSummary is the set of figures the brokerage analysis screen
// displays over the monthly series.
type BrokerageSummary struct {
	TotalEarnings  domain.Money
	AvgMonthly     domain.Money
	BestMonth      domain.BrokerageMonth
	HasBestMonth   bool
	GrowthRate     float64 // fraction, e.g. 0.5 for +50%
	ClosedDeals    int
	ClosedValue    domain.Money
}

// SummarizeBrokerage derives the analytics figures from the monthly
// series and the full deal collection.
func SummarizeBrokerage(series []domain.BrokerageMonth, deals []domain.Deal) BrokerageSummary {
	var s BrokerageSummary

	var total float64
	amounts := make([]float64, len(series))
	for i, m := range series {
		total += m.Amount
		amounts[i] = m.Amount
	}
	s.TotalEarnings = domain.Money(total)
	if len(series) > 0 {
		s.AvgMonthly = domain.Money(total / float64(len(series)))
	}
	s.BestMonth, s.HasBestMonth = MaxBy(series, func(m domain.BrokerageMonth) float64 { return m.Amount })
	s.GrowthRate = GrowthRate(amounts)

	closed := make([]domain.Deal, 0, len(deals))
	for _, d := range deals {
		if d.Status == domain.DealClosed {
			closed = append(closed, d)
		}
	}
	s.ClosedDeals = len(closed)
	s.ClosedValue = SumMoney(closed, func(d domain.Deal) string { return d.DealValue })
	return s
}

// dealActive reports whether a deal is still in flight.
func dealActive(d domain.Deal) bool {
	return d.Status != domain.DealClosed && d.Status != domain.DealCancelled
}

// DealSummary is the header strip of the deal history screen.
type DealSummary struct {
	Total          int
	Closed         int
	Active         int
	Cancelled      int
	TotalBrokerage domain.Money
}

func SummarizeDeals(deals []domain.Deal) DealSummary {
	closed := CountWhere(deals, func(d domain.Deal) bool { return d.Status == domain.DealClosed })
	cancelled := CountWhere(deals, func(d domain.Deal) bool { return d.Status == domain.DealCancelled })
	return DealSummary{
		Total:     len(deals),
		Closed:    closed,
		Active:    CountWhere(deals, dealActive),
		Cancelled: cancelled,
		TotalBrokerage: SumMoney(deals, func(d domain.Deal) string {
			if d.Status != domain.DealClosed {
				return ""
			}
			return d.BrokerageAmount
		}),
	}
}

// activePipelineStatuses are the customer states counted as "active" on
// the customer screen's summary cards.
var activePipelineStatuses = map[domain.CustomerStatus]bool{
	domain.CustomerInterested: true,
	domain.CustomerCall:       true,
	domain.CustomerVisit:      true,
	domain.CustomerVisitDone:  true,
	domain.CustomerFollowUp:   true,
}

// CustomerSummary is the header strip of the customer screen.
type CustomerSummary struct {
	Total     int
	Active    int
	Closed    int
	Important int
}

func SummarizeCustomers(customers []domain.Customer) CustomerSummary {
	return CustomerSummary{
		Total:     len(customers),
		Active:    CountWhere(customers, func(c domain.Customer) bool { return activePipelineStatuses[c.Status] }),
		Closed:    CountWhere(customers, func(c domain.Customer) bool { return c.Status == domain.CustomerClosed }),
		Important: CountWhere(customers, func(c domain.Customer) bool { return c.IsImportant }),
	}
}

// BrokerSnapshot derives broker dashboard stats locally, mirroring what
// the /dashboard/stats endpoint computes, for screens that already hold
// the collections.
func BrokerSnapshot(properties []domain.Property, customers []domain.Customer, deals []domain.Deal, now time.Time) domain.BrokerStats {
	var monthly, total domain.Money
	for _, d := range deals {
		if d.Status != domain.DealClosed {
			continue
		}
		amount := domain.ParseMoneyOrZero(d.BrokerageAmount)
		total += amount
		if d.CloseDate != nil &&
			d.CloseDate.Year() == now.Year() && d.CloseDate.Month() == now.Month() {
			monthly += amount
		}
	}
	return domain.BrokerStats{
		TotalProperties:  len(properties),
		TotalCustomers:   len(customers),
		ActiveDeals:      CountWhere(deals, dealActive),
		MonthlyBrokerage: monthly.Format(),
		TotalBrokerage:   total.Format(),
	}
}

// BuilderSnapshot derives builder dashboard stats from the project
// collection. Revenue counts paid plot payments; monthly revenue counts
// those dated in the month containing now.
func BuilderSnapshot(projects []domain.Project, now time.Time) domain.BuilderStats {
	var totalPlots, soldPlots int
	var revenue, monthly domain.Money
	for _, p := range projects {
		totalPlots += p.TotalPlots
		soldPlots += p.SoldPlots
		for _, plot := range p.Plots {
			for _, pay := range plot.Payments {
				if pay.Status != domain.PaymentPaid {
					continue
				}
				amount := domain.ParseMoneyOrZero(pay.Amount)
				revenue += amount
				if pay.Date.Year() == now.Year() && pay.Date.Month() == now.Month() {
					monthly += amount
				}
			}
		}
	}
	return domain.BuilderStats{
		TotalProjects:  len(projects),
		TotalPlots:     totalPlots,
		SoldPlots:      soldPlots,
		MonthlyRevenue: monthly.Format(),
		TotalRevenue:   revenue.Format(),
	}
}
