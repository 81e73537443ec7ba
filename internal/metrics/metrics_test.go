package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

func TestCountByStatus_SumsToCollectionSize(t *testing.T) {
	customers := []domain.Customer{
		{Status: domain.CustomerInterested},
		{Status: domain.CustomerInterested},
		{Status: domain.CustomerClosed},
		{Status: domain.CustomerFollowUp},
	}

	counts := CountByStatus(customers, func(c domain.Customer) string { return string(c.Status) })

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, len(customers), total)
	assert.Equal(t, 2, counts[string(domain.CustomerInterested)])
	assert.Equal(t, 1, counts[string(domain.CustomerClosed)])
}

func TestSumMoney_MalformedAmountsCountAsZero(t *testing.T) {
	deals := []domain.Deal{
		{DealValue: "₹50 Lakh"},
		{DealValue: "not a number"},
		{DealValue: "₹1.5 Cr"},
		{DealValue: ""},
	}

	got := SumMoney(deals, func(d domain.Deal) string { return d.DealValue })
	assert.Equal(t, domain.Money(20_000_000), got)
}

func TestPercentageOfTotal(t *testing.T) {
	assert.Equal(t, 25.0, PercentageOfTotal(1, 4))
	assert.Equal(t, 0.0, PercentageOfTotal(0, 0), "empty collection yields zero, not NaN")
	assert.Equal(t, 0.0, PercentageOfTotal(5, 0))
}

func TestGrowthRate(t *testing.T) {
	assert.Equal(t, 0.5, GrowthRate([]float64{100, 150}))
	assert.Equal(t, 0.0, GrowthRate([]float64{0, 150}), "zero baseline reports zero growth")
	assert.Equal(t, 0.0, GrowthRate([]float64{100}))
	assert.Equal(t, 0.0, GrowthRate(nil))
	assert.Equal(t, -0.5, GrowthRate([]float64{200, 120, 100}))
}

func TestMaxBy_FirstOccurrenceWinsTies(t *testing.T) {
	series := []domain.BrokerageMonth{
		{Month: "Jan", Amount: 50000},
		{Month: "Feb", Amount: 90000},
		{Month: "Mar", Amount: 90000},
	}

	best, ok := MaxBy(series, func(m domain.BrokerageMonth) float64 { return m.Amount })
	require.True(t, ok)
	assert.Equal(t, "Feb", best.Month)
}

func TestMaxBy_Empty(t *testing.T) {
	_, ok := MaxBy(nil, func(m domain.BrokerageMonth) float64 { return m.Amount })
	assert.False(t, ok)
}

func TestSummarizeBrokerage(t *testing.T) {
	series := []domain.BrokerageMonth{
		{Month: "Jan", Amount: 100000},
		{Month: "Feb", Amount: 200000},
		{Month: "Mar", Amount: 150000},
	}
	deals := []domain.Deal{
		{Status: domain.DealClosed, DealValue: "₹50 Lakh"},
		{Status: domain.DealClosed, DealValue: "₹30 Lakh"},
		{Status: domain.DealFollowUp, DealValue: "₹1 Cr"},
	}

	s := SummarizeBrokerage(series, deals)

	assert.Equal(t, domain.Money(450000), s.TotalEarnings)
	assert.Equal(t, domain.Money(150000), s.AvgMonthly)
	require.True(t, s.HasBestMonth)
	assert.Equal(t, "Feb", s.BestMonth.Month)
	assert.Equal(t, 0.5, s.GrowthRate)
	assert.Equal(t, 2, s.ClosedDeals)
	assert.Equal(t, domain.Money(8_000_000), s.ClosedValue, "open pipeline is excluded from closed value")
}

func TestSummarizeDeals_BrokerageCountsClosedOnly(t *testing.T) {
	deals := []domain.Deal{
		{Status: domain.DealClosed, BrokerageAmount: "₹1 Lakh"},
		{Status: domain.DealClosed, BrokerageAmount: "₹2 Lakh"},
		{Status: domain.DealFollowUp, BrokerageAmount: "₹5 Lakh"},
		{Status: domain.DealCancelled, BrokerageAmount: "₹3 Lakh"},
	}

	s := SummarizeDeals(deals)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Closed)
	assert.Equal(t, 1, s.Active)
	assert.Equal(t, 1, s.Cancelled)
	assert.Equal(t, domain.Money(300000), s.TotalBrokerage)
}

func TestSummarizeCustomers(t *testing.T) {
	customers := []domain.Customer{
		{Status: domain.CustomerInterested, IsImportant: true},
		{Status: domain.CustomerFollowUp},
		{Status: domain.CustomerClosed, IsImportant: true},
		{Status: domain.CustomerDealLost},
	}

	s := SummarizeCustomers(customers)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 1, s.Closed)
	assert.Equal(t, 2, s.Important)
}

func TestBrokerSnapshot_MonthlySplitsOnCloseDate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)

	deals := []domain.Deal{
		{Status: domain.DealClosed, BrokerageAmount: "₹2 Lakh", CloseDate: &thisMonth},
		{Status: domain.DealClosed, BrokerageAmount: "₹3 Lakh", CloseDate: &lastMonth},
		{Status: domain.DealVisitDone, BrokerageAmount: "₹9 Lakh"},
	}

	stats := BrokerSnapshot(
		[]domain.Property{{}, {}},
		[]domain.Customer{{}},
		deals,
		now,
	)

	assert.Equal(t, 2, stats.TotalProperties)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 1, stats.ActiveDeals)
	assert.Equal(t, "₹2.00 Lakh", stats.MonthlyBrokerage)
	assert.Equal(t, "₹5.00 Lakh", stats.TotalBrokerage)
}

func TestBuilderSnapshot(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	projects := []domain.Project{
		{
			TotalPlots: 40, SoldPlots: 10,
			Plots: []domain.Plot{
				{Payments: []domain.Payment{
					{Status: domain.PaymentPaid, Amount: "₹5 Lakh", Date: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
					{Status: domain.PaymentPaid, Amount: "₹5 Lakh", Date: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)},
					{Status: domain.PaymentPending, Amount: "₹20 Lakh", Date: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)},
				}},
			},
		},
		{TotalPlots: 20, SoldPlots: 5},
	}

	stats := BuilderSnapshot(projects, now)

	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 60, stats.TotalPlots)
	assert.Equal(t, 15, stats.SoldPlots)
	assert.Equal(t, "₹5.00 Lakh", stats.MonthlyRevenue)
	assert.Equal(t, "₹10.00 Lakh", stats.TotalRevenue)
}
