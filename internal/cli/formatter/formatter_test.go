package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/rohanvaze/brokerdesk/internal/metrics"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "Area"},
		[][]string{
			{"Sunrise Villa", "Baner"},
			{"Flat", "Wakad"},
		},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Sunrise Villa")
	assert.Contains(t, lines[3], "Wakad")
}

func TestPadRight_TruncatesWithEllipsis(t *testing.T) {
	assert.Equal(t, "abc  ", PadRight("abc", 5))
	assert.Equal(t, "abcd…", PadRight("abcdefgh", 5))
}

func TestFormatProperties_Empty(t *testing.T) {
	out := FormatProperties(nil)
	assert.Contains(t, out, "No properties found.")
}

func TestFormatProperties_ShowsListingAndDealColumns(t *testing.T) {
	out := FormatProperties([]domain.Property{
		{Title: "Sunrise Villa", Type: domain.TypeVilla, Area: "Baner", Price: "₹2.50 Cr", Status: domain.ForSale, DealStatus: domain.DealClosed, IsHot: true},
	})
	assert.Contains(t, out, "Sunrise Villa")
	assert.Contains(t, out, "For Sale")
	assert.Contains(t, out, "Closed")
}

func TestFormatDeals_ResolvesLookupOverDenormalized(t *testing.T) {
	deals := []domain.Deal{
		{PropertyID: "p1", PropertyTitle: "Old Title", CustomerName: "Amit", Status: domain.DealFollowUp, DealValue: "₹80 Lakh"},
	}
	out := FormatDeals(deals, func(id string) (string, bool) {
		return "Fresh Title", true
	}, nil)
	assert.Contains(t, out, "Fresh Title")
	assert.NotContains(t, out, "Old Title")
}

func TestFormatNotifications_UnreadMarked(t *testing.T) {
	out := FormatNotifications([]domain.Notification{
		{Title: "Payment due", Message: "Plot A-12 installment", IsRead: false, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{Title: "Old news", Message: "done", IsRead: true, CreatedAt: time.Now().Add(-48 * time.Hour)},
	})
	assert.Contains(t, out, "Payment due")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "2d ago")
}

func TestFormatGrowth(t *testing.T) {
	assert.Contains(t, FormatGrowth(0.5), "50.0%")
	assert.Contains(t, FormatGrowth(-0.25), "25.0%")
	assert.Contains(t, FormatGrowth(0), "0.0%")
}

func TestFormatBrokerStats(t *testing.T) {
	out := FormatBrokerStats(&domain.BrokerStats{
		TotalProperties:  12,
		TotalCustomers:   30,
		ActiveDeals:      4,
		MonthlyBrokerage: "₹2.00 Lakh",
		TotalBrokerage:   "₹15.00 Lakh",
	})
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "₹2.00 Lakh")
}

func TestFormatBuilderStats_SoldPercentage(t *testing.T) {
	out := FormatBuilderStats(&domain.BuilderStats{
		TotalProjects: 2, TotalPlots: 40, SoldPlots: 10,
		MonthlyRevenue: "₹5.00 Lakh", TotalRevenue: "₹50.00 Lakh",
	})
	assert.Contains(t, out, "(25%)")
}

func TestFormatDealSummary(t *testing.T) {
	out := FormatDealSummary(metrics.DealSummary{Total: 5, Closed: 2, Active: 2, Cancelled: 1, TotalBrokerage: 300000})
	assert.Contains(t, out, "5 deals")
	assert.Contains(t, out, "2 closed")
	assert.Contains(t, out, "₹3.00 Lakh")
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "just now", RelativeTime(time.Now()))
	assert.Equal(t, "", RelativeTime(time.Time{}))
}
