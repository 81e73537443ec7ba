package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyValidate_NegativeBedrooms(t *testing.T) {
	p := &Property{Title: "Villa", Bedrooms: -1, Owner: PropertyOwner{Name: "Raj"}}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bedrooms")
}

func TestPropertyValidate_StatusAndDealStatusIndependent(t *testing.T) {
	// A closed sale on a still-listed property is valid state.
	p := &Property{
		Title:      "Villa in Baner",
		Status:     ForSale,
		DealStatus: DealClosed,
		Owner:      PropertyOwner{Name: "Raj Sharma", Phone: "+91 98765 43210"},
	}
	assert.NoError(t, p.Validate())
}

func TestProjectValidate_PlotCountsExceedTotal(t *testing.T) {
	p := &Project{Name: "Green Acres", TotalPlots: 10, SoldPlots: 5, AvailablePlots: 4, ReservedPlots: 2}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeding total")
}

func TestProjectValidate_CountsWithinTotal(t *testing.T) {
	p := &Project{Name: "Green Acres", TotalPlots: 10, SoldPlots: 5, AvailablePlots: 3, ReservedPlots: 2}
	assert.NoError(t, p.Validate())
}

func TestPlotValidate_BuyerRequiredWhenSold(t *testing.T) {
	plot := &Plot{PlotNumber: "A-12", Status: PlotSold}
	require.Error(t, plot.Validate())

	plot.Buyer = &PlotBuyer{Name: "Amit Kumar", Phone: "+91 98765 43211", GovtID: "ABCDE1234F"}
	assert.NoError(t, plot.Validate())
}

func TestPlotValidate_NoBuyerWhenAvailable(t *testing.T) {
	plot := &Plot{
		PlotNumber: "B-04",
		Status:     PlotAvailable,
		Buyer:      &PlotBuyer{Name: "Amit Kumar", Phone: "1", GovtID: "X"},
	}
	require.Error(t, plot.Validate())
}

func TestDealValidate_CloseDateNeedsTerminalStatus(t *testing.T) {
	now := time.Now()
	d := &Deal{PropertyTitle: "Villa", CustomerName: "Amit", Status: DealFollowUp, CloseDate: &now}
	require.Error(t, d.Validate())

	d.Status = DealClosed
	assert.NoError(t, d.Validate())
}

func TestDealDisplay_PrefersLookupOverDenormalized(t *testing.T) {
	d := &Deal{PropertyID: "p1", PropertyTitle: "Stale Title", CustomerID: "c1", CustomerName: "Stale Name"}

	title := d.DisplayProperty(func(id string) (string, bool) {
		if id == "p1" {
			return "Luxury Villa in Baner", true
		}
		return "", false
	})
	assert.Equal(t, "Luxury Villa in Baner", title)

	// Vanished referent falls back to the denormalized copy.
	name := d.DisplayCustomer(func(string) (string, bool) { return "", false })
	assert.Equal(t, "Stale Name", name)
}

func TestFindPlot(t *testing.T) {
	p := &Project{Plots: []Plot{{PlotNumber: "A-1"}, {PlotNumber: "A-2"}}}
	plot, ok := p.FindPlot("A-2")
	require.True(t, ok)
	assert.Equal(t, "A-2", plot.PlotNumber)

	_, ok = p.FindPlot("Z-9")
	assert.False(t, ok)
}
