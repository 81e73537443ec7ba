package query

import (
	"testing"

	"github.com/rohanvaze/brokerdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProperties() []domain.Property {
	return []domain.Property{
		{ID: "1", Title: "Luxury Villa in Baner", Address: "Baner, Pune", Area: "Baner", Type: domain.TypeVilla, Status: domain.ForSale},
		{ID: "2", Title: "2BHK Apartment", Address: "Baner Road, Pune", Area: "Baner", Type: domain.TypeApartment, Status: domain.ForRent},
		{ID: "3", Title: "Corner Plot", Address: "Wakad, Pune", Area: "Wakad", Type: domain.TypePlot, Status: domain.ForSale},
	}
}

func TestFilter_AreaFacet(t *testing.T) {
	// Three properties with areas {Baner, Baner, Wakad}: area=Baner
	// yields exactly the two Baner entities, order preserved.
	got := Filter(sampleProperties(), "", Facets{FacetArea: "Baner"}, Properties())
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
}

func TestFilter_SearchCaseInsensitive(t *testing.T) {
	got := Filter(sampleProperties(), "vILLa", Facets{}, Properties())
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_SearchMatchesAnySearchableField(t *testing.T) {
	// "wakad" appears only in the address/area of property 3.
	got := Filter(sampleProperties(), "wakad", nil, Properties())
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestFilter_EmptyTermAndAllFacetsIsIdentity(t *testing.T) {
	items := sampleProperties()
	got := Filter(items, "", Facets{FacetArea: All, FacetStatus: All, FacetType: All}, Properties())
	assert.Equal(t, items, got)
}

func TestFilter_EmptyCollection(t *testing.T) {
	got := Filter(nil, "villa", Facets{FacetArea: "Baner"}, Properties())
	assert.Empty(t, got)
}

func TestFilter_ResultIsSubset(t *testing.T) {
	items := sampleProperties()
	got := Filter(items, "pune", Facets{FacetStatus: string(domain.ForSale)}, Properties())
	byID := map[string]bool{}
	for _, p := range items {
		byID[p.ID] = true
	}
	for _, p := range got {
		assert.True(t, byID[p.ID], "filter must never invent entities")
	}
}

func TestFilter_FacetOrderCommutes(t *testing.T) {
	items := sampleProperties()
	d := Properties()

	// Applying both facets at once...
	combined := Filter(items, "pune", Facets{FacetArea: "Baner", FacetStatus: string(domain.ForSale)}, d)

	// ...equals sequential application in either order.
	ab := Filter(Filter(items, "pune", Facets{FacetArea: "Baner"}, d), "", Facets{FacetStatus: string(domain.ForSale)}, d)
	ba := Filter(Filter(items, "", Facets{FacetStatus: string(domain.ForSale)}, d), "pune", Facets{FacetArea: "Baner"}, d)

	assert.Equal(t, combined, ab)
	assert.Equal(t, combined, ba)
}

func TestFilter_Idempotent(t *testing.T) {
	items := sampleProperties()
	d := Properties()
	facets := Facets{FacetArea: "Baner"}

	once := Filter(items, "baner", facets, d)
	twice := Filter(once, "baner", facets, d)
	assert.Equal(t, once, twice)
}

func TestFilter_UnknownFacetConstrainsNothing(t *testing.T) {
	got := Filter(sampleProperties(), "", Facets{"bogus": "value"}, Properties())
	assert.Len(t, got, 3)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := sampleProperties()
	_ = Filter(items, "plot", Facets{FacetArea: "Wakad"}, Properties())
	assert.Equal(t, sampleProperties(), items)
}

func TestFilter_CustomerSearchByPhone(t *testing.T) {
	customers := []domain.Customer{
		{ID: "c1", Name: "Amit Kumar", Phone: "+91 98765 43211", Email: "amit@example.com"},
		{ID: "c2", Name: "Priya Singh", Phone: "+91 91234 56789", Email: "priya@example.com"},
	}
	got := Filter(customers, "98765", nil, Customers())
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestFilter_DealStatusFacet(t *testing.T) {
	deals := []domain.Deal{
		{ID: "d1", PropertyTitle: "Villa", CustomerName: "Amit", Status: domain.DealClosed},
		{ID: "d2", PropertyTitle: "Apartment", CustomerName: "Priya", Status: domain.DealFollowUp},
	}
	got := Filter(deals, "", Facets{FacetStatus: string(domain.DealClosed)}, Deals())
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
}
