package query

import "github.com/rohanvaze/brokerdesk/internal/domain"

// Facet names shared by the screens and their tests.
const (
	FacetArea   = "area"
	FacetType   = "type"
	FacetStatus = "status"
)

// Properties searches title, address and area; facets on area, type and
// listing status.
func Properties() Descriptor[domain.Property] {
	return Descriptor[domain.Property]{
		SearchFields: []func(domain.Property) string{
			func(p domain.Property) string { return p.Title },
			func(p domain.Property) string { return p.Address },
			func(p domain.Property) string { return p.Area },
		},
		FacetFields: map[string]func(domain.Property) string{
			FacetArea:   func(p domain.Property) string { return p.Area },
			FacetType:   func(p domain.Property) string { return string(p.Type) },
			FacetStatus: func(p domain.Property) string { return string(p.Status) },
		},
	}
}

// Customers searches name, phone and email; facets on pipeline status.
func Customers() Descriptor[domain.Customer] {
	return Descriptor[domain.Customer]{
		SearchFields: []func(domain.Customer) string{
			func(c domain.Customer) string { return c.Name },
			func(c domain.Customer) string { return c.Phone },
			func(c domain.Customer) string { return c.Email },
		},
		FacetFields: map[string]func(domain.Customer) string{
			FacetStatus: func(c domain.Customer) string { return string(c.Status) },
		},
	}
}

// Deals searches the property and customer display strings; facets on
// deal status.
func Deals() Descriptor[domain.Deal] {
	return Descriptor[domain.Deal]{
		SearchFields: []func(domain.Deal) string{
			func(d domain.Deal) string { return d.PropertyTitle },
			func(d domain.Deal) string { return d.CustomerName },
		},
		FacetFields: map[string]func(domain.Deal) string{
			FacetStatus: func(d domain.Deal) string { return string(d.Status) },
		},
	}
}

// Projects searches name and area; facets on area.
func Projects() Descriptor[domain.Project] {
	return Descriptor[domain.Project]{
		SearchFields: []func(domain.Project) string{
			func(p domain.Project) string { return p.Name },
			func(p domain.Project) string { return p.Area },
		},
		FacetFields: map[string]func(domain.Project) string{
			FacetArea: func(p domain.Project) string { return p.Area },
		},
	}
}

// Plots searches the plot number; facets on availability status.
func Plots() Descriptor[domain.Plot] {
	return Descriptor[domain.Plot]{
		SearchFields: []func(domain.Plot) string{
			func(p domain.Plot) string { return p.PlotNumber },
		},
		FacetFields: map[string]func(domain.Plot) string{
			FacetStatus: func(p domain.Plot) string { return string(p.Status) },
		},
	}
}

// Events searches title, customer and location; facets on type and
// completion status.
func Events() Descriptor[domain.Event] {
	return Descriptor[domain.Event]{
		SearchFields: []func(domain.Event) string{
			func(e domain.Event) string { return e.Title },
			func(e domain.Event) string { return e.Customer },
			func(e domain.Event) string { return e.Location },
		},
		FacetFields: map[string]func(domain.Event) string{
			FacetType:   func(e domain.Event) string { return string(e.Type) },
			FacetStatus: func(e domain.Event) string { return string(e.Status) },
		},
	}
}
