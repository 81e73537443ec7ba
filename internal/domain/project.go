package domain

import (
	"fmt"
	"time"
)

type Payment struct {
	Date   time.Time     `json:"date"`
	Amount string        `json:"amount"`
	Type   string        `json:"type"` // Booking, Token, Installment, ...
	Status PaymentStatus `json:"status"`
}

type PlotBuyer struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	GovtID string `json:"govt_id"`
	Broker string `json:"broker,omitempty"`
}

type Plot struct {
	PlotNumber string     `json:"plot_number"`
	Size       string     `json:"size"`
	Price      string     `json:"price"`
	Facing     string     `json:"facing"`
	Status     PlotStatus `json:"status"`
	HasGarden  bool       `json:"has_garden"`
	IsCorner   bool       `json:"is_corner"`
	IsHot      bool       `json:"is_hot"`
	Buyer      *PlotBuyer `json:"buyer,omitempty"`
	Payments   []Payment  `json:"payments,omitempty"`
}

// Validate checks that a buyer record is present exactly when the plot is
// no longer available.
func (p *Plot) Validate() error {
	if p.PlotNumber == "" {
		return fmt.Errorf("plot number is required")
	}
	if p.Status == PlotAvailable && p.Buyer != nil {
		return fmt.Errorf("plot %s is available but has a buyer record", p.PlotNumber)
	}
	if p.Status != PlotAvailable && p.Buyer == nil {
		return fmt.Errorf("plot %s is %s but has no buyer record", p.PlotNumber, p.Status)
	}
	return nil
}

type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Area           string    `json:"area"`
	TotalPlots     int       `json:"total_plots"`
	SoldPlots      int       `json:"sold_plots"`
	AvailablePlots int       `json:"available_plots"`
	ReservedPlots  int       `json:"reserved_plots"`
	PriceRange     string    `json:"price_range"`
	LayoutApproval string    `json:"layout_approval"` // Approved or Pending
	CompletionDate time.Time `json:"completion_date"`
	Plots          []Plot    `json:"plots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the plot count invariant: sold + available + reserved
// must not exceed the total.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.TotalPlots < 0 || p.SoldPlots < 0 || p.AvailablePlots < 0 || p.ReservedPlots < 0 {
		return fmt.Errorf("plot counts must not be negative")
	}
	if sum := p.SoldPlots + p.AvailablePlots + p.ReservedPlots; sum > p.TotalPlots {
		return fmt.Errorf("plot counts add up to %d, exceeding total of %d", sum, p.TotalPlots)
	}
	return nil
}

// FindPlot returns the plot with the given number, which is unique within
// a project.
func (p *Project) FindPlot(plotNumber string) (*Plot, bool) {
	for i := range p.Plots {
		if p.Plots[i].PlotNumber == plotNumber {
			return &p.Plots[i], true
		}
	}
	return nil, false
}
