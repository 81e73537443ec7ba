package domain

import (
	"fmt"
	"time"
)

// PropertyOwner is embedded contact detail, not a separate entity.
type PropertyOwner struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type Property struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Type           PropertyType   `json:"type"`
	Status         PropertyStatus `json:"status"`
	Price          string         `json:"price"`
	Size           string         `json:"size"`
	Facing         string         `json:"facing"`
	Address        string         `json:"address"`
	Area           string         `json:"area"`
	Bedrooms       int            `json:"bedrooms"`
	Bathrooms      int            `json:"bathrooms"`
	IsHot          bool           `json:"is_hot"`
	HasGarden      bool           `json:"has_garden"`
	IsCorner       bool           `json:"is_corner"`
	VastuCompliant bool           `json:"vastu_compliant"`
	Owner          PropertyOwner  `json:"owner"`
	Images         []string       `json:"images,omitempty"`
	NextFollowUp   *time.Time     `json:"next_follow_up,omitempty"`

	// DealStatus tracks the sale pipeline independently of the listing
	// status: a listing can stay "For Sale" with a Closed deal behind it.
	DealStatus      DealStatus `json:"deal_status"`
	BrokerageAmount string     `json:"brokerage_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the field invariants enforced client-side before a
// create or update is sent to the server.
func (p *Property) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Bedrooms < 0 {
		return fmt.Errorf("bedrooms must not be negative, got %d", p.Bedrooms)
	}
	if p.Bathrooms < 0 {
		return fmt.Errorf("bathrooms must not be negative, got %d", p.Bathrooms)
	}
	if p.Owner.Name == "" {
		return fmt.Errorf("owner name is required")
	}
	return nil
}
