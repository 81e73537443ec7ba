package domain

import (
	"fmt"
	"time"
)

type Deal struct {
	ID string `json:"id"`

	// Foreign identities used for lookup; the denormalized display
	// strings below are what the server stored at creation time and
	// remain the fallback when the referenced entity is gone.
	PropertyID string `json:"property_id"`
	CustomerID string `json:"customer_id"`

	PropertyTitle string `json:"property_title"`
	CustomerName  string `json:"customer_name"`

	Status          DealStatus `json:"status"`
	DealValue       string     `json:"deal_value"`
	BrokerageAmount string     `json:"brokerage_amount"`
	StartDate       time.Time  `json:"start_date"`
	CloseDate       *time.Time `json:"close_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Terminal reports whether the deal is in a state that carries a close date.
func (d *Deal) Terminal() bool {
	return TerminalDealStatuses[d.Status]
}

// Validate checks deal invariants before submission.
func (d *Deal) Validate() error {
	if d.PropertyTitle == "" && d.PropertyID == "" {
		return fmt.Errorf("deal must reference a property")
	}
	if d.CustomerName == "" && d.CustomerID == "" {
		return fmt.Errorf("deal must reference a customer")
	}
	if d.CloseDate != nil && !d.Terminal() {
		return fmt.Errorf("close date is only valid for terminal statuses, got %q", d.Status)
	}
	return nil
}

// DisplayProperty resolves the property display string, preferring a live
// lookup result over the denormalized copy.
func (d *Deal) DisplayProperty(lookup func(id string) (string, bool)) string {
	if d.PropertyID != "" && lookup != nil {
		if title, ok := lookup(d.PropertyID); ok {
			return title
		}
	}
	return d.PropertyTitle
}

// DisplayCustomer resolves the customer display string, preferring a live
// lookup result over the denormalized copy.
func (d *Deal) DisplayCustomer(lookup func(id string) (string, bool)) string {
	if d.CustomerID != "" && lookup != nil {
		if name, ok := lookup(d.CustomerID); ok {
			return name
		}
	}
	return d.CustomerName
}
