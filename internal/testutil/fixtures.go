package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// Property options
type PropertyOption func(*domain.Property)

func WithArea(area string) PropertyOption {
	return func(p *domain.Property) {
		p.Area = area
	}
}

func WithPropertyType(t domain.PropertyType) PropertyOption {
	return func(p *domain.Property) {
		p.Type = t
	}
}

func WithPropertyStatus(s domain.PropertyStatus) PropertyOption {
	return func(p *domain.Property) {
		p.Status = s
	}
}

func WithHot() PropertyOption {
	return func(p *domain.Property) {
		p.IsHot = true
	}
}

func WithPrice(price string) PropertyOption {
	return func(p *domain.Property) {
		p.Price = price
	}
}

func NewTestProperty(title string, opts ...PropertyOption) *domain.Property {
	now := time.Now().UTC()
	p := &domain.Property{
		ID:      uuid.New().String(),
		Title:   title,
		Type:    domain.TypeApartment,
		Status:  domain.ForSale,
		Area:    "Baner",
		Address: "12 Test Road, Pune",
		Price:   "₹85 Lakh",
		Owner: domain.PropertyOwner{
			Name:  "Test Owner",
			Phone: "9800000000",
		},
		Bedrooms:  2,
		Bathrooms: 2,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Customer options
type CustomerOption func(*domain.Customer)

func WithCustomerStatus(s domain.CustomerStatus) CustomerOption {
	return func(c *domain.Customer) {
		c.Status = s
	}
}

func WithImportant() CustomerOption {
	return func(c *domain.Customer) {
		c.IsImportant = true
	}
}

func WithBudget(budget string) CustomerOption {
	return func(c *domain.Customer) {
		c.Budget = budget
	}
}

func NewTestCustomer(name string, opts ...CustomerOption) *domain.Customer {
	now := time.Now().UTC()
	c := &domain.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     "9876543210",
		Email:     "test@example.com",
		Budget:    "₹50-80 Lakh",
		Interest:  "2BHK Flat",
		Status:    domain.CustomerInterested,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deal options
type DealOption func(*domain.Deal)

func WithDealStatus(s domain.DealStatus) DealOption {
	return func(d *domain.Deal) {
		d.Status = s
	}
}

func WithDealValue(value string) DealOption {
	return func(d *domain.Deal) {
		d.DealValue = value
	}
}

func WithBrokerage(amount string) DealOption {
	return func(d *domain.Deal) {
		d.BrokerageAmount = amount
	}
}

func WithCloseDate(t time.Time) DealOption {
	return func(d *domain.Deal) {
		d.CloseDate = &t
	}
}

func NewTestDeal(propertyTitle, customerName string, opts ...DealOption) *domain.Deal {
	now := time.Now().UTC()
	d := &domain.Deal{
		ID:            uuid.New().String(),
		PropertyTitle: propertyTitle,
		CustomerName:  customerName,
		Status:        domain.DealInterested,
		DealValue:     "₹75 Lakh",
		StartDate:     now.AddDate(0, -1, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Event options
type EventOption func(*domain.Event)

func WithEventType(t domain.EventType) EventOption {
	return func(e *domain.Event) {
		e.Type = t
	}
}

func WithEventDate(d time.Time) EventOption {
	return func(e *domain.Event) {
		e.Date = d
	}
}

func NewTestEvent(title string, opts ...EventOption) *domain.Event {
	now := time.Now().UTC()
	e := &domain.Event{
		ID:        uuid.New().String(),
		Title:     title,
		Type:      domain.EventVisit,
		Date:      now.AddDate(0, 0, 1),
		Time:      "10:30 AM",
		Customer:  "Test Customer",
		Phone:     "9876543210",
		Location:  "Baner",
		Status:    domain.EventScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestProject builds a project with one plot per sold/available split.
func NewTestProject(name string, total, sold int) *domain.Project {
	now := time.Now().UTC()
	return &domain.Project{
		ID:             uuid.New().String(),
		Name:           name,
		Area:           "Wagholi",
		TotalPlots:     total,
		SoldPlots:      sold,
		AvailablePlots: total - sold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func NewTestUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:        uuid.New().String(),
		Email:     "test@example.com",
		FullName:  "Test User",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}
