package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// BrokerStats is the dashboard summary returned for broker accounts.
type BrokerStats struct {
	TotalProperties  int    `json:"total_properties"`
	TotalCustomers   int    `json:"total_customers"`
	ActiveDeals      int    `json:"active_deals"`
	MonthlyBrokerage string `json:"monthly_brokerage"`
	TotalBrokerage   string `json:"total_brokerage"`
}

// BuilderStats is the dashboard summary returned for builder accounts.
type BuilderStats struct {
	TotalProjects  int    `json:"total_projects"`
	TotalPlots     int    `json:"total_plots"`
	SoldPlots      int    `json:"sold_plots"`
	MonthlyRevenue string `json:"monthly_revenue"`
	TotalRevenue   string `json:"total_revenue"`
}

// BrokerageMonth is one point of the brokerage analytics series.
type BrokerageMonth struct {
	Month      string  `json:"month"`
	Amount     float64 `json:"amount"`
	DealsCount int     `json:"deals_count"`
}
