package domain

import "time"

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`

	// Budget is a free-text range such as "₹2-3 Cr"; no arithmetic is
	// performed on it.
	Budget   string `json:"budget"`
	Interest string `json:"interest"`

	Status       CustomerStatus `json:"status"`
	IsImportant  bool           `json:"is_important"`
	FollowUpDate *time.Time     `json:"follow_up_date,omitempty"`
	Notes        string         `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
