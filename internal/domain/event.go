package domain

import "time"

type Event struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Type     EventType   `json:"type"`
	Date     time.Time   `json:"date"`
	Time     string      `json:"time"` // "10:30 AM" display form, kept as entered
	Customer string      `json:"customer"`
	Phone    string      `json:"phone"`
	Location string      `json:"location"`
	Notes    string      `json:"notes,omitempty"`
	Status   EventStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	RelatedID string           `json:"related_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
