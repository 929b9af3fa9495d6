package domain

import "time"

// Customer is a shop client record identified by a unique order number.
type Customer struct {
	ID           string        `json:"id"`
	OrderNumber  string        `json:"order_number"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email,omitempty"`
	Address      string        `json:"address,omitempty"`
	Measurements []Measurement `json:"measurements"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
