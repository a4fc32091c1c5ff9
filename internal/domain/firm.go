package domain

import "time"

// Firm represents a business entity that owns parties and movements.
type Firm struct {
	ID        string
	Name      string
	TaxNumber string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
