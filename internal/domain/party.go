package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyType distinguishes customers from suppliers. It has no effect on
// statement arithmetic; it only drives list filtering in the back office.
type PartyType string

const (
	PartyTypeCustomer PartyType = "customer"
	PartyTypeSupplier PartyType = "supplier"
)

var validPartyTypes = map[PartyType]bool{
	PartyTypeCustomer: true,
	PartyTypeSupplier: true,
}

// IsValid checks if the party type is known.
func (t PartyType) IsValid() bool {
	return validPartyTypes[t]
}

// Party is a trading partner scoped to a firm. Parties are referenced by
// movements, cheques, orders and bills but never own them.
type Party struct {
	ID     string
	FirmID string
	Name   string
	Type   PartyType
	Phone  string
	Email  string
	Notes  string

	// OpeningBalance is the stored balance carried from before the party was
	// entered into the system. It is one of two opening-balance sources; an
	// opening_balance movement, when present, takes precedence.
	OpeningBalance decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
