package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FirmResponse represents a firm in API responses.
type FirmResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxNumber string    `json:"tax_number,omitempty"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FirmFromDomain converts a domain firm to a response.
func FirmFromDomain(f *domain.Firm) *FirmResponse {
	return &FirmResponse{
		ID:        f.ID,
		Name:      f.Name,
		TaxNumber: f.TaxNumber,
		Address:   f.Address,
		Phone:     f.Phone,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FirmsFromDomain converts domain firms to responses.
func FirmsFromDomain(firms []*domain.Firm) []*FirmResponse {
	result := make([]*FirmResponse, len(firms))
	for i, f := range firms {
		result[i] = FirmFromDomain(f)
	}
	return result
}

// PartyResponse represents a party in API responses.
type PartyResponse struct {
	ID             string          `json:"id"`
	FirmID         string          `json:"firm_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PartyFromDomain converts a domain party to a response.
func PartyFromDomain(p *domain.Party) *PartyResponse {
	return &PartyResponse{
		ID:             p.ID,
		FirmID:         p.FirmID,
		Name:           p.Name,
		Type:           string(p.Type),
		Phone:          p.Phone,
		Email:          p.Email,
		Notes:          p.Notes,
		OpeningBalance: p.OpeningBalance,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// PartiesFromDomain converts domain parties to responses.
func PartiesFromDomain(parties []*domain.Party) []*PartyResponse {
	result := make([]*PartyResponse, len(parties))
	for i, p := range parties {
		result[i] = PartyFromDomain(p)
	}
	return result
}

// MovementResponse represents a movement in API responses.
type MovementResponse struct {
	ID            string          `json:"id"`
	FirmID        string          `json:"firm_id"`
	PartyID       string          `json:"party_id"`
	Kind          string          `json:"kind"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	BillNumber    string          `json:"bill_number,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	return &MovementResponse{
		ID:            m.ID,
		FirmID:        m.FirmID,
		PartyID:       m.PartyID,
		Kind:          string(m.Kind),
		Status:        string(m.Status),
		Amount:        m.Amount,
		Date:          m.Date.Format(domain.DateFormat),
		BillNumber:    m.BillNumber,
		PaymentMethod: m.PaymentMethod,
		Note:          m.Note,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// ChequeResponse represents a cheque in API responses.
type ChequeResponse struct {
	ID         string          `json:"id"`
	FirmID     string          `json:"firm_id"`
	PartyID    string          `json:"party_id"`
	Number     string          `json:"number"`
	Bank       string          `json:"bank,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    string          `json:"due_date"`
	Status     string          `json:"status"`
	MovementID string          `json:"movement_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ChequeFromDomain converts a domain cheque to a response.
func ChequeFromDomain(c *domain.Cheque) *ChequeResponse {
	return &ChequeResponse{
		ID:         c.ID,
		FirmID:     c.FirmID,
		PartyID:    c.PartyID,
		Number:     c.Number,
		Bank:       c.Bank,
		Amount:     c.Amount,
		DueDate:    c.DueDate.Format(domain.DateFormat),
		Status:     string(c.Status),
		MovementID: c.MovementID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ChequesFromDomain converts domain cheques to responses.
func ChequesFromDomain(cheques []*domain.Cheque) []*ChequeResponse {
	result := make([]*ChequeResponse, len(cheques))
	for i, c := range cheques {
		result[i] = ChequeFromDomain(c)
	}
	return result
}

// OrderItemResponse is one line of an order response.
type OrderItemResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID        string              `json:"id"`
	FirmID    string              `json:"firm_id"`
	PartyID   string              `json:"party_id"`
	Number    string              `json:"number"`
	Status    string              `json:"status"`
	Date      string              `json:"date"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	Note      string              `json:"note,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// OrderFromDomain converts a domain order to a response.
func OrderFromDomain(o *domain.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
		}
	}

	return &OrderResponse{
		ID:        o.ID,
		FirmID:    o.FirmID,
		PartyID:   o.PartyID,
		Number:    o.Number,
		Status:    string(o.Status),
		Date:      o.Date.Format(domain.DateFormat),
		Items:     items,
		Total:     o.Total(),
		Note:      o.Note,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// OrdersFromDomain converts domain orders to responses.
func OrdersFromDomain(orders []*domain.Order) []*OrderResponse {
	result := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderFromDomain(o)
	}
	return result
}

// BillResponse represents a bill in API responses.
type BillResponse struct {
	ID        string          `json:"id"`
	FirmID    string          `json:"firm_id"`
	PartyID   string          `json:"party_id"`
	Number    string          `json:"number"`
	Amount    decimal.Decimal `json:"amount"`
	IssueDate string          `json:"issue_date"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BillFromDomain converts a domain bill to a response.
func BillFromDomain(b *domain.Bill) *BillResponse {
	return &BillResponse{
		ID:        b.ID,
		FirmID:    b.FirmID,
		PartyID:   b.PartyID,
		Number:    b.Number,
		Amount:    b.Amount,
		IssueDate: b.IssueDate.Format(domain.DateFormat),
		Note:      b.Note,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BillsFromDomain converts domain bills to responses.
func BillsFromDomain(bills []*domain.Bill) []*BillResponse {
	result := make([]*BillResponse, len(bills))
	for i, b := range bills {
		result[i] = BillFromDomain(b)
	}
	return result
}

// LedgerEntryResponse is one statement row.
type LedgerEntryResponse struct {
	MovementID  string          `json:"movement_id,omitempty"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// StatementSummaryResponse carries statement totals.
type StatementSummaryResponse struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	EntryCount     int             `json:"entry_count"`
	DateFrom       string          `json:"date_from"`
	DateTo         string          `json:"date_to"`
}

// StatementResponse represents a full account statement.
type StatementResponse struct {
	Entries []LedgerEntryResponse    `json:"entries"`
	Summary StatementSummaryResponse `json:"summary"`
}

// StatementFromDomain converts a domain statement to a response.
func StatementFromDomain(s *domain.Statement) *StatementResponse {
	entries := make([]LedgerEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = LedgerEntryResponse{
			MovementID:  e.MovementID,
			Date:        e.Date.Format(domain.DateFormat),
			Description: e.Description,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Balance:     e.Balance,
		}
	}

	return &StatementResponse{
		Entries: entries,
		Summary: StatementSummaryResponse{
			OpeningBalance: s.Summary.OpeningBalance,
			ClosingBalance: s.Summary.ClosingBalance,
			TotalDebit:     s.Summary.TotalDebit,
			TotalCredit:    s.Summary.TotalCredit,
			EntryCount:     s.Summary.EntryCount,
			DateFrom:       s.Summary.DateFrom.Format(domain.DateFormat),
			DateTo:         s.Summary.DateTo.Format(domain.DateFormat),
		},
	}
}

// ToDomain converts a statement response back into the domain form. Used
// by API clients that feed statements into domain-level code.
func (r *StatementResponse) ToDomain() (*domain.Statement, error) {
	entries := make([]domain.LedgerEntry, len(r.Entries))
	for i, e := range r.Entries {
		date, err := domain.ParseDate(e.Date)
		if err != nil {
			return nil, err
		}
		entries[i] = domain.LedgerEntry{
			MovementID:  e.MovementID,
			Date:        date,
			Description: e.Description,
			Debit:       e.Debit,
			Credit:      e.Credit,
			Balance:     e.Balance,
		}
	}

	dateFrom, err := domain.ParseDate(r.Summary.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := domain.ParseDate(r.Summary.DateTo)
	if err != nil {
		return nil, err
	}

	return &domain.Statement{
		Entries: entries,
		Summary: domain.StatementSummary{
			OpeningBalance: r.Summary.OpeningBalance,
			ClosingBalance: r.Summary.ClosingBalance,
			TotalDebit:     r.Summary.TotalDebit,
			TotalCredit:    r.Summary.TotalCredit,
			EntryCount:     r.Summary.EntryCount,
			DateFrom:       dateFrom,
			DateTo:         dateTo,
		},
	}, nil
}
