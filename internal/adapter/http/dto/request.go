package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation and wraps failures as domain
// validation errors.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// parseDate parses a required calendar date field.
func parseDate(field, value string) (time.Time, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrValidation, field)
	}
	return d, nil
}

// CreateFirmRequest represents a request to create a firm.
type CreateFirmRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	TaxNumber string `json:"tax_number" validate:"max=50"`
	Address   string `json:"address" validate:"max=500"`
	Phone     string `json:"phone" validate:"max=50"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateFirmRequest) ToUseCaseInput() usecase.CreateFirmInput {
	return usecase.CreateFirmInput{
		Name:      r.Name,
		TaxNumber: r.TaxNumber,
		Address:   r.Address,
		Phone:     r.Phone,
	}
}

// UpdateFirmRequest represents a request to update a firm.
type UpdateFirmRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	TaxNumber string `json:"tax_number" validate:"max=50"`
	Address   string `json:"address" validate:"max=500"`
	Phone     string `json:"phone" validate:"max=50"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateFirmRequest) ToUseCaseInput(id string) usecase.UpdateFirmInput {
	return usecase.UpdateFirmInput{
		ID:        id,
		Name:      r.Name,
		TaxNumber: r.TaxNumber,
		Address:   r.Address,
		Phone:     r.Phone,
	}
}

// CreatePartyRequest represents a request to create a party.
type CreatePartyRequest struct {
	FirmID         string          `json:"firm_id" validate:"required"`
	Name           string          `json:"name" validate:"required,max=200"`
	Type           string          `json:"type" validate:"required,oneof=customer supplier"`
	Phone          string          `json:"phone" validate:"max=50"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Notes          string          `json:"notes" validate:"max=2000"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePartyRequest) ToUseCaseInput() usecase.CreatePartyInput {
	return usecase.CreatePartyInput{
		FirmID:         r.FirmID,
		Name:           r.Name,
		Type:           domain.PartyType(r.Type),
		Phone:          r.Phone,
		Email:          r.Email,
		Notes:          r.Notes,
		OpeningBalance: r.OpeningBalance,
	}
}

// UpdatePartyRequest represents a request to update a party.
type UpdatePartyRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	Phone          string          `json:"phone" validate:"max=50"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Notes          string          `json:"notes" validate:"max=2000"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePartyRequest) ToUseCaseInput(id string) usecase.UpdatePartyInput {
	return usecase.UpdatePartyInput{
		ID:             id,
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		Notes:          r.Notes,
		OpeningBalance: r.OpeningBalance,
	}
}

// CreateMovementRequest represents a request to record a movement.
type CreateMovementRequest struct {
	FirmID        string          `json:"firm_id" validate:"required"`
	PartyID       string          `json:"party_id" validate:"required"`
	Kind          string          `json:"kind" validate:"required,oneof=sale collection debit_note credit_note opening_balance"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Date          string          `json:"date" validate:"required"`
	BillNumber    string          `json:"bill_number" validate:"max=100"`
	PaymentMethod string          `json:"payment_method" validate:"max=100"`
	Note          string          `json:"note" validate:"max=2000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMovementRequest) ToUseCaseInput() (usecase.CreateMovementInput, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return usecase.CreateMovementInput{}, err
	}

	return usecase.CreateMovementInput{
		FirmID:        r.FirmID,
		PartyID:       r.PartyID,
		Kind:          domain.MovementKind(r.Kind),
		Amount:        r.Amount,
		Date:          date,
		BillNumber:    r.BillNumber,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// UpdateMovementRequest represents a request to edit a pending movement.
type UpdateMovementRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Date          string          `json:"date" validate:"required"`
	BillNumber    string          `json:"bill_number" validate:"max=100"`
	PaymentMethod string          `json:"payment_method" validate:"max=100"`
	Note          string          `json:"note" validate:"max=2000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateMovementRequest) ToUseCaseInput(id string) (usecase.UpdateMovementInput, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return usecase.UpdateMovementInput{}, err
	}

	return usecase.UpdateMovementInput{
		ID:            id,
		Amount:        r.Amount,
		Date:          date,
		BillNumber:    r.BillNumber,
		PaymentMethod: r.PaymentMethod,
		Note:          r.Note,
	}, nil
}

// CreateChequeRequest represents a request to record a received cheque.
type CreateChequeRequest struct {
	FirmID  string          `json:"firm_id" validate:"required"`
	PartyID string          `json:"party_id" validate:"required"`
	Number  string          `json:"number" validate:"required,max=100"`
	Bank    string          `json:"bank" validate:"max=200"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	DueDate string          `json:"due_date" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateChequeRequest) ToUseCaseInput() (usecase.CreateChequeInput, error) {
	dueDate, err := parseDate("due_date", r.DueDate)
	if err != nil {
		return usecase.CreateChequeInput{}, err
	}

	return usecase.CreateChequeInput{
		FirmID:  r.FirmID,
		PartyID: r.PartyID,
		Number:  r.Number,
		Bank:    r.Bank,
		Amount:  r.Amount,
		DueDate: dueDate,
	}, nil
}

// OrderItemRequest is one line of an order request.
type OrderItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a request to create an order.
type CreateOrderRequest struct {
	FirmID  string             `json:"firm_id" validate:"required"`
	PartyID string             `json:"party_id" validate:"required"`
	Number  string             `json:"number" validate:"required,max=100"`
	Date    string             `json:"date" validate:"required"`
	Items   []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Note    string             `json:"note" validate:"max=2000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateOrderRequest) ToUseCaseInput() (usecase.CreateOrderInput, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return usecase.CreateOrderInput{}, err
	}

	items := make([]domain.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.OrderItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return usecase.CreateOrderInput{
		FirmID:  r.FirmID,
		PartyID: r.PartyID,
		Number:  r.Number,
		Date:    date,
		Items:   items,
		Note:    r.Note,
	}, nil
}

// CreateBillRequest represents a request to create a bill.
type CreateBillRequest struct {
	FirmID    string          `json:"firm_id" validate:"required"`
	PartyID   string          `json:"party_id" validate:"required"`
	Number    string          `json:"number" validate:"required,max=100"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	IssueDate string          `json:"issue_date" validate:"required"`
	Note      string          `json:"note" validate:"max=2000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBillRequest) ToUseCaseInput() (usecase.CreateBillInput, error) {
	issueDate, err := parseDate("issue_date", r.IssueDate)
	if err != nil {
		return usecase.CreateBillInput{}, err
	}

	return usecase.CreateBillInput{
		FirmID:    r.FirmID,
		PartyID:   r.PartyID,
		Number:    r.Number,
		Amount:    r.Amount,
		IssueDate: issueDate,
		Note:      r.Note,
	}, nil
}
