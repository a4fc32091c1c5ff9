package usecase

import (
	"context"
	"time"

	"github.com/iho/backoffice/internal/domain"
)

// OrderUseCase handles sales-order business logic. Orders never touch
// inventory; confirming one is a bookkeeping act only.
type OrderUseCase struct {
	orderRepo OrderRepository
	partyRepo PartyRepository
	idGen     IDGenerator
}

// NewOrderUseCase creates a new OrderUseCase.
func NewOrderUseCase(orderRepo OrderRepository, partyRepo PartyRepository, idGen IDGenerator) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		partyRepo: partyRepo,
		idGen:     idGen,
	}
}

// CreateOrderInput represents input for creating an order.
type CreateOrderInput struct {
	FirmID  string
	PartyID string
	Number  string
	Date    time.Time
	Items   []domain.OrderItem
	Note    string
}

// CreateOrder creates a draft order.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	party, err := uc.partyRepo.GetByID(ctx, input.PartyID)
	if err != nil {
		return nil, err
	}
	if party.FirmID != input.FirmID {
		return nil, domain.ErrPartyNotFound
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uc.idGen.Generate(),
		FirmID:    input.FirmID,
		PartyID:   input.PartyID,
		Number:    input.Number,
		Status:    domain.OrderStatusDraft,
		Date:      domain.DateOnly(input.Date),
		Items:     input.Items,
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder retrieves an order by ID.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.orderRepo.GetByID(ctx, id)
}

// ConfirmOrder transitions a draft order to confirmed.
func (uc *OrderUseCase) ConfirmOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.transition(ctx, id, domain.OrderStatusConfirmed)
}

// CancelOrder transitions a draft order to cancelled.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	return uc.transition(ctx, id, domain.OrderStatusCancelled)
}

func (uc *OrderUseCase) transition(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusDraft {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	if err := uc.orderRepo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = now
	return order, nil
}

// ListOrders lists a party's orders with pagination.
func (uc *OrderUseCase) ListOrders(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Order, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.orderRepo.ListByParty(ctx, firmID, partyID, limit, offset)
}
