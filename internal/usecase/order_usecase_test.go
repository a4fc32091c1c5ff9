package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
	"github.com/iho/backoffice/internal/usecase/mocks"
)

func newOrderUseCase() (*usecase.OrderUseCase, *mocks.MockOrderRepository, *mocks.MockPartyRepository) {
	orderRepo := mocks.NewMockOrderRepository()
	partyRepo := mocks.NewMockPartyRepository()
	idGen := mocks.NewMockIDGenerator()
	uc := usecase.NewOrderUseCase(orderRepo, partyRepo, idGen)
	return uc, orderRepo, partyRepo
}

func orderItems() []domain.OrderItem {
	return []domain.OrderItem{
		{Description: "Widget", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(10)},
	}
}

func TestCreateOrder(t *testing.T) {
	uc, _, partyRepo := newOrderUseCase()
	partyRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Party, error) {
		return &domain.Party{ID: id, FirmID: "firm-1"}, nil
	}

	order, err := uc.CreateOrder(context.Background(), usecase.CreateOrderInput{
		FirmID:  "firm-1",
		PartyID: "party-1",
		Number:  "ORD-1",
		Date:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Items:   orderItems(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Status != domain.OrderStatusDraft {
		t.Errorf("expected draft status, got %s", order.Status)
	}
	if order.ID == "" {
		t.Errorf("expected generated ID")
	}
	if !order.Total().Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected total 30, got %s", order.Total())
	}
}

func TestCreateOrderPartyFirmMismatch(t *testing.T) {
	uc, _, partyRepo := newOrderUseCase()
	partyRepo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Party, error) {
		return &domain.Party{ID: id, FirmID: "other-firm"}, nil
	}

	_, err := uc.CreateOrder(context.Background(), usecase.CreateOrderInput{
		FirmID:  "firm-1",
		PartyID: "party-1",
		Number:  "ORD-1",
		Date:    time.Now(),
		Items:   orderItems(),
	})
	if err != domain.ErrPartyNotFound {
		t.Fatalf("expected ErrPartyNotFound, got %v", err)
	}
}

func TestConfirmOrder(t *testing.T) {
	uc, orderRepo, _ := newOrderUseCase()
	orderRepo.Create(context.Background(), &domain.Order{
		ID:     "order-1",
		FirmID: "firm-1",
		Status: domain.OrderStatusDraft,
	})

	order, err := uc.ConfirmOrder(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderStatusConfirmed {
		t.Errorf("expected confirmed status, got %s", order.Status)
	}
}

func TestConfirmOrderNotDraft(t *testing.T) {
	uc, orderRepo, _ := newOrderUseCase()
	orderRepo.Create(context.Background(), &domain.Order{
		ID:     "order-1",
		Status: domain.OrderStatusCancelled,
	})

	if _, err := uc.ConfirmOrder(context.Background(), "order-1"); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCancelOrder(t *testing.T) {
	uc, orderRepo, _ := newOrderUseCase()
	orderRepo.Create(context.Background(), &domain.Order{
		ID:     "order-1",
		Status: domain.OrderStatusDraft,
	})

	order, err := uc.CancelOrder(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderStatusCancelled {
		t.Errorf("expected cancelled status, got %s", order.Status)
	}
}
