package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/backoffice/internal/domain"
	"github.com/iho/backoffice/internal/usecase"
)

// MockFirmRepository is a mock implementation of FirmRepository.
type MockFirmRepository struct {
	mu    sync.RWMutex
	firms map[string]*domain.Firm

	CreateFunc  func(ctx context.Context, firm *domain.Firm) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Firm, error)
	UpdateFunc  func(ctx context.Context, firm *domain.Firm) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Firm, error)
}

func NewMockFirmRepository() *MockFirmRepository {
	return &MockFirmRepository{firms: make(map[string]*domain.Firm)}
}

func (m *MockFirmRepository) Create(ctx context.Context, firm *domain.Firm) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, firm)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.firms[firm.ID] = firm
	return nil
}

func (m *MockFirmRepository) GetByID(ctx context.Context, id string) (*domain.Firm, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	firm, ok := m.firms[id]
	if !ok {
		return nil, domain.ErrFirmNotFound
	}
	return firm, nil
}

func (m *MockFirmRepository) Update(ctx context.Context, firm *domain.Firm) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, firm)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.firms[firm.ID] = firm
	return nil
}

func (m *MockFirmRepository) List(ctx context.Context, limit, offset int) ([]*domain.Firm, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	firms := make([]*domain.Firm, 0, len(m.firms))
	for _, f := range m.firms {
		firms = append(firms, f)
	}
	return firms, nil
}

// MockPartyRepository is a mock implementation of PartyRepository.
type MockPartyRepository struct {
	mu      sync.RWMutex
	parties map[string]*domain.Party

	CreateFunc     func(ctx context.Context, party *domain.Party) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Party, error)
	UpdateFunc     func(ctx context.Context, party *domain.Party) error
	DeleteFunc     func(ctx context.Context, id string) error
	ListByFirmFunc func(ctx context.Context, firmID string, partyType domain.PartyType, limit, offset int) ([]*domain.Party, error)
}

func NewMockPartyRepository() *MockPartyRepository {
	return &MockPartyRepository{parties: make(map[string]*domain.Party)}
}

func (m *MockPartyRepository) Create(ctx context.Context, party *domain.Party) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, party)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parties[party.ID] = party
	return nil
}

func (m *MockPartyRepository) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	party, ok := m.parties[id]
	if !ok {
		return nil, domain.ErrPartyNotFound
	}
	return party, nil
}

func (m *MockPartyRepository) Update(ctx context.Context, party *domain.Party) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, party)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parties[party.ID] = party
	return nil
}

func (m *MockPartyRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.parties, id)
	return nil
}

func (m *MockPartyRepository) ListByFirm(ctx context.Context, firmID string, partyType domain.PartyType, limit, offset int) ([]*domain.Party, error) {
	if m.ListByFirmFunc != nil {
		return m.ListByFirmFunc(ctx, firmID, partyType, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	parties := make([]*domain.Party, 0)
	for _, p := range m.parties {
		if p.FirmID == firmID {
			parties = append(parties, p)
		}
	}
	return parties, nil
}

// MockMovementRepository is a mock implementation of MovementRepository.
type MockMovementRepository struct {
	mu        sync.RWMutex
	movements map[string]*domain.Movement

	CreateFunc              func(ctx context.Context, movement *domain.Movement) error
	CreateTxFunc            func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Movement, error)
	UpdateFunc              func(ctx context.Context, movement *domain.Movement) error
	UpdateStatusFunc        func(ctx context.Context, id string, status domain.MovementStatus, updatedAt time.Time) error
	ListFunc                func(ctx context.Context, filter usecase.MovementFilter) ([]*domain.Movement, error)
	ListApprovedFunc        func(ctx context.Context, firmID, partyID string, dateFrom, dateTo time.Time) ([]*domain.Movement, error)
	FindEarliestOpeningFunc func(ctx context.Context, firmID, partyID string) (*domain.Movement, error)
	FindEarliestDateFunc    func(ctx context.Context, firmID, partyID string) (*time.Time, error)
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{movements: make(map[string]*domain.Movement)}
}

func (m *MockMovementRepository) Create(ctx context.Context, movement *domain.Movement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockMovementRepository) CreateTx(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, movement)
	}
	return m.Create(ctx, movement)
}

func (m *MockMovementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	movement, ok := m.movements[id]
	if !ok {
		return nil, domain.ErrMovementNotFound
	}
	return movement, nil
}

func (m *MockMovementRepository) Update(ctx context.Context, movement *domain.Movement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movements[movement.ID] = movement
	return nil
}

func (m *MockMovementRepository) UpdateStatus(ctx context.Context, id string, status domain.MovementStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	movement, ok := m.movements[id]
	if !ok {
		return domain.ErrMovementNotFound
	}
	movement.Status = status
	movement.UpdatedAt = updatedAt
	return nil
}

func (m *MockMovementRepository) List(ctx context.Context, filter usecase.MovementFilter) ([]*domain.Movement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	movements := make([]*domain.Movement, 0)
	for _, mv := range m.movements {
		movements = append(movements, mv)
	}
	return movements, nil
}

func (m *MockMovementRepository) ListApproved(ctx context.Context, firmID, partyID string, dateFrom, dateTo time.Time) ([]*domain.Movement, error) {
	if m.ListApprovedFunc != nil {
		return m.ListApprovedFunc(ctx, firmID, partyID, dateFrom, dateTo)
	}
	return nil, nil
}

func (m *MockMovementRepository) FindEarliestOpening(ctx context.Context, firmID, partyID string) (*domain.Movement, error) {
	if m.FindEarliestOpeningFunc != nil {
		return m.FindEarliestOpeningFunc(ctx, firmID, partyID)
	}
	return nil, nil
}

func (m *MockMovementRepository) FindEarliestDate(ctx context.Context, firmID, partyID string) (*time.Time, error) {
	if m.FindEarliestDateFunc != nil {
		return m.FindEarliestDateFunc(ctx, firmID, partyID)
	}
	return nil, nil
}

// MockChequeRepository is a mock implementation of ChequeRepository.
type MockChequeRepository struct {
	mu      sync.RWMutex
	cheques map[string]*domain.Cheque

	CreateFunc      func(ctx context.Context, cheque *domain.Cheque) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Cheque, error)
	UpdateFunc      func(ctx context.Context, cheque *domain.Cheque) error
	UpdateTxFunc    func(ctx context.Context, tx usecase.Transaction, cheque *domain.Cheque) error
	ListByPartyFunc func(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Cheque, error)
}

func NewMockChequeRepository() *MockChequeRepository {
	return &MockChequeRepository{cheques: make(map[string]*domain.Cheque)}
}

func (m *MockChequeRepository) Create(ctx context.Context, cheque *domain.Cheque) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, cheque)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cheques[cheque.ID] = cheque
	return nil
}

func (m *MockChequeRepository) GetByID(ctx context.Context, id string) (*domain.Cheque, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cheque, ok := m.cheques[id]
	if !ok {
		return nil, domain.ErrChequeNotFound
	}
	return cheque, nil
}

func (m *MockChequeRepository) Update(ctx context.Context, cheque *domain.Cheque) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, cheque)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cheques[cheque.ID] = cheque
	return nil
}

func (m *MockChequeRepository) UpdateTx(ctx context.Context, tx usecase.Transaction, cheque *domain.Cheque) error {
	if m.UpdateTxFunc != nil {
		return m.UpdateTxFunc(ctx, tx, cheque)
	}
	return m.Update(ctx, cheque)
}

func (m *MockChequeRepository) ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Cheque, error) {
	if m.ListByPartyFunc != nil {
		return m.ListByPartyFunc(ctx, firmID, partyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cheques := make([]*domain.Cheque, 0)
	for _, c := range m.cheques {
		if c.FirmID == firmID && c.PartyID == partyID {
			cheques = append(cheques, c)
		}
	}
	return cheques, nil
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	CreateFunc       func(ctx context.Context, order *domain.Order) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error
	ListByPartyFunc  func(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Order, error)
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]*domain.Order)}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	return nil
}

func (m *MockOrderRepository) ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Order, error) {
	if m.ListByPartyFunc != nil {
		return m.ListByPartyFunc(ctx, firmID, partyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if o.FirmID == firmID && o.PartyID == partyID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// MockBillRepository is a mock implementation of BillRepository.
type MockBillRepository struct {
	mu    sync.RWMutex
	bills map[string]*domain.Bill

	CreateFunc      func(ctx context.Context, bill *domain.Bill) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.Bill, error)
	DeleteFunc      func(ctx context.Context, id string) error
	ListByPartyFunc func(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Bill, error)
}

func NewMockBillRepository() *MockBillRepository {
	return &MockBillRepository{bills: make(map[string]*domain.Bill)}
}

func (m *MockBillRepository) Create(ctx context.Context, bill *domain.Bill) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[bill.ID] = bill
	return nil
}

func (m *MockBillRepository) GetByID(ctx context.Context, id string) (*domain.Bill, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	bill, ok := m.bills[id]
	if !ok {
		return nil, domain.ErrBillNotFound
	}
	return bill, nil
}

func (m *MockBillRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bills, id)
	return nil
}

func (m *MockBillRepository) ListByParty(ctx context.Context, firmID, partyID string, limit, offset int) ([]*domain.Bill, error) {
	if m.ListByPartyFunc != nil {
		return m.ListByPartyFunc(ctx, firmID, partyID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	bills := make([]*domain.Bill, 0)
	for _, b := range m.bills {
		if b.FirmID == firmID && b.PartyID == partyID {
			bills = append(bills, b)
		}
	}
	return bills, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + string(rune('0'+m.counter%10))
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTransaction{}
	return m.LastTx, nil
}

// MockLock is a mock implementation of Lock.
type MockLock struct {
	ReleaseFunc func(ctx context.Context) error
	Released    bool
}

func (m *MockLock) Release(ctx context.Context) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx)
	}
	m.Released = true
	return nil
}

// MockLockManager is a mock implementation of LockManager.
type MockLockManager struct {
	ObtainFunc func(ctx context.Context, key string, ttl time.Duration) (usecase.Lock, error)

	LastKey string
}

func NewMockLockManager() *MockLockManager {
	return &MockLockManager{}
}

func (m *MockLockManager) Obtain(ctx context.Context, key string, ttl time.Duration) (usecase.Lock, error) {
	if m.ObtainFunc != nil {
		return m.ObtainFunc(ctx, key, ttl)
	}
	m.LastKey = key
	return &MockLock{}, nil
}
