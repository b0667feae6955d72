package service_test

import (
	"context"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/pkg/trm"

	"github.com/stretchr/testify/mock"
)

// fakeTxManager runs callbacks inline, without a database.
type fakeTxManager struct{}

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

func (fakeTxManager) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return ctx, nopTx{}, nil
}

func (fakeTxManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return callback(ctx)
}

// fakeActorRepo backs the resolver (and the customer getter) with maps.
type fakeActorRepo struct {
	customers      map[string]entities.Customer
	establishments map[string]entities.Establishment
}

func (f *fakeActorRepo) GetCustomerByID(_ context.Context, id string) (entities.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return entities.Customer{}, entities.ErrEntityNotFound
	}
	return c, nil
}

func (f *fakeActorRepo) GetEstablishmentByID(_ context.Context, id string) (entities.Establishment, error) {
	e, ok := f.establishments[id]
	if !ok {
		return entities.Establishment{}, entities.ErrEntityNotFound
	}
	return e, nil
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(entities.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]entities.Order, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByEstablishment(ctx context.Context, establishmentID string) ([]entities.Order, error) {
	args := m.Called(ctx, establishmentID)
	return args.Get(0).([]entities.Order), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID string, cur, next entities.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, cur, next)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) ReplaceItems(ctx context.Context, o entities.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) DeleteCartOrder(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) TopProducts(ctx context.Context, limit int) ([]entities.TopProduct, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TopProduct), args.Error(1)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) CreateProduct(ctx context.Context, p entities.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) GetProductByID(ctx context.Context, id string) (entities.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Product), args.Error(1)
}

func (m *mockProductRepo) ListProducts(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.Product), args.Error(1)
}

// fakeCache is a map-backed stand-in for the LRU cache.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value []byte) {
	c.data[key] = value
}
