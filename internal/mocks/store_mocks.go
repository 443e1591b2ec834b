package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

// MockUserStore is a mock of store.UserStore for use with testify/mock.
// WithTx returns the mock itself so expectations hold inside transactions.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.UserStore.List
func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.UserStore.WithTx
func (m *MockUserStore) WithTx(tx *sqlx.Tx) store.UserStore {
	return m
}

// MockServiceStore is a mock of store.ServiceStore for use with testify/mock.
type MockServiceStore struct {
	mock.Mock
}

var _ store.ServiceStore = (*MockServiceStore)(nil)

// GetByName is a mock implementation of store.ServiceStore.GetByName
func (m *MockServiceStore) GetByName(ctx context.Context, name string) (*domain.NamedService, error) {
	args := m.Called(ctx, name)
	if svc, ok := args.Get(0).(*domain.NamedService); ok {
		return svc, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetOrCreate is a mock implementation of store.ServiceStore.GetOrCreate
func (m *MockServiceStore) GetOrCreate(ctx context.Context, name string) (*domain.NamedService, error) {
	args := m.Called(ctx, name)
	if svc, ok := args.Get(0).(*domain.NamedService); ok {
		return svc, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.ServiceStore.WithTx
func (m *MockServiceStore) WithTx(tx *sqlx.Tx) store.ServiceStore {
	return m
}

// MockSubscriptionStore is a mock of store.SubscriptionStore for use with testify/mock.
type MockSubscriptionStore struct {
	mock.Mock
}

var _ store.SubscriptionStore = (*MockSubscriptionStore)(nil)

// Create is a mock implementation of store.SubscriptionStore.Create
func (m *MockSubscriptionStore) Create(ctx context.Context, sub *domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

// GetByID is a mock implementation of store.SubscriptionStore.GetByID
func (m *MockSubscriptionStore) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	args := m.Called(ctx, id)
	if sub, ok := args.Get(0).(*domain.Subscription); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.SubscriptionStore.ListByUser
func (m *MockSubscriptionStore) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if subs, ok := args.Get(0).([]domain.Subscription); ok {
		return subs, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.SubscriptionStore.Delete
func (m *MockSubscriptionStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TopServices is a mock implementation of store.SubscriptionStore.TopServices
func (m *MockSubscriptionStore) TopServices(ctx context.Context, limit int) ([]domain.ServicePopularity, error) {
	args := m.Called(ctx, limit)
	if top, ok := args.Get(0).([]domain.ServicePopularity); ok {
		return top, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.SubscriptionStore.WithTx
func (m *MockSubscriptionStore) WithTx(tx *sqlx.Tx) store.SubscriptionStore {
	return m
}
