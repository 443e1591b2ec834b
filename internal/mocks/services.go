package mocks

import (
	"context"

	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	CreateUserFn func(ctx context.Context, name, email string) (*domain.User, error)
	GetUserFn    func(ctx context.Context, userID int64) (*domain.User, error)
	UpdateUserFn func(ctx context.Context, userID int64, name, email string) (*domain.User, error)
	DeleteUserFn func(ctx context.Context, userID int64) error
	ListUsersFn  func(ctx context.Context) ([]domain.User, error)

	// DefaultError is returned by any method without a function set.
	DefaultError error
}

var _ service.UserService = (*MockUserService)(nil)

// CreateUser implements the UserService.CreateUser method
func (m *MockUserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, name, email)
	}
	return nil, m.DefaultError
}

// GetUser implements the UserService.GetUser method
func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, m.DefaultError
}

// UpdateUser implements the UserService.UpdateUser method
func (m *MockUserService) UpdateUser(ctx context.Context, userID int64, name, email string) (*domain.User, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, userID, name, email)
	}
	return nil, m.DefaultError
}

// DeleteUser implements the UserService.DeleteUser method
func (m *MockUserService) DeleteUser(ctx context.Context, userID int64) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, userID)
	}
	return m.DefaultError
}

// ListUsers implements the UserService.ListUsers method
func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return nil, m.DefaultError
}

// MockSubscriptionService implements service.SubscriptionService for testing
type MockSubscriptionService struct {
	AddSubscriptionFn      func(ctx context.Context, userID int64, serviceName string) (*domain.Subscription, error)
	GetUserSubscriptionsFn func(ctx context.Context, userID int64) ([]domain.Subscription, error)
	DeleteSubscriptionFn   func(ctx context.Context, userID, subscriptionID int64) error
	GetTopSubscriptionsFn  func(ctx context.Context) ([]string, error)

	DefaultError error
}

var _ service.SubscriptionService = (*MockSubscriptionService)(nil)

// AddSubscription implements the SubscriptionService.AddSubscription method
func (m *MockSubscriptionService) AddSubscription(
	ctx context.Context,
	userID int64,
	serviceName string,
) (*domain.Subscription, error) {
	if m.AddSubscriptionFn != nil {
		return m.AddSubscriptionFn(ctx, userID, serviceName)
	}
	return nil, m.DefaultError
}

// GetUserSubscriptions implements the SubscriptionService.GetUserSubscriptions method
func (m *MockSubscriptionService) GetUserSubscriptions(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	if m.GetUserSubscriptionsFn != nil {
		return m.GetUserSubscriptionsFn(ctx, userID)
	}
	return nil, m.DefaultError
}

// DeleteSubscription implements the SubscriptionService.DeleteSubscription method
func (m *MockSubscriptionService) DeleteSubscription(ctx context.Context, userID, subscriptionID int64) error {
	if m.DeleteSubscriptionFn != nil {
		return m.DeleteSubscriptionFn(ctx, userID, subscriptionID)
	}
	return m.DefaultError
}

// GetTopSubscriptions implements the SubscriptionService.GetTopSubscriptions method
func (m *MockSubscriptionService) GetTopSubscriptions(ctx context.Context) ([]string, error) {
	if m.GetTopSubscriptionsFn != nil {
		return m.GetTopSubscriptionsFn(ctx)
	}
	return nil, m.DefaultError
}
