package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/platform/logger"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

// UserService provides user management operations.
type UserService interface {
	// CreateUser persists a new user and returns it with its assigned ID.
	CreateUser(ctx context.Context, name, email string) (*domain.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID int64) (*domain.User, error)

	// UpdateUser overwrites the name and email of an existing user.
	UpdateUser(ctx context.Context, userID int64, name, email string) (*domain.User, error)

	// DeleteUser removes a user together with their subscriptions.
	DeleteUser(ctx context.Context, userID int64) error

	// ListUsers returns all users ordered by ID.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	tx        store.Transactor
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, tx store.Transactor, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		tx:        tx,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// userNotFound converts the store sentinel into an error naming the missing ID.
func userNotFound(err error, userID int64) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return &NotFoundError{Entity: "User", ID: userID, Err: store.ErrUserNotFound}
	}
	return err
}

// CreateUser creates a new user with the specified name and email
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("creating user")

	user, err := domain.NewUser(name, email)
	if err != nil {
		log.Debug("rejected user", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, NewServiceError("CreateUser", "failed to save user", err)
	}

	log.Info("user created successfully", slog.Int64("user_id", user.ID))
	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("fetching user", slog.Int64("user_id", userID))

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found", slog.Int64("user_id", userID))
			return nil, userNotFound(err, userID)
		}
		log.Error("failed to retrieve user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("GetUser", "failed to retrieve user", err)
	}

	return user, nil
}

// UpdateUser reads the current record and writes the new name and email in
// one transaction.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	userID int64,
	name, email string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("updating user", slog.Int64("user_id", userID))

	var updated *domain.User
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		if err := user.Rename(name, email); err != nil {
			return err
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		switch {
		case store.IsNotFoundError(err):
			log.Debug("user not found for update", slog.Int64("user_id", userID))
			return nil, userNotFound(err, userID)
		case domain.IsValidationError(err):
			log.Debug("rejected user update", slog.String("error", err.Error()))
			return nil, err
		}
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, NewServiceError("UpdateUser", "failed to update user", err)
	}

	log.Info("user updated successfully", slog.Int64("user_id", userID))
	return updated, nil
}

// DeleteUser deletes a user by their ID
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("deleting user", slog.Int64("user_id", userID))

	if err := s.userStore.Delete(ctx, userID); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("user not found for deletion", slog.Int64("user_id", userID))
			return userNotFound(err, userID)
		}
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return NewServiceError("DeleteUser", "failed to delete user", err)
	}

	log.Info("user deleted successfully", slog.Int64("user_id", userID))
	return nil
}

// ListUsers returns every user
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("listing users")

	users, err := s.userStore.List(ctx)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, NewServiceError("ListUsers", "failed to list users", err)
	}

	return users, nil
}
