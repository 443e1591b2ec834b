package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/subscriptions-api/internal/domain"
	"github.com/phrazzld/subscriptions-api/internal/store"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	user, err := domain.NewUser("Ada", "ada@example.com")
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO users \(name,email,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id`).
		WithArgs("Ada", "ada@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, s.Create(context.Background(), user))
	assert.Equal(t, int64(42), user.ID)
}

func TestUserStore_Create_InvalidUser(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	err := s.Create(context.Background(), &domain.User{Name: "", Email: "x@y.z"})
	assert.True(t, domain.IsValidationError(err))
}

func TestUserStore_GetByID(t *testing.T) {
	now := time.Now().UTC()
	columns := []string{"id", "name", "email", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`SELECT id, name, email, created_at, updated_at FROM users WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(7), "Ada", "ada@example.com", now, now))

		user, err := s.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, "Ada", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs(int64(8)).
			WillReturnError(sql.ErrNoRows)

		user, err := s.GetByID(context.Background(), 8)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStore_List_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectQuery(`SELECT .* FROM users ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at", "updated_at"}))

	users, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserStore_Update(t *testing.T) {
	user := &domain.User{ID: 3, Name: "Grace", Email: "grace@example.com", UpdatedAt: time.Now().UTC()}

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectExec(`UPDATE users SET name = \$1, email = \$2, updated_at = \$3 WHERE id = \$4`).
			WithArgs("Grace", "grace@example.com", sqlmock.AnyArg(), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Update(context.Background(), user))
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Update(context.Background(), user), store.ErrUserNotFound)
	})
}

func TestUserStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Delete(context.Background(), 5))
	assert.ErrorIs(t, s.Delete(context.Background(), 6), store.ErrUserNotFound)
}

func TestUserStore_WithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM users`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, s.WithTx(tx).Delete(context.Background(), 1))
	require.NoError(t, tx.Commit())
}

func TestServiceStore_GetOrCreate(t *testing.T) {
	insert := `INSERT INTO services \(service_name\) VALUES \(\$1\) ON CONFLICT \(service_name\) DO NOTHING RETURNING id`
	lookup := `SELECT id, service_name FROM services WHERE service_name = \$1`

	t.Run("inserts new service", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresServiceStore(db, nil)

		mock.ExpectQuery(insert).
			WithArgs("Netflix").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

		svc, err := s.GetOrCreate(context.Background(), "  Netflix ")
		require.NoError(t, err)
		assert.Equal(t, &domain.NamedService{ID: 1, Name: "Netflix"}, svc)
	})

	t.Run("reuses existing service", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresServiceStore(db, nil)

		mock.ExpectQuery(insert).
			WithArgs("Netflix").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(lookup).
			WithArgs("Netflix").
			WillReturnRows(sqlmock.NewRows([]string{"id", "service_name"}).AddRow(int64(9), "Netflix"))

		svc, err := s.GetOrCreate(context.Background(), "Netflix")
		require.NoError(t, err)
		assert.Equal(t, int64(9), svc.ID)
	})

	t.Run("conflicting row vanished", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresServiceStore(db, nil)

		mock.ExpectQuery(insert).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(lookup).WillReturnError(sql.ErrNoRows)

		_, err := s.GetOrCreate(context.Background(), "Netflix")
		assert.ErrorIs(t, err, store.ErrConflict)
		assert.True(t, store.IsRetryable(err))
	})

	t.Run("empty name", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresServiceStore(db, nil)

		_, err := s.GetOrCreate(context.Background(), "   ")
		assert.True(t, domain.IsValidationError(err))
	})
}

func TestServiceStore_GetByName_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresServiceStore(db, nil)

	mock.ExpectQuery(`SELECT id, service_name FROM services`).WillReturnError(sql.ErrNoRows)

	_, err := s.GetByName(context.Background(), "Hulu")
	assert.ErrorIs(t, err, store.ErrServiceNotFound)
}

func TestSubscriptionStore_Create(t *testing.T) {
	sub := &domain.Subscription{UserID: 2, ServiceID: 3, ServiceName: "Netflix", CreatedAt: time.Now().UTC()}

	t.Run("created", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSubscriptionStore(db, nil)

		mock.ExpectQuery(`INSERT INTO subscriptions \(user_id,service_id,created_at\) VALUES \(\$1,\$2,\$3\) RETURNING id`).
			WithArgs(int64(2), int64(3), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		created := *sub
		require.NoError(t, s.Create(context.Background(), &created))
		assert.Equal(t, int64(11), created.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSubscriptionStore(db, nil)

		mock.ExpectQuery(`INSERT INTO subscriptions`).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "subscriptions_user_id_fkey"})

		created := *sub
		err := s.Create(context.Background(), &created)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		var se *store.StoreError
		assert.ErrorAs(t, err, &se)
	})
}

func TestSubscriptionStore_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSubscriptionStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT s.id, s.user_id, s.service_id, sv.service_name, s.created_at FROM subscriptions s JOIN services sv ON sv.id = s.service_id WHERE s.id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "service_id", "service_name", "created_at"}).
			AddRow(int64(4), int64(1), int64(2), "Spotify", now))
	mock.ExpectQuery(`FROM subscriptions s`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	sub, err := s.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Spotify", sub.ServiceName)
	assert.True(t, sub.OwnedBy(1))

	_, err = s.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, store.ErrSubscriptionNotFound)
}

func TestSubscriptionStore_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSubscriptionStore(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(`WHERE s.user_id = \$1 ORDER BY s.id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "service_id", "service_name", "created_at"}).
			AddRow(int64(1), int64(1), int64(2), "Spotify", now).
			AddRow(int64(3), int64(1), int64(5), "Netflix", now))

	subs, err := s.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Spotify", subs[0].ServiceName)
	assert.Equal(t, "Netflix", subs[1].ServiceName)
}

func TestSubscriptionStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresSubscriptionStore(db, nil)

	mock.ExpectExec(`DELETE FROM subscriptions WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), 9), store.ErrSubscriptionNotFound)
}

func TestSubscriptionStore_TopServices(t *testing.T) {
	t.Run("ranked", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresSubscriptionStore(db, nil)

		mock.ExpectQuery(`SELECT sv.service_name, COUNT\(s.id\) AS subscriptions FROM subscriptions s JOIN services sv ON sv.id = s.service_id GROUP BY sv.service_name ORDER BY subscriptions DESC, sv.service_name ASC LIMIT 3`).
			WillReturnRows(sqlmock.NewRows([]string{"service_name", "subscriptions"}).
				AddRow("Netflix", int64(5)).
				AddRow("Spotify", int64(2)))

		top, err := s.TopServices(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, []domain.ServicePopularity{
			{ServiceName: "Netflix", Subscriptions: 5},
			{ServiceName: "Spotify", Subscriptions: 2},
		}, top)
	})

	t.Run("non-positive limit", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresSubscriptionStore(db, nil)

		top, err := s.TopServices(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, top)
	})
}
