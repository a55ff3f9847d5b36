package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/scent-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*KVStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewKVStore(db), mock
}

func TestKVStore_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(getQuery).WithArgs("perfume_users").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

		got, err := s.Get(context.Background(), "perfume_users")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), got)
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(getQuery).WithArgs("token").WillReturnError(sql.ErrNoRows)

		_, err := s.Get(context.Background(), "token")
		assert.ErrorIs(t, err, store.ErrKeyNotFound)
	})

	t.Run("driver failure", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectQuery(getQuery).WithArgs("token").WillReturnError(errors.New("connection reset"))

		_, err := s.Get(context.Background(), "token")
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "get", storeErr.Operation)
	})
}

func TestKVStore_SetAndDelete(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectExec(upsertQuery).WithArgs("isLoggedIn", "true").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQuery).WithArgs("isLoggedIn").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "isLoggedIn", []byte("true")))
	require.NoError(t, s.Delete(ctx, "isLoggedIn"))
}

func TestKVStore_Keys(t *testing.T) {
	s, mock := newMock(t)
	mock.ExpectQuery(keysQuery).WithArgs(`orders\_%`).
		WillReturnRows(sqlmock.NewRows([]string{"key"}).
			AddRow("orders_a@example.com").
			AddRow("orders_b@example.com"))

	keys, err := s.Keys(context.Background(), "orders_")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders_a@example.com", "orders_b@example.com"}, keys)
}

func TestLikePrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "%"},
		{"wishlist_", `wishlist\_%`},
		{"50%", `50\%%`},
		{`a\b`, `a\\b%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, likePrefix(tt.prefix), tt.prefix)
	}
}

func TestKVStore_Update(t *testing.T) {
	t.Run("missing key starts empty", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(lockQuery).WithArgs("orders_a@example.com").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(getQuery).WithArgs("orders_a@example.com").WillReturnError(sql.ErrNoRows)
		mock.ExpectExec(upsertQuery).WithArgs("orders_a@example.com", "[1]").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.Update(context.Background(), "orders_a@example.com", func(cur []byte, found bool) ([]byte, error) {
			assert.False(t, found)
			assert.Nil(t, cur)
			return []byte("[1]"), nil
		})
		require.NoError(t, err)
	})

	t.Run("callback error rolls back", func(t *testing.T) {
		s, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(lockQuery).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(getQuery).WithArgs("k").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("v"))
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := s.Update(context.Background(), "k", func(cur []byte, found bool) ([]byte, error) {
			assert.True(t, found)
			assert.Equal(t, []byte("v"), cur)
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrKeyNotFound},
		{"unique", &pgconn.PgError{Code: uniqueViolationCode}, store.ErrDuplicate},
		{"not null", &pgconn.PgError{Code: notNullViolationCode, ColumnName: "value"}, store.ErrInvalidEntity},
		{"serialization", &pgconn.PgError{Code: serializationFailureCode}, store.ErrTransactionFailed},
		{"cancelled", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.True(t, IsUndefinedTable(MapError(&pgconn.PgError{Code: undefinedTableCode})))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}
