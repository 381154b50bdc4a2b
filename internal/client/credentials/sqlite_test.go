package credentials

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_SetGetUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "token", []byte("old")))
	require.NoError(t, s.Set(ctx, "token", []byte("new")))

	v, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestSQLiteStore_GetMissingReturnsNilNil(t *testing.T) {
	s := openTestStore(t)

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLiteStore_DeleteKeepsOtherKeys(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "token", []byte{0x01}))
	require.NoError(t, s.Set(ctx, "adminToken", []byte{0x02}))

	require.NoError(t, s.Delete(ctx, "token"))
	require.NoError(t, s.Delete(ctx, "token"), "deleting twice is fine")

	v, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = s.Get(ctx, "adminToken")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, v)
}

func TestSQLiteStore_InsideTransaction(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(ctx, db))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteStore(tx).Set(ctx, UserTokenKey, []byte("uncommitted")))
	require.NoError(t, tx.Rollback())

	v, err := NewSQLiteStore(db).Get(ctx, UserTokenKey)
	require.NoError(t, err)
	assert.Nil(t, v, "rolled back write is gone")
}

func TestOpen_FileSurvivesReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "credentials.db")
	ctx := context.Background()

	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, UserTokenKey, []byte("persisted")))
	require.NoError(t, s.Close())

	s, err = Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, err := s.Get(ctx, UserTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(v))
}

func TestSQLiteStore_DriverErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("disk I/O error")
	s := NewSQLiteStore(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM credentials WHERE key = ?`)).
		WithArgs("token").WillReturnError(boom)
	_, err = s.Get(ctx, "token")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to get credential[token]")

	mock.ExpectExec("INSERT INTO credentials").
		WithArgs("token", []byte("abc")).WillReturnError(boom)
	err = s.Set(ctx, "token", []byte("abc"))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to set credential[token]")

	mock.ExpectExec("DELETE FROM credentials WHERE key").
		WithArgs("adminToken").WillReturnError(boom)
	err = s.Delete(ctx, "adminToken")
	require.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_CloseWithoutOwnershipIsNoop(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.NoError(t, NewSQLiteStore(db).Close())
}
