package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// setupDB opens an in-memory database with the same client_state schema the
// local state store migrates to.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS client_state (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	return db
}

func storedValue(t *testing.T, db *sql.DB, key string) string {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ""
	}
	require.NoError(t, err)
	return v
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO client_state(key, value) VALUES ('auth_token', 'tok-1')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, "tok-1", storedValue(t, db, "auth_token"), "must commit on success")
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO client_state(key, value) VALUES ('next_panel', 'feedback')`)
		require.NoError(t, e)
		return errors.New("boom")
	})
	require.Error(t, err)

	require.Empty(t, storedValue(t, db, "next_panel"), "must rollback when fn returns error")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Empty(t, storedValue(t, db, "user_email"), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO client_state(key, value) VALUES ('user_email', 'a@b.c')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_ConsumeOnceReadIsAtomic(t *testing.T) {
	db := setupDB(t)

	_, err := db.Exec(`INSERT INTO client_state(key, value) VALUES ('next_panel', 'feedback')`)
	require.NoError(t, err)

	var got string
	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT value FROM client_state WHERE key = 'next_panel'`).Scan(&got); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM client_state WHERE key = 'next_panel'`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, "feedback", got)
	require.Empty(t, storedValue(t, db, "next_panel"), "consumed hint must be gone")
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}
