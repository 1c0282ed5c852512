package localstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/pressly/goose/v3"

	"github.com/visualcaption/vcap/internal/client/migrations"

	_ "modernc.org/sqlite"
)

// ErrAlreadyLocked is returned when another vcap process holds the state
// database. One instance per state file is assumed throughout the client.
var ErrAlreadyLocked = errors.New("state database is in use by another instance")

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open locks and opens the state database at dsn, applying pending
// migrations. The returned close func releases both the database and the
// lock.
func Open(ctx context.Context, dsn string) (*sql.DB, func() error, error) {
	lock := flock.New(dsn + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, nil, fmt.Errorf("acquire state lock: %w", err)
	}
	if !ok {
		return nil, nil, ErrAlreadyLocked
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = lock.Unlock()
		return nil, nil, fmt.Errorf("open state database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, nil, fmt.Errorf("migrate state database: %w", err)
	}

	closeAll := func() error {
		err := db.Close()
		if unlockErr := lock.Unlock(); err == nil {
			err = unlockErr
		}
		return err
	}
	return db, closeAll, nil
}
