package localstate

import (
	"context"
	"database/sql"

	"github.com/visualcaption/vcap/internal/client/bus"
	"github.com/visualcaption/vcap/internal/dbx"
)

// Store is the typed facade over the raw Repository used by the session and
// UI layers. Every write publishes a StorageChanged event so session
// consumers resynchronize, mirroring the storage-change broadcast of the web
// product.
type Store struct {
	db  *sql.DB
	bus *bus.Bus
}

func NewStore(db *sql.DB, b *bus.Bus) *Store {
	return &Store{db: db, bus: b}
}

func (s *Store) repo() Repository {
	return NewSQLiteRepository(s.db)
}

func (s *Store) publish(keys ...string) {
	if s.bus == nil {
		return
	}
	for _, k := range keys {
		s.bus.Publish(bus.StorageChanged{Key: k})
	}
}

// Credential returns the persisted bearer token, or "" when logged out.
func (s *Store) Credential(ctx context.Context) (string, error) {
	return s.repo().Get(ctx, KeyAuthToken)
}

// Email returns the persisted display email, or "".
func (s *Store) Email(ctx context.Context) (string, error) {
	return s.repo().Get(ctx, KeyUserEmail)
}

// SaveSession persists the credential and display email in one transaction.
func (s *Store) SaveSession(ctx context.Context, credential, email string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyAuthToken, credential); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUserEmail, email)
	})
	if err != nil {
		return err
	}
	s.publish(KeyAuthToken, KeyUserEmail)
	return nil
}

// ClearSession deletes every persisted session key. Used by logout and for
// self-healing when the credential no longer decodes.
func (s *Store) ClearSession(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for _, k := range []string{KeyAuthToken, KeyUserEmail, KeyNextPanel} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(KeyAuthToken, KeyUserEmail, KeyNextPanel)
	return nil
}

// SetNextPanel records a single-use hint naming the panel the next rendered
// view should open.
func (s *Store) SetNextPanel(ctx context.Context, panel string) error {
	if err := s.repo().Set(ctx, KeyNextPanel, panel); err != nil {
		return err
	}
	s.publish(KeyNextPanel)
	return nil
}

// TakeNextPanel consumes the hint: it returns the stored value and deletes
// it, so the signal fires exactly once. Returns "" when no hint is pending.
func (s *Store) TakeNextPanel(ctx context.Context) (string, error) {
	var panel string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		v, err := repo.Get(ctx, KeyNextPanel)
		if err != nil {
			return err
		}
		panel = v
		if v == "" {
			return nil
		}
		return repo.Delete(ctx, KeyNextPanel)
	})
	if err != nil {
		return "", err
	}
	if panel != "" {
		s.publish(KeyNextPanel)
	}
	return panel, nil
}
