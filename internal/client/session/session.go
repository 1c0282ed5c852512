// Package session derives the in-memory authentication state from the
// persisted credential. The session is rebuilt as a whole on every refresh,
// never mutated field by field, so consumers always observe a consistent
// {LoggedIn, Admin, UserID, Email} quadruple.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/visualcaption/vcap/internal/client/bus"
	"github.com/visualcaption/vcap/internal/client/repositories/localstate"
	"github.com/visualcaption/vcap/internal/client/token"
	"github.com/visualcaption/vcap/internal/common"
	"github.com/visualcaption/vcap/internal/logging"
)

// adminUserID is the one account treated as administrator. The backend does
// not issue a role claim; admin is decided by exact identity equality. This
// stands in for a real role claim and is not a general authorization design.
var adminUserID = uuid.MustParse("e2f21c08-f9d6-4388-a3f4-a32393846b70")

// AdminUserID returns the fixed administrator identity.
func AdminUserID() string { return adminUserID.String() }

// State is one immutable snapshot of the derived session.
type State struct {
	LoggedIn bool
	Admin    bool
	UserID   string
	Email    string
}

var anonymous = State{}

// Session owns the derived state. All writers go through Refresh, Login and
// Logout; readers take Snapshot and must re-read rather than cache across
// remote calls.
type Session struct {
	store *localstate.Store
	bus   *bus.Bus
	log   logging.Logger

	mu    sync.RWMutex
	state State

	unsubscribe func()
}

// New builds a Session, derives the initial state from the store, and
// subscribes to the bus so storage and auth broadcasts trigger a refresh.
func New(ctx context.Context, store *localstate.Store, b *bus.Bus, log logging.Logger) *Session {
	if log == nil {
		log = logging.NewNopLogger()
	}
	s := &Session{store: store, bus: b, log: log}
	if b != nil {
		s.unsubscribe = b.Subscribe(func(e bus.Event) {
			switch e.(type) {
			case bus.AuthChanged, bus.StorageChanged:
				s.Refresh(context.Background())
			}
		})
	}
	s.Refresh(ctx)
	return s
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) set(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Refresh re-reads the credential and re-derives all four fields together.
//
// Absent credential: anonymous. Credential that fails to decode: every
// persisted session key is cleared (self-heal) and the session goes
// anonymous. No failure is ever reported to consumers.
func (s *Session) Refresh(ctx context.Context) {
	cred, err := s.store.Credential(ctx)
	if err != nil {
		s.log.Error(ctx, "reading credential failed", "error", err)
		s.set(anonymous)
		return
	}
	if cred == "" {
		s.set(anonymous)
		return
	}

	claim := token.Decode(cred)
	if claim == nil {
		s.log.Warn(ctx, "clearing session", "error", common.ErrInvalidToken)
		if err := s.store.ClearSession(ctx); err != nil {
			s.log.Error(ctx, "clearing corrupted session failed", "error", err)
		}
		s.set(anonymous)
		return
	}

	email, err := s.store.Email(ctx)
	if err != nil {
		s.log.Error(ctx, "reading email failed", "error", err)
		email = ""
	}

	s.set(State{
		LoggedIn: true,
		Admin:    claim.UserID == adminUserID.String(),
		UserID:   claim.UserID,
		Email:    email,
	})
}

// Login re-derives the session, assuming the caller has just persisted a
// fresh credential, and broadcasts AuthChanged so every other consumer in
// the process resynchronizes.
func (s *Session) Login(ctx context.Context) {
	s.Refresh(ctx)
	if s.bus != nil {
		s.bus.Publish(bus.AuthChanged{})
	}
}

// Logout deletes all persisted session keys, resets to anonymous, and
// broadcasts AuthChanged. The state change is synchronous; any busy
// indicator shown by the UI around logout is purely cosmetic.
func (s *Session) Logout(ctx context.Context) {
	if err := s.store.ClearSession(ctx); err != nil {
		s.log.Error(ctx, "clearing session on logout failed", "error", err)
	}
	s.set(anonymous)
	if s.bus != nil {
		s.bus.Publish(bus.AuthChanged{})
	}
}

// Close detaches the session from the bus.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
